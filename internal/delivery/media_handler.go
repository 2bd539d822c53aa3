package delivery

import (
	"encoding/json"
	"net/http"

	"github.com/Vovarama1992/deepflow/internal/models"
	"github.com/Vovarama1992/deepflow/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
)

type MediaHandler struct {
	media ports.MediaProcessor
	log   *logger.ZapLogger
}

func NewMediaHandler(media ports.MediaProcessor, log *logger.ZapLogger) *MediaHandler {
	return &MediaHandler{
		media: media,
		log:   log,
	}
}

type mediaRequest struct {
	Input     string              `json:"input"`
	Mode      models.DownloadMode `json:"mode"`
	ModelSize string              `json:"modelSize"`
}

// POST /api/media/download
func (h *MediaHandler) Download(w http.ResponseWriter, r *http.Request) {
	var req mediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}

	f, err := h.media.Download(r.Context(), req.Input, req.Mode)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "download failed", Error: err})
		http.Error(w, "download failed: "+err.Error(), errorStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, f)
}

// POST /api/media/transcribe
func (h *MediaHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	var req mediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}

	t, err := h.media.Transcribe(r.Context(), req.Input, req.ModelSize)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "transcribe failed", Error: err})
		http.Error(w, "transcribe failed: "+err.Error(), errorStatus(err))
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "transcript ready",
		Fields: map[string]any{
			"url":    t.SourceURL,
			"length": len(t.Text),
		},
	})
	writeJSON(w, http.StatusOK, t)
}
