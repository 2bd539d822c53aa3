package delivery

import (
	"encoding/json"
	"net/http"

	"github.com/Vovarama1992/deepflow/internal/domain"
	"github.com/Vovarama1992/deepflow/internal/models"
	"github.com/Vovarama1992/deepflow/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
)

type PresetHandler struct {
	presets ports.PresetRepository
	log     *logger.ZapLogger
}

func NewPresetHandler(presets ports.PresetRepository, log *logger.ZapLogger) *PresetHandler {
	return &PresetHandler{
		presets: presets,
		log:     log,
	}
}

// GET /api/presets
func (h *PresetHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.presets.List(r.Context())
	if err != nil {
		http.Error(w, "failed list presets: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"presets": list})
}

// PUT /api/presets/{name}
func (h *PresetHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		http.Error(w, "missing name", http.StatusBadRequest)
		return
	}

	var req struct {
		Prompt      string  `json:"prompt"`
		Temperature float64 `json:"temperature"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Temperature < 0 || req.Temperature > domain.MaxTemperature {
		http.Error(w, "temperature out of range", http.StatusBadRequest)
		return
	}

	p := models.Preset{Name: name, Prompt: req.Prompt, Temperature: req.Temperature}
	if err := h.presets.Upsert(r.Context(), p); err != nil {
		http.Error(w, "failed save preset: "+err.Error(), http.StatusInternalServerError)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "preset saved",
		Fields:  map[string]any{"name": name, "temperature": req.Temperature},
	})
	writeJSON(w, http.StatusOK, p)
}
