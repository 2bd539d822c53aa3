package delivery

import (
	"encoding/json"
	"net/http"

	"github.com/Vovarama1992/deepflow/internal/models"
	"github.com/Vovarama1992/deepflow/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
)

type RefineHandler struct {
	refiner ports.Refiner
	log     *logger.ZapLogger
}

func NewRefineHandler(refiner ports.Refiner, log *logger.ZapLogger) *RefineHandler {
	return &RefineHandler{
		refiner: refiner,
		log:     log,
	}
}

type runResponse struct {
	*models.PipelineRun
	Error string `json:"error,omitempty"`
}

// POST /api/refine
func (h *RefineHandler) Refine(w http.ResponseWriter, r *http.Request) {
	var req models.RefineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}

	run, err := h.refiner.Refine(r.Context(), req, r.URL.Query().Get("roomID"))
	if run == nil {
		h.log.Log(logger.LogEntry{
			Level:   "warn",
			Message: "refine rejected",
			Error:   err,
		})
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	resp := runResponse{PipelineRun: run}
	if err != nil {
		resp.Error = err.Error()
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "refine finished",
		Fields: map[string]any{
			"run":      run.ID,
			"state":    run.State,
			"segments": len(run.Jobs),
			"length":   len(run.MergedOutput),
		},
	})

	writeJSON(w, http.StatusOK, resp)
}
