package ws

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Vovarama1992/deepflow/internal/models"
	"github.com/Vovarama1992/deepflow/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
)

const (
	msgRefine     = "refine"
	msgTranscribe = "transcribe"
)

type startMsg struct {
	Type      string               `json:"type"`
	Refine    models.RefineRequest `json:"refine"`
	Input     string               `json:"input"`
	ModelSize string               `json:"modelSize"`
}

type statusMsg struct {
	Status     string             `json:"status"`
	Error      string             `json:"error,omitempty"`
	Transcript *models.Transcript `json:"transcript,omitempty"`
}

// WSHandler runs one job per connection. Refine progress reaches the room
// through the refiner's event channel; closing the socket cancels the job.
func WSHandler(hub *Hub, refiner ports.Refiner, media ports.MediaProcessor, log *logger.ZapLogger) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {

		conn, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			http.Error(w, "ws upgrade failed", http.StatusBadRequest)
			return
		}

		roomID := r.URL.Query().Get("roomID")
		if roomID == "" {
			roomID = "default"
		}

		ctxWS, cancelWS := context.WithCancel(context.Background())

		hub.Register(roomID, conn)
		defer func() {
			cancelWS()
			hub.Unregister(roomID, conn)
		}()

		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var req startMsg
		if err := json.Unmarshal(raw, &req); err != nil {
			hub.SendJSON(roomID, statusMsg{Status: "error", Error: "bad json"})
			return
		}

		log.Log(logger.LogEntry{
			Level:   "info",
			Message: "ws job",
			Fields:  map[string]any{"room": roomID, "type": req.Type},
		})

		switch req.Type {
		case msgRefine:
			hub.SendJSON(roomID, statusMsg{Status: "processing_started"})
			go func() {
				// an aborted run still ends with run_finished on the event channel
				if run, err := refiner.Refine(ctxWS, req.Refine, roomID); run == nil && err != nil {
					hub.SendJSON(roomID, statusMsg{Status: "error", Error: err.Error()})
				}
			}()
		case msgTranscribe:
			hub.SendJSON(roomID, statusMsg{Status: "processing_started"})
			go func() {
				t, err := media.Transcribe(ctxWS, req.Input, req.ModelSize)
				if err != nil {
					log.Log(logger.LogEntry{Level: "error", Message: "ws transcribe failed", Error: err})
					hub.SendJSON(roomID, statusMsg{Status: "error", Error: err.Error()})
					return
				}
				hub.SendJSON(roomID, statusMsg{Status: "ok", Transcript: t})
			}()
		default:
			hub.SendJSON(roomID, statusMsg{Status: "error", Error: "unknown type " + req.Type})
			return
		}

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}
