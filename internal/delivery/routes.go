package delivery

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, hRefine *RefineHandler, hPresets *PresetHandler, hMedia *MediaHandler) {

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	// presets
	r.Get("/api/presets", hPresets.List)
	r.Put("/api/presets/{name}", hPresets.Upsert)

	// refine pipeline
	r.Post("/api/refine", hRefine.Refine)

	// media glue
	r.Post("/api/media/download", hMedia.Download)
	r.Post("/api/media/transcribe", hMedia.Transcribe)
}
