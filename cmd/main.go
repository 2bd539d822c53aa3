package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vovarama1992/deepflow/internal/config"
	"github.com/Vovarama1992/deepflow/internal/delivery"
	ws "github.com/Vovarama1992/deepflow/internal/delivery/ws"
	"github.com/Vovarama1992/deepflow/internal/domain"
	"github.com/Vovarama1992/deepflow/internal/domain/stations"
	"github.com/Vovarama1992/deepflow/internal/inbox"
	"github.com/Vovarama1992/deepflow/internal/infra"
	"github.com/Vovarama1992/deepflow/internal/ports"
	"github.com/Vovarama1992/deepflow/pkg/executor"
	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// CONFIG
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// LOGGER
	zl, err := infra.NewLogger(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	if cfg.Media.CookiesFile == "" {
		log.Println("WARN: YTDLP_COOKIES_FILE is not set; yt-dlp may fail on YouTube")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// COMPLETION CLIENT
	var completion ports.CompletionService
	switch cfg.Completion.Provider {
	case config.ProviderGemini:
		gc, err := infra.NewGeminiClient(ctx, cfg.Completion.APIKey)
		if err != nil {
			log.Fatalf("init gemini: %v", err)
		}
		completion = gc
	default:
		completion = infra.NewGPTClient(
			cfg.Completion.BaseURL,
			cfg.Completion.APIKey,
			infra.WithAttribution(cfg.Completion.Referer, cfg.Completion.Title),
		)
	}

	// PRESETS
	seed := cfg.Presets.Items
	if len(seed) == 0 {
		seed = domain.DefaultPresets()
	}

	var presets ports.PresetRepository
	if cfg.Database.URL != "" {
		pool, err := infra.NewPgxPool(ctx, cfg.Database.URL)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		defer pool.Close()

		repo := infra.NewPostgresPresetRepo(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatalf("preset schema: %v", err)
		}
		if err := repo.Seed(ctx, seed); err != nil {
			log.Fatalf("seed presets: %v", err)
		}
		presets = repo
	} else {
		presets = infra.NewMemoryPresetRepo(seed)
	}

	// REFINE PIPELINE
	orch := domain.NewOrchestrator(completion, zl, domain.WithConcurrency(cfg.Chunking.Concurrency))
	refineService := domain.NewRefineService(presets, orch, domain.RefineDefaults{
		Model:           cfg.Completion.Model,
		MaxChars:        cfg.Chunking.MaxChars,
		DisableChunking: !cfg.ChunkingEnabled(),
		Preset:          cfg.Presets.Default,
	}, zl)

	// MEDIA STATIONS
	exec := executor.New()
	downloader := infra.NewYTDLPDownloader(exec, cfg.Media.YTDLPBinary, cfg.Media.DownloadDir, cfg.Media.CookiesFile)
	var whisperOpts []infra.WhisperOption
	if cfg.Media.Convert != config.ConvertNone {
		conv, err := infra.NewScriptConverter(cfg.Media.Convert)
		if err != nil {
			log.Fatalf("script converter: %v", err)
		}
		whisperOpts = append(whisperOpts, infra.WithConverter(conv))
	}
	transcriber := infra.NewWhisperTranscriber(exec, cfg.Media.WhisperBinary, cfg.Media.Language, cfg.Media.InitialPrompt, whisperOpts...)

	s1 := stations.NewS1ExtractURL()
	s2 := stations.NewS2Download(downloader)
	s3 := stations.NewS3Transcribe(transcriber)

	mediaService := domain.NewMediaService(s1, s2, s3, cfg.Media.WhisperModel, zl)

	// WS HUB
	hub := ws.NewHub()

	// BROADCAST LISTENER
	go func() {
		for ev := range refineService.Events() {
			if ev.RoomID == "" {
				continue
			}
			hub.SendJSON(ev.RoomID, ev)
		}
	}()

	// INBOX
	if cfg.Inbox.Enabled {
		proc := inbox.NewProcessor(refineService, cfg.Presets.Default, cfg.Inbox.Output, cfg.Inbox.Docx, zl)
		watcher, err := inbox.NewWatcher(cfg.Inbox.Input, proc.Process, zl, cfg.Inbox.MaxConcurrent)
		if err != nil {
			log.Fatalf("inbox: %v", err)
		}
		defer watcher.Stop()

		go func() {
			if err := watcher.Start(ctx); err != nil && ctx.Err() == nil {
				zl.Log(logger.LogEntry{Level: "error", Message: "inbox watcher stopped", Error: err})
			}
		}()
	}

	// HANDLERS
	hRefine := delivery.NewRefineHandler(refineService, zl)
	hPresets := delivery.NewPresetHandler(presets, zl)
	hMedia := delivery.NewMediaHandler(mediaService, zl)

	// ROUTER
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))

	delivery.RegisterRoutes(r, hRefine, hPresets, hMedia)
	r.Get("/ws", ws.WSHandler(hub, refineService, mediaService, zl))

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "server started",
		Fields: map[string]any{
			"port":     cfg.Server.Port,
			"provider": cfg.Completion.Provider,
			"model":    cfg.Completion.Model,
			"inbox":    cfg.Inbox.Enabled,
		},
	})

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		zl.Log(logger.LogEntry{
			Level:   "error",
			Message: "server crashed",
			Error:   err,
		})
	}
}
