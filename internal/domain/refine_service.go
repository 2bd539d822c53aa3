package domain

import (
	"context"
	"fmt"

	"github.com/Vovarama1992/deepflow/internal/models"
	"github.com/Vovarama1992/deepflow/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
)

type RefineDefaults struct {
	Model           string
	MaxChars        int
	DisableChunking bool
	Preset          string
}

// RefineService turns caller requests into orchestrator runs and fans the
// progress of every run out on one event channel.
type RefineService struct {
	presets  ports.PresetRepository
	orch     *Orchestrator
	defaults RefineDefaults
	log      *logger.ZapLogger
	events   chan models.ProgressEvent
}

func NewRefineService(
	presets ports.PresetRepository,
	orch *Orchestrator,
	defaults RefineDefaults,
	log *logger.ZapLogger,
) *RefineService {
	if defaults.Preset == "" {
		defaults.Preset = DefaultPresetName
	}
	return &RefineService{
		presets:  presets,
		orch:     orch,
		defaults: defaults,
		log:      log,
		events:   make(chan models.ProgressEvent, 256),
	}
}

func (s *RefineService) Events() <-chan models.ProgressEvent { return s.events }

func (s *RefineService) Refine(ctx context.Context, req models.RefineRequest, roomID string) (*models.PipelineRun, error) {
	in, err := s.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	sink := ports.SinkFunc(func(ev models.ProgressEvent) {
		ev.RoomID = roomID
		select {
		case s.events <- ev:
			return
		default:
		}
		// buffer full: wait for the reader unless the caller is gone
		select {
		case s.events <- ev:
		case <-ctx.Done():
		}
	})

	return s.orch.Run(ctx, in, sink)
}

// Resolve applies preset and configured defaults under the explicit request
// fields.
func (s *RefineService) Resolve(ctx context.Context, req models.RefineRequest) (RunInput, error) {
	name := req.Preset
	if name == "" {
		name = s.defaults.Preset
	}

	in := RunInput{
		Text:            req.Text,
		Instruction:     req.Instruction,
		MaxChars:        req.MaxChars,
		DisableChunking: req.DisableChunking || s.defaults.DisableChunking,
		Config: models.GenerationConfig{
			Model: req.Model,
		},
	}

	needPreset := in.Instruction == "" || req.Temperature == nil
	if needPreset {
		p, err := s.presets.Get(ctx, name)
		if err != nil {
			return RunInput{}, fmt.Errorf("load preset %q: %w", name, err)
		}
		if p == nil {
			return RunInput{}, fmt.Errorf("%w: %w: %q", ErrInvalidArgument, ErrPresetNotFound, name)
		}
		if in.Instruction == "" {
			in.Instruction = p.Prompt
		}
		in.Config.Temperature = p.Temperature
	}
	if req.Temperature != nil {
		in.Config.Temperature = *req.Temperature
	}
	if in.Config.Model == "" {
		in.Config.Model = s.defaults.Model
	}
	if in.MaxChars == 0 {
		in.MaxChars = s.defaults.MaxChars
	}

	s.log.Log(logger.LogEntry{
		Level:   "debug",
		Message: "refine request resolved",
		Fields: map[string]any{
			"preset":      name,
			"model":       in.Config.Model,
			"temperature": in.Config.Temperature,
			"maxChars":    in.MaxChars,
			"length":      len(in.Text),
		},
	})
	return in, nil
}
