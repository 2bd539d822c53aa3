package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/Vovarama1992/deepflow/internal/models"
	"github.com/Vovarama1992/deepflow/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const MaxTemperature = 1.5

type RunInput struct {
	Text            string
	Instruction     string
	MaxChars        int
	DisableChunking bool
	Config          models.GenerationConfig
}

func (in RunInput) validate() error {
	if in.MaxChars <= 0 {
		return invalidArg("maxChars must be > 0, got %d", in.MaxChars)
	}
	if strings.TrimSpace(in.Text) == "" {
		return invalidArg("text is empty")
	}
	if in.Config.Model == "" {
		return invalidArg("model is required")
	}
	t := in.Config.Temperature
	if math.IsNaN(t) || t < 0 || t > MaxTemperature {
		return invalidArg("temperature %.2f out of range [0, %.1f]", t, MaxTemperature)
	}
	return nil
}

type Option func(*Orchestrator)

// WithConcurrency lets up to n segments stream at once. Output is still merged
// in segment order and the first failure stops the rest.
func WithConcurrency(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

func WithSplitter(fn func(text string, maxChars int) ([]models.Segment, error)) Option {
	return func(o *Orchestrator) { o.split = fn }
}

func WithRunIDs(fn func() string) Option {
	return func(o *Orchestrator) { o.newID = fn }
}

type Orchestrator struct {
	completion  ports.CompletionService
	log         *logger.ZapLogger
	concurrency int
	split       func(text string, maxChars int) ([]models.Segment, error)
	newID       func() string
}

func NewOrchestrator(completion ports.CompletionService, log *logger.ZapLogger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		completion:  completion,
		log:         log,
		concurrency: 1,
		split:       Split,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run streams every segment of in.Text through the completion service and
// merges the results. Invalid input returns an error and no run. Otherwise the
// run is always returned; when it was aborted the error of the failed segment
// comes with it.
func (o *Orchestrator) Run(ctx context.Context, in RunInput, sink ports.ProgressSink) (*models.PipelineRun, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = ports.SinkFunc(func(models.ProgressEvent) {})
	}

	segments, err := o.segments(in)
	if err != nil {
		return nil, err
	}

	run := &models.PipelineRun{
		ID:        o.newID(),
		State:     models.RunRunning,
		StartedAt: time.Now(),
		Jobs:      make([]*models.SegmentJob, len(segments)),
	}
	for i, seg := range segments {
		run.Jobs[i] = &models.SegmentJob{Segment: seg, State: models.JobPending}
	}

	r := &runner{o: o, run: run, in: in, sink: sink}
	r.emit(models.ProgressEvent{Type: models.EventRunStarted, Total: len(run.Jobs), Index: -1})
	o.info("run started", map[string]any{
		"run":      run.ID,
		"segments": len(run.Jobs),
		"model":    in.Config.Model,
	})

	var runErr error
	if o.concurrency > 1 && len(run.Jobs) > 1 {
		runErr = r.runConcurrent(ctx)
	} else {
		runErr = r.runSequential(ctx)
	}

	run.FinishedAt = time.Now()
	if runErr != nil {
		run.State = models.RunAborted
	} else {
		run.State = models.RunCompleted
	}

	r.emit(models.ProgressEvent{
		Type:  models.EventRunFinished,
		Total: len(run.Jobs),
		Index: run.DoneCount(),
		Text:  run.MergedOutput,
		State: run.State,
	})

	fields := map[string]any{
		"run":   run.ID,
		"state": run.State,
		"done":  run.DoneCount(),
		"dur":   run.FinishedAt.Sub(run.StartedAt).String(),
	}
	if runErr != nil {
		o.log.Log(logger.LogEntry{Level: "warn", Message: "run aborted", Fields: fields, Error: runErr})
	} else {
		o.info("run completed", fields)
	}

	return run, runErr
}

func (o *Orchestrator) segments(in RunInput) ([]models.Segment, error) {
	if in.DisableChunking || utf8.RuneCountInString(in.Text) < in.MaxChars {
		return []models.Segment{{Index: 0, Content: in.Text}}, nil
	}
	segs, err := o.split(in.Text, in.MaxChars)
	if err != nil {
		return nil, fmt.Errorf("split text: %w", err)
	}
	if len(segs) == 0 {
		return nil, invalidArg("text produced no segments")
	}
	return segs, nil
}

func (o *Orchestrator) info(msg string, fields map[string]any) {
	o.log.Log(logger.LogEntry{Level: "info", Message: msg, Fields: fields})
}

// runner holds the mutable state of one run.
type runner struct {
	o    *Orchestrator
	run  *models.PipelineRun
	in   RunInput
	sink ports.ProgressSink

	mu     sync.Mutex // job states and merge, concurrent mode only
	sinkMu sync.Mutex
	merged int
}

func (r *runner) runSequential(ctx context.Context) error {
	for _, job := range r.run.Jobs {
		r.activate(job)

		res, err := r.stream(ctx, job)
		if err != nil {
			return r.fail(ctx, job, err)
		}
		r.complete(job, res)
	}
	return nil
}

func (r *runner) runConcurrent(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.o.concurrency)

	for _, job := range r.run.Jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			// a sibling already failed: leave the job pending
			if gctx.Err() != nil {
				return nil
			}

			r.mu.Lock()
			r.activate(job)
			r.mu.Unlock()

			res, err := r.stream(gctx, job)

			r.mu.Lock()
			defer r.mu.Unlock()
			if err != nil {
				return r.fail(gctx, job, err)
			}
			r.complete(job, res)
			return nil
		})
	}
	return g.Wait()
}

func (r *runner) stream(ctx context.Context, job *models.SegmentJob) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stream, err := r.o.completion.StreamComplete(ctx, models.CompletionRequest{
		Instruction: r.in.Instruction,
		Content:     job.Segment.Content,
		Model:       r.in.Config.Model,
		Temperature: r.in.Config.Temperature,
	})
	if err != nil {
		return "", err
	}
	defer stream.Close()

	var sb strings.Builder
	for {
		frag, err := stream.Recv()
		if frag != "" {
			sb.WriteString(frag)
			r.emit(models.ProgressEvent{
				Type:  models.EventFragment,
				Total: len(r.run.Jobs),
				Index: job.Segment.Index,
				Text:  frag,
			})
		}
		if errors.Is(err, io.EOF) {
			return sb.String(), nil
		}
		if err != nil {
			return sb.String(), err
		}
		if cerr := ctx.Err(); cerr != nil {
			return sb.String(), cerr
		}
	}
}

func (r *runner) activate(job *models.SegmentJob) {
	job.State = models.JobActive
	r.emit(models.ProgressEvent{
		Type:  models.EventSegmentActive,
		Total: len(r.run.Jobs),
		Index: job.Segment.Index,
	})
}

func (r *runner) complete(job *models.SegmentJob, result string) {
	job.State = models.JobDone
	job.Result = result

	for r.merged < len(r.run.Jobs) && r.run.Jobs[r.merged].State == models.JobDone {
		r.run.MergedOutput += r.run.Jobs[r.merged].Result + models.SectionSeparator
		r.merged++
	}

	r.emit(models.ProgressEvent{
		Type:  models.EventSegmentDone,
		Total: len(r.run.Jobs),
		Index: job.Segment.Index,
	})
	r.o.info("segment done", map[string]any{
		"run":     r.run.ID,
		"segment": job.Segment.Index,
		"chars":   utf8.RuneCountInString(result),
	})
}

func (r *runner) fail(ctx context.Context, job *models.SegmentJob, cause error) error {
	kind := models.ErrorKindSegmentRequestFailed
	if ctx.Err() != nil || errors.Is(cause, context.Canceled) {
		kind = models.ErrorKindCancelled
		if !errors.Is(cause, ErrCancelled) {
			cause = fmt.Errorf("%w: %w", ErrCancelled, cause)
		}
	}

	job.State = models.JobFailed
	job.ErrorKind = kind
	job.ErrorDetail = cause.Error()

	r.emit(models.ProgressEvent{
		Type:      models.EventSegmentFailed,
		Total:     len(r.run.Jobs),
		Index:     job.Segment.Index,
		ErrorKind: kind,
		Error:     job.ErrorDetail,
	})

	return &SegmentError{Index: job.Segment.Index, Kind: kind, Err: cause}
}

func (r *runner) emit(ev models.ProgressEvent) {
	ev.RunID = r.run.ID
	r.sinkMu.Lock()
	defer r.sinkMu.Unlock()
	r.sink.Publish(ev)
}
