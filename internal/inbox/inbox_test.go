package inbox

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Vovarama1992/deepflow/internal/models"
	"github.com/Vovarama1992/go-utils/logger"
	"go.uber.org/zap"
)

func nopLogger() *logger.ZapLogger {
	return logger.NewZapLogger(zap.NewNop().Sugar())
}

type fakeRefiner struct {
	run  *models.PipelineRun
	err  error
	seen []models.RefineRequest
}

func (f *fakeRefiner) Refine(ctx context.Context, req models.RefineRequest, roomID string) (*models.PipelineRun, error) {
	f.seen = append(f.seen, req)
	return f.run, f.err
}

func (f *fakeRefiner) Events() <-chan models.ProgressEvent { return nil }

func TestProcessWritesOutputs(t *testing.T) {
	in := filepath.Join(t.TempDir(), "lecture.txt")
	if err := os.WriteFile(in, []byte("raw transcript"), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "out")

	ref := &fakeRefiner{run: &models.PipelineRun{
		State:        models.RunCompleted,
		MergedOutput: "clean transcript\n\n",
	}}

	p := NewProcessor(ref, "deep-clean", out, true, nopLogger())
	if err := p.Process(context.Background(), in); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if len(ref.seen) != 1 || ref.seen[0].Text != "raw transcript" || ref.seen[0].Preset != "deep-clean" {
		t.Errorf("unexpected refine request: %+v", ref.seen)
	}

	md, err := os.ReadFile(filepath.Join(out, "lecture.md"))
	if err != nil {
		t.Fatalf("markdown not written: %v", err)
	}
	if !strings.Contains(string(md), "clean transcript") {
		t.Errorf("markdown = %q, want merged output", md)
	}
	if _, err := os.Stat(filepath.Join(out, "lecture.docx")); err != nil {
		t.Errorf("docx not written: %v", err)
	}
}

func TestProcessAbortedKeepsPartialOutput(t *testing.T) {
	in := filepath.Join(t.TempDir(), "notes.md")
	if err := os.WriteFile(in, []byte("a\nb"), 0644); err != nil {
		t.Fatal(err)
	}
	out := t.TempDir()

	runErr := errors.New("segment 1 failed")
	ref := &fakeRefiner{
		err: runErr,
		run: &models.PipelineRun{
			State:        models.RunAborted,
			MergedOutput: "partial\n\n",
			Jobs: []*models.SegmentJob{
				{State: models.JobDone, Result: "partial"},
				{Segment: models.Segment{Index: 1}, State: models.JobFailed, ErrorKind: models.ErrorKindSegmentRequestFailed, ErrorDetail: "http 500"},
			},
		},
	}

	p := NewProcessor(ref, "", out, false, nopLogger())
	err := p.Process(context.Background(), in)
	if !errors.Is(err, runErr) {
		t.Fatalf("Process() error = %v, want %v", err, runErr)
	}

	md, readErr := os.ReadFile(filepath.Join(out, "notes.md"))
	if readErr != nil {
		t.Fatalf("markdown not written: %v", readErr)
	}
	if !strings.Contains(string(md), "partial") {
		t.Errorf("partial output missing: %q", md)
	}
	if _, err := os.Stat(filepath.Join(out, "notes.docx")); !os.IsNotExist(err) {
		t.Errorf("docx should not be written when disabled")
	}
}

func TestProcessRejectedRequest(t *testing.T) {
	in := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(in, nil, 0644); err != nil {
		t.Fatal(err)
	}
	out := t.TempDir()

	ref := &fakeRefiner{err: errors.New("invalid argument: text is empty")}
	p := NewProcessor(ref, "", out, false, nopLogger())
	if err := p.Process(context.Background(), in); err == nil {
		t.Fatal("Process() should fail when no run is produced")
	}
	if _, err := os.Stat(filepath.Join(out, "empty.md")); !os.IsNotExist(err) {
		t.Error("no output should be written without a run")
	}
}

func TestIsTextFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.txt", true},
		{"a.MD", true},
		{"a.mp4", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := isTextFile(tt.path); got != tt.want {
			t.Errorf("isTextFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWatcherDispatchesNewTextFiles(t *testing.T) {
	dir := t.TempDir()
	got := make(chan string, 4)

	w, err := NewWatcher(dir, func(ctx context.Context, path string) error {
		got <- path
		return nil
	}, nopLogger(), 1)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Stop()
	w.(*implWatcher).settle = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	// give the loop a moment to start selecting
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "skip.bin"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "take.txt")
	if err := os.WriteFile(want, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case path := <-got:
		if path != want {
			t.Errorf("handler got %q, want %q", path, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not called")
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Start() error = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
