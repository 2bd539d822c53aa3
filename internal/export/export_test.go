package export

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/Vovarama1992/deepflow/internal/models"
)

func TestRenderMarkdownCompleted(t *testing.T) {
	run := &models.PipelineRun{
		State:        models.RunCompleted,
		MergedOutput: "first\n\nsecond\n\n",
		FinishedAt:   time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC),
	}

	got := RenderMarkdown("notes", run)

	if !strings.HasPrefix(got, "# notes\n\n_2026-01-02 03:04_\n\n") {
		t.Errorf("unexpected header: %q", got)
	}
	if !strings.Contains(got, "first\n\nsecond\n") {
		t.Errorf("merged output missing: %q", got)
	}
	if strings.Contains(got, "Incomplete") {
		t.Errorf("completed run should not be marked incomplete: %q", got)
	}
}

func TestRenderMarkdownAborted(t *testing.T) {
	run := &models.PipelineRun{
		State:        models.RunAborted,
		MergedOutput: "first\n\n",
		Jobs: []*models.SegmentJob{
			{Segment: models.Segment{Index: 0}, State: models.JobDone, Result: "first"},
			{Segment: models.Segment{Index: 1}, State: models.JobFailed, ErrorKind: models.ErrorKindSegmentRequestFailed, ErrorDetail: "boom"},
		},
	}

	got := RenderMarkdown("notes", run)
	if !strings.Contains(got, "first") {
		t.Errorf("partial output missing: %q", got)
	}
	if !strings.Contains(got, "segment 2/2 failed (segment_request_failed): boom") {
		t.Errorf("failure note missing: %q", got)
	}
}

func abortedRun() *models.PipelineRun {
	return &models.PipelineRun{
		State:        models.RunAborted,
		MergedOutput: "## Intro\nfirst line\n\nsecond part\n\n",
		FinishedAt:   time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC),
		Jobs: []*models.SegmentJob{
			{Segment: models.Segment{Index: 0}, State: models.JobDone, Result: "## Intro\nfirst line\n"},
			{Segment: models.Segment{Index: 1}, State: models.JobDone, Result: "second part"},
			{Segment: models.Segment{Index: 2}, State: models.JobFailed, ErrorKind: models.ErrorKindCancelled, ErrorDetail: "run cancelled"},
			{Segment: models.Segment{Index: 3}, State: models.JobPending},
		},
	}
}

func TestLayout(t *testing.T) {
	got := layout("lecture", abortedRun())

	want := []block{
		{blockTitle, "lecture"},
		{blockMeta, "2026-01-02 03:04 · 2/4 segments · aborted"},
		{blockPart, "Part 1 of 4"},
		{blockHeading, "Intro"},
		{blockText, "first line"},
		{blockPart, "Part 2 of 4"},
		{blockText, "second part"},
		{blockNote, "Incomplete: segment 3/4 failed (cancelled): run cancelled"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("layout() =\n%v\nwant\n%v", got, want)
	}
}

func TestLayoutSingleSegment(t *testing.T) {
	run := &models.PipelineRun{
		State: models.RunCompleted,
		Jobs:  []*models.SegmentJob{{State: models.JobDone, Result: "only text"}},
	}

	got := layout("memo", run)
	for _, b := range got {
		if b.kind == blockPart || b.kind == blockNote {
			t.Errorf("unexpected block %+v", b)
		}
	}
	if last := got[len(got)-1]; last.kind != blockText || last.text != "only text" {
		t.Errorf("last block = %+v", last)
	}
}

func TestWriteDocx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.docx")

	if err := WriteDocx("title", abortedRun(), path); err != nil {
		t.Fatalf("WriteDocx() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("docx not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("docx file is empty")
	}
}
