package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/Vovarama1992/deepflow/internal/models"
)

// RenderMarkdown formats a run as a markdown document. Aborted runs keep their
// partial output and get a note naming the failed segment.
func RenderMarkdown(title string, run *models.PipelineRun) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n_%s_\n\n", title, run.FinishedAt.Format("2006-01-02 15:04"))
	sb.WriteString(strings.TrimSpace(run.MergedOutput))
	sb.WriteString("\n")

	if note := incompleteNote(run); note != "" {
		fmt.Fprintf(&sb, "\n> %s\n", note)
	}
	return sb.String()
}

func incompleteNote(run *models.PipelineRun) string {
	if run.State != models.RunAborted {
		return ""
	}
	j := run.FailedJob()
	if j == nil {
		return ""
	}
	return fmt.Sprintf("Incomplete: segment %d/%d failed (%s): %s",
		j.Segment.Index+1, len(run.Jobs), j.ErrorKind, j.ErrorDetail)
}

func WriteMarkdown(path, title string, run *models.PipelineRun) error {
	if err := os.WriteFile(path, []byte(RenderMarkdown(title, run)), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}
