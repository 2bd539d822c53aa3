package export

import (
	"fmt"
	"strings"

	"github.com/Vovarama1992/deepflow/internal/models"
	"github.com/gomutex/godocx"
)

const fontName = "Times New Roman"

type blockKind int

const (
	blockTitle blockKind = iota
	blockMeta
	blockPart
	blockHeading
	blockText
	blockNote
)

type blockStyle struct {
	size  uint64
	color string
	bold  bool
}

var blockStyles = map[blockKind]blockStyle{
	blockTitle:   {size: 18, color: "000000", bold: true},
	blockMeta:    {size: 10, color: "666666"},
	blockPart:    {size: 10, color: "888888"},
	blockHeading: {size: 14, color: "000000", bold: true},
	blockText:    {size: 13, color: "000000"},
	blockNote:    {size: 11, color: "B00000", bold: true},
}

type block struct {
	kind blockKind
	text string
}

// layout lays a run out as document blocks: the merged segments in order,
// each multi-segment part under a small caption, and the failure note for
// aborted runs.
func layout(title string, run *models.PipelineRun) []block {
	blocks := []block{
		{blockTitle, title},
		{blockMeta, fmt.Sprintf("%s · %d/%d segments · %s",
			run.FinishedAt.Format("2006-01-02 15:04"), run.DoneCount(), len(run.Jobs), run.State)},
	}

	for _, job := range mergedJobs(run) {
		if len(run.Jobs) > 1 {
			blocks = append(blocks, block{blockPart, fmt.Sprintf("Part %d of %d", job.Segment.Index+1, len(run.Jobs))})
		}
		for _, line := range strings.Split(job.Result, "\n") {
			line = strings.TrimSpace(line)
			switch {
			case line == "":
			case strings.HasPrefix(line, "#"):
				blocks = append(blocks, block{blockHeading, strings.TrimSpace(strings.TrimLeft(line, "#"))})
			default:
				blocks = append(blocks, block{blockText, line})
			}
		}
	}

	if note := incompleteNote(run); note != "" {
		blocks = append(blocks, block{blockNote, note})
	}
	return blocks
}

// mergedJobs returns the jobs whose results make up MergedOutput.
func mergedJobs(run *models.PipelineRun) []*models.SegmentJob {
	n := 0
	for n < len(run.Jobs) && run.Jobs[n].State == models.JobDone {
		n++
	}
	return run.Jobs[:n]
}

func WriteDocx(title string, run *models.PipelineRun, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("new docx: %w", err)
	}

	for _, b := range layout(title, run) {
		st := blockStyles[b.kind]
		r := doc.AddParagraph("").AddText(b.text).Font(fontName).Size(st.size).Color(st.color)
		if st.bold {
			r.Bold(true)
		}
	}

	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("save docx: %w", err)
	}
	return nil
}
