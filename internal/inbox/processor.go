package inbox

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Vovarama1992/deepflow/internal/export"
	"github.com/Vovarama1992/deepflow/internal/models"
	"github.com/Vovarama1992/deepflow/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
)

type Processor struct {
	refiner   ports.Refiner
	preset    string
	outputDir string
	docx      bool
	log       *logger.ZapLogger
}

// Process refines one file. Output is written even for aborted runs so the
// completed segments are not lost; the run error is still returned.
func (p *Processor) Process(ctx context.Context, filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))

	run, runErr := p.refiner.Refine(ctx, models.RefineRequest{
		Text:   string(data),
		Preset: p.preset,
	}, "")
	if run == nil {
		return fmt.Errorf("refine %s: %w", name, runErr)
	}

	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	mdPath := filepath.Join(p.outputDir, name+".md")
	if err := export.WriteMarkdown(mdPath, name, run); err != nil {
		return err
	}

	if p.docx {
		docxPath := filepath.Join(p.outputDir, name+".docx")
		if err := export.WriteDocx(name, run, docxPath); err != nil {
			return fmt.Errorf("write docx: %w", err)
		}
	}

	p.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "inbox file refined",
		Fields: map[string]any{
			"file":     filePath,
			"output":   mdPath,
			"state":    run.State,
			"segments": len(run.Jobs),
			"done":     run.DoneCount(),
		},
	})

	if runErr != nil {
		return fmt.Errorf("refine %s: %w", name, runErr)
	}
	return nil
}
