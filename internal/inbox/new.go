package inbox

import (
	"fmt"
	"time"

	"github.com/Vovarama1992/deepflow/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
	"github.com/fsnotify/fsnotify"
)

// NewWatcher watches inputDir and runs handler for every new text file, at most
// maxConcurrent at a time.
func NewWatcher(inputDir string, handler Handler, log *logger.ZapLogger, maxConcurrent int) (Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := w.Add(inputDir); err != nil {
		w.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	return &implWatcher{
		inputDir:      inputDir,
		handler:       handler,
		log:           log,
		watcher:       w,
		maxConcurrent: maxConcurrent,
		semaphore:     make(chan struct{}, maxConcurrent),
		settle:        500 * time.Millisecond,
	}, nil
}

// NewProcessor refines dropped files with the given preset and writes the
// results into outputDir.
func NewProcessor(refiner ports.Refiner, preset, outputDir string, docx bool, log *logger.ZapLogger) *Processor {
	return &Processor{
		refiner:   refiner,
		preset:    preset,
		outputDir: outputDir,
		docx:      docx,
		log:       log,
	}
}
