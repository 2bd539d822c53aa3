package inbox

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/fsnotify/fsnotify"
)

var textExtensions = []string{".txt", ".md"}

type implWatcher struct {
	inputDir      string
	handler       Handler
	log           *logger.ZapLogger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	semaphore     chan struct{}
	wg            sync.WaitGroup
	settle        time.Duration
}

func (w *implWatcher) Start(ctx context.Context) error {
	w.info("inbox watcher started", map[string]any{"dir": w.inputDir, "maxConcurrent": w.maxConcurrent})

	for {
		select {
		case <-ctx.Done():
			w.wg.Wait()
			w.info("inbox watcher stopped", nil)
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !isTextFile(event.Name) {
				continue
			}

			w.info("new inbox file", map[string]any{"file": event.Name})

			// let the writer finish
			time.Sleep(w.settle)

			select {
			case w.semaphore <- struct{}{}:
				w.wg.Add(1)
				go func(filePath string) {
					defer w.wg.Done()
					defer func() { <-w.semaphore }()

					if err := w.handler(ctx, filePath); err != nil {
						w.log.Log(logger.LogEntry{
							Level:   "error",
							Message: "inbox file failed",
							Fields:  map[string]any{"file": filePath},
							Error:   err,
						})
					}
				}(event.Name)
			case <-ctx.Done():
				w.wg.Wait()
				return ctx.Err()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.log.Log(logger.LogEntry{Level: "error", Message: "watcher error", Error: err})
		}
	}
}

func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) info(msg string, fields map[string]any) {
	w.log.Log(logger.LogEntry{Level: "info", Message: msg, Fields: fields})
}

func isTextFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range textExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
