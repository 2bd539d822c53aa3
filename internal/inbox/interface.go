package inbox

import "context"

// Watcher monitors a drop folder for new text files.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// Handler processes one file that appeared in the drop folder.
type Handler func(ctx context.Context, filePath string) error
