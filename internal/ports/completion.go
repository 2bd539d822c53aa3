package ports

import (
	"context"

	"github.com/Vovarama1992/deepflow/internal/models"
)

// CompletionStream yields text fragments in arrival order. Recv returns io.EOF
// once the stream ended normally.
type CompletionStream interface {
	Recv() (string, error)
	Close() error
}

type CompletionService interface {
	StreamComplete(ctx context.Context, req models.CompletionRequest) (CompletionStream, error)
}
