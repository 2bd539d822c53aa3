package ports

import (
	"context"

	"github.com/Vovarama1992/deepflow/internal/models"
)

type Refiner interface {
	Refine(ctx context.Context, req models.RefineRequest, roomID string) (*models.PipelineRun, error)
	Events() <-chan models.ProgressEvent
}
