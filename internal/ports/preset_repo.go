package ports

import (
	"context"

	"github.com/Vovarama1992/deepflow/internal/models"
)

type PresetRepository interface {
	List(ctx context.Context) ([]models.Preset, error)
	// Get returns nil, nil when the preset does not exist.
	Get(ctx context.Context, name string) (*models.Preset, error)
	Upsert(ctx context.Context, p models.Preset) error
}
