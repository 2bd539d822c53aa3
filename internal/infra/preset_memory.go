package infra

import (
	"context"
	"sort"
	"sync"

	"github.com/Vovarama1992/deepflow/internal/models"
	"github.com/Vovarama1992/deepflow/internal/ports"
)

// MemoryPresetRepo keeps presets in process memory; used when no database is
// configured.
type MemoryPresetRepo struct {
	mu      sync.RWMutex
	presets map[string]models.Preset
}

var _ ports.PresetRepository = (*MemoryPresetRepo)(nil)

func NewMemoryPresetRepo(presets []models.Preset) *MemoryPresetRepo {
	r := &MemoryPresetRepo{presets: make(map[string]models.Preset, len(presets))}
	for _, p := range presets {
		r.presets[p.Name] = p
	}
	return r
}

func (r *MemoryPresetRepo) List(ctx context.Context) ([]models.Preset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Preset, 0, len(r.presets))
	for _, p := range r.presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryPresetRepo) Get(ctx context.Context, name string) (*models.Preset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.presets[name]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *MemoryPresetRepo) Upsert(ctx context.Context, p models.Preset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presets[p.Name] = p
	return nil
}
