package infra

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Vovarama1992/deepflow/internal/models"
	"github.com/Vovarama1992/deepflow/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresPresetRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresPresetRepo(pool *pgxpool.Pool) *PostgresPresetRepo {
	return &PostgresPresetRepo{pool: pool}
}

var _ ports.PresetRepository = (*PostgresPresetRepo)(nil)

func (r *PostgresPresetRepo) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS preset (
			name        TEXT PRIMARY KEY,
			prompt      TEXT NOT NULL,
			temperature DOUBLE PRECISION NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := r.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("create preset table: %w", err)
	}
	return nil
}

// Seed inserts presets that are not stored yet; existing rows are kept.
func (r *PostgresPresetRepo) Seed(ctx context.Context, presets []models.Preset) error {
	query := `
		INSERT INTO preset (name, prompt, temperature)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO NOTHING
	`
	for _, p := range presets {
		if _, err := r.pool.Exec(ctx, query, p.Name, p.Prompt, p.Temperature); err != nil {
			return fmt.Errorf("seed preset %q: %w", p.Name, err)
		}
	}
	log.Printf("[DB][SEED] presets=%d", len(presets))
	return nil
}

func (r *PostgresPresetRepo) List(ctx context.Context) ([]models.Preset, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT name, prompt, temperature
		FROM preset
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	defer rows.Close()

	var out []models.Preset
	for rows.Next() {
		var p models.Preset
		if err := rows.Scan(&p.Name, &p.Prompt, &p.Temperature); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresPresetRepo) Get(ctx context.Context, name string) (*models.Preset, error) {
	var p models.Preset
	err := r.pool.QueryRow(ctx, `
		SELECT name, prompt, temperature
		FROM preset
		WHERE name = $1
	`, name).Scan(&p.Name, &p.Prompt, &p.Temperature)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get preset: %w", err)
	}
	return &p, nil
}

func (r *PostgresPresetRepo) Upsert(ctx context.Context, p models.Preset) error {
	query := `
		INSERT INTO preset (name, prompt, temperature)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE
		SET prompt = EXCLUDED.prompt,
		    temperature = EXCLUDED.temperature,
		    updated_at = now()
	`
	if _, err := r.pool.Exec(ctx, query, p.Name, p.Prompt, p.Temperature); err != nil {
		return fmt.Errorf("upsert preset: %w", err)
	}
	return nil
}
