package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/demostra/feria_budget_app/internal/apperrors"
	"github.com/demostra/feria_budget_app/internal/core/domain"
	portsrepo "github.com/demostra/feria_budget_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxDatasetRepository stores the whole dataset as one JSONB row, keyed by the
// configured dataset key. The schema is created by the migrations under
// migrations/.
type PgxDatasetRepository struct {
	db  *pgxpool.Pool
	key string
}

// NewPgxDatasetRepository creates a dataset repository on a pgx pool.
func NewPgxDatasetRepository(db *pgxpool.Pool, key string) portsrepo.DatasetRepository {
	return &PgxDatasetRepository{db: db, key: key}
}

// Ensure PgxDatasetRepository implements portsrepo.DatasetRepository
var _ portsrepo.DatasetRepository = (*PgxDatasetRepository)(nil)

func (r *PgxDatasetRepository) Load(ctx context.Context) (*domain.Dataset, error) {
	query := `SELECT document FROM datasets WHERE dataset_key = $1`

	var raw []byte
	err := r.db.QueryRow(ctx, query, r.key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		// Never written yet.
		return &domain.Dataset{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading dataset %s: %v: %w", r.key, err, apperrors.ErrPersistence)
	}

	var ds domain.Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("decoding dataset %s: %v: %w", r.key, err, apperrors.ErrPersistence)
	}
	return &ds, nil
}

func (r *PgxDatasetRepository) Save(ctx context.Context, dataset *domain.Dataset) error {
	raw, err := json.Marshal(dataset)
	if err != nil {
		return fmt.Errorf("encoding dataset %s: %v: %w", r.key, err, apperrors.ErrPersistence)
	}

	query := `
        INSERT INTO datasets (dataset_key, document, updated_at)
        VALUES ($1, $2, now())
        ON CONFLICT (dataset_key)
        DO UPDATE SET document = EXCLUDED.document, updated_at = now()`

	if _, err := r.db.Exec(ctx, query, r.key, raw); err != nil {
		return fmt.Errorf("saving dataset %s: %v: %w", r.key, err, apperrors.ErrPersistence)
	}
	return nil
}
