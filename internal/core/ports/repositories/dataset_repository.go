package repositories

import (
	"context"

	"github.com/demostra/feria_budget_app/internal/core/domain"
)

// DatasetRepository persists the whole fair dataset as one document.
// Writes are last-write-wins; there is no partial update and no locking,
// mirroring how the dataset key behaves on the KV backend.
type DatasetRepository interface {
	// Load returns the current dataset. A store that has never been written
	// returns an empty dataset, not an error.
	Load(ctx context.Context) (*domain.Dataset, error)

	// Save replaces the stored dataset with the given snapshot.
	Save(ctx context.Context, dataset *domain.Dataset) error
}
