package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/demostra/feria_budget_app/internal/apperrors"
	"github.com/demostra/feria_budget_app/internal/core/domain"
	portsrepo "github.com/demostra/feria_budget_app/internal/core/ports/repositories"
)

// FileDatasetRepository keeps the dataset as a local JSON file. It is the
// development fallback when neither redis nor postgres is configured.
type FileDatasetRepository struct {
	path string
	mu   sync.Mutex
}

// NewFileDatasetRepository creates a dataset repository on a JSON file path.
func NewFileDatasetRepository(path string) portsrepo.DatasetRepository {
	return &FileDatasetRepository{path: path}
}

// Ensure FileDatasetRepository implements portsrepo.DatasetRepository
var _ portsrepo.DatasetRepository = (*FileDatasetRepository)(nil)

func (r *FileDatasetRepository) Load(_ context.Context) (*domain.Dataset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		// Never written yet.
		return &domain.Dataset{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading dataset file %s: %v: %w", r.path, err, apperrors.ErrPersistence)
	}

	var ds domain.Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("decoding dataset file %s: %v: %w", r.path, err, apperrors.ErrPersistence)
	}
	return &ds, nil
}

func (r *FileDatasetRepository) Save(_ context.Context, dataset *domain.Dataset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := json.MarshalIndent(dataset, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding dataset file %s: %v: %w", r.path, err, apperrors.ErrPersistence)
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("creating dataset dir for %s: %v: %w", r.path, err, apperrors.ErrPersistence)
	}

	// Write-then-rename keeps a crash from leaving a half-written document.
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("writing dataset file %s: %v: %w", r.path, err, apperrors.ErrPersistence)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replacing dataset file %s: %v: %w", r.path, err, apperrors.ErrPersistence)
	}
	return nil
}
