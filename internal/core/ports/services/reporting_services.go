package services

import (
	"context"

	"github.com/demostra/feria_budget_app/internal/dto"
)

// ReportingService defines operations for building the derived views.
// Every report is recomputed from the stored dataset on each call.
type ReportingService interface {
	// Comparison builds the budget-control table for one fair, or across all
	// non-archived fairs when the request names none.
	Comparison(ctx context.Context, req dto.ComparisonRequest) (*dto.ComparisonResponse, error)

	// Matrix builds the budgeted-amounts matrix in FAIR or GLOBAL mode.
	Matrix(ctx context.Context, req dto.MatrixRequest) (*dto.MatrixResponse, error)

	// FairSummary aggregates a fair's actuals per client.
	FairSummary(ctx context.Context, fairID string) (*dto.FairSummaryResponse, error)

	// Backup exports the whole dataset.
	Backup(ctx context.Context) (*dto.BackupResponse, error)
}
