package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/demostra/feria_budget_app/internal/apperrors"
	"github.com/demostra/feria_budget_app/internal/core/domain"
	"github.com/demostra/feria_budget_app/internal/core/ledger"
	portsrepo "github.com/demostra/feria_budget_app/internal/core/ports/repositories"
	portssvc "github.com/demostra/feria_budget_app/internal/core/ports/services"
	"github.com/demostra/feria_budget_app/internal/core/report"
	"github.com/demostra/feria_budget_app/internal/dto"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	datasetRepo portsrepo.DatasetRepository
}

// NewReportingService creates a new reporting service with the provided dependencies
func NewReportingService(datasetRepo portsrepo.DatasetRepository) portssvc.ReportingService {
	return &reportingService{datasetRepo: datasetRepo}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// Comparison builds the budget-control table for one fair, or across every
// non-archived fair when the request names none. Each transaction is counted
// exactly once either way.
func (s *reportingService) Comparison(ctx context.Context, req dto.ComparisonRequest) (*dto.ComparisonResponse, error) {
	ds, err := s.datasetRepo.Load(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load dataset for comparison")
		return nil, err
	}

	var clients []domain.Client
	var expenses []domain.RealExpense
	if req.FairID != "" {
		fair := ds.FindFair(req.FairID)
		if fair == nil {
			return nil, fmt.Errorf("fair %s: %w", req.FairID, apperrors.ErrNotFound)
		}
		clients = fair.Clients
		expenses = fair.RealExpenses
	} else {
		for i := range ds.Fairs {
			if ds.Fairs[i].Status == domain.FairArchived {
				continue
			}
			clients = append(clients, ds.Fairs[i].Clients...)
			expenses = append(expenses, ds.Fairs[i].RealExpenses...)
		}
	}

	opts := report.ComparisonOptions{
		ClientIDs:          req.ClientIDs,
		AlwaysShowStandard: req.AlwaysShowStandard,
	}
	if len(req.ExecutionPcts) > 0 {
		opts.ExecutionPcts = make(map[domain.Category]decimal.Decimal, len(req.ExecutionPcts))
		for raw, pct := range req.ExecutionPcts {
			opts.ExecutionPcts[domain.NormalizeCategory(raw)] = pct
		}
	}

	cmp := report.BuildComparison(clients, expenses, opts)
	resp := &dto.ComparisonResponse{Comparison: &cmp}
	if req.Flat {
		table := cmp.Flat()
		resp.Table = &table
	}

	s.LogDebug(ctx, "Comparison built",
		slog.String("fair_id", req.FairID),
		slog.Int("rows", len(cmp.Rows)))
	return resp, nil
}

// Matrix builds the budgeted-amounts matrix in FAIR or GLOBAL mode
func (s *reportingService) Matrix(ctx context.Context, req dto.MatrixRequest) (*dto.MatrixResponse, error) {
	ds, err := s.datasetRepo.Load(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load dataset for matrix")
		return nil, err
	}

	mode := report.MatrixMode(req.Mode)
	var columns []report.ClientColumn
	switch mode {
	case report.MatrixFair:
		if req.FairID == "" {
			return nil, fmt.Errorf("fair mode needs a fair id: %w", apperrors.ErrValidation)
		}
		fair := ds.FindFair(req.FairID)
		if fair == nil {
			return nil, fmt.Errorf("fair %s: %w", req.FairID, apperrors.ErrNotFound)
		}
		for i := range fair.Clients {
			columns = append(columns, report.ClientColumn{
				Client:   fair.Clients[i],
				FairID:   fair.FairID,
				FairName: fair.Name,
			})
		}
	case report.MatrixGlobal:
		if len(req.Columns) == 0 {
			return nil, fmt.Errorf("global mode needs at least one column: %w", apperrors.ErrValidation)
		}
		for _, col := range req.Columns {
			fair := ds.FindFair(col.FairID)
			if fair == nil {
				return nil, fmt.Errorf("fair %s: %w", col.FairID, apperrors.ErrNotFound)
			}
			client := fair.FindClient(col.ClientID)
			if client == nil {
				return nil, fmt.Errorf("client %s: %w", col.ClientID, apperrors.ErrNotFound)
			}
			columns = append(columns, report.ClientColumn{
				Client:   *client,
				FairID:   fair.FairID,
				FairName: fair.Name,
			})
		}
	default:
		return nil, fmt.Errorf("unknown matrix mode %q: %w", req.Mode, apperrors.ErrValidation)
	}

	m := report.BuildMatrix(columns, mode)
	if req.SortBy != "" {
		m.Sort(req.SortBy, report.SortDirection(req.SortDir))
	}

	resp := &dto.MatrixResponse{Matrix: &m}
	if req.Flat {
		table := m.Flat()
		resp.Table = &table
	}

	s.LogDebug(ctx, "Matrix built",
		slog.String("mode", req.Mode),
		slog.Int("columns", len(columns)))
	return resp, nil
}

// FairSummary aggregates a fair's actuals per client
func (s *reportingService) FairSummary(ctx context.Context, fairID string) (*dto.FairSummaryResponse, error) {
	ds, err := s.datasetRepo.Load(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load dataset for summary", slog.String("fair_id", fairID))
		return nil, err
	}
	fair := ds.FindFair(fairID)
	if fair == nil {
		return nil, fmt.Errorf("fair %s: %w", fairID, apperrors.ErrNotFound)
	}

	resp := &dto.FairSummaryResponse{
		FairID:      fair.FairID,
		Name:        fair.Name,
		BudgetTotal: decimal.Zero,
		IncomeTotal: decimal.Zero,
		RealTotal:   decimal.Zero,
	}

	for i := range fair.Clients {
		c := &fair.Clients[i]
		resp.Clients = append(resp.Clients, dto.ClientSummaryResponse{
			ClientID: c.ClientID,
			Name:     c.Name,
			Actuals:  ledger.ClientActuals(fair.RealExpenses, c.ClientID),
		})
		resp.BudgetTotal = resp.BudgetTotal.Add(c.BudgetedExpenseTotal())
	}

	for i := range fair.RealExpenses {
		total := fair.RealExpenses[i].Distribution.Total()
		if fair.RealExpenses[i].Type == domain.TypeIncome {
			resp.IncomeTotal = resp.IncomeTotal.Add(total)
		} else {
			resp.RealTotal = resp.RealTotal.Add(total)
		}
	}
	resp.Profit = resp.IncomeTotal.Sub(resp.RealTotal)

	return resp, nil
}

// Backup exports the whole dataset
func (s *reportingService) Backup(ctx context.Context) (*dto.BackupResponse, error) {
	ds, err := s.datasetRepo.Load(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load dataset for backup")
		return nil, err
	}
	return &dto.BackupResponse{Dataset: ds}, nil
}
