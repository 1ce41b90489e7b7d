package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/demostra/feria_budget_app/internal/apperrors"
	"github.com/demostra/feria_budget_app/internal/core/domain"
	portsrepo "github.com/demostra/feria_budget_app/internal/core/ports/repositories"
	portssvc "github.com/demostra/feria_budget_app/internal/core/ports/services"
	"github.com/demostra/feria_budget_app/internal/dto"
	"github.com/google/uuid"
)

// fairService implements the FairSvcFacade interface
type fairService struct {
	BaseService
	datasetRepo portsrepo.DatasetRepository
}

// NewFairService creates a new fair service with the provided dependencies
func NewFairService(datasetRepo portsrepo.DatasetRepository) portssvc.FairSvcFacade {
	return &fairService{datasetRepo: datasetRepo}
}

// Ensure fairService implements the FairSvcFacade interface
var _ portssvc.FairSvcFacade = (*fairService)(nil)

// ListFairs retrieves every fair in the dataset
func (s *fairService) ListFairs(ctx context.Context) ([]domain.Fair, error) {
	ds, err := s.datasetRepo.Load(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load dataset for fair listing")
		return nil, err
	}
	if ds.Fairs == nil {
		return []domain.Fair{}, nil
	}
	return ds.Fairs, nil
}

// GetFair retrieves a single fair by ID
func (s *fairService) GetFair(ctx context.Context, fairID string) (*domain.Fair, error) {
	ds, err := s.datasetRepo.Load(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load dataset", slog.String("fair_id", fairID))
		return nil, err
	}
	fair := ds.FindFair(fairID)
	if fair == nil {
		return nil, fmt.Errorf("fair %s: %w", fairID, apperrors.ErrNotFound)
	}
	return fair, nil
}

// CreateFair creates a fair whose id is a slug of its name and year. When the
// request names a source fair, its clients are deep-copied with fresh ids;
// real expenses are never cloned.
func (s *fairService) CreateFair(ctx context.Context, req dto.CreateFairRequest) (*domain.Fair, error) {
	ds, err := s.datasetRepo.Load(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load dataset for fair creation")
		return nil, err
	}

	fairID := slugID(req.Name, req.Date.Year())
	if ds.FindFair(fairID) != nil {
		return nil, fmt.Errorf("fair %s: %w", fairID, apperrors.ErrDuplicate)
	}

	fair := domain.Fair{
		FairID: fairID,
		Name:   strings.TrimSpace(req.Name),
		Status: domain.FairActive,
		Date:   req.Date,
	}

	if req.CloneFromFairID != "" {
		source := ds.FindFair(req.CloneFromFairID)
		if source == nil {
			return nil, fmt.Errorf("clone source fair %s: %w", req.CloneFromFairID, apperrors.ErrNotFound)
		}
		fair.Clients = cloneClients(source.Clients)
	}

	ds.Fairs = append(ds.Fairs, fair)
	if err := s.datasetRepo.Save(ctx, ds); err != nil {
		s.LogError(ctx, err, "Failed to save dataset after fair creation", slog.String("fair_id", fairID))
		return nil, err
	}

	s.LogInfo(ctx, "Fair created",
		slog.String("fair_id", fairID),
		slog.Int("cloned_clients", len(fair.Clients)))
	return &fair, nil
}

// ToggleArchive flips a fair between ACTIVE and ARCHIVED
func (s *fairService) ToggleArchive(ctx context.Context, fairID string) (*domain.Fair, error) {
	ds, err := s.datasetRepo.Load(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load dataset", slog.String("fair_id", fairID))
		return nil, err
	}
	fair := ds.FindFair(fairID)
	if fair == nil {
		return nil, fmt.Errorf("fair %s: %w", fairID, apperrors.ErrNotFound)
	}

	if fair.Status == domain.FairArchived {
		fair.Status = domain.FairActive
	} else {
		fair.Status = domain.FairArchived
	}

	if err := s.datasetRepo.Save(ctx, ds); err != nil {
		s.LogError(ctx, err, "Failed to save dataset after archive toggle", slog.String("fair_id", fairID))
		return nil, err
	}

	s.LogInfo(ctx, "Fair archive toggled",
		slog.String("fair_id", fairID),
		slog.String("status", string(fair.Status)))
	return fair, nil
}

// CreateClient adds a client with its budget to a fair
func (s *fairService) CreateClient(ctx context.Context, fairID string, req dto.CreateClientRequest) (*domain.Client, error) {
	ds, err := s.datasetRepo.Load(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load dataset", slog.String("fair_id", fairID))
		return nil, err
	}
	fair := ds.FindFair(fairID)
	if fair == nil {
		return nil, fmt.Errorf("fair %s: %w", fairID, apperrors.ErrNotFound)
	}

	client := clientFromRequest(req, false)
	fair.Clients = append(fair.Clients, client)

	if err := s.datasetRepo.Save(ctx, ds); err != nil {
		s.LogError(ctx, err, "Failed to save dataset after client creation", slog.String("fair_id", fairID))
		return nil, err
	}

	s.LogInfo(ctx, "Client created",
		slog.String("fair_id", fairID),
		slog.String("client_id", client.ClientID))
	return &client, nil
}

// ReplaceClients swaps a fair's whole client set, the way the budget matrix
// editor saves. Clients carrying an id keep it so existing distributions stay
// attached; the rest get fresh ids.
func (s *fairService) ReplaceClients(ctx context.Context, fairID string, req dto.ReplaceClientsRequest) ([]domain.Client, error) {
	ds, err := s.datasetRepo.Load(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load dataset", slog.String("fair_id", fairID))
		return nil, err
	}
	fair := ds.FindFair(fairID)
	if fair == nil {
		return nil, fmt.Errorf("fair %s: %w", fairID, apperrors.ErrNotFound)
	}

	clients := make([]domain.Client, len(req.Clients))
	for i, cr := range req.Clients {
		clients[i] = clientFromRequest(cr, true)
	}
	fair.Clients = clients

	if err := s.datasetRepo.Save(ctx, ds); err != nil {
		s.LogError(ctx, err, "Failed to save dataset after client replacement", slog.String("fair_id", fairID))
		return nil, err
	}

	s.LogInfo(ctx, "Client set replaced",
		slog.String("fair_id", fairID),
		slog.Int("count", len(clients)))
	return clients, nil
}

// DeleteClient removes a client from a fair. Distribution entries pointing at
// the removed id are left in place; reports treat them as zero contribution.
func (s *fairService) DeleteClient(ctx context.Context, fairID string, clientID string) error {
	ds, err := s.datasetRepo.Load(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load dataset", slog.String("fair_id", fairID))
		return err
	}
	fair := ds.FindFair(fairID)
	if fair == nil {
		return fmt.Errorf("fair %s: %w", fairID, apperrors.ErrNotFound)
	}

	idx := -1
	for i := range fair.Clients {
		if fair.Clients[i].ClientID == clientID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("client %s: %w", clientID, apperrors.ErrNotFound)
	}
	fair.Clients = append(fair.Clients[:idx], fair.Clients[idx+1:]...)

	if err := s.datasetRepo.Save(ctx, ds); err != nil {
		s.LogError(ctx, err, "Failed to save dataset after client deletion", slog.String("fair_id", fairID))
		return err
	}

	s.LogInfo(ctx, "Client deleted",
		slog.String("fair_id", fairID),
		slog.String("client_id", clientID))
	return nil
}

// slugID derives a stable fair id from its name and year, e.g.
// "Feria Madrid" in 2026 becomes FERIA-MADRID-2026.
func slugID(name string, year int) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToUpper(strings.TrimSpace(name)) {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		slug = "FERIA"
	}
	return fmt.Sprintf("%s-%d", slug, year)
}

// clientFromRequest maps a client payload to the domain, normalizing
// categories (empty expense categories fall back to OTROS) and minting ids
// where missing.
func clientFromRequest(req dto.CreateClientRequest, keepID bool) domain.Client {
	id := req.ClientID
	if !keepID || id == "" {
		id = uuid.NewString()
	}
	status := req.Status
	if status == "" {
		status = domain.ClientPending
	}

	client := domain.Client{
		ClientID: id,
		Name:     strings.TrimSpace(req.Name),
		Status:   status,
	}

	for _, line := range req.Budget.Income {
		cat := domain.NormalizeCategory(line.Category)
		if line.Category == "" {
			cat = domain.CategoryVenta
		}
		client.Budget.Income = append(client.Budget.Income, domain.IncomeLine{
			LineID:      uuid.NewString(),
			Category:    cat,
			Description: line.Description,
			Amount:      line.Amount,
		})
	}
	for _, line := range req.Budget.Expenses {
		client.Budget.Expenses = append(client.Budget.Expenses, domain.ExpenseLine{
			LineID:      uuid.NewString(),
			Category:    domain.NormalizeCategory(line.Category),
			Description: line.Description,
			Estimated:   line.Estimated,
		})
	}
	return client
}

// cloneClients deep-copies clients for a new fair, minting fresh ids so the
// clone never aliases the source fair's distribution keys.
func cloneClients(source []domain.Client) []domain.Client {
	clones := make([]domain.Client, len(source))
	for i, c := range source {
		clone := domain.Client{
			ClientID: uuid.NewString(),
			Name:     c.Name,
			Status:   domain.ClientPending,
		}
		for _, line := range c.Budget.Income {
			line.LineID = uuid.NewString()
			clone.Budget.Income = append(clone.Budget.Income, line)
		}
		for _, line := range c.Budget.Expenses {
			line.LineID = uuid.NewString()
			clone.Budget.Expenses = append(clone.Budget.Expenses, line)
		}
		clones[i] = clone
	}
	return clones
}
