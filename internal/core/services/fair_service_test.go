package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/demostra/feria_budget_app/internal/apperrors"
	"github.com/demostra/feria_budget_app/internal/core/domain"
	portsrepo "github.com/demostra/feria_budget_app/internal/core/ports/repositories"
	portssvc "github.com/demostra/feria_budget_app/internal/core/ports/services"
	"github.com/demostra/feria_budget_app/internal/core/services"
	"github.com/demostra/feria_budget_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock DatasetRepository ---
type MockDatasetRepository struct {
	mock.Mock
}

// Ensure MockDatasetRepository implements portsrepo.DatasetRepository
var _ portsrepo.DatasetRepository = (*MockDatasetRepository)(nil)

func (m *MockDatasetRepository) Load(ctx context.Context) (*domain.Dataset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dataset), args.Error(1)
}

func (m *MockDatasetRepository) Save(ctx context.Context, dataset *domain.Dataset) error {
	args := m.Called(ctx, dataset)
	return args.Error(0)
}

// expectSave wires a Save expectation that captures the saved dataset.
func (m *MockDatasetRepository) expectSave(saved **domain.Dataset) {
	m.On("Save", mock.Anything, mock.AnythingOfType("*domain.Dataset")).
		Run(func(args mock.Arguments) {
			*saved = args.Get(1).(*domain.Dataset)
		}).
		Return(nil)
}

func sampleDataset() *domain.Dataset {
	return &domain.Dataset{
		Fairs: []domain.Fair{
			{
				FairID: "FERIA-MADRID-2026",
				Name:   "Feria Madrid",
				Status: domain.FairActive,
				Date:   time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC),
				Clients: []domain.Client{
					{
						ClientID: "client-x",
						Name:     "CLIENTE-X",
						Status:   domain.ClientActive,
						Budget: domain.Budget{
							Income: []domain.IncomeLine{
								{LineID: "i1", Category: domain.CategoryVenta, Amount: decimal.NewFromInt(3000)},
							},
							Expenses: []domain.ExpenseLine{
								{LineID: "e1", Category: domain.CategoryCarpinteria, Estimated: decimal.NewFromInt(600)},
							},
						},
					},
				},
				RealExpenses: []domain.RealExpense{
					{
						ExpenseID:   "exp-1",
						Type:        domain.TypeExpense,
						Category:    domain.CategoryCarpinteria,
						Concept:     "Carpintero",
						TotalAmount: decimal.NewFromInt(500),
						Distribution: domain.Distribution{
							"client-x": decimal.NewFromInt(500),
						},
						DistributionMode: domain.DistributionProportional,
					},
				},
			},
		},
	}
}

type FairServiceTestSuite struct {
	suite.Suite
	mockRepo *MockDatasetRepository
	service  portssvc.FairSvcFacade
	ctx      context.Context
}

func (s *FairServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockDatasetRepository)
	s.service = services.NewFairService(s.mockRepo)
	s.ctx = context.Background()
}

func TestFairServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FairServiceTestSuite))
}

func (s *FairServiceTestSuite) TestListFairs() {
	s.mockRepo.On("Load", mock.Anything).Return(sampleDataset(), nil)

	fairs, err := s.service.ListFairs(s.ctx)

	s.NoError(err)
	s.Len(fairs, 1)
	s.Equal("FERIA-MADRID-2026", fairs[0].FairID)
}

func (s *FairServiceTestSuite) TestListFairs_EmptyDataset() {
	s.mockRepo.On("Load", mock.Anything).Return(&domain.Dataset{}, nil)

	fairs, err := s.service.ListFairs(s.ctx)

	s.NoError(err)
	s.NotNil(fairs)
	s.Empty(fairs)
}

func (s *FairServiceTestSuite) TestGetFair_NotFound() {
	s.mockRepo.On("Load", mock.Anything).Return(sampleDataset(), nil)

	_, err := s.service.GetFair(s.ctx, "no-such-fair")

	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *FairServiceTestSuite) TestCreateFair_SlugID() {
	var saved *domain.Dataset
	s.mockRepo.On("Load", mock.Anything).Return(sampleDataset(), nil)
	s.mockRepo.expectSave(&saved)

	fair, err := s.service.CreateFair(s.ctx, dto.CreateFairRequest{
		Name: "  Feria Valencia  ",
		Date: time.Date(2027, 2, 1, 0, 0, 0, 0, time.UTC),
	})

	s.NoError(err)
	s.Equal("FERIA-VALENCIA-2027", fair.FairID)
	s.Equal("Feria Valencia", fair.Name)
	s.Equal(domain.FairActive, fair.Status)
	s.Require().NotNil(saved)
	s.Len(saved.Fairs, 2)
}

func (s *FairServiceTestSuite) TestCreateFair_Duplicate() {
	s.mockRepo.On("Load", mock.Anything).Return(sampleDataset(), nil)

	_, err := s.service.CreateFair(s.ctx, dto.CreateFairRequest{
		Name: "Feria Madrid",
		Date: time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC),
	})

	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.mockRepo.AssertNotCalled(s.T(), "Save", mock.Anything, mock.Anything)
}

func (s *FairServiceTestSuite) TestCreateFair_CloneCopiesBudgetsOnly() {
	var saved *domain.Dataset
	s.mockRepo.On("Load", mock.Anything).Return(sampleDataset(), nil)
	s.mockRepo.expectSave(&saved)

	fair, err := s.service.CreateFair(s.ctx, dto.CreateFairRequest{
		Name:            "Feria Madrid",
		Date:            time.Date(2027, 5, 12, 0, 0, 0, 0, time.UTC),
		CloneFromFairID: "FERIA-MADRID-2026",
	})

	s.NoError(err)
	s.Require().Len(fair.Clients, 1)
	clone := fair.Clients[0]
	s.Equal("CLIENTE-X", clone.Name)
	s.NotEqual("client-x", clone.ClientID, "clone must not alias the source client id")
	s.Equal(domain.ClientPending, clone.Status)
	s.Require().Len(clone.Budget.Expenses, 1)
	s.True(clone.Budget.Expenses[0].Estimated.Equal(decimal.NewFromInt(600)))
	s.Empty(fair.RealExpenses, "real transactions are never cloned")
}

func (s *FairServiceTestSuite) TestCreateFair_CloneSourceMissing() {
	s.mockRepo.On("Load", mock.Anything).Return(sampleDataset(), nil)

	_, err := s.service.CreateFair(s.ctx, dto.CreateFairRequest{
		Name:            "Feria Bilbao",
		Date:            time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		CloneFromFairID: "gone",
	})

	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *FairServiceTestSuite) TestToggleArchive() {
	var saved *domain.Dataset
	s.mockRepo.On("Load", mock.Anything).Return(sampleDataset(), nil)
	s.mockRepo.expectSave(&saved)

	fair, err := s.service.ToggleArchive(s.ctx, "FERIA-MADRID-2026")

	s.NoError(err)
	s.Equal(domain.FairArchived, fair.Status)
	s.Require().NotNil(saved)
	s.Equal(domain.FairArchived, saved.Fairs[0].Status)
}

func (s *FairServiceTestSuite) TestToggleArchive_BackToActive() {
	ds := sampleDataset()
	ds.Fairs[0].Status = domain.FairArchived
	var saved *domain.Dataset
	s.mockRepo.On("Load", mock.Anything).Return(ds, nil)
	s.mockRepo.expectSave(&saved)

	fair, err := s.service.ToggleArchive(s.ctx, "FERIA-MADRID-2026")

	s.NoError(err)
	s.Equal(domain.FairActive, fair.Status)
}

func (s *FairServiceTestSuite) TestCreateClient_EmptyCategoryFallsBackToOtros() {
	var saved *domain.Dataset
	s.mockRepo.On("Load", mock.Anything).Return(sampleDataset(), nil)
	s.mockRepo.expectSave(&saved)

	client, err := s.service.CreateClient(s.ctx, "FERIA-MADRID-2026", dto.CreateClientRequest{
		Name: "CLIENTE-Y",
		Budget: dto.BudgetRequest{
			Income: []dto.IncomeLineRequest{
				{Description: "Venta stand", Amount: decimal.NewFromInt(1000)},
			},
			Expenses: []dto.ExpenseLineRequest{
				{Description: "Varios", Estimated: decimal.NewFromInt(50)},
				{Category: " montaje ", Estimated: decimal.NewFromInt(200)},
			},
		},
	})

	s.NoError(err)
	s.NotEmpty(client.ClientID)
	s.Equal(domain.ClientPending, client.Status)
	s.Equal(domain.CategoryVenta, client.Budget.Income[0].Category)
	s.Equal(domain.CategoryOtros, client.Budget.Expenses[0].Category)
	s.Equal(domain.CategoryMontaje, client.Budget.Expenses[1].Category)
	s.Require().NotNil(saved)
	s.Len(saved.Fairs[0].Clients, 2)
}

func (s *FairServiceTestSuite) TestReplaceClients_KeepsProvidedIDs() {
	var saved *domain.Dataset
	s.mockRepo.On("Load", mock.Anything).Return(sampleDataset(), nil)
	s.mockRepo.expectSave(&saved)

	clients, err := s.service.ReplaceClients(s.ctx, "FERIA-MADRID-2026", dto.ReplaceClientsRequest{
		Clients: []dto.CreateClientRequest{
			{ClientID: "client-x", Name: "CLIENTE-X"},
			{Name: "CLIENTE-Z"},
		},
	})

	s.NoError(err)
	s.Require().Len(clients, 2)
	s.Equal("client-x", clients[0].ClientID, "present ids survive a replace")
	s.NotEmpty(clients[1].ClientID)
	s.Require().NotNil(saved)
	s.Len(saved.Fairs[0].Clients, 2)
}

func (s *FairServiceTestSuite) TestDeleteClient() {
	var saved *domain.Dataset
	s.mockRepo.On("Load", mock.Anything).Return(sampleDataset(), nil)
	s.mockRepo.expectSave(&saved)

	err := s.service.DeleteClient(s.ctx, "FERIA-MADRID-2026", "client-x")

	s.NoError(err)
	s.Require().NotNil(saved)
	s.Empty(saved.Fairs[0].Clients)
	// The expense distribution still references the deleted id; reports treat
	// that as zero contribution.
	s.Len(saved.Fairs[0].RealExpenses, 1)
}

func (s *FairServiceTestSuite) TestDeleteClient_NotFound() {
	s.mockRepo.On("Load", mock.Anything).Return(sampleDataset(), nil)

	err := s.service.DeleteClient(s.ctx, "FERIA-MADRID-2026", "ghost")

	s.ErrorIs(err, apperrors.ErrNotFound)
	s.mockRepo.AssertNotCalled(s.T(), "Save", mock.Anything, mock.Anything)
}
