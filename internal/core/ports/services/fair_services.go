package services

import (
	"context"

	"github.com/demostra/feria_budget_app/internal/core/domain"
	"github.com/demostra/feria_budget_app/internal/dto"
)

// FairReaderSvc defines read operations for fairs.
type FairReaderSvc interface {
	// ListFairs retrieves every fair in the dataset.
	ListFairs(ctx context.Context) ([]domain.Fair, error)

	// GetFair retrieves a single fair with clients and expenses.
	GetFair(ctx context.Context, fairID string) (*domain.Fair, error)
}

// FairWriterSvc defines write operations for fairs and their clients.
type FairWriterSvc interface {
	// CreateFair creates a fair, optionally cloning client budgets from an
	// existing one.
	CreateFair(ctx context.Context, req dto.CreateFairRequest) (*domain.Fair, error)

	// ToggleArchive flips a fair between ACTIVE and ARCHIVED.
	ToggleArchive(ctx context.Context, fairID string) (*domain.Fair, error)

	// CreateClient adds a client with its budget to a fair.
	CreateClient(ctx context.Context, fairID string, req dto.CreateClientRequest) (*domain.Client, error)

	// ReplaceClients swaps a fair's whole client set for the given one.
	ReplaceClients(ctx context.Context, fairID string, req dto.ReplaceClientsRequest) ([]domain.Client, error)

	// DeleteClient removes a client from a fair. Existing expense
	// distributions keep their entries; reports simply stop counting them.
	DeleteClient(ctx context.Context, fairID string, clientID string) error
}

// FairSvcFacade combines all fair-related service interfaces.
type FairSvcFacade interface {
	FairReaderSvc
	FairWriterSvc
}
