package services

import (
	portsrepo "github.com/demostra/feria_budget_app/internal/core/ports/repositories"
	portssvc "github.com/demostra/feria_budget_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(datasetRepo portsrepo.DatasetRepository) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Fair = NewFairService(datasetRepo)
	container.Expense = NewExpenseService(datasetRepo)
	container.Reporting = NewReportingService(datasetRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.FairSvcFacade    = (*fairService)(nil)
	_ portssvc.ExpenseSvcFacade = (*expenseService)(nil)
	_ portssvc.ReportingService = (*reportingService)(nil)
)
