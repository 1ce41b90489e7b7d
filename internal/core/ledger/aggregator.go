// Package ledger folds real transactions back against budgeted plans. Every
// function is a pure fold over a dataset snapshot: running it twice on the
// same data yields the same totals.
package ledger

import (
	"github.com/demostra/feria_budget_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FilterClients restricts clients to the given id set. A nil or empty set
// means "all clients". Unknown ids are simply absent from the result.
func FilterClients(clients []domain.Client, clientIDs []string) []domain.Client {
	if len(clientIDs) == 0 {
		return clients
	}
	wanted := make(map[string]struct{}, len(clientIDs))
	for _, id := range clientIDs {
		wanted[id] = struct{}{}
	}
	var filtered []domain.Client
	for i := range clients {
		if _, ok := wanted[clients[i].ClientID]; ok {
			filtered = append(filtered, clients[i])
		}
	}
	return filtered
}

// BudgetTotal sums the budgeted amounts for a category across the given
// clients. The income category draws from planned income lines, every other
// category from estimated expense lines.
func BudgetTotal(clients []domain.Client, category domain.Category) decimal.Decimal {
	total := decimal.Zero
	for i := range clients {
		if category == domain.CategoryVenta {
			total = total.Add(clients[i].BudgetedIncomeTotal())
		} else {
			total = total.Add(clients[i].BudgetedExpense(category))
		}
	}
	return total
}

// RealTotal sums the distributed portions of all transactions in a category
// for the given clients. Transactions referencing clients outside the set
// contribute nothing; dangling client ids never fail the fold.
func RealTotal(expenses []domain.RealExpense, category domain.Category, clients []domain.Client) decimal.Decimal {
	total := decimal.Zero
	for i := range expenses {
		if expenses[i].Category != category {
			continue
		}
		for j := range clients {
			total = total.Add(expenses[i].Distribution.Amount(clients[j].ClientID))
		}
	}
	return total
}

// Actuals are a client's running totals over the real transactions of its
// fair.
type Actuals struct {
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	Profit        decimal.Decimal `json:"profit"`
	MarginPct     decimal.Decimal `json:"marginPct"`
}

// ClientActuals computes a client's expense, income, profit and margin totals
// from real transactions. Margin is profit over income as a percentage, zero
// when there is no income.
func ClientActuals(expenses []domain.RealExpense, clientID string) Actuals {
	a := Actuals{
		TotalExpenses: decimal.Zero,
		TotalIncome:   decimal.Zero,
	}
	for i := range expenses {
		portion := expenses[i].Distribution.Amount(clientID)
		switch expenses[i].Type {
		case domain.TypeIncome:
			a.TotalIncome = a.TotalIncome.Add(portion)
		default:
			a.TotalExpenses = a.TotalExpenses.Add(portion)
		}
	}
	a.Profit = a.TotalIncome.Sub(a.TotalExpenses)
	if !a.TotalIncome.IsZero() {
		a.MarginPct = a.Profit.Div(a.TotalIncome).Mul(decimal.NewFromInt(100))
	} else {
		a.MarginPct = decimal.Zero
	}
	return a
}

// ExtraCategories collects ad-hoc categories present in the clients' budget
// data beyond the standard list.
func ExtraCategories(clients []domain.Client) map[domain.Category]struct{} {
	extras := make(map[domain.Category]struct{})
	for i := range clients {
		for _, line := range clients[i].Budget.Expenses {
			c := domain.NormalizeCategory(string(line.Category))
			if !domain.IsStandard(c) {
				extras[c] = struct{}{}
			}
		}
	}
	return extras
}

// Row is one category's budgeted versus real totals for the active client
// filter.
type Row struct {
	Category domain.Category `json:"category"`
	Budget   decimal.Decimal `json:"budget"`
	Real     decimal.Decimal `json:"real"`
}

// RowOptions controls which category rows are emitted.
type RowOptions struct {
	// AlwaysShowStandard keeps standard categories even when both totals are
	// zero. Ad-hoc categories with no data are always pruned.
	AlwaysShowStandard bool
}

// CategoryRows builds the budget-versus-real row set across the category
// universe (standard list first, ad-hoc budget categories appended sorted).
// Rows where both totals are zero are omitted to avoid clutter, unless
// AlwaysShowStandard keeps the standard ones.
func CategoryRows(clients []domain.Client, expenses []domain.RealExpense, opts RowOptions) []Row {
	universe := domain.CategoryUniverse(ExtraCategories(clients))

	var rows []Row
	for _, cat := range universe {
		budget := BudgetTotal(clients, cat)
		real := RealTotal(expenses, cat, clients)
		if budget.IsZero() && real.IsZero() && !(opts.AlwaysShowStandard && domain.IsStandard(cat)) {
			continue
		}
		rows = append(rows, Row{Category: cat, Budget: budget, Real: real})
	}
	return rows
}
