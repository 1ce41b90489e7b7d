package domain

import "github.com/shopspring/decimal"

// ClientStatus indicates the state of a client within its fair.
type ClientStatus string

const (
	ClientPending  ClientStatus = "Pending"
	ClientActive   ClientStatus = "Active"
	ClientArchived ClientStatus = "Archived"
)

// Client is a party billed within a fair. It belongs to exactly one fair and
// holds its own budgeted plan.
type Client struct {
	ClientID string       `json:"id"`
	Name     string       `json:"name"`
	Status   ClientStatus `json:"status"`
	Budget   Budget       `json:"budget"`
}

// Budget holds a client's planned income and expense line items.
type Budget struct {
	Income   []IncomeLine  `json:"income"`
	Expenses []ExpenseLine `json:"expenses"`
}

// IncomeLine is a planned income line item, normally in the VENTA category.
type IncomeLine struct {
	LineID      string          `json:"id"`
	Category    Category        `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// ExpenseLine is a planned cost line item.
type ExpenseLine struct {
	LineID      string          `json:"id"`
	Category    Category        `json:"category"`
	Description string          `json:"description"`
	Estimated   decimal.Decimal `json:"estimated"`
}

// BudgetedExpense sums the client's estimated expense amounts in a category.
func (c *Client) BudgetedExpense(category Category) decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Budget.Expenses {
		if line.Category == category {
			total = total.Add(line.Estimated)
		}
	}
	return total
}

// BudgetedExpenseTotal sums the client's estimated expense amounts across all
// categories.
func (c *Client) BudgetedExpenseTotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Budget.Expenses {
		total = total.Add(line.Estimated)
	}
	return total
}

// BudgetedIncomeTotal sums the client's planned income amounts.
func (c *Client) BudgetedIncomeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Budget.Income {
		total = total.Add(line.Amount)
	}
	return total
}
