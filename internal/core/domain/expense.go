package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes costs from sales.
type TransactionType string

const (
	TypeExpense TransactionType = "EXPENSE"
	TypeIncome  TransactionType = "INCOME"
)

// DistributionMode selects how a transaction total is split across clients.
type DistributionMode string

const (
	DistributionProportional DistributionMode = "PROPORTIONAL"
	DistributionManual       DistributionMode = "MANUAL"
)

// Distribution maps client IDs to the portion of a transaction allocated to
// them. Lookups for absent clients yield zero.
type Distribution map[string]decimal.Decimal

// Amount returns the portion allocated to clientID, zero if absent.
func (d Distribution) Amount(clientID string) decimal.Decimal {
	if v, ok := d[clientID]; ok {
		return v
	}
	return decimal.Zero
}

// Total sums all allocated portions.
func (d Distribution) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range d {
		total = total.Add(v)
	}
	return total
}

// RealExpense is an actual recorded transaction (an invoice or a sale),
// distributed across the clients of its fair. TotalAmount is signed: a
// negative amount on an EXPENSE records a provider refund, a negative amount
// on an INCOME records a credit note. The sign never changes the type.
type RealExpense struct {
	ExpenseID        string           `json:"id"`
	Type             TransactionType  `json:"type"`
	Category         Category         `json:"category"`
	Provider         string           `json:"provider,omitempty"` // expenses only
	Concept          string           `json:"concept"`
	Date             time.Time        `json:"date"`
	TotalAmount      decimal.Decimal  `json:"totalAmount"`
	Distribution     Distribution     `json:"distribution"`
	DistributionMode DistributionMode `json:"distributionMode"`
	AuditFields
}
