// Package distribution computes how a transaction's total amount is split
// across the clients selected for it. All functions are pure: they operate on
// a snapshot of the fair's clients and never touch shared state.
package distribution

import (
	"strings"

	"github.com/demostra/feria_budget_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Tolerance is the maximum accepted drift between a transaction's total
// amount and the sum of its distribution, in currency units. Drift beyond it
// is a warning requiring operator confirmation, never a hard rejection.
var Tolerance = decimal.NewFromFloat(0.02)

// Weights is the first pass of a proportional distribution: each client's
// budgeted estimate for a category, computed over ALL clients of the fair so
// that the relative weight of the selected subset stays auditable.
type Weights struct {
	ByClient    map[string]decimal.Decimal
	TotalBudget decimal.Decimal
}

// BudgetWeights computes per-client budget weights for a category across all
// given clients. When no client has budgeted the category at all, every
// client gets weight 1 so a later distribution degrades to an equal split.
func BudgetWeights(clients []domain.Client, category domain.Category) Weights {
	w := Weights{
		ByClient:    make(map[string]decimal.Decimal, len(clients)),
		TotalBudget: decimal.Zero,
	}

	for i := range clients {
		catBudget := clients[i].BudgetedExpense(category)
		w.ByClient[clients[i].ClientID] = catBudget
		w.TotalBudget = w.TotalBudget.Add(catBudget)
	}

	if w.TotalBudget.IsZero() {
		for i := range clients {
			w.ByClient[clients[i].ClientID] = decimal.NewFromInt(1)
		}
	}

	return w
}

// Request carries everything the engine needs to split one transaction.
type Request struct {
	Type              domain.TransactionType
	Category          domain.Category
	TotalAmount       decimal.Decimal
	SelectedClientIDs []string
	Mode              domain.DistributionMode
	// ManualAmounts holds operator-typed amounts per client, used only in
	// MANUAL mode. Missing or unparsable entries count as zero.
	ManualAmounts map[string]string
}

// Distribute produces the client-id → allocated-amount mapping for a request.
//
// INCOME assigns the full amount to the single selected client regardless of
// mode. MANUAL takes the operator's values verbatim. PROPORTIONAL is the
// two-pass computation: budget weights over the whole fair, then
// normalization over the selected subset only.
func Distribute(clients []domain.Client, req Request) domain.Distribution {
	result := domain.Distribution{}

	if req.Type == domain.TypeIncome {
		// A sale has exactly one owner; the selection layer enforces
		// cardinality, the engine just honors the sole id.
		if len(req.SelectedClientIDs) > 0 {
			result[req.SelectedClientIDs[0]] = req.TotalAmount
		}
		return result
	}

	if req.Mode == domain.DistributionManual {
		for _, id := range req.SelectedClientIDs {
			result[id] = parseAmount(req.ManualAmounts[id])
		}
		return result
	}

	// PROPORTIONAL: pass 1, weights over every client of the fair.
	weights := BudgetWeights(clients, req.Category)

	// Pass 2: restrict to the selected clients that actually exist; stale
	// ids contribute nothing.
	selected := make(map[string]struct{}, len(req.SelectedClientIDs))
	for _, id := range req.SelectedClientIDs {
		selected[id] = struct{}{}
	}
	var active []string
	for i := range clients {
		if _, ok := selected[clients[i].ClientID]; ok {
			active = append(active, clients[i].ClientID)
		}
	}
	if len(active) == 0 {
		return result
	}

	if weights.TotalBudget.IsPositive() {
		activeBudgetSum := decimal.Zero
		for _, id := range active {
			activeBudgetSum = activeBudgetSum.Add(weights.ByClient[id])
		}

		if activeBudgetSum.IsZero() {
			// Selected clients carry no weight even though others do.
			equalSplit(result, req.TotalAmount, active)
		} else {
			for _, id := range active {
				result[id] = req.TotalAmount.Mul(weights.ByClient[id]).Div(activeBudgetSum)
			}
		}
	} else {
		// Nobody budgeted this category: equal split.
		equalSplit(result, req.TotalAmount, active)
	}

	return result
}

func equalSplit(result domain.Distribution, total decimal.Decimal, clientIDs []string) {
	split := total.Div(decimal.NewFromInt(int64(len(clientIDs))))
	for _, id := range clientIDs {
		result[id] = split
	}
}

// Diff returns totalAmount minus the distributed sum.
func Diff(totalAmount decimal.Decimal, dist domain.Distribution) decimal.Decimal {
	return totalAmount.Sub(dist.Total())
}

// IsBalanced reports whether the distribution matches the total within
// Tolerance.
func IsBalanced(totalAmount decimal.Decimal, dist domain.Distribution) bool {
	return Diff(totalAmount, dist).Abs().LessThan(Tolerance)
}

// parseAmount converts operator input to a decimal, degrading to zero on
// malformed input. Silent degradation is the documented behavior; the
// imbalance it may cause is surfaced by the balance check instead.
func parseAmount(raw string) decimal.Decimal {
	v, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero
	}
	return v
}
