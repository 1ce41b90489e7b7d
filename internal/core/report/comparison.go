// Package report combines aggregated ledger rows into operator-facing views:
// the budget-control comparison (earned value versus actual spend) and the
// budget matrix report with its flat export. Everything here is a pure,
// re-derivable view over the ledger package, recomputed on every call.
package report

import (
	"github.com/demostra/feria_budget_app/internal/core/domain"
	"github.com/demostra/feria_budget_app/internal/core/ledger"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ClampExecutionPct forces an execution percentage into [0, 100].
func ClampExecutionPct(pct decimal.Decimal) decimal.Decimal {
	if pct.IsNegative() {
		return decimal.Zero
	}
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}

// ComparisonRow is one category of the budget-control table.
type ComparisonRow struct {
	Category     domain.Category `json:"category"`
	Budget       decimal.Decimal `json:"budget"`
	ExecutionPct decimal.Decimal `json:"executionPct"`
	EarnedValue  decimal.Decimal `json:"earnedValue"`
	Real         decimal.Decimal `json:"real"`
	// Deviation is earned value minus real cost: positive means under budget
	// ("ahorro"), negative an overrun ("desvío").
	Deviation   decimal.Decimal `json:"deviation"`
	PctOfBudget decimal.Decimal `json:"pctOfBudget"`
}

// ComparisonTotals is the column-wise sum over all displayed rows.
type ComparisonTotals struct {
	Budget      decimal.Decimal `json:"budget"`
	EarnedValue decimal.Decimal `json:"earnedValue"`
	Real        decimal.Decimal `json:"real"`
	Deviation   decimal.Decimal `json:"deviation"`
}

// Comparison is the assembled budget-control view.
type Comparison struct {
	Rows   []ComparisonRow  `json:"rows"`
	Totals ComparisonTotals `json:"totals"`
}

// ComparisonOptions filters and parameterizes a comparison build.
type ComparisonOptions struct {
	// ClientIDs restricts the view; nil means every client in the snapshot.
	ClientIDs []string
	// ExecutionPcts overrides the per-category execution percentage
	// (default 100). Values are clamped to [0, 100].
	ExecutionPcts map[domain.Category]decimal.Decimal
	// AlwaysShowStandard keeps zero-valued standard categories in the table.
	AlwaysShowStandard bool
}

// BuildComparison folds budgets and real transactions into the earned-value
// comparison table.
func BuildComparison(clients []domain.Client, expenses []domain.RealExpense, opts ComparisonOptions) Comparison {
	active := ledger.FilterClients(clients, opts.ClientIDs)
	base := ledger.CategoryRows(active, expenses, ledger.RowOptions{AlwaysShowStandard: opts.AlwaysShowStandard})

	cmp := Comparison{
		Totals: ComparisonTotals{
			Budget:      decimal.Zero,
			EarnedValue: decimal.Zero,
			Real:        decimal.Zero,
			Deviation:   decimal.Zero,
		},
	}

	for _, row := range base {
		pct := hundred
		if override, ok := opts.ExecutionPcts[row.Category]; ok {
			pct = ClampExecutionPct(override)
		}

		earned := row.Budget.Mul(pct).Div(hundred)
		deviation := earned.Sub(row.Real)

		pctOfBudget := decimal.Zero
		if row.Budget.IsPositive() {
			pctOfBudget = row.Real.Div(row.Budget).Mul(hundred)
		}

		cmp.Rows = append(cmp.Rows, ComparisonRow{
			Category:     row.Category,
			Budget:       row.Budget,
			ExecutionPct: pct,
			EarnedValue:  earned,
			Real:         row.Real,
			Deviation:    deviation,
			PctOfBudget:  pctOfBudget,
		})

		cmp.Totals.Budget = cmp.Totals.Budget.Add(row.Budget)
		cmp.Totals.EarnedValue = cmp.Totals.EarnedValue.Add(earned)
		cmp.Totals.Real = cmp.Totals.Real.Add(row.Real)
		cmp.Totals.Deviation = cmp.Totals.Deviation.Add(deviation)
	}

	return cmp
}

// Flat renders the comparison for export. Execution percentages are emitted
// as fractions so the exporter can apply a percent format.
func (c Comparison) Flat() FlatTable {
	table := FlatTable{
		Columns: []string{
			"Partida",
			"Presupuesto Ofertado (Est.)",
			"% Ejecución",
			"Valor Avance",
			"Coste Real",
			"Obra en Curso (Imputado)",
			"Desviación (Margen)",
		},
	}

	for _, row := range c.Rows {
		table.Rows = append(table.Rows, []any{
			string(row.Category),
			row.Budget,
			row.ExecutionPct.Div(hundred),
			row.EarnedValue,
			row.Real,
			row.Real,
			row.Deviation,
		})
	}

	table.Rows = append(table.Rows, []any{
		"TOTALES",
		c.Totals.Budget,
		"",
		c.Totals.EarnedValue,
		c.Totals.Real,
		c.Totals.Real,
		c.Totals.Deviation,
	})

	return table
}
