package report_test

import (
	"testing"

	"github.com/demostra/feria_budget_app/internal/core/domain"
	"github.com/demostra/feria_budget_app/internal/core/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func comparisonFixture() ([]domain.Client, []domain.RealExpense) {
	clients := []domain.Client{
		{
			ClientID: "X", Name: "CLIENTE-X",
			Budget: domain.Budget{
				Income: []domain.IncomeLine{
					{LineID: "i1", Category: domain.CategoryVenta, Amount: dec(3000)},
				},
				Expenses: []domain.ExpenseLine{
					{LineID: "e1", Category: domain.CategoryCarpinteria, Estimated: dec(600)},
				},
			},
		},
		{
			ClientID: "Y", Name: "CLIENTE-Y",
			Budget: domain.Budget{
				Expenses: []domain.ExpenseLine{
					{LineID: "e2", Category: domain.CategoryCarpinteria, Estimated: dec(400)},
				},
			},
		},
	}
	expenses := []domain.RealExpense{
		{
			ExpenseID: "EXP-1", Type: domain.TypeExpense, Category: domain.CategoryCarpinteria,
			TotalAmount:  dec(750),
			Distribution: domain.Distribution{"X": dec(450), "Y": dec(300)},
		},
	}
	return clients, expenses
}

func findRow(t *testing.T, c report.Comparison, cat domain.Category) report.ComparisonRow {
	t.Helper()
	for _, r := range c.Rows {
		if r.Category == cat {
			return r
		}
	}
	t.Fatalf("row %s not found", cat)
	return report.ComparisonRow{}
}

func TestClampExecutionPct(t *testing.T) {
	assert.True(t, report.ClampExecutionPct(dec(-10)).IsZero())
	assert.True(t, report.ClampExecutionPct(dec(500)).Equal(dec(100)))
	assert.True(t, report.ClampExecutionPct(dec(80)).Equal(dec(80)))
}

func TestBuildComparison_EarnedValueAndDeviation(t *testing.T) {
	// Scenario D: fair-wide CARPINTERIA budget is 1000, execution 80% gives
	// an earned value of 800; with 750 real cost the deviation is +50.
	clients, expenses := comparisonFixture()

	cmp := report.BuildComparison(clients, expenses, report.ComparisonOptions{
		ExecutionPcts: map[domain.Category]decimal.Decimal{
			domain.CategoryCarpinteria: dec(80),
		},
	})

	row := findRow(t, cmp, domain.CategoryCarpinteria)
	assert.True(t, row.Budget.Equal(dec(1000)))
	assert.True(t, row.EarnedValue.Equal(dec(800)))
	assert.True(t, row.Real.Equal(dec(750)))
	assert.True(t, row.Deviation.Equal(dec(50)), "positive deviation means under budget")
	assert.True(t, row.PctOfBudget.Equal(dec(75)))
}

func TestBuildComparison_DefaultExecutionIs100(t *testing.T) {
	clients, expenses := comparisonFixture()

	cmp := report.BuildComparison(clients, expenses, report.ComparisonOptions{})

	row := findRow(t, cmp, domain.CategoryCarpinteria)
	assert.True(t, row.ExecutionPct.Equal(dec(100)))
	assert.True(t, row.EarnedValue.Equal(row.Budget))
}

func TestBuildComparison_ClampsOperatorInput(t *testing.T) {
	clients, expenses := comparisonFixture()

	cmp := report.BuildComparison(clients, expenses, report.ComparisonOptions{
		ExecutionPcts: map[domain.Category]decimal.Decimal{
			domain.CategoryCarpinteria: dec(500),
		},
	})

	row := findRow(t, cmp, domain.CategoryCarpinteria)
	assert.True(t, row.ExecutionPct.Equal(dec(100)))

	cmp = report.BuildComparison(clients, expenses, report.ComparisonOptions{
		ExecutionPcts: map[domain.Category]decimal.Decimal{
			domain.CategoryCarpinteria: dec(-10),
		},
	})

	row = findRow(t, cmp, domain.CategoryCarpinteria)
	assert.True(t, row.ExecutionPct.IsZero())
	assert.True(t, row.EarnedValue.IsZero())
}

func TestBuildComparison_ClientFilter(t *testing.T) {
	clients, expenses := comparisonFixture()

	cmp := report.BuildComparison(clients, expenses, report.ComparisonOptions{
		ClientIDs: []string{"Y"},
	})

	row := findRow(t, cmp, domain.CategoryCarpinteria)
	assert.True(t, row.Budget.Equal(dec(400)))
	assert.True(t, row.Real.Equal(dec(300)))
}

func TestBuildComparison_ZeroBudgetPctGuard(t *testing.T) {
	clients := []domain.Client{{ClientID: "A", Name: "A"}}
	expenses := []domain.RealExpense{
		{
			ExpenseID: "EXP-1", Type: domain.TypeExpense, Category: domain.CategoryMontaje,
			TotalAmount:  dec(120),
			Distribution: domain.Distribution{"A": dec(120)},
		},
	}

	cmp := report.BuildComparison(clients, expenses, report.ComparisonOptions{})

	row := findRow(t, cmp, domain.CategoryMontaje)
	assert.True(t, row.PctOfBudget.IsZero(), "division by zero budget is guarded")
	assert.True(t, row.Deviation.Equal(dec(-120)))
}

func TestBuildComparison_Totals(t *testing.T) {
	clients, expenses := comparisonFixture()

	cmp := report.BuildComparison(clients, expenses, report.ComparisonOptions{})

	// Rows: VENTA (budget 3000, real 0) and CARPINTERIA (1000, 750).
	assert.True(t, cmp.Totals.Budget.Equal(dec(4000)))
	assert.True(t, cmp.Totals.Real.Equal(dec(750)))
	assert.True(t, cmp.Totals.EarnedValue.Equal(dec(4000)))
	assert.True(t, cmp.Totals.Deviation.Equal(dec(3250)))
}

func TestComparisonFlat_RowOrder(t *testing.T) {
	clients, expenses := comparisonFixture()

	flat := report.BuildComparison(clients, expenses, report.ComparisonOptions{}).Flat()

	require.Equal(t, 7, len(flat.Columns))
	assert.Equal(t, "Partida", flat.Columns[0])

	last := flat.Rows[len(flat.Rows)-1]
	assert.Equal(t, "TOTALES", last[0])
	assert.Equal(t, "", last[2], "no execution pct on the totals row")

	// Cells are raw decimals, not formatted strings.
	carp := flat.Rows[1]
	assert.Equal(t, "CARPINTERIA", carp[0])
	budget, ok := carp[1].(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, budget.Equal(dec(1000)))
	pct, ok := carp[2].(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, pct.Equal(dec(1)), "execution exported as fraction")
}
