package ledger_test

import (
	"testing"

	"github.com/demostra/feria_budget_app/internal/core/domain"
	"github.com/demostra/feria_budget_app/internal/core/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func testClients() []domain.Client {
	return []domain.Client{
		{
			ClientID: "X", Name: "CLIENTE-X", Status: domain.ClientActive,
			Budget: domain.Budget{
				Income: []domain.IncomeLine{
					{LineID: "i1", Category: domain.CategoryVenta, Description: "Stand", Amount: dec(5000)},
				},
				Expenses: []domain.ExpenseLine{
					{LineID: "e1", Category: domain.CategoryCarpinteria, Estimated: dec(1000)},
					{LineID: "e2", Category: domain.CategoryCarpinteria, Estimated: dec(500)},
					{LineID: "e3", Category: domain.Category("DECORACION"), Estimated: dec(200)},
				},
			},
		},
		{
			ClientID: "Y", Name: "CLIENTE-Y", Status: domain.ClientActive,
			Budget: domain.Budget{
				Expenses: []domain.ExpenseLine{
					{LineID: "e4", Category: domain.CategoryMontaje, Estimated: dec(400)},
				},
			},
		},
	}
}

func testExpenses() []domain.RealExpense {
	return []domain.RealExpense{
		{
			ExpenseID: "EXP-1", Type: domain.TypeExpense, Category: domain.CategoryCarpinteria,
			TotalAmount:  dec(750),
			Distribution: domain.Distribution{"X": dec(750)},
		},
		{
			ExpenseID: "EXP-2", Type: domain.TypeExpense, Category: domain.CategoryMontaje,
			TotalAmount:  dec(100),
			Distribution: domain.Distribution{"X": dec(60), "Y": dec(40)},
		},
		{
			ExpenseID: "EXP-3", Type: domain.TypeIncome, Category: domain.CategoryVenta,
			TotalAmount:  dec(500),
			Distribution: domain.Distribution{"X": dec(500)},
		},
	}
}

func TestBudgetTotal(t *testing.T) {
	clients := testClients()

	assert.True(t, ledger.BudgetTotal(clients, domain.CategoryCarpinteria).Equal(dec(1500)))
	assert.True(t, ledger.BudgetTotal(clients, domain.CategoryMontaje).Equal(dec(400)))
	// Income category draws from planned income lines.
	assert.True(t, ledger.BudgetTotal(clients, domain.CategoryVenta).Equal(dec(5000)))
	assert.True(t, ledger.BudgetTotal(clients, domain.CategorySSFF).IsZero())
}

func TestRealTotal(t *testing.T) {
	clients := testClients()
	expenses := testExpenses()

	assert.True(t, ledger.RealTotal(expenses, domain.CategoryCarpinteria, clients).Equal(dec(750)))
	assert.True(t, ledger.RealTotal(expenses, domain.CategoryMontaje, clients).Equal(dec(100)))
	assert.True(t, ledger.RealTotal(expenses, domain.CategoryVenta, clients).Equal(dec(500)))

	// Restricting the client set restricts the contributions.
	onlyY := ledger.FilterClients(clients, []string{"Y"})
	assert.True(t, ledger.RealTotal(expenses, domain.CategoryMontaje, onlyY).Equal(dec(40)))
}

func TestRealTotal_DanglingClientContributesZero(t *testing.T) {
	clients := testClients()
	expenses := []domain.RealExpense{
		{
			ExpenseID: "EXP-9", Type: domain.TypeExpense, Category: domain.CategoryMontaje,
			TotalAmount:  dec(80),
			Distribution: domain.Distribution{"DELETED-CLIENT": dec(80)},
		},
	}

	assert.True(t, ledger.RealTotal(expenses, domain.CategoryMontaje, clients).IsZero())
}

func TestFilterClients(t *testing.T) {
	clients := testClients()

	assert.Len(t, ledger.FilterClients(clients, nil), 2)
	assert.Len(t, ledger.FilterClients(clients, []string{"X"}), 1)
	assert.Empty(t, ledger.FilterClients(clients, []string{"MISSING"}))
}

func TestClientActuals(t *testing.T) {
	expenses := testExpenses()

	a := ledger.ClientActuals(expenses, "X")
	assert.True(t, a.TotalExpenses.Equal(dec(810)), "expenses: %s", a.TotalExpenses)
	assert.True(t, a.TotalIncome.Equal(dec(500)))
	assert.True(t, a.Profit.Equal(dec(-310)))
	assert.True(t, a.MarginPct.Equal(dec(-62)))

	b := ledger.ClientActuals(expenses, "Y")
	assert.True(t, b.TotalExpenses.Equal(dec(40)))
	assert.True(t, b.TotalIncome.IsZero())
	assert.True(t, b.Profit.Equal(dec(-40)))
	assert.True(t, b.MarginPct.IsZero(), "margin undefined without income")
}

func TestClientActuals_IncomeCountedOnce(t *testing.T) {
	// Scenario E: a 500 sale assigned to Z appears exactly once in Z's income,
	// also when the same fair is aggregated as part of a global view.
	sale := domain.RealExpense{
		ExpenseID: "EXP-S", Type: domain.TypeIncome, Category: domain.CategoryVenta,
		TotalAmount:  dec(500),
		Distribution: domain.Distribution{"Z": dec(500)},
	}
	fairExpenses := []domain.RealExpense{sale}

	perFair := ledger.ClientActuals(fairExpenses, "Z")
	assert.True(t, perFair.TotalIncome.Equal(dec(500)))

	// Global mode concatenates each fair's transactions once.
	global := append([]domain.RealExpense{}, fairExpenses...)
	globalActuals := ledger.ClientActuals(global, "Z")
	assert.True(t, globalActuals.TotalIncome.Equal(dec(500)))
}

func TestClientActuals_Idempotent(t *testing.T) {
	expenses := testExpenses()

	first := ledger.ClientActuals(expenses, "X")
	second := ledger.ClientActuals(expenses, "X")
	assert.True(t, first.TotalExpenses.Equal(second.TotalExpenses))
	assert.True(t, first.TotalIncome.Equal(second.TotalIncome))
	assert.True(t, first.Profit.Equal(second.Profit))
}

func TestCategoryRows_PrunesZeroRows(t *testing.T) {
	clients := testClients()
	expenses := testExpenses()

	rows := ledger.CategoryRows(clients, expenses, ledger.RowOptions{})

	byCat := make(map[domain.Category]ledger.Row, len(rows))
	for _, r := range rows {
		byCat[r.Category] = r
	}

	require.Contains(t, byCat, domain.CategoryCarpinteria)
	require.Contains(t, byCat, domain.CategoryMontaje)
	require.Contains(t, byCat, domain.CategoryVenta)
	require.Contains(t, byCat, domain.Category("DECORACION"), "ad-hoc budget category joins the row set")
	assert.NotContains(t, byCat, domain.CategorySSFF, "all-zero categories are pruned")

	assert.True(t, byCat[domain.CategoryCarpinteria].Budget.Equal(dec(1500)))
	assert.True(t, byCat[domain.CategoryCarpinteria].Real.Equal(dec(750)))
}

func TestCategoryRows_StandardOrderThenAdHoc(t *testing.T) {
	clients := testClients()

	rows := ledger.CategoryRows(clients, nil, ledger.RowOptions{AlwaysShowStandard: true})

	require.Len(t, rows, len(domain.StandardCategories)+1)
	for i, cat := range domain.StandardCategories {
		assert.Equal(t, cat, rows[i].Category)
	}
	assert.Equal(t, domain.Category("DECORACION"), rows[len(rows)-1].Category)
}
