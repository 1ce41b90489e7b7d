package report_test

import (
	"testing"

	"github.com/demostra/feria_budget_app/internal/core/domain"
	"github.com/demostra/feria_budget_app/internal/core/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matrixColumns() []report.ClientColumn {
	return []report.ClientColumn{
		{
			FairID: "FERIA-MADRID-2026", FairName: "FERIA MADRID",
			Client: domain.Client{
				ClientID: "X", Name: "CLIENTE-X",
				Budget: domain.Budget{
					Income: []domain.IncomeLine{
						{LineID: "i1", Category: domain.CategoryVenta, Amount: dec(3000)},
					},
					Expenses: []domain.ExpenseLine{
						{LineID: "e1", Category: domain.CategoryCarpinteria, Estimated: dec(600)},
						{LineID: "e2", Category: domain.Category("  decoracion "), Estimated: dec(150)},
					},
				},
			},
		},
		{
			FairID: "FERIA-MADRID-2026", FairName: "FERIA MADRID",
			Client: domain.Client{
				ClientID: "Y", Name: "CLIENTE-Y",
				Budget: domain.Budget{
					Income: []domain.IncomeLine{
						{LineID: "i2", Category: domain.CategoryVenta, Amount: dec(1000)},
					},
					Expenses: []domain.ExpenseLine{
						{LineID: "e3", Category: domain.CategoryMontaje, Estimated: dec(250)},
					},
				},
			},
		},
	}
}

func matrixRow(t *testing.T, m report.Matrix, cat domain.Category) report.MatrixRow {
	t.Helper()
	for _, r := range m.Rows {
		if r.Category == cat {
			return r
		}
	}
	t.Fatalf("row %s not found", cat)
	return report.MatrixRow{}
}

func TestBuildMatrix_Totals(t *testing.T) {
	m := report.BuildMatrix(matrixColumns(), report.MatrixFair)

	assert.True(t, m.ClientTotals["X"].Equal(dec(750)))
	assert.True(t, m.ClientTotals["Y"].Equal(dec(250)))
	assert.True(t, m.ClientIncomes["X"].Equal(dec(3000)))
	assert.True(t, m.GrandTotal.Equal(dec(1000)))
	assert.True(t, m.GrandIncome.Equal(dec(4000)))

	venta := matrixRow(t, m, domain.CategoryVenta)
	assert.True(t, venta.Values["X"].Equal(dec(3000)), "VENTA row draws from income lines")
	assert.True(t, venta.Total.Equal(dec(4000)))

	carp := matrixRow(t, m, domain.CategoryCarpinteria)
	assert.True(t, carp.Values["X"].Equal(dec(600)))
	assert.True(t, carp.Values["Y"].IsZero())
}

func TestBuildMatrix_NormalizesAdHocCategories(t *testing.T) {
	m := report.BuildMatrix(matrixColumns(), report.MatrixFair)

	row := matrixRow(t, m, domain.Category("DECORACION"))
	assert.True(t, row.Values["X"].Equal(dec(150)))
}

func TestMatrixSort_CategoryKeepsStandardBlockFirst(t *testing.T) {
	m := report.BuildMatrix(matrixColumns(), report.MatrixFair)

	m.Sort(report.SortByCategory, report.SortDesc)

	// Even descending, ad-hoc categories stay after the standard block.
	last := m.Rows[len(m.Rows)-1]
	assert.Equal(t, domain.Category("DECORACION"), last.Category)
	assert.Equal(t, domain.CategoryOtros, m.Rows[0].Category, "descending ordinal starts at the end of the standard list")
}

func TestMatrixSort_ByClientColumn(t *testing.T) {
	m := report.BuildMatrix(matrixColumns(), report.MatrixFair)

	m.Sort("X", report.SortDesc)

	assert.Equal(t, domain.CategoryVenta, m.Rows[0].Category)
	assert.Equal(t, domain.CategoryCarpinteria, m.Rows[1].Category)
}

func TestMatrixSort_ByTotal(t *testing.T) {
	m := report.BuildMatrix(matrixColumns(), report.MatrixFair)

	m.Sort(report.SortByTotal, report.SortDesc)

	assert.Equal(t, domain.CategoryVenta, m.Rows[0].Category)
}

func TestMatrixFlat_FairMode(t *testing.T) {
	m := report.BuildMatrix(matrixColumns(), report.MatrixFair)

	flat := m.Flat()

	require.Equal(t, []string{
		"Partida / Concepto",
		"CLIENTE-X (FERIA MADRID)",
		"CLIENTE-Y (FERIA MADRID)",
		"TOTAL",
		"%",
	}, flat.Columns)

	// Literal order: category rows, TOTAL GENERAL, BENEFICIO, % BENEFICIO.
	n := len(flat.Rows)
	require.GreaterOrEqual(t, n, 4)
	assert.Equal(t, "TOTAL GENERAL", flat.Rows[n-3][0])
	assert.Equal(t, "BENEFICIO", flat.Rows[n-2][0])
	assert.Equal(t, "% BENEFICIO", flat.Rows[n-1][0])

	totalRow := flat.Rows[n-3]
	grand, ok := totalRow[3].(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, grand.Equal(dec(1000)))

	profitRow := flat.Rows[n-2]
	xProfit, ok := profitRow[1].(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, xProfit.Equal(dec(2250)))

	pctRow := flat.Rows[n-1]
	xPct, ok := pctRow[1].(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, xPct.Equal(dec(0.75)), "profit fraction of income")
	assert.Equal(t, "", pctRow[len(pctRow)-1])
}

func TestMatrixFlat_GlobalModeHasNoTotalColumnsNorPctRow(t *testing.T) {
	m := report.BuildMatrix(matrixColumns(), report.MatrixGlobal)

	flat := m.Flat()

	require.Equal(t, []string{
		"Partida / Concepto",
		"CLIENTE-X (FERIA MADRID)",
		"CLIENTE-Y (FERIA MADRID)",
	}, flat.Columns)

	n := len(flat.Rows)
	assert.Equal(t, "TOTAL GENERAL", flat.Rows[n-2][0])
	assert.Equal(t, "BENEFICIO", flat.Rows[n-1][0])
}

func TestMatrixFlat_SkipsZeroAdHocRows(t *testing.T) {
	cols := matrixColumns()
	// Add an ad-hoc category whose lines sum to zero.
	cols[0].Client.Budget.Expenses = append(cols[0].Client.Budget.Expenses, domain.ExpenseLine{
		LineID: "e9", Category: domain.Category("VIGILANCIA"), Estimated: decimal.Zero,
	})

	flat := report.BuildMatrix(cols, report.MatrixFair).Flat()

	for _, row := range flat.Rows {
		assert.NotEqual(t, "VIGILANCIA", row[0])
	}
}
