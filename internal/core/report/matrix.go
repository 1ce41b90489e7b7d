package report

import (
	"sort"

	"github.com/demostra/feria_budget_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MatrixMode selects the report shape.
type MatrixMode string

const (
	// MatrixFair reports one fair's clients and adds a TOTAL and % column.
	MatrixFair MatrixMode = "FAIR"
	// MatrixGlobal compares clients possibly drawn from different fairs;
	// there is no normalized total column.
	MatrixGlobal MatrixMode = "GLOBAL"
)

// Matrix sort columns beyond a client id.
const (
	SortByCategory = "CATEGORY"
	SortByTotal    = "TOTAL"
)

// SortDirection orders matrix rows ascending or descending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ClientColumn is one column of the matrix: a client together with the fair
// it belongs to (needed for the global/comparative header).
type ClientColumn struct {
	Client   domain.Client
	FairID   string
	FairName string
}

// MatrixRow is one budget category across all client columns.
type MatrixRow struct {
	Category domain.Category            `json:"category"`
	Values   map[string]decimal.Decimal `json:"values"`
	Total    decimal.Decimal            `json:"total"`
}

// Matrix is the budgeted-amounts report: categories as rows, clients as
// columns, plus per-client totals and profit figures.
type Matrix struct {
	Mode          MatrixMode                 `json:"mode"`
	Columns       []ClientColumn             `json:"-"`
	Rows          []MatrixRow                `json:"rows"`
	ClientTotals  map[string]decimal.Decimal `json:"clientTotals"`
	ClientIncomes map[string]decimal.Decimal `json:"clientIncomes"`
	GrandTotal    decimal.Decimal            `json:"grandTotal"`
	GrandIncome   decimal.Decimal            `json:"grandIncome"`
}

// BuildMatrix assembles the budget matrix over the given client columns.
// Category labels are normalized (upper/trim) before matching so ad-hoc
// budget categories with inconsistent casing land on one row.
func BuildMatrix(columns []ClientColumn, mode MatrixMode) Matrix {
	m := Matrix{
		Mode:          mode,
		Columns:       columns,
		ClientTotals:  make(map[string]decimal.Decimal, len(columns)),
		ClientIncomes: make(map[string]decimal.Decimal, len(columns)),
		GrandTotal:    decimal.Zero,
		GrandIncome:   decimal.Zero,
	}

	extras := make(map[domain.Category]struct{})
	for _, col := range columns {
		c := col.Client

		total := c.BudgetedExpenseTotal()
		income := c.BudgetedIncomeTotal()
		m.ClientTotals[c.ClientID] = total
		m.ClientIncomes[c.ClientID] = income
		m.GrandTotal = m.GrandTotal.Add(total)
		m.GrandIncome = m.GrandIncome.Add(income)

		for _, line := range c.Budget.Expenses {
			cat := domain.NormalizeCategory(string(line.Category))
			if !domain.IsStandard(cat) {
				extras[cat] = struct{}{}
			}
		}
	}

	for _, cat := range domain.CategoryUniverse(extras) {
		row := MatrixRow{
			Category: cat,
			Values:   make(map[string]decimal.Decimal, len(columns)),
			Total:    decimal.Zero,
		}
		for _, col := range columns {
			c := col.Client
			var catSum decimal.Decimal
			if cat == domain.CategoryVenta {
				catSum = c.BudgetedIncomeTotal()
			} else {
				catSum = decimal.Zero
				for _, line := range c.Budget.Expenses {
					if domain.NormalizeCategory(string(line.Category)) == cat {
						catSum = catSum.Add(line.Estimated)
					}
				}
			}
			row.Values[c.ClientID] = catSum
			row.Total = row.Total.Add(catSum)
		}
		m.Rows = append(m.Rows, row)
	}

	return m
}

// Sort orders the rows in place by a column: SortByCategory (standard ordinal
// first, ad-hoc labels alphabetical and always after the standard block),
// SortByTotal, or a client id for that client's column values.
func (m *Matrix) Sort(column string, dir SortDirection) {
	asc := dir != SortDesc

	switch column {
	case SortByCategory:
		sort.SliceStable(m.Rows, func(i, j int) bool {
			a, b := m.Rows[i], m.Rows[j]
			idxA := domain.StandardIndex(a.Category)
			idxB := domain.StandardIndex(b.Category)
			switch {
			case idxA >= 0 && idxB >= 0:
				if asc {
					return idxA < idxB
				}
				return idxA > idxB
			case idxA >= 0:
				return true
			case idxB >= 0:
				return false
			default:
				if asc {
					return a.Category < b.Category
				}
				return a.Category > b.Category
			}
		})
	case SortByTotal:
		sort.SliceStable(m.Rows, func(i, j int) bool {
			if asc {
				return m.Rows[i].Total.LessThan(m.Rows[j].Total)
			}
			return m.Rows[j].Total.LessThan(m.Rows[i].Total)
		})
	default:
		// A client column; absent values compare as zero.
		clientID := column
		sort.SliceStable(m.Rows, func(i, j int) bool {
			a := rowValue(m.Rows[i], clientID)
			b := rowValue(m.Rows[j], clientID)
			if asc {
				return a.LessThan(b)
			}
			return b.LessThan(a)
		})
	}
}

func rowValue(row MatrixRow, clientID string) decimal.Decimal {
	if v, ok := row.Values[clientID]; ok {
		return v
	}
	return decimal.Zero
}

// Flat renders the matrix for export in the fixed row order: one row per
// included category (all-zero ad-hoc rows skipped), TOTAL GENERAL, BENEFICIO
// and, in fair mode only, % BENEFICIO. Percent cells are fractions.
func (m Matrix) Flat() FlatTable {
	table := FlatTable{Columns: []string{"Partida / Concepto"}}
	for _, col := range m.Columns {
		table.Columns = append(table.Columns, col.Client.Name+" ("+col.FairName+")")
	}
	if m.Mode == MatrixFair {
		table.Columns = append(table.Columns, "TOTAL", "%")
	}

	for _, row := range m.Rows {
		if row.Total.IsZero() && !domain.IsStandard(row.Category) {
			continue
		}
		cells := []any{string(row.Category)}
		for _, col := range m.Columns {
			cells = append(cells, rowValue(row, col.Client.ClientID))
		}
		if m.Mode == MatrixFair {
			cells = append(cells, row.Total)
			if m.GrandTotal.IsPositive() {
				cells = append(cells, row.Total.Div(m.GrandTotal))
			} else {
				cells = append(cells, decimal.Zero)
			}
		}
		table.Rows = append(table.Rows, cells)
	}

	totalRow := []any{"TOTAL GENERAL"}
	for _, col := range m.Columns {
		totalRow = append(totalRow, m.ClientTotals[col.Client.ClientID])
	}
	if m.Mode == MatrixFair {
		totalRow = append(totalRow, m.GrandTotal, decimal.NewFromInt(1))
	}
	table.Rows = append(table.Rows, totalRow)

	totalProfit := m.GrandIncome.Sub(m.GrandTotal)

	profitRow := []any{"BENEFICIO"}
	for _, col := range m.Columns {
		id := col.Client.ClientID
		profitRow = append(profitRow, m.ClientIncomes[id].Sub(m.ClientTotals[id]))
	}
	if m.Mode == MatrixFair {
		profitRow = append(profitRow, totalProfit)
		if m.GrandIncome.IsPositive() {
			profitRow = append(profitRow, totalProfit.Div(m.GrandIncome))
		} else {
			profitRow = append(profitRow, decimal.Zero)
		}
	}
	table.Rows = append(table.Rows, profitRow)

	if m.Mode == MatrixFair {
		pctRow := []any{"% BENEFICIO"}
		for _, col := range m.Columns {
			id := col.Client.ClientID
			income := m.ClientIncomes[id]
			profit := income.Sub(m.ClientTotals[id])
			if income.IsPositive() {
				pctRow = append(pctRow, profit.Div(income))
			} else {
				pctRow = append(pctRow, decimal.Zero)
			}
		}
		if m.GrandIncome.IsPositive() {
			pctRow = append(pctRow, totalProfit.Div(m.GrandIncome))
		} else {
			pctRow = append(pctRow, decimal.Zero)
		}
		pctRow = append(pctRow, "")
		table.Rows = append(table.Rows, pctRow)
	}

	return table
}
