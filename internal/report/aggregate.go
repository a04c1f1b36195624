package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finboard/finboard/internal/budget"
	"github.com/finboard/finboard/internal/month"
	"github.com/finboard/finboard/internal/transaction"
)

// Stats are the headline numbers of the dashboard.
type Stats struct {
	TotalBalance float64
	MonthIncome  float64
	MonthExpense float64 // magnitude
	MonthSavings float64
}

// Breakdown is a labelled series, one value per label.
type Breakdown struct {
	Labels []string
	Data   []float64
}

// BudgetProgress compares a budget limit with what was spent in its category.
type BudgetProgress struct {
	ID       uuid.UUID
	Category string
	Limit    float64
	Spent    float64
}

// Trend holds per-month income and expense magnitudes, oldest month first.
type Trend struct {
	Labels  []string
	Income  []float64
	Expense []float64
}

func magnitude(tx *transaction.Transaction) decimal.Decimal {
	return decimal.NewFromFloat(tx.Amount).Abs()
}

// ComputeStats derives the dashboard statistics for the month containing now.
func ComputeStats(txs []*transaction.Transaction, now time.Time) Stats {
	current := month.Of(now)

	var total, income, expense decimal.Decimal

	for _, tx := range txs {
		total = total.Add(decimal.NewFromFloat(tx.Amount))

		if !current.Contains(tx.Date) {
			continue
		}

		switch tx.Type {
		case transaction.TypeIncome:
			income = income.Add(decimal.NewFromFloat(tx.Amount))
		case transaction.TypeExpense:
			expense = expense.Add(magnitude(tx))
		}
	}

	return Stats{
		TotalBalance: total.InexactFloat64(),
		MonthIncome:  income.InexactFloat64(),
		MonthExpense: expense.InexactFloat64(),
		MonthSavings: income.Sub(expense).InexactFloat64(),
	}
}

// CategoryTotals sums expense magnitudes of m by category. Labels keep the
// order in which each category first appears in txs.
func CategoryTotals(txs []*transaction.Transaction, m month.Month) Breakdown {
	var order []string

	sums := make(map[string]decimal.Decimal)

	for _, tx := range txs {
		if tx.Type != transaction.TypeExpense || !m.Contains(tx.Date) {
			continue
		}

		sum, seen := sums[tx.Category]
		if !seen {
			order = append(order, tx.Category)
		}

		sums[tx.Category] = sum.Add(magnitude(tx))
	}

	out := Breakdown{
		Labels: make([]string, 0, len(order)),
		Data:   make([]float64, 0, len(order)),
	}

	for _, category := range order {
		out.Labels = append(out.Labels, category)
		out.Data = append(out.Data, sums[category].InexactFloat64())
	}

	return out
}

// ComputeBudgetProgress returns one entry per budget with the expense
// magnitude of m spent in its category. Spending in categories without a
// budget is not reported.
func ComputeBudgetProgress(budgets []*budget.Budget, txs []*transaction.Transaction, m month.Month) []BudgetProgress {
	spent := make(map[string]decimal.Decimal)

	for _, tx := range txs {
		if tx.Type != transaction.TypeExpense || !m.Contains(tx.Date) {
			continue
		}

		spent[tx.Category] = spent[tx.Category].Add(magnitude(tx))
	}

	out := make([]BudgetProgress, 0, len(budgets))

	for _, b := range budgets {
		out = append(out, BudgetProgress{
			ID:       b.ID,
			Category: b.Category,
			Limit:    b.Limit,
			Spent:    spent[b.Category].InexactFloat64(),
		})
	}

	return out
}

// ComputeTrend buckets income and expense magnitudes into the n months ending
// with the month containing now.
func ComputeTrend(txs []*transaction.Transaction, now time.Time, n int) Trend {
	if n <= 0 {
		return Trend{Labels: []string{}, Income: []float64{}, Expense: []float64{}}
	}

	first := month.Of(now).Add(-(n - 1))

	index := make(map[month.Month]int, n)
	labels := make([]string, n)

	for i := range n {
		m := first.Add(i)
		index[m] = i
		labels[i] = m.ShortLabel()
	}

	income := make([]decimal.Decimal, n)
	expense := make([]decimal.Decimal, n)

	for _, tx := range txs {
		i, ok := index[month.Of(tx.Date)]
		if !ok {
			continue
		}

		switch tx.Type {
		case transaction.TypeIncome:
			income[i] = income[i].Add(magnitude(tx))
		case transaction.TypeExpense:
			expense[i] = expense[i].Add(magnitude(tx))
		}
	}

	return Trend{
		Labels:  labels,
		Income:  toFloats(income),
		Expense: toFloats(expense),
	}
}

func toFloats(ds []decimal.Decimal) []float64 {
	out := make([]float64, len(ds))
	for i, d := range ds {
		out[i] = d.InexactFloat64()
	}

	return out
}
