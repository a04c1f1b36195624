package report_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/finboard/finboard/internal/budget"
	"github.com/finboard/finboard/internal/month"
	"github.com/finboard/finboard/internal/report"
	"github.com/finboard/finboard/internal/transaction"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func expense(amount float64, d time.Time, category string) *transaction.Transaction {
	return &transaction.Transaction{ID: uuid.New(), Amount: amount, Date: d, Category: category, Type: transaction.TypeExpense}
}

func income(amount float64, d time.Time, category string) *transaction.Transaction {
	return &transaction.Transaction{ID: uuid.New(), Amount: amount, Date: d, Category: category, Type: transaction.TypeIncome}
}

func marchScenario() []*transaction.Transaction {
	return []*transaction.Transaction{
		expense(-50, date(2024, 3, 5), "Food"),
		expense(-30, date(2024, 3, 20), "Food"),
		income(2000, date(2024, 3, 1), "Salary"),
	}
}

var march2024 = month.Month{Year: 2024, Month: time.March}

func TestComputeStats_Scenario(t *testing.T) {
	got := report.ComputeStats(marchScenario(), time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))

	assert.Equal(t, report.Stats{
		TotalBalance: 1920,
		MonthIncome:  2000,
		MonthExpense: 80,
		MonthSavings: 1920,
	}, got)
}

func TestComputeStats_OtherMonthOnlyInBalance(t *testing.T) {
	txs := append(marchScenario(), expense(-100, date(2024, 2, 28), "Rent"))

	got := report.ComputeStats(txs, date(2024, 3, 31))
	assert.Equal(t, 1820.0, got.TotalBalance)
	assert.Equal(t, 80.0, got.MonthExpense)
}

func TestComputeStats_Empty(t *testing.T) {
	assert.Equal(t, report.Stats{}, report.ComputeStats(nil, time.Now()))
}

func TestComputeStats_DecimalSums(t *testing.T) {
	txs := []*transaction.Transaction{
		income(0.1, date(2024, 3, 1), "Juros"),
		income(0.2, date(2024, 3, 2), "Juros"),
	}

	assert.Equal(t, 0.3, report.ComputeStats(txs, date(2024, 3, 3)).MonthIncome)
}

func TestCategoryTotals(t *testing.T) {
	t.Run("Scenario", func(t *testing.T) {
		got := report.CategoryTotals(marchScenario(), march2024)
		assert.Equal(t, report.Breakdown{Labels: []string{"Food"}, Data: []float64{80}}, got)
	})

	t.Run("FirstOccurrenceOrderAndMagnitudes", func(t *testing.T) {
		txs := []*transaction.Transaction{
			expense(-10, date(2024, 3, 31), "Transporte"),
			expense(25, date(2024, 3, 30), "Lazer"),
			expense(-5, date(2024, 3, 1), "Transporte"),
			expense(-99, date(2024, 4, 1), "Lazer"),
		}

		got := report.CategoryTotals(txs, march2024)
		assert.Equal(t, []string{"Transporte", "Lazer"}, got.Labels)
		assert.Equal(t, []float64{15, 25}, got.Data)
	})

	t.Run("EmptyMonth", func(t *testing.T) {
		got := report.CategoryTotals(marchScenario(), month.Month{Year: 2024, Month: time.May})
		assert.NotNil(t, got.Labels)
		assert.Empty(t, got.Labels)
		assert.Empty(t, got.Data)
	})
}

func TestComputeBudgetProgress(t *testing.T) {
	food := &budget.Budget{ID: uuid.New(), Category: "Food", Limit: 800, Month: "2024-03"}
	health := &budget.Budget{ID: uuid.New(), Category: "Saúde", Limit: 300, Month: "2024-03"}

	txs := append(marchScenario(), expense(-40, date(2024, 3, 9), "Lazer"))

	got := report.ComputeBudgetProgress([]*budget.Budget{food, health}, txs, march2024)

	assert.Equal(t, []report.BudgetProgress{
		{ID: food.ID, Category: "Food", Limit: 800, Spent: 80},
		{ID: health.ID, Category: "Saúde", Limit: 300, Spent: 0},
	}, got)
}

func TestComputeTrend(t *testing.T) {
	txs := []*transaction.Transaction{
		income(7500, date(2024, 7, 5), "Salary"),
		expense(-4890.3, date(2024, 7, 9), "Moradia"),
		income(6500, date(2024, 2, 5), "Salary"),
		expense(-4200, date(2024, 2, 6), "Moradia"),
		expense(-999, date(2024, 1, 31), "Moradia"),
	}

	got := report.ComputeTrend(txs, date(2024, 7, 20), 6)

	assert.Equal(t, []string{"Fev", "Mar", "Abr", "Mai", "Jun", "Jul"}, got.Labels)
	assert.Equal(t, []float64{6500, 0, 0, 0, 0, 7500}, got.Income)
	assert.Equal(t, []float64{4200, 0, 0, 0, 0, 4890.3}, got.Expense)
}

func TestComputeTrend_AcrossYearBoundary(t *testing.T) {
	got := report.ComputeTrend(nil, date(2024, 2, 10), 3)
	assert.Equal(t, []string{"Dez", "Jan", "Fev"}, got.Labels)
	assert.Equal(t, []float64{0, 0, 0}, got.Income)
}
