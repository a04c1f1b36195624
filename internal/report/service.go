package report

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/finboard/finboard/internal/budget"
	"github.com/finboard/finboard/internal/month"
	"github.com/finboard/finboard/internal/transaction"
)

// TrendMonths is the number of months shown in the dashboard trend chart.
const TrendMonths = 6

//go:generate mockgen -source=service.go -destination=source_mock.go -package=report
type TransactionSource interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

type BudgetSource interface {
	List(ctx context.Context, month string) ([]*budget.Budget, error)
}

type Service struct {
	transactions TransactionSource
	budgets      BudgetSource
}

func NewService(transactions TransactionSource, budgets BudgetSource) *Service {
	return &Service{transactions: transactions, budgets: budgets}
}

// Summary is the payload behind the dashboard landing page.
type Summary struct {
	Balances           Stats
	ExpensesByCategory Breakdown
	IncomeVsExpense    Trend
}

func (s *Service) Stats(ctx context.Context, now time.Time) (Stats, error) {
	txs, err := s.transactions.List(ctx, transaction.ListFilter{})
	if err != nil {
		return Stats{}, err
	}

	return ComputeStats(txs, now), nil
}

// CategoryReport totals the expenses of the given "YYYY-MM" month by category.
func (s *Service) CategoryReport(ctx context.Context, key string) (Breakdown, error) {
	m, err := month.Parse(key)
	if err != nil {
		return Breakdown{}, err
	}

	txs, err := s.monthExpenses(ctx, m)
	if err != nil {
		return Breakdown{}, err
	}

	return CategoryTotals(txs, m), nil
}

// BudgetProgress loads the month's budgets and expenses concurrently and
// reports spend per budget.
func (s *Service) BudgetProgress(ctx context.Context, key string) ([]BudgetProgress, error) {
	m, err := month.Parse(key)
	if err != nil {
		return nil, err
	}

	var (
		budgets []*budget.Budget
		txs     []*transaction.Transaction
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		budgets, err = s.budgets.List(gctx, m.String())

		return err
	})

	g.Go(func() error {
		var err error
		txs, err = s.monthExpenses(gctx, m)

		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return ComputeBudgetProgress(budgets, txs, m), nil
}

func (s *Service) Summary(ctx context.Context, now time.Time) (Summary, error) {
	txs, err := s.transactions.List(ctx, transaction.ListFilter{})
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		Balances:           ComputeStats(txs, now),
		ExpensesByCategory: CategoryTotals(txs, month.Of(now)),
		IncomeVsExpense:    ComputeTrend(txs, now, TrendMonths),
	}, nil
}

func (s *Service) monthExpenses(ctx context.Context, m month.Month) ([]*transaction.Transaction, error) {
	return s.transactions.List(ctx, transaction.ListFilter{
		Type:      new(transaction.TypeExpense),
		StartDate: new(m.First()),
		EndDate:   new(m.Last()),
	})
}
