package memstore_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/finboard/finboard/internal/budget"
	"github.com/finboard/finboard/internal/categorize"
	"github.com/finboard/finboard/internal/goal"
	"github.com/finboard/finboard/internal/memstore"
	"github.com/finboard/finboard/internal/transaction"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestStore_TransactionsOrderedDateDesc(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()

	for _, d := range []time.Time{date(2024, 3, 5), date(2024, 3, 20), date(2024, 3, 1), date(2024, 3, 20)} {
		require.NoError(t, s.CreateTransaction(ctx, &transaction.Transaction{Date: d, Type: transaction.TypeExpense}))
	}

	txs, err := s.ListTransactions(ctx, transaction.ListFilter{})
	require.NoError(t, err)
	require.Len(t, txs, 4)

	assert.Equal(t, date(2024, 3, 20), txs[0].Date)
	assert.True(t, txs[0].CreatedAt.After(txs[1].CreatedAt))
	assert.Equal(t, date(2024, 3, 1), txs[3].Date)
}

func TestStore_ListFilter(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()

	require.NoError(t, s.CreateTransactions(ctx, []*transaction.Transaction{
		{Date: date(2024, 2, 29), Type: transaction.TypeExpense, Category: "Food"},
		{Date: date(2024, 3, 1), Type: transaction.TypeExpense, Category: "Food"},
		{Date: date(2024, 3, 31), Type: transaction.TypeIncome, Category: "Salary"},
		{Date: date(2024, 4, 1), Type: transaction.TypeExpense, Category: "Food"},
	}))

	txs, err := s.ListTransactions(ctx, transaction.ListFilter{
		Type:      new(transaction.TypeExpense),
		StartDate: new(date(2024, 3, 1)),
		EndDate:   new(date(2024, 3, 31)),
	})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, date(2024, 3, 1), txs[0].Date)
}

func TestStore_DeleteThenList(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()

	keep := &transaction.Transaction{Date: date(2024, 3, 1)}
	drop := &transaction.Transaction{Date: date(2024, 3, 2)}
	require.NoError(t, s.CreateTransaction(ctx, keep))
	require.NoError(t, s.CreateTransaction(ctx, drop))

	require.NoError(t, s.DeleteTransaction(ctx, drop.ID))
	assert.ErrorIs(t, s.DeleteTransaction(ctx, drop.ID), transaction.ErrNotFound)

	txs, err := s.ListTransactions(ctx, transaction.ListFilter{})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, keep.ID, txs[0].ID)
}

func TestStore_FindMatch(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()

	require.NoError(t, s.CreateRule(ctx, &categorize.Rule{Pattern: "uber", Category: "Transporte"}))
	require.NoError(t, s.CreateRule(ctx, &categorize.Rule{Pattern: "uber eats", Category: "Alimentação"}))

	got, err := s.FindMatch(ctx, "UBER EATS *PEDIDO")
	require.NoError(t, err)
	assert.Equal(t, "Alimentação", got)

	got, err = s.FindMatch(ctx, "Uber trip")
	require.NoError(t, err)
	assert.Equal(t, "Transporte", got)

	got, err = s.FindMatch(ctx, "Padaria")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_FindMatch_LongestByCharacters(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()

	// "ação" is 4 characters but 6 bytes.
	require.NoError(t, s.CreateRule(ctx, &categorize.Rule{Pattern: "pix ", Category: "Transferência"}))
	require.NoError(t, s.CreateRule(ctx, &categorize.Rule{Pattern: "ação", Category: "Investimentos"}))

	got, err := s.FindMatch(ctx, "PIX AÇÃO")
	require.NoError(t, err)
	assert.Equal(t, "Investimentos", got, "equal lengths resolve to the newer rule")

	require.NoError(t, s.CreateRule(ctx, &categorize.Rule{Pattern: "pix a", Category: "Transferência"}))

	got, err = s.FindMatch(ctx, "PIX AÇÃO")
	require.NoError(t, err)
	assert.Equal(t, "Transferência", got)
}

func TestStore_FindMatch_PatternIsLiteral(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()

	require.NoError(t, s.CreateRule(ctx, &categorize.Rule{Pattern: "50%", Category: "Promoções"}))
	require.NoError(t, s.CreateRule(ctx, &categorize.Rule{Pattern: "a_b", Category: "Outros"}))

	got, err := s.FindMatch(ctx, "Desconto 50% loja")
	require.NoError(t, err)
	assert.Equal(t, "Promoções", got)

	for _, desc := range []string{"Desconto 50 reais", "Conta AXB"} {
		got, err := s.FindMatch(ctx, desc)
		require.NoError(t, err)
		assert.Empty(t, got, desc)
	}
}

func TestStore_ConcurrentPatchesKeepEveryField(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	svc := transaction.NewService(s)

	tx := &transaction.Transaction{
		Description: "Aluguel",
		Amount:      -1500,
		Date:        date(2024, 3, 5),
		Category:    "Moradia",
		Type:        transaction.TypeExpense,
		IsPaid:      true,
	}
	require.NoError(t, s.CreateTransaction(ctx, tx))

	var g errgroup.Group

	for i := range 50 {
		g.Go(func() error {
			_, err := svc.Update(ctx, tx.ID, transaction.Patch{Description: new(fmt.Sprintf("Aluguel %d", i))})
			return err
		})
		g.Go(func() error {
			_, err := svc.Update(ctx, tx.ID, transaction.Patch{IsPaid: new(false)})
			return err
		})
		g.Go(func() error {
			_, err := svc.Update(ctx, tx.ID, transaction.Patch{Category: new("Casa")})
			return err
		})
	}

	require.NoError(t, g.Wait())

	got, err := s.GetTransaction(ctx, tx.ID)
	require.NoError(t, err)
	assert.Contains(t, got.Description, "Aluguel ")
	assert.False(t, got.IsPaid)
	assert.Equal(t, "Casa", got.Category)
	assert.Equal(t, -1500.0, got.Amount)
}

func TestStore_UpdateMissing(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	id := uuid.New()

	_, err := s.UpdateTransaction(ctx, id, transaction.Patch{IsPaid: new(true)})
	assert.ErrorIs(t, err, transaction.ErrNotFound)

	_, err = s.UpdateBudget(ctx, id, budget.Patch{Limit: new(1.0)})
	assert.ErrorIs(t, err, budget.ErrNotFound)

	_, err = s.UpdateGoal(ctx, id, goal.Patch{SavedAmount: new(1.0)})
	assert.ErrorIs(t, err, goal.ErrNotFound)
}

func TestStore_UpdateBudgetAndGoal(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()

	b := &budget.Budget{Category: "Food", Limit: 800, Month: "2024-03"}
	require.NoError(t, s.CreateBudget(ctx, b))

	gotB, err := s.UpdateBudget(ctx, b.ID, budget.Patch{Limit: new(950.0)})
	require.NoError(t, err)
	assert.Equal(t, "Food", gotB.Category)
	assert.Equal(t, 950.0, gotB.Limit)

	g := &goal.Goal{Name: "Viagem", TargetAmount: 5000, SavedAmount: 100}
	require.NoError(t, s.CreateGoal(ctx, g))

	gotG, err := s.UpdateGoal(ctx, g.ID, goal.Patch{Name: new("Viagem Japão")})
	require.NoError(t, err)
	assert.Equal(t, "Viagem Japão", gotG.Name)
	assert.Equal(t, 100.0, gotG.SavedAmount)

	goals, err := s.ListGoals(ctx)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "Viagem Japão", goals[0].Name)
}
