package transaction_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/finboard/finboard/internal/apperr"
	"github.com/finboard/finboard/internal/transaction"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func validParams() transaction.CreateParams {
	return transaction.CreateParams{
		Description: "Mercado",
		Amount:      new(50.25),
		Date:        new(date(2024, 3, 5)),
		Category:    "Food",
		Type:        transaction.TypeExpense,
	}
}

func TestService_Create(t *testing.T) {
	type args struct {
		params transaction.CreateParams
	}

	type testCase struct {
		name       string
		args       args
		setupMock  func(m *transaction.MockRepository)
		wantAmount float64
		wantPaid   bool
		wantErr    bool
		wantValid  bool
	}

	tests := []testCase{
		{
			name: "ExpenseStoredNegative",
			args: args{params: validParams()},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
						tx.ID = uuid.New()
						tx.CreatedAt = time.Now()
						return nil
					})
			},
			wantAmount: -50.25,
			wantPaid:   true,
		},
		{
			name: "IncomeStoredPositive",
			args: args{params: func() transaction.CreateParams {
				p := validParams()
				p.Type = transaction.TypeIncome
				p.Amount = new(-2000.0)
				p.IsPaid = new(false)
				return p
			}()},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantAmount: 2000,
			wantPaid:   false,
		},
		{
			name: "MissingAmount",
			args: args{params: func() transaction.CreateParams {
				p := validParams()
				p.Amount = nil
				return p
			}()},
			wantErr:   true,
			wantValid: true,
		},
		{
			name: "MissingCategory",
			args: args{params: func() transaction.CreateParams {
				p := validParams()
				p.Category = "  "
				return p
			}()},
			wantErr:   true,
			wantValid: true,
		},
		{
			name: "OverflowedAmount",
			args: args{params: func() transaction.CreateParams {
				p := validParams()
				p.Amount = new(math.Inf(-1))
				return p
			}()},
			wantErr:   true,
			wantValid: true,
		},
		{
			name: "NaNAmount",
			args: args{params: func() transaction.CreateParams {
				p := validParams()
				p.Amount = new(math.NaN())
				return p
			}()},
			wantErr:   true,
			wantValid: true,
		},
		{
			name: "UnknownType",
			args: args{params: func() transaction.CreateParams {
				p := validParams()
				p.Type = "transfer"
				return p
			}()},
			wantErr:   true,
			wantValid: true,
		},
		{
			name: "RepoError",
			args: args{params: validParams()},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(apperr.Store("creating transaction", errors.New("db error")))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := transaction.NewService(repo)
			got, err := svc.Create(context.Background(), tt.args.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				assert.Equal(t, tt.wantValid, apperr.IsValidation(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantAmount, got.Amount)
			assert.Equal(t, tt.wantPaid, got.IsPaid)
		})
	}
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	filter := transaction.ListFilter{Type: new(transaction.TypeExpense)}

	repo.EXPECT().
		ListTransactions(gomock.Any(), filter).
		Return([]*transaction.Transaction{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

	got, err := transaction.NewService(repo).List(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestService_Update(t *testing.T) {
	id := uuid.New()

	t.Run("PassesPatchToRepo", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		patch := transaction.Patch{IsPaid: new(false)}
		updated := &transaction.Transaction{ID: id, Description: "Salário", Amount: 2000, IsPaid: false}

		repo := transaction.NewMockRepository(ctrl)
		repo.EXPECT().UpdateTransaction(gomock.Any(), id, patch).Return(updated, nil)

		got, err := transaction.NewService(repo).Update(context.Background(), id, patch)
		require.NoError(t, err)
		assert.Equal(t, updated, got)
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := transaction.NewMockRepository(ctrl)
		repo.EXPECT().UpdateTransaction(gomock.Any(), id, gomock.Any()).Return(nil, transaction.ErrNotFound)

		_, err := transaction.NewService(repo).Update(context.Background(), id, transaction.Patch{
			Amount: new(10.0),
		})
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	invalid := map[string]transaction.Patch{
		"EmptyDescription": {Description: new("")},
		"UnknownType":      {Type: new(transaction.Type("transfer"))},
		"InfiniteAmount":   {Amount: new(math.Inf(1))},
		"NaNAmount":        {Amount: new(math.NaN())},
	}

	for name, patch := range invalid {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)

			_, err := transaction.NewService(repo).Update(context.Background(), id, patch)
			assert.True(t, apperr.IsValidation(err))
		})
	}
}

func TestPatch_Apply(t *testing.T) {
	existing := func() *transaction.Transaction {
		return &transaction.Transaction{
			Description: "Salário",
			Amount:      2000,
			Date:        date(2024, 3, 1),
			Category:    "Salary",
			Type:        transaction.TypeIncome,
			IsPaid:      true,
		}
	}

	t.Run("OnlyProvidedFields", func(t *testing.T) {
		tx := existing()
		transaction.Patch{IsPaid: new(false)}.Apply(tx)

		assert.False(t, tx.IsPaid)
		assert.Equal(t, "Salário", tx.Description)
		assert.Equal(t, 2000.0, tx.Amount)
	})

	t.Run("TypeChangeFlipsSign", func(t *testing.T) {
		tx := existing()
		transaction.Patch{Type: new(transaction.TypeExpense)}.Apply(tx)

		assert.Equal(t, -2000.0, tx.Amount)
	})

	t.Run("AmountSignedForCurrentType", func(t *testing.T) {
		tx := existing()
		tx.Type = transaction.TypeExpense
		transaction.Patch{Amount: new(75.0)}.Apply(tx)

		assert.Equal(t, -75.0, tx.Amount)
	})
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().DeleteTransaction(gomock.Any(), id).Return(transaction.ErrNotFound)

	err := transaction.NewService(repo).Delete(context.Background(), id)
	assert.ErrorIs(t, err, transaction.ErrNotFound)
}

func TestService_CreateBatch(t *testing.T) {
	t.Run("AllValid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := transaction.NewMockRepository(ctrl)
		repo.EXPECT().CreateTransactions(gomock.Any(), gomock.Len(2)).Return(nil)

		income := validParams()
		income.Type = transaction.TypeIncome

		txs, err := transaction.NewService(repo).CreateBatch(context.Background(), []transaction.CreateParams{validParams(), income})
		require.NoError(t, err)
		require.Len(t, txs, 2)
		assert.Equal(t, -50.25, txs[0].Amount)
		assert.Equal(t, 50.25, txs[1].Amount)
	})

	t.Run("InvalidRowStopsBatch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := transaction.NewMockRepository(ctrl)

		bad := validParams()
		bad.Date = nil

		_, err := transaction.NewService(repo).CreateBatch(context.Background(), []transaction.CreateParams{validParams(), bad})
		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))
		assert.Contains(t, err.Error(), "row 2")
	})

	t.Run("OverflowedAmountStopsBatch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := transaction.NewMockRepository(ctrl)

		bad := validParams()
		bad.Amount = new(math.Inf(1))

		_, err := transaction.NewService(repo).CreateBatch(context.Background(), []transaction.CreateParams{bad})
		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))
		assert.EqualError(t, err, "row 1: amount: out of range")
	})

	t.Run("Empty", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		txs, err := transaction.NewService(transaction.NewMockRepository(ctrl)).CreateBatch(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, txs)
	})
}
