package goal_test

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/finboard/finboard/internal/apperr"
	"github.com/finboard/finboard/internal/goal"
)

func TestService_Create(t *testing.T) {
	t.Run("SavedDefaultsToZero", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := goal.NewMockRepository(ctrl)
		repo.EXPECT().CreateGoal(gomock.Any(), gomock.Any()).Return(nil)

		got, err := goal.NewService(repo).Create(context.Background(), goal.CreateParams{
			Name:         "Viagem",
			TargetAmount: new(5000.0),
		})
		require.NoError(t, err)
		assert.Equal(t, 0.0, got.SavedAmount)
		assert.Equal(t, 5000.0, got.TargetAmount)
	})

	t.Run("MissingFields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := goal.NewService(goal.NewMockRepository(ctrl))

		_, err := svc.Create(context.Background(), goal.CreateParams{TargetAmount: new(1.0)})
		assert.True(t, apperr.IsValidation(err))

		_, err = svc.Create(context.Background(), goal.CreateParams{Name: "Carro"})
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("NonFiniteAmounts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := goal.NewService(goal.NewMockRepository(ctrl))

		_, err := svc.Create(context.Background(), goal.CreateParams{Name: "Carro", TargetAmount: new(math.Inf(1))})
		assert.EqualError(t, err, "target_amount: out of range")

		_, err = svc.Create(context.Background(), goal.CreateParams{
			Name:         "Carro",
			TargetAmount: new(30000.0),
			SavedAmount:  new(math.Inf(-1)),
		})
		assert.EqualError(t, err, "saved_amount: out of range")
	})
}

func TestService_Update_SavedAmountOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	patch := goal.Patch{SavedAmount: new(1250.0)}

	repo := goal.NewMockRepository(ctrl)
	repo.EXPECT().UpdateGoal(gomock.Any(), id, patch).
		Return(&goal.Goal{ID: id, Name: "Viagem", TargetAmount: 5000, SavedAmount: 1250}, nil)

	got, err := goal.NewService(repo).Update(context.Background(), id, patch)
	require.NoError(t, err)
	assert.Equal(t, "Viagem", got.Name)
	assert.Equal(t, 25, got.Progress())
}

func TestService_Update_Invalid(t *testing.T) {
	tests := map[string]goal.Patch{
		"EmptyName":      {Name: new("")},
		"InfiniteTarget": {TargetAmount: new(math.Inf(1))},
		"NaNSaved":       {SavedAmount: new(math.NaN())},
	}

	for name, patch := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			_, err := goal.NewService(goal.NewMockRepository(ctrl)).Update(context.Background(), uuid.New(), patch)
			assert.True(t, apperr.IsValidation(err))
		})
	}
}

func TestPatch_Apply(t *testing.T) {
	g := &goal.Goal{Name: "Viagem", TargetAmount: 5000, SavedAmount: 100}

	goal.Patch{SavedAmount: new(1250.0)}.Apply(g)

	assert.Equal(t, "Viagem", g.Name)
	assert.Equal(t, 5000.0, g.TargetAmount)
	assert.Equal(t, 1250.0, g.SavedAmount)
}

func TestService_Delete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	repo := goal.NewMockRepository(ctrl)
	repo.EXPECT().DeleteGoal(gomock.Any(), id).Return(goal.ErrNotFound)

	err := goal.NewService(repo).Delete(context.Background(), id)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGoal_Progress(t *testing.T) {
	assert.Equal(t, 0, (&goal.Goal{TargetAmount: 0, SavedAmount: 10}).Progress())
	assert.Equal(t, 50, (&goal.Goal{TargetAmount: 200, SavedAmount: 100}).Progress())
}
