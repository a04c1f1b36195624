package apperr_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/finboard/finboard/internal/apperr"
)

func TestValidationError(t *testing.T) {
	err := fmt.Errorf("create: %w", apperr.Missing("description"))

	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, "create: description: is required", err.Error())

	var v *apperr.ValidationError
	assert.True(t, errors.As(err, &v))
	assert.Equal(t, "description", v.Field)
}

func TestStoreError(t *testing.T) {
	assert.NoError(t, apperr.Store("op", nil))

	cause := errors.New("connection refused")
	err := apperr.Store("listing transactions", cause)

	assert.ErrorIs(t, err, cause)
	assert.False(t, apperr.IsValidation(err))
	assert.Equal(t, "listing transactions: connection refused", err.Error())
}

func TestNotFoundWrapping(t *testing.T) {
	errGoal := fmt.Errorf("goal %w", apperr.ErrNotFound)

	assert.ErrorIs(t, fmt.Errorf("update: %w", errGoal), apperr.ErrNotFound)
	assert.Equal(t, "goal not found", errGoal.Error())
}

func TestFinite(t *testing.T) {
	assert.NoError(t, apperr.Finite("amount", nil))
	assert.NoError(t, apperr.Finite("amount", new(-50.25)))

	for _, v := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		err := apperr.Finite("amount", &v)
		assert.True(t, apperr.IsValidation(err))
		assert.EqualError(t, err, "amount: out of range")
	}
}
