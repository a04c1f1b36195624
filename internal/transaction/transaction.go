package transaction

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/finboard/finboard/internal/apperr"
)

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// ErrNotFound is returned when no transaction matches the given id.
var ErrNotFound = fmt.Errorf("transaction %w", apperr.ErrNotFound)

// Transaction represents a financial transaction.
// Expense amounts are stored negative and income amounts positive.
type Transaction struct {
	ID          uuid.UUID
	Description string
	Amount      float64
	Date        time.Time
	Category    string
	Type        Type
	IsPaid      bool
	CreatedAt   time.Time
}

// Magnitude returns the absolute value of the amount.
func (t *Transaction) Magnitude() float64 {
	return math.Abs(t.Amount)
}

// signed applies the sign convention for t to amount.
func signed(amount float64, t Type) float64 {
	if t == TypeExpense {
		return -math.Abs(amount)
	}

	return math.Abs(amount)
}

// ParseDate parses an ISO calendar date ("2006-01-02").
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, apperr.Invalid("date", "must be a date in YYYY-MM-DD format")
	}

	return d, nil
}
