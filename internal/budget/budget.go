package budget

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finboard/finboard/internal/apperr"
)

// ErrNotFound is returned when no budget matches the given id.
var ErrNotFound = fmt.Errorf("budget %w", apperr.ErrNotFound)

// Budget is a spending limit for one category in one calendar month.
type Budget struct {
	ID        uuid.UUID
	Category  string
	Limit     float64
	Month     string // YYYY-MM
	CreatedAt time.Time
}
