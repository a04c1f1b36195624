package goal

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finboard/finboard/internal/apperr"
)

// ErrNotFound is returned when no goal matches the given id.
var ErrNotFound = fmt.Errorf("goal %w", apperr.ErrNotFound)

// Goal is a savings target.
type Goal struct {
	ID           uuid.UUID
	Name         string
	TargetAmount float64
	SavedAmount  float64
	CreatedAt    time.Time
}

// Progress returns the saved share of the target as a percentage rounded down,
// or 0 when the target is not positive.
func (g *Goal) Progress() int {
	if g.TargetAmount <= 0 {
		return 0
	}

	return int(g.SavedAmount / g.TargetAmount * 100)
}
