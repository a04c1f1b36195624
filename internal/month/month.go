// Package month handles "YYYY-MM" month keys and calendar month boundaries.
package month

import (
	"fmt"
	"strings"
	"time"

	"github.com/finboard/finboard/internal/apperr"
)

const layout = "2006-01"

// Month is a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// Parse parses a "YYYY-MM" key. Missing or malformed keys yield a
// validation error.
func Parse(key string) (Month, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return Month{}, apperr.Missing("month")
	}

	t, err := time.Parse(layout, key)
	if err != nil {
		return Month{}, apperr.Invalid("month", "must be in YYYY-MM format")
	}

	return Of(t), nil
}

// Of returns the month containing t.
func Of(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// First returns midnight UTC of the first day of the month.
func (m Month) First() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Last returns midnight UTC of the last day of the month.
func (m Month) Last() time.Time {
	return m.First().AddDate(0, 1, -1)
}

// Contains reports whether t falls on a day of the month, judged by t's own
// calendar fields.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

// Add returns the month n months after m (n may be negative).
func (m Month) Add(n int) Month {
	return Of(m.First().AddDate(0, n, 0))
}

var shortNames = [...]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// ShortLabel returns the abbreviated pt-BR month name used by the dashboard.
func (m Month) ShortLabel() string {
	return shortNames[m.Month-1]
}
