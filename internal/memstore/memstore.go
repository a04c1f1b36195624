// Package memstore keeps transactions, budgets, goals and category rules in
// process memory. It backs STORE_BACKEND=memory and the HTTP tests.
package memstore

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/finboard/finboard/internal/budget"
	"github.com/finboard/finboard/internal/categorize"
	"github.com/finboard/finboard/internal/goal"
	"github.com/finboard/finboard/internal/transaction"
)

var (
	_ transaction.Repository = (*Store)(nil)
	_ budget.Repository      = (*Store)(nil)
	_ goal.Repository        = (*Store)(nil)
	_ categorize.Repository  = (*Store)(nil)
)

type Store struct {
	mu           sync.Mutex
	now          func() time.Time
	lastCreated  time.Time
	transactions map[uuid.UUID]transaction.Transaction
	budgets      map[uuid.UUID]budget.Budget
	goals        map[uuid.UUID]goal.Goal
	rules        map[uuid.UUID]categorize.Rule
}

func New() *Store {
	return &Store{
		now:          time.Now,
		transactions: make(map[uuid.UUID]transaction.Transaction),
		budgets:      make(map[uuid.UUID]budget.Budget),
		goals:        make(map[uuid.UUID]goal.Goal),
		rules:        make(map[uuid.UUID]categorize.Rule),
	}
}

// PingContext always succeeds; it lets the store back the health check.
func (s *Store) PingContext(context.Context) error {
	return nil
}

// stamp returns a creation time strictly after any previously issued one, so
// created_at orderings are stable. Callers must hold mu.
func (s *Store) stamp() time.Time {
	t := s.now().UTC()
	if !t.After(s.lastCreated) {
		t = s.lastCreated.Add(time.Microsecond)
	}

	s.lastCreated = t

	return t
}

func (s *Store) CreateTransaction(_ context.Context, tx *transaction.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx.ID = uuid.New()
	tx.CreatedAt = s.stamp()
	s.transactions[tx.ID] = *tx

	return nil
}

func (s *Store) CreateTransactions(ctx context.Context, txs []*transaction.Transaction) error {
	for _, tx := range txs {
		if err := s.CreateTransaction(ctx, tx); err != nil {
			return err
		}
	}

	return nil
}

func (s *Store) GetTransaction(_ context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.transactions[id]
	if !ok {
		return nil, transaction.ErrNotFound
	}

	return &tx, nil
}

func (s *Store) ListTransactions(_ context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*transaction.Transaction

	for _, tx := range s.transactions {
		if !matches(tx, filter) {
			continue
		}

		out = append(out, &tx)
	}

	slices.SortFunc(out, func(a, b *transaction.Transaction) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}

		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return out, nil
}

func matches(tx transaction.Transaction, f transaction.ListFilter) bool {
	switch {
	case f.Type != nil && tx.Type != *f.Type:
		return false
	case f.Category != nil && tx.Category != *f.Category:
		return false
	case f.StartDate != nil && tx.Date.Before(*f.StartDate):
		return false
	case f.EndDate != nil && tx.Date.After(*f.EndDate):
		return false
	}

	return true
}

func (s *Store) UpdateTransaction(_ context.Context, id uuid.UUID, patch transaction.Patch) (*transaction.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.transactions[id]
	if !ok {
		return nil, transaction.ErrNotFound
	}

	patch.Apply(&tx)
	s.transactions[id] = tx

	return &tx, nil
}

func (s *Store) DeleteTransaction(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transactions[id]; !ok {
		return transaction.ErrNotFound
	}

	delete(s.transactions, id)

	return nil
}

func (s *Store) CreateBudget(_ context.Context, b *budget.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b.ID = uuid.New()
	b.CreatedAt = s.stamp()
	s.budgets[b.ID] = *b

	return nil
}

func (s *Store) ListBudgets(_ context.Context, month string) ([]*budget.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*budget.Budget

	for _, b := range s.budgets {
		if b.Month != month {
			continue
		}

		out = append(out, &b)
	}

	slices.SortFunc(out, func(a, b *budget.Budget) int {
		if c := strings.Compare(a.Category, b.Category); c != 0 {
			return c
		}

		return a.CreatedAt.Compare(b.CreatedAt)
	})

	return out, nil
}

func (s *Store) UpdateBudget(_ context.Context, id uuid.UUID, patch budget.Patch) (*budget.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.budgets[id]
	if !ok {
		return nil, budget.ErrNotFound
	}

	patch.Apply(&b)
	s.budgets[id] = b

	return &b, nil
}

func (s *Store) DeleteBudget(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.budgets[id]; !ok {
		return budget.ErrNotFound
	}

	delete(s.budgets, id)

	return nil
}

func (s *Store) CreateGoal(_ context.Context, g *goal.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g.ID = uuid.New()
	g.CreatedAt = s.stamp()
	s.goals[g.ID] = *g

	return nil
}

func (s *Store) GetGoal(_ context.Context, id uuid.UUID) (*goal.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.goals[id]
	if !ok {
		return nil, goal.ErrNotFound
	}

	return &g, nil
}

func (s *Store) ListGoals(_ context.Context) ([]*goal.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*goal.Goal, 0, len(s.goals))
	for _, g := range s.goals {
		out = append(out, &g)
	}

	slices.SortFunc(out, func(a, b *goal.Goal) int { return a.CreatedAt.Compare(b.CreatedAt) })

	return out, nil
}

func (s *Store) UpdateGoal(_ context.Context, id uuid.UUID, patch goal.Patch) (*goal.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.goals[id]
	if !ok {
		return nil, goal.ErrNotFound
	}

	patch.Apply(&g)
	s.goals[id] = g

	return &g, nil
}

func (s *Store) DeleteGoal(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.goals[id]; !ok {
		return goal.ErrNotFound
	}

	delete(s.goals, id)

	return nil
}

func (s *Store) FindMatch(_ context.Context, description string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	desc := strings.ToLower(description)

	var (
		best    *categorize.Rule
		bestLen int
	)

	for _, r := range s.rules {
		if !strings.Contains(desc, strings.ToLower(r.Pattern)) {
			continue
		}

		n := utf8.RuneCountInString(r.Pattern)
		if best == nil || n > bestLen || (n == bestLen && r.CreatedAt.After(best.CreatedAt)) {
			best, bestLen = &r, n
		}
	}

	if best == nil {
		return "", nil
	}

	return best.Category, nil
}

func (s *Store) CreateRule(_ context.Context, r *categorize.Rule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = uuid.New()
	r.CreatedAt = s.stamp()
	s.rules[r.ID] = *r

	return nil
}

func (s *Store) ListRules(_ context.Context) ([]*categorize.Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*categorize.Rule, 0, len(s.rules))
	for _, r := range s.rules {
		out = append(out, &r)
	}

	slices.SortFunc(out, func(a, b *categorize.Rule) int { return a.CreatedAt.Compare(b.CreatedAt) })

	return out, nil
}

func (s *Store) DeleteRule(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rules[id]; !ok {
		return categorize.ErrNotFound
	}

	delete(s.rules, id)

	return nil
}
