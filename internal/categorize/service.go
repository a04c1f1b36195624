package categorize

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finboard/finboard/internal/apperr"
)

// ErrNotFound is returned when no rule matches the given id.
var ErrNotFound = fmt.Errorf("category rule %w", apperr.ErrNotFound)

// Rule assigns Category to any description containing Pattern,
// case-insensitively.
type Rule struct {
	ID        uuid.UUID
	Pattern   string
	Category  string
	CreatedAt time.Time
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=categorize
type Repository interface {
	FindMatch(ctx context.Context, description string) (string, error)
	CreateRule(ctx context.Context, r *Rule) error
	ListRules(ctx context.Context) ([]*Rule, error)
	DeleteRule(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the category of the longest rule pattern found in
// description, or an empty string if no rule applies.
func (s *Service) Suggest(ctx context.Context, description string) (string, error) {
	if strings.TrimSpace(description) == "" {
		return "", nil
	}

	return s.repo.FindMatch(ctx, description)
}

// Learn stores a new pattern → category rule.
func (s *Service) Learn(ctx context.Context, pattern, category string) (*Rule, error) {
	pattern = strings.TrimSpace(pattern)
	category = strings.TrimSpace(category)

	if pattern == "" {
		return nil, apperr.Missing("pattern")
	}

	if category == "" {
		return nil, apperr.Missing("category")
	}

	r := &Rule{Pattern: pattern, Category: category}
	if err := s.repo.CreateRule(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

func (s *Service) List(ctx context.Context) ([]*Rule, error) {
	return s.repo.ListRules(ctx)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteRule(ctx, id)
}
