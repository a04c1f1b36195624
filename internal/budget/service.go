package budget

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/finboard/finboard/internal/apperr"
	"github.com/finboard/finboard/internal/month"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=budget
type Repository interface {
	CreateBudget(ctx context.Context, b *Budget) error
	ListBudgets(ctx context.Context, month string) ([]*Budget, error)
	UpdateBudget(ctx context.Context, id uuid.UUID, patch Patch) (*Budget, error)
	DeleteBudget(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Category string
	Limit    *float64
	Month    string
}

// Patch holds the fields to change on a budget. Nil fields are left unchanged.
type Patch struct {
	Category *string
	Limit    *float64
}

// Apply sets the provided fields on b.
func (p Patch) Apply(b *Budget) {
	if p.Category != nil {
		b.Category = strings.TrimSpace(*p.Category)
	}

	if p.Limit != nil {
		b.Limit = *p.Limit
	}
}

func validLimit(limit *float64) error {
	if err := apperr.Finite("limit", limit); err != nil {
		return err
	}

	if limit != nil && *limit < 0 {
		return apperr.Invalid("limit", "must not be negative")
	}

	return nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Budget, error) {
	if strings.TrimSpace(params.Category) == "" {
		return nil, apperr.Missing("category")
	}

	if params.Limit == nil {
		return nil, apperr.Missing("limit")
	}

	if err := validLimit(params.Limit); err != nil {
		return nil, err
	}

	m, err := month.Parse(params.Month)
	if err != nil {
		return nil, err
	}

	b := &Budget{
		Category: strings.TrimSpace(params.Category),
		Limit:    *params.Limit,
		Month:    m.String(),
	}
	if err := s.repo.CreateBudget(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// List returns the budgets of the given month.
func (s *Service) List(ctx context.Context, key string) ([]*Budget, error) {
	m, err := month.Parse(key)
	if err != nil {
		return nil, err
	}

	return s.repo.ListBudgets(ctx, m.String())
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, patch Patch) (*Budget, error) {
	if patch.Category != nil && strings.TrimSpace(*patch.Category) == "" {
		return nil, apperr.Invalid("category", "must not be empty")
	}

	if err := validLimit(patch.Limit); err != nil {
		return nil, err
	}

	return s.repo.UpdateBudget(ctx, id, patch)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteBudget(ctx, id)
}
