package goal

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/finboard/finboard/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=goal
type Repository interface {
	CreateGoal(ctx context.Context, g *Goal) error
	GetGoal(ctx context.Context, id uuid.UUID) (*Goal, error)
	ListGoals(ctx context.Context) ([]*Goal, error)
	UpdateGoal(ctx context.Context, id uuid.UUID, patch Patch) (*Goal, error)
	DeleteGoal(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name         string
	TargetAmount *float64
	SavedAmount  *float64
}

// Patch holds the fields to change on a goal. Nil fields are left unchanged.
type Patch struct {
	Name         *string
	TargetAmount *float64
	SavedAmount  *float64
}

// Apply sets the provided fields on g.
func (p Patch) Apply(g *Goal) {
	if p.Name != nil {
		g.Name = strings.TrimSpace(*p.Name)
	}

	if p.TargetAmount != nil {
		g.TargetAmount = *p.TargetAmount
	}

	if p.SavedAmount != nil {
		g.SavedAmount = *p.SavedAmount
	}
}

func validAmounts(target, saved *float64) error {
	if err := apperr.Finite("target_amount", target); err != nil {
		return err
	}

	return apperr.Finite("saved_amount", saved)
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Goal, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, apperr.Missing("name")
	}

	if params.TargetAmount == nil {
		return nil, apperr.Missing("target_amount")
	}

	if err := validAmounts(params.TargetAmount, params.SavedAmount); err != nil {
		return nil, err
	}

	g := &Goal{
		Name:         strings.TrimSpace(params.Name),
		TargetAmount: *params.TargetAmount,
	}

	if params.SavedAmount != nil {
		g.SavedAmount = *params.SavedAmount
	}

	if err := s.repo.CreateGoal(ctx, g); err != nil {
		return nil, err
	}

	return g, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Goal, error) {
	return s.repo.GetGoal(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Goal, error) {
	return s.repo.ListGoals(ctx)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, patch Patch) (*Goal, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, apperr.Invalid("name", "must not be empty")
	}

	if err := validAmounts(patch.TargetAmount, patch.SavedAmount); err != nil {
		return nil, err
	}

	return s.repo.UpdateGoal(ctx, id, patch)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteGoal(ctx, id)
}
