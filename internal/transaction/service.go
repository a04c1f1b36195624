package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finboard/finboard/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	CreateTransactions(ctx context.Context, txs []*Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
	UpdateTransaction(ctx context.Context, id uuid.UUID, patch Patch) (*Transaction, error)
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateParams carries the fields of a new transaction. Pointer fields are
// nil when the caller did not provide them.
type CreateParams struct {
	Description string
	Amount      *float64
	Date        *time.Time
	Category    string
	Type        Type
	IsPaid      *bool
}

func (p CreateParams) validate() error {
	switch {
	case strings.TrimSpace(p.Description) == "":
		return apperr.Missing("description")
	case p.Amount == nil:
		return apperr.Missing("amount")
	case p.Date == nil:
		return apperr.Missing("date")
	case strings.TrimSpace(p.Category) == "":
		return apperr.Missing("category")
	case p.Type == "":
		return apperr.Missing("type")
	case !p.Type.Valid():
		return apperr.Invalid("type", "must be income or expense")
	}

	return apperr.Finite("amount", p.Amount)
}

func (p CreateParams) toTransaction() *Transaction {
	isPaid := true
	if p.IsPaid != nil {
		isPaid = *p.IsPaid
	}

	return &Transaction{
		Description: strings.TrimSpace(p.Description),
		Amount:      signed(*p.Amount, p.Type),
		Date:        *p.Date,
		Category:    strings.TrimSpace(p.Category),
		Type:        p.Type,
		IsPaid:      isPaid,
	}
}

// Patch lists the fields to change on an existing transaction. Nil fields are
// left unchanged. Stores apply it in a single write so concurrent patches of
// different fields do not overwrite each other.
type Patch struct {
	Description *string
	Amount      *float64
	Date        *time.Time
	Category    *string
	Type        *Type
	IsPaid      *bool
}

func (p Patch) validate() error {
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		return apperr.Invalid("description", "must not be empty")
	}

	if p.Category != nil && strings.TrimSpace(*p.Category) == "" {
		return apperr.Invalid("category", "must not be empty")
	}

	if p.Type != nil && !p.Type.Valid() {
		return apperr.Invalid("type", "must be income or expense")
	}

	return apperr.Finite("amount", p.Amount)
}

// Apply sets the provided fields on tx and re-signs its amount for the
// resulting type.
func (p Patch) Apply(tx *Transaction) {
	if p.Description != nil {
		tx.Description = strings.TrimSpace(*p.Description)
	}

	if p.Amount != nil {
		tx.Amount = *p.Amount
	}

	if p.Date != nil {
		tx.Date = *p.Date
	}

	if p.Category != nil {
		tx.Category = strings.TrimSpace(*p.Category)
	}

	if p.Type != nil {
		tx.Type = *p.Type
	}

	if p.IsPaid != nil {
		tx.IsPaid = *p.IsPaid
	}

	tx.Amount = signed(tx.Amount, tx.Type)
}

// ListFilter narrows List results. Dates are inclusive.
type ListFilter struct {
	Type      *Type
	Category  *string
	StartDate *time.Time
	EndDate   *time.Time
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	tx := params.toTransaction()
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// CreateBatch validates every row before inserting any, then stores them all
// atomically.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	txs := make([]*Transaction, len(params))

	for i, p := range params {
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		txs[i] = p.toTransaction()
	}

	if err := s.repo.CreateTransactions(ctx, txs); err != nil {
		return nil, err
	}

	return txs, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, patch Patch) (*Transaction, error) {
	if err := patch.validate(); err != nil {
		return nil, err
	}

	return s.repo.UpdateTransaction(ctx, id, patch)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteTransaction(ctx, id)
}
