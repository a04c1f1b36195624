package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/finboard/finboard/internal/apperr"
	"github.com/finboard/finboard/internal/budget"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBudget(s scanner) (*budget.Budget, error) {
	var b budget.Budget
	if err := s.Scan(&b.ID, &b.Category, &b.Limit, &b.Month, &b.CreatedAt); err != nil {
		return nil, err
	}

	return &b, nil
}

const selectColumns = `id, category, "limit", month, created_at`

func (s *Store) CreateBudget(ctx context.Context, b *budget.Budget) error {
	query := `
		INSERT INTO budgets (category, "limit", month, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, b.Category, b.Limit, b.Month).Scan(&b.ID, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.Store("creating budget", errors.New("insert returned no rows"))
	}

	return apperr.Store("creating budget", err)
}

func (s *Store) ListBudgets(ctx context.Context, month string) ([]*budget.Budget, error) {
	query := `SELECT ` + selectColumns + ` FROM budgets WHERE month = $1 ORDER BY category ASC, created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, month)
	if err != nil {
		return nil, apperr.Store("listing budgets", err)
	}
	defer rows.Close()

	var budgets []*budget.Budget

	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, apperr.Store("scanning budget", err)
		}

		budgets = append(budgets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Store("iterating budgets", err)
	}

	return budgets, nil
}

func (s *Store) UpdateBudget(ctx context.Context, id uuid.UUID, patch budget.Patch) (*budget.Budget, error) {
	query := `
		UPDATE budgets
		SET category = COALESCE($1::text, category), "limit" = COALESCE($2::double precision, "limit")
		WHERE id = $3
		RETURNING ` + selectColumns

	var category *string
	if patch.Category != nil {
		category = new(strings.TrimSpace(*patch.Category))
	}

	b, err := scanBudget(s.db.QueryRowContext(ctx, query, category, patch.Limit, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, budget.ErrNotFound
		}

		return nil, apperr.Store("updating budget", err)
	}

	return b, nil
}

func (s *Store) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = $1`, id)
	if err != nil {
		return apperr.Store("deleting budget", err)
	}

	return expectOneRow(res, "deleting budget")
}

func expectOneRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Store(op, err)
	}

	if n == 0 {
		return budget.ErrNotFound
	}

	return nil
}
