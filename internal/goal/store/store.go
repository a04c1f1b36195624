package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/finboard/finboard/internal/apperr"
	"github.com/finboard/finboard/internal/goal"
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

func scanGoal(s scanner) (*goal.Goal, error) {
	var g goal.Goal
	if err := s.Scan(&g.ID, &g.Name, &g.TargetAmount, &g.SavedAmount, &g.CreatedAt); err != nil {
		return nil, err
	}

	return &g, nil
}

const selectColumns = `id, name, target_amount, saved_amount, created_at`

func (s *Store) CreateGoal(ctx context.Context, g *goal.Goal) error {
	query := `
		INSERT INTO goals (name, target_amount, saved_amount, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, g.Name, g.TargetAmount, g.SavedAmount).Scan(&g.ID, &g.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.Store("creating goal", errors.New("insert returned no rows"))
	}

	return apperr.Store("creating goal", err)
}

func (s *Store) GetGoal(ctx context.Context, id uuid.UUID) (*goal.Goal, error) {
	query := `SELECT ` + selectColumns + ` FROM goals WHERE id = $1`

	g, err := scanGoal(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goal.ErrNotFound
		}

		return nil, apperr.Store("getting goal", err)
	}

	return g, nil
}

func (s *Store) ListGoals(ctx context.Context) ([]*goal.Goal, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM goals ORDER BY created_at ASC`)
	if err != nil {
		return nil, apperr.Store("listing goals", err)
	}
	defer rows.Close()

	var goals []*goal.Goal

	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, apperr.Store("scanning goal", err)
		}

		goals = append(goals, g)
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Store("iterating goals", err)
	}

	return goals, nil
}

func (s *Store) UpdateGoal(ctx context.Context, id uuid.UUID, patch goal.Patch) (*goal.Goal, error) {
	query := `
		UPDATE goals
		SET name = COALESCE($1::text, name),
			target_amount = COALESCE($2::double precision, target_amount),
			saved_amount = COALESCE($3::double precision, saved_amount)
		WHERE id = $4
		RETURNING ` + selectColumns

	var name *string
	if patch.Name != nil {
		name = new(strings.TrimSpace(*patch.Name))
	}

	g, err := scanGoal(s.db.QueryRowContext(ctx, query, name, patch.TargetAmount, patch.SavedAmount, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goal.ErrNotFound
		}

		return nil, apperr.Store("updating goal", err)
	}

	return g, nil
}

func (s *Store) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return apperr.Store("deleting goal", err)
	}

	return expectOneRow(res, "deleting goal")
}

func expectOneRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Store(op, err)
	}

	if n == 0 {
		return goal.ErrNotFound
	}

	return nil
}
