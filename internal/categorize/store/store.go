package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/finboard/finboard/internal/apperr"
	"github.com/finboard/finboard/internal/categorize"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindMatch(ctx context.Context, description string) (string, error) {
	query := `
		SELECT category
		FROM category_rules
		WHERE strpos(lower($1), lower(pattern)) > 0
		ORDER BY char_length(pattern) DESC, created_at DESC
		LIMIT 1
	`

	var category string

	err := s.db.QueryRowContext(ctx, query, description).Scan(&category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}

		return "", apperr.Store("finding category rule", err)
	}

	return category, nil
}

func (s *Store) CreateRule(ctx context.Context, r *categorize.Rule) error {
	query := `
		INSERT INTO category_rules (pattern, category, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at
	`

	return apperr.Store("creating category rule", s.db.QueryRowContext(ctx, query, r.Pattern, r.Category).Scan(&r.ID, &r.CreatedAt))
}

func (s *Store) ListRules(ctx context.Context) ([]*categorize.Rule, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, pattern, category, created_at FROM category_rules ORDER BY created_at ASC`)
	if err != nil {
		return nil, apperr.Store("listing category rules", err)
	}
	defer rows.Close()

	var rules []*categorize.Rule

	for rows.Next() {
		var r categorize.Rule
		if err := rows.Scan(&r.ID, &r.Pattern, &r.Category, &r.CreatedAt); err != nil {
			return nil, apperr.Store("scanning category rule", err)
		}

		rules = append(rules, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Store("iterating category rules", err)
	}

	return rules, nil
}

func (s *Store) DeleteRule(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM category_rules WHERE id = $1`, id)
	if err != nil {
		return apperr.Store("deleting category rule", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Store("deleting category rule", err)
	}

	if n == 0 {
		return categorize.ErrNotFound
	}

	return nil
}
