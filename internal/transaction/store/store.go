package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/finboard/finboard/internal/apperr"
	"github.com/finboard/finboard/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// execQuerier is satisfied by both *sql.DB and *sql.Tx.
type execQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanTransaction reads a row in selectColumns order.
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var typeStr string

	if err := s.Scan(
		&tx.ID, &tx.Description, &tx.Amount, &tx.Date, &tx.Category, &typeStr, &tx.IsPaid, &tx.CreatedAt,
	); err != nil {
		return nil, err
	}

	tx.Type = transaction.Type(typeStr)

	return &tx, nil
}

const selectColumns = `id, description, amount, date, category, type, is_paid, created_at`

const insertQuery = `
	INSERT INTO transactions (description, amount, date, category, type, is_paid, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, clock_timestamp())
	RETURNING id, created_at
`

func insert(ctx context.Context, q execQuerier, tx *transaction.Transaction) error {
	err := q.QueryRowContext(ctx, insertQuery,
		tx.Description,
		tx.Amount,
		tx.Date,
		tx.Category,
		tx.Type,
		tx.IsPaid,
	).Scan(&tx.ID, &tx.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.Store("creating transaction", errors.New("insert returned no rows"))
	}

	return apperr.Store("creating transaction", err)
}

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	return insert(ctx, s.db, tx)
}

// CreateTransactions inserts all rows in a single database transaction.
func (s *Store) CreateTransactions(ctx context.Context, txs []*transaction.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Store("beginning batch insert", err)
	}
	defer dbTx.Rollback()

	for _, tx := range txs {
		if err := insert(ctx, dbTx, tx); err != nil {
			return err
		}
	}

	if err := dbTx.Commit(); err != nil {
		return apperr.Store("committing batch insert", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + selectColumns + ` FROM transactions WHERE id = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, apperr.Store("getting transaction", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectColumns + ` FROM transactions WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Type != nil {
		query += fmt.Sprintf(" AND type = $%d", argIdx)

		args = append(args, *filter.Type)
		argIdx++
	}

	if filter.Category != nil {
		query += fmt.Sprintf(" AND category = $%d", argIdx)

		args = append(args, *filter.Category)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY date DESC, created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Store("listing transactions", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, apperr.Store("scanning transaction", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Store("iterating transactions", err)
	}

	return txs, nil
}

// UpdateTransaction writes only the fields set in patch. The amount is
// re-signed against the resulting type in the same statement.
func (s *Store) UpdateTransaction(ctx context.Context, id uuid.UUID, patch transaction.Patch) (*transaction.Transaction, error) {
	query := `
		UPDATE transactions
		SET description = COALESCE($1::text, description),
			amount = CASE WHEN COALESCE($5::text, type) = 'expense'
				THEN -ABS(COALESCE($2::double precision, amount))
				ELSE ABS(COALESCE($2::double precision, amount))
			END,
			date = COALESCE($3::date, date),
			category = COALESCE($4::text, category),
			type = COALESCE($5::text, type),
			is_paid = COALESCE($6::boolean, is_paid)
		WHERE id = $7
		RETURNING ` + selectColumns

	var txType *string
	if patch.Type != nil {
		txType = new(string(*patch.Type))
	}

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query,
		trimmed(patch.Description),
		patch.Amount,
		patch.Date,
		trimmed(patch.Category),
		txType,
		patch.IsPaid,
		id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, apperr.Store("updating transaction", err)
	}

	return tx, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}

	return new(strings.TrimSpace(*s))
}

func (s *Store) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return apperr.Store("deleting transaction", err)
	}

	return expectOneRow(res, "deleting transaction")
}

func expectOneRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Store(op, err)
	}

	if n == 0 {
		return transaction.ErrNotFound
	}

	return nil
}
