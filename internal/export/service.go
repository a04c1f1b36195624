// Package export writes a month of transactions as CSV in the ledger layout
// the importer reads back.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finboard/finboard/internal/month"
	"github.com/finboard/finboard/internal/transaction"
)

var header = []string{"date", "description", "amount", "category", "type", "is_paid"}

//go:generate mockgen -source=service.go -destination=source_mock.go -package=export
type TransactionSource interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

type Service struct {
	transactions TransactionSource
}

func NewService(transactions TransactionSource) *Service {
	return &Service{transactions: transactions}
}

// Month returns the transactions dated inside the "YYYY-MM" month, oldest
// first.
func (s *Service) Month(ctx context.Context, key string) (month.Month, []*transaction.Transaction, error) {
	m, err := month.Parse(key)
	if err != nil {
		return month.Month{}, nil, err
	}

	txs, err := s.transactions.List(ctx, transaction.ListFilter{
		StartDate: new(m.First()),
		EndDate:   new(m.Last()),
	})
	if err != nil {
		return month.Month{}, nil, fmt.Errorf("listing transactions: %w", err)
	}

	slices.Reverse(txs)

	return m, txs, nil
}

// WriteCSV writes txs with a header row. Amounts keep their stored sign.
func WriteCSV(w io.Writer, txs []*transaction.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range txs {
		record := []string{
			tx.Date.Format(time.DateOnly),
			tx.Description,
			decimal.NewFromFloat(tx.Amount).StringFixed(2),
			tx.Category,
			string(tx.Type),
			strconv.FormatBool(tx.IsPaid),
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing transaction %s: %w", tx.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// Filename returns the attachment name for a month's export.
func Filename(m month.Month) string {
	return fmt.Sprintf("transactions-%s.csv", m)
}
