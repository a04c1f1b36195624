package importer

import (
	"context"
	"io"
	"log/slog"

	"github.com/finboard/finboard/internal/transaction"
)

// DefaultCategory is assigned to imported rows that carry no category and
// match no rule.
const DefaultCategory = "Outros"

//go:generate mockgen -source=service.go -destination=service_mock.go -package=importer
type TransactionCreator interface {
	CreateBatch(ctx context.Context, params []transaction.CreateParams) ([]*transaction.Transaction, error)
}

type CategorySuggester interface {
	Suggest(ctx context.Context, description string) (string, error)
}

type Service struct {
	transactions TransactionCreator
	categories   CategorySuggester
}

func NewService(transactions TransactionCreator, categories CategorySuggester) *Service {
	return &Service{transactions: transactions, categories: categories}
}

// Import parses a statement file, fills in missing categories from the
// category rules and stores every row in one batch. Nothing is stored when
// any row is invalid.
func (s *Service) Import(ctx context.Context, format Format, r io.Reader) ([]*transaction.Transaction, error) {
	parsed, err := Parse(r, format)
	if err != nil {
		return nil, err
	}

	slog.Debug("parsed statement", "format", parsed.Format, "charset", parsed.Charset, "rows", len(parsed.Rows))

	for i, p := range parsed.Rows {
		if p.Category != "" {
			continue
		}

		parsed.Rows[i].Category = s.suggest(ctx, p.Description)
	}

	txs, err := s.transactions.CreateBatch(ctx, parsed.Rows)
	if err != nil {
		return nil, err
	}

	if txs == nil {
		txs = []*transaction.Transaction{}
	}

	return txs, nil
}

func (s *Service) suggest(ctx context.Context, description string) string {
	category, err := s.categories.Suggest(ctx, description)
	if err != nil {
		slog.Warn("category suggestion failed", "description", description, "error", err)
		return DefaultCategory
	}

	if category == "" {
		return DefaultCategory
	}

	return category
}
