package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/finboard/finboard/internal/transaction"
)

type transactionResponse struct {
	ID          uuid.UUID        `json:"id"`
	Description string           `json:"description"`
	Amount      float64          `json:"amount"`
	Date        string           `json:"date"`
	Category    string           `json:"category"`
	Type        transaction.Type `json:"type"`
	IsPaid      bool             `json:"is_paid"`
	CreatedAt   time.Time        `json:"created_at"`
}

func ToResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Description: tx.Description,
		Amount:      tx.Amount,
		Date:        tx.Date.Format(time.DateOnly),
		Category:    tx.Category,
		Type:        tx.Type,
		IsPaid:      tx.IsPaid,
		CreatedAt:   tx.CreatedAt,
	}
}

func ToResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = ToResponse(tx)
	}

	return resp
}
