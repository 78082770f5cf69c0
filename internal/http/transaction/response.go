package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/rangehq/rangefin/internal/transaction"
)

type transactionResponse struct {
	ID          uuid.UUID        `json:"id"`
	Date        time.Time        `json:"date"`
	PostDate    time.Time        `json:"post_date"`
	Description string           `json:"description"`
	Category    string           `json:"category,omitempty"`
	Type        transaction.Type `json:"type"`
	Amount      int64            `json:"amount"`
	Memo        string           `json:"memo,omitempty"`
}

type listResponse struct {
	Transactions []transactionResponse `json:"transactions"`
	Total        int                   `json:"total"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Date:        tx.Date,
		PostDate:    tx.PostDate,
		Description: tx.Description,
		Category:    tx.Category,
		Type:        tx.Type,
		Amount:      tx.Amount,
		Memo:        tx.Memo,
	}
}

func toListResponse(txs []*transaction.Transaction, total int) listResponse {
	resp := listResponse{
		Transactions: make([]transactionResponse, len(txs)),
		Total:        total,
	}
	for i, tx := range txs {
		resp.Transactions[i] = toResponse(tx)
	}

	return resp
}
