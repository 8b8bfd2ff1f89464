package transaction

import (
	"time"

	"github.com/eldermuller/dindin/internal/transaction"
)

// transactionResponse mirrors the column names the browser client has always
// consumed; request bodies use the English field names.
type transactionResponse struct {
	ID           int64            `json:"id"`
	Kind         transaction.Kind `json:"tipo"`
	Description  string           `json:"descricao"`
	Amount       int64            `json:"valor"`
	Date         string           `json:"data"`
	OwnerID      int64            `json:"usuario_id"`
	CategoryID   int64            `json:"categoria_id"`
	CategoryName string           `json:"categoria_nome"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:           tx.ID,
		Kind:         tx.Kind,
		Description:  tx.Description,
		Amount:       tx.Amount,
		Date:         tx.Date.Format(time.DateOnly),
		OwnerID:      tx.OwnerID,
		CategoryID:   tx.CategoryID,
		CategoryName: tx.CategoryName,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}

type summaryResponse struct {
	Income  int64 `json:"entrada"`
	Expense int64 `json:"saida"`
}
