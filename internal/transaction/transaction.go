package transaction

import "time"

// Kind classifies a transaction as income or expense. The values mirror the
// wire and column encoding ("entrada"/"saida").
type Kind string

const (
	KindIncome  Kind = "entrada"
	KindExpense Kind = "saida"
)

// Valid reports whether k is one of the two accepted kinds.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Transaction represents a single income or expense record owned by a user.
type Transaction struct {
	ID           int64
	Kind         Kind
	Description  string
	Amount       int64 // minor currency units
	Date         time.Time
	CategoryID   int64
	CategoryName string // loaded via JOIN
	OwnerID      int64
}

// Summary holds a user's income and expense totals.
type Summary struct {
	Income  int64
	Expense int64
}
