package transaction

import (
	"time"

	"github.com/google/uuid"
)

// Type classifies the direction of a transaction.
type Type string

const (
	TypeDebit  Type = "debit"  // outflow (expense)
	TypeCredit Type = "credit" // inflow (income)
)

// Valid reports whether t is one of the known transaction types.
func (t Type) Valid() bool {
	return t == TypeDebit || t == TypeCredit
}

// DisplayCategory is the label shown for an absent category.
const DisplayCategory = "Uncategorized"

// Transaction represents a single credit-card transaction from a CSV upload.
// Amount is in cents and signed; the sign and Type are independent fields.
// An empty Category is rendered as "Uncategorized" at display time and is
// never rewritten in the stored record.
type Transaction struct {
	ID          uuid.UUID
	UploadID    uuid.UUID
	Date        time.Time
	PostDate    time.Time
	Description string
	Category    string
	Type        Type
	Amount      int64 // Amount in cents
	Memo        string
	CreatedAt   time.Time
}

// CategoryLabel returns the category to display for tx.
func (tx *Transaction) CategoryLabel() string {
	if tx.Category == "" {
		return DisplayCategory
	}

	return tx.Category
}

// Upload represents one CSV upload session. A new upload supersedes all
// previous ones: listing and analytics always work against the latest upload.
type Upload struct {
	ID               uuid.UUID
	CreatedAt        time.Time
	TransactionCount int
}
