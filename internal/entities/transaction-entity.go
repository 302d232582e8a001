package entities

import (
	"time"

	"rtub-system/pkg/types"
)

const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

// Transaction is one ledger line. Amounts are cents; expenses are stored
// positive and signed by Kind.
type Transaction struct {
	ID          uint64    `json:"id" db:"id"`
	Kind        string    `json:"kind" db:"kind"`
	AmountCents int64     `json:"amount_cents" db:"amount_cents"`
	Description string    `json:"description" db:"description"`
	OccurredAt  time.Time `json:"occurred_at" db:"occurred_at"`
	RecordedBy  uint64    `json:"recorded_by" db:"recorded_by"`
	EventID     *uint64   `json:"event_id,omitempty" db:"event_id"`

	types.BaseEntity
}

// BalanceSummary aggregates the ledger.
type BalanceSummary struct {
	IncomeCents  int64 `json:"income_cents"`
	ExpenseCents int64 `json:"expense_cents"`
	BalanceCents int64 `json:"balance_cents"`
}
