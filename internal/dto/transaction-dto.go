package dto

import (
	"time"

	"github.com/aarondl/null/v8"
)

type CreateTransactionDTO struct {
	Kind        string    `json:"kind" validate:"required,oneof=income expense"`
	AmountCents int64     `json:"amount_cents" validate:"required,gt=0"`
	Description string    `json:"description" validate:"required"`
	OccurredAt  time.Time `json:"occurred_at" validate:"required"`
	EventID     null.Int  `json:"event_id"`
}

type UpdateTransactionDTO struct {
	Kind        null.String `json:"kind" validate:"omitempty,oneof=income expense"`
	AmountCents *int64      `json:"amount_cents" validate:"omitempty,gt=0"`
	Description null.String `json:"description"`
	OccurredAt  *time.Time  `json:"occurred_at"`
	EventID     null.Int    `json:"event_id"`
}
