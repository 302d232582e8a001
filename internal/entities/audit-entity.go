package entities

import "time"

// AuditRecord is one append-only trail line. Records are never updated or
// deleted through the application.
type AuditRecord struct {
	ID        uint64    `json:"id" db:"id"`
	ActorID   uint64    `json:"actor_id" db:"actor_id"`
	Action    string    `json:"action" db:"action"`
	Entity    string    `json:"entity" db:"entity"`
	EntityID  string    `json:"entity_id" db:"entity_id"`
	Detail    *string   `json:"detail,omitempty" db:"detail"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// EmailRecord logs outbound mail intent. Actual delivery happens outside
// this system; the record is the trail.
type EmailRecord struct {
	ID             uint64    `json:"id" db:"id"`
	RecipientID    *uint64   `json:"recipient_id,omitempty" db:"recipient_id"`
	RecipientEmail string    `json:"recipient_email" db:"recipient_email"`
	Subject        string    `json:"subject" db:"subject"`
	Body           string    `json:"body" db:"body"`
	Kind           string    `json:"kind" db:"kind"`
	QueuedAt       time.Time `json:"queued_at" db:"queued_at"`
}
