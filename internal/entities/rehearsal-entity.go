package entities

import (
	"time"

	"rtub-system/pkg/types"
)

type Rehearsal struct {
	ID          uint64    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Location    *string   `json:"location,omitempty" db:"location"`
	ScheduledAt time.Time `json:"scheduled_at" db:"scheduled_at"`
	Notes       *string   `json:"notes,omitempty" db:"notes"`

	types.BaseEntity
}

type RehearsalAttendance struct {
	ID          uint64 `json:"id" db:"id"`
	RehearsalID uint64 `json:"rehearsal_id" db:"rehearsal_id"`
	MemberID    uint64 `json:"member_id" db:"member_id"`
	Present     bool   `json:"present" db:"present"`
	MarkedBy    uint64 `json:"marked_by" db:"marked_by"`

	MemberName *string `json:"member_name,omitempty" db:"-"`
}
