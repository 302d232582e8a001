package dto

import (
	"time"

	"github.com/aarondl/null/v8"
)

type CreateRehearsalDTO struct {
	Title       string      `json:"title" validate:"required"`
	Location    null.String `json:"location"`
	ScheduledAt time.Time   `json:"scheduled_at" validate:"required"`
	Notes       null.String `json:"notes"`
}

type UpdateRehearsalDTO struct {
	Title       null.String `json:"title"`
	Location    null.String `json:"location"`
	ScheduledAt *time.Time  `json:"scheduled_at"`
	Notes       null.String `json:"notes"`
}

type MarkAttendanceDTO struct {
	MemberID uint64 `json:"member_id" validate:"required"`
	Present  bool   `json:"present"`
}
