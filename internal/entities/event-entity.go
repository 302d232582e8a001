package entities

import (
	"time"

	"rtub-system/pkg/types"
)

type Event struct {
	ID          uint64     `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Description *string    `json:"description,omitempty" db:"description"`
	Location    *string    `json:"location,omitempty" db:"location"`
	StartDate   time.Time  `json:"start_date" db:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty" db:"end_date"`
	CreatorID   uint64     `json:"creator_id" db:"creator_id"`

	EnrollmentCount uint64 `json:"enrollment_count" db:"-"`

	types.BaseEntity
}

type Enrollment struct {
	ID         uint64    `json:"id" db:"id"`
	EventID    uint64    `json:"event_id" db:"event_id"`
	MemberID   uint64    `json:"member_id" db:"member_id"`
	EnrolledAt time.Time `json:"enrolled_at" db:"enrolled_at"`

	MemberName *string `json:"member_name,omitempty" db:"-"`
}
