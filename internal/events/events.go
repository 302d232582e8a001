package events

import "time"

const (
	MemberUpdatedName       = "member.updated"
	EventCreatedName        = "event.created"
	EnrollmentChangedName   = "event.enrollment_changed"
	TransactionRecordedName = "finance.transaction_recorded"
	OrderPlacedName         = "shop.order_placed"
)

// MemberUpdated fires on any change that can affect a member's claims:
// profile edits, category grants, position changes, role changes.
type MemberUpdated struct {
	MemberID uint64
	ActorID  uint64
	Change   string
}

func (e MemberUpdated) Name() string { return MemberUpdatedName }

type EventCreated struct {
	EventID   uint64
	ActorID   uint64
	EventName string
	StartDate time.Time
}

func (e EventCreated) Name() string { return EventCreatedName }

type EnrollmentChanged struct {
	EventID  uint64
	MemberID uint64
	Enrolled bool
}

func (e EnrollmentChanged) Name() string { return EnrollmentChangedName }

type TransactionRecorded struct {
	TransactionID uint64
	ActorID       uint64
	Kind          string
	AmountCents   int64
}

func (e TransactionRecorded) Name() string { return TransactionRecordedName }

type OrderPlaced struct {
	OrderID    uint64
	MemberID   uint64
	TotalCents int64
}

func (e OrderPlaced) Name() string { return OrderPlacedName }
