package entities

import "time"

// ChatMessage keys on a UUID so the frontend can reference messages it only
// ever saw over the websocket.
type ChatMessage struct {
	ID       string    `json:"id" db:"id"`
	EventID  uint64    `json:"event_id" db:"event_id"`
	MemberID uint64    `json:"member_id" db:"member_id"`
	Message  string    `json:"message" db:"message"`
	SentAt   time.Time `json:"sent_at" db:"sent_at"`
	Deleted  bool      `json:"deleted" db:"deleted"`

	MemberName *string `json:"member_name,omitempty" db:"-"`
	AvatarURL  *string `json:"avatar_url,omitempty" db:"-"`
}
