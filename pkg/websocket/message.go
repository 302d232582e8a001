package websocket

import (
	"strconv"
	"time"
)

// Wire event names. Existing clients dispatch on these strings; do not
// rename.
const (
	EventReceiveMessage       = "ReceiveMessage"
	EventMessageDeleted       = "MessageDeleted"
	EventNewEventNotification = "ReceiveNewEventNotification"
)

// EventGroupName builds the group a chat connection joins for one event.
// The "event-{id}" convention is shared with clients.
func EventGroupName(eventID uint64) string {
	return "event-" + strconv.FormatUint(eventID, 10)
}

// Envelope wraps every outbound frame with its event name so the frontend
// can dispatch on it.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// ChatMessagePayload is the ReceiveMessage payload. Field set is part of the
// client contract.
type ChatMessagePayload struct {
	ID        string    `json:"id"`
	UserID    uint64    `json:"userId"`
	UserName  string    `json:"userName"`
	AvatarURL *string   `json:"avatarUrl,omitempty"`
	Message   string    `json:"message"`
	SentAt    time.Time `json:"sentAt"`
}

// MessageDeletedPayload is the MessageDeleted payload.
type MessageDeletedPayload struct {
	ID string `json:"id"`
}

// NewEventNotificationPayload is the ReceiveNewEventNotification payload.
type NewEventNotificationPayload struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"startDate"`
}
