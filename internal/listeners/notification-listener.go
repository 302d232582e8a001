package listeners

import (
	"context"

	"go.uber.org/zap"

	domainevents "rtub-system/internal/events"
	"rtub-system/pkg/eventbus"
	"rtub-system/pkg/websocket"
)

// NotificationListener pushes new-event notifications to every connected
// client.
type NotificationListener struct {
	hub    *websocket.Hub
	logger *zap.Logger
}

func NewNotificationListener(hub *websocket.Hub, logger *zap.Logger) *NotificationListener {
	return &NotificationListener{hub: hub, logger: logger}
}

func (l *NotificationListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(domainevents.EventCreatedName, l.onEventCreated)
}

func (l *NotificationListener) onEventCreated(ctx context.Context, event eventbus.Event) error {
	created, ok := event.(domainevents.EventCreated)
	if !ok {
		return nil
	}

	payload := websocket.NewEventNotificationPayload{
		ID:        created.EventID,
		Name:      created.EventName,
		StartDate: created.StartDate,
	}
	return l.hub.BroadcastAll(websocket.EventNewEventNotification, payload)
}
