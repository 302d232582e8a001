package websocket

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func attachClient(h *Hub, userID uint64) *Client {
	c := &Client{Hub: h, Send: make(chan []byte, 8), UserID: userID, logger: zap.NewNop()}
	h.mu.Lock()
	h.clients[c] = true
	h.userClients[userID] = append(h.userClients[userID], c)
	h.mu.Unlock()
	return c
}

func receivedType(t *testing.T, c *Client) string {
	t.Helper()
	select {
	case raw := <-c.Send:
		var env Envelope
		require.NoError(t, json.Unmarshal(raw, &env))
		return env.Type
	default:
		return ""
	}
}

func TestBroadcastToGroupReachesOnlyMembers(t *testing.T) {
	hub := NewHub(zap.NewNop())
	inGroup := attachClient(hub, 1)
	outside := attachClient(hub, 2)
	hub.JoinGroup(EventGroupName(5), inGroup)

	err := hub.BroadcastToGroup(EventGroupName(5), EventReceiveMessage, ChatMessagePayload{Message: "ola"})
	require.NoError(t, err)

	assert.Equal(t, EventReceiveMessage, receivedType(t, inGroup))
	assert.Empty(t, receivedType(t, outside))
}

func TestBroadcastAllReachesEveryone(t *testing.T) {
	hub := NewHub(zap.NewNop())
	a := attachClient(hub, 1)
	b := attachClient(hub, 2)

	err := hub.BroadcastAll(EventNewEventNotification, NewEventNotificationPayload{ID: 9, Name: "Festival"})
	require.NoError(t, err)

	assert.Equal(t, EventNewEventNotification, receivedType(t, a))
	assert.Equal(t, EventNewEventNotification, receivedType(t, b))
}

func TestSendToUserTargetsAllConnectionsOfOneUser(t *testing.T) {
	hub := NewHub(zap.NewNop())
	first := attachClient(hub, 1)
	second := attachClient(hub, 1)
	other := attachClient(hub, 2)

	err := hub.SendToUser(1, EventMessageDeleted, MessageDeletedPayload{ID: "abc"})
	require.NoError(t, err)

	assert.Equal(t, EventMessageDeleted, receivedType(t, first))
	assert.Equal(t, EventMessageDeleted, receivedType(t, second))
	assert.Empty(t, receivedType(t, other))
}
