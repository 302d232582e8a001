package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Hub tracks all live connections, per-user connection lists and named
// groups (one group per event chat).
type Hub struct {
	clients     map[*Client]bool
	userClients map[uint64][]*Client
	groups      map[string]map[*Client]bool
	Register    chan *Client
	unregister  chan *Client
	mu          sync.RWMutex
	logger      *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:     make(map[*Client]bool),
		userClients: make(map[uint64][]*Client),
		groups:      make(map[string]map[*Client]bool),
		Register:    make(chan *Client),
		unregister:  make(chan *Client),
		logger:      logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			h.userClients[client.UserID] = append(h.userClients[client.UserID], client)
			h.logger.Debug("ws client registered", zap.Uint64("userID", client.UserID))
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			h.removeClient(client)
			h.mu.Unlock()
		}
	}
}

// removeClient must be called with h.mu held.
func (h *Hub) removeClient(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.Send)

	clients := h.userClients[client.UserID]
	for i, c := range clients {
		if c == client {
			h.userClients[client.UserID] = append(clients[:i], clients[i+1:]...)
			break
		}
	}
	if len(h.userClients[client.UserID]) == 0 {
		delete(h.userClients, client.UserID)
	}

	for name, members := range h.groups {
		if members[client] {
			delete(members, client)
			if len(members) == 0 {
				delete(h.groups, name)
			}
		}
	}
	h.logger.Debug("ws client disconnected", zap.Uint64("userID", client.UserID))
}

// JoinGroup adds the client to a named group ("event-{id}").
func (h *Hub) JoinGroup(group string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.groups[group] == nil {
		h.groups[group] = make(map[*Client]bool)
	}
	h.groups[group][client] = true
}

func (h *Hub) LeaveGroup(group string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if members, ok := h.groups[group]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(h.groups, group)
		}
	}
}

// BroadcastToGroup pushes an enveloped event to every member of the group.
func (h *Hub) BroadcastToGroup(group string, eventType string, payload interface{}) error {
	message, err := h.envelope(eventType, payload)
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.groups[group] {
		select {
		case client.Send <- message:
		default:
			// slow consumer; the write pump will tear the connection down
		}
	}
	return nil
}

// BroadcastAll pushes an enveloped event to every connected client.
func (h *Hub) BroadcastAll(eventType string, payload interface{}) error {
	message, err := h.envelope(eventType, payload)
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.Send <- message:
		default:
		}
	}
	return nil
}

// SendToUser pushes an enveloped event to all connections of one user.
func (h *Hub) SendToUser(userID uint64, eventType string, payload interface{}) error {
	message, err := h.envelope(eventType, payload)
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.userClients[userID] {
		select {
		case client.Send <- message:
		default:
		}
	}
	return nil
}

func (h *Hub) envelope(eventType string, payload interface{}) ([]byte, error) {
	env := Envelope{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
	message, err := json.Marshal(env)
	if err != nil {
		h.logger.Error("ws envelope marshal failed", zap.Error(err))
		return nil, err
	}
	return message, nil
}
