// Package realtime pushes blind-date and match events to connected clients.
// Events are published to Redis by the services and fanned out here, so any
// instance of the backend can deliver to whichever instance holds the
// user's socket. REST responses stay the source of truth; this channel is
// notification-grade only.
package realtime

import (
	"encoding/json"
	"log"
	"strings"

	"dyce/backend/internal/config"
	"dyce/backend/internal/models"
	"dyce/backend/internal/storage"
)

// UserEvent pairs an event with its target user.
type UserEvent struct {
	UserID string
	Event  models.Event
}

// Manager tracks connected clients and routes events to them.
type Manager struct {
	Clients map[string]Client

	RegisterCh   chan Client
	UnregisterCh chan Client
	EventCh      chan UserEvent

	Storage *storage.Service
}

// NewManager creates the realtime manager.
func NewManager(s *storage.Service) *Manager {
	return &Manager{
		Clients:      make(map[string]Client),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		EventCh:      make(chan UserEvent, 64),
		Storage:      s,
	}
}

// StartPubSubListener subscribes to the per-user event channels in Redis and
// feeds them into EventCh.
func (m *Manager) StartPubSubListener() {
	go func() {
		pubsub := m.Storage.SubscribeEvents()
		defer pubsub.Close()

		for msg := range pubsub.Channel() {
			var ev models.Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("ERROR: Failed to decode realtime event: %v", err)
				continue
			}

			userID := strings.TrimPrefix(msg.Channel, config.RealtimeChannelPrefix)
			m.EventCh <- UserEvent{UserID: userID, Event: ev}
		}
	}()
}

// Run is the manager's dispatch loop. One goroutine owns the Clients map;
// registration, unregistration and event routing all serialize through it.
func (m *Manager) Run() {
	if m.Storage != nil {
		m.StartPubSubListener()
	}

	for {
		select {
		case client := <-m.RegisterCh:
			if old, ok := m.Clients[client.GetUserID()]; ok {
				old.Close()
			}
			m.Clients[client.GetUserID()] = client
			log.Printf("Realtime client connected: %s", client.GetUserID())

		case client := <-m.UnregisterCh:
			if current, ok := m.Clients[client.GetUserID()]; ok && current == client {
				delete(m.Clients, client.GetUserID())
				client.Close()
			}

		case ue := <-m.EventCh:
			client, ok := m.Clients[ue.UserID]
			if !ok {
				// User has no open socket here; the event was still
				// delivered via the notification dispatcher.
				continue
			}
			select {
			case client.GetSendChannel() <- ue.Event:
			default:
				// Slow consumer; drop the connection rather than block
				// the dispatch loop.
				delete(m.Clients, ue.UserID)
				client.Close()
			}
		}
	}
}
