package realtime_test

import (
	"testing"
	"time"

	"dyce/backend/internal/models"
	"dyce/backend/internal/realtime"

	"github.com/stretchr/testify/assert"
)

func TestManager_RegisterUnregister(t *testing.T) {
	hub := realtime.NewManager(nil)
	clientA := newMockClient("user_A")

	go hub.Run()

	hub.RegisterCh <- clientA
	time.Sleep(100 * time.Millisecond)
	assert.Contains(t, hub.Clients, "user_A")

	hub.UnregisterCh <- clientA
	time.Sleep(100 * time.Millisecond)
	assert.NotContains(t, hub.Clients, "user_A")
	assert.True(t, clientA.closed)
}

func TestManager_RegisterReplacesExistingConnection(t *testing.T) {
	hub := realtime.NewManager(nil)
	first := newMockClient("user_A")
	second := newMockClient("user_A")

	go hub.Run()

	hub.RegisterCh <- first
	hub.RegisterCh <- second
	time.Sleep(100 * time.Millisecond)

	assert.True(t, first.closed, "stale connection is closed on reconnect")
	assert.Same(t, second, hub.Clients["user_A"].(*MockClient))
}

func TestManager_UnregisterIgnoresStaleClient(t *testing.T) {
	hub := realtime.NewManager(nil)
	first := newMockClient("user_A")
	second := newMockClient("user_A")

	go hub.Run()

	hub.RegisterCh <- first
	hub.RegisterCh <- second
	// The stale connection unregisters after being replaced; the live one
	// must stay registered.
	hub.UnregisterCh <- first
	time.Sleep(100 * time.Millisecond)

	assert.Contains(t, hub.Clients, "user_A")
	assert.False(t, second.closed)
}

func TestManager_RoutesEventToConnectedUser(t *testing.T) {
	hub := realtime.NewManager(nil)
	clientB := newMockClient("user_B")

	go hub.Run()

	hub.RegisterCh <- clientB
	hub.EventCh <- realtime.UserEvent{
		UserID: "user_B",
		Event:  models.Event{Type: models.EventBlindDateMessage, BlindDateID: "bd1"},
	}
	time.Sleep(100 * time.Millisecond)

	select {
	case ev := <-clientB.RecvChannel:
		assert.Equal(t, models.EventBlindDateMessage, ev.Type)
		assert.Equal(t, "bd1", ev.BlindDateID)
	default:
		t.Error("clientB did not receive event")
	}
}

func TestManager_DropsEventForDisconnectedUser(t *testing.T) {
	hub := realtime.NewManager(nil)

	go hub.Run()

	hub.EventCh <- realtime.UserEvent{
		UserID: "user_ghost",
		Event:  models.Event{Type: models.EventBlindDatePaired},
	}
	time.Sleep(100 * time.Millisecond)

	assert.NotContains(t, hub.Clients, "user_ghost")
}

func TestManager_SlowConsumerIsDisconnected(t *testing.T) {
	hub := realtime.NewManager(nil)
	slow := &MockClient{userID: "user_A", RecvChannel: make(chan models.Event)}

	go hub.Run()

	hub.RegisterCh <- slow
	hub.EventCh <- realtime.UserEvent{
		UserID: "user_A",
		Event:  models.Event{Type: models.EventBlindDatePaired},
	}
	time.Sleep(100 * time.Millisecond)

	assert.NotContains(t, hub.Clients, "user_A")
	assert.True(t, slow.closed)
}
