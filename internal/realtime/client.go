package realtime

import "dyce/backend/internal/models"

// Client is one connected delivery target for realtime events. It abstracts
// the transport so the manager can route events without knowing about
// websockets.
type Client interface {
	// GetUserID returns the authenticated user behind the connection.
	GetUserID() string

	// GetSendChannel returns the channel the manager pushes events into.
	GetSendChannel() chan<- models.Event

	// Run starts the connection's read and write pumps.
	Run()
	// Close shuts down the connection and its channels.
	Close()
}
