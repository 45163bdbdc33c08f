package config

import "time"

const (
	// Pairing lock
	PairingLockTTL        = 10 * time.Second
	PairingLockKeyPrefix  = "pairing_lock:"
	RealtimeChannelPrefix = "events:"

	// History pagination
	DefaultHistoryPage  = 1
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 50

	// Discovery feed
	DefaultFeedLimit = 20

	// Profile completion is computed over this many fields.
	ProfileCompletionFields = 17

	// Auth
	TokenTTL = 7 * 24 * time.Hour
)
