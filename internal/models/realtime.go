package models

import "encoding/json"

// Event types pushed to connected clients.
const (
	EventBlindDatePaired  = "blind_date_paired"
	EventBlindDateMessage = "blind_date_message"
	EventBlindDateReveal  = "blind_date_reveal"
	EventBlindDateEnded   = "blind_date_ended"
	EventNewMatch         = "new_match"
)

// Event is a notification-grade payload fanned out over Redis pub/sub to a
// user's open websocket, if any. REST responses remain the source of truth.
type Event struct {
	Type        string          `json:"type"`
	BlindDateID string          `json:"blindDateId,omitempty"`
	Data        json.RawMessage `json:"data,omitempty"`
}
