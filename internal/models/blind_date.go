package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message types allowed inside a blind date.
const (
	MessageTypeText  = "TEXT"
	MessageTypeEmoji = "EMOJI"
)

// BlindDate is a time-boxed anonymous pairing between two users.
// Identities stay hidden until both participants agree to reveal; the record
// is never deleted, it becomes history once Active is false.
type BlindDate struct {
	ID          string `gorm:"primaryKey" json:"id"`
	InitiatorID string `gorm:"index;not null" json:"initiatorId"`
	ReceiverID  string `gorm:"index;not null" json:"receiverId"`

	Active bool `gorm:"index" json:"active"`

	// Reveal consent is tracked per role. When both flags become true the
	// session is deactivated in the same transaction and Revealed is set.
	InitiatorAgreeToReveal bool `json:"initiatorAgreeToReveal"`
	ReceiverAgreeToReveal  bool `json:"receiverAgreeToReveal"`
	Revealed               bool `json:"revealed"`

	ExpiresAt time.Time  `gorm:"not null" json:"expiresAt"`
	CreatedAt time.Time  `json:"createdAt"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`
}

func (b *BlindDate) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return
}

// IsParticipant reports whether userID is one of the two participants.
func (b *BlindDate) IsParticipant(userID string) bool {
	return b.InitiatorID == userID || b.ReceiverID == userID
}

// PartnerOf returns the other participant's ID. The caller must already be a
// participant.
func (b *BlindDate) PartnerOf(userID string) string {
	if b.InitiatorID == userID {
		return b.ReceiverID
	}
	return b.InitiatorID
}

// RevealFlagFor returns the reveal-consent flag belonging to userID's role.
func (b *BlindDate) RevealFlagFor(userID string) bool {
	if b.InitiatorID == userID {
		return b.InitiatorAgreeToReveal
	}
	return b.ReceiverAgreeToReveal
}

// Duration returns the session length, zero while the session has not ended.
func (b *BlindDate) Duration() time.Duration {
	if b.EndedAt == nil {
		return 0
	}
	return b.EndedAt.Sub(b.CreatedAt)
}

// BlindDateMessage is a single message inside a blind date. Immutable after
// creation; Anonymous is a snapshot of the session's reveal status at send
// time, never recomputed.
type BlindDateMessage struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	BlindDateID string    `gorm:"index;not null" json:"blindDateId"`
	SenderID    string    `gorm:"not null" json:"senderId"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Type        string    `gorm:"size:16;not null" json:"type"`
	Anonymous   bool      `json:"anonymous"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (m *BlindDateMessage) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}

// ValidMessageType reports whether t is allowed inside a blind date.
// Only text and emoji are permitted while identities are hidden.
func ValidMessageType(t string) bool {
	return t == MessageTypeText || t == MessageTypeEmoji
}
