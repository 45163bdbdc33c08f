package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Swipe actions.
const (
	SwipeActionLike = "LIKE"
	SwipeActionPass = "PASS"
)

// Swipe records one user's decision on another's profile.
type Swipe struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	ActorID   string    `gorm:"index:idx_swipe_pair;not null" json:"actorId"`
	TargetID  string    `gorm:"index:idx_swipe_pair;not null" json:"targetId"`
	Action    string    `gorm:"size:8;not null" json:"action"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Swipe) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}

// Match is created when two users have both swiped LIKE on each other.
type Match struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	User1ID   string    `gorm:"index;not null" json:"user1Id"`
	User2ID   string    `gorm:"index;not null" json:"user2Id"`
	CreatedAt time.Time `json:"createdAt"`
}

func (m *Match) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}

// PartnerOf returns the other side of the match.
func (m *Match) PartnerOf(userID string) string {
	if m.User1ID == userID {
		return m.User2ID
	}
	return m.User1ID
}

// Block hides TargetID from ActorID's feed and matches.
type Block struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	ActorID   string    `gorm:"index;not null" json:"actorId"`
	TargetID  string    `gorm:"index;not null" json:"targetId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (b *Block) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return
}
