package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// User represents a registered student profile.
type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:120;not null" json:"name"`
	Email        string `gorm:"size:190;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	Age     int    `json:"age"`
	Gender  string `gorm:"index" json:"gender"`
	College string `json:"college"`
	Branch  string `json:"branch"`
	// BranchVisible controls whether the branch is shown on the public profile.
	BranchVisible bool    `json:"branchVisible"`
	Height        float64 `json:"height"`

	Interests       pq.StringArray `gorm:"type:text[]" json:"interests"`
	PersonalityType string         `json:"personalityType"`
	CampusVibeTags  pq.StringArray `gorm:"type:text[]" json:"campusVibeTags"`
	HangoutSpot     string         `json:"hangoutSpot"`
	FavoriteArtist  pq.StringArray `gorm:"type:text[]" json:"favoriteArtist"`
	FunPrompt1      string         `json:"funPrompt1"`
	FunPrompt2      string         `json:"funPrompt2"`
	FunPrompt3      string         `json:"funPrompt3"`
	CurrentMood     string         `json:"currentMood"`
	// ConnectionIntent is one of: study_buddy, fest_and_fun, genuine_connection,
	// just_vibing, its_complicated.
	ConnectionIntent string `json:"connectionIntent"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	ProfileImages []ProfileImage `json:"profileImages,omitempty"`
}

// BeforeCreate is a GORM hook that assigns a UUID if the ID is not set.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// ProfileImage is one ordered photo on a user's profile. The image bytes live
// in external object storage; only the public URL is recorded here.
type ProfileImage struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index;not null" json:"userId"`
	URL       string    `gorm:"type:text;not null" json:"url"`
	Order     int       `gorm:"column:display_order" json:"order"`
	CreatedAt time.Time `json:"-"`
}

func (p *ProfileImage) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

// PartnerProfile is the trimmed view of a user disclosed to a blind-date
// partner or a match: identity plus the first profile photo only.
type PartnerProfile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Age     int    `json:"age"`
	College string `json:"college"`
	// PhotoURL is the URL of the first profile image, empty if none uploaded.
	PhotoURL string `json:"photoUrl,omitempty"`
}
