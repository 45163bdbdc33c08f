// Package profile manages user profile reads, partial updates and the
// completion percentage.
package profile

import (
	"errors"
	"math"
	"strings"

	"dyce/backend/internal/config"
	"dyce/backend/internal/models"
	"dyce/backend/internal/storage"

	"github.com/lib/pq"
)

// ErrUserNotFound - the profile does not exist.
var ErrUserNotFound = errors.New("user not found")

// Service exposes profile operations.
type Service struct {
	store storage.Storage
}

// NewService creates the profile service.
func NewService(store storage.Storage) *Service {
	return &Service{store: store}
}

// Get loads the full profile including ordered images.
func (s *Service) Get(userID string) (*models.User, error) {
	user, err := s.store.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateRequest carries the updatable fields; nil pointers are left
// untouched (patch semantics).
type UpdateRequest struct {
	Name             *string   `json:"name"`
	Age              *int      `json:"age"`
	Gender           *string   `json:"gender"`
	Branch           *string   `json:"branch"`
	BranchVisible    *bool     `json:"branchVisible"`
	Height           *float64  `json:"height"`
	Interests        *[]string `json:"interests"`
	PersonalityType  *string   `json:"personalityType"`
	CampusVibeTags   *[]string `json:"campusVibeTags"`
	HangoutSpot      *string   `json:"hangoutSpot"`
	FavoriteArtist   *[]string `json:"favoriteArtist"`
	FunPrompt1       *string   `json:"funPrompt1"`
	FunPrompt2       *string   `json:"funPrompt2"`
	FunPrompt3       *string   `json:"funPrompt3"`
	CurrentMood      *string   `json:"currentMood"`
	ConnectionIntent *string   `json:"connectionIntent"`
}

// Update applies the provided fields and returns the refreshed profile.
func (s *Service) Update(userID string, req UpdateRequest) (*models.User, error) {
	user, err := s.store.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Age != nil {
		user.Age = *req.Age
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}
	if req.Branch != nil {
		user.Branch = *req.Branch
	}
	if req.BranchVisible != nil {
		user.BranchVisible = *req.BranchVisible
	}
	if req.Height != nil {
		user.Height = *req.Height
	}
	if req.Interests != nil {
		user.Interests = pq.StringArray(*req.Interests)
	}
	if req.PersonalityType != nil {
		user.PersonalityType = *req.PersonalityType
	}
	if req.CampusVibeTags != nil {
		user.CampusVibeTags = pq.StringArray(*req.CampusVibeTags)
	}
	if req.HangoutSpot != nil {
		user.HangoutSpot = *req.HangoutSpot
	}
	if req.FavoriteArtist != nil {
		user.FavoriteArtist = pq.StringArray(*req.FavoriteArtist)
	}
	if req.FunPrompt1 != nil {
		user.FunPrompt1 = *req.FunPrompt1
	}
	if req.FunPrompt2 != nil {
		user.FunPrompt2 = *req.FunPrompt2
	}
	if req.FunPrompt3 != nil {
		user.FunPrompt3 = *req.FunPrompt3
	}
	if req.CurrentMood != nil {
		user.CurrentMood = *req.CurrentMood
	}
	if req.ConnectionIntent != nil {
		user.ConnectionIntent = *req.ConnectionIntent
	}

	if err := s.store.UpdateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// CompletionPercentage reports how much of the profile is filled in, over a
// fixed set of fields.
func (s *Service) CompletionPercentage(userID string) (int, error) {
	user, err := s.store.GetUserByID(userID)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, ErrUserNotFound
	}
	return completion(user), nil
}

func completion(u *models.User) int {
	filled := 0
	for _, present := range []bool{
		u.Name != "",
		u.Age != 0,
		u.Email != "",
		u.Height != 0,
		u.Branch != "",
		u.College != "",
		u.Gender != "",
		len(u.Interests) > 0,
		u.PersonalityType != "",
		len(u.CampusVibeTags) > 0,
		u.HangoutSpot != "",
		len(u.FavoriteArtist) > 0,
		u.FunPrompt1 != "",
		u.FunPrompt2 != "",
		u.FunPrompt3 != "",
		u.CurrentMood != "",
		u.ConnectionIntent != "",
	} {
		if present {
			filled++
		}
	}
	return int(math.Round(float64(filled) / config.ProfileCompletionFields * 100))
}
