// Package swipe implements the discovery feed, swipe recording with mutual
// match detection, and user blocking.
package swipe

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"dyce/backend/internal/models"
	"dyce/backend/internal/storage"

	"github.com/samber/lo"
)

var (
	// ErrSelfSwipe - a user cannot swipe on or block themselves.
	ErrSelfSwipe = errors.New("cannot swipe on yourself")
	// ErrUserNotFound - the swiped user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidAction - action must be LIKE or PASS.
	ErrInvalidAction = errors.New("action must be LIKE or PASS")
)

// Notifier matches the blinddate package's dispatcher contract.
type Notifier interface {
	Notify(userID, title, body string)
}

// Service coordinates swipes, matches and blocks.
type Service struct {
	store    storage.Storage
	notifier Notifier
}

// NewService creates the swipe service.
func NewService(store storage.Storage, notifier Notifier) *Service {
	return &Service{store: store, notifier: notifier}
}

// SwipeResult is the outcome of recording a swipe.
type SwipeResult struct {
	Swipe   *models.Swipe `json:"swipe"`
	Matched bool          `json:"matched"`
	Match   *models.Match `json:"match,omitempty"`
}

// Swipe records an action on a target profile. A LIKE that meets an earlier
// LIKE from the target creates a match and notifies both users.
func (s *Service) Swipe(actorID, targetID, action string) (*SwipeResult, error) {
	if actorID == targetID {
		return nil, ErrSelfSwipe
	}
	if action != models.SwipeActionLike && action != models.SwipeActionPass {
		return nil, ErrInvalidAction
	}

	target, err := s.store.GetUserByID(targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	swipe := &models.Swipe{ActorID: actorID, TargetID: targetID, Action: action}
	if err := s.store.CreateSwipe(swipe); err != nil {
		return nil, err
	}

	result := &SwipeResult{Swipe: swipe}
	if action != models.SwipeActionLike {
		return result, nil
	}

	reverse, err := s.store.FindSwipe(targetID, actorID)
	if err != nil {
		return nil, err
	}
	if reverse == nil || reverse.Action != models.SwipeActionLike {
		return result, nil
	}

	match := &models.Match{User1ID: actorID, User2ID: targetID}
	if err := s.store.CreateMatch(match); err != nil {
		return nil, err
	}
	result.Matched = true
	result.Match = match

	s.notifier.Notify(actorID, "New Match", "You have a new match!")
	s.notifier.Notify(targetID, "New Match", "You have a new match!")
	s.publishMatchEvent(actorID, match)
	s.publishMatchEvent(targetID, match)
	return result, nil
}

func (s *Service) publishMatchEvent(userID string, match *models.Match) {
	payload, err := json.Marshal(match)
	if err != nil {
		log.Printf("ERROR: Failed to encode match event payload: %v", err)
		return
	}
	ev := models.Event{Type: models.EventNewMatch, Data: payload}
	if err := s.store.PublishEvent(userID, ev); err != nil {
		log.Printf("WARNING: Failed to publish match event for user %s: %v", userID, err)
	}
}

// Feed returns candidate profiles for the user: opposite gender, not
// themselves, not already swiped on, not blocked in either direction.
func (s *Service) Feed(userID string, limit int) ([]models.User, error) {
	user, err := s.store.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	swiped, err := s.store.ListSwipedIDs(userID)
	if err != nil {
		return nil, err
	}
	blocked, err := s.store.ListBlockedIDs(userID)
	if err != nil {
		return nil, err
	}

	exclude := lo.Uniq(append(swiped, blocked...))
	return s.store.ListFeedCandidates(userID, user.Gender, exclude, limit)
}

// MatchEntry is one row in the matches listing.
type MatchEntry struct {
	MatchID   string                 `json:"matchId"`
	Partner   *models.PartnerProfile `json:"partner"`
	CreatedAt time.Time              `json:"createdAt"`
}

// Matches lists the user's matches with partner summaries, newest first.
func (s *Service) Matches(userID string) ([]MatchEntry, error) {
	matches, err := s.store.ListMatchesForUser(userID)
	if err != nil {
		return nil, err
	}

	entries := make([]MatchEntry, 0, len(matches))
	for _, m := range matches {
		partner, err := s.store.GetPartnerProfile(m.PartnerOf(userID))
		if err != nil {
			return nil, err
		}
		entries = append(entries, MatchEntry{
			MatchID:   m.ID,
			Partner:   partner,
			CreatedAt: m.CreatedAt,
		})
	}
	return entries, nil
}

// Block hides the target from the actor's feed and vice versa.
func (s *Service) Block(actorID, targetID string) error {
	if actorID == targetID {
		return ErrSelfSwipe
	}

	target, err := s.store.GetUserByID(targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}

	return s.store.CreateBlock(&models.Block{ActorID: actorID, TargetID: targetID})
}
