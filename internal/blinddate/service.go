// Package blinddate implements the blind-date session lifecycle: pairing,
// anonymous messaging, mutual-reveal negotiation, manual end and lazy expiry.
package blinddate

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"dyce/backend/internal/matching"
	"dyce/backend/internal/models"
	"dyce/backend/internal/storage"
)

// Service error taxonomy, mapped to HTTP codes at the handler boundary.
var (
	// ErrAlreadyActive - the requester already has an active blind date.
	ErrAlreadyActive = errors.New("already in an active blind date")
	// ErrNoCandidate - no eligible partner is currently available. Expected,
	// retryable business outcome, not a failure.
	ErrNoCandidate = errors.New("no available users for blind date")
	// ErrNotFound - no such session, the session is inactive, or the caller
	// is not a participant.
	ErrNotFound = errors.New("blind date not found or inactive")
	// ErrExpired - the session is past its deadline; reported once the first
	// post-expiry send deactivates it.
	ErrExpired = errors.New("blind date has expired")
	// ErrInvalidMessageType - only TEXT and EMOJI are allowed.
	ErrInvalidMessageType = errors.New("only text and emoji messages are allowed in blind dates")
)

// Notification copy sent through the dispatcher.
const (
	pairedTitle = "Blind Date Paired"
	pairedBody  = "You've been paired for a blind date!"
	revealTitle = "Blind Date Reveal"
	revealBody  = "Both revealed the identities! You are now a match."
	endedTitle  = "Blind Date Ended"
	endedBody   = "Your blind date has ended. Thank you for participating!"
)

// Notifier delivers asynchronous user notifications. Fire-and-forget:
// implementations log failures and never return them.
type Notifier interface {
	Notify(userID, title, body string)
}

// Service runs the blind-date state machine on top of the storage layer.
type Service struct {
	store    storage.Storage
	selector *matching.Selector
	notifier Notifier
	ttl      time.Duration
}

// NewService creates the blind-date service. ttl fixes each session's
// expiry deadline at creation time.
func NewService(store storage.Storage, selector *matching.Selector, notifier Notifier, ttl time.Duration) *Service {
	return &Service{
		store:    store,
		selector: selector,
		notifier: notifier,
		ttl:      ttl,
	}
}

// StartResult is returned from Start.
type StartResult struct {
	BlindDateID string `json:"blindDateId"`
	PartnerID   string `json:"partnerId"`
}

// Start pairs the requester with a random eligible candidate and creates an
// active session. The pairing locks of both participants are held across the
// check and the create so two concurrent starts cannot both pass the
// one-active-date check; the partial unique indexes are the last line of
// defense.
func (s *Service) Start(userID string) (*StartResult, error) {
	locked, err := s.store.AcquirePairingLock(userID)
	if err != nil {
		return nil, err
	}
	if !locked {
		// Another start for the same user is in flight.
		return nil, ErrAlreadyActive
	}
	defer s.releaseLock(userID)

	existing, err := s.store.GetActiveBlindDateForUser(userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyActive
	}

	user, err := s.store.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	candidate, err := s.selector.SelectCandidate(userID, user.Gender)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, ErrNoCandidate
	}

	locked, err = s.store.AcquirePairingLock(candidate.ID)
	if err != nil {
		return nil, err
	}
	if !locked {
		// The candidate is being paired by someone else right now.
		return nil, ErrNoCandidate
	}
	defer s.releaseLock(candidate.ID)

	partnerActive, err := s.store.GetActiveBlindDateForUser(candidate.ID)
	if err != nil {
		return nil, err
	}
	if partnerActive != nil {
		return nil, ErrNoCandidate
	}

	bd := &models.BlindDate{
		InitiatorID: userID,
		ReceiverID:  candidate.ID,
		Active:      true,
		ExpiresAt:   time.Now().Add(s.ttl),
	}
	if err := s.store.CreateBlindDate(bd); err != nil {
		if errors.Is(err, storage.ErrDuplicateActiveDate) {
			return nil, ErrAlreadyActive
		}
		return nil, err
	}

	// Best-effort side effects; session creation never rolls back on their
	// failure.
	s.notifier.Notify(candidate.ID, pairedTitle, pairedBody)
	s.publishEvent(candidate.ID, models.EventBlindDatePaired, bd.ID, nil)

	return &StartResult{BlindDateID: bd.ID, PartnerID: candidate.ID}, nil
}

// CurrentResult is returned from Current. Partner is included only when the
// caller's own reveal flag is set: opting in grants sight of who you are
// revealing to, independent of the partner's flag.
type CurrentResult struct {
	BlindDateID  string                 `json:"blindDateId"`
	PartnerID    string                 `json:"partnerId"`
	UserRevealed bool                   `json:"userRevealed"`
	Partner      *models.PartnerProfile `json:"partner,omitempty"`
}

// Current returns the caller's active session summary.
func (s *Service) Current(userID string) (*CurrentResult, error) {
	bd, err := s.store.GetActiveBlindDateForUser(userID)
	if err != nil {
		return nil, err
	}
	if bd == nil {
		return nil, ErrNotFound
	}

	result := &CurrentResult{
		BlindDateID:  bd.ID,
		PartnerID:    bd.PartnerOf(userID),
		UserRevealed: bd.RevealFlagFor(userID),
	}
	if result.UserRevealed {
		partner, err := s.store.GetPartnerProfile(result.PartnerID)
		if err != nil {
			return nil, err
		}
		result.Partner = partner
	}
	return result, nil
}

// SendMessage appends a message to an active session. Expiry is evaluated
// lazily here: the first send after the deadline deactivates the session and
// reports ErrExpired, so no background sweeper is needed.
func (s *Service) SendMessage(blindDateID, senderID, content, msgType string) (*models.BlindDateMessage, error) {
	bd, err := s.store.GetBlindDateForParticipant(blindDateID, senderID, true)
	if err != nil {
		return nil, err
	}
	if bd == nil {
		return nil, ErrNotFound
	}

	if time.Now().After(bd.ExpiresAt) {
		if err := s.store.CloseBlindDate(bd.ID); err != nil {
			return nil, err
		}
		return nil, ErrExpired
	}

	if !models.ValidMessageType(msgType) {
		return nil, ErrInvalidMessageType
	}

	msg := &models.BlindDateMessage{
		BlindDateID: bd.ID,
		SenderID:    senderID,
		Content:     content,
		Type:        msgType,
		Anonymous:   !bd.Revealed,
	}
	if err := s.store.CreateBlindDateMessage(msg); err != nil {
		return nil, err
	}

	s.publishEvent(bd.PartnerOf(senderID), models.EventBlindDateMessage, bd.ID, msg)
	return msg, nil
}

// Messages returns the session's messages in send order. The caller must be
// a participant; the session may already be inactive.
func (s *Service) Messages(blindDateID, userID string) ([]models.BlindDateMessage, error) {
	bd, err := s.store.GetBlindDateForParticipant(blindDateID, userID, false)
	if err != nil {
		return nil, err
	}
	if bd == nil {
		return nil, ErrNotFound
	}
	return s.store.ListBlindDateMessages(bd.ID)
}

// RevealResult is returned from AgreeToReveal. When the reveal is not yet
// mutual the partner profile is always included, regardless of the partner's
// own flag; this intentionally differs from Current's gating.
type RevealResult struct {
	UserRevealed bool                   `json:"userRevealed"`
	BothRevealed bool                   `json:"bothRevealed"`
	Partner      *models.PartnerProfile `json:"partner,omitempty"`
}

// AgreeToReveal records the caller's consent to reveal. When that makes the
// reveal mutual the session deactivates atomically with the flag update and
// both participants are notified.
func (s *Service) AgreeToReveal(blindDateID, userID string) (*RevealResult, error) {
	bd, err := s.store.GetBlindDateForParticipant(blindDateID, userID, true)
	if err != nil {
		return nil, err
	}
	if bd == nil {
		return nil, ErrNotFound
	}

	updated, err := s.store.AgreeToReveal(bd.ID, bd.InitiatorID == userID)
	if err != nil {
		return nil, err
	}

	if updated.Revealed {
		s.notifier.Notify(updated.InitiatorID, revealTitle, revealBody)
		s.notifier.Notify(updated.ReceiverID, revealTitle, revealBody)
		s.publishEvent(updated.InitiatorID, models.EventBlindDateReveal, updated.ID, nil)
		s.publishEvent(updated.ReceiverID, models.EventBlindDateReveal, updated.ID, nil)
		return &RevealResult{UserRevealed: true, BothRevealed: true}, nil
	}

	partner, err := s.store.GetPartnerProfile(bd.PartnerOf(userID))
	if err != nil {
		return nil, err
	}
	return &RevealResult{UserRevealed: true, BothRevealed: false, Partner: partner}, nil
}

// End deactivates a session. Idempotent for participants: ending an already
// inactive session still succeeds. Non-participants get ErrNotFound.
func (s *Service) End(blindDateID, userID string) error {
	bd, err := s.store.GetBlindDateForParticipant(blindDateID, userID, false)
	if err != nil {
		return err
	}
	if bd == nil {
		return ErrNotFound
	}

	if err := s.store.CloseBlindDate(bd.ID); err != nil {
		return err
	}

	partnerID := bd.PartnerOf(userID)
	s.notifier.Notify(partnerID, endedTitle, endedBody)
	s.publishEvent(partnerID, models.EventBlindDateEnded, bd.ID, nil)
	return nil
}

// HistoryEntry summarizes one ended blind date.
type HistoryEntry struct {
	ID              string                 `json:"id"`
	Partner         *models.PartnerProfile `json:"partner"`
	DurationSeconds int64                  `json:"durationSeconds"`
	Revealed        bool                   `json:"revealed"`
	MessageCount    int64                  `json:"messageCount"`
	CreatedAt       time.Time              `json:"createdAt"`
	EndedAt         *time.Time             `json:"endedAt,omitempty"`
}

// HistoryResult carries one page of ended sessions. Total is the size of the
// current page, not a true count across all pages; kept for compatibility
// with the original API.
type HistoryResult struct {
	Entries []HistoryEntry `json:"data"`
	Page    int            `json:"page"`
	Limit   int            `json:"limit"`
	Total   int            `json:"total"`
}

// History returns the caller's inactive sessions, most recently created
// first, with offset pagination.
func (s *Service) History(userID string, page, limit int) (*HistoryResult, error) {
	offset := (page - 1) * limit
	dates, err := s.store.ListEndedBlindDates(userID, offset, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(dates))
	for _, bd := range dates {
		partner, err := s.store.GetPartnerProfile(bd.PartnerOf(userID))
		if err != nil {
			return nil, err
		}
		count, err := s.store.CountBlindDateMessages(bd.ID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, HistoryEntry{
			ID:              bd.ID,
			Partner:         partner,
			DurationSeconds: int64(bd.Duration().Seconds()),
			Revealed:        bd.Revealed,
			MessageCount:    count,
			CreatedAt:       bd.CreatedAt,
			EndedAt:         bd.EndedAt,
		})
	}

	return &HistoryResult{
		Entries: entries,
		Page:    page,
		Limit:   limit,
		Total:   len(entries),
	}, nil
}

func (s *Service) releaseLock(userID string) {
	if err := s.store.ReleasePairingLock(userID); err != nil {
		log.Printf("WARNING: Failed to release pairing lock for user %s: %v", userID, err)
	}
}

func (s *Service) publishEvent(userID, eventType, blindDateID string, data interface{}) {
	var raw json.RawMessage
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			log.Printf("ERROR: Failed to encode %s event payload: %v", eventType, err)
			return
		}
		raw = encoded
	}

	ev := models.Event{Type: eventType, BlindDateID: blindDateID, Data: raw}
	if err := s.store.PublishEvent(userID, ev); err != nil {
		log.Printf("WARNING: Failed to publish %s event for user %s: %v", eventType, userID, err)
	}
}
