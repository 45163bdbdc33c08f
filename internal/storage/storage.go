package storage

import (
	"context"
	"errors"
	"log"
	"time"

	"dyce/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrDuplicateActiveDate is returned when creating a blind date would violate
// the one-active-date-per-user constraint enforced by the partial unique
// indexes.
var ErrDuplicateActiveDate = errors.New("user already has an active blind date")

type Storage interface {
	// Users
	CreateUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(user *models.User) error
	GetPartnerProfile(id string) (*models.PartnerProfile, error)
	CountCandidates(excludeID, excludeGender string) (int64, error)
	GetCandidateAt(excludeID, excludeGender string, offset int) (*models.User, error)

	// Blind dates
	CreateBlindDate(bd *models.BlindDate) error
	GetActiveBlindDateForUser(userID string) (*models.BlindDate, error)
	GetBlindDateForParticipant(id, userID string, activeOnly bool) (*models.BlindDate, error)
	AgreeToReveal(id string, initiator bool) (*models.BlindDate, error)
	CloseBlindDate(id string) error
	CreateBlindDateMessage(msg *models.BlindDateMessage) error
	ListBlindDateMessages(blindDateID string) ([]models.BlindDateMessage, error)
	CountBlindDateMessages(blindDateID string) (int64, error)
	ListEndedBlindDates(userID string, offset, limit int) ([]models.BlindDate, error)

	// Swipes, matches, blocks
	CreateSwipe(swipe *models.Swipe) error
	FindSwipe(actorID, targetID string) (*models.Swipe, error)
	CreateMatch(match *models.Match) error
	ListMatchesForUser(userID string) ([]models.Match, error)
	ListSwipedIDs(actorID string) ([]string, error)
	CreateBlock(block *models.Block) error
	ListBlockedIDs(actorID string) ([]string, error)
	ListFeedCandidates(userID, gender string, exclude []string, limit int) ([]models.User, error)

	// Profile images
	ListProfileImages(userID string) ([]models.ProfileImage, error)

	// Redis-backed coordination
	AcquirePairingLock(userID string) (bool, error)
	ReleasePairingLock(userID string) error
	PublishEvent(userID string, ev models.Event) error
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewService Constructor
func NewService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// Migrate creates the schema. The partial unique indexes back the
// one-active-blind-date-per-user invariant at the store level, so a create
// that races past the application pre-check still fails.
func (s *Service) Migrate() error {
	if err := s.DB.AutoMigrate(
		&models.User{},
		&models.ProfileImage{},
		&models.BlindDate{},
		&models.BlindDateMessage{},
		&models.Swipe{},
		&models.Match{},
		&models.Block{},
	); err != nil {
		return err
	}

	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_blind_dates_active_initiator ON blind_dates (initiator_id) WHERE active`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_blind_dates_active_receiver ON blind_dates (receiver_id) WHERE active`,
	}
	for _, stmt := range stmts {
		if err := s.DB.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// --- Users ---

func (s *Service) CreateUser(user *models.User) error {
	return s.DB.Create(user).Error
}

func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.Preload("ProfileImages", func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order asc")
	}).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) UpdateUser(user *models.User) error {
	return s.DB.Save(user).Error
}

// GetPartnerProfile loads the trimmed profile view (identity + first photo)
// shown to blind-date partners and matches.
func (s *Service) GetPartnerProfile(id string) (*models.PartnerProfile, error) {
	user, err := s.GetUserByID(id)
	if err != nil || user == nil {
		return nil, err
	}

	profile := &models.PartnerProfile{
		ID:      user.ID,
		Name:    user.Name,
		Age:     user.Age,
		College: user.College,
	}
	if len(user.ProfileImages) > 0 {
		profile.PhotoURL = user.ProfileImages[0].URL
	}
	return profile, nil
}

// CountCandidates counts users eligible for pairing with the requester:
// not the requester, opposite gender.
func (s *Service) CountCandidates(excludeID, excludeGender string) (int64, error) {
	var count int64
	err := s.DB.Model(&models.User{}).
		Where("id <> ?", excludeID).
		Where("gender <> ?", excludeGender).
		Count(&count).Error
	return count, err
}

// GetCandidateAt fetches the eligible user at the given offset under the same
// filter as CountCandidates. A missing row (the population shrank between
// count and fetch) is reported as nil, not as an error.
func (s *Service) GetCandidateAt(excludeID, excludeGender string, offset int) (*models.User, error) {
	var user models.User
	err := s.DB.
		Where("id <> ?", excludeID).
		Where("gender <> ?", excludeGender).
		Order("id asc").
		Offset(offset).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// --- Blind dates ---

func (s *Service) CreateBlindDate(bd *models.BlindDate) error {
	err := s.DB.Create(bd).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateActiveDate
	}
	return err
}

// GetActiveBlindDateForUser finds the active blind date the user participates
// in, as initiator or receiver. Returns nil when there is none.
func (s *Service) GetActiveBlindDateForUser(userID string) (*models.BlindDate, error) {
	var bd models.BlindDate
	err := s.DB.Where("active = ?", true).
		Where("initiator_id = ? OR receiver_id = ?", userID, userID).
		First(&bd).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Printf("ERROR: Failed to find active blind date for user %s: %v", userID, err)
		return nil, err
	}
	return &bd, nil
}

// GetBlindDateForParticipant loads a blind date by ID, scoped to a
// participant. Returns nil when the record does not exist, the user is not a
// participant, or (with activeOnly) the session is inactive.
func (s *Service) GetBlindDateForParticipant(id, userID string, activeOnly bool) (*models.BlindDate, error) {
	q := s.DB.Where("id = ?", id).
		Where("initiator_id = ? OR receiver_id = ?", userID, userID)
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var bd models.BlindDate
	err := q.First(&bd).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bd, nil
}

// AgreeToReveal sets one role's reveal flag inside a transaction. If that
// makes both flags true, the session is deactivated and marked revealed in
// the same transaction, so no observable state has both flags set while the
// session is still active.
func (s *Service) AgreeToReveal(id string, initiator bool) (*models.BlindDate, error) {
	var bd models.BlindDate
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&bd, "id = ?", id).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if initiator {
			updates["initiator_agree_to_reveal"] = true
			bd.InitiatorAgreeToReveal = true
		} else {
			updates["receiver_agree_to_reveal"] = true
			bd.ReceiverAgreeToReveal = true
		}

		if bd.InitiatorAgreeToReveal && bd.ReceiverAgreeToReveal {
			now := time.Now()
			updates["active"] = false
			updates["revealed"] = true
			updates["ended_at"] = now
			bd.Active = false
			bd.Revealed = true
			bd.EndedAt = &now
		}

		return tx.Model(&models.BlindDate{}).Where("id = ?", id).Updates(updates).Error
	})
	if err != nil {
		log.Printf("ERROR: Failed to update reveal flag for blind date %s: %v", id, err)
		return nil, err
	}
	return &bd, nil
}

// CloseBlindDate deactivates a blind date, keeping the first EndedAt if the
// session was already closed.
func (s *Service) CloseBlindDate(id string) error {
	return s.DB.Model(&models.BlindDate{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"active":   false,
			"ended_at": gorm.Expr("COALESCE(ended_at, NOW())"),
		}).Error
}

func (s *Service) CreateBlindDateMessage(msg *models.BlindDateMessage) error {
	if err := s.DB.Create(msg).Error; err != nil {
		log.Printf("ERROR: Failed to save message for blind date %s: %v", msg.BlindDateID, err)
		return err
	}
	return nil
}

func (s *Service) ListBlindDateMessages(blindDateID string) ([]models.BlindDateMessage, error) {
	var messages []models.BlindDateMessage
	err := s.DB.Where("blind_date_id = ?", blindDateID).
		Order("created_at asc").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *Service) CountBlindDateMessages(blindDateID string) (int64, error) {
	var count int64
	err := s.DB.Model(&models.BlindDateMessage{}).
		Where("blind_date_id = ?", blindDateID).
		Count(&count).Error
	return count, err
}

// ListEndedBlindDates returns the user's inactive blind dates, most recently
// created first, with offset pagination.
func (s *Service) ListEndedBlindDates(userID string, offset, limit int) ([]models.BlindDate, error) {
	var dates []models.BlindDate
	err := s.DB.Where("active = ?", false).
		Where("initiator_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&dates).Error
	if err != nil {
		log.Printf("ERROR: Failed to load blind date history for user %s: %v", userID, err)
		return nil, err
	}
	return dates, nil
}

// --- Swipes, matches, blocks ---

func (s *Service) CreateSwipe(swipe *models.Swipe) error {
	return s.DB.Create(swipe).Error
}

func (s *Service) FindSwipe(actorID, targetID string) (*models.Swipe, error) {
	var swipe models.Swipe
	err := s.DB.Where("actor_id = ? AND target_id = ?", actorID, targetID).
		Last(&swipe).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &swipe, nil
}

func (s *Service) CreateMatch(match *models.Match) error {
	return s.DB.Create(match).Error
}

func (s *Service) ListMatchesForUser(userID string) ([]models.Match, error) {
	var matches []models.Match
	err := s.DB.Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("created_at desc").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (s *Service) ListSwipedIDs(actorID string) ([]string, error) {
	var ids []string
	err := s.DB.Model(&models.Swipe{}).
		Where("actor_id = ?", actorID).
		Pluck("target_id", &ids).Error
	return ids, err
}

func (s *Service) CreateBlock(block *models.Block) error {
	return s.DB.Create(block).Error
}

// ListBlockedIDs returns users blocked by the actor plus users who blocked
// the actor; neither side should see the other again.
func (s *Service) ListBlockedIDs(actorID string) ([]string, error) {
	var blocks []models.Block
	err := s.DB.Where("actor_id = ? OR target_id = ?", actorID, actorID).
		Find(&blocks).Error
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b.ActorID == actorID {
			ids = append(ids, b.TargetID)
		} else {
			ids = append(ids, b.ActorID)
		}
	}
	return ids, nil
}

func (s *Service) ListFeedCandidates(userID, gender string, exclude []string, limit int) ([]models.User, error) {
	q := s.DB.Preload("ProfileImages", func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order asc")
	}).
		Where("id <> ?", userID).
		Where("gender <> ?", gender)
	if len(exclude) > 0 {
		q = q.Where("id NOT IN ?", exclude)
	}

	var users []models.User
	err := q.Limit(limit).Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// --- Profile images ---

func (s *Service) ListProfileImages(userID string) ([]models.ProfileImage, error) {
	var images []models.ProfileImage
	err := s.DB.Where("user_id = ?", userID).
		Order("display_order asc").
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}
