package storage

import (
	"dyce/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock of the Storage interface, shared by the
// service test suites.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockStorage) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockStorage) UpdateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetPartnerProfile(id string) (*models.PartnerProfile, error) {
	args := m.Called(id)
	profile, _ := args.Get(0).(*models.PartnerProfile)
	return profile, args.Error(1)
}

func (m *MockStorage) CountCandidates(excludeID, excludeGender string) (int64, error) {
	args := m.Called(excludeID, excludeGender)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) GetCandidateAt(excludeID, excludeGender string, offset int) (*models.User, error) {
	args := m.Called(excludeID, excludeGender, offset)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockStorage) CreateBlindDate(bd *models.BlindDate) error {
	args := m.Called(bd)
	return args.Error(0)
}

func (m *MockStorage) GetActiveBlindDateForUser(userID string) (*models.BlindDate, error) {
	args := m.Called(userID)
	bd, _ := args.Get(0).(*models.BlindDate)
	return bd, args.Error(1)
}

func (m *MockStorage) GetBlindDateForParticipant(id, userID string, activeOnly bool) (*models.BlindDate, error) {
	args := m.Called(id, userID, activeOnly)
	bd, _ := args.Get(0).(*models.BlindDate)
	return bd, args.Error(1)
}

func (m *MockStorage) AgreeToReveal(id string, initiator bool) (*models.BlindDate, error) {
	args := m.Called(id, initiator)
	bd, _ := args.Get(0).(*models.BlindDate)
	return bd, args.Error(1)
}

func (m *MockStorage) CloseBlindDate(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStorage) CreateBlindDateMessage(msg *models.BlindDateMessage) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockStorage) ListBlindDateMessages(blindDateID string) ([]models.BlindDateMessage, error) {
	args := m.Called(blindDateID)
	messages, _ := args.Get(0).([]models.BlindDateMessage)
	return messages, args.Error(1)
}

func (m *MockStorage) CountBlindDateMessages(blindDateID string) (int64, error) {
	args := m.Called(blindDateID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) ListEndedBlindDates(userID string, offset, limit int) ([]models.BlindDate, error) {
	args := m.Called(userID, offset, limit)
	dates, _ := args.Get(0).([]models.BlindDate)
	return dates, args.Error(1)
}

func (m *MockStorage) CreateSwipe(swipe *models.Swipe) error {
	args := m.Called(swipe)
	return args.Error(0)
}

func (m *MockStorage) FindSwipe(actorID, targetID string) (*models.Swipe, error) {
	args := m.Called(actorID, targetID)
	swipe, _ := args.Get(0).(*models.Swipe)
	return swipe, args.Error(1)
}

func (m *MockStorage) CreateMatch(match *models.Match) error {
	args := m.Called(match)
	return args.Error(0)
}

func (m *MockStorage) ListMatchesForUser(userID string) ([]models.Match, error) {
	args := m.Called(userID)
	matches, _ := args.Get(0).([]models.Match)
	return matches, args.Error(1)
}

func (m *MockStorage) ListSwipedIDs(actorID string) ([]string, error) {
	args := m.Called(actorID)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *MockStorage) CreateBlock(block *models.Block) error {
	args := m.Called(block)
	return args.Error(0)
}

func (m *MockStorage) ListBlockedIDs(actorID string) ([]string, error) {
	args := m.Called(actorID)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *MockStorage) ListFeedCandidates(userID, gender string, exclude []string, limit int) ([]models.User, error) {
	args := m.Called(userID, gender, exclude, limit)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

func (m *MockStorage) ListProfileImages(userID string) ([]models.ProfileImage, error) {
	args := m.Called(userID)
	images, _ := args.Get(0).([]models.ProfileImage)
	return images, args.Error(1)
}

func (m *MockStorage) AcquirePairingLock(userID string) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) ReleasePairingLock(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockStorage) PublishEvent(userID string, ev models.Event) error {
	args := m.Called(userID, ev)
	return args.Error(0)
}
