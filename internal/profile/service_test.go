package profile_test

import (
	"testing"

	"dyce/backend/internal/models"
	"dyce/backend/internal/profile"
	"dyce/backend/internal/storage"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestGet_UnknownUser(t *testing.T) {
	store := new(storage.MockStorage)
	svc := profile.NewService(store)

	store.On("GetUserByID", "user_ghost").Return(nil, nil)

	_, err := svc.Get("user_ghost")
	assert.ErrorIs(t, err, profile.ErrUserNotFound)
}

func TestUpdate_PatchSemantics(t *testing.T) {
	store := new(storage.MockStorage)
	svc := profile.NewService(store)

	store.On("GetUserByID", "user_A").Return(&models.User{
		ID:     "user_A",
		Name:   "Asha",
		Age:    21,
		Branch: "CSE",
	}, nil)
	store.On("UpdateUser", mock.AnythingOfType("*models.User")).Return(nil)

	height := 168.5
	interests := []string{"music", "trekking"}
	updated, err := svc.Update("user_A", profile.UpdateRequest{
		Name:      strPtr("  Asha R  "),
		Height:    &height,
		Interests: &interests,
	})

	require.NoError(t, err)
	assert.Equal(t, "Asha R", updated.Name, "name is trimmed")
	assert.Equal(t, 168.5, updated.Height)
	assert.Equal(t, pq.StringArray(interests), updated.Interests)
	assert.Equal(t, 21, updated.Age, "omitted fields stay untouched")
	assert.Equal(t, "CSE", updated.Branch)
	store.AssertCalled(t, "UpdateUser", mock.AnythingOfType("*models.User"))
}

func TestUpdate_UnknownUser(t *testing.T) {
	store := new(storage.MockStorage)
	svc := profile.NewService(store)

	store.On("GetUserByID", "user_ghost").Return(nil, nil)

	_, err := svc.Update("user_ghost", profile.UpdateRequest{Name: strPtr("x")})
	assert.ErrorIs(t, err, profile.ErrUserNotFound)
	store.AssertNotCalled(t, "UpdateUser", mock.Anything)
}

func TestCompletionPercentage_EmptyProfile(t *testing.T) {
	store := new(storage.MockStorage)
	svc := profile.NewService(store)

	store.On("GetUserByID", "user_A").Return(&models.User{ID: "user_A"}, nil)

	pct, err := svc.CompletionPercentage("user_A")

	require.NoError(t, err)
	assert.Equal(t, 0, pct)
}

func TestCompletionPercentage_FullProfile(t *testing.T) {
	store := new(storage.MockStorage)
	svc := profile.NewService(store)

	store.On("GetUserByID", "user_A").Return(&models.User{
		ID:               "user_A",
		Name:             "Asha",
		Age:              21,
		Email:            "asha@campus.edu",
		Height:           168,
		Branch:           "CSE",
		College:          "NIT Trichy",
		Gender:           "female",
		Interests:        pq.StringArray{"music"},
		PersonalityType:  "INFP",
		CampusVibeTags:   pq.StringArray{"library"},
		HangoutSpot:      "canteen",
		FavoriteArtist:   pq.StringArray{"Prateek Kuhad"},
		FunPrompt1:       "a",
		FunPrompt2:       "b",
		FunPrompt3:       "c",
		CurrentMood:      "chill",
		ConnectionIntent: "serious",
	}, nil)

	pct, err := svc.CompletionPercentage("user_A")

	require.NoError(t, err)
	assert.Equal(t, 100, pct)
}

func TestCompletionPercentage_PartialProfileRounds(t *testing.T) {
	store := new(storage.MockStorage)
	svc := profile.NewService(store)

	// 4 of 17 fields filled: 23.53% rounds to 24.
	store.On("GetUserByID", "user_A").Return(&models.User{
		ID:     "user_A",
		Name:   "Asha",
		Age:    21,
		Email:  "asha@campus.edu",
		Gender: "female",
	}, nil)

	pct, err := svc.CompletionPercentage("user_A")

	require.NoError(t, err)
	assert.Equal(t, 24, pct)
}
