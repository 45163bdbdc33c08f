package swipe_test

import (
	"sync"
	"testing"

	"dyce/backend/internal/models"
	"dyce/backend/internal/storage"
	"dyce/backend/internal/swipe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubNotifier struct {
	mu    sync.Mutex
	users []string
}

func (n *stubNotifier) Notify(userID, title, body string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.users = append(n.users, userID)
}

func TestSwipe_SelfSwipeRejected(t *testing.T) {
	store := new(storage.MockStorage)
	svc := swipe.NewService(store, &stubNotifier{})

	_, err := svc.Swipe("user_A", "user_A", models.SwipeActionLike)

	assert.ErrorIs(t, err, swipe.ErrSelfSwipe)
	store.AssertNotCalled(t, "CreateSwipe", mock.Anything)
}

func TestSwipe_UnknownTarget(t *testing.T) {
	store := new(storage.MockStorage)
	svc := swipe.NewService(store, &stubNotifier{})

	store.On("GetUserByID", "user_ghost").Return(nil, nil)

	_, err := svc.Swipe("user_A", "user_ghost", models.SwipeActionLike)
	assert.ErrorIs(t, err, swipe.ErrUserNotFound)
}

func TestSwipe_PassNeverMatches(t *testing.T) {
	store := new(storage.MockStorage)
	svc := swipe.NewService(store, &stubNotifier{})

	store.On("GetUserByID", "user_B").Return(&models.User{ID: "user_B"}, nil)
	store.On("CreateSwipe", mock.AnythingOfType("*models.Swipe")).Return(nil)

	result, err := svc.Swipe("user_A", "user_B", models.SwipeActionPass)

	require.NoError(t, err)
	assert.False(t, result.Matched)
	store.AssertNotCalled(t, "FindSwipe", mock.Anything, mock.Anything)
}

func TestSwipe_LikeWithoutReverseLike(t *testing.T) {
	store := new(storage.MockStorage)
	svc := swipe.NewService(store, &stubNotifier{})

	store.On("GetUserByID", "user_B").Return(&models.User{ID: "user_B"}, nil)
	store.On("CreateSwipe", mock.AnythingOfType("*models.Swipe")).Return(nil)
	store.On("FindSwipe", "user_B", "user_A").Return(nil, nil)

	result, err := svc.Swipe("user_A", "user_B", models.SwipeActionLike)

	require.NoError(t, err)
	assert.False(t, result.Matched)
	store.AssertNotCalled(t, "CreateMatch", mock.Anything)
}

func TestSwipe_MutualLikeCreatesMatch(t *testing.T) {
	store := new(storage.MockStorage)
	notifier := &stubNotifier{}
	svc := swipe.NewService(store, notifier)

	store.On("GetUserByID", "user_B").Return(&models.User{ID: "user_B"}, nil)
	store.On("CreateSwipe", mock.AnythingOfType("*models.Swipe")).Return(nil)
	store.On("FindSwipe", "user_B", "user_A").Return(&models.Swipe{
		ActorID: "user_B", TargetID: "user_A", Action: models.SwipeActionLike,
	}, nil)
	store.On("CreateMatch", mock.AnythingOfType("*models.Match")).Return(nil)
	store.On("PublishEvent", mock.AnythingOfType("string"), mock.AnythingOfType("models.Event")).Return(nil)

	result, err := svc.Swipe("user_A", "user_B", models.SwipeActionLike)

	require.NoError(t, err)
	assert.True(t, result.Matched)
	require.NotNil(t, result.Match)
	assert.ElementsMatch(t, []string{"user_A", "user_B"}, []string{result.Match.User1ID, result.Match.User2ID})
	assert.ElementsMatch(t, []string{"user_A", "user_B"}, notifier.users, "both sides are notified")
}

func TestSwipe_ReversePassDoesNotMatch(t *testing.T) {
	store := new(storage.MockStorage)
	svc := swipe.NewService(store, &stubNotifier{})

	store.On("GetUserByID", "user_B").Return(&models.User{ID: "user_B"}, nil)
	store.On("CreateSwipe", mock.AnythingOfType("*models.Swipe")).Return(nil)
	store.On("FindSwipe", "user_B", "user_A").Return(&models.Swipe{
		ActorID: "user_B", TargetID: "user_A", Action: models.SwipeActionPass,
	}, nil)

	result, err := svc.Swipe("user_A", "user_B", models.SwipeActionLike)

	require.NoError(t, err)
	assert.False(t, result.Matched)
	store.AssertNotCalled(t, "CreateMatch", mock.Anything)
}

func TestFeed_ExcludesSwipedAndBlocked(t *testing.T) {
	store := new(storage.MockStorage)
	svc := swipe.NewService(store, &stubNotifier{})

	store.On("GetUserByID", "user_A").Return(&models.User{ID: "user_A", Gender: "male"}, nil)
	store.On("ListSwipedIDs", "user_A").Return([]string{"user_B", "user_C"}, nil)
	store.On("ListBlockedIDs", "user_A").Return([]string{"user_C", "user_D"}, nil)
	store.On("ListFeedCandidates", "user_A", "male", mock.AnythingOfType("[]string"), 20).
		Return([]models.User{{ID: "user_E"}}, nil)

	users, err := svc.Feed("user_A", 20)

	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "user_E", users[0].ID)

	var exclude []string
	for _, call := range store.Calls {
		if call.Method == "ListFeedCandidates" {
			exclude = call.Arguments.Get(2).([]string)
		}
	}
	assert.ElementsMatch(t, []string{"user_B", "user_C", "user_D"}, exclude, "exclusion set is deduplicated")
}

func TestMatches_PartnerSummaries(t *testing.T) {
	store := new(storage.MockStorage)
	svc := swipe.NewService(store, &stubNotifier{})

	store.On("ListMatchesForUser", "user_A").Return([]models.Match{
		{ID: "m1", User1ID: "user_A", User2ID: "user_B"},
		{ID: "m2", User1ID: "user_C", User2ID: "user_A"},
	}, nil)
	store.On("GetPartnerProfile", "user_B").Return(&models.PartnerProfile{ID: "user_B"}, nil)
	store.On("GetPartnerProfile", "user_C").Return(&models.PartnerProfile{ID: "user_C"}, nil)

	entries, err := svc.Matches("user_A")

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "user_B", entries[0].Partner.ID)
	assert.Equal(t, "user_C", entries[1].Partner.ID)
}

func TestBlock_SelfRejected(t *testing.T) {
	store := new(storage.MockStorage)
	svc := swipe.NewService(store, &stubNotifier{})

	err := svc.Block("user_A", "user_A")

	assert.ErrorIs(t, err, swipe.ErrSelfSwipe)
	store.AssertNotCalled(t, "CreateBlock", mock.Anything)
}
