package matching

import (
	"errors"
	"testing"

	"dyce/backend/internal/models"
	"dyce/backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSelectCandidate_EmptyPopulation(t *testing.T) {
	store := new(storage.MockStorage)
	selector := NewSelector(store)

	store.On("CountCandidates", "user_A", "male").Return(int64(0), nil)

	candidate, err := selector.SelectCandidate("user_A", "male")

	require.NoError(t, err)
	assert.Nil(t, candidate, "empty population is no-candidate, not an error")
	store.AssertNotCalled(t, "GetCandidateAt", mock.Anything, mock.Anything, mock.Anything)
}

func TestSelectCandidate_DrawsWithinPopulation(t *testing.T) {
	store := new(storage.MockStorage)
	selector := NewSelector(store)
	selector.randIntN = func(n int) int {
		assert.Equal(t, 7, n, "offset is drawn in [0, count)")
		return 3
	}

	expected := &models.User{ID: "user_X", Gender: "female"}
	store.On("CountCandidates", "user_A", "male").Return(int64(7), nil)
	store.On("GetCandidateAt", "user_A", "male", 3).Return(expected, nil)

	candidate, err := selector.SelectCandidate("user_A", "male")

	require.NoError(t, err)
	assert.Equal(t, "user_X", candidate.ID)
}

func TestSelectCandidate_RowVanishedBetweenCountAndFetch(t *testing.T) {
	// The population shrank after the count; the fetch misses and the result
	// is no-candidate rather than an error.
	store := new(storage.MockStorage)
	selector := NewSelector(store)
	selector.randIntN = func(n int) int { return n - 1 }

	store.On("CountCandidates", "user_A", "male").Return(int64(4), nil)
	store.On("GetCandidateAt", "user_A", "male", 3).Return(nil, nil)

	candidate, err := selector.SelectCandidate("user_A", "male")

	require.NoError(t, err)
	assert.Nil(t, candidate)
}

func TestSelectCandidate_StoreError(t *testing.T) {
	store := new(storage.MockStorage)
	selector := NewSelector(store)

	store.On("CountCandidates", "user_A", "male").Return(int64(0), errors.New("connection reset"))

	_, err := selector.SelectCandidate("user_A", "male")
	assert.Error(t, err)
}
