// Package matching picks a candidate for a new blind date.
package matching

import (
	"math/rand/v2"

	"dyce/backend/internal/models"
	"dyce/backend/internal/storage"
)

// Selector draws one eligible counterpart for a requester: not the requester,
// opposite gender. The draw counts the eligible population, picks a uniform
// random offset and fetches the row at that offset under the same filter.
type Selector struct {
	Storage storage.Storage

	// randIntN is rand.IntN, replaceable in tests.
	randIntN func(n int) int
}

// NewSelector creates a Selector.
func NewSelector(s storage.Storage) *Selector {
	return &Selector{
		Storage:  s,
		randIntN: rand.IntN,
	}
}

// SelectCandidate returns an eligible user or nil when no one is available.
// A nil result is an expected business outcome, not an error: it covers both
// an empty eligible population and the row at the drawn offset vanishing
// between count and fetch (each query runs on its own snapshot, so a
// concurrent shrink can leave the offset out of range).
func (s *Selector) SelectCandidate(requesterID, requesterGender string) (*models.User, error) {
	total, err := s.Storage.CountCandidates(requesterID, requesterGender)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, nil
	}

	offset := s.randIntN(int(total))
	return s.Storage.GetCandidateAt(requesterID, requesterGender, offset)
}
