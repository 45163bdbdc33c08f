package models_test

import (
	"testing"
	"time"

	"dyce/backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBlindDateBeforeCreate_GeneratesUUID(t *testing.T) {
	bd := &models.BlindDate{InitiatorID: "user_A", ReceiverID: "user_B"}

	err := bd.BeforeCreate(nil)

	assert.NoError(t, err)
	_, parseErr := uuid.Parse(bd.ID)
	assert.NoError(t, parseErr, "generated ID must be a valid UUID")
}

func TestBlindDateBeforeCreate_PreservesExistingID(t *testing.T) {
	existing := uuid.New().String()
	bd := &models.BlindDate{ID: existing}

	err := bd.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.Equal(t, existing, bd.ID)
}

func TestBlindDateParticipantHelpers(t *testing.T) {
	bd := &models.BlindDate{InitiatorID: "user_A", ReceiverID: "user_B"}

	assert.True(t, bd.IsParticipant("user_A"))
	assert.True(t, bd.IsParticipant("user_B"))
	assert.False(t, bd.IsParticipant("user_C"))

	assert.Equal(t, "user_B", bd.PartnerOf("user_A"))
	assert.Equal(t, "user_A", bd.PartnerOf("user_B"))
}

func TestBlindDateRevealFlagFor(t *testing.T) {
	bd := &models.BlindDate{
		InitiatorID:            "user_A",
		ReceiverID:             "user_B",
		InitiatorAgreeToReveal: true,
	}

	assert.True(t, bd.RevealFlagFor("user_A"))
	assert.False(t, bd.RevealFlagFor("user_B"))
}

func TestBlindDateDuration(t *testing.T) {
	created := time.Now().Add(-30 * time.Minute)
	bd := &models.BlindDate{CreatedAt: created}

	assert.Zero(t, bd.Duration(), "duration is zero while the session has not ended")

	ended := created.Add(20 * time.Minute)
	bd.EndedAt = &ended
	assert.Equal(t, 20*time.Minute, bd.Duration())
}

func TestValidMessageType(t *testing.T) {
	assert.True(t, models.ValidMessageType(models.MessageTypeText))
	assert.True(t, models.ValidMessageType(models.MessageTypeEmoji))
	assert.False(t, models.ValidMessageType("GIF"))
	assert.False(t, models.ValidMessageType("text"), "types are case sensitive")
	assert.False(t, models.ValidMessageType(""))
}
