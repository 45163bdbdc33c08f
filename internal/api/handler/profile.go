package handler

import (
	"errors"
	"net/http"

	"dyce/backend/internal/profile"

	"github.com/gin-gonic/gin"
)

// GetProfile returns the caller's full profile.
func (h *Handler) GetProfile(c *gin.Context) {
	user, err := h.Profiles.Get(MustUserID(c))
	if err != nil {
		if errors.Is(err, profile.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "profile": user})
}

// UpdateProfile applies a partial profile update.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req profile.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid body", "error": err.Error()})
		return
	}

	user, err := h.Profiles.Update(MustUserID(c), req)
	if err != nil {
		if errors.Is(err, profile.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"profile": user,
	})
}

// GetProfileCompletion reports how much of the profile is filled in.
func (h *Handler) GetProfileCompletion(c *gin.Context) {
	percentage, err := h.Profiles.CompletionPercentage(MustUserID(c))
	if err != nil {
		if errors.Is(err, profile.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error", "percentage": 0})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Profile completion percentage calculated",
		"percentage": percentage,
	})
}
