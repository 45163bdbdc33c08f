package handler

import (
	"errors"
	"net/http"
	"strconv"

	"dyce/backend/internal/config"
	"dyce/backend/internal/swipe"

	"github.com/gin-gonic/gin"
)

func respondSwipeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, swipe.ErrSelfSwipe), errors.Is(err, swipe.ErrInvalidAction):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, swipe.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
	}
}

// GetFeed returns discovery candidates for the caller.
func (h *Handler) GetFeed(c *gin.Context) {
	limit := config.DefaultFeedLimit
	if v := c.Query("limit"); v != "" {
		if x, err := strconv.Atoi(v); err == nil && x > 0 && x <= 100 {
			limit = x
		}
	}

	users, err := h.Swipes.Feed(MustUserID(c), limit)
	if err != nil {
		respondSwipeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": users})
}

type swipeReq struct {
	TargetID string `json:"targetId" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

// Swipe records a LIKE or PASS; a mutual LIKE returns the new match.
func (h *Handler) Swipe(c *gin.Context) {
	var req swipeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid body", "error": err.Error()})
		return
	}

	result, err := h.Swipes.Swipe(MustUserID(c), req.TargetID, req.Action)
	if err != nil {
		respondSwipeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": result})
}

// ListMatches lists the caller's matches.
func (h *Handler) ListMatches(c *gin.Context) {
	entries, err := h.Swipes.Matches(MustUserID(c))
	if err != nil {
		respondSwipeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": entries})
}

type blockReq struct {
	TargetID string `json:"targetId" binding:"required"`
}

// Block hides a user from the caller's feed and matches.
func (h *Handler) Block(c *gin.Context) {
	var req blockReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid body", "error": err.Error()})
		return
	}

	if err := h.Swipes.Block(MustUserID(c), req.TargetID); err != nil {
		respondSwipeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User blocked"})
}
