package handler

import (
	"errors"
	"net/http"
	"strconv"

	"dyce/backend/internal/blinddate"
	"dyce/backend/internal/config"

	"github.com/gin-gonic/gin"
)

// respondBlindDateError maps the service error taxonomy onto HTTP codes with
// the API's user-facing copy. Store failures surface as an opaque 500.
func respondBlindDateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, blinddate.ErrAlreadyActive):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "You are already in an active blind date"})
	case errors.Is(err, blinddate.ErrNoCandidate):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No available users for blind date at the moment"})
	case errors.Is(err, blinddate.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Blind date not found or inactive"})
	case errors.Is(err, blinddate.ErrExpired):
		c.JSON(http.StatusGone, gin.H{"success": false, "message": "Blind date has expired"})
	case errors.Is(err, blinddate.ErrInvalidMessageType):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Only text and emoji messages are allowed in blind dates"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
	}
}

// StartBlindDate pairs the caller with a random candidate.
func (h *Handler) StartBlindDate(c *gin.Context) {
	result, err := h.BlindDates.Start(MustUserID(c))
	if err != nil {
		respondBlindDateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Blind date started successfully",
		"data":    result,
	})
}

// GetCurrentBlindDate returns the caller's active session.
func (h *Handler) GetCurrentBlindDate(c *gin.Context) {
	result, err := h.BlindDates.Current(MustUserID(c))
	if err != nil {
		if errors.Is(err, blinddate.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No active blind date found"})
			return
		}
		respondBlindDateError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

type sendBlindDateMessageReq struct {
	BlindDateID string `json:"blindDateId" binding:"required"`
	Content     string `json:"content" binding:"required"`
	Type        string `json:"type"`
}

// SendBlindDateMessage appends a message to the caller's session.
func (h *Handler) SendBlindDateMessage(c *gin.Context) {
	var req sendBlindDateMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid body", "error": err.Error()})
		return
	}
	if req.Type == "" {
		req.Type = "TEXT"
	}

	msg, err := h.BlindDates.SendMessage(req.BlindDateID, MustUserID(c), req.Content, req.Type)
	if err != nil {
		respondBlindDateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Message sent successfully",
		"data":    msg,
	})
}

// ListBlindDateMessages returns a session's messages in send order.
func (h *Handler) ListBlindDateMessages(c *gin.Context) {
	messages, err := h.BlindDates.Messages(c.Param("id"), MustUserID(c))
	if err != nil {
		respondBlindDateError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": messages})
}

// AgreeToReveal records the caller's reveal consent.
func (h *Handler) AgreeToReveal(c *gin.Context) {
	result, err := h.BlindDates.AgreeToReveal(c.Param("id"), MustUserID(c))
	if err != nil {
		respondBlindDateError(c, err)
		return
	}

	message := "Waiting for your partner to agree to reveal identities"
	if result.BothRevealed {
		message = "Identities revealed!"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "data": result})
}

// EndBlindDate deactivates a session. Idempotent for participants.
func (h *Handler) EndBlindDate(c *gin.Context) {
	if err := h.BlindDates.End(c.Param("id"), MustUserID(c)); err != nil {
		if errors.Is(err, blinddate.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Blind date not found"})
			return
		}
		respondBlindDateError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Blind date ended successfully"})
}

// GetBlindDateHistory lists the caller's ended sessions, paginated.
func (h *Handler) GetBlindDateHistory(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(config.DefaultHistoryPage)))
	if err != nil || page < 1 {
		page = config.DefaultHistoryPage
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(config.DefaultHistoryLimit)))
	if err != nil || limit < 1 || limit > config.MaxHistoryLimit {
		limit = config.DefaultHistoryLimit
	}

	result, err := h.BlindDates.History(MustUserID(c), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get blind date history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Entries,
		"pagination": gin.H{
			"page":  result.Page,
			"limit": result.Limit,
			"total": result.Total,
		},
	})
}
