package handler

import (
	"dyce/backend/internal/blinddate"
	"dyce/backend/internal/profile"
	"dyce/backend/internal/realtime"
	"dyce/backend/internal/storage"
	"dyce/backend/internal/swipe"
)

// Handler carries the services behind the REST surface.
type Handler struct {
	Storage    storage.Storage
	BlindDates *blinddate.Service
	Swipes     *swipe.Service
	Profiles   *profile.Service
	Hub        *realtime.Manager
	JWTSecret  string
}

func NewHandler(s storage.Storage, bd *blinddate.Service, sw *swipe.Service, pr *profile.Service, hub *realtime.Manager, jwtSecret string) *Handler {
	return &Handler{
		Storage:    s,
		BlindDates: bd,
		Swipes:     sw,
		Profiles:   pr,
		Hub:        hub,
		JWTSecret:  jwtSecret,
	}
}
