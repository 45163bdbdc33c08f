package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"dyce/backend/internal/api/handler"
	"dyce/backend/internal/blinddate"
	"dyce/backend/internal/config"
	"dyce/backend/internal/matching"
	"dyce/backend/internal/notify"
	"dyce/backend/internal/profile"
	"dyce/backend/internal/realtime"
	"dyce/backend/internal/storage"
	"dyce/backend/internal/swipe"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg config.Config) (*gorm.DB, *redis.Client) {
	// TranslateError maps unique-violations to gorm.ErrDuplicatedKey, which
	// the storage layer relies on for the one-active-date constraint.
	db, err := gorm.Open(postgres.Open(cfg.DBDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	return db, rdb
}

func main() {
	log.Println("Starting Dyce Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, rdb := setupDependencies(cfg)
	s := storage.NewService(db, rdb)

	if err := s.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database and Redis connections established, migrations complete.")

	notifier := notify.NewService(cfg.NovuAPIURL, cfg.NovuSecretKey)
	selector := matching.NewSelector(s)
	blindDates := blinddate.NewService(s, selector, notifier, cfg.BlindDateTTL)
	swipes := swipe.NewService(s, notifier)
	profiles := profile.NewService(s)

	hub := realtime.NewManager(s)
	go hub.Run()

	r := gin.Default()
	h := handler.NewHandler(s, blindDates, swipes, profiles, hub, cfg.JWTSecret)

	r.POST("/api/v1/auth/register", h.Register)
	r.POST("/api/v1/auth/login", h.Login)
	r.GET("/ws", h.ServeWebSocket)

	authed := r.Group("/api/v1")
	authed.Use(handler.AuthMiddleware(cfg.JWTSecret))

	authed.GET("/profile", h.GetProfile)
	authed.PUT("/profile", h.UpdateProfile)
	authed.GET("/profile/completion", h.GetProfileCompletion)

	authed.POST("/blind-date/start", h.StartBlindDate)
	authed.GET("/blind-date/current", h.GetCurrentBlindDate)
	authed.POST("/blind-date/message", h.SendBlindDateMessage)
	authed.GET("/blind-date/:id/messages", h.ListBlindDateMessages)
	authed.POST("/blind-date/:id/reveal", h.AgreeToReveal)
	authed.POST("/blind-date/:id/end", h.EndBlindDate)
	authed.GET("/blind-date/history", h.GetBlindDateHistory)

	authed.GET("/feed", h.GetFeed)
	authed.POST("/swipe", h.Swipe)
	authed.GET("/matches", h.ListMatches)
	authed.POST("/block", h.Block)

	server := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Port),
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Printf("Listening on %s", server.Addr)
	log.Fatal(server.ListenAndServe())
}
