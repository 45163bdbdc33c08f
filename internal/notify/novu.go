// Package notify delivers push notifications through the Novu trigger API.
// Delivery is fire-and-forget: failures are logged and never propagated, so
// a notification problem can never block or roll back a session transition.
package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

const workflowID = "notifications"

// Service triggers the "notifications" workflow for a subscriber.
type Service struct {
	apiURL    string
	secretKey string
	client    *http.Client
}

// NewService creates the dispatcher. When secretKey is empty, notifications
// are logged and skipped (local development).
func NewService(apiURL, secretKey string) *Service {
	return &Service{
		apiURL:    apiURL,
		secretKey: secretKey,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type triggerRequest struct {
	WorkflowID string         `json:"name"`
	To         triggerTarget  `json:"to"`
	Payload    triggerPayload `json:"payload"`
}

type triggerTarget struct {
	SubscriberID string `json:"subscriberId"`
}

type triggerPayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Notify triggers a notification asynchronously.
func (s *Service) Notify(userID, title, body string) {
	go func() {
		if err := s.trigger(userID, title, body); err != nil {
			log.Printf("ERROR: Failed to trigger notification for user %s: %v", userID, err)
		}
	}()
}

func (s *Service) trigger(userID, title, body string) error {
	if s.secretKey == "" {
		log.Printf("INFO: Notification skipped (no NOVU_SECRET_KEY): user=%s title=%q", userID, title)
		return nil
	}

	reqBody, err := json.Marshal(triggerRequest{
		WorkflowID: workflowID,
		To:         triggerTarget{SubscriberID: userID},
		Payload:    triggerPayload{Title: title, Content: body},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, s.apiURL, bytes.NewReader(reqBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "ApiKey "+s.secretKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("novu trigger returned status %d", resp.StatusCode)
	}
	return nil
}
