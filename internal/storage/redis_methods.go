package storage

import (
	"encoding/json"

	"dyce/backend/internal/config"
	"dyce/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// AcquirePairingLock takes a short-lived per-user advisory lock in Redis.
// Blind-date creation holds the locks of both participants so two concurrent
// start() calls cannot both pass the active-session check. The TTL guards
// against a crashed holder.
func (s *Service) AcquirePairingLock(userID string) (bool, error) {
	key := config.PairingLockKeyPrefix + userID
	return s.Redis.SetNX(s.Ctx, key, "1", config.PairingLockTTL).Result()
}

// ReleasePairingLock releases the advisory lock.
func (s *Service) ReleasePairingLock(userID string) error {
	key := config.PairingLockKeyPrefix + userID
	return s.Redis.Del(s.Ctx, key).Err()
}

// PublishEvent publishes a realtime event on the user's channel.
func (s *Service) PublishEvent(userID string, ev models.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, config.RealtimeChannelPrefix+userID, string(payload)).Err()
}

// SubscribeEvents subscribes to every user event channel. The realtime
// manager routes each message to the matching connected client.
func (s *Service) SubscribeEvents() *redis.PubSub {
	return s.Redis.PSubscribe(s.Ctx, config.RealtimeChannelPrefix+"*")
}
