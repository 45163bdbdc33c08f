package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all environment-driven settings.
type Config struct {
	Port          int           `envconfig:"PORT" default:"8080"`
	DBDSN         string        `envconfig:"DB_DSN" required:"true"`
	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	JWTSecret     string        `envconfig:"JWT_SECRET" required:"true"`
	NovuAPIURL    string        `envconfig:"NOVU_API_URL" default:"https://api.novu.co/v1/events/trigger"`
	NovuSecretKey string        `envconfig:"NOVU_SECRET_KEY"`
	BlindDateTTL  time.Duration `envconfig:"BLIND_DATE_TTL" default:"24h"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
