package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds application level configuration loaded from environment
// variables.
type Config struct {
	ServerPort string `env:"SERVER_PORT,    default=8080"`
	LogLevel   string `env:"LOG_LEVEL,      default=info"`
	LogPretty  bool   `env:"LOG_PRETTY,     default=false"`

	MySQLDSN string `env:"MYSQL_DSN, default=user:password@tcp(localhost:3306)/goldcosmetics?charset=utf8mb4&parseTime=True&loc=Local"`

	RedisAddr string `env:"REDIS_ADDR,     default=localhost:6379"`
	RedisDB   int    `env:"REDIS_DB,       default=0"`
	RedisPass string `env:"REDIS_PASSWORD"`

	SessionSecret string        `env:"SESSION_SECRET, default=change-me"`
	SessionTTL    time.Duration `env:"SESSION_TTL,    default=24h"`
}

// Load reads configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
