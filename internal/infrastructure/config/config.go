package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// APIBaseURL is the remote management API every page talks to.
	APIBaseURL string `env:"API_BASE_URL, default=http://localhost:3000"`

	// SessionStore selects the durable backend for the persisted session:
	// "redis" (default) or "mongo".
	SessionStore string `env:"SESSION_STORE,     default=redis"`
	TokenKey     string `env:"SESSION_TOKEN_KEY, default=auth_token"`
	UserKey      string `env:"SESSION_USER_KEY,  default=user_data"`

	Redis RedisConfig
	Mongo MongoConfig
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=console_gateway"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
