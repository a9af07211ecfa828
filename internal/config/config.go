// Package config loads runtime configuration from environment variables
// using go-envconfig.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config drives the admin client binary.
type Config struct {
	// APIBaseURL is where the document service lives. The login endpoint
	// hangs off it directly; everything else sits under /api/.
	APIBaseURL string `env:"DMS_API_URL,    default=http://localhost:8080"`

	// Timeout bounds every outgoing request.
	Timeout time.Duration `env:"DMS_TIMEOUT,    default=30s"`

	// ConfigDir overrides where the credential slot lives. Empty selects
	// the per-user config directory.
	ConfigDir string `env:"DMS_CONFIG_DIR"`

	LogLevel  string `env:"DMS_LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"DMS_LOG_PRETTY, default=true"`
}

// StubConfig drives the development stub server.
type StubConfig struct {
	Port      string        `env:"PORT,       default=8080"`
	JWTSecret string        `env:"JWT_SECRET, default=dev-secret"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=24h"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`
}

// Load reads the client configuration from the environment.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// LoadStub reads the stub server configuration from the environment.
func LoadStub() *StubConfig {
	var cfg StubConfig
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
