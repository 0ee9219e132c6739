// Package config provides configuration for the chat server.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Upstream providers served behind the answer proxy.
const (
	ProviderQuery  = "query"
	ProviderOpenAI = "openai"
)

// Config holds the server configuration.
type Config struct {
	// Server settings
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Answer client used by the turn orchestrator. Defaults to this
	// server's own /api/chat on HTTP_PORT.
	AnswerURL       string `env:"ANSWER_URL"`
	AnswerTimeoutMS int    `env:"ANSWER_TIMEOUT_MS" envDefault:"30000"`
	TurnTimeoutMS   int    `env:"TURN_TIMEOUT_MS" envDefault:"60000"`
	// Mode selects the answer client: MOCK, OFFLINE or empty for HTTP.
	Mode string `env:"LUMID_MODE"`

	// Upstream behind POST /api/chat
	UpstreamProvider  string `env:"UPSTREAM_PROVIDER" envDefault:"query"`
	UpstreamURL       string `env:"UPSTREAM_URL" envDefault:"https://t3st1.onrender.com/query"`
	UpstreamTimeoutMS int    `env:"UPSTREAM_TIMEOUT_MS" envDefault:"30000"`

	OpenAIAPIKey       string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL      string `env:"OPENAI_BASE_URL"`
	OpenAIModel        string `env:"OPENAI_MODEL" envDefault:"gpt-3.5-turbo"`
	OpenAISystemPrompt string `env:"OPENAI_SYSTEM_PROMPT"`

	// Question policy
	MaxQuestionLength int `env:"MAX_QUESTION_LENGTH" envDefault:"4000"`

	// WebSocket settings
	WSPingIntervalMS int   `env:"WS_PING_INTERVAL_MS" envDefault:"30000"`
	WSWriteTimeoutMS int   `env:"WS_WRITE_TIMEOUT_MS" envDefault:"10000"`
	WSReadTimeoutMS  int   `env:"WS_READ_TIMEOUT_MS" envDefault:"60000"`
	WSMaxMessageSize int64 `env:"WS_MAX_MESSAGE_SIZE" envDefault:"65536"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load reads the given dotenv files (".env" when none are named) and then
// parses the environment. Missing dotenv files are skipped; variables already
// set in the environment win over file values.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.AnswerURL == "" {
		cfg.AnswerURL = fmt.Sprintf("http://localhost:%d/api/chat", cfg.HTTPPort)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that env tags cannot express.
func (c *Config) Validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP_PORT %d", c.HTTPPort)
	}
	positive := []struct {
		name  string
		value int64
	}{
		{"TURN_TIMEOUT_MS", int64(c.TurnTimeoutMS)},
		{"WS_PING_INTERVAL_MS", int64(c.WSPingIntervalMS)},
		{"WS_WRITE_TIMEOUT_MS", int64(c.WSWriteTimeoutMS)},
		{"WS_READ_TIMEOUT_MS", int64(c.WSReadTimeoutMS)},
		{"WS_MAX_MESSAGE_SIZE", c.WSMaxMessageSize},
	}
	for _, v := range positive {
		if v.value <= 0 {
			return fmt.Errorf("%s must be positive, got %d", v.name, v.value)
		}
	}
	// Zero disables the client deadline.
	if c.AnswerTimeoutMS < 0 {
		return fmt.Errorf("ANSWER_TIMEOUT_MS must not be negative, got %d", c.AnswerTimeoutMS)
	}
	if c.UpstreamTimeoutMS < 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT_MS must not be negative, got %d", c.UpstreamTimeoutMS)
	}
	switch c.UpstreamProvider {
	case ProviderQuery:
		if c.UpstreamURL == "" {
			return errors.New("UPSTREAM_URL is required for the query provider")
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY is required for the openai provider")
		}
	default:
		return fmt.Errorf("unknown UPSTREAM_PROVIDER %q", c.UpstreamProvider)
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func (c *Config) AnswerTimeout() time.Duration {
	return time.Duration(c.AnswerTimeoutMS) * time.Millisecond
}

func (c *Config) TurnTimeout() time.Duration {
	return time.Duration(c.TurnTimeoutMS) * time.Millisecond
}

func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.UpstreamTimeoutMS) * time.Millisecond
}

func (c *Config) PingInterval() time.Duration {
	return time.Duration(c.WSPingIntervalMS) * time.Millisecond
}

func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.WSWriteTimeoutMS) * time.Millisecond
}

func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.WSReadTimeoutMS) * time.Millisecond
}
