package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration. Defaults mirror the
// original game's timings.
type Config struct {
	// CleaningDuration is the accumulated rub time needed to clean a ball.
	CleaningDuration time.Duration `env:"BALLQUEST_CLEANING_DURATION" envDefault:"4s"`
	// MessageDuration is how long narrator and door banners stay up.
	MessageDuration time.Duration `env:"BALLQUEST_MESSAGE_DURATION" envDefault:"5s"`
	// ResultDuration is how long a challenge result line stays up.
	ResultDuration time.Duration `env:"BALLQUEST_RESULT_DURATION" envDefault:"4s"`
	// ChallengeCloseDelay is the pause between challenge success and
	// the popup closing.
	ChallengeCloseDelay time.Duration `env:"BALLQUEST_CHALLENGE_CLOSE_DELAY" envDefault:"2s"`
	// CompletionDelay is the pause between the completion message and
	// the end screen.
	CompletionDelay time.Duration `env:"BALLQUEST_COMPLETION_DELAY" envDefault:"3s"`
	// DebugComplete enables the instant-completion debug action.
	DebugComplete bool `env:"BALLQUEST_DEBUG_COMPLETE" envDefault:"false"`
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.CleaningDuration <= 0 {
		return nil, fmt.Errorf("cleaning duration must be positive")
	}
	return &cfg, nil
}
