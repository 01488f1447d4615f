package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.CleaningDuration != 4*time.Second {
		t.Errorf("Expected 4s cleaning duration, got %v", cfg.CleaningDuration)
	}
	if cfg.MessageDuration != 5*time.Second {
		t.Errorf("Expected 5s message duration, got %v", cfg.MessageDuration)
	}
	if cfg.DebugComplete {
		t.Errorf("Expected the debug toggle off by default")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("BALLQUEST_CLEANING_DURATION", "2s")
	t.Setenv("BALLQUEST_DEBUG_COMPLETE", "true")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.CleaningDuration != 2*time.Second {
		t.Errorf("Expected 2s cleaning duration, got %v", cfg.CleaningDuration)
	}
	if !cfg.DebugComplete {
		t.Errorf("Expected the debug toggle on")
	}
}

func TestLoadConfigRejectsBadDuration(t *testing.T) {
	t.Setenv("BALLQUEST_CLEANING_DURATION", "0s")

	if _, err := LoadConfig(); err == nil {
		t.Errorf("Expected an error for a zero cleaning duration")
	}
}
