package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Manirmaths/Naijaprep/internal/infrastructure/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("QUIZ_TIME_LIMIT", "")
	t.Setenv("QUIZ_BATCH_SIZE", "")
	t.Setenv("OPENAI_API_KEY", "")

	cfg := config.Load()

	if cfg.JWTSecret != "test-secret" {
		t.Errorf("expected secret from env, got %q", cfg.JWTSecret)
	}
	if cfg.TimeLimit != 600*time.Second {
		t.Errorf("expected 600s time limit, got %v", cfg.TimeLimit)
	}
	if cfg.BatchSize != 5 {
		t.Errorf("expected batch size 5, got %d", cfg.BatchSize)
	}
	if cfg.PointsPerCorrect != 10 {
		t.Errorf("expected 10 points per correct answer, got %d", cfg.PointsPerCorrect)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("QUIZ_TIME_LIMIT", "90s")
	t.Setenv("QUIZ_BATCH_SIZE", "3")

	cfg := config.Load()

	if cfg.TimeLimit != 90*time.Second {
		t.Errorf("expected 90s, got %v", cfg.TimeLimit)
	}
	if cfg.BatchSize != 3 {
		t.Errorf("expected 3, got %d", cfg.BatchSize)
	}
}

func TestRequireOpenAIKey(t *testing.T) {
	cfg := &config.Config{}

	err := cfg.RequireOpenAIKey()

	var missing *config.MissingError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingError, got %v", err)
	}
	if missing.Key != "OPENAI_API_KEY" {
		t.Errorf("unexpected key %q", missing.Key)
	}

	cfg.OpenAIKey = "sk-test"
	if err := cfg.RequireOpenAIKey(); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}
