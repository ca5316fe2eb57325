package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.AnalysisDelay != 1500*time.Millisecond {
		t.Errorf("AnalysisDelay = %v, want 1.5s", cfg.AnalysisDelay)
	}
	if cfg.DeadlinePoll != time.Second {
		t.Errorf("DeadlinePoll = %v, want 1s", cfg.DeadlinePoll)
	}
	if cfg.AllowedOrigins != nil {
		t.Errorf("AllowedOrigins = %v, want nil (allow all)", cfg.AllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ANALYSIS_DELAY_MS", "0")
	t.Setenv("DEADLINE_POLL_MS", "250")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg := Load()

	if cfg.ServerPort != "9090" {
		t.Errorf("ServerPort = %q, want 9090", cfg.ServerPort)
	}
	if cfg.AnalysisDelay != 0 {
		t.Errorf("AnalysisDelay = %v, want 0", cfg.AnalysisDelay)
	}
	if cfg.DeadlinePoll != 250*time.Millisecond {
		t.Errorf("DeadlinePoll = %v, want 250ms", cfg.DeadlinePoll)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Errorf("AllowedOrigins = %v, want %v", cfg.AllowedOrigins, want)
	}
}

func TestGetEnvIntIgnoresGarbage(t *testing.T) {
	t.Setenv("DEADLINE_POLL_MS", "not-a-number")

	cfg := Load()
	if cfg.DeadlinePoll != time.Second {
		t.Errorf("DeadlinePoll = %v, want fallback 1s", cfg.DeadlinePoll)
	}
}
