package config

import (
	"errors"
	"testing"
	"time"

	"github.com/hamed0406/swgrab/internal/domain"
)

func TestFromEnv_ParsesAndDefaults(t *testing.T) {
	t.Setenv("TARGET", "https://example.com/health")
	t.Setenv("STATE_PATH", "./_teststate/s.json")
	t.Setenv("LOG_DIR", "./_testlogs")
	t.Setenv("CHECK_TIMEOUT_MS", "1234")
	t.Setenv("RETRY_ATTEMPTS", "5")
	t.Setenv("RETRY_BACKOFF_MS", "250")
	t.Setenv("POLL_INTERVAL_MS", "60000")
	t.Setenv("NOTIFY_ON_FIRST", "true")
	t.Setenv("NOTIFY_SLACK_WEBHOOK", "https://hooks.slack.example/T/B/x")

	cfg := FromEnv()

	if cfg.TargetURL != "https://example.com/health" || cfg.StatePath != "./_teststate/s.json" {
		t.Fatalf("target/state wrong: %+v", cfg)
	}
	if cfg.TargetName != cfg.TargetURL {
		t.Fatalf("TARGET_NAME should default to the URL, got %q", cfg.TargetName)
	}
	if cfg.CheckTimeout != 1234*time.Millisecond {
		t.Fatalf("timeout wrong: %v", cfg.CheckTimeout)
	}
	if cfg.RetryAttempts != 5 || cfg.RetryBackoff != 250*time.Millisecond {
		t.Fatalf("retry wrong: %+v", cfg)
	}
	if cfg.PollInterval != time.Minute {
		t.Fatalf("poll interval wrong: %v", cfg.PollInterval)
	}
	if !cfg.NotifyOnFirst || cfg.SlackWebhook == "" {
		t.Fatalf("notify settings wrong: %+v", cfg)
	}
	if cfg.StateBackend != "file" {
		t.Fatalf("backend should default to file, got %q", cfg.StateBackend)
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	// no env at all must still give a usable single-shot config
	for _, v := range []string{"STATE_PATH", "LOG_DIR", "CHECK_TIMEOUT_MS", "POLL_INTERVAL_MS"} {
		t.Setenv(v, "")
	}
	cfg := FromEnv()
	if cfg.StatePath == "" || cfg.LogDir == "" {
		t.Fatalf("missing defaults: %+v", cfg)
	}
	if cfg.CheckTimeout <= 0 {
		t.Fatalf("timeout must default to a finite value, got %v", cfg.CheckTimeout)
	}
	if cfg.PollInterval != 0 {
		t.Fatalf("default must be single-shot, got %v", cfg.PollInterval)
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		TargetURL:    "https://example.com",
		TargetName:   "example",
		StateBackend: "file",
		StatePath:    "state/swgrab.json",
		CheckTimeout: time.Second,
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"missing target", func(c *Config) { c.TargetURL = "" }, "TARGET"},
		{"bad scheme", func(c *Config) { c.TargetURL = "ftp://example.com" }, "TARGET"},
		{"unknown backend", func(c *Config) { c.StateBackend = "redis" }, "STATE_BACKEND"},
		{"postgres without dsn", func(c *Config) { c.StateBackend = "postgres" }, "DATABASE_URL"},
		{"zero timeout", func(c *Config) { c.CheckTimeout = 0 }, "CHECK_TIMEOUT_MS"},
		{"api without loop", func(c *Config) { c.APIAddr = ":8080" }, "API_ADDR"},
	}
	for _, c := range cases {
		cfg := base
		c.mutate(&cfg)
		err := cfg.Validate()
		var ce *domain.ConfigurationError
		if !errors.As(err, &ce) {
			t.Fatalf("%s: want ConfigurationError, got %v", c.name, err)
		}
		if ce.Field != c.field {
			t.Fatalf("%s: want field %s, got %s", c.name, c.field, ce.Field)
		}
	}

	dns := base
	dns.TargetURL = "dns://example.com"
	if err := dns.Validate(); err != nil {
		t.Fatalf("dns target rejected: %v", err)
	}
}
