package config

import (
	"errors"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hamed0406/swgrab/internal/domain"
)

type Config struct {
	TargetURL  string // resource to grab, http(s)://... or dns://host
	TargetName string // state record key; defaults to the URL

	StateBackend string // "file" (default), "sqlite" or "postgres"
	StatePath    string // file or sqlite database path
	DatabaseURL  string // postgres DSN when StateBackend is "postgres"

	CheckTimeout  time.Duration // per-fetch network timeout
	RetryAttempts int           // in-fetch retries before declaring a fetch error
	RetryBackoff  time.Duration

	SlackWebhook   string
	DiscordWebhook string
	NotifyOnFirst  bool

	PollInterval time.Duration // 0 means single-shot
	APIAddr      string        // status API bind address, loop mode only
	LogDir       string
}

func FromEnv() Config {
	cfg := Config{
		TargetURL:  os.Getenv("TARGET"),
		TargetName: os.Getenv("TARGET_NAME"),

		StateBackend: strings.ToLower(os.Getenv("STATE_BACKEND")),
		StatePath:    os.Getenv("STATE_PATH"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),

		SlackWebhook:   os.Getenv("NOTIFY_SLACK_WEBHOOK"),
		DiscordWebhook: os.Getenv("NOTIFY_DISCORD_WEBHOOK"),

		APIAddr: os.Getenv("API_ADDR"),
		LogDir:  os.Getenv("LOG_DIR"),
	}

	if cfg.TargetName == "" {
		cfg.TargetName = cfg.TargetURL
	}
	if cfg.StateBackend == "" {
		cfg.StateBackend = "file"
	}
	if cfg.StatePath == "" {
		cfg.StatePath = "state/swgrab.json"
	}
	if cfg.LogDir == "" {
		cfg.LogDir = "logs"
	}

	cfg.CheckTimeout = 10 * time.Second
	if ms, ok := envInt("CHECK_TIMEOUT_MS"); ok && ms > 0 {
		cfg.CheckTimeout = time.Duration(ms) * time.Millisecond
	}

	cfg.RetryAttempts = 1
	if n, ok := envInt("RETRY_ATTEMPTS"); ok && n > 0 {
		cfg.RetryAttempts = n
	}

	cfg.RetryBackoff = 300 * time.Millisecond
	if ms, ok := envInt("RETRY_BACKOFF_MS"); ok && ms >= 0 {
		cfg.RetryBackoff = time.Duration(ms) * time.Millisecond
	}

	if ms, ok := envInt("POLL_INTERVAL_MS"); ok && ms > 0 {
		cfg.PollInterval = time.Duration(ms) * time.Millisecond
	}

	if v := os.Getenv("NOTIFY_ON_FIRST"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.NotifyOnFirst = b
		}
	}

	return cfg
}

// Validate runs before any network I/O; a bad configuration aborts the run.
func (c Config) Validate() error {
	if c.TargetURL == "" {
		return &domain.ConfigurationError{Field: "TARGET", Err: errors.New("not set")}
	}
	u, err := url.Parse(c.TargetURL)
	if err != nil {
		return &domain.ConfigurationError{Field: "TARGET", Err: err}
	}
	switch u.Scheme {
	case "http", "https", "dns":
	default:
		return &domain.ConfigurationError{
			Field: "TARGET",
			Err:   errors.New("unsupported scheme " + strconv.Quote(u.Scheme)),
		}
	}

	switch c.StateBackend {
	case "file", "sqlite":
		if c.StatePath == "" {
			return &domain.ConfigurationError{Field: "STATE_PATH", Err: errors.New("not set")}
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return &domain.ConfigurationError{Field: "DATABASE_URL", Err: errors.New("not set")}
		}
	default:
		return &domain.ConfigurationError{
			Field: "STATE_BACKEND",
			Err:   errors.New("unknown backend " + strconv.Quote(c.StateBackend)),
		}
	}

	if c.CheckTimeout <= 0 {
		return &domain.ConfigurationError{Field: "CHECK_TIMEOUT_MS", Err: errors.New("must be positive")}
	}
	if c.APIAddr != "" && c.PollInterval == 0 {
		return &domain.ConfigurationError{
			Field: "API_ADDR",
			Err:   errors.New("status API needs POLL_INTERVAL_MS"),
		}
	}
	return nil
}

func envInt(name string) (int, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
