package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"github.com/hamed0406/swgrab/internal/config"
	"github.com/hamed0406/swgrab/internal/domain"
	"github.com/hamed0406/swgrab/internal/grab"
	"github.com/hamed0406/swgrab/internal/httpapi"
	"github.com/hamed0406/swgrab/internal/logging"
	"github.com/hamed0406/swgrab/internal/notify"
	"github.com/hamed0406/swgrab/internal/probe"
	"github.com/hamed0406/swgrab/internal/state"
	"github.com/hamed0406/swgrab/internal/state/file"
	"github.com/hamed0406/swgrab/internal/state/postgres"
	"github.com/hamed0406/swgrab/internal/state/sqlite"
)

// Exit codes let the external scheduler tell failure classes apart.
const (
	exitOK = iota
	_      // 1 reserved for the runtime (panic, log.Fatal)
	exitConfig
	exitFetch
	exitPersistence
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Println(err)
		return exitConfig
	}

	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := newStore(ctx, cfg)
	if err != nil {
		logger.Error("state_store_open_failed", zap.Error(err))
		return exitPersistence
	}
	defer closeStore()

	g := &grab.Grabber{
		Logger:   logger,
		Target:   domain.Target{Name: cfg.TargetName, URL: cfg.TargetURL},
		Checker:  newChecker(cfg),
		Store:    store,
		Notifier: newNotifier(cfg),
		Policy:   grab.Policy{NotifyOnFirst: cfg.NotifyOnFirst},
	}

	if cfg.PollInterval == 0 {
		if _, err := g.Run(ctx); err != nil {
			logger.Error("grab_failed", zap.Error(err))
			return exitCode(err)
		}
		return exitOK
	}

	loop := &grab.Loop{Grabber: g, Interval: cfg.PollInterval}

	if cfg.APIAddr != "" {
		api := httpapi.NewServer(logger, g.Target, loop)
		go func() {
			logger.Info("api_listen", zap.String("addr", cfg.APIAddr))
			if err := http.ListenAndServe(cfg.APIAddr, api.Router()); err != nil {
				logger.Error("api_failed", zap.Error(err))
			}
		}()
	}

	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("loop_failed", zap.Error(err))
		return exitCode(err)
	}
	return exitOK
}

func newChecker(cfg config.Config) probe.Checker {
	var inner probe.Checker
	if strings.HasPrefix(cfg.TargetURL, "dns://") {
		inner = probe.NewDNSChecker(cfg.CheckTimeout)
	} else {
		inner = probe.NewHTTPChecker(cfg.CheckTimeout)
	}
	if cfg.RetryAttempts <= 1 {
		return inner
	}
	return &probe.RetryChecker{Inner: inner, Attempts: cfg.RetryAttempts, Backoff: cfg.RetryBackoff}
}

func newStore(ctx context.Context, cfg config.Config) (state.Store, func(), error) {
	switch cfg.StateBackend {
	case "sqlite":
		s, err := sqlite.New(ctx, cfg.StatePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	case "postgres":
		s, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		s, err := file.New(cfg.StatePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	}
}

func newNotifier(cfg config.Config) notify.Notifier {
	var m notify.Multi
	if s := notify.NewSlack(cfg.SlackWebhook); s != nil {
		m = append(m, s)
	}
	if d := notify.NewDiscord(cfg.DiscordWebhook); d != nil {
		m = append(m, d)
	}
	if len(m) == 0 {
		return nil
	}
	return m
}

func exitCode(err error) int {
	var fe *domain.FetchError
	if errors.As(err, &fe) {
		return exitFetch
	}
	var pe *domain.PersistenceError
	if errors.As(err, &pe) {
		return exitPersistence
	}
	var ce *domain.ConfigurationError
	if errors.As(err, &ce) {
		return exitConfig
	}
	return 1
}
