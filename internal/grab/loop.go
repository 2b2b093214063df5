package grab

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/swgrab/internal/domain"
)

// Loop runs the grabber on a ticker: an immediate pass, then one per tick.
// Fetch errors are logged and the loop keeps going; the next tick is the
// retry. A persistence failure stops the loop, since continuing with a
// broken store would risk duplicate notifications.
type Loop struct {
	Grabber  *Grabber
	Interval time.Duration

	mu   sync.RWMutex
	last *Outcome
}

// Last returns the outcome of the most recent successful pass, or nil when
// no pass has completed yet.
func (l *Loop) Last() *Outcome {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.last == nil {
		return nil
	}
	cp := *l.last
	return &cp
}

func (l *Loop) Run(ctx context.Context) error {
	t := time.NewTicker(l.Interval)
	defer t.Stop()

	if err := l.pass(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			l.Grabber.Logger.Info("loop_stopped")
			return ctx.Err()
		case <-t.C:
			if err := l.pass(ctx); err != nil {
				return err
			}
		}
	}
}

func (l *Loop) pass(ctx context.Context) error {
	out, err := l.Grabber.Run(ctx)
	if err == nil {
		l.mu.Lock()
		l.last = &out
		l.mu.Unlock()
		return nil
	}

	var fe *domain.FetchError
	if errors.As(err, &fe) {
		l.Grabber.Logger.Warn("grab_fetch_error",
			zap.String("target", l.Grabber.Target.Name),
			zap.Error(err),
		)
		return nil
	}
	return err
}
