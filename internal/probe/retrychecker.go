package probe

import (
	"context"
	"time"

	"github.com/hamed0406/swgrab/internal/domain"
)

// RetryChecker retries the inner check on fetch errors only. An observation
// that says the target is down is returned as-is: the comparison against the
// last known state decides what happens with it.
type RetryChecker struct {
	Inner    Checker
	Attempts int
	Backoff  time.Duration
}

func (r *RetryChecker) Check(ctx context.Context, target string) (domain.ObservedState, error) {
	attempts := r.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		obs, err := r.Inner.Check(ctx, target)
		if err == nil {
			return obs, nil
		}
		lastErr = err
		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return domain.ObservedState{}, ctx.Err()
			case <-time.After(r.Backoff):
			}
		}
	}
	return domain.ObservedState{}, lastErr
}
