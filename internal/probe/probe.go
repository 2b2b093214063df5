package probe

import (
	"context"

	"github.com/hamed0406/swgrab/internal/domain"
)

// Checker observes the current availability of a target.
//
// A returned error means the target could not be observed at all (transport
// failure, timeout, resolver failure) and the caller must treat the run as a
// fetch error. A completed exchange is always an observation, even when it
// says the target is down.
type Checker interface {
	Check(ctx context.Context, target string) (domain.ObservedState, error)
}
