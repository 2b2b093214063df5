package state

import (
	"context"

	"github.com/hamed0406/swgrab/internal/domain"
)

// Store is the persisted-state accessor: one ObservedState record per
// target. Implementations must replace the record atomically on Save so a
// crash mid-write never leaves a truncated record behind.
type Store interface {
	// Load returns nil, nil when no record exists yet (first run).
	Load(ctx context.Context, target string) (*domain.ObservedState, error)
	// Save upserts the record for the target.
	Save(ctx context.Context, target string, obs domain.ObservedState) error
}

// Locker is implemented by stores whose load-then-save sequence needs an
// explicit critical section against overlapping invocations (the file
// store). Database-backed stores serialize on their own. Lock blocks until
// the lock is held and returns the release func.
type Locker interface {
	Lock(ctx context.Context) (func(), error)
}
