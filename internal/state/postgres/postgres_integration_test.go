//go:build integration

package postgres

// go test -tags=integration ./internal/state/postgres -count=1

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/hamed0406/swgrab/internal/domain"
)

func TestObservationUpsert(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL empty")
	}

	ctx := context.Background()
	store, err := New(ctx, dsn)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	target := "it-" + time.Now().UTC().Format("20060102150405.000000000")

	// none yet
	obs, err := store.Load(ctx, target)
	if err != nil || obs != nil {
		t.Fatalf("expected nil, got %+v err=%v", obs, err)
	}

	first := domain.ObservedState{
		Available:  false,
		HTTPStatus: 503,
		LatencyMS:  42,
		Detail:     "503 Service Unavailable",
		CheckedAt:  time.Now().UTC().Truncate(time.Microsecond),
	}
	if err := store.Save(ctx, target, first); err != nil {
		t.Fatalf("save: %v", err)
	}
	obs, err = store.Load(ctx, target)
	if err != nil || obs == nil || obs.Available || obs.HTTPStatus != 503 {
		t.Fatalf("unexpected: %+v err=%v", obs, err)
	}

	second := first
	second.Available = true
	second.HTTPStatus = 200
	if err := store.Save(ctx, target, second); err != nil {
		t.Fatalf("save2: %v", err)
	}
	obs, err = store.Load(ctx, target)
	if err != nil || obs == nil || !obs.Available || obs.HTTPStatus != 200 {
		t.Fatalf("upsert did not replace: %+v err=%v", obs, err)
	}
}
