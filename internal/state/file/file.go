// Package file persists observations as a JSON snapshot on disk.
//
// Writes go to a temp file in the same directory followed by a rename, so
// the snapshot is replaced atomically. Lock takes an exclusive flock on a
// lock file next to the snapshot; callers hold it across the whole
// load-then-save sequence so overlapping invocations driven by an external
// scheduler serialize their full cycles. The kernel drops the lock when a
// crashed holder exits, so a stale lock file is harmless.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/hamed0406/swgrab/internal/domain"
)

type snapshot struct {
	Version int                             `json:"version"`
	Targets map[string]domain.ObservedState `json:"targets"`
}

const snapshotVersion = 1

type Store struct {
	mu   sync.Mutex
	path string
}

func New(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("state path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("state dir: %w", err)
	}
	return &Store{path: path}, nil
}

// Lock blocks until the exclusive advisory lock is held and returns the
// release func. Separate Store instances (or processes) contend on the same
// lock file.
func (s *Store) Lock(ctx context.Context) (func(), error) {
	f, err := os.OpenFile(s.path+".lock", os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open lock: %w", err)
	}
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		f.Close()
		return nil, fmt.Errorf("lock state: %w", err)
	}
	return func() {
		syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
		f.Close()
	}, nil
}

func (s *Store) Load(ctx context.Context, target string) (*domain.ObservedState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.read()
	if err != nil {
		return nil, err
	}
	obs, ok := snap.Targets[target]
	if !ok {
		return nil, nil
	}
	return &obs, nil
}

func (s *Store) Save(ctx context.Context, target string, obs domain.ObservedState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.read()
	if err != nil {
		return err
	}
	snap.Targets[target] = obs
	return s.replace(snap)
}

func (s *Store) read() (snapshot, error) {
	snap := snapshot{Version: snapshotVersion, Targets: map[string]domain.ObservedState{}}
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return snap, nil
	}
	if err != nil {
		return snap, fmt.Errorf("read state: %w", err)
	}
	if err := json.Unmarshal(b, &snap); err != nil {
		return snap, fmt.Errorf("decode state: %w", err)
	}
	if snap.Targets == nil {
		snap.Targets = map[string]domain.ObservedState{}
	}
	return snap, nil
}

func (s *Store) replace(snap snapshot) error {
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".swgrab-*.tmp")
	if err != nil {
		return fmt.Errorf("temp state: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close state: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}
