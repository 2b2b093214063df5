package domain

import "fmt"

// FetchError marks a run where the target could not be observed at all
// (network error, timeout, unresolvable name). Persisted state must stay
// untouched and no notification is sent.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("fetch: %v", e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// PersistenceError marks a failure of the state store. On load a missing
// record is not an error; anything else is. On save it is fatal for the run.
type PersistenceError struct {
	Op  string // "lock", "load" or "save"
	Err error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("state %s: %v", e.Op, e.Err) }
func (e *PersistenceError) Unwrap() error { return e.Err }

// ConfigurationError aborts the run before any network I/O.
type ConfigurationError struct {
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string { return fmt.Sprintf("config %s: %v", e.Field, e.Err) }
func (e *ConfigurationError) Unwrap() error { return e.Err }
