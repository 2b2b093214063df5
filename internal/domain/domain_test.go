package domain

import (
	"errors"
	"testing"
	"time"
)

func obs(available bool) ObservedState {
	return ObservedState{
		Available: available,
		CheckedAt: time.Date(2026, 8, 18, 12, 0, 0, 0, time.UTC),
	}
}

func TestClassify_FirstObservation(t *testing.T) {
	cur := obs(false)
	if got := Classify(nil, cur); got != TransitionFirstObservation {
		t.Fatalf("want first-observation, got %s", got)
	}
}

func TestClassify_Unchanged(t *testing.T) {
	prev := obs(true)
	if got := Classify(&prev, obs(true)); got != TransitionUnchanged {
		t.Fatalf("want unchanged, got %s", got)
	}
	prev = obs(false)
	if got := Classify(&prev, obs(false)); got != TransitionUnchanged {
		t.Fatalf("want unchanged, got %s", got)
	}
}

func TestClassify_Flips(t *testing.T) {
	prev := obs(false)
	if got := Classify(&prev, obs(true)); got != TransitionBecameAvailable {
		t.Fatalf("want became-available, got %s", got)
	}
	prev = obs(true)
	if got := Classify(&prev, obs(false)); got != TransitionBecameUnavailable {
		t.Fatalf("want became-unavailable, got %s", got)
	}
}

func TestNotifiable(t *testing.T) {
	cases := []struct {
		tr            Transition
		notifyOnFirst bool
		want          bool
	}{
		{TransitionBecameAvailable, false, true},
		{TransitionBecameUnavailable, false, true},
		{TransitionUnchanged, true, false},
		{TransitionFirstObservation, false, false},
		{TransitionFirstObservation, true, true},
	}
	for _, c := range cases {
		if got := c.tr.Notifiable(c.notifyOnFirst); got != c.want {
			t.Fatalf("%s notifyOnFirst=%v: want %v got %v", c.tr, c.notifyOnFirst, c.want, got)
		}
	}
}

func TestErrorTaxonomy_Unwrap(t *testing.T) {
	inner := errors.New("boom")

	var fe *FetchError
	err := error(&FetchError{Err: inner})
	if !errors.As(err, &fe) || !errors.Is(err, inner) {
		t.Fatalf("FetchError should wrap: %v", err)
	}

	var pe *PersistenceError
	err = &PersistenceError{Op: "save", Err: inner}
	if !errors.As(err, &pe) || pe.Op != "save" {
		t.Fatalf("PersistenceError should wrap with op: %v", err)
	}

	var ce *ConfigurationError
	err = &ConfigurationError{Field: "TARGET", Err: inner}
	if !errors.As(err, &ce) || ce.Field != "TARGET" {
		t.Fatalf("ConfigurationError should wrap with field: %v", err)
	}
}
