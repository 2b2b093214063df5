package domain

// Transition classifies the change between the last persisted observation
// and the current one. It is derived on each run, never stored.
type Transition string

const (
	TransitionFirstObservation  Transition = "first-observation"
	TransitionUnchanged         Transition = "unchanged"
	TransitionBecameAvailable   Transition = "became-available"
	TransitionBecameUnavailable Transition = "became-unavailable"
)

// Classify compares the current observation against the previous one.
// prev is nil on the first run ever (no persisted state).
func Classify(prev *ObservedState, cur ObservedState) Transition {
	switch {
	case prev == nil:
		return TransitionFirstObservation
	case prev.Available == cur.Available:
		return TransitionUnchanged
	case cur.Available:
		return TransitionBecameAvailable
	default:
		return TransitionBecameUnavailable
	}
}

// Notifiable reports whether this transition should be dispatched to the
// configured notifiers. first-observation is opt-in.
func (t Transition) Notifiable(notifyOnFirst bool) bool {
	switch t {
	case TransitionBecameAvailable, TransitionBecameUnavailable:
		return true
	case TransitionFirstObservation:
		return notifyOnFirst
	default:
		return false
	}
}
