// Package grab implements the fetch cycle: observe the target, compare
// against the last persisted observation, notify on a transition of
// interest, persist the new observation.
package grab

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/swgrab/internal/domain"
	"github.com/hamed0406/swgrab/internal/notify"
	"github.com/hamed0406/swgrab/internal/probe"
	"github.com/hamed0406/swgrab/internal/state"
)

type Policy struct {
	NotifyOnFirst bool
}

type Grabber struct {
	Logger   *zap.Logger
	Target   domain.Target
	Checker  probe.Checker
	Store    state.Store
	Notifier notify.Notifier
	Policy   Policy
}

// Outcome summarizes one completed run.
type Outcome struct {
	State      domain.ObservedState `json:"state"`
	Transition domain.Transition    `json:"transition"`
	Notified   bool                 `json:"notified"`
}

// Run performs one fetch cycle. On a fetch error the persisted state is left
// untouched and no notification is sent. The new observation is persisted
// whenever the fetch succeeded, including on an unchanged transition.
func (g *Grabber) Run(ctx context.Context) (Outcome, error) {
	obs, err := g.Checker.Check(ctx, g.Target.URL)
	if err != nil {
		return Outcome{}, &domain.FetchError{Err: err}
	}

	// load, classify, notify and save form one critical section: an
	// overlapping run must not classify against state we are replacing.
	if l, ok := g.Store.(state.Locker); ok {
		unlock, err := l.Lock(ctx)
		if err != nil {
			return Outcome{}, &domain.PersistenceError{Op: "lock", Err: err}
		}
		defer unlock()
	}

	prev, err := g.Store.Load(ctx, g.Target.Name)
	if err != nil {
		return Outcome{}, &domain.PersistenceError{Op: "load", Err: err}
	}

	out := Outcome{State: obs, Transition: domain.Classify(prev, obs)}

	if out.Transition.Notifiable(g.Policy.NotifyOnFirst) && g.Notifier != nil {
		title, text := g.message(out.Transition, obs)
		// best-effort: a broken transport must not block persisting
		if err := g.Notifier.Send(ctx, title, text); err != nil {
			g.Logger.Warn("notify_failed",
				zap.String("target", g.Target.Name),
				zap.String("transition", string(out.Transition)),
				zap.Error(err),
			)
		} else {
			out.Notified = true
		}
	}

	if err := g.Store.Save(ctx, g.Target.Name, obs); err != nil {
		return out, &domain.PersistenceError{Op: "save", Err: err}
	}

	g.Logger.Info("grab_done",
		zap.String("target", g.Target.Name),
		zap.String("url", g.Target.URL),
		zap.Bool("available", obs.Available),
		zap.Int("status", obs.HTTPStatus),
		zap.Float64("latency_ms", obs.LatencyMS),
		zap.String("transition", string(out.Transition)),
		zap.Bool("notified", out.Notified),
	)
	return out, nil
}

func (g *Grabber) message(tr domain.Transition, obs domain.ObservedState) (title, text string) {
	switch tr {
	case domain.TransitionBecameUnavailable:
		title = "🔴 Target DOWN: " + g.Target.Name
	case domain.TransitionBecameAvailable:
		title = "🟢 Target RECOVERED: " + g.Target.Name
	default:
		title = "👀 Target first seen: " + g.Target.Name
	}

	httpTxt := "n/a"
	if obs.HTTPStatus != 0 {
		httpTxt = fmt.Sprintf("%d", obs.HTTPStatus)
	}
	text = fmt.Sprintf(
		"URL: %s\nHTTP: %s\nLatency: %.0f ms\nDetail: %s\nChecked: %s",
		g.Target.URL, httpTxt, obs.LatencyMS, obs.Detail, obs.CheckedAt.Format(time.RFC3339),
	)
	return title, text
}
