// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strings"
)

// Deployment sanity checker: run it in the container before wiring swgrab
// into a scheduler, so a bad env fails loudly instead of on the first tick.
func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	target := strings.TrimSpace(os.Getenv("TARGET"))
	backend := strings.ToLower(strings.TrimSpace(os.Getenv("STATE_BACKEND")))
	statePath := strings.TrimSpace(os.Getenv("STATE_PATH"))
	db := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	slack := strings.TrimSpace(os.Getenv("NOTIFY_SLACK_WEBHOOK"))
	discord := strings.TrimSpace(os.Getenv("NOTIFY_DISCORD_WEBHOOK"))

	if target == "" {
		fail("TARGET is empty (nothing to grab).")
	}
	if !strings.Contains(target, "://") {
		fail("TARGET has no scheme; use https://host or dns://host.")
	}
	ok("TARGET=" + target)

	switch backend {
	case "", "file", "sqlite":
		if statePath == "" {
			warn("STATE_PATH empty; default state/swgrab.json will be used.")
		} else {
			ok("STATE_PATH=" + statePath)
		}
	case "postgres":
		if db == "" {
			fail("STATE_BACKEND=postgres but DATABASE_URL is empty.")
		}
		ok("DATABASE_URL present")
	default:
		fail("STATE_BACKEND=" + backend + " is not one of file, sqlite, postgres.")
	}

	if slack == "" && discord == "" {
		warn("no NOTIFY_* webhook set — transitions will only be logged.")
	} else {
		if slack != "" {
			ok("NOTIFY_SLACK_WEBHOOK present")
		}
		if discord != "" {
			ok("NOTIFY_DISCORD_WEBHOOK present")
		}
	}

	ok("preflight passed")
}
