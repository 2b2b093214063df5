package probe

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/hamed0406/swgrab/internal/domain"
)

// DNSChecker observes whether a name resolves to at least one address.
// NXDOMAIN and empty answers are observations of unavailability; resolver
// failures (SERVFAIL, timeout) are fetch errors.
type DNSChecker struct {
	Resolver *net.Resolver
	Timeout  time.Duration
}

func NewDNSChecker(timeout time.Duration) *DNSChecker {
	return &DNSChecker{
		Resolver: &net.Resolver{}, // OS resolver
		Timeout:  timeout,
	}
}

func (d *DNSChecker) Check(ctx context.Context, target string) (domain.ObservedState, error) {
	host := strings.TrimSpace(strings.TrimPrefix(target, "dns://"))
	if host == "" || strings.Contains(host, "://") {
		return domain.ObservedState{}, errors.New("invalid dns target: " + target)
	}

	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	start := time.Now()
	ips, err := d.Resolver.LookupIP(ctx, "ip", host)
	latency := time.Since(start).Seconds() * 1000

	if err != nil {
		var de *net.DNSError
		if errors.As(err, &de) && de.IsNotFound {
			return domain.ObservedState{
				Available: false,
				LatencyMS: latency,
				Detail:    "NXDOMAIN",
				CheckedAt: time.Now().UTC(),
			}, nil
		}
		return domain.ObservedState{}, err
	}

	detail := "NO_A_RECORD"
	if len(ips) > 0 {
		detail = ips[0].String()
	}
	return domain.ObservedState{
		Available: len(ips) > 0,
		LatencyMS: latency,
		Detail:    detail,
		CheckedAt: time.Now().UTC(),
	}, nil
}
