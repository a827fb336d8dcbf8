// Package ratelimit is a fixed-window request counter keyed by caller identity.
//
// Each key gets a window that opens on its first request and lasts
// Policy.Window. Up to Policy.MaxRequests calls are allowed inside the window;
// the rest are denied until the window's reset time passes, at which point the
// next call opens a fresh window. Bursts of up to 2x MaxRequests are possible
// across a window boundary.
//
// The in-memory store is per process. Running several instances multiplies the
// effective limit by the instance count unless the Redis store is used.
package ratelimit

import (
	"context"
	"math"
	"time"
)

// ReapInterval is how often expired in-memory windows are swept.
const ReapInterval = 5 * time.Minute

// Policy is the static limit for one endpoint class.
type Policy struct {
	Name        string
	MaxRequests int
	Window      time.Duration
}

var (
	Authenticated = Policy{Name: "authenticated", MaxRequests: 60, Window: time.Minute}
	TaskCreate    = Policy{Name: "task_create", MaxRequests: 100, Window: time.Hour}
	IncomeEntry   = Policy{Name: "income_entry", MaxRequests: 50, Window: time.Hour}
	Signup        = Policy{Name: "signup", MaxRequests: 5, Window: time.Hour}
)

// Result is the outcome of one CheckAndIncrement call.
type Result struct {
	Allowed   bool
	Remaining int
	ResetTime time.Time
}

// RetryAfter is the whole number of seconds until ResetTime, never negative.
func (r Result) RetryAfter(now time.Time) int {
	d := r.ResetTime.Sub(now)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Seconds()))
}

// Store records a request against key and decides whether it is allowed.
// Implementations must make the read-check-increment for a single key atomic
// with respect to concurrent callers.
type Store interface {
	CheckAndIncrement(ctx context.Context, key string, p Policy) (Result, error)
}

// Key derives the identity part of a limiter key. The authenticated user wins;
// the network address is only used when there is no user.
func Key(userID, ip string) string {
	if userID != "" {
		return "user:" + userID
	}
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip
}

// StoreKey namespaces an identity key by policy so endpoint classes keep
// separate counters.
func StoreKey(p Policy, key string) string {
	return p.Name + ":" + key
}
