// Package retry runs an operation with bounded exponential backoff.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy bounds a retry loop. Zero fields fall back to DefaultPolicy values.
type Policy struct {
	MaxAttempts int
	Initial     time.Duration
	Max         time.Duration
	Multiplier  float64
}

// DefaultPolicy is used for read-after-write lookups such as the profile
// read-back after sign-in.
var DefaultPolicy = Policy{
	MaxAttempts: 5,
	Initial:     100 * time.Millisecond,
	Max:         time.Second,
	Multiplier:  2,
}

// Permanent marks err as not worth retrying. Do returns the wrapped error.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return backoff.Permanent(err)
}

// newTimer is replaced in tests. nil selects the library's real timer.
var newTimer func() backoff.Timer

func (p Policy) withDefaults() Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultPolicy.MaxAttempts
	}
	if p.Initial <= 0 {
		p.Initial = DefaultPolicy.Initial
	}
	if p.Max <= 0 {
		p.Max = DefaultPolicy.Max
	}
	if p.Multiplier < 1 {
		p.Multiplier = DefaultPolicy.Multiplier
	}
	return p
}

// BackOff builds the schedule for p: no jitter, no elapsed-time limit,
// MaxAttempts-1 waits, stopped early by ctx.
func (p Policy) BackOff(ctx context.Context) backoff.BackOff {
	p = p.withDefaults()
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.Initial
	exp.MaxInterval = p.Max
	exp.Multiplier = p.Multiplier
	exp.RandomizationFactor = 0
	exp.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(p.MaxAttempts-1)), ctx)
}

// Do calls fn until it succeeds, returns a Permanent error, ctx is done or
// the attempt cap is reached. The last error is returned.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	op := func() error { return fn(ctx) }
	var timer backoff.Timer
	if newTimer != nil {
		timer = newTimer()
	}
	return backoff.RetryNotifyWithTimer(op, p.BackOff(ctx), nil, timer)
}
