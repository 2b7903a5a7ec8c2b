// Package pacing spaces out calls to rate-limited upstreams and retries
// failed calls with a fixed delay.
package pacing

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Gate blocks until the caller may proceed.
type Gate interface {
	Wait(ctx context.Context) error
}

// Interval is a Gate that lets one caller through per interval.
type Interval struct {
	limiter  *rate.Limiter
	interval time.Duration
}

// NewInterval returns a Gate that admits one call per d. The first call
// passes immediately; each later call waits until d has elapsed since the
// previous one. A non-positive d returns Nop.
func NewInterval(d time.Duration) Gate {
	if d <= 0 {
		return Nop()
	}
	return &Interval{
		limiter:  rate.NewLimiter(rate.Every(d), 1),
		interval: d,
	}
}

// Wait implements Gate.
func (g *Interval) Wait(ctx context.Context) error {
	return g.limiter.Wait(ctx)
}

// Interval returns the spacing enforced by the gate.
func (g *Interval) Interval() time.Duration {
	return g.interval
}

// Delay is a Gate that sleeps a fixed duration on every call, including the
// first, regardless of how much time passed since the previous one.
type Delay struct {
	delay time.Duration
}

// NewDelay returns a Gate that waits d on each call. A non-positive d
// returns Nop.
func NewDelay(d time.Duration) Gate {
	if d <= 0 {
		return Nop()
	}
	return &Delay{delay: d}
}

// Wait implements Gate.
func (g *Delay) Wait(ctx context.Context) error {
	t := time.NewTimer(g.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// New returns a fixed Delay gate when fixed is set and an Interval gate
// otherwise.
func New(d time.Duration, fixed bool) Gate {
	if fixed {
		return NewDelay(d)
	}
	return NewInterval(d)
}

type nopGate struct{}

func (nopGate) Wait(ctx context.Context) error {
	return ctx.Err()
}

// Nop returns a Gate that never waits.
func Nop() Gate {
	return nopGate{}
}
