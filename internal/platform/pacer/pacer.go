package pacer

import (
	"context"
	"time"
)

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Pacer enforces a fixed minimum delay between sequential upstream calls.
// The bulk pipeline waits on it after each successful row so the provider's
// modest call-rate tolerance is respected.
type Pacer struct {
	interval time.Duration
	sleep    SleepFunc
}

// Option customizes a Pacer.
type Option func(*Pacer)

// WithSleep replaces the blocking sleep. Tests use this to assert pacing
// without real wall-clock waits.
func WithSleep(sleep SleepFunc) Option {
	return func(p *Pacer) {
		p.sleep = sleep
	}
}

// New creates a Pacer with the given interval between calls.
func New(interval time.Duration, opts ...Option) *Pacer {
	p := &Pacer{
		interval: interval,
		sleep:    sleepWithContext,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Interval returns the configured delay.
func (p *Pacer) Interval() time.Duration {
	return p.interval
}

// Wait blocks for the pacing interval. It returns early with ctx.Err() when
// the context is cancelled, which is the cooperative abort point between
// bulk rows.
func (p *Pacer) Wait(ctx context.Context) error {
	if p.interval <= 0 {
		return ctx.Err()
	}
	return p.sleep(ctx, p.interval)
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
