package service

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/Gimmir/un1t-mobile-app-sub000/internal/config"
	"github.com/Gimmir/un1t-mobile-app-sub000/internal/logger"
)

// Poller re-runs a refresh function on a fixed interval and on demand when
// the app is foregrounded. After a failure the next attempt is delayed by
// exponential backoff; a success resets it.
type Poller struct {
	refresh    func(ctx context.Context) error
	interval   time.Duration
	foreground chan struct{}
	logger     *logger.Logger
}

func NewPoller(cfg *config.Configuration, log *logger.Logger, refresh func(ctx context.Context) error) *Poller {
	return &Poller{
		refresh:    refresh,
		interval:   cfg.Sync.PollInterval,
		foreground: make(chan struct{}, 1),
		logger:     log,
	}
}

// Foreground requests an immediate refresh outside the regular interval.
// Multiple signals before the poller wakes coalesce into one refresh.
func (p *Poller) Foreground() {
	select {
	case p.foreground <- struct{}{}:
	default:
	}
}

// Run polls until the context is cancelled. The first refresh happens
// immediately.
func (p *Poller) Run(ctx context.Context) {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 0 // keep retrying for the lifetime of the poller
	b.MaxInterval = p.interval

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.attempt(ctx, b)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.attempt(ctx, b)
		case <-p.foreground:
			p.attempt(ctx, b)
		}
	}
}

func (p *Poller) attempt(ctx context.Context, b backoff.BackOff) {
	err := p.refresh(ctx)
	if err == nil {
		b.Reset()
		return
	}

	delay := b.NextBackOff()
	p.logger.Warnw("refresh failed, backing off", "error", err, "retry_in", delay)

	select {
	case <-ctx.Done():
		return
	case <-time.After(delay):
	}

	if err := p.refresh(ctx); err != nil {
		p.logger.Warnw("refresh retry failed", "error", err)
		return
	}
	b.Reset()
}
