package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gimmir/un1t-mobile-app-sub000/internal/config"
	"github.com/Gimmir/un1t-mobile-app-sub000/internal/logger"
)

func TestPollerForegroundTriggersRefresh(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Sync.PollInterval = time.Hour // only foreground signals fire

	log, err := logger.NewLogger(cfg)
	require.NoError(t, err)

	var calls atomic.Int32
	p := NewPoller(cfg, log, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 10*time.Millisecond)

	p.Foreground()
	require.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 10*time.Millisecond)
}

func TestPollerCoalescesForegroundSignals(t *testing.T) {
	cfg := config.GetDefaultConfig()
	p := NewPoller(cfg, nil, nil)

	p.Foreground()
	p.Foreground()
	p.Foreground()

	assert.Len(t, p.foreground, 1)
}
