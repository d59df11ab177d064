package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gimmir/un1t-mobile-app-sub000/internal/cache"
	"github.com/Gimmir/un1t-mobile-app-sub000/internal/config"
	"github.com/Gimmir/un1t-mobile-app-sub000/internal/logger"
	"github.com/Gimmir/un1t-mobile-app-sub000/internal/rest"
	"github.com/Gimmir/un1t-mobile-app-sub000/internal/service"
	"github.com/Gimmir/un1t-mobile-app-sub000/internal/types"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logger.L.Fatalw("failed to load configuration", "error", err)
	}

	log, err := logger.NewLogger(cfg)
	if err != nil {
		logger.L.Fatalw("failed to initialize logger", "error", err)
	}

	client := rest.NewClient(cfg, log)
	snapshots := cache.NewInMemoryCache(cfg)

	schedule := service.NewScheduleService(
		rest.NewEventRepository(client),
		rest.NewBookingRepository(client),
		snapshots,
		cfg,
		log,
	)
	membership := service.NewMembershipService(
		rest.NewBillingRepository(client),
		snapshots,
		cfg,
		log,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Session.UserID != "" {
		ctx = types.SetUserID(ctx, cfg.Session.UserID)
	}
	if cfg.Session.StudioID != "" {
		ctx = types.SetStudioID(ctx, cfg.Session.StudioID)
	}

	poller := service.NewPoller(cfg, log, func(ctx context.Context) error {
		now := time.Now()

		events, err := schedule.ListEvents(ctx, now)
		if err != nil {
			return err
		}
		view, err := membership.Refresh(ctx)
		if err != nil {
			return err
		}

		log.Infow("sync complete",
			"events", len(events),
			"credits_available", view.Entitlement.Available,
			"unlimited", view.Entitlement.Unlimited,
			"plans", len(view.Plans),
		)
		return nil
	})

	go poller.Run(ctx)
	log.Infow("sync agent started", "poll_interval", cfg.Sync.PollInterval)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Infow("shutting down")
	cancel()
}
