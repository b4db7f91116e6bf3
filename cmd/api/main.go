package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"sellmate/config"
	"sellmate/db"
	"sellmate/funnel"
	"sellmate/logging"
	"sellmate/session"
	"sellmate/signup"
	"sellmate/web"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(os.Getenv("SELLMATE_CONFIG"))
	if err != nil {
		return err
	}

	logger := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	logger.Info("starting sellmate gateway", "addr", cfg.Server.Address)

	sessions, err := session.NewManager(cfg.Session.Secret, time.Duration(cfg.Session.TTLMinutes)*time.Minute)
	if err != nil {
		return err
	}

	gates := signup.NewRegistry(time.Duration(cfg.Signup.GateTTLMinutes)*time.Minute, logger)

	// The funnel is optional: without a database URL events are discarded.
	var recorder funnel.Recorder = funnel.Nop{}
	if cfg.Database.URL != "" {
		pool, err := db.NewPool(ctx, cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("funnel database: %w", err)
		}
		defer pool.Close()
		if err := funnel.Migrate(ctx, pool); err != nil {
			return err
		}
		recorder = funnel.NewAsync(funnel.NewPGRecorder(pool), logger)
		logger.Info("funnel recording enabled")
	}

	var auth web.Authenticator = web.PresumingAuthenticator{}
	if cfg.Auth.BackendURL != "" {
		auth = web.NewBackendAuthenticator(cfg.Auth.BackendURL)
		logger.Info("auth backend configured", "url", cfg.Auth.BackendURL)
	} else {
		logger.Warn("no auth backend configured; presuming submitted credentials")
	}

	server, err := web.New(web.Deps{
		Addr:     cfg.Server.Address,
		Logger:   logger,
		Sessions: sessions,
		Gates:    gates,
		Funnel:   recorder,
		Auth:     auth,
	})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(gctx)
	})
	g.Go(func() error {
		gates.Run(gctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("gateway: %w", err)
	}
	logger.Info("gateway stopped")
	return nil
}
