package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lox/pokertracker/cmd/pokertracker/shared"
	"github.com/lox/pokertracker/internal/server"
	"github.com/lox/pokertracker/internal/store"
)

// ServeCmd runs the web dashboard.
type ServeCmd struct {
	Config string `kong:"default='tracker.hcl',help='HCL configuration file'"`
	Addr   string `kong:"help='Override the configured listen address (host:port)'"`
	File   string `kong:"help='Override the configured hand log file'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *ServeCmd) Run() error {
	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if c.File != "" {
		cfg.Server.DataFile = c.File
	}
	if c.Debug {
		cfg.Server.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := shared.SetupStructuredLogger(shared.ParseLevel(cfg.Server.LogLevel))

	st := store.New(store.Config{Path: cfg.Server.DataFile}, logger)
	if err := st.Initialize(); err != nil {
		return err
	}

	srv, err := server.New(logger, st, cfg.Server)
	if err != nil {
		return err
	}

	addr := cfg.ListenAddress()
	if c.Addr != "" {
		addr = c.Addr
	}

	logger.Info().
		Str("address", addr).
		Str("data_file", cfg.Server.DataFile).
		Int("recent_hands", cfg.Server.RecentHands).
		Msg("Starting poker tracker dashboard")

	ctx := shared.SetupSignalHandlerWithLogger(logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info().Msg("Shutting down dashboard...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
