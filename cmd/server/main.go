// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/heartbeat/internal/api"
	"github.com/tomtom215/heartbeat/internal/clock"
	"github.com/tomtom215/heartbeat/internal/config"
	"github.com/tomtom215/heartbeat/internal/logging"
	"github.com/tomtom215/heartbeat/internal/supervisor"
	"github.com/tomtom215/heartbeat/internal/supervisor/services"
	ws "github.com/tomtom215/heartbeat/internal/websocket"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Bool("token_configured", cfg.Bot.Token != "").
		Str("token_file", cfg.Bot.TokenFile).
		Dur("recovery_threshold", cfg.Supervisor.RecoveryThreshold).
		Dur("grace_period", cfg.Server.GracePeriod).
		Msg("Starting Heartbeat with supervisor tree")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	state := supervisor.NewState()
	tracker := api.NewStatusTracker(state, clock.Real{})

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor-tree"), treeConfig(cfg))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddBotService(newBotSupervisor(cfg, state))
	tree.AddReporterService(services.NewStatusSamplerService(tracker, cfg.Supervisor.SampleInterval, clock.Real{}))

	// Dashboards on /ws receive every status change.
	hub := ws.NewHub()
	tree.AddReporterService(hub)
	tracker.OnChange(func(s api.Status) {
		hub.BroadcastJSON(ws.MessageTypeStatus, s)
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Give the first connection attempt a head start before serving status.
	select {
	case <-ctx.Done():
	case <-time.After(cfg.Supervisor.StartupDelay):
	}

	server := newHTTPServer(cfg, tracker, hub)
	if ctx.Err() == nil {
		logging.Info().Str("addr", server.Addr).Msg("Starting HTTP server")
		httpService := services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout)
		if err := httpService.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
			// Exits with status 1.
			logging.Fatal().Err(err).Str("addr", server.Addr).Msg("HTTP server failed")
		}
	}

	cancel()
	logging.Info().Msg("Waiting for supervisor tree to stop...")
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Heartbeat stopped")
}
