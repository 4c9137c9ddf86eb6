// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

package main

import (
	"net/http"

	"github.com/tomtom215/heartbeat/internal/api"
	"github.com/tomtom215/heartbeat/internal/bot"
	"github.com/tomtom215/heartbeat/internal/config"
	"github.com/tomtom215/heartbeat/internal/supervisor"
	ws "github.com/tomtom215/heartbeat/internal/websocket"
)

func treeConfig(cfg *config.Config) supervisor.TreeConfig {
	return supervisor.TreeConfig{
		FailureThreshold: cfg.Tree.FailureThreshold,
		FailureDecay:     cfg.Tree.FailureDecay,
		FailureBackoff:   cfg.Tree.FailureBackoff,
		ShutdownTimeout:  cfg.Tree.ShutdownTimeout,
	}
}

func loopConfig(cfg *config.Config) supervisor.LoopConfig {
	return supervisor.LoopConfig{
		Retry: supervisor.RetryConfig{
			BaseDelay:   cfg.Supervisor.BaseDelay,
			MaxDelay:    cfg.Supervisor.MaxDelay,
			MaxExponent: cfg.Supervisor.MaxExponent,
			Jitter:      cfg.Supervisor.Jitter,
		},
		RecoveryThreshold: cfg.Supervisor.RecoveryThreshold,
		PreflightInterval: cfg.Supervisor.PreflightInterval,
		PreflightTimeout:  cfg.Bot.PreflightTimeout,
		PollInterval:      cfg.Supervisor.PollInterval,
		FatalLogInterval:  cfg.Supervisor.FatalLogInterval,
	}
}

// newBotSupervisor wires the discordgo backend. The token file, when set,
// is re-read on every credential check.
func newBotSupervisor(cfg *config.Config, state *supervisor.State) *supervisor.BotSupervisor {
	provider := bot.NewDiscordProvider(bot.DiscordConfig{
		Intents:     cfg.Bot.Intents,
		HTTPTimeout: cfg.Bot.PreflightTimeout,
	})
	tokens := bot.FileTokenSource{File: cfg.Bot.TokenFile, Fallback: cfg.Bot.Token}
	return supervisor.NewBotSupervisor(state, provider, tokens, loopConfig(cfg))
}

func newHTTPServer(cfg *config.Config, tracker *api.StatusTracker, hub *ws.Hub) *http.Server {
	mwConfig := api.DefaultChiMiddlewareConfig()
	if len(cfg.Security.CORSOrigins) > 0 {
		mwConfig.CORSAllowedOrigins = cfg.Security.CORSOrigins
	}

	handler := api.NewHandler(tracker, api.HandlerConfig{
		GracePeriod: cfg.Server.GracePeriod,
	}, api.WithStatusStream(hub, mwConfig.CORSAllowedOrigins))
	mwConfig.RateLimitRequests = cfg.Security.RateLimitReqs
	mwConfig.RateLimitWindow = cfg.Security.RateLimitWindow
	mwConfig.RateLimitDisabled = cfg.Security.RateLimitDisabled

	router := api.NewRouter(handler, api.NewChiMiddleware(mwConfig))

	return &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
}
