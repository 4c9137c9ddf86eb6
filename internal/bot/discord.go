// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

package bot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/tomtom215/heartbeat/internal/logging"
)

// Gateway close codes that cannot be fixed by reconnecting.
const (
	closeAuthenticationFailed = 4004
	closeInvalidShard         = 4010
	closeShardingRequired     = 4011
	closeInvalidAPIVersion    = 4012
	closeInvalidIntents       = 4013
	closeDisallowedIntents    = 4014
)

// DiscordConfig configures the discordgo-backed client.
type DiscordConfig struct {
	Intents     int
	HTTPTimeout time.Duration

	// StableAfter is how long a resumed session must stay up before another
	// drop is resumed in place instead of ending the attempt. Default 30s.
	StableAfter time.Duration
}

// DiscordProvider acquires a discordgo client factory.
type DiscordProvider struct {
	Config DiscordConfig
}

// NewDiscordProvider returns a provider for cfg.
func NewDiscordProvider(cfg DiscordConfig) *DiscordProvider {
	return &DiscordProvider{Config: cfg}
}

// Acquire validates the configuration and returns a factory.
func (p *DiscordProvider) Acquire() (Factory, error) {
	if p.Config.Intents < 0 {
		return nil, ImportFailure(fmt.Errorf("invalid gateway intents %d", p.Config.Intents))
	}
	timeout := p.Config.HTTPTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	stable := p.Config.StableAfter
	if stable <= 0 {
		stable = 30 * time.Second
	}
	bridgeOnce.Do(bridgeDiscordLogs)
	return &discordFactory{
		intents:     discordgo.Intent(p.Config.Intents),
		http:        &http.Client{Timeout: timeout},
		stableAfter: stable,
	}, nil
}

var bridgeOnce sync.Once

// bridgeDiscordLogs routes discordgo's own log lines into zerolog.
func bridgeDiscordLogs() {
	discordgo.Logger = func(msgL, _ int, format string, a ...interface{}) {
		log := logging.WithComponent("discordgo")
		var ev *zerolog.Event
		switch msgL {
		case discordgo.LogError:
			ev = log.Error()
		case discordgo.LogWarning:
			ev = log.Warn()
		case discordgo.LogInformational:
			ev = log.Info()
		default:
			ev = log.Debug()
		}
		ev.Msg(fmt.Sprintf(format, a...))
	}
}

type discordFactory struct {
	intents     discordgo.Intent
	http        *http.Client
	stableAfter time.Duration
}

func (f *discordFactory) newSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, ConfigurationError(err)
	}
	s.Client = f.http
	s.Identify.Intents = f.intents
	s.ShouldReconnectOnError = false
	s.StateEnabled = true
	s.LogLevel = discordgo.LogWarning
	return s, nil
}

// New implements Factory.
func (f *discordFactory) New(onReady func()) (Client, error) {
	return &discordClient{factory: f, onReady: onReady}, nil
}

// Preflight logs in over REST and discards the result, which validates the
// credential without opening a gateway session.
func (f *discordFactory) Preflight(ctx context.Context, token string) error {
	s, err := f.newSession(token)
	if err != nil {
		return err
	}
	defer s.Close()

	if _, err := s.User("@me", discordgo.WithContext(ctx)); err != nil {
		return classifyDiscordError(logging.RedactToken(err.Error(), token), err)
	}
	return nil
}

// discordClient is a single gateway connection attempt.
type discordClient struct {
	factory *discordFactory
	onReady func()

	mu      sync.Mutex
	session *discordgo.Session

	ready     atomic.Bool
	connected atomic.Bool
	name      atomic.Value // string
}

// Run opens the gateway session and keeps it alive until ctx is canceled.
// A dropped session is resumed in place; every failed open is classified so
// gateway close codes such as 4004 surface as fatal errors. A resumed session
// that drops again within StableAfter ends the attempt with a transient error.
func (c *discordClient) Run(ctx context.Context, token string) error {
	s, err := c.factory.newSession(token)
	if err != nil {
		return err
	}

	dropped := make(chan struct{}, 1)
	s.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		if r.User != nil {
			c.name.Store(r.User.Username)
		}
		c.ready.Store(true)
		c.connected.Store(true)
		if c.onReady != nil {
			c.onReady()
		}
	})
	s.AddHandler(func(_ *discordgo.Session, _ *discordgo.Resumed) {
		c.ready.Store(true)
	})
	s.AddHandler(func(_ *discordgo.Session, _ *discordgo.Disconnect) {
		c.ready.Store(false)
		select {
		case dropped <- struct{}{}:
		default:
		}
	})

	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
	defer func() {
		c.ready.Store(false)
		c.mu.Lock()
		c.session = nil
		c.mu.Unlock()
	}()

	if err := s.Open(); err != nil {
		return classifyDiscordError(logging.RedactToken(err.Error(), token), err)
	}

	resumed := false
	for {
		opened := time.Now()
		select {
		case <-ctx.Done():
			if err := s.Close(); err != nil {
				logging.Warn().Err(err).Msg("Error closing gateway session")
			}
			return nil
		case <-dropped:
		}
		if ctx.Err() != nil {
			return nil
		}

		up := time.Since(opened)
		if resumed && up < c.factory.stableAfter {
			return fmt.Errorf("gateway connection dropped again %s after resuming", up.Round(time.Millisecond))
		}
		logging.Warn().Dur("session_uptime", up).Msg("Gateway connection dropped, resuming session")

		if err := s.Open(); err != nil && !errors.Is(err, discordgo.ErrWSAlreadyOpen) {
			return classifyDiscordError(logging.RedactToken(err.Error(), token), err)
		}
		resumed = true
	}
}

func (c *discordClient) IsReady() bool {
	return c.ready.Load()
}

func (c *discordClient) Connected() bool {
	return c.connected.Load()
}

func (c *discordClient) DisplayName() string {
	if v, ok := c.name.Load().(string); ok {
		return v
	}
	return ""
}

func (c *discordClient) GuildCount() int {
	c.mu.Lock()
	s := c.session
	c.mu.Unlock()
	if s == nil || s.State == nil {
		return 0
	}
	s.State.RLock()
	defer s.State.RUnlock()
	return len(s.State.Guilds)
}

// classifyDiscordError maps discordgo and gateway errors onto fatal kinds.
// msg is the already redacted error text; errors without a fatal kind are
// returned as plain transient errors.
func classifyDiscordError(msg string, err error) error {
	plain := errors.New(msg)

	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) {
		switch closeErr.Code {
		case closeAuthenticationFailed:
			return InvalidToken(plain)
		case closeInvalidShard, closeShardingRequired, closeInvalidAPIVersion,
			closeInvalidIntents, closeDisallowedIntents:
			return ConfigurationError(plain)
		}
		return fmt.Errorf("gateway closed: %w", plain)
	}

	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		if restErr.Response.StatusCode == http.StatusUnauthorized {
			return InvalidToken(plain)
		}
		return fmt.Errorf("rest request failed: %w", plain)
	}
	return plain
}
