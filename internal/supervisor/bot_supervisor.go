// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

package supervisor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/heartbeat/internal/bot"
	"github.com/tomtom215/heartbeat/internal/clock"
	"github.com/tomtom215/heartbeat/internal/logging"
	"github.com/tomtom215/heartbeat/internal/metrics"
)

// errClosedWithoutError stands in for a Run that returned nil before shutdown.
var errClosedWithoutError = errors.New("connection closed without error")

// panicError is a recovered panic from a connection attempt.
type panicError struct {
	value interface{}
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic during connection attempt: %v", e.value)
}

// LoopConfig tunes BotSupervisor.
type LoopConfig struct {
	Retry             RetryConfig
	RecoveryThreshold time.Duration
	PreflightInterval time.Duration
	PreflightTimeout  time.Duration
	PollInterval      time.Duration
	FatalLogInterval  time.Duration
}

// DefaultLoopConfig returns the production defaults.
func DefaultLoopConfig() LoopConfig {
	return LoopConfig{
		Retry:             DefaultRetryConfig(),
		RecoveryThreshold: 600 * time.Second,
		PreflightInterval: 30 * time.Second,
		PreflightTimeout:  30 * time.Second,
		PollInterval:      time.Second,
		FatalLogInterval:  30 * time.Second,
	}
}

// Option configures a BotSupervisor.
type Option func(*BotSupervisor)

// WithClock replaces the wall clock, for tests.
func WithClock(c clock.Clock) Option {
	return func(b *BotSupervisor) { b.clock = c }
}

// WithLogger replaces the component logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func WithLogger(l zerolog.Logger) Option {
	return func(b *BotSupervisor) { b.logger = l }
}

// BotSupervisor owns the lifecycle of one bot client. It implements
// suture.Service.
//
// State machine:
//
//	STARTING -> CONNECTING -> CONNECTED -> DISCONNECTED -> CONNECTING
//	                                    \-> FATAL -> RECOVERING -> CONNECTING
//
// Transient failures back off exponentially. Fatal failures stop all
// connection attempts until a recovery preflight succeeds, which is tried
// once the fatal condition is older than RecoveryThreshold and then every
// PreflightInterval. Only context cancellation ends the loop.
type BotSupervisor struct {
	state    *State
	provider bot.Provider
	tokens   bot.TokenSource
	cfg      LoopConfig
	clock    clock.Clock
	logger   zerolog.Logger

	// Owned by the loop goroutine.
	factory       bot.Factory
	retry         *RetryPolicy
	lastPreflight time.Time
	fatalLog      *rate.Limiter
}

// NewBotSupervisor creates the restart loop.
func NewBotSupervisor(state *State, provider bot.Provider, tokens bot.TokenSource, cfg LoopConfig, opts ...Option) *BotSupervisor {
	def := DefaultLoopConfig()
	if cfg.RecoveryThreshold <= 0 {
		cfg.RecoveryThreshold = def.RecoveryThreshold
	}
	if cfg.PreflightInterval <= 0 {
		cfg.PreflightInterval = def.PreflightInterval
	}
	if cfg.PreflightTimeout <= 0 {
		cfg.PreflightTimeout = def.PreflightTimeout
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = def.PollInterval
	}
	if cfg.FatalLogInterval <= 0 {
		cfg.FatalLogInterval = def.FatalLogInterval
	}

	b := &BotSupervisor{
		state:    state,
		provider: provider,
		tokens:   tokens,
		cfg:      cfg,
		clock:    clock.Real{},
		logger:   logging.WithComponent("supervisor"),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.retry = NewRetryPolicy(cfg.Retry, b.clock)
	b.fatalLog = rate.NewLimiter(rate.Every(cfg.FatalLogInterval), 1)
	return b
}

// String implements fmt.Stringer for suture logging.
func (b *BotSupervisor) String() string {
	return "bot-supervisor"
}

// Serve runs the loop until ctx is canceled. It implements suture.Service.
func (b *BotSupervisor) Serve(ctx context.Context) error {
	b.logger.Info().Msg("Bot supervisor starting")

	if _, fatal := b.state.Fatal(); !fatal {
		b.start()
	}

	for ctx.Err() == nil {
		if fe, fatal := b.state.Fatal(); fatal {
			b.waitFatal(ctx, fe)
			continue
		}
		b.attempt(ctx)
	}

	b.state.ClearHandle()
	b.logger.Info().Msg("Bot supervisor stopped")
	return nil
}

// start acquires the client capability and checks the credential.
func (b *BotSupervisor) start() {
	if err := b.acquire(); err != nil {
		b.enterFatal(err)
		return
	}
	if _, err := b.tokens.Token(); err != nil {
		b.enterFatal(err)
	}
}

func (b *BotSupervisor) acquire() error {
	f, err := b.provider.Acquire()
	if err != nil {
		if !bot.IsFatal(err) {
			err = bot.ImportFailure(err)
		}
		return err
	}
	b.factory = f
	return nil
}

// attempt runs one connection attempt and handles its outcome.
func (b *BotSupervisor) attempt(ctx context.Context) {
	if b.factory == nil {
		if err := b.acquire(); err != nil {
			b.enterFatal(err)
			return
		}
	}

	token, err := b.tokens.Token()
	if err != nil {
		b.enterFatal(err)
		return
	}

	client, err := b.factory.New(b.sessionReady)
	if err != nil {
		b.handleFailure(ctx, err)
		return
	}

	log := b.logger.With().
		Str("correlation_id", logging.GenerateCorrelationID()).
		Int("retry_count", b.state.RetryCount()).
		Logger()
	log.Info().Msg("Connecting to chat backend")
	metrics.RecordConnectionAttempt()

	runErr := b.run(ctx, client, token)

	// The published counter was already reset by sessionReady. The backoff
	// schedule belongs to this goroutine, so it is rewound here.
	if client.Connected() {
		b.retry.Reset()
	}

	if ctx.Err() != nil {
		log.Info().Msg("Connection attempt ended by shutdown")
		return
	}
	if runErr == nil {
		runErr = errClosedWithoutError
	}
	log.Warn().Err(runErr).Bool("reached_ready", client.Connected()).Msg("Connection attempt ended")
	b.handleFailure(ctx, runErr)
}

// sessionReady runs on the client's event goroutine whenever a session
// reaches READY. It must not touch the backoff policy.
func (b *BotSupervisor) sessionReady() {
	if n := b.state.RetryCount(); n > 0 {
		b.logger.Info().Int("previous_retry_count", n).Msg("Session ready, retry count reset")
	}
	b.state.ResetRetry()
	metrics.ResetRetryCount()
}

// run publishes client as the current handle for the duration of Run.
// The handle is cleared before run returns, including after a panic.
func (b *BotSupervisor) run(ctx context.Context, client bot.Client, token string) (err error) {
	b.state.SetHandle(client)
	defer b.state.ClearHandle()
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r}
		}
	}()
	return client.Run(ctx, token)
}

// handleFailure routes err to the fatal state or to a backoff sleep.
func (b *BotSupervisor) handleFailure(ctx context.Context, err error) {
	if bot.IsFatal(err) {
		b.enterFatal(err)
		return
	}

	class := "transient"
	var pe *panicError
	if errors.As(err, &pe) {
		class = "panic"
	}

	n := b.state.IncrementRetry()
	delay := b.retry.Next()
	metrics.RecordConnectionFailure(class)
	metrics.RecordBackoff(delay, n)

	b.logger.Warn().
		Err(err).
		Str("class", class).
		Int("retry_count", n).
		Dur("delay", delay).
		Msg("Transient failure, retrying after backoff")

	b.sleep(ctx, delay)
}

// enterFatal records err as the fatal condition. The handle is cleared first.
func (b *BotSupervisor) enterFatal(err error) {
	kind, ok := bot.KindOf(err)
	if !ok {
		kind = bot.KindUnknown
	}

	b.state.ClearHandle()
	now := b.clock.Now()
	b.state.SetFatal(kind, err.Error(), now)
	b.lastPreflight = time.Time{}

	metrics.RecordConnectionFailure(kind.Label())
	metrics.SetFatalState(kind.Label())

	b.logger.Error().
		Err(err).
		Str("kind", kind.Label()).
		Dur("recovery_in", b.cfg.RecoveryThreshold).
		Msg("Fatal error, connection attempts suspended")
}

// waitFatal either runs a due recovery preflight or sleeps one poll interval.
func (b *BotSupervisor) waitFatal(ctx context.Context, fe FatalError) {
	now := b.clock.Now()
	elapsed := now.Sub(fe.Since)

	if elapsed > b.cfg.RecoveryThreshold &&
		(b.lastPreflight.IsZero() || now.Sub(b.lastPreflight) >= b.cfg.PreflightInterval) {
		b.lastPreflight = now
		b.recoverFrom(ctx, fe)
		return
	}

	if b.fatalLog.AllowN(now, 1) {
		remaining := b.cfg.RecoveryThreshold - elapsed
		if remaining < 0 {
			remaining = 0
		}
		b.logger.Warn().
			Str("kind", fe.Kind.Label()).
			Dur("fatal_for", elapsed).
			Dur("recovery_in", remaining).
			Msg("Waiting for recovery window")
	}

	b.sleep(ctx, b.cfg.PollInterval)
}

// recoverFrom runs the preflight: re-acquire if needed, re-check the
// credential, then a login-then-close handshake. Only a successful
// handshake clears the fatal state.
func (b *BotSupervisor) recoverFrom(ctx context.Context, fe FatalError) {
	b.logger.Info().
		Str("kind", fe.Kind.Label()).
		Dur("fatal_for", b.clock.Now().Sub(fe.Since)).
		Msg("Attempting automatic recovery")

	if b.factory == nil || fe.Kind == bot.KindImportFailure {
		if err := b.acquire(); err != nil {
			b.preflightFailed(err, "acquire")
			return
		}
	}

	token, err := b.tokens.Token()
	if err != nil {
		b.preflightFailed(err, "token")
		return
	}

	pctx, cancel := context.WithTimeout(ctx, b.cfg.PreflightTimeout)
	err = b.factory.Preflight(pctx, token)
	cancel()
	if err != nil {
		b.preflightFailed(err, "handshake")
		return
	}

	b.state.ClearFatal()
	b.retry.Reset()
	b.lastPreflight = time.Time{}
	metrics.RecordPreflight(true)
	metrics.SetFatalState("")
	metrics.ResetRetryCount()

	b.logger.Info().Msg("Recovery preflight succeeded, resuming connection attempts")
}

func (b *BotSupervisor) preflightFailed(err error, stage string) {
	metrics.RecordPreflight(false)
	b.logger.Warn().
		Err(err).
		Str("stage", stage).
		Dur("next_in", b.cfg.PreflightInterval).
		Msg("Recovery preflight failed, staying in fatal state")
}

// sleep waits d in PollInterval steps. It returns false if ctx was canceled.
func (b *BotSupervisor) sleep(ctx context.Context, d time.Duration) bool {
	for d > 0 {
		step := d
		if step > b.cfg.PollInterval {
			step = b.cfg.PollInterval
		}
		select {
		case <-ctx.Done():
			return false
		case <-b.clock.After(step):
		}
		d -= step
	}
	return ctx.Err() == nil
}
