// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

/*
Package supervisor keeps the chat bot connected.

It has two parts: the supervised-restart state machine (BotSupervisor) and
the suture v4 tree that runs it alongside the status sampler.

# Restart Loop

BotSupervisor owns exactly one bot client at a time. Each connection attempt
publishes the client into the shared State, runs it until it returns, and
clears it again. Failures are classified at the bot boundary:

  - Transient (network errors, gateway disconnects, panics, a Run that
    returns without shutdown): the retry count increases and the loop
    sleeps min(base*2^min(n, 8), 300s) with +/-20% jitter.
  - Fatal (bot.Error: import failure, missing token, invalid token,
    configuration error, unknown): connection attempts stop. After the
    fatal state is older than the recovery threshold (600s) a preflight
    re-acquires the client if needed, re-reads the token and performs a
    login-then-close handshake. Success clears the fatal state and the
    retry count together; failure is logged and retried every
    preflight interval.

All sleeps are taken in poll-interval steps (1s) so shutdown is observed
promptly. The loop never exits on its own.

# Shared State

State is passed explicitly to the loop and the status reporter. It has two
independent locks, one for the fatal descriptor and retry count and one for
the client handle, and no method holds both.

# Supervisor Tree

	heartbeat
	├── bot-layer
	│   └── BotSupervisor
	└── reporter-layer
	    └── StatusSamplerService

Suture restarts a service whose Serve panics or returns; State survives the
restart. Tree events are logged through sutureslog and the zerolog-backed
slog handler from the logging package.

# Usage

	state := supervisor.NewState()
	loop := supervisor.NewBotSupervisor(state, provider, tokens, loopCfg)

	tree, _ := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor-tree"), treeCfg)
	tree.AddBotService(loop)
	errCh := tree.ServeBackground(ctx)
*/
package supervisor
