// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

package api

import (
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/heartbeat/internal/clock"
	"github.com/tomtom215/heartbeat/internal/logging"
	"github.com/tomtom215/heartbeat/internal/metrics"
	"github.com/tomtom215/heartbeat/internal/supervisor"
)

// defaultBotName is shown while no ready client reports its own name.
const defaultBotName = "Chat Bot"

// lastUpdateLayout formats Status.LastUpdate.
const lastUpdateLayout = "15:04:05"

// Status is the presentation record served by /api/status.
type Status struct {
	Online          bool       `json:"online"`
	FirstOnlineTime *time.Time `json:"first_online_time"`
	OfflineSince    *time.Time `json:"offline_since"`
	BotName         string     `json:"bot_name"`
	Servers         int        `json:"servers"`
	LastUpdate      string     `json:"last_update"`
	ReconnectCount  int        `json:"reconnect_count"`
	RetryCount      int        `json:"retry_count"`
	FatalError      string     `json:"fatal_error,omitempty"`
}

// observation is what one refresh reads from the supervisor state.
type observation struct {
	fatal   supervisor.FatalError
	isFatal bool
	retry   int
	ready   bool
	name    string
	guilds  int
}

// StatusTracker derives Status from the supervisor state on demand.
//
// The tracker only reads the supervisor's fatal descriptor and client
// handle; it never triggers recovery. Its own fields (first online time,
// offline since, reconnect count, last update) live under a separate lock
// that is never held while the supervisor state is read.
type StatusTracker struct {
	state     *supervisor.State
	clock     clock.Clock
	startTime time.Time

	mu       sync.Mutex
	status   Status
	onChange func(Status)
}

// NewStatusTracker creates a tracker. The application start time is taken
// from clk.
func NewStatusTracker(state *supervisor.State, clk clock.Clock) *StatusTracker {
	if clk == nil {
		clk = clock.Real{}
	}
	return &StatusTracker{
		state:     state,
		clock:     clk,
		startTime: clk.Now(),
		status:    Status{BotName: defaultBotName},
	}
}

// StartTime returns the application start time.
func (t *StatusTracker) StartTime() time.Time {
	return t.startTime
}

// Now returns the tracker clock's current time.
func (t *StatusTracker) Now() time.Time {
	return t.clock.Now()
}

// Fatal reports the supervisor's current fatal condition.
func (t *StatusTracker) Fatal() (supervisor.FatalError, bool) {
	return t.state.Fatal()
}

// Refresh recomputes the status and returns a snapshot.
func (t *StatusTracker) Refresh() Status {
	return t.refreshAt(t.clock.Now())
}

// Sample recomputes the status at now. It implements services.Sampler.
func (t *StatusTracker) Sample(now time.Time) {
	t.refreshAt(now)
}

// OnChange registers fn to be called after a refresh that changed the
// status. LastUpdate alone does not count as a change. fn runs on the
// refreshing goroutine without the tracker lock held.
func (t *StatusTracker) OnChange(fn func(Status)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onChange = fn
}

// Snapshot returns the last computed status without refreshing.
func (t *StatusTracker) Snapshot() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

func (t *StatusTracker) refreshAt(now time.Time) Status {
	obs, err := t.observe()

	t.mu.Lock()
	prev := t.status
	if err != nil {
		logging.Error().Err(err).Msg("Status refresh failed, reporting bot offline")
		if t.status.Online {
			t.status.OfflineSince = timePtr(now)
		}
		t.status.Online = false
	} else {
		t.apply(obs, now)
	}

	var offlineFor time.Duration
	if !t.status.Online && t.status.OfflineSince != nil {
		offlineFor = now.Sub(*t.status.OfflineSince)
	}
	metrics.SetBotStatus(t.status.Online, t.status.Servers, offlineFor)

	current := t.status
	notify := t.onChange
	t.mu.Unlock()

	if notify != nil && !sameStatus(prev, current) {
		notify(current)
	}
	return current
}

// sameStatus compares everything except LastUpdate.
func sameStatus(a, b Status) bool {
	return a.Online == b.Online &&
		sameTime(a.FirstOnlineTime, b.FirstOnlineTime) &&
		sameTime(a.OfflineSince, b.OfflineSince) &&
		a.BotName == b.BotName &&
		a.Servers == b.Servers &&
		a.ReconnectCount == b.ReconnectCount &&
		a.RetryCount == b.RetryCount &&
		a.FatalError == b.FatalError
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// observe reads the supervisor state. A panic from the client handle is
// returned as an error.
func (t *StatusTracker) observe() (obs observation, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("status observation panicked: %v", r)
		}
	}()

	obs.fatal, obs.isFatal = t.state.Fatal()
	obs.retry = t.state.RetryCount()
	if obs.isFatal {
		return obs, nil
	}

	if c := t.state.Handle(); c != nil && c.IsReady() {
		obs.ready = true
		obs.name = c.DisplayName()
		obs.guilds = c.GuildCount()
	}
	return obs, nil
}

// apply folds obs into the status. Caller holds t.mu.
func (t *StatusTracker) apply(obs observation, now time.Time) {
	s := &t.status
	s.RetryCount = obs.retry

	switch {
	case obs.isFatal:
		if s.Online {
			s.OfflineSince = timePtr(now)
			logging.Warn().Str("kind", obs.fatal.Kind.Label()).Msg("Bot marked offline by fatal error")
		} else if s.OfflineSince == nil {
			s.OfflineSince = timePtr(t.startTime)
		}
		s.Online = false
		s.BotName = fmt.Sprintf("%s (fatal error: %s)", defaultBotName, obs.fatal.Message)
		s.Servers = 0
		s.FatalError = obs.fatal.Message

	case obs.ready:
		if !s.Online {
			if s.FirstOnlineTime == nil {
				s.FirstOnlineTime = timePtr(now)
			}
			s.OfflineSince = nil
			logging.Info().Str("bot", obs.name).Msg("Bot detected online")
		}
		s.Online = true
		s.BotName = obs.name
		if s.BotName == "" {
			s.BotName = defaultBotName
		}
		s.Servers = obs.guilds
		s.FatalError = ""

	default:
		if s.Online {
			s.OfflineSince = timePtr(now)
			s.ReconnectCount++
			metrics.RecordReconnect()
			logging.Warn().Int("reconnect_count", s.ReconnectCount).Msg("Bot detected offline")
		} else if s.OfflineSince == nil {
			s.OfflineSince = timePtr(t.startTime)
		}
		s.Online = false
		s.BotName = defaultBotName
		s.Servers = 0
		s.FatalError = ""
	}

	s.LastUpdate = now.Format(lastUpdateLayout)
}

func timePtr(t time.Time) *time.Time {
	return &t
}
