// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

package bot

import (
	"context"
	"sync"
	"sync/atomic"
)

// MockClient is a test helper implementing Client.
type MockClient struct {
	name   string
	guilds atomic.Int32

	ready     atomic.Bool
	connected atomic.Bool

	run     func(ctx context.Context, c *MockClient) error
	onReady func()
}

// NewMockClient creates a mock client. A nil run marks the client ready and
// blocks until ctx is canceled.
func NewMockClient(name string, guilds int, run func(ctx context.Context, c *MockClient) error) *MockClient {
	c := &MockClient{name: name, run: run}
	c.guilds.Store(int32(guilds))
	return c
}

// Run implements Client.
func (c *MockClient) Run(ctx context.Context, _ string) error {
	if c.run != nil {
		return c.run(ctx, c)
	}
	c.SetReady(true)
	<-ctx.Done()
	c.SetReady(false)
	return nil
}

// SetReady toggles readiness. Becoming ready also marks the client connected
// and fires the factory's onReady callback.
func (c *MockClient) SetReady(ready bool) {
	c.ready.Store(ready)
	if !ready {
		return
	}
	c.connected.Store(true)
	if c.onReady != nil {
		c.onReady()
	}
}

// SetGuilds changes the reported guild count.
func (c *MockClient) SetGuilds(n int) { c.guilds.Store(int32(n)) }

// IsReady implements Client.
func (c *MockClient) IsReady() bool { return c.ready.Load() }

// Connected implements Client.
func (c *MockClient) Connected() bool { return c.connected.Load() }

// DisplayName implements Client.
func (c *MockClient) DisplayName() string { return c.name }

// GuildCount implements Client.
func (c *MockClient) GuildCount() int { return int(c.guilds.Load()) }

// MockFactory is a test helper implementing Factory and Provider.
//
// Each New call pops the next queued run error: the returned client fails
// immediately with it. When the queue is empty, clients use RunFunc (or the
// MockClient default of blocking until cancellation).
type MockFactory struct {
	mu           sync.Mutex
	queue        []error
	runFunc      func(ctx context.Context, c *MockClient) error
	newErr       error
	preflightErr error
	acquireErr   error
	onPreflight  func()
	clients      []*MockClient

	newCount       atomic.Int32
	preflightCount atomic.Int32
	acquireCount   atomic.Int32
}

// NewMockFactory creates an empty mock factory.
func NewMockFactory() *MockFactory {
	return &MockFactory{}
}

// Acquire implements Provider.
func (f *MockFactory) Acquire() (Factory, error) {
	f.acquireCount.Add(1)
	f.mu.Lock()
	err := f.acquireErr
	f.mu.Unlock()
	if err != nil {
		return nil, ImportFailure(err)
	}
	return f, nil
}

// New implements Factory.
func (f *MockFactory) New(onReady func()) (Client, error) {
	f.newCount.Add(1)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.newErr != nil {
		return nil, f.newErr
	}

	run := f.runFunc
	if len(f.queue) > 0 {
		err := f.queue[0]
		f.queue = f.queue[1:]
		run = func(context.Context, *MockClient) error { return err }
	}
	c := NewMockClient("mock-bot", 3, run)
	c.onReady = onReady
	f.clients = append(f.clients, c)
	return c, nil
}

// Preflight implements Factory.
func (f *MockFactory) Preflight(_ context.Context, _ string) error {
	f.preflightCount.Add(1)
	f.mu.Lock()
	err := f.preflightErr
	hook := f.onPreflight
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	return err
}

// QueueRunErrors appends errors returned by the next clients' Run calls.
func (f *MockFactory) QueueRunErrors(errs ...error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, errs...)
}

// SetRunFunc sets the Run behaviour used once the queue is drained.
func (f *MockFactory) SetRunFunc(run func(ctx context.Context, c *MockClient) error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runFunc = run
}

// SetNewError makes New fail.
func (f *MockFactory) SetNewError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.newErr = err
}

// SetPreflightError sets the error returned by Preflight.
func (f *MockFactory) SetPreflightError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.preflightErr = err
}

// SetAcquireError makes Acquire fail with an import failure.
func (f *MockFactory) SetAcquireError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acquireErr = err
}

// OnPreflight registers a hook run at the start of every Preflight.
func (f *MockFactory) OnPreflight(hook func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onPreflight = hook
}

// NewCount returns how many clients were constructed.
func (f *MockFactory) NewCount() int { return int(f.newCount.Load()) }

// PreflightCount returns how many preflights ran.
func (f *MockFactory) PreflightCount() int { return int(f.preflightCount.Load()) }

// AcquireCount returns how many times Acquire was called.
func (f *MockFactory) AcquireCount() int { return int(f.acquireCount.Load()) }

// Clients returns the clients constructed so far.
func (f *MockFactory) Clients() []*MockClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*MockClient, len(f.clients))
	copy(out, f.clients)
	return out
}
