// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

package websocket

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/tomtom215/heartbeat/internal/logging"
)

// Message types for WebSocket communication
const (
	MessageTypeStatus = "status"
	MessageTypePing   = "ping"
	MessageTypePong   = "pong"
)

// Message is the envelope for every frame sent to or read from a client.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// ErrHubStopped is returned by Register once Serve has returned.
var ErrHubStopped = errors.New("websocket hub stopped")

// Hub maintains the set of active clients and broadcasts messages to them.
// Serve must be running for Register and BroadcastJSON to take effect.
type Hub struct {
	register  chan *Client
	broadcast chan Message

	mu      sync.RWMutex
	clients map[*Client]struct{}

	stopped  chan struct{}
	stopOnce sync.Once
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		register:  make(chan *Client),
		broadcast: make(chan Message, 64),
		clients:   make(map[*Client]struct{}),
		stopped:   make(chan struct{}),
	}
}

// Serve runs the hub until ctx is canceled, then closes every client. It
// implements suture.Service.
//
// Pending registrations are handled before broadcasts so a client that
// registered first also receives the next broadcast.
func (h *Hub) Serve(ctx context.Context) error {
	for {
		select {
		case c := <-h.register:
			h.add(c)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			h.stopOnce.Do(func() { close(h.stopped) })
			n := h.ClientCount()
			h.closeAll()
			logging.Info().
				Str("component", "websocket-hub").
				Int("clients_closed", n).
				Msg("websocket hub stopped")
			return ctx.Err()

		case c := <-h.register:
			h.add(c)

		case msg := <-h.broadcast:
			h.deliver(msg)
		}
	}
}

// String implements fmt.Stringer for suture logging.
func (h *Hub) String() string {
	return "websocket-hub"
}

// Register hands c to the hub loop. It fails if ctx ends first or the hub
// has stopped.
func (h *Hub) Register(ctx context.Context, c *Client) error {
	select {
	case h.register <- c:
		return nil
	case <-h.stopped:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// BroadcastJSON queues a message for every client. The message is dropped
// when the queue is full.
func (h *Hub) BroadcastJSON(messageType string, data interface{}) {
	select {
	case h.broadcast <- Message{Type: messageType, Data: data}:
	default:
		logging.Warn().Str("type", messageType).Msg("websocket broadcast queue full, dropping message")
	}
}

// Send queues msg for c alone. It reports false if c is not registered or
// its buffer is full.
func (h *Hub) Send(c *Client, msg Message) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if _, ok := h.clients[c]; !ok {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	logging.Debug().Uint64("client_id", c.id).Int("total_clients", n).Msg("websocket client connected")
}

// unregister removes c and closes its send channel. Safe to call twice.
func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()

	if ok {
		logging.Debug().Uint64("client_id", c.id).Int("total_clients", n).Msg("websocket client disconnected")
	}
}

// deliver sends msg to every client in registration order. Clients whose
// buffer is full are dropped.
func (h *Hub) deliver(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].id < clients[j].id })

	for _, c := range clients {
		select {
		case c.send <- msg:
		default:
			delete(h.clients, c)
			close(c.send)
			logging.Warn().Uint64("client_id", c.id).Msg("websocket client too slow, disconnecting")
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}
