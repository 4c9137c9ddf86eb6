// Heartbeat - Chat Bot Keep-Alive Supervisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heartbeat

/*
Package websocket pushes bot status changes to browser dashboards.

A Hub runs as a suture service in the reporter layer. The HTTP layer upgrades
GET /ws with gorilla/websocket, wraps the connection in a Client, registers
it and sends the current status. Every later status change is broadcast as

	{"type": "status", "data": { ...Status record... }}

Clients may send {"type": "ping"} and receive {"type": "pong"}. Slow clients
whose buffer fills are disconnected rather than blocking the broadcast.
*/
package websocket
