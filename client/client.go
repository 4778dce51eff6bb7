/*
 * MIT License
 *
 * Copyright (c) 2026 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package client holds the per-session record a Listener hands to a Worker.
// Ownership is single-threaded at every point in its lifetime: the
// accepting Listener owns it until it is enqueued onto a worker's inbox,
// the receiving Worker owns it from dequeue until the session ends. Nothing
// ever holds it mutably from two goroutines at once, so the struct itself
// carries no internal locking — grounded on the hand-off contract in
// system.c's od_system_server (accept, stamp, wrap in OD_MCLIENT_NEW,
// od_router_client_attach is never invoked from two threads for the same
// client).
package client

import (
	"crypto/tls"
	"net"
	"time"

	"github.com/nabbar/pgdoor/config"
)

// State is the session lifecycle a Client moves through. Freed is terminal.
type State uint8

const (
	StateAccepted State = iota
	StateAttached
	StateRunning
	StateTerminating
	StateFreed
)

func (s State) String() string {
	switch s {
	case StateAccepted:
		return "accepted"
	case StateAttached:
		return "attached"
	case StateRunning:
		return "running"
	case StateTerminating:
		return "terminating"
	case StateFreed:
		return "freed"
	default:
		return "unknown"
	}
}

// Client is a connection-session record. Listen and TLS are borrowed: they
// outlive every Client created under them and must never be mutated through
// this handle.
type Client struct {
	ID         string
	Conn       net.Conn
	Listen     *config.ListenConfig
	TLS        *tls.Config
	AcceptedAt time.Time

	state State
}

// New wraps an accepted connection into a Client in the Accepted state.
func New(id string, conn net.Conn, listen *config.ListenConfig, tlsCfg *tls.Config, acceptedAt time.Time) *Client {
	return &Client{
		ID:         id,
		Conn:       conn,
		Listen:     listen,
		TLS:        tlsCfg,
		AcceptedAt: acceptedAt,
		state:      StateAccepted,
	}
}

// State returns the current lifecycle state. Only the goroutine that
// currently owns the Client may call this.
func (c *Client) State() State {
	return c.state
}

// Attach transitions accepted -> attached, called by the Worker immediately
// after dequeuing the NEW_CLIENT message.
func (c *Client) Attach() {
	c.state = StateAttached
}

// Run transitions attached -> running, called by the session goroutine on
// entry.
func (c *Client) Run() {
	c.state = StateRunning
}

// Terminate transitions running -> terminating on clean disconnect,
// protocol error, or router rejection.
func (c *Client) Terminate() {
	c.state = StateTerminating
}

// Close releases the socket and transitions terminating -> freed. Safe to
// call only once; the caller owns the Client until this returns.
func (c *Client) Close() error {
	err := c.Conn.Close()
	c.state = StateFreed
	return err
}
