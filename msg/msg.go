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

// Package msg defines the envelope carried across the worker pool's inbox
// channels. It re-expresses the original "tag + fixed payload" message
// record (OD_MCLIENT_NEW in system.c, built by od_system_server and popped
// by the worker's machine_channel) as a typed Go struct: the payload is an
// owning pointer, and ownership passes from sender to receiver the instant
// the envelope crosses the channel.
package msg

import "github.com/nabbar/pgdoor/client"

// Tag identifies the kind of envelope. Only NewClient exists today; the
// type exists so a worker can log and discard anything it doesn't
// recognize instead of assuming every message is a new client.
type Tag uint8

const (
	TagNewClient Tag = iota
)

func (t Tag) String() string {
	switch t {
	case TagNewClient:
		return "new_client"
	default:
		return "unknown"
	}
}

// Envelope carries exactly one Client's ownership across a worker's inbox
// channel. The sender must not touch Client after the channel send
// succeeds; the receiver owns it exclusively from the moment it is
// received.
type Envelope struct {
	Tag    Tag
	Client *client.Client
}

// NewClient builds a NEW_CLIENT envelope wrapping c.
func NewClient(c *client.Client) Envelope {
	return Envelope{Tag: TagNewClient, Client: c}
}
