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

// Package router is the worker-side session entry point a Route
// implementation is handed once per accepted client. The real PostgreSQL
// wire-protocol startup/auth/query-routing handshake is out of scope; what
// ships here logs the client id and returns, after which the worker closes
// the connection, which is enough to drive the client state machine
// (attached -> running -> terminating -> freed) to completion end to end.
package router

import (
	"context"

	"github.com/nabbar/pgdoor/client"
	"github.com/nabbar/pgdoor/logger"
)

// Route drives one attached Client for the lifetime of its session.
type Route func(ctx context.Context, c *client.Client) error

// New returns the default Route: log the client id and context, then return
// nil. It does not close the client; the worker does that once Route returns.
// Named routes that actually speak the wire protocol replace this value;
// nothing else in the worker package depends on its implementation.
func New(log logger.Logger) Route {
	return func(ctx context.Context, c *client.Client) error {
		log.Emit(logger.KindClientInfo, c.ID, "router", "session accepted, no backend routing configured")
		return nil
	}
}
