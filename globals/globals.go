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

// Package globals holds the process-wide handle record built once by the
// supervisor before any worker or listener starts. Every field is either
// immutable after New returns or itself a concurrency-safe handle, so
// Globals needs no locking of its own — it is read-mostly for the rest of
// the process's life.
package globals

import (
	"github.com/nabbar/pgdoor/config"
	"github.com/nabbar/pgdoor/id"
	"github.com/nabbar/pgdoor/logger"
	"github.com/nabbar/pgdoor/serverpool"
	"github.com/nabbar/pgdoor/signalhandler"
	"github.com/nabbar/pgdoor/workerpool"
)

// Globals is the set of handles every listener and worker is built from.
type Globals struct {
	Config *config.Config
	Log    logger.Logger
	IDs    id.Manager
	Pool   workerpool.Pool
	Backs  *serverpool.Pool

	// Signals is set by the supervisor once the signal handler is installed.
	// It stays nil until then, so LastSignal must tolerate that.
	Signals *signalhandler.Handler
}

// New builds a Globals from an already-validated config and a worker pool
// sized to cfg.Workers. Construction never fails: the things that can fail
// (binding listeners, dialing backends) happen later, each against its own
// part of Globals, so one bad backend DSN never prevents the acceptor from
// serving the backends that parsed fine.
func New(cfg *config.Config, log logger.Logger, bound int) *Globals {
	return &Globals{
		Config: cfg,
		Log:    log,
		IDs:    id.New(),
		Pool:   workerpool.New(int(cfg.Workers), bound),
		Backs:  serverpool.New(log),
	}
}

// ListenerCount reports how many addresses are configured to bind, for the
// console's /status route.
func (g *Globals) ListenerCount() int {
	return len(g.Config.Listen)
}

// WorkerCount reports the worker pool's size, for the console's /status
// route.
func (g *Globals) WorkerCount() int {
	return g.Pool.Size()
}

// WorkerQueueDepth reports worker i's current inbox length, for the
// console's /status route. Non-blocking: it only ever reads len(chan).
func (g *Globals) WorkerQueueDepth(i int) int {
	if i < 0 || i >= g.Pool.Size() {
		return 0
	}
	return len(g.Pool.Inbox(i))
}

// LastSignal reports the most recent signal handled by the signal handler,
// or "" before the handler is installed or no signal has arrived yet.
func (g *Globals) LastSignal() string {
	if g.Signals == nil {
		return ""
	}
	return g.Signals.LastSignal()
}
