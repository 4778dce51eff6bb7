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

// Package serverpool holds one pgxpool.Pool per configured backend route and
// answers health checks against the real PostgreSQL server behind it. This
// is the acceptor's one real database dependency: the wire protocol between
// client and backend is out of scope, but the backend still has to exist
// somewhere for the console's /status route and the cron sweep to have
// something meaningful to report on.
package serverpool

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"

	libatm "github.com/nabbar/pgdoor/atomic"
	"github.com/nabbar/pgdoor/logger"
	"github.com/nabbar/pgdoor/semaphore"
)

// sweepConcurrency bounds how many backends a single Sweep pings at once,
// so a sweep across a large route table doesn't open one goroutine per
// route.
const sweepConcurrency = 8

// Pool fronts one pgxpool.Pool per backend DSN, keyed by the route name
// under which it was registered.
type Pool struct {
	log   logger.Logger
	pools libatm.MapTyped[string, *pgxpool.Pool]
}

// New builds an empty Pool. Backends are added with Register, not at
// construction time, so a DSN that fails to parse does not prevent the rest
// of the acceptor from starting.
func New(log logger.Logger) *Pool {
	return &Pool{log: log, pools: libatm.NewMapTyped[string, *pgxpool.Pool]()}
}

// Register parses dsn and adds it under route. Connection establishment is
// lazy (pgxpool dials on first use), so Register only fails on a malformed
// DSN.
func (p *Pool) Register(route, dsn string) error {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return fmt.Errorf("serverpool: parsing dsn for route %q: %w", route, err)
	}

	cfg.ConnConfig.Tracer = &tracelog.TraceLog{
		Logger:   newQueryTracer(logger.HCLog(p.log, "pgx."+route)),
		LogLevel: tracelog.LogLevelWarn,
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("serverpool: creating pool for route %q: %w", route, err)
	}

	p.pools.Store(route, pool)

	return nil
}

// Ping checks connectivity for route's pool. Used by console's /status
// handler and by cron's periodic sweep.
func (p *Pool) Ping(ctx context.Context, route string) error {
	pool, ok := p.lookup(route)
	if !ok {
		return fmt.Errorf("serverpool: unknown route %q", route)
	}

	return pool.Ping(ctx)
}

// Routes lists every registered route name.
func (p *Pool) Routes() []string {
	var out []string

	p.pools.Range(func(route string, _ *pgxpool.Pool) bool {
		out = append(out, route)
		return true
	})

	return out
}

// Sweep pings every registered route and logs the ones that fail. It never
// returns an error itself: a single unreachable backend must not stop the
// cron ticker from running the rest of its jobs. Pings run concurrently,
// bounded by sweepConcurrency, so a route table with hundreds of backends
// doesn't spray that many goroutines at once.
func (p *Pool) Sweep(ctx context.Context) {
	routes := p.Routes()
	if len(routes) == 0 {
		return
	}

	sem := semaphore.New(ctx, sweepConcurrency)

	for _, route := range routes {
		if err := sem.NewWorker(); err != nil {
			return
		}

		go func(route string) {
			defer sem.DeferWorker()

			if err := p.Ping(ctx, route); err != nil {
				p.log.Emit(logger.KindServerError, "", "serverpool", "health sweep: route %q unreachable: %v", route, err)
			}
		}(route)
	}

	_ = sem.WaitAll()
}

// Close releases every pool's connections.
func (p *Pool) Close() {
	p.pools.Range(func(_ string, pool *pgxpool.Pool) bool {
		pool.Close()
		return true
	})
}

func (p *Pool) lookup(route string) (*pgxpool.Pool, bool) {
	return p.pools.Load(route)
}

// hclogTracer bridges pgx's tracelog.Logger onto an hclog.Logger, so every
// pool's query tracing flows through the acceptor's own Logger by way of
// logger.HCLog rather than pgx's default stderr writer.
type hclogTracer struct{ h hclog.Logger }

func newQueryTracer(h hclog.Logger) tracelog.Logger { return &hclogTracer{h: h} }

func (t *hclogTracer) Log(_ context.Context, level tracelog.LogLevel, msg string, data map[string]interface{}) {
	args := make([]interface{}, 0, len(data)*2)
	for k, v := range data {
		args = append(args, k, v)
	}

	switch level {
	case tracelog.LogLevelTrace, tracelog.LogLevelDebug:
		t.h.Debug(msg, args...)
	case tracelog.LogLevelInfo:
		t.h.Info(msg, args...)
	case tracelog.LogLevelWarn:
		t.h.Warn(msg, args...)
	case tracelog.LogLevelError:
		t.h.Error(msg, args...)
	}
}
