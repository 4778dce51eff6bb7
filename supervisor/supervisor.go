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

// Package supervisor wires every collaborator together in the fixed startup
// order the acceptor requires: globals, then router/console/cron, then the
// worker pool, then the signal handler, then the listeners. Listeners start
// last because nothing should be able to reach a worker before the worker
// is already receiving, and zero successfully bound listeners is treated as
// a fatal startup error rather than a degraded-but-running process.
package supervisor

import (
	"context"
	"os"
	"time"

	"github.com/nabbar/pgdoor/client"
	"github.com/nabbar/pgdoor/config"
	"github.com/nabbar/pgdoor/console"
	"github.com/nabbar/pgdoor/cron"
	"github.com/nabbar/pgdoor/globals"
	"github.com/nabbar/pgdoor/listener"
	"github.com/nabbar/pgdoor/logger"
	"github.com/nabbar/pgdoor/pgerr"
	"github.com/nabbar/pgdoor/router"
	"github.com/nabbar/pgdoor/runner"
	"github.com/nabbar/pgdoor/signalhandler"
	"github.com/nabbar/pgdoor/worker"
)

// Supervisor owns every long-lived collaborator's runner.Runner and the
// bound listeners built from them.
type Supervisor struct {
	g   *globals.Globals

	console runner.Runner
	cron    *cron.Cron
	cronR   runner.Runner
	workers []runner.Runner
	signals *signalhandler.Handler
	listen  []*listener.Listener

	exit func(code int)
}

// New builds a Supervisor over an already-validated config. No collaborator
// is started yet; call Start to run the fixed bring-up order.
func New(cfg *config.Config, log logger.Logger, exit func(code int)) *Supervisor {
	if exit == nil {
		exit = osExit
	}

	return &Supervisor{
		g:    globals.New(cfg, log, 0),
		exit: exit,
	}
}

// Start runs the fixed bring-up sequence: globals already exist by
// construction; this brings up console, cron, the worker pool, the signal
// handler, and finally every configured listener. It returns a
// pgerr.Error(KindStartupFatal) if not a single listener ends up bound.
func (s *Supervisor) Start(ctx context.Context) error {
	route := router.New(s.g.Log)

	if s.g.Config.Console.Enabled {
		c := console.New(s.g.Config.Console.Listen, s.g.Log, s.g)
		s.console = runner.New(c.Start, c.Stop)
		if err := s.console.Start(ctx); err != nil {
			return pgerr.New(pgerr.KindStartupFatal, "starting console", err)
		}
	}

	if s.g.Config.Cron.Enabled {
		interval, err := parseInterval(s.g.Config.Cron.Interval)
		if err != nil {
			return pgerr.New(pgerr.KindStartupFatal, "parsing cron interval", err)
		}

		s.cron = cron.New(interval, s.g.Backs.Sweep)
		s.cronR = runner.New(s.cron.Start, s.cron.Stop)
		if err := s.cronR.Start(ctx); err != nil {
			return pgerr.New(pgerr.KindStartupFatal, "starting cron", err)
		}
	}

	for i := 0; i < s.g.Pool.Size(); i++ {
		w := worker.New(i, s.g.Pool.Inbox(i), func(ctx context.Context, c *client.Client) error {
			return route(ctx, c)
		}, s.g.Log)

		if err := w.Start(ctx); err != nil {
			return pgerr.New(pgerr.KindStartupFatal, "starting worker pool", err)
		}
		s.workers = append(s.workers, w)
	}

	s.signals = signalhandler.New(s.g.Log, s.exit)
	s.g.Signals = s.signals
	go s.signals.Run()

	var bound int
	for _, lc := range s.g.Config.Listen {
		ls, errs := listener.Build(lc, s.g.Log, s.g.IDs, s.g.Pool)
		for _, e := range errs {
			s.g.Log.Emit(logger.KindServerError, "", "supervisor", "listener setup failed: %v", e)
		}
		for _, l := range ls {
			s.listen = append(s.listen, l)
			go l.Accept()
			bound++
		}
	}

	if bound == 0 {
		return pgerr.New(pgerr.KindStartupFatal, "no listener bound", nil)
	}

	return nil
}

// Stop tears every started collaborator down, best-effort: it keeps going
// even if an earlier step returns an error, and reports the first one.
func (s *Supervisor) Stop(ctx context.Context) error {
	var first error

	for _, l := range s.listen {
		if err := l.Close(); err != nil && first == nil {
			first = err
		}
	}

	if s.signals != nil {
		s.signals.Stop()
	}

	for _, w := range s.workers {
		if err := w.Stop(ctx); err != nil && first == nil {
			first = err
		}
	}

	if s.cronR != nil {
		if err := s.cronR.Stop(ctx); err != nil && first == nil {
			first = err
		}
	}

	if s.console != nil {
		if err := s.console.Stop(ctx); err != nil && first == nil {
			first = err
		}
	}

	return first
}

func osExit(code int) {
	os.Exit(code)
}

func parseInterval(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}
