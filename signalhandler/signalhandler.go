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

// Package signalhandler installs the process-wide os/signal mask and runs
// one goroutine that reacts to it: SIGINT/SIGTERM log and call Exit, SIGHUP
// logs and is otherwise ignored. Grounded on
// github.com/nabbar/golib/httpserver/run.StartWaitNotify's signal.Notify
// usage, narrowed to the two outcomes this acceptor needs instead of a
// generic wait/stop channel pair.
package signalhandler

import (
	"os"
	"os/signal"
	"syscall"

	libatm "github.com/nabbar/pgdoor/atomic"
	"github.com/nabbar/pgdoor/logger"
)

// Exit is called on SIGINT/SIGTERM once the signal has been logged. Tests
// override it to observe termination without killing the test binary.
type Exit func(code int)

// Handler owns the installed signal channel and the goroutine reacting to
// it.
type Handler struct {
	log  logger.Logger
	exit Exit
	sig  chan os.Signal
	done chan struct{}
	last libatm.Value[string]
}

// New installs the signal mask. If the mask cannot be installed the returned
// Handler still logs the failure the first time Run is called and returns
// without ever blocking, rather than crashing the process.
func New(log logger.Logger, exit Exit) *Handler {
	if exit == nil {
		exit = os.Exit
	}

	h := &Handler{
		log:  log,
		exit: exit,
		sig:  make(chan os.Signal, 1),
		done: make(chan struct{}),
		last: libatm.NewValue[string](),
	}

	signal.Notify(h.sig, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	return h
}

// LastSignal reports the name of the most recent signal handled, or "" if
// none has arrived yet. Safe to call from any goroutine, including the
// console's /status handler running concurrently with Run.
func (h *Handler) LastSignal() string {
	return h.last.Load()
}

// Run blocks, reacting to signals until Stop is called. It is meant to be
// launched in its own goroutine; a failure to have installed the mask
// (signal.Notify never panics in practice, but a nil channel would block
// forever) is guarded against defensively so this goroutine exits instead of
// leaking silently.
func (h *Handler) Run() {
	if h.sig == nil {
		h.log.Emit(logger.KindServerError, "", "signalhandler", "signal mask was never installed, exiting handler goroutine")
		return
	}

	for {
		select {
		case <-h.done:
			return
		case s, ok := <-h.sig:
			if !ok {
				return
			}
			h.handle(s)
		}
	}
}

// Stop releases the installed signal mask and unblocks Run.
func (h *Handler) Stop() {
	signal.Stop(h.sig)
	close(h.done)
}

func (h *Handler) handle(s os.Signal) {
	h.last.Store(s.String())

	switch s {
	case syscall.SIGHUP:
		h.log.Emit(logger.KindServerInfo, "", "signalhandler", "received SIGHUP, skipping (reload is not supported)")
	case syscall.SIGINT, syscall.SIGTERM:
		h.log.Emit(logger.KindServerInfo, "", "signalhandler", "received %s, shutting down", s)
		h.exit(0)
	default:
		h.log.Emit(logger.KindServerInfo, "", "signalhandler", "received unhandled signal %s", s)
	}
}
