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

// Package runner provides the generic start/stop lifecycle wrapper the
// supervisor drives its long-lived collaborators through: the workers, the
// console and the cron ticker each run on top of a Runner. Listener accept
// loops and the server pool do not.
//
// Modeled on github.com/nabbar/golib/runner/startStop. Only that package's
// Ginkgo specs were retrieved (not its implementation), so the behavior
// below is reconstructed from the contract its tests exercise: New launches
// nothing by itself, Start(ctx) launches the start function in its own
// goroutine and returns immediately, Stop(ctx) blocks until the stop
// function has returned and the running start function has either returned
// or ctx is done, and
// ErrorsLast/ErrorsList expose whatever the start/stop functions returned.
package runner

import (
	"context"
	"sync"
	"time"
)

// FuncStart runs for the lifetime of the runner; it must return when ctx is
// done.
type FuncStart func(ctx context.Context) error

// FuncStop performs cleanup and must return once shutdown is complete.
type FuncStop func(ctx context.Context) error

// Runner wraps a start/stop function pair with running-state tracking,
// uptime measurement and error history.
type Runner interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	IsRunning() bool
	Uptime() time.Duration
	ErrorsLast() error
	ErrorsList() []error
}

type runner struct {
	mu      sync.Mutex
	start   FuncStart
	stop    FuncStop
	running bool
	startAt time.Time
	cancel  context.CancelFunc
	done    chan struct{}
	errs    []error
}

func New(start FuncStart, stop FuncStop) Runner {
	return &runner{start: start, stop: stop}
}

func (r *runner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		r.stopLocked(ctx)
	}

	cctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})
	r.running = true
	r.startAt = time.Now()

	done := r.done
	go func() {
		defer close(done)
		if r.start == nil {
			return
		}
		if err := r.start(cctx); err != nil {
			r.addError(err)
		}
	}()

	return nil
}

func (r *runner) Stop(ctx context.Context) error {
	r.mu.Lock()
	stopErr := r.stopLocked(ctx)
	r.mu.Unlock()
	return stopErr
}

// stopLocked must be called with r.mu held. It releases r.mu while waiting
// for the start goroutine to finish, since that goroutine takes r.mu itself
// (via addError) before signaling done.
func (r *runner) stopLocked(ctx context.Context) error {
	if !r.running {
		return nil
	}

	if r.cancel != nil {
		r.cancel()
	}

	var stopErr error
	if r.stop != nil {
		stopErr = r.stop(ctx)
		if stopErr != nil {
			r.errs = append(r.errs, stopErr)
		}
	}

	done := r.done
	if done != nil {
		r.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
		}
		r.mu.Lock()
	}

	r.running = false
	return stopErr
}

func (r *runner) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

func (r *runner) Uptime() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return 0
	}
	return time.Since(r.startAt)
}

func (r *runner) addError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *runner) ErrorsLast() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.errs) == 0 {
		return nil
	}
	return r.errs[len(r.errs)-1]
}

func (r *runner) ErrorsList() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]error, len(r.errs))
	copy(out, r.errs)
	return out
}
