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

// Package semaphore provides a weighted worker-count limiter used to fan out
// a bounded number of concurrent goroutines and join on their completion.
//
// Modeled on github.com/nabbar/golib/semaphore (New/NewWorker/DeferWorker/
// WaitAll contract, reconstructed from its Ginkgo specs since only its tests
// were retrieved) but backed by golang.org/x/sync/semaphore instead of a
// hand-rolled weighted semaphore.
package semaphore

import (
	"context"

	xsem "golang.org/x/sync/semaphore"
)

// Sem bounds concurrency at size simultaneous workers and lets the owner
// wait for every issued worker to finish.
type Sem interface {
	// NewWorker blocks until a worker slot is available or ctx is done.
	NewWorker() error
	// NewWorkerTry acquires a worker slot without blocking; false if full.
	NewWorkerTry() bool
	// DeferWorker releases one worker slot. Call once per successful
	// NewWorker/NewWorkerTry, typically deferred at the top of the goroutine.
	DeferWorker()
	// WaitAll blocks until every issued worker slot has been released.
	WaitAll() error
	// DeferMain releases the bookkeeping resources of the semaphore itself.
	DeferMain()
	// Weighted returns the configured concurrency limit.
	Weighted() int64
}

type sem struct {
	ctx context.Context
	w   *xsem.Weighted
	n   int64
}

// New returns a Sem allowing up to size concurrent workers. size <= 0 means
// unbounded (callers should still call WaitAll to join).
func New(ctx context.Context, size int64) Sem {
	if size <= 0 {
		size = 1 << 30
	}
	return &sem{
		ctx: ctx,
		w:   xsem.NewWeighted(size),
		n:   size,
	}
}

func (s *sem) NewWorker() error {
	return s.w.Acquire(s.ctx, 1)
}

func (s *sem) NewWorkerTry() bool {
	return s.w.TryAcquire(1)
}

func (s *sem) DeferWorker() {
	s.w.Release(1)
}

// WaitAll reacquires the full weight, which only succeeds once every
// outstanding worker has released its slot.
func (s *sem) WaitAll() error {
	if err := s.w.Acquire(s.ctx, s.n); err != nil {
		return err
	}
	s.w.Release(s.n)
	return nil
}

func (s *sem) DeferMain() {}

func (s *sem) Weighted() int64 {
	return s.n
}
