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

// Package cron runs one ticking goroutine executing a set of registered
// maintenance jobs. It is deliberately the simplest possible scheduler: one
// interval, every job run on every tick, no per-job scheduling or overlap
// control, since the acceptor only ever needs the single backend health
// sweep. Its Start/Stop shape matches runner.Runner so it can be driven the
// same way as every other long-lived collaborator.
package cron

import (
	"context"
	"time"
)

// Job is one maintenance func invoked on every tick.
type Job func(ctx context.Context)

// Cron runs every registered Job each time its ticker fires.
type Cron struct {
	interval time.Duration
	jobs     []Job
}

// New builds a Cron with the given tick interval and initial job set.
// Additional jobs can be added with Register before Start.
func New(interval time.Duration, jobs ...Job) *Cron {
	return &Cron{interval: interval, jobs: append([]Job(nil), jobs...)}
}

// Register adds a job to the set run on every tick. Not safe to call once
// Start has been invoked.
func (c *Cron) Register(j Job) {
	c.jobs = append(c.jobs, j)
}

// Start runs the ticker loop until ctx is canceled.
func (c *Cron) Start(ctx context.Context) error {
	if c.interval <= 0 {
		<-ctx.Done()
		return nil
	}

	t := time.NewTicker(c.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			for _, j := range c.jobs {
				j(ctx)
			}
		}
	}
}

// Stop is a no-op: cancellation of the context passed to Start is what
// actually ends the ticker loop, matching the runner.Runner contract where
// Stop cancels that context before calling this.
func (c *Cron) Stop(ctx context.Context) error {
	return nil
}
