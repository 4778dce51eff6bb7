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

// Package worker runs one dispatch loop per worker goroutine. Each worker
// owns an inbox channel; on every NEW_CLIENT envelope it spawns a session
// goroutine and returns immediately to receiving, the direct Go translation
// of od_worker_pool_main's "dequeue message, attach client, spawn
// coroutine" loop in the original C implementation (no stackful coroutine
// scheduler needed — the Go runtime's own goroutine scheduler plays that
// role, so the worker's own thread never blocks on client I/O).
package worker

import (
	"context"
	"fmt"

	"github.com/nabbar/pgdoor/client"
	"github.com/nabbar/pgdoor/logger"
	"github.com/nabbar/pgdoor/metrics"
	"github.com/nabbar/pgdoor/msg"
	"github.com/nabbar/pgdoor/runner"
)

// Session drives one Client from attach to close. Implementations live in
// the router/serverpool collaborators; the worker only owns the lifecycle
// bookkeeping around the call.
type Session func(ctx context.Context, c *client.Client) error

// New builds a Runner that, once started, receives from inbox and spawns
// Session(ctx, client) per NEW_CLIENT envelope until the inbox is closed or
// ctx is canceled.
func New(id int, inbox <-chan msg.Envelope, session Session, log logger.Logger) runner.Runner {
	return runner.New(
		func(ctx context.Context) error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case e, ok := <-inbox:
					if !ok {
						return nil
					}
					metrics.WorkerQueueDepth.WithLabelValues(fmt.Sprintf("%d", id)).Set(float64(len(inbox)))
					dispatch(ctx, id, e, session, log)
				}
			}
		},
		func(ctx context.Context) error { return nil },
	)
}

func dispatch(ctx context.Context, id int, e msg.Envelope, session Session, log logger.Logger) {
	if e.Tag != msg.TagNewClient {
		log.Emit(logger.KindServerError, "", fmt.Sprintf("worker-%d", id), "discarding message with unrecognized tag %q", e.Tag)
		return
	}

	c := e.Client
	c.Attach()

	go func() {
		c.Run()
		if err := session(ctx, c); err != nil {
			log.Emit(logger.KindClientError, c.ID, fmt.Sprintf("worker-%d", id), "session ended with error: %v", err)
		}
		c.Terminate()
		if err := c.Close(); err != nil {
			log.Emit(logger.KindClientError, c.ID, fmt.Sprintf("worker-%d", id), "closing client socket: %v", err)
		}
	}()
}
