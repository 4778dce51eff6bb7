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

// Package workerpool fans NEW_CLIENT envelopes out across a fixed set of
// worker inboxes. Selection is wait-free round-robin over an atomic
// cursor, matching the wait-free producer requirement in the pool's
// contract; there is no lock on the hot feed path.
package workerpool

import (
	"fmt"
	"sync/atomic"

	"github.com/nabbar/pgdoor/msg"
)

// Pool fans envelopes out to a fixed slice of worker inboxes.
type Pool interface {
	// Feed enqueues one envelope into exactly one worker's inbox, chosen by
	// wait-free round-robin.
	Feed(e msg.Envelope) error
	// Inbox returns worker i's channel, used by the worker's dispatch loop
	// to receive what Feed sends.
	Inbox(i int) <-chan msg.Envelope
	// Size returns the number of worker inboxes.
	Size() int
	// Close closes every inbox channel. Callers must ensure no further Feed
	// calls are in flight.
	Close()
}

type pool struct {
	inboxes []chan msg.Envelope
	cursor  atomic.Uint64
	bound   int
}

// defaultInboxCapacity is the buffer each inbox gets when New is called
// with bound <= 0.
const defaultInboxCapacity = 4096

// New creates a Pool with n worker inboxes. bound > 0 gives each inbox that
// capacity and makes Feed non-blocking: it returns an error instead of
// blocking the producer when the chosen inbox is full. bound <= 0, the
// default, gives each inbox defaultInboxCapacity slots; Feed then blocks
// only while the chosen inbox already holds that many undelivered
// envelopes. The inbox is not unbounded in either case.
func New(n int, bound int) Pool {
	if n <= 0 {
		n = 1
	}

	p := &pool{
		inboxes: make([]chan msg.Envelope, n),
		bound:   bound,
	}

	cap := defaultInboxCapacity
	if bound > 0 {
		cap = bound
	}
	for i := range p.inboxes {
		p.inboxes[i] = make(chan msg.Envelope, cap)
	}

	return p
}

func (p *pool) Size() int {
	return len(p.inboxes)
}

func (p *pool) Inbox(i int) <-chan msg.Envelope {
	return p.inboxes[i]
}

// Feed picks the next worker by incrementing the cursor modulo the worker
// count — a single atomic add, no CAS loop, no lock — then either sends,
// blocking only while that inbox's buffer is full (bound <= 0), or attempts
// a non-blocking send (bound > 0) into that worker's channel.
func (p *pool) Feed(e msg.Envelope) error {
	n := uint64(len(p.inboxes))
	idx := (p.cursor.Add(1) - 1) % n
	ch := p.inboxes[idx]

	if p.bound <= 0 {
		ch <- e
		return nil
	}

	select {
	case ch <- e:
		return nil
	default:
		return fmt.Errorf("workerpool: worker %d inbox full", idx)
	}
}

func (p *pool) Close() {
	for _, ch := range p.inboxes {
		close(ch)
	}
}
