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

package worker_test

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"time"

	"github.com/nabbar/pgdoor/client"
	liblog "github.com/nabbar/pgdoor/logger"
	"github.com/nabbar/pgdoor/msg"
	libworker "github.com/nabbar/pgdoor/worker"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Worker", func() {
	It("spawns a session per NEW_CLIENT envelope and closes the socket after", func() {
		inbox := make(chan msg.Envelope, 1)
		var sessionRan atomic.Bool

		clientConn, serverConn := net.Pipe()
		defer clientConn.Close()

		c := client.New("c1", serverConn, nil, nil, time.Now())

		w := libworker.New(0, inbox, func(ctx context.Context, cl *client.Client) error {
			sessionRan.Store(true)
			Expect(cl.State()).To(Equal(client.StateRunning))
			return nil
		}, liblog.New(liblog.FormatText, false))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		Expect(w.Start(ctx)).ToNot(HaveOccurred())
		inbox <- msg.NewClient(c)

		Eventually(sessionRan.Load).Should(BeTrue())
		Eventually(c.State).Should(Equal(client.StateFreed))
	})

	It("logs and discards envelopes with an unrecognized tag", func() {
		inbox := make(chan msg.Envelope, 1)
		var sessionRan atomic.Bool

		w := libworker.New(0, inbox, func(ctx context.Context, cl *client.Client) error {
			sessionRan.Store(true)
			return nil
		}, liblog.New(liblog.FormatText, false))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		Expect(w.Start(ctx)).ToNot(HaveOccurred())
		inbox <- msg.Envelope{Tag: msg.Tag(99)}

		Consistently(sessionRan.Load, 50*time.Millisecond).Should(BeFalse())
	})

	It("logs a session error without crashing the dispatch loop", func() {
		inbox := make(chan msg.Envelope, 2)

		_, serverConn := net.Pipe()
		c := client.New("c1", serverConn, nil, nil, time.Now())

		w := libworker.New(0, inbox, func(ctx context.Context, cl *client.Client) error {
			return errors.New("session failed")
		}, liblog.New(liblog.FormatText, false))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		Expect(w.Start(ctx)).ToNot(HaveOccurred())
		inbox <- msg.NewClient(c)

		Eventually(c.State).Should(Equal(client.StateFreed))
	})
})
