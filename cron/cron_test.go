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

package cron_test

import (
	"context"
	"sync/atomic"
	"time"

	libcron "github.com/nabbar/pgdoor/cron"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Cron", func() {
	It("runs every registered job on each tick", func() {
		var ticks atomic.Int32

		c := libcron.New(5*time.Millisecond, func(ctx context.Context) {
			ticks.Add(1)
		})

		ctx, cancel := context.WithCancel(context.Background())
		go func() { _ = c.Start(ctx) }()
		defer cancel()

		Eventually(func() int32 { return ticks.Load() }).Should(BeNumerically(">=", 2))
	})

	It("runs jobs registered after construction", func() {
		var ran atomic.Bool

		c := libcron.New(5 * time.Millisecond)
		c.Register(func(ctx context.Context) { ran.Store(true) })

		ctx, cancel := context.WithCancel(context.Background())
		go func() { _ = c.Start(ctx) }()
		defer cancel()

		Eventually(ran.Load).Should(BeTrue())
	})

	It("exits immediately when ctx is canceled and never ticks with a non-positive interval", func() {
		var ticks atomic.Int32

		c := libcron.New(0, func(ctx context.Context) { ticks.Add(1) })

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			_ = c.Start(ctx)
			close(done)
		}()

		Consistently(func() int32 { return ticks.Load() }, 20*time.Millisecond).Should(Equal(int32(0)))

		cancel()
		Eventually(done).Should(BeClosed())
	})
})
