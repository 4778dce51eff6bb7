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

package runner_test

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	librun "github.com/nabbar/pgdoor/runner"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Runner", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("runs Start asynchronously and reports IsRunning/Uptime", func() {
		var started atomic.Bool

		r := librun.New(
			func(ctx context.Context) error {
				started.Store(true)
				<-ctx.Done()
				return nil
			},
			func(ctx context.Context) error { return nil },
		)

		Expect(r.IsRunning()).To(BeFalse())
		Expect(r.Start(ctx)).ToNot(HaveOccurred())
		Eventually(started.Load).Should(BeTrue())
		Expect(r.IsRunning()).To(BeTrue())

		time.Sleep(5 * time.Millisecond)
		Expect(r.Uptime()).To(BeNumerically(">", 0))

		Expect(r.Stop(context.Background())).ToNot(HaveOccurred())
		Expect(r.IsRunning()).To(BeFalse())
		Expect(r.Uptime()).To(Equal(time.Duration(0)))
	})

	It("stops the previous instance when Start is called again while running", func() {
		var starts atomic.Int32

		r := librun.New(
			func(ctx context.Context) error {
				starts.Add(1)
				<-ctx.Done()
				return nil
			},
			func(ctx context.Context) error { return nil },
		)

		Expect(r.Start(ctx)).ToNot(HaveOccurred())
		Eventually(starts.Load).Should(Equal(int32(1)))

		Expect(r.Start(ctx)).ToNot(HaveOccurred())
		Eventually(starts.Load).Should(Equal(int32(2)))

		Expect(r.Stop(context.Background())).ToNot(HaveOccurred())
	})

	It("records errors returned by the start and stop functions", func() {
		startErr := errors.New("start failed")
		stopErr := errors.New("stop failed")

		r := librun.New(
			func(ctx context.Context) error {
				<-ctx.Done()
				return startErr
			},
			func(ctx context.Context) error { return stopErr },
		)

		Expect(r.Start(ctx)).ToNot(HaveOccurred())
		time.Sleep(5 * time.Millisecond)

		Expect(r.Stop(context.Background())).To(MatchError(stopErr))
		Eventually(r.ErrorsLast).Should(MatchError(startErr))
		Expect(r.ErrorsList()).To(ContainElements(startErr, stopErr))
	})

	It("Stop is a no-op when the runner was never started", func() {
		r := librun.New(
			func(ctx context.Context) error { return nil },
			func(ctx context.Context) error { return nil },
		)

		Expect(r.Stop(context.Background())).ToNot(HaveOccurred())
		Expect(r.IsRunning()).To(BeFalse())
	})
})
