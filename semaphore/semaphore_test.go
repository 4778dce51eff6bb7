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

package semaphore_test

import (
	"context"
	"sync"
	"time"

	libsem "github.com/nabbar/pgdoor/semaphore"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Semaphore", func() {
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)

	BeforeEach(func() {
		ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	})

	AfterEach(func() {
		cancel()
	})

	It("bounds concurrency and blocks NewWorker past the limit until a slot frees", func() {
		sem := libsem.New(ctx, 2)
		defer sem.DeferMain()

		Expect(sem.NewWorker()).ToNot(HaveOccurred())
		Expect(sem.NewWorker()).ToNot(HaveOccurred())
		Expect(sem.NewWorkerTry()).To(BeFalse())

		sem.DeferWorker()
		Expect(sem.NewWorkerTry()).To(BeTrue())

		sem.DeferWorker()
		sem.DeferWorker()
	})

	It("WaitAll returns only once every issued worker has been released", func() {
		sem := libsem.New(ctx, 3)
		defer sem.DeferMain()

		var wg sync.WaitGroup
		for i := 0; i < 3; i++ {
			Expect(sem.NewWorker()).ToNot(HaveOccurred())
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer sem.DeferWorker()
				time.Sleep(10 * time.Millisecond)
			}()
		}
		wg.Wait()

		Expect(sem.WaitAll()).ToNot(HaveOccurred())
	})

	It("reports the configured weight", func() {
		sem := libsem.New(ctx, 7)
		defer sem.DeferMain()

		Expect(sem.Weighted()).To(Equal(int64(7)))
	})
})
