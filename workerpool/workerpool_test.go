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

package workerpool_test

import (
	"github.com/nabbar/pgdoor/client"
	"github.com/nabbar/pgdoor/msg"
	libwp "github.com/nabbar/pgdoor/workerpool"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Pool", func() {
	It("dispatches round-robin starting at worker 0", func() {
		p := libwp.New(3, 0)
		defer p.Close()

		for i := 0; i < 7; i++ {
			Expect(p.Feed(msg.NewClient(&client.Client{ID: "c"}))).ToNot(HaveOccurred())
		}

		Expect(p.Inbox(0)).To(HaveLen(3))
		for i := 1; i < 3; i++ {
			Expect(p.Inbox(i)).To(HaveLen(2))
		}
	})

	It("delivers messages from a single producer to one worker in FIFO order", func() {
		p := libwp.New(1, 0)
		defer p.Close()

		for i := 0; i < 5; i++ {
			id := string(rune('a' + i))
			Expect(p.Feed(msg.NewClient(&client.Client{ID: id}))).ToNot(HaveOccurred())
		}

		for i := 0; i < 5; i++ {
			env := <-p.Inbox(0)
			Expect(env.Client.ID).To(Equal(string(rune('a' + i))))
		}
	})

	It("returns an error instead of blocking when bounded and full", func() {
		p := libwp.New(1, 1)
		defer p.Close()

		Expect(p.Feed(msg.NewClient(&client.Client{ID: "c1"}))).ToNot(HaveOccurred())
		Expect(p.Feed(msg.NewClient(&client.Client{ID: "c2"}))).To(HaveOccurred())
	})
})
