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

package listener_test

import (
	"net"

	libcfg "github.com/nabbar/pgdoor/config"
	libid "github.com/nabbar/pgdoor/id"
	liblisten "github.com/nabbar/pgdoor/listener"
	liblog "github.com/nabbar/pgdoor/logger"
	"github.com/nabbar/pgdoor/msg"
	"github.com/nabbar/pgdoor/workerpool"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Listener", func() {
	It("resolves a literal host:port pair without touching interfaces", func() {
		addrs, err := liblisten.Resolve("127.0.0.1", 6432)
		Expect(err).ToNot(HaveOccurred())
		Expect(addrs).To(Equal([]string{"127.0.0.1:6432"}))
	})

	It("resolves '*' into at least one bindable address", func() {
		addrs, err := liblisten.Resolve("*", 6432)
		Expect(err).ToNot(HaveOccurred())
		Expect(addrs).ToNot(BeEmpty())
	})

	It("binds a plaintext listener and feeds accepted connections to the pool", func() {
		pool := workerpool.New(1, 0)
		log := liblog.New(liblog.FormatText, false)
		ids := libid.New()

		cfg := libcfg.ListenConfig{Host: "127.0.0.1", Port: 0, Nodelay: true}

		listeners, errs := liblisten.Build(cfg, log, ids, pool)
		Expect(errs).To(BeEmpty())
		Expect(listeners).To(HaveLen(1))

		l := listeners[0]
		defer l.Close()

		go l.Accept()

		conn, err := net.Dial("tcp", l.Addr().String())
		Expect(err).ToNot(HaveOccurred())
		defer conn.Close()

		var env msg.Envelope
		Eventually(pool.Inbox(0)).Should(Receive(&env))
		Expect(env.Tag).To(Equal(msg.TagNewClient))
		Expect(env.Client.ID).ToNot(BeEmpty())
	})

	It("reports a bind failure for an address already in use without aborting the set", func() {
		pool := workerpool.New(1, 0)
		log := liblog.New(liblog.FormatText, false)
		ids := libid.New()

		held, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).ToNot(HaveOccurred())
		defer held.Close()

		addr := held.Addr().(*net.TCPAddr)

		cfg := libcfg.ListenConfig{Host: "127.0.0.1", Port: uint16(addr.Port)}

		listeners, errs := liblisten.Build(cfg, log, ids, pool)
		Expect(listeners).To(BeEmpty())
		Expect(errs).To(HaveLen(1))
	})
})
