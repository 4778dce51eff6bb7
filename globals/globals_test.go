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

package globals_test

import (
	libcfg "github.com/nabbar/pgdoor/config"
	libglob "github.com/nabbar/pgdoor/globals"
	liblog "github.com/nabbar/pgdoor/logger"
	"github.com/nabbar/pgdoor/msg"
	libsig "github.com/nabbar/pgdoor/signalhandler"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Globals", func() {
	It("reports listener and worker counts from the config", func() {
		cfg := &libcfg.Config{
			Listen:  []libcfg.ListenConfig{{Host: "127.0.0.1", Port: 6432}, {Host: "127.0.0.1", Port: 6433}},
			Workers: 3,
		}

		g := libglob.New(cfg, liblog.New(liblog.FormatText, false), 0)

		Expect(g.ListenerCount()).To(Equal(2))
		Expect(g.WorkerCount()).To(Equal(3))
	})

	It("reports a worker's live queue depth", func() {
		cfg := &libcfg.Config{
			Listen:  []libcfg.ListenConfig{{Host: "127.0.0.1", Port: 6432}},
			Workers: 2,
		}

		g := libglob.New(cfg, liblog.New(liblog.FormatText, false), 0)

		Expect(g.Pool.Feed(msg.NewClient(nil))).ToNot(HaveOccurred())

		total := 0
		for i := 0; i < g.WorkerCount(); i++ {
			total += g.WorkerQueueDepth(i)
		}
		Expect(total).To(Equal(1))
	})

	It("returns 0 for an out-of-range worker index", func() {
		cfg := &libcfg.Config{
			Listen:  []libcfg.ListenConfig{{Host: "127.0.0.1", Port: 6432}},
			Workers: 1,
		}

		g := libglob.New(cfg, liblog.New(liblog.FormatText, false), 0)
		Expect(g.WorkerQueueDepth(5)).To(Equal(0))
	})

	It("reports an empty last signal before a handler is installed", func() {
		cfg := &libcfg.Config{
			Listen:  []libcfg.ListenConfig{{Host: "127.0.0.1", Port: 6432}},
			Workers: 1,
		}

		g := libglob.New(cfg, liblog.New(liblog.FormatText, false), 0)
		Expect(g.LastSignal()).To(Equal(""))
	})

	It("delegates to the installed signal handler once attached", func() {
		cfg := &libcfg.Config{
			Listen:  []libcfg.ListenConfig{{Host: "127.0.0.1", Port: 6432}},
			Workers: 1,
		}

		g := libglob.New(cfg, liblog.New(liblog.FormatText, false), 0)
		g.Signals = libsig.New(g.Log, func(int) {})

		Expect(g.LastSignal()).To(Equal(""))
	})
})
