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

package logger_test

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	liblog "github.com/nabbar/pgdoor/logger"
	"github.com/sirupsen/logrus"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type captureHook struct {
	mu      sync.Mutex
	lines   []string
	failing bool
}

func (h *captureHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *captureHook) Fire(e *logrus.Entry) error {
	b, err := liblog.TextFormatter{}.Format(e)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lines = append(h.lines, string(b))
	if h.failing {
		return errors.New("capture: simulated sink failure")
	}
	return nil
}

func (h *captureHook) Close() error { return nil }

func (h *captureHook) snapshot() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.lines))
	copy(out, h.lines)
	return out
}

var _ = Describe("Logger", func() {
	It("renders the exact line layout for a client-error event", func() {
		cap := &captureHook{}
		l := liblog.New(liblog.FormatText, false)
		l.AddSink("capture", cap)

		l.Emit(liblog.KindClientError, "c1a2b3", "router", "connection reset by %s", "peer")

		lines := cap.snapshot()
		Expect(lines).To(HaveLen(1))
		line := lines[0]

		Expect(line).To(ContainSubstring("error: "))
		Expect(line).To(ContainSubstring("c1a2b3: "))
		Expect(line).To(ContainSubstring("(router) "))
		Expect(line).To(ContainSubstring("connection reset by peer"))
		Expect(line).To(HaveSuffix("\n"))
	})

	It("omits the id segment entirely when no id is supplied", func() {
		cap := &captureHook{}
		l := liblog.New(liblog.FormatText, false)
		l.AddSink("capture", cap)

		l.Emit(liblog.KindGeneric, "", "", "listening on %s", "0.0.0.0:6432")

		line := cap.snapshot()[0]
		Expect(line).ToNot(ContainSubstring(": : "))
		Expect(line).To(ContainSubstring("listening on 0.0.0.0:6432"))
	})

	It("suppresses debug events unless debug logging is enabled", func() {
		cap := &captureHook{}
		l := liblog.New(liblog.FormatText, false)
		l.AddSink("capture", cap)

		l.Emit(liblog.KindServerDebug, "", "", "poll woke with %d events", 3)
		Expect(cap.snapshot()).To(BeEmpty())

		l.SetDebug(true)
		l.Emit(liblog.KindServerDebug, "", "", "poll woke with %d events", 3)
		Expect(cap.snapshot()).To(HaveLen(1))
	})

	It("does not let one failing sink suppress another", func() {
		bad := &captureHook{failing: true}
		good := &captureHook{}

		l := liblog.New(liblog.FormatText, false)
		l.AddSink("bad", bad)
		l.AddSink("good", good)

		l.Emit(liblog.KindError, "", "", "boom")

		Expect(bad.snapshot()).To(HaveLen(1))
		Expect(good.snapshot()).To(HaveLen(1))
	})

	It("truncates silently past the 512 byte line budget", func() {
		cap := &captureHook{}
		l := liblog.New(liblog.FormatText, false)
		l.AddSink("capture", cap)

		l.Emit(liblog.KindGeneric, "", "", "%s", strings.Repeat("x", 1024))

		line := cap.snapshot()[0]
		Expect(len(line)).To(BeNumerically("<=", 512))
		Expect(line).To(HaveSuffix("\n"))
	})

	It("renders tskv fields as tab-separated key=value pairs", func() {
		e := logrus.NewEntry(logrus.New())
		e.Message = "hello"
		e.Data = logrus.Fields{"id": "c1", "context": "router"}

		b, err := liblog.TSKVFormatter{}.Format(e)
		Expect(err).ToNot(HaveOccurred())

		line := string(b)
		Expect(line).To(HavePrefix("tskv\t"))
		Expect(line).To(ContainSubstring(fmt.Sprintf("id=%s", "c1")))
		Expect(line).To(ContainSubstring("message=hello"))
	})
})
