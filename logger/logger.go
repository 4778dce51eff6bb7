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

// Package logger formats and fans out one log event at a time to any
// combination of a log file, syslog and stdout, matching the sink fan-out
// and exact text layout of the original C logger (od_logger_write /
// od_logger_text in logger.c) but built on sirupsen/logrus the way
// github.com/nabbar/golib/logger wires its own hookfile/hooksyslog/hookstdout
// onto a *logrus.Logger, per (logger/hookfile.go, logger/hooksyslog.go).
package logger

import (
	"fmt"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

const (
	fieldKind     = "kind"
	fieldID       = "id"
	fieldContext  = "context"
	fieldShortTag = "short_tag"
)

// Format selects between the fixed text layout and the tskv structured
// layout.
type Format uint8

const (
	FormatText Format = iota
	FormatTSKV
)

// Logger emits one formatted event at a time to whichever sinks are
// attached. Emit never fails observably: a sink write error is swallowed
// and never keeps the remaining sinks from receiving the event.
type Logger interface {
	Emit(kind Kind, id, context, format string, args ...any)
	SetDebug(enabled bool)
	IsDebug() bool
	AddSink(name string, hook logrus.Hook)
	Close() error
}

type logger struct {
	core  *logrus.Logger
	debug atomic.Bool
	sinks []namedSink
}

type namedSink struct {
	name string
	hook logrus.Hook
}

// New builds a Logger with no sinks attached; use AddSink (or the
// New-returning helpers in hooks.go) to wire file/syslog/stdout output.
func New(format Format, debug bool) Logger {
	core := logrus.New()
	core.SetOutput(discard{})
	core.SetLevel(logrus.TraceLevel)

	l := &logger{core: core}
	l.debug.Store(debug)

	_ = format // retained for signature symmetry; formatter choice lives per-sink

	return l
}

// discard is an io.Writer that drops everything; the *logrus.Logger's own
// output is unused since every sink is wired as a Hook instead, following
// the same "standard output disabled, hooks do the writing" pattern as
// github.com/nabbar/golib/logger.
type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func (l *logger) Emit(kind Kind, id, context, format string, args ...any) {
	if kind.IsDebug() && !l.IsDebug() {
		return
	}

	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	entry := l.core.WithFields(logrus.Fields{
		fieldKind:     kind.String(),
		fieldID:       id,
		fieldContext:  context,
		fieldShortTag: kind.ShortTag(),
	})

	entry.Log(kind.Level(), msg)
}

func (l *logger) SetDebug(enabled bool) {
	l.debug.Store(enabled)
}

func (l *logger) IsDebug() bool {
	return l.debug.Load()
}

func (l *logger) AddSink(name string, hook logrus.Hook) {
	l.sinks = append(l.sinks, namedSink{name: name, hook: hook})
	l.core.AddHook(tolerantHook{hook})
}

// tolerantHook drops its sink's Fire error: logrus stops firing the
// remaining hooks at the first error, so passing it on would let one failing
// sink suppress every sink registered after it.
type tolerantHook struct{ logrus.Hook }

func (h tolerantHook) Fire(e *logrus.Entry) error {
	_ = h.Hook.Fire(e)
	return nil
}

// Close closes every sink that implements io.Closer. Per-sink failures are
// collected but never prevent the remaining sinks from closing.
func (l *logger) Close() error {
	var first error
	for _, s := range l.sinks {
		if c, ok := s.hook.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil && first == nil {
				first = fmt.Errorf("logger: closing sink %q: %w", s.name, err)
			}
		}
	}
	return first
}
