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

package logger

import (
	"io"
	"log"

	"github.com/hashicorp/go-hclog"
	jww "github.com/spf13/jwalterweatherman"
)

// hcLog bridges Logger onto hashicorp/go-hclog, the interface pgx and other
// hashicorp-style dependencies expect, the same bridge
// github.com/nabbar/golib/logger's hclog.go builds (_hclog wrapping Logger).
type hcLog struct {
	l    Logger
	name string
}

// HCLog adapts l to hclog.Logger so it can be handed to any collaborator
// that only knows how to log through hclog (e.g. a pgx tracer).
func HCLog(l Logger, name string) hclog.Logger {
	return &hcLog{l: l, name: name}
}

func (h *hcLog) Log(level hclog.Level, msg string, args ...interface{}) {
	switch level {
	case hclog.Trace, hclog.Debug:
		h.Debug(msg, args...)
	case hclog.Info:
		h.Info(msg, args...)
	case hclog.Warn:
		h.Warn(msg, args...)
	case hclog.Error:
		h.Error(msg, args...)
	}
}

func (h *hcLog) Trace(msg string, args ...interface{}) { h.Debug(msg, args...) }

func (h *hcLog) Debug(msg string, args ...interface{}) {
	h.l.Emit(KindServerDebug, "", h.name, msg)
}

func (h *hcLog) Info(msg string, args ...interface{}) {
	h.l.Emit(KindServerInfo, "", h.name, msg)
}

func (h *hcLog) Warn(msg string, args ...interface{}) {
	h.l.Emit(KindServerInfo, "", h.name, msg)
}

func (h *hcLog) Error(msg string, args ...interface{}) {
	h.l.Emit(KindServerError, "", h.name, msg)
}

func (h *hcLog) IsTrace() bool { return h.l.IsDebug() }
func (h *hcLog) IsDebug() bool { return h.l.IsDebug() }
func (h *hcLog) IsInfo() bool  { return true }
func (h *hcLog) IsWarn() bool  { return true }
func (h *hcLog) IsError() bool { return true }

func (h *hcLog) ImpliedArgs() []interface{} { return nil }
func (h *hcLog) With(args ...interface{}) hclog.Logger { return h }
func (h *hcLog) Name() string { return h.name }
func (h *hcLog) Named(name string) hclog.Logger {
	return &hcLog{l: h.l, name: h.name + "." + name}
}
func (h *hcLog) ResetNamed(name string) hclog.Logger {
	return &hcLog{l: h.l, name: name}
}
func (h *hcLog) SetLevel(hclog.Level) {}
func (h *hcLog) GetLevel() hclog.Level {
	if h.l.IsDebug() {
		return hclog.Debug
	}
	return hclog.Info
}
func (h *hcLog) StandardLogger(*hclog.StandardLoggerOpts) *log.Logger {
	return log.New(logWriter{l: h.l}, "", 0)
}
func (h *hcLog) StandardWriter(*hclog.StandardLoggerOpts) io.Writer { return logWriter{l: h.l} }

// SetJWW routes spf13/jwalterweatherman's global logger (used internally by
// spf13/cobra and spf13/viper) through l, so config-loading diagnostics
// share the acceptor's sinks instead of going to jww's own stdout default.
func SetJWW(l Logger) {
	jww.SetLogOutput(logWriter{l: l})
	jww.SetStdoutOutput(io.Discard)
}

type logWriter struct{ l Logger }

func (w logWriter) Write(p []byte) (int, error) {
	w.l.Emit(KindServerInfo, "", "jww", string(p))
	return len(p), nil
}
