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
	"fmt"
	"io"
	"log/syslog"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

func formatterFor(f Format) logrus.Formatter {
	if f == FormatTSKV {
		return TSKVFormatter{}
	}
	return TextFormatter{}
}

// hookFile writes formatted lines to an append-only file, grounded on
// github.com/nabbar/golib/logger's hookfile.go (NewHookFile: open-or-create,
// append mode, mutex-guarded Write).
type hookFile struct {
	mu  sync.Mutex
	fh  *os.File
	fmt logrus.Formatter
}

// NewHookFile opens (creating if needed) path in append mode and returns a
// logrus.Hook writing every entry through format.
func NewHookFile(path string, format Format) (logrus.Hook, error) {
	fh, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("logger: opening log file %q: %w", path, err)
	}
	return &hookFile{fh: fh, fmt: formatterFor(format)}, nil
}

func (h *hookFile) Levels() []logrus.Level { return logrus.AllLevels }

func (h *hookFile) Fire(e *logrus.Entry) error {
	b, err := h.fmt.Format(e)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.fh.Write(b)
	return err
}

func (h *hookFile) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.fh.Close()
}

// hookStdout writes formatted lines to os.Stdout.
type hookStdout struct {
	mu  sync.Mutex
	out io.Writer
	fmt logrus.Formatter
}

func NewHookStdout(format Format) logrus.Hook {
	return &hookStdout{out: os.Stdout, fmt: formatterFor(format)}
}

func (h *hookStdout) Levels() []logrus.Level { return logrus.AllLevels }

func (h *hookStdout) Fire(e *logrus.Entry) error {
	b, err := h.fmt.Format(e)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.out.Write(b)
	return err
}

func (h *hookStdout) Close() error { return nil }

// hookSyslog writes formatted lines to the system log, grounded on
// github.com/nabbar/golib/logger's hooksyslog.go (NewHookSyslog: syslog.Dial,
// Levels/Fire against a *syslog.Writer).
type hookSyslog struct {
	mu  sync.Mutex
	w   *syslog.Writer
	fmt logrus.Formatter
}

// NewHookSyslog dials the syslog daemon (network/addr empty means the local
// unix socket) and returns a logrus.Hook tagged with ident.
func NewHookSyslog(network, addr string, priority syslog.Priority, ident string, format Format) (logrus.Hook, error) {
	w, err := syslog.Dial(network, addr, priority, ident)
	if err != nil {
		return nil, fmt.Errorf("logger: dialing syslog: %w", err)
	}
	return &hookSyslog{w: w, fmt: formatterFor(format)}, nil
}

func (h *hookSyslog) Levels() []logrus.Level { return logrus.AllLevels }

func (h *hookSyslog) Fire(e *logrus.Entry) error {
	b, err := h.fmt.Format(e)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	switch e.Level {
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		_, err = h.w.Err(string(b))
	case logrus.DebugLevel, logrus.TraceLevel:
		_, err = h.w.Debug(string(b))
	default:
		_, err = h.w.Info(string(b))
	}
	return err
}

func (h *hookSyslog) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.w.Close()
}
