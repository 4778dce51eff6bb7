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

// Package pgerr implements the error taxonomy of the front-door acceptor:
// transient I/O, listener-fatal, startup-fatal, signal-driven termination
// and logger-sink failures, each carrying an optional parent cause.
//
// Modeled on github.com/nabbar/golib/errors (CodeError constants, parent
// chaining, Is/As compatibility) but scoped to the five kinds the acceptor
// actually needs instead of a generic HTTP-status-like code space.
package pgerr

import (
	"errors"
	"fmt"
)

// Kind classifies an error into one of the five buckets the acceptor acts on.
type Kind uint8

const (
	// KindTransient covers recoverable per-client failures: the offending
	// client is discarded and the caller's loop continues.
	KindTransient Kind = iota
	// KindListenerFatal means one listener's accept loop must exit; other
	// listeners are unaffected.
	KindListenerFatal
	// KindStartupFatal means a supervisor startup step failed.
	KindStartupFatal
	// KindSignal marks a signal-driven termination path.
	KindSignal
	// KindSink marks a logger sink failure, always tolerated by the caller.
	KindSink
)

func (k Kind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindListenerFatal:
		return "listener-fatal"
	case KindStartupFatal:
		return "startup-fatal"
	case KindSignal:
		return "signal"
	case KindSink:
		return "sink"
	default:
		return "unknown"
	}
}

// Error is the taxonomy-tagged error type returned across the acceptor's
// package boundaries. It is never unwound across a goroutine boundary —
// each goroutine inspects Kind() and decides to skip the unit of work,
// exit its loop, or terminate the process.
type Error struct {
	kind   Kind
	msg    string
	parent error
}

func New(kind Kind, msg string, parent error) *Error {
	return &Error{kind: kind, msg: msg, parent: parent}
}

func (e *Error) Error() string {
	if e.parent != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.parent)
	}
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.parent
}

func (e *Error) Kind() Kind {
	return e.kind
}

// Is reports whether target is a pgerr.Error of the same Kind, enabling
// errors.Is(err, pgerr.New(pgerr.KindListenerFatal, "", nil)) style checks.
func (e *Error) Is(target error) bool {
	var o *Error
	if errors.As(target, &o) {
		return o.kind == e.kind
	}
	return false
}

func IsKind(err error, kind Kind) bool {
	var o *Error
	if errors.As(err, &o) {
		return o.kind == kind
	}
	return false
}
