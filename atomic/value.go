/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
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

// Package atomic holds the two generic, race-free containers the acceptor
// actually needs: a single typed cell (signalhandler's last-signal value)
// and a typed map (serverpool's route-to-pool registry). Both are thin
// generic wrappers over sync/atomic.Value and sync.Map; the only thing
// added here is the type safety that those stdlib types don't give for
// free over an any payload.
package atomic

import "sync/atomic"

// Value is a race-free cell holding a single T.
type Value[T any] interface {
	// Load returns the most recently stored value, or the zero value of T
	// if Store has never been called.
	Load() T
	// Store replaces the held value.
	Store(v T)
}

type val[T any] struct {
	av atomic.Value
}

// NewValue returns an empty Value[T].
func NewValue[T any]() Value[T] {
	return &val[T]{}
}

func (v *val[T]) Load() T {
	x, _ := v.av.Load().(T)
	return x
}

func (v *val[T]) Store(x T) {
	v.av.Store(x)
}
