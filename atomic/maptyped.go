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

package atomic

import "sync"

// MapTyped is a race-free map from K to V.
type MapTyped[K comparable, V any] interface {
	// Load returns the value stored for key, or ok=false if absent.
	Load(key K) (value V, ok bool)
	// Store sets the value for key, overwriting any previous value.
	Store(key K, value V)
	// Range calls f for every key, in unspecified order, until f returns
	// false or every entry has been visited.
	Range(f func(key K, value V) bool)
}

type mt[K comparable, V any] struct {
	m sync.Map
}

// NewMapTyped returns an empty MapTyped[K, V] backed by a sync.Map.
func NewMapTyped[K comparable, V any]() MapTyped[K, V] {
	return &mt[K, V]{}
}

func (o *mt[K, V]) Load(key K) (value V, ok bool) {
	x, present := o.m.Load(key)
	if !present {
		return value, false
	}

	value, ok = x.(V)
	return value, ok
}

func (o *mt[K, V]) Store(key K, value V) {
	o.m.Store(key, value)
}

func (o *mt[K, V]) Range(f func(key K, value V) bool) {
	o.m.Range(func(key, value any) bool {
		k, ok := key.(K)
		if !ok {
			return true
		}

		v, ok := value.(V)
		if !ok {
			return true
		}

		return f(k, v)
	})
}
