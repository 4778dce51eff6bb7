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

// Package id generates short, printable identifiers for client sessions.
// Every id is prefixed with a single letter tag ("c" for clients) so log
// lines can be grepped by record kind at a glance.
//
// Backed by google/uuid, the same id-generation library used throughout
// github.com/codeready-toolchain/tarsy's services (see e.g.
// pkg/services/session_service.go's uuid.New().String()), trimmed to the
// first 12 hex characters since full UUIDs are unnecessarily wide for a
// log prefix and the acceptor only needs per-process uniqueness, not
// global uniqueness.
package id

import (
	"strings"

	"github.com/google/uuid"
)

// Manager hands out identifiers unique for the lifetime of the process.
type Manager interface {
	Generate(prefix string) string
}

type manager struct{}

// New returns the default Manager.
func New() Manager {
	return manager{}
}

func (manager) Generate(prefix string) string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	if len(raw) > 12 {
		raw = raw[:12]
	}
	return prefix + raw
}

// Generate is a package-level convenience wrapping New().Generate, for
// callers that don't need to hold onto a Manager.
func Generate(prefix string) string {
	return New().Generate(prefix)
}
