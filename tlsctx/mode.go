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

// Package tlsctx builds crypto/tls configurations for a listener from a
// PostgreSQL-style sslmode enum, grounded on github.com/nabbar/golib/certificates'
// config-to-tls.Config conversion (see certificates/config.go, model.go) but
// collapsed from that package's full cipher/curve/version management down to
// the five-mode sslmode surface a front-door acceptor needs.
package tlsctx

import "fmt"

// Mode mirrors PostgreSQL's sslmode values that apply to a server-side
// listener accepting client connections.
type Mode uint8

const (
	// ModeDisable never negotiates TLS; the listener is plaintext-only.
	ModeDisable Mode = iota
	// ModeAllow loads certificate material and requests no client
	// certificate, like ModeRequire. The listener wraps every accepted
	// connection in TLS for it, so a plaintext client is not served.
	ModeAllow
	// ModeRequire requires TLS but does not validate the client certificate
	// against a CA.
	ModeRequire
	// ModeVerifyCA requires TLS and validates the client certificate against
	// the configured CA pool, without checking the certificate's hostname.
	ModeVerifyCA
	// ModeVerifyFull requires TLS and validates the client certificate
	// against the CA pool. Build configures it exactly like ModeVerifyCA; no
	// hostname check is made.
	ModeVerifyFull
)

func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "disable":
		return ModeDisable, nil
	case "allow":
		return ModeAllow, nil
	case "require":
		return ModeRequire, nil
	case "verify-ca":
		return ModeVerifyCA, nil
	case "verify-full":
		return ModeVerifyFull, nil
	default:
		return ModeDisable, fmt.Errorf("tlsctx: unknown sslmode %q", s)
	}
}

func (m Mode) String() string {
	switch m {
	case ModeDisable:
		return "disable"
	case ModeAllow:
		return "allow"
	case ModeRequire:
		return "require"
	case ModeVerifyCA:
		return "verify-ca"
	case ModeVerifyFull:
		return "verify-full"
	default:
		return "unknown"
	}
}

// RequiresTLS reports whether the mode rejects plaintext connections
// outright (every mode except disable and allow).
func (m Mode) RequiresTLS() bool {
	return m == ModeRequire || m == ModeVerifyCA || m == ModeVerifyFull
}

// VerifiesClient reports whether the mode validates the client certificate
// against a CA pool.
func (m Mode) VerifiesClient() bool {
	return m == ModeVerifyCA || m == ModeVerifyFull
}
