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

package tlsctx

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	libval "github.com/go-playground/validator/v10"
)

// Config describes the TLS material for one listener. CertFile/KeyFile are
// required whenever Mode.RequiresTLS() or ModeAllow is set; ClientCAFile is
// required when Mode.VerifiesClient() is set.
type Config struct {
	Mode         Mode   `mapstructure:"mode" json:"mode" yaml:"mode" toml:"mode" validate:"-"`
	CertFile     string `mapstructure:"certFile" json:"certFile" yaml:"certFile" toml:"certFile"`
	KeyFile      string `mapstructure:"keyFile" json:"keyFile" yaml:"keyFile" toml:"keyFile"`
	ClientCAFile string `mapstructure:"clientCAFile" json:"clientCAFile" yaml:"clientCAFile" toml:"clientCAFile"`
	ServerName   string `mapstructure:"serverName" json:"serverName" yaml:"serverName" toml:"serverName"`
}

// Validate checks that the fields required by Mode are present, using
// go-playground/validator for the structural checks and a manual
// cross-field pass for the mode-dependent requirements, the same split the
// upstream certificates package uses between struct tags and Validate().
func (c *Config) Validate() error {
	if er := libval.New().Struct(c); er != nil {
		return fmt.Errorf("tlsctx: %w", er)
	}

	if c.Mode == ModeDisable {
		return nil
	}

	if c.CertFile == "" || c.KeyFile == "" {
		return fmt.Errorf("tlsctx: certFile and keyFile are required for sslmode %q", c.Mode)
	}

	if c.Mode.VerifiesClient() && c.ClientCAFile == "" {
		return fmt.Errorf("tlsctx: clientCAFile is required for sslmode %q", c.Mode)
	}

	return nil
}

// Build converts Config into a *tls.Config ready for tls.NewListener. It
// returns (nil, nil) when Mode is ModeDisable, signaling the listener should
// stay plaintext.
func Build(c Config) (*tls.Config, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if c.Mode == ModeDisable {
		return nil, nil
	}

	cert, err := tls.LoadX509KeyPair(c.CertFile, c.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("tlsctx: loading certificate pair: %w", err)
	}

	cfg := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
		ServerName:   c.ServerName,
	}

	switch {
	case c.Mode.VerifiesClient():
		pool, err := loadCAPool(c.ClientCAFile)
		if err != nil {
			return nil, err
		}
		cfg.ClientCAs = pool
		cfg.ClientAuth = tls.RequireAndVerifyClientCert
	case c.Mode == ModeRequire:
		cfg.ClientAuth = tls.NoClientCert
	case c.Mode == ModeAllow:
		cfg.ClientAuth = tls.NoClientCert
	}

	return cfg, nil
}

func loadCAPool(path string) (*x509.CertPool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tlsctx: reading client CA file: %w", err)
	}

	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, fmt.Errorf("tlsctx: client CA file %q is empty", path)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(b) {
		return nil, fmt.Errorf("tlsctx: no certificates parsed from %q", path)
	}

	return pool, nil
}
