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

// Package config holds the flat configuration structures the acceptor is
// built from. Parsing (viper, flags, env) is confined to cmd/pgdoor; this
// package only validates the already-decoded result, following the same
// struct-tag-plus-Validate() split as github.com/nabbar/golib/certificates.Config,
// scaled down to the acceptor's narrower surface.
package config

import (
	"fmt"

	libval "github.com/go-playground/validator/v10"
	"github.com/nabbar/pgdoor/tlsctx"
)

// Config is the top-level process configuration.
type Config struct {
	Listen   []ListenConfig `mapstructure:"listen" json:"listen" yaml:"listen" toml:"listen" validate:"required,min=1,dive"`
	Workers  uint32         `mapstructure:"workers" json:"workers" yaml:"workers" toml:"workers" validate:"required,min=1"`
	Log      LogConfig      `mapstructure:"log" json:"log" yaml:"log" toml:"log"`
	Backends []string       `mapstructure:"backends" json:"backends" yaml:"backends" toml:"backends"`
	Console  ConsoleConfig  `mapstructure:"console" json:"console" yaml:"console" toml:"console"`
	Cron     CronConfig     `mapstructure:"cron" json:"cron" yaml:"cron" toml:"cron"`
}

// ListenConfig describes a single bound address and its per-connection TCP
// tuning.
type ListenConfig struct {
	Host      string        `mapstructure:"host" json:"host" yaml:"host" toml:"host" validate:"required"`
	Port      uint16        `mapstructure:"port" json:"port" yaml:"port" toml:"port" validate:"required"`
	Backlog   uint32        `mapstructure:"backlog" json:"backlog" yaml:"backlog" toml:"backlog"`
	Nodelay   bool          `mapstructure:"nodelay" json:"nodelay" yaml:"nodelay" toml:"nodelay"`
	Keepalive uint32        `mapstructure:"keepalive" json:"keepalive" yaml:"keepalive" toml:"keepalive"`
	Readahead uint32        `mapstructure:"readahead" json:"readahead" yaml:"readahead" toml:"readahead"`
	TLS       tlsctx.Config `mapstructure:"tls" json:"tls" yaml:"tls" toml:"tls"`
}

// LogConfig configures the logger's sinks.
type LogConfig struct {
	Stdout         bool   `mapstructure:"stdout" json:"stdout" yaml:"stdout" toml:"stdout"`
	File           string `mapstructure:"file" json:"file" yaml:"file" toml:"file"`
	SyslogIdent    string `mapstructure:"syslogIdent" json:"syslogIdent" yaml:"syslogIdent" toml:"syslogIdent"`
	SyslogFacility string `mapstructure:"syslogFacility" json:"syslogFacility" yaml:"syslogFacility" toml:"syslogFacility"`
	SyslogNetwork  string `mapstructure:"syslogNetwork" json:"syslogNetwork" yaml:"syslogNetwork" toml:"syslogNetwork"`
	SyslogAddr     string `mapstructure:"syslogAddr" json:"syslogAddr" yaml:"syslogAddr" toml:"syslogAddr"`
	Debug          bool   `mapstructure:"debug" json:"debug" yaml:"debug" toml:"debug"`
	TSKV           bool   `mapstructure:"tskv" json:"tskv" yaml:"tskv" toml:"tskv"`
}

// ConsoleConfig configures the admin HTTP console.
type ConsoleConfig struct {
	Enabled bool   `mapstructure:"enabled" json:"enabled" yaml:"enabled" toml:"enabled"`
	Listen  string `mapstructure:"listen" json:"listen" yaml:"listen" toml:"listen"`
}

// CronConfig configures the background maintenance ticker.
type CronConfig struct {
	Enabled  bool   `mapstructure:"enabled" json:"enabled" yaml:"enabled" toml:"enabled"`
	Interval string `mapstructure:"interval" json:"interval" yaml:"interval" toml:"interval"`
}

// Validate runs struct-tag validation and the mode-dependent cross-field
// checks each sub-config owns.
func (c *Config) Validate() error {
	if er := libval.New().Struct(c); er != nil {
		return fmt.Errorf("config: %w", er)
	}

	for i := range c.Listen {
		if err := c.Listen[i].TLS.Validate(); err != nil {
			return fmt.Errorf("config: listen[%d]: %w", i, err)
		}
	}

	return nil
}
