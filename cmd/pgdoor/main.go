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

// Command pgdoor is the front-door acceptor's entry point. Configuration
// parsing lives here and only here: spf13/viper decodes the config file,
// spf13/cobra owns the command surface, and the decoded result is handed to
// the core packages as an already-validated config.Config — none of them
// ever import viper or cobra themselves.
package main

import (
	"context"
	"fmt"
	"log/syslog"
	"os"
	"os/signal"
	"syscall"
	"time"

	spfcbr "github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nabbar/pgdoor/config"
	"github.com/nabbar/pgdoor/logger"
	"github.com/nabbar/pgdoor/supervisor"
)

const shutdownGrace = 10 * time.Second

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *spfcbr.Command {
	root := &spfcbr.Command{
		Use:   "pgdoor",
		Short: "pgdoor is a PostgreSQL connection-pooler front-door acceptor",
	}

	var cfgFile string

	run := &spfcbr.Command{
		Use:   "run",
		Short: "run the acceptor until terminated",
		RunE: func(cmd *spfcbr.Command, args []string) error {
			return runAcceptor(cfgFile)
		},
	}
	run.Flags().StringVarP(&cfgFile, "config", "c", "", "path to the config file (json, yaml, toml)")
	_ = run.MarkFlagRequired("config")

	root.AddCommand(run)

	return root
}

func runAcceptor(cfgFile string) error {
	v := viper.New()
	v.SetConfigFile(cfgFile)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config file %q: %w", cfgFile, err)
	}

	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("decoding config file %q: %w", cfgFile, err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log := buildLogger(cfg.Log)
	defer func() { _ = log.Close() }()
	logger.SetJWW(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sup := supervisor.New(&cfg, log, func(int) { stop() })

	if err := sup.Start(ctx); err != nil {
		return fmt.Errorf("starting acceptor: %w", err)
	}

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	return sup.Stop(stopCtx)
}

func buildLogger(cfg config.LogConfig) logger.Logger {
	format := logger.FormatText
	if cfg.TSKV {
		format = logger.FormatTSKV
	}

	log := logger.New(format, cfg.Debug)

	if cfg.Stdout {
		log.AddSink("stdout", logger.NewHookStdout(format))
	}

	if cfg.File != "" {
		if hook, err := logger.NewHookFile(cfg.File, format); err == nil {
			log.AddSink("file", hook)
		} else {
			fmt.Fprintf(os.Stderr, "pgdoor: opening log file %q: %v\n", cfg.File, err)
		}
	}

	if cfg.SyslogNetwork != "" || cfg.SyslogAddr != "" {
		priority, err := syslogPriority(cfg.SyslogFacility)
		if err != nil {
			fmt.Fprintf(os.Stderr, "pgdoor: %v\n", err)
		} else if hook, err := logger.NewHookSyslog(cfg.SyslogNetwork, cfg.SyslogAddr, priority, cfg.SyslogIdent, format); err == nil {
			log.AddSink("syslog", hook)
		} else {
			fmt.Fprintf(os.Stderr, "pgdoor: dialing syslog: %v\n", err)
		}
	}

	return log
}

func syslogPriority(facility string) (syslog.Priority, error) {
	switch facility {
	case "", "daemon":
		return syslog.LOG_DAEMON, nil
	case "local0":
		return syslog.LOG_LOCAL0, nil
	case "local1":
		return syslog.LOG_LOCAL1, nil
	case "local2":
		return syslog.LOG_LOCAL2, nil
	case "local3":
		return syslog.LOG_LOCAL3, nil
	case "local4":
		return syslog.LOG_LOCAL4, nil
	case "local5":
		return syslog.LOG_LOCAL5, nil
	case "local6":
		return syslog.LOG_LOCAL6, nil
	case "local7":
		return syslog.LOG_LOCAL7, nil
	case "user":
		return syslog.LOG_USER, nil
	default:
		return 0, fmt.Errorf("unknown syslog facility %q", facility)
	}
}
