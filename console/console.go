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

// Package console runs the admin HTTP surface: a gin-gonic/gin engine
// exposing /status (JSON process snapshot) and /metrics (the dedicated
// metrics.Registry, not the global prometheus/client_golang default
// registry). Grounded on
// github.com/nabbar/golib/httpserver's server wrapping a *http.Server with
// Start/Stop, and its prometheus package's ExposeGin bridge between the
// registry and a gin engine.
package console

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nabbar/pgdoor/logger"
	"github.com/nabbar/pgdoor/metrics"
)

// StatusProvider reports the live counters the /status route renders.
// globals.Globals implements this; the interface keeps console from
// importing globals directly and creating an import cycle.
type StatusProvider interface {
	ListenerCount() int
	WorkerCount() int
	WorkerQueueDepth(worker int) int
	LastSignal() string
}

// Console owns the admin HTTP server's lifecycle.
type Console struct {
	srv *http.Server
	log logger.Logger
}

// New builds a Console bound to addr. The server is not started until
// Start is called.
func New(addr string, log logger.Logger, status StatusProvider) *Console {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/status", func(c *gin.Context) {
		depths := make([]int, status.WorkerCount())
		for i := range depths {
			depths[i] = status.WorkerQueueDepth(i)
		}

		c.JSON(http.StatusOK, gin.H{
			"listeners":          status.ListenerCount(),
			"workers":            status.WorkerCount(),
			"worker_queue_depth": depths,
			"last_signal":        status.LastSignal(),
		})
	})

	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	return &Console{
		srv: &http.Server{Addr: addr, Handler: engine},
		log: log,
	}
}

// Handler returns the underlying http.Handler, for tests that want to drive
// requests through httptest without binding a real socket.
func (c *Console) Handler() http.Handler {
	return c.srv.Handler
}

// Start runs the HTTP server until ctx is canceled or Stop is called.
// ListenAndServe's expected http.ErrServerClosed is swallowed; anything
// else is logged and returned.
func (c *Console) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = c.srv.Close()
	}()

	if err := c.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		c.log.Emit(logger.KindServerError, "", "console", "http server stopped: %v", err)
		return err
	}

	return nil
}

// Stop gracefully shuts the HTTP server down.
func (c *Console) Stop(ctx context.Context) error {
	return c.srv.Shutdown(ctx)
}
