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

// Package metrics holds the prometheus/client_golang collectors the console
// exposes on /metrics. Kept in its own package, rather than inside console,
// so the listener and worker packages can record against them without
// importing the HTTP surface.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Registry is a dedicated registry rather than the global default, so tests
// can spin up independent instances without colliding on re-registration.
var Registry = prometheus.NewRegistry()

// ClientsAccepted counts every connection a Listener has handed to the
// worker pool.
var ClientsAccepted = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "pgdoor_clients_accepted_total",
	Help: "Total number of client connections accepted and dispatched to a worker.",
})

// WorkerQueueDepth reports the current inbox length for a worker, labeled by
// its index.
var WorkerQueueDepth = prometheus.NewGaugeVec(prometheus.GaugeOpts{
	Name: "pgdoor_worker_queue_depth",
	Help: "Current number of pending envelopes in a worker's inbox.",
}, []string{"worker"})

// ListenerBound reports 1 while a listener's socket is bound, labeled by its
// address.
var ListenerBound = prometheus.NewGaugeVec(prometheus.GaugeOpts{
	Name: "pgdoor_listener_bound",
	Help: "1 while the listener for this address is bound and accepting, 0 otherwise.",
}, []string{"address"})

func init() {
	Registry.MustRegister(ClientsAccepted, WorkerQueueDepth, ListenerBound)
}
