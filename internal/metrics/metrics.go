// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics exposes compositor counters and gauges to Prometheus.
package metrics

import (
	"net/http"

	"github.com/MKhiriev/go-compositor/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "compositor"

// Metrics holds Prometheus counters and gauges for the compositor.
type Metrics struct {
	registry *prometheus.Registry

	framesTotal          *prometheus.CounterVec
	vsyncDeliveriesTotal prometheus.Counter
	commandsTotal        *prometheus.CounterVec
	transactionsTotal    *prometheus.CounterVec
	repaintErrorsTotal   prometheus.Counter
	clientFallbackTotal  prometheus.Counter
	requestsTotal        prometheus.Counter
	errorsTotal          prometheus.Counter

	connections   prometheus.Gauge
	screens       prometheus.Gauge
	surfaces      prometheus.Gauge
	pendingTxns   prometheus.Gauge
	refreshRateHz prometheus.Gauge
}

// New creates and registers the compositor metrics on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		framesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Frames composed, by composition mode",
		}, []string{"mode"}),
		vsyncDeliveriesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "vsync_deliveries_total",
			Help:      "VSync events delivered to client connections",
		}),
		commandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Scene commands drained from the synchronizer, by outcome",
		}, []string{"outcome"}),
		transactionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_total",
			Help:      "Transactions received, by outcome",
		}, []string{"outcome"}),
		repaintErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "repaint_errors_total",
			Help:      "Screen repaints that failed",
		}),
		clientFallbackTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "client_fallback_total",
			Help:      "Offline frames the device moved to client composition",
		}),
		requestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests received",
		}),
		errorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_errors_total",
			Help:      "Total number of HTTP responses with error status (4xx or 5xx)",
		}),
		connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "vsync_connections",
			Help:      "Open VSync connections",
		}),
		screens: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "screens",
			Help:      "Attached screens, physical and virtual",
		}),
		surfaces: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "surfaces",
			Help:      "Surfaces in the scene",
		}),
		pendingTxns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pending_transactions",
			Help:      "Transactions queued and not yet applied",
		}),
		refreshRateHz: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "refresh_rate_hz",
			Help:      "Current VSync refresh rate",
		}),
	}

	registry.MustRegister(
		m.framesTotal,
		m.vsyncDeliveriesTotal,
		m.commandsTotal,
		m.transactionsTotal,
		m.repaintErrorsTotal,
		m.clientFallbackTotal,
		m.requestsTotal,
		m.errorsTotal,
		m.connections,
		m.screens,
		m.surfaces,
		m.pendingTxns,
		m.refreshRateHz,
	)

	return m
}

// IncFrame counts one composed frame in mode.
func (m *Metrics) IncFrame(mode models.CompositionMode) {
	m.framesTotal.WithLabelValues(mode.String()).Inc()
}

func (m *Metrics) AddVSyncDeliveries(n int) {
	m.vsyncDeliveriesTotal.Add(float64(n))
}

// AddCommands records the outcome of applying drained commands.
func (m *Metrics) AddCommands(applied, skipped int) {
	m.commandsTotal.WithLabelValues("applied").Add(float64(applied))
	m.commandsTotal.WithLabelValues("skipped").Add(float64(skipped))
}

// IncTransactions counts a received transaction. outcome is "accepted",
// "stale" or "rejected".
func (m *Metrics) IncTransactions(outcome string) {
	m.transactionsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncRepaintErrors() {
	m.repaintErrorsTotal.Inc()
}

func (m *Metrics) IncClientFallback() {
	m.clientFallbackTotal.Inc()
}

func (m *Metrics) IncRequests() {
	m.requestsTotal.Inc()
}

func (m *Metrics) IncErrors() {
	m.errorsTotal.Inc()
}

func (m *Metrics) SetConnections(n int) {
	m.connections.Set(float64(n))
}

func (m *Metrics) SetScreens(n int) {
	m.screens.Set(float64(n))
}

func (m *Metrics) SetSurfaces(n int) {
	m.surfaces.Set(float64(n))
}

func (m *Metrics) SetPendingTransactions(n int) {
	m.pendingTxns.Set(float64(n))
}

func (m *Metrics) SetRefreshRate(hz uint32) {
	m.refreshRateHz.Set(float64(hz))
}

// Registry returns the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an http.Handler that serves Prometheus metrics.
// updateGauges is called before each scrape to refresh gauge values.
func (m *Metrics) Handler(updateGauges func()) http.Handler {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if updateGauges != nil {
			updateGauges()
		}
		h.ServeHTTP(w, r)
	})
}
