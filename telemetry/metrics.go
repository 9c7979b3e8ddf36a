// SPDX-License-Identifier: MIT

// Package telemetry exposes prometheus collectors for sample materialization.
package telemetry

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lvaugment"

// Metrics counts materialized samples per (variant, modality). A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	samples  *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the collectors on reg. Registering twice on the same
// registry reuses the existing collectors.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	labels := []string{"variant", "modality"}
	m := &Metrics{
		samples: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_total",
			Help:      "Arrays materialized successfully.",
		}, labels),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sample_failures_total",
			Help:      "Arrays that failed a decode or operator step.",
		}, labels),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sample_duration_seconds",
			Help:      "Time spent materializing one array.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, labels),
	}

	var err error
	if m.samples, err = register(reg, m.samples); err != nil {
		return nil, err
	}
	if m.failures, err = register(reg, m.failures); err != nil {
		return nil, err
	}
	if m.duration, err = register(reg, m.duration); err != nil {
		return nil, err
	}

	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}

	return c, nil
}

// Observe records one materialization outcome.
func (m *Metrics) Observe(variant, modality string, took time.Duration, err error) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(variant, modality).Observe(took.Seconds())
	if err != nil {
		m.failures.WithLabelValues(variant, modality).Inc()
		return
	}
	m.samples.WithLabelValues(variant, modality).Inc()
}

// Handler serves the metrics gathered by g in the prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
