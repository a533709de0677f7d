package main

import (
	"net/http"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/kit/metrics/prometheus"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SimMetrics bundles the counters the convergence simulation reports.
// Both carry a 'type' label naming the data type involved.
type SimMetrics struct {
	Ops    metrics.Counter
	Merges metrics.Counter
}

// NewSimMetrics returns prometheus-backed simulation metrics when a listen
// address is configured and no-op metrics otherwise.
func NewSimMetrics(prometheusAddr string) *SimMetrics {

	m := &SimMetrics{}

	if prometheusAddr == "" {
		m.Ops = discard.NewCounter()
		m.Merges = discard.NewCounter()
	} else {
		m.Ops = prometheus.NewCounterFrom(prom.CounterOpts{
			Namespace: "convergent",
			Subsystem: "sim",
			Name:      "operations_total",
			Help:      "Number of local data type operations applied",
		}, []string{"type"})
		m.Merges = prometheus.NewCounterFrom(prom.CounterOpts{
			Namespace: "convergent",
			Subsystem: "sim",
			Name:      "merges_total",
			Help:      "Number of peer states merged",
		}, []string{"type"})
	}

	return m
}

func runPromHTTP(logger log.Logger, addr string) {

	if addr == "" {
		level.Debug(logger).Log("msg", "prometheus addr is empty, not exposing prometheus metrics")
		return
	}

	http.Handle("/metrics", promhttp.Handler())

	level.Info(logger).Log("msg", "prometheus handler listening", "addr", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		level.Warn(logger).Log("msg", "failed to serve prometheus metrics", "err", err)
	}
}
