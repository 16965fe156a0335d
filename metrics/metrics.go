// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics exposes Prometheus metrics for the HTTP layer, voting,
// the lottery and album sync.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "photos_voting"

// NewRegistry creates a Prometheus registry with Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

// Handler returns an http.Handler that serves Prometheus metrics.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Metrics bundles every metric group of the service.
type Metrics struct {
	HTTP    *HTTPMetrics
	Votes   *VoteMetrics
	Lottery *LotteryMetrics
	Sync    *SyncMetrics
}

// New creates and registers all metric groups on reg.
func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		HTTP:    NewHTTPMetrics(reg),
		Votes:   NewVoteMetrics(reg),
		Lottery: NewLotteryMetrics(reg),
		Sync:    NewSyncMetrics(reg),
	}
}
