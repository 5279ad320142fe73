package astar

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

// Outcome labels for searchTotal.
const (
	resultFound     = "found"
	resultExhausted = "exhausted"
	resultLimit     = "limit"
	resultCanceled  = "canceled"
	resultInvalid   = "invalid"
)

var tracer = otel.Tracer("driftpath.astar")

var (
	// searchTotal counts searches by variant and outcome.
	searchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "driftpath_search_total",
		Help: "Total searches by variant and result",
	}, []string{"variant", "result"})

	// searchDuration tracks wall time per search.
	searchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "driftpath_search_duration_seconds",
		Help:    "Search duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16), // 0.1ms to ~3s
	}, []string{"variant"})

	// searchExpanded tracks expanded nodes per search.
	searchExpanded = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "driftpath_search_expanded_nodes",
		Help:    "Nodes expanded per search",
		Buckets: prometheus.ExponentialBuckets(10, 4, 10),
	}, []string{"variant"})
)

// classify maps a search error to its outcome label.
func classify(err error) string {
	switch {
	case err == nil:
		return resultFound
	case errors.Is(err, ErrSearchExhausted):
		return resultExhausted
	case errors.Is(err, ErrExpansionLimit):
		return resultLimit
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return resultCanceled
	}

	return resultInvalid
}
