/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package metrics exposes Prometheus collectors for the query cache and the
// mock server.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/unikorn-cloud/posts/pkg/query"
)

// Client records query cache activity.
type Client struct {
	hits          *prometheus.CounterVec
	misses        *prometheus.CounterVec
	invalidations *prometheus.CounterVec
	errors        *prometheus.CounterVec
	retries       prometheus.Counter
}

// NewClient creates and registers client collectors.
func NewClient(registerer prometheus.Registerer, reducerPath string) (*Client, error) {
	labels := prometheus.Labels{"api": reducerPath}

	c := &Client{
		hits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "query_cache_hits_total",
				Help:        "Total number of queries served from the cache",
				ConstLabels: labels,
			},
			[]string{"endpoint"},
		),
		misses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "query_cache_misses_total",
				Help:        "Total number of queries that required a request",
				ConstLabels: labels,
			},
			[]string{"endpoint"},
		),
		invalidations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "query_cache_invalidations_total",
				Help:        "Total number of cache entries invalidated",
				ConstLabels: labels,
			},
			[]string{"endpoint"},
		),
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "query_errors_total",
				Help:        "Total number of failed queries and mutations",
				ConstLabels: labels,
			},
			[]string{"endpoint"},
		),
		retries: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name:        "query_retries_total",
				Help:        "Total number of retried requests",
				ConstLabels: labels,
			},
		),
	}

	for _, collector := range []prometheus.Collector{c.hits, c.misses, c.invalidations, c.errors, c.retries} {
		if err := registerer.Register(collector); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Hooks returns cache callbacks that update the collectors.
func (c *Client) Hooks() query.Hooks {
	return query.Hooks{
		OnHit: func(endpoint string) {
			c.hits.WithLabelValues(endpoint).Inc()
		},
		OnMiss: func(endpoint string) {
			c.misses.WithLabelValues(endpoint).Inc()
		},
		OnInvalidate: func(endpoint string) {
			c.invalidations.WithLabelValues(endpoint).Inc()
		},
		OnError: func(endpoint string, _ error) {
			c.errors.WithLabelValues(endpoint).Inc()
		},
	}
}

// RetryOptions returns the given options with retries recorded.
func (c *Client) RetryOptions(options query.RetryOptions) query.RetryOptions {
	next := options.OnRetry

	options.OnRetry = func(ctx context.Context, attempt int, err error) {
		c.retries.Inc()

		if next != nil {
			next(ctx, attempt, err)
		}
	}

	return options
}

// Server records HTTP requests handled by the mock server.
type Server struct {
	gatherer prometheus.Gatherer
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewServer creates and registers server collectors.
func NewServer(registry *prometheus.Registry) (*Server, error) {
	s := &Server{
		gatherer: registry,
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	if err := registry.Register(s.requests); err != nil {
		return nil, err
	}

	if err := registry.Register(s.duration); err != nil {
		return nil, err
	}

	return s, nil
}

// Middleware records every request against its chi route pattern.
func (s *Server) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		writer := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(writer, r)

		route := "unknown"

		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		status := writer.Status()
		if status == 0 {
			status = http.StatusOK
		}

		s.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		s.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the registry in the Prometheus exposition format.
func (s *Server) Handler() http.Handler {
	return promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})
}
