// Package metrics provides Prometheus metrics for the order-entry backend
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Request metrics
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "curtainpro_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Order metrics
	OrdersSaved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "curtainpro_orders_saved_total",
			Help: "Total number of orders saved",
		},
	)

	CustomersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "curtainpro_customers_created_total",
			Help: "Total number of customer records created",
		},
	)

	// Document metrics
	DocumentsRendered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curtainpro_documents_rendered_total",
			Help: "Total number of order documents rendered",
		},
		[]string{"format"},
	)

	// Image blob metrics
	ImageWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curtainpro_image_writes_total",
			Help: "Image blob writes by backend and status",
		},
		[]string{"backend", "status"},
	)
)
