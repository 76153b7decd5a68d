package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersProcessedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_processed_total",
		Help: "Total number of order events processed",
	})

	OrdersSkippedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_skipped_total",
		Help: "Total number of order events skipped",
	}, []string{"reason"})

	PriceUpdatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "price_updates_total",
		Help: "Total number of successful product price updates",
	})

	PriceUpdatesFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "price_updates_failed_total",
		Help: "Total number of failed product price updates",
	}, []string{"reason"})

	PriceUpdateLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "price_update_latency_seconds",
		Help:    "Latency of a single product price update",
		Buckets: prometheus.DefBuckets,
	})

	NotificationsPublishedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifications_published_total",
		Help: "Total number of price change notifications published",
	})

	NotificationsFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifications_failed_total",
		Help: "Total number of price change notifications that failed to publish",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
