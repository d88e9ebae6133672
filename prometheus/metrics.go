package prometheus

import (
	"hanouti-api/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Order metrics
	OrdersPlacedCounter      prometheus.Counter
	OrderPlacementErrors     prometheus.CounterVec
	StockInsufficientCounter prometheus.Counter
	OrderStatusTransitions   prometheus.CounterVec

	// Order lookup metrics
	OrderLookupCounter prometheus.CounterVec

	// Catalog metrics
	CategoryOperationsCounter prometheus.CounterVec
	ProductOperationsCounter  prometheus.CounterVec

	// Listing cache metrics
	CacheRequestsCounter prometheus.CounterVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(cfg *config.Config) {
	prefix := cfg.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	OrdersPlacedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_orders_placed_total",
			Help: "Total number of orders placed successfully",
		},
	)

	OrderPlacementErrors = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_order_placement_errors_total",
			Help: "Total number of rejected or failed order placements",
		},
		[]string{"reason"},
	)

	StockInsufficientCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_stock_insufficient_total",
			Help: "Total number of placements rejected for insufficient stock",
		},
	)

	OrderStatusTransitions = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_order_status_transitions_total",
			Help: "Total number of admin order status transitions",
		},
		[]string{"from", "to"},
	)

	OrderLookupCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_order_lookups_total",
			Help: "Total number of public order lookups",
		},
		[]string{"result"},
	)

	CategoryOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_category_operations_total",
			Help: "Total number of category operations",
		},
		[]string{"operation"},
	)

	ProductOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_product_operations_total",
			Help: "Total number of product operations",
		},
		[]string{"operation"},
	)

	CacheRequestsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_cache_requests_total",
			Help: "Total number of listing cache requests",
		},
		[]string{"key", "result"},
	)
}

// RecordOrderPlacementError increments the counter for a rejected placement
func RecordOrderPlacementError(reason string) {
	OrderPlacementErrors.WithLabelValues(reason).Inc()
}

// RecordOrderLookup increments the lookup counter with hit or miss
func RecordOrderLookup(result string) {
	OrderLookupCounter.WithLabelValues(result).Inc()
}

// RecordCategoryOperation increments the counter for category operations
func RecordCategoryOperation(operation string) {
	CategoryOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordProductOperation increments the counter for product operations
func RecordProductOperation(operation string) {
	ProductOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordCacheRequest increments the cache counter with hit or miss
func RecordCacheRequest(key, result string) {
	CacheRequestsCounter.WithLabelValues(key, result).Inc()
}
