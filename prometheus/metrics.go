package prometheus

import (
	"time"

	"inventory-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Report metrics
	ReportRequestsCounter prometheus.CounterVec
	ReportRowsHistogram   prometheus.Histogram

	// Import metrics
	ImportOperationsCounter prometheus.CounterVec
	ImportedRowsCounter     prometheus.CounterVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	// HTTP request metrics
	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTP request duration
	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Database operation metrics
	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	// Report metrics
	ReportRequestsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_report_requests_total",
			Help: "Total number of stock report requests",
		},
		[]string{"result"},
	)

	ReportRowsHistogram = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    prefix + "_report_rows",
			Help:    "Number of rows returned per report page",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
		},
	)

	// Import metrics
	ImportOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_import_operations_total",
			Help: "Total number of bulk import operations",
		},
		[]string{"result"},
	)

	ImportedRowsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_imported_rows_total",
			Help: "Total number of rows upserted by bulk imports",
		},
		[]string{"sheet"},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordReportRequest increments the report request counter
func RecordReportRequest(result string) {
	ReportRequestsCounter.WithLabelValues(result).Inc()
}

// RecordImport increments the import operation counter
func RecordImport(result string) {
	ImportOperationsCounter.WithLabelValues(result).Inc()
}

// RecordImportedRows adds to the per-sheet imported row counter
func RecordImportedRows(sheet string, count int) {
	ImportedRowsCounter.WithLabelValues(sheet).Add(float64(count))
}
