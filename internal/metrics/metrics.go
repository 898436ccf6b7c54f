// Package metrics exposes the workbench's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// QueriesTotal counts statements run from the editor, by outcome.
var QueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "sqlbench_queries_total",
	Help: "Statements run from the query editor, labeled by outcome.",
}, []string{"status"})

// ImportStatements counts statements replayed by imports, by outcome.
var ImportStatements = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "sqlbench_import_statements_total",
	Help: "Statements replayed by script imports, labeled by outcome.",
}, []string{"status"})

// SchemaRefreshes counts completed catalog refreshes.
var SchemaRefreshes = promauto.NewCounter(prometheus.CounterOpts{
	Name: "sqlbench_schema_refreshes_total",
	Help: "Catalog refreshes that produced a new snapshot.",
})

// ExportDuration observes the time spent generating export scripts.
var ExportDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "sqlbench_export_duration_seconds",
	Help:    "Time spent generating SQL export scripts.",
	Buckets: prometheus.DefBuckets,
})
