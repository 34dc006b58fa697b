package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	IngestRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brace_tracker_ingest_runs_total",
		Help: "Number of ingestion runs started",
	})

	RowsParsedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brace_tracker_rows_parsed_total",
		Help: "CSV rows successfully folded into the record set",
	})

	RowsSkippedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brace_tracker_rows_skipped_total",
		Help: "CSV rows skipped during normalization",
	}, []string{"reason"})

	FilesFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brace_tracker_files_failed_total",
		Help: "CSV files that could not be read",
	})

	ReportsServedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brace_tracker_reports_served_total",
		Help: "Weekly reports served over HTTP",
	}, []string{"status"})
)
