package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParsingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "readmegen_parsing_seconds",
		Help:    "Time spent parsing a source file.",
		Buckets: prometheus.DefBuckets,
	}, []string{"language"})

	ParseFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "readmegen_parse_failures_total",
		Help: "Total number of source files that failed to parse.",
	})

	FilesAnalyzed = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "readmegen_files_analyzed_total",
		Help: "Number of source files analyzed in the last run.",
	})

	RenderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "readmegen_render_seconds",
		Help:    "Time spent rendering the document from a project model.",
		Buckets: prometheus.DefBuckets,
	})

	GenerationRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "readmegen_generation_runs_total",
		Help: "Total number of completed document generation runs.",
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "readmegen_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})

	GenerateRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "readmegen_generate_requests_total",
		Help: "Total number of text generation requests by outcome.",
	}, []string{"outcome"})

	GenerateDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "readmegen_generate_seconds",
		Help:    "Latency of text generation requests.",
		Buckets: prometheus.DefBuckets,
	})
)
