// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	PipelineRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrichment_pipeline_runs_total",
			Help: "Total enrichment pipeline invocations by outcome",
		},
		[]string{"outcome"},
	)

	SearchQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrichment_search_queries_total",
			Help: "Total web search queries issued by status",
		},
		[]string{"status"},
	)

	LLMCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrichment_llm_calls_total",
			Help: "Total LLM completion calls by kind and status",
		},
		[]string{"kind", "status"},
	)
)
