// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TasksCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_tasks_completed_total",
			Help: "Total number of pipeline tasks completed",
		},
		[]string{"task_type"},
	)

	TasksFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_tasks_failed_total",
			Help: "Total number of pipeline tasks failed",
		},
		[]string{"task_type", "error_code"},
	)

	TaskDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "pipeline_task_duration_seconds",
			Help: "Duration of pipeline task processing in seconds",
		},
		[]string{"task_type"},
	)

	// VideoSelections tracks the terminal outcome of every selector run:
	// direct_video, search_link_no_key, search_link_no_candidates,
	// search_link_error.
	VideoSelections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_selections_total",
			Help: "Video selection outcomes by type",
		},
		[]string{"outcome"},
	)

	SSEClientsConnected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sse_clients_connected",
			Help: "Number of currently connected SSE clients",
		},
	)
)
