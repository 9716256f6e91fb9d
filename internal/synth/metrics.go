package synth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// synthRunsTotal counts synthesis runs by outcome
	synthRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lintinfer_synth_runs_total",
		Help: "Synthesis runs by result",
	}, []string{"result"})

	// evaluationsTotal counts (file, round) evaluator calls
	evaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lintinfer_synth_evaluations_total",
		Help: "Evaluator calls by result",
	}, []string{"result"})

	synthDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lintinfer_synth_duration_seconds",
		Help:    "Wall time of a full synthesis",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 14), // 10ms to ~80s
	})
)
