package report

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	documentsEnriched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "radar_documents_enriched_total",
		Help: "Search results enriched with entities, sentiment and insights.",
	}, []string{"topic"})

	questionsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "radar_questions_generated_total",
		Help: "Analytical questions parsed from generator output.",
	}, []string{"topic"})

	blocksUploaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "radar_blocks_uploaded_total",
		Help: "Content blocks sent to the page store.",
	})

	runDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "radar_run_duration_seconds",
		Help:    "Wall time of a report run.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	}, []string{"topic", "outcome"})
)
