// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DecksComposed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deck_compositions_total",
			Help: "Total number of deck compositions",
		},
		[]string{"context"},
	)

	DeckSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "deck_size",
			Help:    "Number of restaurants in composed decks",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
		[]string{"context"},
	)

	SwipesRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swipes_recorded_total",
			Help: "Total number of swipes recorded",
		},
		[]string{"context", "liked"},
	)

	RepositoryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "repository_errors_total",
			Help: "Total number of repository fetch failures",
		},
		[]string{"repository", "error_code"},
	)
)
