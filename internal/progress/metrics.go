package progress

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	regionsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagemill_regions_processed_total",
			Help: "Regions that reached a terminal recognition outcome",
		},
		[]string{"outcome"}, // outcome: ok, failed
	)

	recognitionAttempts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pagemill_recognition_attempts_total",
			Help: "Individual recognition attempts, including retries",
		},
	)

	recognitionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pagemill_recognition_duration_seconds",
			Help:    "Wall time of individual recognition attempts",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
	)

	pagesWritten = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pagemill_pages_written_total",
			Help: "Page documents written to the output location",
		},
	)

	queuedRegions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pagemill_regions_queued",
			Help: "Regions still waiting for recognition in the current run",
		},
	)
)

// CountAttempt records one recognition attempt and its duration in seconds.
func CountAttempt(seconds float64) {
	recognitionAttempts.Inc()
	recognitionDuration.Observe(seconds)
}

// CountRegion records a terminal region outcome.
func CountRegion(failed bool) {
	if failed {
		regionsProcessed.WithLabelValues("failed").Inc()
		return
	}
	regionsProcessed.WithLabelValues("ok").Inc()
}

// CountPage records one written page document.
func CountPage() {
	pagesWritten.Inc()
}

// SetQueued updates the pending-queue depth gauge.
func SetQueued(n int) {
	queuedRegions.Set(float64(n))
}
