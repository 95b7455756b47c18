package api

import "github.com/prometheus/client_golang/prometheus"

var (
	runsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "topsis",
		Name:      "runs_total",
		Help:      "TOPSIS submissions by outcome and error kind.",
	}, []string{"outcome", "kind"})

	computeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "topsis",
		Name:      "compute_duration_seconds",
		Help:      "Time spent validating and scoring a dataset.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
	})

	alternativesScored = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "topsis",
		Name:      "alternatives_per_run",
		Help:      "Number of alternatives ranked per successful run.",
		Buckets:   prometheus.ExponentialBuckets(2, 2, 12),
	})

	emailsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "topsis",
		Name:      "emails_total",
		Help:      "Result email deliveries by result.",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(runsTotal, computeDuration, alternativesScored, emailsTotal)
}
