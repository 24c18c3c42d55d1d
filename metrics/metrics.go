// Package metrics exposes Prometheus collectors for cachebust engines.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Busts counts successful rewrites, labelled by bust method.
	Busts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cachebust",
			Name:      "busts_total",
			Help:      "Count of asset paths rewritten, by bust method.",
		},
		[]string{"method"},
	)

	// Errors counts failed engine calls, labelled by error kind.
	Errors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cachebust",
			Name:      "errors_total",
			Help:      "Failed bust and hash calls, by error kind.",
		},
		[]string{"kind"},
	)

	// HashLatency observes hash calls, labelled by identity source (mtime
	// or contents).
	HashLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cachebust",
			Name:      "hash_duration_seconds",
			Help:      "Time spent resolving and hashing an asset.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
		[]string{"source"},
	)
)

// Collectors returns every cachebust collector.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{Busts, Errors, HashLatency}
}

// Register registers the cachebust metrics into the default registry.
func Register() {
	prometheus.MustRegister(Collectors()...)
}

// RegisterTo registers the cachebust metrics into reg.
func RegisterTo(reg prometheus.Registerer) error {
	for _, c := range Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
