package intern

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type tableMetrics struct {
	// requests counts InternArgs calls by result: hit (already interned) or miss
	requests  *prometheus.CounterVec
	hits      prometheus.Counter
	misses    prometheus.Counter
	// sequences tracks how many distinct sequences the table owns
	sequences prometheus.Gauge
}

// newTableMetrics registers the metrics of a Table on reg.
// A nil reg keeps the metrics unregistered.
func newTableMetrics(reg prometheus.Registerer, name string) *tableMetrics {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"table": name}
	requests := factory.NewCounterVec(prometheus.CounterOpts{
		Name:        "subst_intern_requests_total",
		Help:        "Total generic argument sequences submitted for interning, by result",
		ConstLabels: labels,
	}, []string{"result"})
	return &tableMetrics{
		requests: requests,
		hits:     requests.WithLabelValues("hit"),
		misses:   requests.WithLabelValues("miss"),
		sequences: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "subst_interned_sequences",
			Help:        "Distinct generic argument sequences owned by the table",
			ConstLabels: labels,
		}),
	}
}
