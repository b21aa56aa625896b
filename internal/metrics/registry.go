package metrics

import "github.com/prometheus/client_golang/prometheus"

// Upsert results recorded by DimensionUpsertsTotal.
const (
	ResultOK               = "ok"
	ResultInvalidInput     = "invalid_input"
	ResultFunctionNotFound = "function_not_found"
	ResultUnexpected       = "unexpected"
)

// Dimension registry Prometheus metrics.
var (
	DimensionUpsertsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dimreg",
			Name:      "dimension_upserts_total",
			Help:      "Total number of dimension create-or-replace calls",
		},
		[]string{"result"},
	)

	DimensionListsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dimreg",
			Name:      "dimension_lists_total",
			Help:      "Total number of dimension list calls",
		},
		[]string{"result"}, // "ok" / "unexpected"
	)
)

var dimMetricsRegistered bool

// RegisterDimensionMetrics registers Prometheus registry metrics. Must be called once from main.
func RegisterDimensionMetrics() {
	if dimMetricsRegistered {
		return
	}
	prometheus.MustRegister(DimensionUpsertsTotal)
	prometheus.MustRegister(DimensionListsTotal)
	dimMetricsRegistered = true
}
