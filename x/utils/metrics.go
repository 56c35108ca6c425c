package utils

import (
	"time"

	"github.com/iov-one/stablecoin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a decorator that counts delivered transactions and measures
// how long they took, labeled by message path and result.
type Metrics struct {
	txs      *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ stablecoin.Decorator = Metrics{}

// Result label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// NewMetrics creates a Metrics decorator. Its collectors must be registered
// before they are exposed, see Register.
func NewMetrics() Metrics {
	return Metrics{
		txs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stablecoin",
			Name:      "tx_total",
			Help:      "Number of delivered transactions.",
		}, []string{"path", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "stablecoin",
			Name:      "tx_duration_seconds",
			Help:      "Time spent delivering a transaction.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"path"}),
	}
}

// Register adds all collectors of this decorator to given registry.
func (m Metrics) Register(r prometheus.Registerer) error {
	if err := r.Register(m.txs); err != nil {
		return err
	}
	return r.Register(m.duration)
}

// Check just passes the request along
func (m Metrics) Check(ctx stablecoin.Context, db stablecoin.KVStore, tx stablecoin.Tx, next stablecoin.Checker) (*stablecoin.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver records the result and duration of the transaction.
func (m Metrics) Deliver(ctx stablecoin.Context, db stablecoin.KVStore, tx stablecoin.Tx, next stablecoin.Deliverer) (*stablecoin.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)

	path := stablecoin.GetPath(tx)
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	m.txs.WithLabelValues(path, result).Inc()
	m.duration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	return res, err
}
