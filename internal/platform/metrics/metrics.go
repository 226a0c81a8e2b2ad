package metrics

import (
	"net/http"
	"time"

	"github.com/ogurasousui/admin-console-sync/internal/core/coordinator"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "console_sync"

// Sync は coordinator.Metrics を Prometheus で実装します。
type Sync struct {
	mutations      *prometheus.CounterVec
	latency        *prometheus.HistogramVec
	pending        *prometheus.GaugeVec
	reloadFailures *prometheus.CounterVec
}

var _ coordinator.Metrics = (*Sync)(nil)

// NewSync はメトリクスを生成し reg に登録します。
func NewSync(reg prometheus.Registerer) (*Sync, error) {
	s := &Sync{
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Optimistic mutations by collection, operation and outcome.",
		}, []string{"collection", "op", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "mutation_duration_seconds",
			Help:      "Time from optimistic apply to reconciliation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"collection", "op"}),
		pending: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pending_mutations",
			Help:      "Mutations applied locally and not yet reconciled.",
		}, []string{"collection"}),
		reloadFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reload_failures_total",
			Help:      "Failed list calls that were published as empty snapshots.",
		}, []string{"collection"}),
	}

	for _, c := range []prometheus.Collector{s.mutations, s.latency, s.pending, s.reloadFailures} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Sync) ObserveMutation(collection string, op coordinator.Op, outcome coordinator.Outcome, elapsed time.Duration) {
	s.mutations.WithLabelValues(collection, string(op), string(outcome)).Inc()
	s.latency.WithLabelValues(collection, string(op)).Observe(elapsed.Seconds())
}

func (s *Sync) SetPending(collection string, pending int) {
	s.pending.WithLabelValues(collection).Set(float64(pending))
}

func (s *Sync) IncReloadFailure(collection string) {
	s.reloadFailures.WithLabelValues(collection).Inc()
}

// Handler は g の内容を公開する /metrics 用ハンドラーを返します。
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
