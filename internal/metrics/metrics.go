package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records proxy construction and lookup activity.
type Metrics struct {
	// Visibility-map construction time per proxy
	BuildDuration *prometheus.HistogramVec

	// Cached object lookups by proxy, kind and result (hit, miss)
	CacheLookups *prometheus.CounterVec

	// Objects visible through a proxy, by kind
	Visible *prometheus.GaugeVec
}

// New registers the proxy collectors on reg. A nil reg registers nothing,
// which keeps repeated construction in tests from colliding.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		BuildDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kinview_proxy_build_duration_seconds",
			Help:    "Duration of proxy visibility-map construction",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}, []string{"proxy"}),

		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kinview_proxy_cache_lookups_total",
			Help: "Object lookups served by a proxy, by cache result",
		}, []string{"proxy", "kind", "result"}),

		Visible: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "kinview_proxy_visible_objects",
			Help: "Objects visible through a proxy",
		}, []string{"proxy", "kind"}),
	}
}

func (m *Metrics) ObserveBuild(proxy string, d time.Duration) {
	if m != nil {
		m.BuildDuration.WithLabelValues(proxy).Observe(d.Seconds())
	}
}

func (m *Metrics) CacheHit(proxy, kind string) {
	if m != nil {
		m.CacheLookups.WithLabelValues(proxy, kind, "hit").Inc()
	}
}

func (m *Metrics) CacheMiss(proxy, kind string) {
	if m != nil {
		m.CacheLookups.WithLabelValues(proxy, kind, "miss").Inc()
	}
}

func (m *Metrics) SetVisible(proxy, kind string, n int) {
	if m != nil {
		m.Visible.WithLabelValues(proxy, kind).Set(float64(n))
	}
}
