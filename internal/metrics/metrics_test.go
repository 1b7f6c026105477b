package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.CacheMiss("private", "Person")
	m.CacheHit("private", "Person")
	m.CacheHit("private", "Person")
	m.SetVisible("private", "Person", 4)
	m.ObserveBuild("private", 20*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("private", "Person", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("private", "Person", "miss")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.Visible.WithLabelValues("private", "Person")))

	n, err := testutil.GatherAndCount(reg, "kinview_proxy_build_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.CacheHit("p", "Person")
	m.CacheMiss("p", "Person")
	m.SetVisible("p", "Person", 1)
	m.ObserveBuild("p", time.Second)
}

func TestUnregisteredMetrics(t *testing.T) {
	a := New(nil)
	b := New(nil)
	a.CacheHit("p", "Person")
	assert.Equal(t, 0.0, testutil.ToFloat64(b.CacheLookups.WithLabelValues("p", "Person", "hit")))
}
