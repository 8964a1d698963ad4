package metrics

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dhartunian/ticksum/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservePartition(t *testing.T) {
	c := New()
	c.SetWorkers(4)
	c.ObservePartition(10, 500, time.Millisecond)
	c.ObservePartition(2, 117, time.Millisecond)
	c.AddIdentifiers(3)

	values := gather(t, c)
	assert.Equal(t, float64(12), values["ticksum_records_total"])
	assert.Equal(t, float64(617), values["ticksum_bytes_total"])
	assert.Equal(t, float64(3), values["ticksum_identifiers_total"])
	assert.Equal(t, float64(4), values["ticksum_workers"])
	assert.Equal(t, float64(2), values["ticksum_partition_seconds"])
}

// gather flattens single-series families: counters and gauges to their value,
// histograms to their sample count.
func gather(t *testing.T, c *Collector) map[string]float64 {
	families, err := c.Registry().Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, f := range families {
		if len(f.GetMetric()) != 1 {
			continue
		}
		m := f.GetMetric()[0]
		switch {
		case m.GetCounter() != nil:
			values[f.GetName()] = m.GetCounter().GetValue()
		case m.GetGauge() != nil:
			values[f.GetName()] = m.GetGauge().GetValue()
		case m.GetHistogram() != nil:
			values[f.GetName()] = float64(m.GetHistogram().GetSampleCount())
		}
	}
	return values
}

func TestNilCollector(t *testing.T) {
	var c *Collector
	c.SetWorkers(1)
	c.ObservePartition(1, 1, time.Second)
	c.AddIdentifiers(1)
	assert.Nil(t, c.Registry())
	assert.NoError(t, c.Push("http://127.0.0.1:1", "ticksum"))
}

func TestPush(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "/metrics/job/ticksum")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New()
	c.ObservePartition(1, 50, time.Millisecond)
	require.NoError(t, c.Push(srv.URL, "ticksum"))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestPushFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := New().Push(srv.URL, "ticksum")
	assert.Equal(t, int64(errs.PushMetricsErrCode), errs.GetCode(err))
}
