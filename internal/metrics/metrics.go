package metrics

import (
	"time"

	"github.com/dhartunian/ticksum/internal/errs"
	"github.com/dhartunian/ticksum/internal/logs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/push"
	"go.uber.org/zap"
)

// Collector holds the metrics of one run. Workers report once per partition,
// never per record. A nil *Collector is valid and records nothing.
type Collector struct {
	registry    *prometheus.Registry
	records     prometheus.Counter
	bytes       prometheus.Counter
	identifiers prometheus.Counter
	workers     prometheus.Gauge
	partition   prometheus.Histogram
}

func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		records: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ticksum_records_total",
			Help: "Records decoded.",
		}),
		bytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ticksum_bytes_total",
			Help: "Bytes of mapped input assigned to workers.",
		}),
		identifiers: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ticksum_identifiers_total",
			Help: "Identifiers emitted in the summary.",
		}),
		workers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ticksum_workers",
			Help: "Partition workers of the run.",
		}),
		partition: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ticksum_partition_seconds",
			Help:    "Wall time spent decoding one partition.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}
	c.registry.MustRegister(
		c.records,
		c.bytes,
		c.identifiers,
		c.workers,
		c.partition,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

func (c *Collector) SetWorkers(n int) {
	if c == nil {
		return
	}
	c.workers.Set(float64(n))
}

func (c *Collector) ObservePartition(records, bytes int64, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.records.Add(float64(records))
	c.bytes.Add(float64(bytes))
	c.partition.Observe(elapsed.Seconds())
}

func (c *Collector) AddIdentifiers(n int) {
	if c == nil {
		return
	}
	c.identifiers.Add(float64(n))
}

// Push sends the registry to a Prometheus push gateway once.
func (c *Collector) Push(url, job string) error {
	if c == nil {
		return nil
	}
	if err := push.New(url, job).Gatherer(c.registry).Add(); err != nil {
		e := errs.NewPushMetricsErr().WithErr(err)
		logs.Error(e.Error(), zap.String(logs.FieldParams, "url"), zap.String(logs.FieldValue, url))
		return e
	}
	return nil
}
