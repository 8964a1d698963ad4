package pipeline

import (
	"fmt"
	"time"

	"github.com/bytedance/gopkg/util/gopool"
	"github.com/dhartunian/ticksum/internal/errs"
	"github.com/dhartunian/ticksum/internal/logs"
	"github.com/dhartunian/ticksum/internal/metrics"
	"github.com/dhartunian/ticksum/internal/partition"
	"github.com/dhartunian/ticksum/internal/record"
	"github.com/dhartunian/ticksum/internal/table"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Stats describes one finished partition.
type Stats struct {
	Records int64
	Bytes   int64
	Elapsed time.Duration
}

type options struct {
	metrics  *metrics.Collector
	poolName string
}

type Option func(*options)

func WithMetrics(c *metrics.Collector) Option {
	return func(o *options) {
		o.metrics = c
	}
}

func WithPoolName(name string) Option {
	return func(o *options) {
		o.poolName = name
	}
}

type result struct {
	idx   int
	table *table.Table
	stats Stats
	err   error
}

// Run splits view into one partition per worker, decodes the partitions
// concurrently into private tables and folds them into one table once every
// worker has finished. view is only read.
//
// If any partition fails the run fails with the error of the lowest failing
// partition and no table is returned.
func Run(view []byte, workers int, opts ...Option) (*table.Table, error) {
	o := &options{poolName: "ticksum-partitions"}
	for _, opt := range opts {
		opt(o)
	}

	parts, err := partition.Plan(int64(len(view)), workers)
	if err != nil {
		return nil, err
	}
	o.metrics.SetWorkers(len(parts))

	pool := gopool.NewPool(o.poolName, int32(len(parts)), gopool.NewConfig())
	results := make(chan result, len(parts))
	for i, p := range parts {
		pool.Go(func() {
			defer func() {
				if r := recover(); r != nil {
					e := errs.NewWorkerPanicErr().WithErr(fmt.Errorf("%v", r))
					logs.Error(e.Error(), zap.Int(logs.FieldWorker, i))
					results <- result{idx: i, err: e}
				}
			}()
			t, stats, err := Process(view, p)
			results <- result{idx: i, table: t, stats: stats, err: err}
		})
	}

	// join
	tables := make([]*table.Table, len(parts))
	failed := -1
	var firstErr error
	for range parts {
		r := <-results
		if r.err != nil {
			if failed == -1 || r.idx < failed {
				failed, firstErr = r.idx, r.err
			}
			continue
		}
		tables[r.idx] = r.table
		o.metrics.ObservePartition(r.stats.Records, r.stats.Bytes, r.stats.Elapsed)
		logs.Debug("partition done",
			zap.Int(logs.FieldWorker, r.idx),
			zap.Int64(logs.FieldPartStart, parts[r.idx].Start),
			zap.Int64(logs.FieldPartEnd, parts[r.idx].End),
			zap.Int64(logs.FieldRecords, r.stats.Records),
			zap.Int(logs.FieldSlots, r.table.Slots()),
			zap.Duration(logs.FieldElapsed, r.stats.Elapsed),
		)
	}
	if firstErr != nil {
		return nil, errors.Wrapf(firstErr, "partition %d", failed)
	}

	return table.Merge(tables...)
}

// Process decodes every whole record of p into a new table. A trailing
// partial record is skipped.
func Process(view []byte, p partition.Partition) (*table.Table, Stats, error) {
	if p.Start < 0 || p.Start > p.End || p.End > int64(len(view)) {
		e := errs.NewInvalidParamErr()
		logs.Error(e.Error(),
			zap.String(logs.FieldParams, "partition"),
			zap.Int64(logs.FieldPartStart, p.Start),
			zap.Int64(logs.FieldPartEnd, p.End),
		)
		return nil, Stats{}, e
	}

	started := time.Now()
	t := table.New()
	data := view[p.Start:p.End]
	var n int64
	for off := 0; off+record.Size <= len(data); off += record.Size {
		id, d, err := record.Decode(data[off : off+record.Size])
		if err != nil {
			logs.Error(err.Error(), zap.Int64(logs.FieldOffset, p.Start+int64(off)))
			return nil, Stats{}, errors.Wrapf(err, "record at offset %d", p.Start+int64(off))
		}
		if err = t.Add(id, d); err != nil {
			return nil, Stats{}, errors.Wrapf(err, "record at offset %d", p.Start+int64(off))
		}
		n++
	}

	return t, Stats{Records: n, Bytes: p.Len(), Elapsed: time.Since(started)}, nil
}
