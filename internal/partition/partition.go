package partition

import (
	"github.com/dhartunian/ticksum/internal/errs"
	"github.com/dhartunian/ticksum/internal/logs"
	"github.com/dhartunian/ticksum/internal/record"
	"go.uber.org/zap"
)

// Partition is a [Start, End) byte range of the mapped input handed to one
// worker.
type Partition struct {
	Start int64
	End   int64
}

func (p Partition) Len() int64 {
	return p.End - p.Start
}

// Records is the number of whole records inside the partition.
func (p Partition) Records() int64 {
	return p.Len() / record.Size
}

// Plan splits [0, length) into workers contiguous partitions on record
// boundaries. Every partition gets recordCount/workers records; the last one
// also takes the leftover records and any trailing partial record, so it
// always ends at length.
func Plan(length int64, workers int) ([]Partition, error) {
	if workers < 1 {
		e := errs.NewInvalidParamErr()
		logs.Error(e.Error(), zap.String(logs.FieldParams, "workers"), zap.Int(logs.FieldValue, workers))
		return nil, e
	}
	if length < 0 {
		e := errs.NewInvalidParamErr()
		logs.Error(e.Error(), zap.String(logs.FieldParams, "length"), zap.Int64(logs.FieldValue, length))
		return nil, e
	}

	stride := (length / record.Size) / int64(workers) * record.Size
	parts := make([]Partition, workers)
	for i := range parts {
		parts[i] = Partition{
			Start: int64(i) * stride,
			End:   int64(i+1) * stride,
		}
	}
	parts[workers-1].End = length
	return parts, nil
}
