package gen

import (
	"bufio"
	"io"
	"math/rand"
	"time"

	"github.com/dhartunian/ticksum/internal/errs"
	"github.com/dhartunian/ticksum/internal/logs"
	"github.com/dhartunian/ticksum/internal/record"
	"go.uber.org/zap"
)

// Options controls the synthetic input. The same options always produce the
// same bytes.
type Options struct {
	Records     int64
	MinID       uint32
	MaxID       uint32
	Epoch       time.Time     // earliest start timestamp
	Spread      time.Duration // starts fall in [Epoch, Epoch+Spread)
	MaxDuration time.Duration // durations fall in [0, MaxDuration)
	Seed        int64
}

func DefaultOptions() Options {
	return Options{
		Records:     1_000_000,
		MinID:       0,
		MaxID:       record.MaxID,
		Epoch:       time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC),
		Spread:      365 * 24 * time.Hour,
		MaxDuration: 4 * time.Hour,
		Seed:        1,
	}
}

func (o Options) validate() error {
	check := func(ok bool, param string, value any) error {
		if ok {
			return nil
		}
		e := errs.NewInvalidParamErr()
		logs.Error(e.Error(), zap.String(logs.FieldParams, param), zap.Any(logs.FieldValue, value))
		return e
	}
	if err := check(o.Records >= 0, "records", o.Records); err != nil {
		return err
	}
	if err := check(o.MaxID <= record.MaxID && o.MinID <= o.MaxID, "id range", [2]uint32{o.MinID, o.MaxID}); err != nil {
		return err
	}
	if err := check(o.Spread >= time.Second && o.MaxDuration >= time.Second, "spread/max duration", [2]time.Duration{o.Spread, o.MaxDuration}); err != nil {
		return err
	}
	return check(o.Epoch.Year() >= 1 && o.Epoch.Add(o.Spread+o.MaxDuration).Year() <= 9999, "epoch", o.Epoch)
}

// Write emits o.Records fixed-size records to w. Timestamps have whole
// second precision.
func Write(w io.Writer, o Options) error {
	if err := o.validate(); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(o.Seed))
	bw := bufio.NewWriterSize(w, 1<<20)
	ids := int64(o.MaxID-o.MinID) + 1
	spread := int64(o.Spread / time.Second)
	maxDur := int64(o.MaxDuration / time.Second)
	buf := make([]byte, 0, record.Size)
	for i := int64(0); i < o.Records; i++ {
		start := o.Epoch.Add(time.Duration(rng.Int63n(spread)) * time.Second)
		end := start.Add(time.Duration(rng.Int63n(maxDur)) * time.Second)
		id := o.MinID + uint32(rng.Int63n(ids))
		buf = record.Append(buf[:0], start, end, id)
		if _, err := bw.Write(buf); err != nil {
			e := errs.NewWriteFileErr().WithErr(err)
			logs.Error(e.Error())
			return e
		}
	}
	if err := bw.Flush(); err != nil {
		e := errs.NewWriteFileErr().WithErr(err)
		logs.Error(e.Error())
		return e
	}
	return nil
}
