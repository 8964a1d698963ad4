// Package report renders the merged table as text, one line per identifier:
//
//	0000000042 1.02:03:04.5000000
//
// The duration follows the constant ("c") TimeSpan format [-][d.]hh:mm:ss[.fffffff].
package report

import (
	"bufio"
	"io"
	"iter"

	"github.com/dhartunian/ticksum/internal/errs"
	"github.com/dhartunian/ticksum/internal/logs"
	"github.com/dhartunian/ticksum/internal/record"
	"github.com/pkg/errors"
)

const (
	idWidth       = 10
	fractionWidth = 7
)

// Source yields (id, sum) pairs in ascending id order.
type Source interface {
	All() iter.Seq2[uint32, int64]
}

// Write emits one line per pair of t and returns the number of lines
// written.
func Write(w io.Writer, t Source) (int, error) {
	bw := bufio.NewWriterSize(w, 1<<20)
	line := make([]byte, 0, 64)
	n := 0
	for id, sum := range t.All() {
		line = AppendLine(line[:0], id, sum)
		if _, err := bw.Write(line); err != nil {
			e := errs.NewWriteFileErr().WithErr(err)
			logs.Error(e.Error())
			return n, e
		}
		n++
	}
	if err := bw.Flush(); err != nil {
		e := errs.NewWriteFileErr().WithErr(err)
		logs.Error(e.Error())
		return n, errors.Wrap(e, "flush report")
	}
	return n, nil
}

func AppendLine(dst []byte, id uint32, ticks int64) []byte {
	dst = AppendID(dst, id)
	dst = append(dst, ' ')
	dst = AppendDuration(dst, ticks)
	return append(dst, '\n')
}

func AppendID(dst []byte, id uint32) []byte {
	return record.AppendPadded(dst, uint64(id), idWidth)
}

// AppendDuration formats ticks (100ns units). Days appear only when non-zero,
// the fraction only when there is a sub-second remainder.
func AppendDuration(dst []byte, ticks int64) []byte {
	v := uint64(ticks)
	if ticks < 0 {
		dst = append(dst, '-')
		v = -v
	}

	days := v / uint64(record.TicksPerDay)
	rem := v % uint64(record.TicksPerDay)
	if days != 0 {
		dst = record.AppendPadded(dst, days, 1)
		dst = append(dst, '.')
	}

	hours := rem / uint64(record.TicksPerHour)
	rem %= uint64(record.TicksPerHour)
	minutes := rem / uint64(record.TicksPerMinute)
	rem %= uint64(record.TicksPerMinute)
	seconds := rem / uint64(record.TicksPerSecond)
	fraction := rem % uint64(record.TicksPerSecond)

	dst = record.AppendPadded(dst, hours, 2)
	dst = append(dst, ':')
	dst = record.AppendPadded(dst, minutes, 2)
	dst = append(dst, ':')
	dst = record.AppendPadded(dst, seconds, 2)
	if fraction != 0 {
		dst = append(dst, '.')
		dst = record.AppendPadded(dst, fraction, fractionWidth)
	}
	return dst
}
