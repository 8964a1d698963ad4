// Package record decodes the fixed 50-byte input record:
//
//	[0,20)   start timestamp  YYYY?MM?DD?hh?mm?ss?
//	[20,40)  end timestamp    same layout
//	[40,48)  identifier       8 ASCII digits
//	[48,50)  unused
//
// Separator bytes inside a timestamp are never read.
package record

import (
	"fmt"

	"github.com/dhartunian/ticksum/internal/errs"
)

const (
	Size = 50

	startOffset = 0
	endOffset   = 20
	idOffset    = 40
	idDigits    = 8

	yearOffset   = 0
	monthOffset  = 5
	dayOffset    = 8
	hourOffset   = 11
	minuteOffset = 14
	secondOffset = 17
	stampSize    = 20

	// MaxID is the largest identifier eight digits can spell.
	MaxID = 99_999_999
)

// Decode returns the identifier and the end-minus-start duration in ticks of
// one record. The duration is not validated and may be negative.
// It does not allocate unless it fails.
func Decode(rec []byte) (id uint32, duration int64, err error) {
	if len(rec) < Size {
		return 0, 0, errs.NewParseErr().WithErr(fmt.Errorf("short record: %d bytes", len(rec)))
	}

	start, ok := parseStamp(rec[startOffset : startOffset+stampSize])
	if !ok {
		return 0, 0, fieldErr("start", rec[startOffset:startOffset+stampSize])
	}
	end, ok := parseStamp(rec[endOffset : endOffset+stampSize])
	if !ok {
		return 0, 0, fieldErr("end", rec[endOffset:endOffset+stampSize])
	}
	v, ok := ParseDigits(rec[idOffset : idOffset+idDigits])
	if !ok {
		return 0, 0, fieldErr("id", rec[idOffset:idOffset+idDigits])
	}

	return uint32(v), end - start, nil
}

// ParseDigits parses b as an unsigned decimal number. ok is false if any
// byte is not an ASCII digit.
func ParseDigits(b []byte) (v int, ok bool) {
	for _, c := range b {
		d := c - '0'
		if d > 9 {
			return 0, false
		}
		v = v*10 + int(d)
	}
	return v, true
}

func parseStamp(b []byte) (int64, bool) {
	year, ok1 := ParseDigits(b[yearOffset : yearOffset+4])
	month, ok2 := ParseDigits(b[monthOffset : monthOffset+2])
	day, ok3 := ParseDigits(b[dayOffset : dayOffset+2])
	hour, ok4 := ParseDigits(b[hourOffset : hourOffset+2])
	minute, ok5 := ParseDigits(b[minuteOffset : minuteOffset+2])
	second, ok6 := ParseDigits(b[secondOffset : secondOffset+2])
	if !(ok1 && ok2 && ok3 && ok4 && ok5 && ok6) {
		return 0, false
	}
	// month indexes the cumulative day tables
	if month < 1 || month > 12 {
		return 0, false
	}
	return Ticks(year, month, day, hour, minute, second), true
}

func fieldErr(field string, b []byte) *errs.Err {
	return errs.NewParseErr().WithErr(fmt.Errorf("%s field %q", field, b))
}
