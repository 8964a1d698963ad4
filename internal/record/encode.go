package record

import (
	"time"
)

const stampLayout = "2006-01-02T15:04:05Z"

// Append encodes one record onto dst. It is the inverse of Decode and is
// used by the generator, so it favours clarity over speed.
func Append(dst []byte, start, end time.Time, id uint32) []byte {
	dst = start.UTC().AppendFormat(dst, stampLayout)
	dst = end.UTC().AppendFormat(dst, stampLayout)
	dst = AppendPadded(dst, uint64(id), idDigits)
	return append(dst, '\r', '\n')
}

// AppendPadded appends v in decimal, left padded with zeros to width digits.
func AppendPadded(dst []byte, v uint64, width int) []byte {
	var buf [20]byte
	i := len(buf)
	for v >= 10 {
		i--
		buf[i] = '0' + byte(v%10)
		v /= 10
	}
	i--
	buf[i] = '0' + byte(v)
	for n := len(buf) - i; n < width; n++ {
		dst = append(dst, '0')
	}
	return append(dst, buf[i:]...)
}
