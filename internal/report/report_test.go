package report

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/dhartunian/ticksum/internal/errs"
	"github.com/dhartunian/ticksum/internal/record"
	"github.com/dhartunian/ticksum/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendDuration(t *testing.T) {
	testList := []struct {
		Ticks int64
		Text  string
	}{
		{0, "00:00:00"},
		{record.TicksPerSecond, "00:00:01"},
		{-record.TicksPerSecond, "-00:00:01"},
		{record.TicksPerDay + record.TicksPerSecond, "1.00:00:01"},
		{26*record.TicksPerHour + 3*record.TicksPerMinute + 4*record.TicksPerSecond, "1.02:03:04"},
		{record.TicksPerSecond + 5_000_000, "00:00:01.5000000"},
		{1, "00:00:00.0000001"},
		{-(3*record.TicksPerDay + record.TicksPerHour + 1), "-3.01:00:00.0000001"},
		{math.MaxInt64, "10675199.02:48:05.4775807"},
		{math.MinInt64, "-10675199.02:48:05.4775808"},
	}

	for _, item := range testList {
		assert.Equal(t, item.Text, string(AppendDuration(nil, item.Ticks)), item.Text)
	}
}

func TestAppendLine(t *testing.T) {
	assert.Equal(t, "0000000042 00:00:01\n", string(AppendLine(nil, 42, record.TicksPerSecond)))
	assert.Equal(t, "0099999999 -00:01:00\n", string(AppendLine(nil, record.MaxID, -record.TicksPerMinute)))
}

func TestWrite(t *testing.T) {
	tb := table.New()
	require.NoError(t, tb.Add(99_999_999, record.TicksPerHour))
	require.NoError(t, tb.Add(42, record.TicksPerSecond))
	require.NoError(t, tb.Add(0, 0))
	require.NoError(t, tb.Add(7, -record.TicksPerSecond))

	var buf bytes.Buffer
	n, err := Write(&buf, tb)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "0000000007 -00:00:01\n"+
		"0000000042 00:00:01\n"+
		"0099999999 01:00:00\n", buf.String())
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	n, err := Write(&buf, table.New())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteFailed(t *testing.T) {
	tb := table.New()
	require.NoError(t, tb.Add(1, 1))
	_, err := Write(failingWriter{}, tb)
	assert.Equal(t, int64(errs.WriteFileErrCode), errs.GetCode(err))
}
