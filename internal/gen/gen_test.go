package gen

import (
	"bytes"
	"testing"
	"time"

	"github.com/dhartunian/ticksum/internal/errs"
	"github.com/dhartunian/ticksum/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	o := DefaultOptions()
	o.Records = 500
	o.MinID = 1000
	o.MaxID = 1099

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, o))
	require.Equal(t, 500*record.Size, buf.Len())

	data := buf.Bytes()
	for off := 0; off < len(data); off += record.Size {
		id, d, err := record.Decode(data[off : off+record.Size])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, id, uint32(1000))
		assert.LessOrEqual(t, id, uint32(1099))
		assert.GreaterOrEqual(t, d, int64(0))
		assert.Less(t, d, int64(o.MaxDuration/100))
	}
}

func TestWriteDeterministic(t *testing.T) {
	o := DefaultOptions()
	o.Records = 100

	var a, b bytes.Buffer
	require.NoError(t, Write(&a, o))
	require.NoError(t, Write(&b, o))
	assert.Equal(t, a.Bytes(), b.Bytes())

	o.Seed++
	var c bytes.Buffer
	require.NoError(t, Write(&c, o))
	assert.NotEqual(t, a.Bytes(), c.Bytes())
}

func TestWriteFailed(t *testing.T) {
	testList := []struct {
		Description string
		Modify      func(o *Options)
	}{
		{"negative records", func(o *Options) { o.Records = -1 }},
		{"id above max", func(o *Options) { o.MaxID = record.MaxID + 1 }},
		{"inverted id range", func(o *Options) { o.MinID, o.MaxID = 10, 5 }},
		{"zero spread", func(o *Options) { o.Spread = 0 }},
		{"past year 9999", func(o *Options) { o.Epoch = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC) }},
	}

	for _, item := range testList {
		o := DefaultOptions()
		o.Records = 1
		item.Modify(&o)
		err := Write(&bytes.Buffer{}, o)
		assert.Equal(t, int64(errs.InvalidParamErrCode), errs.GetCode(err), item.Description)
	}
}
