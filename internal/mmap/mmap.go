// Package mmap exposes a file as a read-only byte view.
package mmap

import (
	"os"

	"github.com/dhartunian/ticksum/internal/errs"
	"github.com/dhartunian/ticksum/internal/logs"
	"go.uber.org/zap"
)

// View is a read-only mapping of a whole file. The bytes returned by Bytes
// must not be written to and must not be used after Close.
type View struct {
	f    *os.File
	data []byte
}

// Open maps filename read-only. An empty file yields an empty view.
func Open(filename string) (_ *View, err error) {
	f, err := os.Open(filename)
	if err != nil {
		e := errs.NewOpenFileErr().WithErr(err)
		logs.Error(e.Error(), zap.String(logs.FieldPath, filename))
		return nil, e
	}
	defer func() {
		if err != nil {
			f.Close()
		}
	}()

	fi, err := f.Stat()
	if err != nil {
		e := errs.NewFileStatErr().WithErr(err)
		logs.Error(e.Error(), zap.String(logs.FieldPath, filename))
		return nil, e
	}

	size := fi.Size()
	if size == 0 {
		return &View{f: f}, nil
	}
	if size < 0 || size != int64(int(size)) {
		e := errs.NewInvalidParamErr()
		logs.Error(e.Error(), zap.String(logs.FieldParams, "size"), zap.Int64(logs.FieldValue, size))
		return nil, e
	}

	data, err := mapFile(f, int(size))
	if err != nil {
		e := errs.NewMmapErr().WithErr(err)
		logs.Error(e.Error(), zap.String(logs.FieldPath, filename), zap.Int64(logs.FieldValue, size))
		return nil, e
	}
	return &View{f: f, data: data}, nil
}

func (v *View) Bytes() []byte {
	return v.data
}

func (v *View) Len() int64 {
	return int64(len(v.data))
}

// Close unmaps the view and closes the file.
func (v *View) Close() error {
	if v.data != nil {
		if err := unmap(v.data); err != nil {
			e := errs.NewMunmapErr().WithErr(err)
			logs.Error(e.Error(), zap.String(logs.FieldPath, v.f.Name()))
			_ = v.f.Close()
			return e
		}
		v.data = nil
	}
	if err := v.f.Close(); err != nil {
		e := errs.NewCloseFileErr().WithErr(err)
		logs.Error(e.Error(), zap.String(logs.FieldPath, v.f.Name()))
		return e
	}
	return nil
}
