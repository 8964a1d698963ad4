//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package mmap

import (
	"os"
	"runtime"

	"github.com/dhartunian/ticksum/internal/errs"
	"github.com/pkg/errors"
)

func mapFile(_ *os.File, _ int) ([]byte, error) {
	return nil, errors.Wrap(errs.NewUnsupportedPlatformErr(), runtime.GOOS)
}

func unmap(_ []byte) error {
	return nil
}
