package errs

import (
	"errors"
	"fmt"
)

// Err is the coded error shared by every package.
// Error() renders as:
// [code] message ( => cause )
// where the parenthesised part is present only when a cause is attached.
type Err struct {
	msg  string
	code int64
	err  error
}

func (e *Err) Error() string {
	details := fmt.Sprintf("[%d] %s", e.code, e.msg)
	if e.err != nil {
		details += fmt.Sprintf(" => %s", e.err)
	}

	return details
}

func (e *Err) Code() int64 {
	return e.code
}

func (e *Err) Unwrap() error {
	return e.err
}

func (e *Err) WithErr(err error) *Err {
	e.err = err
	return e
}

// GetCode returns the code of the first *Err in err's chain, or UnknownErrCode.
func GetCode(err error) int64 {
	var e *Err
	if errors.As(err, &e) {
		return e.code
	}
	return UnknownErrCode
}

const (
	UnknownErrCode             = 0
	InvalidParamErrCode        = 100001
	ParseErrCode               = 100002
	OutOfRangeErrCode          = 100003
	OpenFileErrCode            = 100004
	FileStatErrCode            = 100005
	MmapErrCode                = 100006
	MunmapErrCode              = 100007
	WriteFileErrCode           = 100008
	CloseFileErrCode           = 100009
	WorkerPanicErrCode         = 100010
	PushMetricsErrCode         = 100011
	ReadConfigErrCode          = 100012
	UnsupportedPlatformErrCode = 100013
)

func NewInvalidParamErr() *Err {
	return &Err{msg: "invalid params", code: InvalidParamErrCode}
}

func NewParseErr() *Err {
	return &Err{msg: "malformed record field", code: ParseErrCode}
}

func NewOutOfRangeErr() *Err {
	return &Err{msg: "identifier out of range", code: OutOfRangeErrCode}
}

func NewOpenFileErr() *Err {
	return &Err{msg: "open file failed", code: OpenFileErrCode}
}

func NewFileStatErr() *Err {
	return &Err{msg: "file stat failed", code: FileStatErrCode}
}

func NewMmapErr() *Err {
	return &Err{msg: "mmap failed", code: MmapErrCode}
}

func NewMunmapErr() *Err {
	return &Err{msg: "munmap failed", code: MunmapErrCode}
}

func NewWriteFileErr() *Err {
	return &Err{msg: "write file failed", code: WriteFileErrCode}
}

func NewCloseFileErr() *Err {
	return &Err{msg: "close file failed", code: CloseFileErrCode}
}

func NewWorkerPanicErr() *Err {
	return &Err{msg: "partition worker panicked", code: WorkerPanicErrCode}
}

func NewPushMetricsErr() *Err {
	return &Err{msg: "push metrics failed", code: PushMetricsErrCode}
}

func NewReadConfigErr() *Err {
	return &Err{msg: "read config failed", code: ReadConfigErrCode}
}

func NewUnsupportedPlatformErr() *Err {
	return &Err{msg: "unsupported platform", code: UnsupportedPlatformErrCode}
}
