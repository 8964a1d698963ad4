package logs

import (
	"os"

	"go.uber.org/zap"
)

const (
	FieldParams    = "params"
	FieldValue     = "value"
	FieldRunID     = "run_id"
	FieldWorker    = "worker"
	FieldOffset    = "offset"
	FieldPath      = "path"
	FieldElapsed   = "elapsed"
	FieldRecords   = "records"
	FieldSlots     = "slots"
	FieldIDs       = "identifiers"
	FieldPartStart = "partition_start"
	FieldPartEnd   = "partition_end"
)

var Logger *zap.Logger

func init() {
	var err error
	option := zap.AddCaller()
	if IsTest() {
		Logger, err = zap.NewDevelopment(option)
	} else {
		Logger, err = zap.NewProduction(option)
	}

	if err != nil {
		panic(err)
	}
}

func IsTest() bool {
	return os.Getenv("TICKSUM_ENV") == "test"
}

// With returns a child of the global logger carrying fields, e.g. the run id.
func With(fields ...zap.Field) *zap.Logger {
	return Logger.With(fields...)
}

func Debug(msg string, fields ...zap.Field) {
	Logger.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	Logger.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	Logger.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Logger.Error(msg, fields...)
}

func Sync() {
	_ = Logger.Sync()
}
