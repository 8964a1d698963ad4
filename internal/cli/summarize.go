package cli

import (
	"os"
	"runtime/debug"
	"runtime/pprof"
	"time"

	"github.com/dhartunian/ticksum/internal/config"
	"github.com/dhartunian/ticksum/internal/errs"
	"github.com/dhartunian/ticksum/internal/logs"
	"github.com/dhartunian/ticksum/internal/metrics"
	"github.com/dhartunian/ticksum/internal/mmap"
	"github.com/dhartunian/ticksum/internal/pipeline"
	"github.com/dhartunian/ticksum/internal/report"
	"github.com/dhartunian/ticksum/internal/table"
	"github.com/google/uuid"
	"github.com/luci/go-render/render"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Result describes a finished run.
type Result struct {
	RunID       string
	Identifiers int
	Elapsed     time.Duration
}

// Summarize maps cfg.Input, aggregates it and writes the summary to
// cfg.Output. cfg must already be validated.
func Summarize(cfg *config.Config) (res Result, err error) {
	started := time.Now()
	res.RunID = uuid.NewString()
	logger := logs.With(zap.String(logs.FieldRunID, res.RunID))
	logger.Debug("config", zap.String("config", render.Render(cfg)))

	if cfg.DisableGC {
		defer debug.SetGCPercent(debug.SetGCPercent(-1))
	}
	if cfg.CPUProfile != "" {
		stop, err := startCPUProfile(cfg.CPUProfile)
		if err != nil {
			return res, err
		}
		defer stop()
	}

	view, err := mmap.Open(cfg.Input)
	if err != nil {
		return res, errors.Wrap(err, "map input")
	}
	defer func() {
		if cerr := view.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	workers := cfg.WorkerCount()
	collector := metrics.New()
	merged, err := pipeline.Run(view.Bytes(), workers, pipeline.WithMetrics(collector))
	if err != nil {
		return res, err
	}

	res.Identifiers, err = writeReport(cfg.Output, merged)
	if err != nil {
		return res, err
	}
	collector.AddIdentifiers(res.Identifiers)

	if cfg.Metrics.PushURL != "" {
		if err = collector.Push(cfg.Metrics.PushURL, cfg.Metrics.Job); err != nil {
			return res, err
		}
	}

	res.Elapsed = time.Since(started)
	logger.Info("summary written",
		zap.String(logs.FieldPath, cfg.Output),
		zap.Int(logs.FieldWorker, workers),
		zap.Int(logs.FieldIDs, res.Identifiers),
		zap.Duration(logs.FieldElapsed, res.Elapsed),
	)
	return res, nil
}

func writeReport(path string, merged *table.Table) (n int, err error) {
	out, err := os.Create(path)
	if err != nil {
		e := errs.NewOpenFileErr().WithErr(err)
		logs.Error(e.Error(), zap.String(logs.FieldPath, path))
		return 0, e
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			e := errs.NewCloseFileErr().WithErr(cerr)
			logs.Error(e.Error(), zap.String(logs.FieldPath, path))
			err = e
		}
	}()

	return report.Write(out, merged)
}

func startCPUProfile(path string) (func(), error) {
	f, err := os.Create(path)
	if err != nil {
		e := errs.NewOpenFileErr().WithErr(err)
		logs.Error(e.Error(), zap.String(logs.FieldPath, path))
		return nil, e
	}
	if err = pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, "start cpu profile")
	}
	return func() {
		pprof.StopCPUProfile()
		_ = f.Close()
	}, nil
}
