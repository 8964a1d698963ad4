package cli

import (
	"os"

	"github.com/dhartunian/ticksum/internal/config"
	"github.com/dhartunian/ticksum/internal/errs"
	"github.com/dhartunian/ticksum/internal/gen"
	"github.com/dhartunian/ticksum/internal/logs"
	"github.com/dhartunian/ticksum/internal/record"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	flagConfig = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "optional yaml config file.",
		EnvVars: []string{"TICKSUM_CONFIG"},
	}
	flagInput = &cli.StringFlag{
		Name:    "input",
		Aliases: []string{"i"},
		Usage:   "input file of fixed 50 byte records.",
	}
	flagOutput = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "summary file to write.",
	}
	flagWorkers = &cli.IntFlag{
		Name:    "workers",
		Aliases: []string{"w"},
		Usage:   "number of partitions decoded in parallel, 0 means one per cpu.",
		Action: func(ctx *cli.Context, workers int) error {
			if workers < 0 {
				e := errs.NewInvalidParamErr()
				logs.Error(e.Error(), zap.String(logs.FieldParams, "workers"), zap.Int(logs.FieldValue, workers))
				return e
			}
			return nil
		},
	}
	flagCPUProfile = &cli.StringFlag{
		Name:  "cpu-profile",
		Usage: "write a cpu profile of the run to this file.",
	}
	flagDisableGC = &cli.BoolFlag{
		Name:  "disable-gc",
		Usage: "turn the garbage collector off for the run.",
	}
	flagPushURL = &cli.StringFlag{
		Name:  "push-url",
		Usage: "prometheus push gateway to send run metrics to.",
	}

	flagGenOutput = &cli.StringFlag{
		Name:     "output",
		Aliases:  []string{"o"},
		Usage:    "file to write generated records to.",
		Required: true,
	}
	flagGenRecords = &cli.Int64Flag{
		Name:    "records",
		Aliases: []string{"n"},
		Value:   gen.DefaultOptions().Records,
		Usage:   "number of records.",
		Action: func(ctx *cli.Context, n int64) error {
			if n < 0 {
				e := errs.NewInvalidParamErr()
				logs.Error(e.Error(), zap.String(logs.FieldParams, "records"), zap.Int64(logs.FieldValue, n))
				return e
			}
			return nil
		},
	}
	flagGenMinID = &cli.UintFlag{
		Name:  "min-id",
		Value: 0,
		Usage: "smallest identifier.",
	}
	flagGenMaxID = &cli.UintFlag{
		Name:  "max-id",
		Value: record.MaxID,
		Usage: "largest identifier, at most 99999999.",
		Action: func(ctx *cli.Context, id uint) error {
			if id > record.MaxID {
				e := errs.NewInvalidParamErr()
				logs.Error(e.Error(), zap.String(logs.FieldParams, "max-id"), zap.Uint(logs.FieldValue, id))
				return e
			}
			return nil
		},
	}
	flagGenSeed = &cli.Int64Flag{
		Name:  "seed",
		Value: gen.DefaultOptions().Seed,
		Usage: "random seed; equal seeds give equal files.",
	}
)

type Wrapper struct {
	app *cli.App
}

func NewWrapper() *Wrapper {
	wrapper := &Wrapper{
		app: &cli.App{
			Name:    "ticksum",
			Usage:   "sum elapsed time per identifier over a fixed-layout log",
			Version: "0.1.0",
		},
	}
	wrapper.withFlags()
	wrapper.withAction()
	wrapper.withCommands()
	return wrapper
}

func (wrapper *Wrapper) Run(args []string) error {
	return wrapper.app.Run(args)
}

func (wrapper *Wrapper) withFlags() {
	wrapper.app.Flags = []cli.Flag{
		flagConfig,
		flagInput,
		flagOutput,
		flagWorkers,
		flagCPUProfile,
		flagDisableGC,
		flagPushURL,
	}
}

func (wrapper *Wrapper) withAction() {
	wrapper.app.Action = func(ctx *cli.Context) error {
		cfg, err := config.Load(ctx.String(flagConfig.Name))
		if err != nil {
			return err
		}
		applyFlags(ctx, cfg)
		if err = cfg.Validate(); err != nil {
			return err
		}
		_, err = Summarize(cfg)
		return err
	}
}

func (wrapper *Wrapper) withCommands() {
	wrapper.app.Commands = []*cli.Command{
		{
			Name:  "gen",
			Usage: "write synthetic input records",
			Flags: []cli.Flag{
				flagGenOutput,
				flagGenRecords,
				flagGenMinID,
				flagGenMaxID,
				flagGenSeed,
			},
			Action: func(ctx *cli.Context) error {
				o := gen.DefaultOptions()
				o.Records = ctx.Int64(flagGenRecords.Name)
				o.MinID = uint32(ctx.Uint(flagGenMinID.Name))
				o.MaxID = uint32(ctx.Uint(flagGenMaxID.Name))
				o.Seed = ctx.Int64(flagGenSeed.Name)
				return generate(ctx.String(flagGenOutput.Name), o)
			},
		},
	}
}

// applyFlags lets explicitly set flags win over file and environment.
func applyFlags(ctx *cli.Context, cfg *config.Config) {
	if ctx.IsSet(flagInput.Name) {
		cfg.Input = ctx.String(flagInput.Name)
	}
	if ctx.IsSet(flagOutput.Name) {
		cfg.Output = ctx.String(flagOutput.Name)
	}
	if ctx.IsSet(flagWorkers.Name) {
		cfg.Workers = ctx.Int(flagWorkers.Name)
	}
	if ctx.IsSet(flagCPUProfile.Name) {
		cfg.CPUProfile = ctx.String(flagCPUProfile.Name)
	}
	if ctx.IsSet(flagDisableGC.Name) {
		cfg.DisableGC = ctx.Bool(flagDisableGC.Name)
	}
	if ctx.IsSet(flagPushURL.Name) {
		cfg.Metrics.PushURL = ctx.String(flagPushURL.Name)
	}
}

func generate(path string, o gen.Options) (err error) {
	f, err := os.Create(path)
	if err != nil {
		e := errs.NewOpenFileErr().WithErr(err)
		logs.Error(e.Error(), zap.String(logs.FieldPath, path))
		return e
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errs.NewCloseFileErr().WithErr(cerr)
		}
	}()

	if err = gen.Write(f, o); err != nil {
		return err
	}
	logs.Info("records generated", zap.String(logs.FieldPath, path), zap.Int64(logs.FieldRecords, o.Records))
	return nil
}
