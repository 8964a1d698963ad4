// Package config loads run settings from an optional YAML file, TICKSUM_*
// environment variables and defaults. Command line flags are applied on top
// by the caller.
package config

import (
	"runtime"
	"strings"

	"github.com/dhartunian/ticksum/internal/errs"
	"github.com/dhartunian/ticksum/internal/logs"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	KeyInput       = "input"
	KeyOutput      = "output"
	KeyWorkers     = "workers"
	KeyCPUProfile  = "cpu_profile"
	KeyDisableGC   = "disable_gc"
	KeyMetricsPush = "metrics.push_url"
	KeyMetricsJob  = "metrics.job"

	envPrefix  = "TICKSUM"
	maxWorkers = 4096
)

type Config struct {
	Input      string  `mapstructure:"input"`
	Output     string  `mapstructure:"output"`
	Workers    int     `mapstructure:"workers"` // 0 means one per CPU
	CPUProfile string  `mapstructure:"cpu_profile"`
	DisableGC  bool    `mapstructure:"disable_gc"`
	Metrics    Metrics `mapstructure:"metrics"`
}

type Metrics struct {
	PushURL string `mapstructure:"push_url"`
	Job     string `mapstructure:"job"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyInput, "data.txt")
	v.SetDefault(KeyOutput, "summary.txt")
	v.SetDefault(KeyWorkers, 4)
	v.SetDefault(KeyCPUProfile, "")
	v.SetDefault(KeyDisableGC, false)
	v.SetDefault(KeyMetricsPush, "")
	v.SetDefault(KeyMetricsJob, "ticksum")
}

// Load reads path if it is not empty. Environment variables override the
// file, e.g. TICKSUM_WORKERS or TICKSUM_METRICS_PUSH_URL.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			e := errs.NewReadConfigErr().WithErr(err)
			logs.Error(e.Error(), zap.String(logs.FieldPath, path))
			return nil, e
		}
		v.SetConfigFile(expanded)
		v.SetConfigType("yaml")
		if err = v.ReadInConfig(); err != nil {
			e := errs.NewReadConfigErr().WithErr(err)
			logs.Error(e.Error(), zap.String(logs.FieldPath, expanded))
			return nil, e
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		e := errs.NewReadConfigErr().WithErr(err)
		logs.Error(e.Error())
		return nil, e
	}
	return cfg, nil
}

// Validate checks the settings and expands ~ in paths.
func (c *Config) Validate() error {
	if c.Workers < 0 || c.Workers > maxWorkers {
		e := errs.NewInvalidParamErr()
		logs.Error(e.Error(), zap.String(logs.FieldParams, KeyWorkers), zap.Int(logs.FieldValue, c.Workers))
		return e
	}
	for _, p := range []struct {
		key   string
		value *string
		must  bool
	}{
		{KeyInput, &c.Input, true},
		{KeyOutput, &c.Output, true},
		{KeyCPUProfile, &c.CPUProfile, false},
	} {
		if *p.value == "" {
			if p.must {
				e := errs.NewInvalidParamErr()
				logs.Error(e.Error(), zap.String(logs.FieldParams, p.key), zap.String(logs.FieldValue, ""))
				return e
			}
			continue
		}
		expanded, err := homedir.Expand(*p.value)
		if err != nil {
			return errors.Wrap(errs.NewInvalidParamErr().WithErr(err), p.key)
		}
		*p.value = expanded
	}
	return nil
}

// WorkerCount resolves Workers, mapping 0 to the number of CPUs.
func (c *Config) WorkerCount() int {
	if c.Workers == 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}
