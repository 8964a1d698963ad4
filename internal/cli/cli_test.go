package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dhartunian/ticksum/internal/config"
	"github.com/dhartunian/ticksum/internal/errs"
	"github.com/dhartunian/ticksum/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenAndSummarize(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "data.txt")
	single := filepath.Join(dir, "single.txt")
	multi := filepath.Join(dir, "multi.txt")

	require.NoError(t, NewWrapper().Run([]string{"ticksum", "gen", "-o", input, "-n", "5000", "--max-id", "200000", "--seed", "11"}))
	fi, err := os.Stat(input)
	require.NoError(t, err)
	assert.Equal(t, int64(5000*record.Size), fi.Size())

	require.NoError(t, NewWrapper().Run([]string{"ticksum", "-i", input, "-o", single, "-w", "1"}))
	require.NoError(t, NewWrapper().Run([]string{"ticksum", "-i", input, "-o", multi, "-w", "4", "--disable-gc"}))

	a, err := os.ReadFile(single)
	require.NoError(t, err)
	b, err := os.ReadFile(multi)
	require.NoError(t, err)
	assert.NotEmpty(t, a)
	assert.Equal(t, a, b)
}

func TestSummarize(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(input, []byte(
		"2019-03-01T10:00:00Z2019-03-01T10:00:00Z00000042\r\n"+
			"2019-03-01T11:00:00Z2019-03-01T11:00:01Z00000042\r\n"), 0644))

	cfg := &config.Config{
		Input:      input,
		Output:     filepath.Join(dir, "summary.txt"),
		Workers:    2,
		CPUProfile: filepath.Join(dir, "cpu.pprof"),
	}
	require.NoError(t, cfg.Validate())

	res, err := Summarize(cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Identifiers)
	assert.NotEmpty(t, res.RunID)

	out, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	assert.Equal(t, "0000000042 00:00:01\n", string(out))
	assert.FileExists(t, cfg.CPUProfile)
}

func TestSummarizeFailed(t *testing.T) {
	dir := t.TempDir()

	_, err := Summarize(&config.Config{
		Input:   filepath.Join(dir, "missing.txt"),
		Output:  filepath.Join(dir, "summary.txt"),
		Workers: 1,
	})
	assert.Equal(t, int64(errs.OpenFileErrCode), errs.GetCode(err))

	input := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(input, []byte("2019-03-01T10:00:00Z2019-03-01T10:00:00Z0000004?\r\n"), 0644))
	_, err = Summarize(&config.Config{Input: input, Output: filepath.Join(dir, "summary.txt"), Workers: 1})
	assert.Equal(t, int64(errs.ParseErrCode), errs.GetCode(err))
	assert.NoFileExists(t, filepath.Join(dir, "summary.txt"))
}

func TestRunInvalidFlags(t *testing.T) {
	err := NewWrapper().Run([]string{"ticksum", "-w", "-1"})
	assert.Equal(t, int64(errs.InvalidParamErrCode), errs.GetCode(err))

	err = NewWrapper().Run([]string{"ticksum", "gen", "-o", filepath.Join(t.TempDir(), "x"), "--max-id", "100000000"})
	assert.Equal(t, int64(errs.InvalidParamErrCode), errs.GetCode(err))
}
