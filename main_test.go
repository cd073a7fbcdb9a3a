package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestRunDefinitionOverrides(t *testing.T) {
	inputFile := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(inputFile, []byte(`
name: lognormal
samples: 500
a: 0
b: 8
density: lognormal
seed: 7
`), 0644))

	cla := &commandLineArgs{
		inputFile: inputFile,
		overrides: map[string]interface{}{
			"samples": "250",
			"report":  "true",
			"seed":    "18446744073709551615",
		},
	}
	definition, err := cla.runDefinition(quietLogger())
	require.NoError(t, err)
	assert.Equal(t, "lognormal", definition.Name)
	assert.Equal(t, 250, definition.Samples)
	assert.Equal(t, 8.0, definition.B)
	assert.Equal(t, "lognormal", definition.DensityType())
	assert.Equal(t, uint64(18446744073709551615), definition.Seed)
	assert.True(t, definition.Report)
	assert.True(t, definition.Plot)
}

func TestRunExitCodes(t *testing.T) {
	outputDirectory := t.TempDir()
	cla := &commandLineArgs{
		outputDirectory: outputDirectory,
		overrides: map[string]interface{}{
			"name":    "normal",
			"density": "normal",
			"a":       "-5",
			"b":       "5",
			"samples": "200",
			"seed":    "1",
		},
	}
	assert.Equal(t, 0, run(cla, quietLogger()))
	_, statErr := os.Stat(filepath.Join(outputDirectory, "samples_normal.csv"))
	require.NoError(t, statErr)

	cla.overrides["a"] = "5"
	assert.Equal(t, 1, run(cla, quietLogger()))

	cla.overrides["a"] = "-5"
	cla.overrides["density"] = "Cauchy(0, 1)"
	assert.Equal(t, 2, run(cla, quietLogger()))

	cla.inputFile = filepath.Join(outputDirectory, "missing.toml")
	assert.Equal(t, 2, run(cla, quietLogger()))
}

func TestLoggerWritesStdoutAndLogFile(t *testing.T) {
	lvl := &slog.LevelVar{}
	logFile := filepath.Join(t.TempDir(), "gometropolis.log")
	var stdout bytes.Buffer
	logger, closer := newLogger(&stdout, logFile, lvl)
	logger.Info("sampling", "name", "exp")
	logger.Debug("hidden")
	require.NoError(t, closer.Close())

	assert.Contains(t, stdout.String(), "msg=sampling name=exp")
	assert.NotContains(t, stdout.String(), "hidden")
	fileContents, readErr := os.ReadFile(logFile)
	require.NoError(t, readErr)
	assert.Equal(t, stdout.String(), string(fileContents))
}
