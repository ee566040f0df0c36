package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/dreamware/mapreduce/internal/config"
	"github.com/dreamware/mapreduce/pkg/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"MR_CONFIG", "MR_MAPPERS", "MR_REDUCERS", "MR_OUTPUT", "MR_VERBOSE"} {
		t.Setenv(k, "")
	}
}

func writeInput(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func sortedLines(s string) []string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	sort.Strings(lines)
	return lines
}

// TestGetenv tests the getenv utility function
func TestGetenv(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      string
		expected string
	}{
		{name: "environment variable set", key: "WC_TEST_ENV_VAR", value: "test_value", def: "default", expected: "test_value"},
		{name: "environment variable not set", key: "WC_UNSET_ENV_VAR", value: "", def: "default_value", expected: "default_value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv(tt.key, tt.value)
			}
			assert.Equal(t, tt.expected, getenv(tt.key, tt.def))
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("args become inputs", func(t *testing.T) {
		clearEnv(t)
		cfg, err := loadConfig([]string{"a.txt", "b.txt"})
		require.NoError(t, err)
		assert.Equal(t, []string{"a.txt", "b.txt"}, cfg.Inputs)
		assert.Equal(t, 4, cfg.Mappers)
	})

	t.Run("config file then env", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		path := writeInput(t, dir, "job.yaml", "mappers: 2\nreducers: 5\ninputs: [x.txt]\n")
		t.Setenv("MR_CONFIG", path)
		t.Setenv("MR_REDUCERS", "7")

		cfg, err := loadConfig([]string{"y.txt", "x.txt"})
		require.NoError(t, err)
		assert.Equal(t, 2, cfg.Mappers)
		assert.Equal(t, 7, cfg.Reducers)
		assert.Equal(t, []string{"x.txt", "y.txt"}, cfg.Inputs)
	})

	t.Run("no inputs is an error", func(t *testing.T) {
		clearEnv(t)
		_, err := loadConfig(nil)
		assert.ErrorContains(t, err, "no input")
	})

	t.Run("missing config file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("MR_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
		_, err := loadConfig([]string{"a.txt"})
		assert.Error(t, err)
	})
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	a := writeInput(t, dir, "a.txt", "the cat the dog\n")
	b := writeInput(t, dir, "b.txt", "the end")

	t.Run("stdout", func(t *testing.T) {
		cfg := config.Default()
		cfg.Mappers = 2
		cfg.Reducers = 3
		cfg.Inputs = []string{a, b}

		var out bytes.Buffer
		require.NoError(t, run(cfg, &out))

		assert.Equal(t, []string{"cat 1", "dog 1", "end 1", "the 3"}, sortedLines(out.String()))
	})

	t.Run("output file", func(t *testing.T) {
		cfg := config.Default()
		cfg.Inputs = []string{a}
		cfg.Output = filepath.Join(dir, "counts.txt")

		var out bytes.Buffer
		require.NoError(t, run(cfg, &out))
		assert.Empty(t, out.String())

		data, err := os.ReadFile(cfg.Output)
		require.NoError(t, err)
		assert.Equal(t, []string{"cat 1", "dog 1", "the 2"}, sortedLines(string(data)))
	})

	t.Run("missing input", func(t *testing.T) {
		cfg := config.Default()
		cfg.Inputs = []string{filepath.Join(dir, "nope.txt")}
		err := run(cfg, &bytes.Buffer{})
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

// failingCloser accepts writes and fails on Close
type failingCloser struct {
	bytes.Buffer
	err error
}

func (f *failingCloser) Close() error { return f.err }

func TestWriteFileReportsCloseError(t *testing.T) {
	errDiskFull := errors.New("no space left on device")
	target := &failingCloser{err: errDiskFull}

	orig := createOutput
	createOutput = func(string) (io.WriteCloser, error) { return target, nil }
	defer func() { createOutput = orig }()

	cfg := config.Default()
	cfg.Inputs = []string{writeInput(t, t.TempDir(), "a.txt", "x y x")}
	cfg.Output = "counts.txt"

	err := run(cfg, &bytes.Buffer{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errDiskFull)
	assert.ErrorContains(t, err, "close output")
	assert.Equal(t, []string{"x 2", "y 1"}, sortedLines(target.String()), "data was written before close")
}

func TestWriteOutput(t *testing.T) {
	var buf bytes.Buffer
	output := kv.NewList(kv.NewPair("b", "2"), kv.NewPair("a", "1"))

	require.NoError(t, writeOutput(&buf, output))
	assert.Equal(t, "b 2\na 1\n", buf.String())
}

func TestMainFatalOnBadConfig(t *testing.T) {
	clearEnv(t)

	var fatalMsg string
	orig := logFatal
	logFatal = func(format string, v ...any) {
		fatalMsg = format
	}
	defer func() { logFatal = orig }()

	origArgs := os.Args
	os.Args = []string{"wordcount"}
	defer func() { os.Args = origArgs }()

	main()

	assert.Equal(t, "config: %v", fatalMsg)
}
