// Package main implements the wordcount command, which counts word
// occurrences across text files with the in-memory MapReduce engine.
//
// Every input file becomes one (filename, contents) record. The mapper
// emits (word, 1) per token and the reducer sums the counts per word.
//
// Configuration:
//   - MR_CONFIG: Optional YAML job file (see internal/config)
//   - MR_MAPPERS: Map worker count (default: 4)
//   - MR_REDUCERS: Reduce worker count (default: 4)
//   - MR_OUTPUT: Result file, "-" for stdout (default: "-")
//   - MR_VERBOSE: Log stage progress to stderr (default: false)
//
// Positional arguments are added to the configured input files.
//
// Example usage:
//
//	MR_MAPPERS=8 MR_REDUCERS=2 ./wordcount books/*.txt
//
// Output is one "word count" line per distinct word, grouped by reducer
// bucket.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dreamware/mapreduce/internal/apps"
	"github.com/dreamware/mapreduce/internal/config"
	"github.com/dreamware/mapreduce/pkg/kv"
	"github.com/dreamware/mapreduce/pkg/mapreduce"
)

// logFatal is a variable to allow mocking log.Fatal in tests
var logFatal = log.Fatalf

// createOutput opens the result file; replaced in tests
var createOutput = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		logFatal("config: %v", err)
		return
	}

	if err := run(cfg, os.Stdout); err != nil {
		logFatal("wordcount: %v", err)
	}
}

// loadConfig layers defaults, the optional MR_CONFIG file, environment
// overrides and command-line inputs, then validates the result.
func loadConfig(args []string) (config.Config, error) {
	cfg := config.Default()

	if path := getenv("MR_CONFIG", ""); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}

	cfg, err := config.FromEnv(cfg)
	if err != nil {
		return cfg, err
	}
	cfg.AddInputs(args...)

	return cfg, cfg.Validate()
}

// run executes the word count job described by cfg. Results go to the
// configured output file, or to stdout when the output is "-".
func run(cfg config.Config, stdout io.Writer) error {
	input, err := readInputs(cfg.Inputs)
	if err != nil {
		return err
	}

	var opts []mapreduce.Option
	if cfg.Verbose {
		opts = append(opts, mapreduce.WithLogger(log.New(os.Stderr, "mapreduce: ", log.LstdFlags)))
	}
	engine := mapreduce.New(opts...)

	output := kv.NewList()
	if err := engine.Run(apps.WordCountMapper, cfg.Mappers, apps.WordCountReducer, cfg.Reducers, input, output); err != nil {
		return err
	}

	if cfg.Output == config.Stdout {
		if err := writeOutput(stdout, output); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	} else if err := writeFile(cfg.Output, output); err != nil {
		return err
	}

	stats := engine.Stats()
	log.Printf("counted %d distinct words from %d files (%d mappers, %d reducers)",
		stats.OutputRecords, stats.InputRecords, cfg.Mappers, cfg.Reducers)
	return nil
}

// writeFile writes the output list to path. A failed close is reported
// since buffered data may not have reached the file.
func writeFile(path string, output *kv.List) error {
	f, err := createOutput(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := writeOutput(f, output); err != nil {
		f.Close()
		return fmt.Errorf("write output: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}

// readInputs loads each file as a (path, contents) record, in order
func readInputs(paths []string) (*kv.List, error) {
	input := kv.NewList()
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		input.Append(kv.Pair{Key: path, Value: data})
	}
	return input, nil
}

// writeOutput prints one "key value" line per record, in list order
func writeOutput(w io.Writer, output *kv.List) error {
	bw := bufio.NewWriter(w)
	it := output.Iterator()
	for p, ok := it.Next(); ok; p, ok = it.Next() {
		if _, err := fmt.Fprintf(bw, "%s %s\n", p.Key, p.Value); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
