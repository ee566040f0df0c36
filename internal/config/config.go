// Package config loads MapReduce job settings from a YAML file and the
// environment.
//
// Precedence, lowest to highest:
//  1. Default()
//  2. YAML file (Load)
//  3. Environment (FromEnv): MR_MAPPERS, MR_REDUCERS, MR_OUTPUT, MR_VERBOSE
//
// Example file:
//
//	mappers: 8
//	reducers: 4
//	output: counts.txt
//	inputs:
//	  - books/a.txt
//	  - books/b.txt
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// Stdout is the Output value that sends results to standard output
const Stdout = "-"

// Config describes one job run
type Config struct {
	Output   string   `yaml:"output"`   // Result file, or "-" for stdout
	Inputs   []string `yaml:"inputs"`   // Files read as (name, contents) records
	Mappers  int      `yaml:"mappers"`  // Map worker count
	Reducers int      `yaml:"reducers"` // Reduce worker count
	Verbose  bool     `yaml:"verbose"`  // Log stage progress
}

// Default returns the settings used when nothing else is configured
func Default() Config {
	return Config{
		Mappers:  4,
		Reducers: 4,
		Output:   Stdout,
	}
}

// Load reads a YAML file over the defaults.
// Fields missing from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv applies environment overrides to cfg
func FromEnv(cfg Config) (Config, error) {
	var err error
	if cfg.Mappers, err = intEnv("MR_MAPPERS", cfg.Mappers); err != nil {
		return cfg, err
	}
	if cfg.Reducers, err = intEnv("MR_REDUCERS", cfg.Reducers); err != nil {
		return cfg, err
	}
	cfg.Output = getenv("MR_OUTPUT", cfg.Output)
	if v := os.Getenv("MR_VERBOSE"); v != "" {
		verbose, perr := strconv.ParseBool(v)
		if perr != nil {
			return cfg, fmt.Errorf("MR_VERBOSE: %w", perr)
		}
		cfg.Verbose = verbose
	}
	return cfg, nil
}

// AddInputs appends input files, skipping ones already listed
func (c *Config) AddInputs(paths ...string) {
	for _, p := range paths {
		if !slices.Contains(c.Inputs, p) {
			c.Inputs = append(c.Inputs, p)
		}
	}
}

// Validate reports the first setting that cannot run
func (c Config) Validate() error {
	switch {
	case c.Mappers < 1:
		return fmt.Errorf("mappers must be at least 1, got %d", c.Mappers)
	case c.Reducers < 1:
		return fmt.Errorf("reducers must be at least 1, got %d", c.Reducers)
	case len(c.Inputs) == 0:
		return errors.New("no input files")
	case c.Output == "":
		return errors.New("output must be a path or \"-\"")
	}
	return nil
}

func intEnv(k string, def int) (int, error) {
	v := getenv(k, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", k, err)
	}
	return n, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
