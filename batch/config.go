// Package batch converts sets of motion files according to a YAML
// configuration, collecting per-job failures instead of aborting the
// whole run.
package batch

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/animtools/bvh/bvh"
)

// Job names one input file and where its converted output goes.
type Job struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

// Config is a batch run: the jobs plus the write options applied to
// every output. Zero-valued option fields keep the canonical defaults.
type Config struct {
	Jobs            []Job  `yaml:"jobs"`
	Indent          string `yaml:"indent"`           // "tabs", "spaces", "none"
	IndentWidth     int    `yaml:"indent_width"`
	LineEndings     string `yaml:"line_endings"`     // "unix", "windows"
	OffsetPrecision int    `yaml:"offset_precision"`
	MotionPrecision int    `yaml:"motion_precision"`
}

// LoadConfig reads a YAML batch configuration.
func LoadConfig(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("batch: read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("batch: parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfigFile reads a YAML batch configuration from the named file.
func LoadConfigFile(path string) (*Config, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("batch: open config %s: %w", path, err)
	}
	defer fh.Close()
	return LoadConfig(fh)
}

func (c *Config) validate() error {
	if len(c.Jobs) == 0 {
		return fmt.Errorf("batch: config declares no jobs")
	}
	for i, job := range c.Jobs {
		if job.Input == "" {
			return fmt.Errorf("batch: job %d has no input", i)
		}
		if job.Output == "" {
			return fmt.Errorf("batch: job %d has no output", i)
		}
	}
	switch c.Indent {
	case "", "tabs", "spaces", "none":
	default:
		return fmt.Errorf("batch: unknown indent style %q", c.Indent)
	}
	switch c.LineEndings {
	case "", "unix", "windows":
	default:
		return fmt.Errorf("batch: unknown line endings %q", c.LineEndings)
	}
	return nil
}

// WriteOptions translates the configured styles into emitter options.
func (c *Config) WriteOptions() bvh.WriteOptions {
	opts := bvh.DefaultWriteOptions()
	switch c.Indent {
	case "spaces":
		opts.Indent = bvh.IndentSpaces
	case "none":
		opts.Indent = bvh.IndentNone
	}
	if c.IndentWidth > 0 {
		opts.IndentWidth = c.IndentWidth
	}
	if c.LineEndings == "windows" {
		opts.Terminator = bvh.LineWindows
	}
	if c.OffsetPrecision > 0 {
		opts.OffsetPrecision = c.OffsetPrecision
	}
	if c.MotionPrecision > 0 {
		opts.MotionPrecision = c.MotionPrecision
	}
	return opts
}
