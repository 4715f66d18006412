// Package config provides configuration management for the leapcalc CLI.
package config

import "github.com/leapstack-labs/leapcalc/pkg/calc"

// REPLConfig holds configuration for the interactive shell.
type REPLConfig struct {
	Prompt      string `koanf:"prompt" json:"prompt" yaml:"prompt"`
	HistoryFile string `koanf:"history_file" json:"history_file" yaml:"history_file"`
}

// Config holds all CLI configuration options.
type Config struct {
	AngleMode    calc.AngleMode `koanf:"angle_mode" json:"angle_mode" yaml:"angle_mode"`
	Precision    int            `koanf:"precision" json:"precision" yaml:"precision"`
	OutputFormat string         `koanf:"output" json:"output" yaml:"output"`
	Verbose      bool           `koanf:"verbose" json:"verbose" yaml:"verbose"`
	REPL         REPLConfig     `koanf:"repl" json:"repl" yaml:"repl"`
}

// Default configuration values
const (
	DefaultAngleMode = "deg"
	DefaultPrecision = calc.DefaultPrecision
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultPrompt    = "leapcalc> "
)

// Default returns the configuration used when nothing has been loaded.
func Default() *Config {
	return &Config{
		AngleMode:    calc.Degrees,
		Precision:    DefaultPrecision,
		OutputFormat: DefaultOutput,
		REPL:         REPLConfig{Prompt: DefaultPrompt},
	}
}
