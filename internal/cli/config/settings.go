package config

import (
	"context"
	"strings"
)

// Setting describes one configuration key and every way it can be set.
type Setting struct {
	Key         string // koanf path, e.g. "repl.history_file"
	Flag        string // persistent flag name
	Default     any
	Description string
}

// Settings lists the configuration keys in documentation order.
var Settings = []Setting{
	{"angle_mode", "angle-mode", DefaultAngleMode, "Angle unit for trigonometric functions (deg or rad)"},
	{"precision", "precision", DefaultPrecision, "Significant digits in formatted results (1-17)"},
	{"output", "output", DefaultOutput, "Output format (auto, text, markdown, json, yaml)"},
	{"verbose", "verbose", false, "Debug logging on stderr"},
	{"repl.prompt", "prompt", DefaultPrompt, "REPL prompt"},
	{"repl.history_file", "history-file", "", "REPL line history file"},
}

// FileNames are the config file names looked up when no --config is given.
func FileNames() []string {
	return append([]string(nil), configNames...)
}

// EnvVar returns the environment variable that sets key.
func EnvVar(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// envKey maps LEAPCALC_REPL_HISTORY_FILE to repl.history_file.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "repl_"); ok {
		return "repl." + rest
	}
	return key
}

// flagKey maps a changed flag to its config key. Flags that are not
// configuration (like --config itself) map to "".
func flagKey(name string) string {
	for _, s := range Settings {
		if s.Flag == name {
			return s.Key
		}
	}
	return ""
}

func defaults() map[string]any {
	m := make(map[string]any, len(Settings))
	for _, s := range Settings {
		m[s.Key] = s.Default
	}
	return m
}

// configKey is used to store the loaded config in context.
type configKey struct{}

// WithConfig returns a copy of ctx carrying cfg.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext returns the config stored by WithConfig, or nil.
func FromContext(ctx context.Context) *Config {
	if ctx == nil {
		return nil
	}
	cfg, _ := ctx.Value(configKey{}).(*Config)
	return cfg
}
