// Package main provides tests for the leapcalc CLI.
package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/leapcalc/internal/cli"
)

// run executes the root command with an isolated config environment.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	cmd := cli.NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(append([]string{}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "version")
	if err != nil {
		t.Errorf("version command error = %v", err)
	}
	if !strings.Contains(out, "leapcalc v") {
		t.Errorf("version output should contain 'leapcalc v', got: %s", out)
	}
}

func TestHelpCommand(t *testing.T) {
	out, _, err := run(t, "--help")
	if err != nil {
		t.Errorf("help command error = %v", err)
	}

	for _, expected := range []string{"eval", "convert", "units", "functions", "repl", "ui", "config"} {
		if !strings.Contains(out, expected) {
			t.Errorf("help output should contain '%s', got: %s", expected, out)
		}
	}
}

func TestEvalCommand(t *testing.T) {
	out, _, err := run(t, "eval", "2^10")
	if err != nil {
		t.Fatalf("eval command error = %v", err)
	}
	if out != "1024\n" {
		t.Errorf("eval output = %q, want %q", out, "1024\n")
	}
}

func TestGlobalFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"angle mode", []string{"--angle-mode", "rad", "eval", "cos(pi)"}, "-1\n"},
		{"precision", []string{"--precision", "4", "eval", "pi"}, "3.142\n"},
		{"local flag wins", []string{"--angle-mode", "rad", "eval", "--deg", "cos(180)"}, "-1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("command error = %v", err)
			}
			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestJSONOutput(t *testing.T) {
	out, _, err := run(t, "-o", "json", "convert", "Temperature", "100", "C", "F")
	if err != nil {
		t.Fatalf("convert command error = %v", err)
	}

	var got struct {
		Category string `json:"category"`
		Result   string `json:"result"`
		To       string `json:"to"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got.Category != "Temperature" || got.Result != "212" || got.To != "F" {
		t.Errorf("unexpected conversion: %+v", got)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calc.yaml")
	if err := os.WriteFile(path, []byte("angle_mode: rad\nprecision: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, _, err := run(t, "--config", path, "eval", "pi")
	if err != nil {
		t.Fatalf("eval command error = %v", err)
	}
	if out != "3.14\n" {
		t.Errorf("eval output = %q, want %q", out, "3.14\n")
	}
}

func TestVerboseLogsToStderr(t *testing.T) {
	out, errOut, err := run(t, "-v", "eval", "1+1")
	if err != nil {
		t.Fatalf("eval command error = %v", err)
	}
	if out != "2\n" {
		t.Errorf("eval output = %q, want %q", out, "2\n")
	}
	if !strings.Contains(errOut, "configuration loaded") {
		t.Errorf("verbose stderr should log the configuration, got: %s", errOut)
	}
}

func TestInvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad angle mode", []string{"--angle-mode", "grad", "eval", "1"}, "unknown angle mode"},
		{"bad output", []string{"-o", "xml", "eval", "1"}, "unknown output format"},
		{"bad precision", []string{"--precision", "40", "eval", "1"}, "precision must be between 1 and 17"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should contain %q", err, tt.want)
			}
		})
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, _, err := run(t, "completion", shell)
			if err != nil {
				t.Fatalf("completion %s error = %v", shell, err)
			}
			if !strings.Contains(out, "leapcalc") {
				t.Errorf("completion script should mention leapcalc")
			}
		})
	}
}
