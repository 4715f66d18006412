package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcalc/internal/cli/config"
	"github.com/leapstack-labs/leapcalc/internal/cli/output"
	clitest "github.com/leapstack-labs/leapcalc/internal/cli/testutil"
)

// execute runs cmd with args and returns stdout and stderr.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{}, args...))
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestNewEvalCommand(t *testing.T) {
	cmd := NewEvalCommand()

	assert.Equal(t, "eval <expression...>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	for _, flag := range []string{"rad", "deg"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewConvertCommand(t *testing.T) {
	cmd := NewConvertCommand()

	assert.Equal(t, "convert <category> <value> <from> [to]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.Contains(t, cmd.Aliases, "conv")
}

func TestNewUnitsCommand(t *testing.T) {
	cmd := NewUnitsCommand()

	assert.Equal(t, "units [category]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
}

func TestNewREPLCommand(t *testing.T) {
	cmd := NewREPLCommand()

	assert.Equal(t, "repl", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
}

func TestNewUICommand(t *testing.T) {
	cmd := NewUICommand()

	assert.Equal(t, "ui", cmd.Use)
	assert.NotEmpty(t, cmd.Long, "Long should not be empty")
}

func TestEvalCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"single argument", []string{"2+2"}, "4"},
		{"joined arguments", []string{"sqrt(16)", "*", "2^3"}, "32"},
		{"degrees by default", []string{"sin(90)"}, "1"},
		{"radians flag", []string{"--rad", "sin(90)"}, "0.893996663601"},
		{"degrees flag", []string{"--deg", "cos(60)"}, "0.5"},
		{"negative after --", []string{"--", "-2", "+", "3"}, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, NewEvalCommand(), tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out)
		})
	}
}

func TestEvalCommandErrors(t *testing.T) {
	tests := []struct {
		args []string
		kind string
	}{
		{[]string{"1/0"}, "DomainError"},
		{[]string{"__import__('os')"}, "InvalidExpressionError"},
		{[]string{"2", "+"}, "SyntaxError"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			_, _, err := execute(t, NewEvalCommand(), tt.args...)
			require.Error(t, err)
			assert.True(t, strings.HasPrefix(err.Error(), tt.kind+": "), "got %q", err)
		})
	}

	_, _, err := execute(t, NewEvalCommand(), "--rad", "--deg", "1")
	assert.Error(t, err, "--rad and --deg are mutually exclusive")
}

func TestConvertCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"length", []string{"Length", "1", "km", "m"}, "1 km = 1000 m"},
		{"negative temperature", []string{"temperature", "-40", "C", "F"}, "-40 C = -40 F"},
		{"alias", []string{"Volume", "2", "m3", "L"}, "2 m³ = 2000 L"},
		{"default partner", []string{"Length", "3", "km"}, "3 km = 3000 m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, NewConvertCommand(), tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out)
		})
	}
}

func TestConvertCommandErrors(t *testing.T) {
	tests := []struct {
		args []string
		kind string
	}{
		{[]string{"Bogus", "1", "a", "b"}, "UnknownCategoryError"},
		{[]string{"Length", "1", "parsec", "m"}, "UnknownUnitError"},
		{[]string{"Length", "abc", "km", "m"}, "InvalidInputError"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			_, _, err := execute(t, NewConvertCommand(), tt.args...)
			require.Error(t, err)
			assert.True(t, strings.HasPrefix(err.Error(), tt.kind+": "), "got %q", err)
		})
	}

	_, _, err := execute(t, NewConvertCommand(), "Length", "1")
	assert.Error(t, err, "too few arguments")
}

func TestUnitsCommand(t *testing.T) {
	out, _, err := execute(t, NewUnitsCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "# Categories (7)")
	assert.Contains(t, out, "| Temperature | Celsius | C, F, K |")
	clitest.AssertValidMarkdown(t, out)
	clitest.AssertNoANSI(t, out)

	out, _, err = execute(t, NewUnitsCommand(), "length")
	require.NoError(t, err)
	assert.Contains(t, out, "# Length")
	assert.Contains(t, out, "| foot | ft |")
	assert.Contains(t, out, "Base unit: meter")

	_, _, err = execute(t, NewUnitsCommand(), "Bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UnknownCategoryError")
}

func TestFunctionsCommand(t *testing.T) {
	out, _, err := execute(t, NewFunctionsCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "# Functions")
	assert.Contains(t, out, "log(x, base=10)")
	assert.Contains(t, out, "e, pi")
}

func TestConfigCommand(t *testing.T) {
	out, _, err := execute(t, NewConfigCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "angle_mode: deg")
	assert.Contains(t, out, "precision: 12")
	assert.Contains(t, out, "leapcalc> ")
	assert.Contains(t, out, "# config file: none")
}

func TestCommandContextFromContext(t *testing.T) {
	config.ResetConfig()

	t.Run("root values", func(t *testing.T) {
		cfg := config.Default()
		cfg.Precision = 3
		tr := clitest.NewTestRendererJSON()

		cmd := &cobra.Command{Use: "x"}
		cmd.SetContext(output.WithRenderer(config.WithConfig(context.Background(), cfg), tr.Renderer))

		cmdCtx := NewCommandContext(cmd)
		assert.Same(t, cfg, cmdCtx.Cfg)
		assert.Same(t, tr.Renderer, cmdCtx.Renderer)

		result, err := cmdCtx.Session.Evaluate("1/3")
		require.NoError(t, err)
		assert.Equal(t, "0.333", result)
	})

	t.Run("fallbacks", func(t *testing.T) {
		var out bytes.Buffer
		cmd := &cobra.Command{Use: "x"}
		cmd.SetOut(&out)
		cmd.SetContext(context.Background())

		cmdCtx := NewCommandContextWithoutSession(cmd)
		assert.Equal(t, config.Default(), cmdCtx.Cfg)
		require.NotNil(t, cmdCtx.Renderer)
		cmdCtx.Renderer.Println("written")
		assert.Equal(t, "written\n", out.String())
	})
}
