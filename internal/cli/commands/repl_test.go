package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcalc/internal/cli/config"
	clitest "github.com/leapstack-labs/leapcalc/internal/cli/testutil"
	"github.com/leapstack-labs/leapcalc/internal/session"
	"github.com/leapstack-labs/leapcalc/internal/testutil"
	"github.com/leapstack-labs/leapcalc/pkg/calc"
)

func newTestShell(t *testing.T) (*shell, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	sess := session.New(session.Config{Logger: testutil.NewTestLogger(t)})
	tr := clitest.NewTestRendererPlain()
	return newShell(sess, tr.Renderer), tr.Out, tr.ErrOut
}

func TestShellExpressions(t *testing.T) {
	sh, out, errOut := newTestShell(t)

	assert.False(t, sh.handleLine("2+2"))
	assert.False(t, sh.handleLine("  "))
	assert.False(t, sh.handleLine("1/0"))
	assert.False(t, sh.handleLine("fact(5)"))

	assert.Equal(t, "4\n120\n", out.String())
	assert.Contains(t, errOut.String(), "DomainError: division by zero")
	assert.Equal(t, 1, sh.failed)
}

func TestShellDotCommands(t *testing.T) {
	sh, out, errOut := newTestShell(t)

	tests := []struct {
		line    string
		wantOut string
	}{
		{".mode", "DEG"},
		{".rad", "angle mode: RAD"},
		{"sin(90)", "0.893996663601"},
		{".toggle", "angle mode: DEG"},
		{".deg", "angle mode: DEG"},
		{".convert Length 1 km m", "1 km = 1000 m"},
		{".convert temperature 212 F K", "212 F = 373.15 K"},
		{".convert Length 3 km", "3 km = 3000 m"},
		{".apply inv 4", "0.25"},
		{".history", "1/(4.0) = 0.25"},
		{".recall 1", "sin(90)"},
		{".units", "Temperature"},
		{".units Speed", "km/h"},
		{".functions", "root(x, n)"},
		{".help", ".recall <n>"},
		{".clear", "history cleared"},
		{".history", "(no history)"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			out.Reset()
			assert.False(t, sh.handleLine(tt.line))
			assert.Contains(t, out.String(), tt.wantOut)
		})
	}

	assert.Empty(t, errOut.String())
	clitest.AssertNoANSI(t, out.String())
	assert.Zero(t, sh.failed)
	assert.Equal(t, calc.Degrees, sh.sess.Mode())
}

func TestShellDotCommandErrors(t *testing.T) {
	tests := []struct {
		line    string
		wantErr string
	}{
		{".convert Length 1", "Usage: .convert"},
		{".convert Bogus 1 a b", "UnknownCategoryError"},
		{".apply sqrt 4", "InvalidExpressionError"},
		{".apply inv", "Usage: .apply"},
		{".recall", "Usage: .recall"},
		{".recall x", "Usage: .recall"},
		{".recall 9", "InvalidInputError"},
		{".units Bogus", "UnknownCategoryError"},
		{".bogus", "Unknown command: .bogus"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			sh, _, errOut := newTestShell(t)
			assert.False(t, sh.handleLine(tt.line))
			assert.Contains(t, errOut.String(), tt.wantErr)
			assert.Equal(t, 1, sh.failed)
		})
	}
}

func TestShellPointsAtError(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"2 ^ sqrt(1, 2)", "  2 ** sqrt(1, 2)\n       ^^^^\n"},
		{"log(8, bse=2)", "  log(8, bse=2)\n         ^^^\n"},
		{"1 + bogus", "  1 + bogus\n      ^^^^^\n"},
		{"2 +", "  2 +\n     ^\n"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			sh, _, errOut := newTestShell(t)
			sh.handleLine(tt.line)
			assert.Contains(t, errOut.String(), tt.want)
			clitest.AssertNoANSI(t, errOut.String())
		})
	}

	sh, _, errOut := newTestShell(t)
	sh.handleLine("1/0")
	assert.NotContains(t, errOut.String(), "^", "domain errors have no location")
}

func TestShellKeywordArguments(t *testing.T) {
	sh, out, errOut := newTestShell(t)
	sh.handleLine("log(8, base=2)")
	sh.handleLine("round(2.567, ndigits=2)")
	assert.Equal(t, "3\n2.57\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestREPLHelpListsEveryCommand(t *testing.T) {
	var b strings.Builder
	printREPLHelp(&b)
	for _, c := range DotCommands() {
		assert.Contains(t, b.String(), c.Usage)
		assert.Contains(t, b.String(), c.Summary)
	}
}

func TestShellRecallPrefill(t *testing.T) {
	sh, out, _ := newTestShell(t)
	var prefilled string
	sh.prefill = func(s string) { prefilled = s }

	sh.handleLine("2 * (3 + 4)")
	out.Reset()
	sh.handleLine(".recall 1")

	assert.Equal(t, "2 * (3 + 4)", prefilled)
	assert.Empty(t, out.String())
}

func TestShellQuit(t *testing.T) {
	for _, line := range []string{".quit", ".exit", ".QUIT"} {
		sh, _, _ := newTestShell(t)
		assert.True(t, sh.handleLine(line), line)
	}
}

func TestREPLCommandScript(t *testing.T) {
	t.Run("all lines succeed", func(t *testing.T) {
		cmd := NewREPLCommand()
		cmd.SetIn(strings.NewReader("2+2\n# comment\n\n.rad\nsin(pi / 2)\n.quit\n3*3\n"))
		out, _, err := execute(t, cmd)
		require.NoError(t, err)
		assert.Contains(t, out, "4\n")
		assert.Contains(t, out, "angle mode: RAD")
		assert.Contains(t, out, "1\n")
		assert.NotContains(t, out, "9", "lines after .quit are not run")
	})

	t.Run("failures are counted", func(t *testing.T) {
		cmd := NewREPLCommand()
		cmd.SetIn(strings.NewReader("1/0\n2+2\nbogus(1)\n"))
		out, errOut, err := execute(t, cmd)
		require.Error(t, err)
		assert.Equal(t, "2 of 3 lines failed", err.Error())
		assert.Contains(t, out, "4")
		assert.Contains(t, errOut, "DomainError")
		assert.Contains(t, errOut, "InvalidExpressionError")
	})
}

func TestCalcCompleter(t *testing.T) {
	complete := func(line string) []string {
		got, _ := calcCompleter{}.Do([]rune(line), len([]rune(line)))
		out := make([]string, len(got))
		for i, g := range got {
			out[i] = string(g)
		}
		return out
	}

	assert.Equal(t, []string{"rt"}, complete("sq"))
	assert.Equal(t, []string{"rt"}, complete("2 * sq"))
	assert.ElementsMatch(t, []string{"in", "qrt"}, complete("s"))
	assert.Equal(t, []string{"vert"}, complete(".con"))
	assert.Equal(t, []string{"ngth"}, complete(".convert Le"))
	assert.Contains(t, complete(".units "), "Temperature")
	assert.Empty(t, complete(".convert Length 1 k"))
	assert.ElementsMatch(t, []string{"n", "og10", "og"}, complete(".apply l"))

	_, n := calcCompleter{}.Do([]rune("π + lo"), 6)
	assert.Equal(t, 2, n)
}

func TestShellApplyConfig(t *testing.T) {
	sh, _, _ := newTestShell(t)
	prev := config.Default()

	next := config.Default()
	assert.Empty(t, sh.applyConfig(prev, next))

	next.AngleMode = calc.Radians
	next.Precision = 4
	changes := sh.applyConfig(prev, next)
	assert.Equal(t, []string{
		"angle mode: RAD (config reloaded)",
		"precision: 4 (config reloaded)",
	}, changes)
	assert.Equal(t, calc.Radians, sh.sess.Mode())
	assert.Equal(t, 4, sh.sess.Precision())
}
