package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcalc/internal/cli/commands"
	"github.com/leapstack-labs/leapcalc/internal/cli/config"
	"github.com/leapstack-labs/leapcalc/pkg/units"
)

func TestUnitsPage(t *testing.T) {
	page, err := unitsPage(units.Default)
	require.NoError(t, err)

	s := string(page)
	assert.Contains(t, s, "## Temperature")
	assert.Contains(t, s, "Base unit: Celsius.")
	assert.Contains(t, s, "| `m³` | `m3` |")
}

func TestFunctionsPage(t *testing.T) {
	s := string(functionsPage())
	assert.Contains(t, s, "| `sqrt(x)` |")
	assert.Contains(t, s, "- `pi`")
}

func TestGenerateCLIDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateCLIDocs(dir))

	index, err := os.ReadFile(filepath.Join(dir, "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "[`convert`](/cli/convert)")
	assert.Contains(t, string(index), "`--angle-mode`")

	for _, s := range config.Settings {
		assert.Contains(t, string(index), "`"+config.EnvVar(s.Key)+"`")
		assert.Contains(t, string(index), "`--"+s.Flag+"`")
	}
	assert.Contains(t, string(index), "`leapcalc.yaml`")

	convert, err := os.ReadFile(filepath.Join(dir, "convert.md"))
	require.NoError(t, err)
	assert.Contains(t, string(convert), "leapcalc convert <category> <value> <from> [to]")
	assert.Contains(t, string(convert), "```bash\nleapcalc convert Length 1 km m\n")

	repl, err := os.ReadFile(filepath.Join(dir, "repl.md"))
	require.NoError(t, err)
	for _, c := range commands.DotCommands() {
		assert.Contains(t, string(repl), "`"+c.Usage+"`")
	}
	assert.NotContains(t, string(index), "cli/help")
}

func TestExampleLines(t *testing.T) {
	assert.Equal(t, []string{"leapcalc repl", "leapcalc repl --angle-mode rad"},
		exampleLines("  leapcalc repl\n\n    leapcalc repl --angle-mode rad\n"))
	assert.Empty(t, exampleLines(""))
}

func TestCleanDescription(t *testing.T) {
	assert.Equal(t, "a b c", cleanDescription("a\n  b\tc "))
}
