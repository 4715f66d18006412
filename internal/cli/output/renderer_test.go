package output

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(isTTY bool, mode Mode) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewRendererWithTTY(&out, &errOut, isTTY, mode), &out, &errOut
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		name  string
		mode  Mode
		isTTY bool
		want  Mode
	}{
		{"auto on tty", ModeAuto, true, ModeText},
		{"auto piped", ModeAuto, false, ModeMarkdown},
		{"empty is auto", "", false, ModeMarkdown},
		{"json", ModeJSON, true, ModeJSON},
		{"yaml", ModeYAML, false, ModeYAML},
		{"text piped", ModeText, false, ModeText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newTestRenderer(tt.isTTY, tt.mode)
			assert.Equal(t, tt.want, r.EffectiveMode())
			assert.Equal(t, tt.isTTY, r.IsTTY())
		})
	}
}

func TestPlainOutputWithoutTTY(t *testing.T) {
	r, out, errOut := newTestRenderer(false, ModeText)

	r.Success("done")
	r.Muted("quiet")
	r.StatusLine("sin", "success", "(x)")
	r.Warning("careful")
	r.Error("broken")

	assert.Equal(t, "✓ done\nquiet\n✓ sin (x)\n", out.String())
	assert.Equal(t, "! careful\n✗ broken\n", errOut.String())
	assert.NotContains(t, out.String(), "\x1b[")
}

func TestHeader(t *testing.T) {
	r, out, _ := newTestRenderer(false, ModeMarkdown)
	r.Header(1, "Units")
	r.Header(2, "Length")
	assert.Equal(t, "# Units\n## Length\n", out.String())

	r, out, _ = newTestRenderer(false, ModeText)
	r.Header(1, "Units")
	assert.Equal(t, "Units\n", out.String())
}

func TestStructured(t *testing.T) {
	v := EvalOutput{Expression: "2+2", Result: "4", Mode: "DEG"}

	r, out, _ := newTestRenderer(false, ModeJSON)
	ok, err := r.Structured(v)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"expression":"2+2","result":"4","mode":"DEG"}`, out.String())

	r, out, _ = newTestRenderer(false, ModeYAML)
	ok, err = r.Structured(v)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.YAMLEq(t, "expression: 2+2\nresult: \"4\"\nmode: DEG\n", out.String())

	r, out, _ = newTestRenderer(true, ModeAuto)
	ok, err = r.Structured(v)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, out.String())
}

func TestTable(t *testing.T) {
	rows := [][]string{{"Length", "m"}, {"Mass", "kg"}}

	r, out, _ := newTestRenderer(false, ModeMarkdown)
	r.Table([]string{"Category", "Base"}, rows)
	assert.Contains(t, out.String(), "| Length | m |")
	assert.Contains(t, out.String(), "| Mass | kg |")

	r, out, _ = newTestRenderer(false, ModeText)
	r.Table([]string{"Category", "Base"}, rows)
	assert.Contains(t, out.String(), "┌")
	assert.Contains(t, out.String(), "Length")
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "# Title", FormatHeader(0, "Title"))
	assert.Equal(t, "### Title", FormatHeader(3, "Title"))
	assert.Equal(t, "- **Mode:** DEG", FormatKeyValue("Mode", "DEG"))
	assert.Equal(t, "`sin(x)`", FormatCode("sin(x)"))
}

func TestRendererContext(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))

	r, _, _ := newTestRenderer(false, ModeJSON)
	ctx := WithRenderer(context.Background(), r)
	assert.Same(t, r, FromContext(ctx))
}
