package commands

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leapstack-labs/leapcalc/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewUICommand creates the ui command.
func NewUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Start the full-screen calculator",
		Long: `Start a full-screen terminal UI with three tabs:

- Calculator: type an expression and press enter; ctrl+t toggles DEG/RAD
- Converter: ctrl+n/ctrl+p pick the category, ctrl+f/ctrl+g the units,
  ctrl+s swaps them; type a value and press enter
- History: enter recalls an expression into the calculator, ctrl+x clears

Switch tabs with tab and shift+tab; esc quits.`,
		Example: `  leapcalc ui
  leapcalc ui --angle-mode rad`,
		Args: cobra.NoArgs,
		RunE: runUI,
	}
}

func runUI(cmd *cobra.Command, _ []string) error {
	if f, ok := cmd.InOrStdin().(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		return fmt.Errorf("ui requires an interactive terminal\nHint: use 'leapcalc repl' to read expressions from a pipe")
	}

	cmdCtx := NewCommandContext(cmd)
	cmdCtx.Logger.Debug("starting ui", "session", cmdCtx.Session.ID())

	return tui.Run(cmdCtx.Session,
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
}
