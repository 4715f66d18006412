package commands

import (
	"strings"

	"github.com/leapstack-labs/leapcalc/internal/cli/output"
	"github.com/leapstack-labs/leapcalc/pkg/calc"
	"github.com/spf13/cobra"
)

// EvalOptions holds options for the eval command.
type EvalOptions struct {
	Radians bool
	Degrees bool
}

// NewEvalCommand creates the eval command.
func NewEvalCommand() *cobra.Command {
	opts := &EvalOptions{}

	cmd := &cobra.Command{
		Use:     "eval <expression...>",
		Aliases: []string{"e", "calc"},
		Short:   "Evaluate an expression",
		Long: `Evaluate an arithmetic expression and print the result.

Arguments are joined with spaces, so quoting is only needed to protect
characters the shell would interpret (such as * or parentheses).

Supported: + - * / ** ^ and parentheses, the constants pi (π) and e, and
the functions listed by 'leapcalc functions'. Trigonometric functions work
in degrees unless --rad is given or angle_mode is set to rad.`,
		Example: `  leapcalc eval 2+2
  leapcalc eval "sqrt(16) * 2^3"
  leapcalc eval --rad "sin(pi / 2)"
  leapcalc eval "fact(10)" -o json

  # Use -- before an expression that starts with a minus sign
  leapcalc eval -- -2 + 3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Radians, "rad", false, "Evaluate trigonometric functions in radians")
	cmd.Flags().BoolVar(&opts.Degrees, "deg", false, "Evaluate trigonometric functions in degrees")
	cmd.MarkFlagsMutuallyExclusive("rad", "deg")

	return cmd
}

func runEval(cmd *cobra.Command, args []string, opts *EvalOptions) error {
	cmdCtx := NewCommandContext(cmd)
	sess := cmdCtx.Session
	r := cmdCtx.Renderer

	switch {
	case opts.Radians:
		sess.SetMode(calc.Radians)
	case opts.Degrees:
		sess.SetMode(calc.Degrees)
	}

	expression := strings.Join(args, " ")
	result, err := sess.Evaluate(expression)
	if err != nil {
		return sessionError(err)
	}

	if ok, err := r.Structured(output.EvalOutput{
		Expression: strings.TrimSpace(expression),
		Result:     result,
		Mode:       sess.Mode().String(),
	}); ok {
		return err
	}

	if r.EffectiveMode() == output.ModeText {
		r.Println(r.Styles().Result.Render(result))
		return nil
	}
	r.Println(result)
	return nil
}
