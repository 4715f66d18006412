package commands

import (
	"strings"

	"github.com/leapstack-labs/leapcalc/internal/cli/output"
	"github.com/leapstack-labs/leapcalc/pkg/calc"
	"github.com/spf13/cobra"
)

// NewFunctionsCommand creates the functions command.
func NewFunctionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "functions",
		Aliases: []string{"funcs"},
		Short:   "List the functions and constants expressions may use",
		Long: `List every name an expression may reference. Anything else, including
names starting with a double underscore, is rejected before evaluation.`,
		Example: `  leapcalc functions
  leapcalc functions -o yaml`,
		Args: cobra.NoArgs,
		RunE: runFunctions,
	}
}

func runFunctions(cmd *cobra.Command, _ []string) error {
	r := NewCommandContextWithoutSession(cmd).Renderer

	out := output.FunctionsOutput{Constants: calc.Constants()}
	for _, f := range calc.Functions() {
		out.Functions = append(out.Functions, output.FunctionOutput{
			Name:      f.Name,
			Signature: f.Signature,
			Doc:       f.Doc,
		})
	}

	if ok, err := r.Structured(out); ok {
		return err
	}

	r.Header(1, "Functions")
	r.Println("")
	rows := make([][]string, len(out.Functions))
	for i, f := range out.Functions {
		rows[i] = []string{f.Signature, f.Doc}
	}
	r.Table([]string{"Function", "Description"}, rows)
	r.Println("")
	r.Header(2, "Constants")
	r.Println(strings.Join(out.Constants, ", "))
	return nil
}
