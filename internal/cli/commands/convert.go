package commands

import (
	"fmt"

	"github.com/leapstack-labs/leapcalc/internal/cli/output"
	"github.com/leapstack-labs/leapcalc/pkg/units"
	"github.com/spf13/cobra"
)

// NewConvertCommand creates the convert command.
func NewConvertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "convert <category> <value> <from> [to]",
		Aliases: []string{"conv"},
		Short:   "Convert a value between units",
		Long: `Convert a value between two units of the same category.

Categories and unit names are listed by 'leapcalc units'. Category names are
case-insensitive; unit names are case-sensitive (mm and Mm differ) and
accept the ASCII aliases shown in the listing (m3 for m³, kph for km/h).

When <to> is omitted the category's default partner unit is used: the
second unit of the category, or the first when converting from the second.`,
		Example: `  leapcalc convert Length 1 km m
  leapcalc convert temperature -40 C F
  leapcalc -o json convert Volume 2 m3 L

  # Default partner unit (Length: km <-> m)
  leapcalc convert Length 3 km`,
		Args: cobra.RangeArgs(3, 4),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			switch len(args) {
			case 0:
				return units.Categories(), cobra.ShellCompDirectiveNoFileComp
			case 2, 3:
				names, err := units.Units(args[0])
				if err != nil {
					return nil, cobra.ShellCompDirectiveNoFileComp
				}
				return names, cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: runConvert,
	}

	// Flags end at the category so values like -40 stay positional.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	var to string
	if len(args) == 4 {
		to = args[3]
	}

	c, err := cmdCtx.Session.ConvertDetailed(args[0], args[1], args[2], to)
	if err != nil {
		return sessionError(err)
	}

	if ok, err := r.Structured(output.ConvertOutput{
		Category: c.Category,
		Value:    c.Value,
		From:     c.From,
		To:       c.To,
		Result:   c.Result,
	}); ok {
		return err
	}

	result := c.Result + " " + c.To
	if r.EffectiveMode() == output.ModeText {
		result = r.Styles().Result.Render(result)
	}
	r.Println(fmt.Sprintf("%s %s = %s", args[1], c.From, result))
	return nil
}
