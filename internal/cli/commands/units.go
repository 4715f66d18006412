package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapcalc/internal/cli/output"
	"github.com/leapstack-labs/leapcalc/pkg/units"
	"github.com/spf13/cobra"
)

// NewUnitsCommand creates the units command.
func NewUnitsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "units [category]",
		Short: "List conversion categories and units",
		Long: `List the conversion categories with their base unit and units, or the
units of one category with their aliases.`,
		Example: `  leapcalc units
  leapcalc units temperature
  leapcalc units -o json`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return units.Categories(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: runUnits,
	}
}

func runUnits(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContextWithoutSession(cmd)
	if len(args) == 1 {
		return listCategoryUnits(cmdCtx.Renderer, units.Default, args[0])
	}
	return listCategories(cmdCtx.Renderer, units.Default)
}

func categoryOutput(c *units.Category) output.CategoryOutput {
	names := make([]string, len(c.Units))
	for i, u := range c.Units {
		names[i] = u.Name
	}
	return output.CategoryOutput{Name: c.Name, Base: c.Base, Units: names}
}

func listCategories(r *output.Renderer, table *units.Table) error {
	var out output.UnitsOutput
	for _, name := range table.Categories() {
		c, err := table.Category(name)
		if err != nil {
			return err
		}
		out.Categories = append(out.Categories, categoryOutput(c))
	}

	if ok, err := r.Structured(out); ok {
		return err
	}

	r.Header(1, fmt.Sprintf("Categories (%d)", len(out.Categories)))
	r.Println("")
	rows := make([][]string, len(out.Categories))
	for i, c := range out.Categories {
		rows[i] = []string{c.Name, c.Base, strings.Join(c.Units, ", ")}
	}
	r.Table([]string{"Category", "Base", "Units"}, rows)
	return nil
}

func listCategoryUnits(r *output.Renderer, table *units.Table, name string) error {
	c, err := table.Category(name)
	if err != nil {
		return sessionError(err)
	}

	if ok, err := r.Structured(categoryOutput(c)); ok {
		return err
	}

	first, second, _ := table.DefaultPair(c.Name)
	r.Header(1, c.Name)
	r.Println("")
	rows := make([][]string, len(c.Units))
	for i, u := range c.Units {
		var note string
		switch u.Name {
		case first, second:
			note = "default pair"
		}
		rows[i] = []string{u.Name, strings.Join(u.Aliases, ", "), note}
	}
	r.Table([]string{"Unit", "Aliases", "Note"}, rows)
	r.Println("")
	r.Muted(fmt.Sprintf("Base unit: %s", c.Base))
	return nil
}
