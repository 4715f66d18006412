package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/leapcalc/pkg/calc"
	"github.com/leapstack-labs/leapcalc/pkg/units"
)

// generateReferenceDocs writes the function and unit reference pages.
func generateReferenceDocs(outDir string) error {
	log.Printf("Generating reference docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(filepath.Join(outDir, "functions.md"), functionsPage(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated functions.md")

	page, err := unitsPage(units.Default)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, "units.md"), page, 0600); err != nil {
		return err
	}
	log.Printf("  Generated units.md")
	return nil
}

func functionsPage() []byte {
	w := NewMarkdownWriter()
	w.Frontmatter("Functions", "Functions and constants available in expressions")
	w.GeneratedMarker()

	w.Header(1, "Functions")
	w.Paragraph("Expressions may call only the names below. Any other name, including names starting with a double underscore, is rejected before evaluation.")

	var rows [][]string
	for _, f := range calc.Functions() {
		rows = append(rows, []string{InlineCode(f.Signature), cleanDescription(f.Doc)})
	}
	w.Table([]string{"Function", "Description"}, rows)

	w.Header(2, "Constants")
	consts := make([]string, 0, len(calc.Constants()))
	for _, c := range calc.Constants() {
		consts = append(consts, InlineCode(c))
	}
	w.BulletList(consts)

	w.Header(2, "Angle Mode")
	w.Paragraph("Trigonometric functions read and return angles in the session's angle mode, degrees unless configured otherwise. Switch with `--angle-mode`, `.deg`/`.rad` in the REPL, or ctrl+t in the terminal UI.")
	return w.Bytes()
}

func unitsPage(table *units.Table) ([]byte, error) {
	w := NewMarkdownWriter()
	w.Frontmatter("Units", "Unit categories and conversions")
	w.GeneratedMarker()

	w.Header(1, "Units")
	w.Paragraph("Conversions go through each category's base unit. Category and unit names are matched case-insensitively; aliases are ASCII spellings of the same unit.")

	for _, name := range table.Categories() {
		c, err := table.Category(name)
		if err != nil {
			return nil, err
		}
		first, second, err := table.DefaultPair(name)
		if err != nil {
			return nil, err
		}

		w.Header(2, c.Name)
		w.Paragraph(fmt.Sprintf("Base unit: %s. Default pair: %s to %s.", c.Base, InlineCode(first), InlineCode(second)))

		rows := make([][]string, len(c.Units))
		for i, u := range c.Units {
			aliases := make([]string, len(u.Aliases))
			for j, a := range u.Aliases {
				aliases[j] = InlineCode(a)
			}
			rows[i] = []string{InlineCode(u.Name), strings.Join(aliases, ", ")}
		}
		w.Table([]string{"Unit", "Aliases"}, rows)
	}
	return w.Bytes(), nil
}
