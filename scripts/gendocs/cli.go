package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/leapcalc/internal/cli"
	"github.com/leapstack-labs/leapcalc/internal/cli/commands"
	"github.com/leapstack-labs/leapcalc/internal/cli/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// generateCLIDocs writes index.md and one page per visible command.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()
	pages := map[string][]byte{"index.md": cliIndexPage(root)}
	for _, cmd := range documented(root) {
		pages[cmd.Name()+".md"] = commandPage(cmd)
	}

	for name, page := range pages {
		if err := os.WriteFile(filepath.Join(outDir, name), page, 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		log.Printf("  Generated %s", name)
	}
	return nil
}

// documented returns the subcommands that get a page.
func documented(root *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, cmd := range root.Commands() {
		if cmd.Hidden || !cmd.IsAvailableCommand() {
			continue
		}
		out = append(out, cmd)
	}
	return out
}

func cliIndexPage(root *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for leapcalc")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph(root.Long)
	w.CodeBlock("bash", "leapcalc <command> [options]")

	w.Header(2, "Commands")
	var rows [][]string
	for _, cmd := range documented(root) {
		link := fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name())
		rows = append(rows, []string{link, cleanDescription(cmd.Short)})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	w.Table(flagHeaders, flagRows(root.PersistentFlags()))

	w.Header(2, "Configuration")
	files := make([]string, 0, len(config.FileNames()))
	for _, name := range config.FileNames() {
		files = append(files, InlineCode(name))
	}
	w.Paragraph(fmt.Sprintf("Settings are read from %s in the working directory or the user config directory, then from %s environment variables, then from flags. Later sources win.",
		strings.Join(files, " or "), InlineCode(config.EnvPrefix+"*")))
	w.Table([]string{"Key", "Flag", "Environment", "Default", "Description"}, settingRows())

	w.Header(2, "Exit Status")
	w.Paragraph("leapcalc exits with status 1 when a command fails. In a piped REPL session a line that fails does not stop the session, but the exit status is still 1.")

	return w.Bytes()
}

func settingRows() [][]string {
	rows := make([][]string, 0, len(config.Settings))
	for _, s := range config.Settings {
		def := fmt.Sprint(s.Default)
		if def != "" {
			def = InlineCode(def)
		}
		rows = append(rows, []string{
			InlineCode(s.Key),
			InlineCode("--" + s.Flag),
			InlineCode(config.EnvVar(s.Key)),
			def,
			s.Description,
		})
	}
	return rows
}

func commandPage(cmd *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	if cmd.Long != "" {
		w.Paragraph(cmd.Long)
	} else {
		w.Paragraph(cmd.Short)
	}

	w.Header(2, "Usage")
	w.CodeBlock("bash", cmd.UseLine())
	if len(cmd.Aliases) > 0 {
		aliases := make([]string, len(cmd.Aliases))
		for i, a := range cmd.Aliases {
			aliases[i] = InlineCode(a)
		}
		w.Paragraph("Aliases: " + strings.Join(aliases, ", "))
	}

	if cmd.HasAvailableLocalFlags() {
		w.Header(2, "Options")
		w.Table(flagHeaders, flagRows(cmd.LocalNonPersistentFlags()))
	}

	if cmd.Name() == "repl" {
		w.Header(2, "Shell Commands")
		var rows [][]string
		for _, c := range commands.DotCommands() {
			rows = append(rows, []string{InlineCode(c.Usage), c.Summary})
		}
		w.Table([]string{"Command", "Description"}, rows)
	}

	if examples := exampleLines(cmd.Example); len(examples) > 0 {
		w.Header(2, "Examples")
		w.CodeBlock("bash", strings.Join(examples, "\n"))
	}

	return w.Bytes()
}

// exampleLines splits a cobra Example block into one command per line.
func exampleLines(example string) []string {
	var out []string
	for _, line := range strings.Split(example, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

var flagHeaders = []string{"Option", "Short", "Default", "Description"}

func flagRows(flags *pflag.FlagSet) [][]string {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		var short, def string
		if f.Shorthand != "" {
			short = InlineCode("-" + f.Shorthand)
		}
		if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "0" {
			def = InlineCode(f.DefValue)
		}
		rows = append(rows, []string{InlineCode("--" + f.Name), short, def, cleanDescription(f.Usage)})
	})
	return rows
}
