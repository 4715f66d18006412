package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/leapcalc/internal/cli/config"
	"github.com/leapstack-labs/leapcalc/internal/cli/output"
	"github.com/leapstack-labs/leapcalc/internal/session"
	"github.com/leapstack-labs/leapcalc/pkg/calc"
	"github.com/leapstack-labs/leapcalc/pkg/token"
	"github.com/leapstack-labs/leapcalc/pkg/units"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// DotCommand describes one REPL shell command.
type DotCommand struct {
	Name    string
	Usage   string
	Summary string
}

// dotCommands are the REPL commands, in help order.
var dotCommands = []DotCommand{
	{".help", ".help", "Show this help message"},
	{".deg", ".deg", "Use degrees for trig functions"},
	{".rad", ".rad", "Use radians for trig functions"},
	{".toggle", ".toggle", "Switch between degrees and radians"},
	{".mode", ".mode", "Show the current angle mode"},
	{".convert", ".convert <cat> <value> <from> [to]", "Convert between units"},
	{".apply", ".apply <function> <value>", "Apply " + strings.Join(session.QuickFunctions, ", ") + " to a value"},
	{".units", ".units [category]", "List categories or units of one category"},
	{".functions", ".functions", "List functions and constants"},
	{".history", ".history", "Show this session's history"},
	{".recall", ".recall <n>", "Put expression n from the history on the prompt"},
	{".clear", ".clear", "Clear the history"},
	{".quit", ".quit", "Exit the REPL"},
	{".exit", ".exit", "Exit the REPL"},
}

// DotCommands returns the REPL commands in help order.
func DotCommands() []DotCommand {
	return append([]DotCommand(nil), dotCommands...)
}

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive calculator shell",
		Long: `Start an interactive calculator shell.

Lines are evaluated as expressions. Lines starting with a dot are shell
commands; type .help to list them. Tab completes function names and
commands. When standard input is not a terminal, lines are read and
evaluated without prompts.`,
		Example: `  leapcalc repl
  leapcalc repl --angle-mode rad
  printf '2+2\n.rad\nsin(pi/2)\n' | leapcalc repl`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}
}

func runREPL(cmd *cobra.Command, _ []string) error {
	cmdCtx := NewCommandContext(cmd)
	sh := newShell(cmdCtx.Session, cmdCtx.Renderer)

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		cmdCtx.Logger.Debug("reading expressions from non-terminal input")
		return sh.runScript(in)
	}

	prompt := cmdCtx.Cfg.REPL.Prompt
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          sh.prompt(prompt),
		HistoryFile:     cmdCtx.Cfg.REPL.HistoryFile,
		AutoComplete:    calcCompleter{},
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	sh.prefill = func(s string) { _, _ = rl.WriteStdin([]byte(s)) }

	if path := config.GetConfigFileUsed(); path != "" {
		stop, err := watchConfig(cmd, sh, path, cmdCtx.Cfg, cmdCtx.Logger, func(msg string) {
			_, _ = fmt.Fprintln(rl.Stdout(), msg)
			rl.SetPrompt(sh.prompt(prompt))
			rl.Refresh()
		})
		if err != nil {
			cmdCtx.Logger.Warn("config file will not be reloaded", "path", path, "error", err)
		} else {
			defer stop()
		}
	}

	r := cmdCtx.Renderer
	r.Println(r.Styles().Header1.Render("leapcalc") + " " + r.Styles().Muted.Render("(session "+cmdCtx.Session.ID()[:8]+")"))
	r.Muted("Type .help for commands, .quit to exit")
	r.Println("")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		if sh.handleLine(line) {
			break
		}
		rl.SetPrompt(sh.prompt(prompt))
	}

	return nil
}

// watchConfig reloads the config file while the REPL runs. Angle mode and
// precision changes are applied to the session and reported through notify.
func watchConfig(cmd *cobra.Command, sh *shell, path string, cfg *config.Config, logger *slog.Logger, notify func(string)) (func(), error) {
	fw, err := config.NewFileWatcher(path, config.DefaultDebounce, logger)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	current := cfg
	go fw.Run(ctx, func() {
		next, err := config.LoadConfig(path, cmd.Root().PersistentFlags())
		if err != nil {
			notify("config reload failed: " + err.Error())
			return
		}
		for _, msg := range sh.applyConfig(current, next) {
			notify(msg)
		}
		current = next
	})

	return func() {
		cancel()
		_ = fw.Close()
	}, nil
}

// shell executes REPL lines against one session.
type shell struct {
	sess *session.Session
	r    *output.Renderer

	// prefill puts text on the next input line; nil prints it instead.
	prefill func(string)
	failed  int
}

func newShell(sess *session.Session, r *output.Renderer) *shell {
	return &shell{sess: sess, r: r}
}

// applyConfig moves the session to the settings that differ between prev
// and next, and describes each change.
func (sh *shell) applyConfig(prev, next *config.Config) []string {
	var changes []string
	if next.AngleMode != prev.AngleMode {
		sh.sess.SetMode(next.AngleMode)
		changes = append(changes, "angle mode: "+next.AngleMode.String()+" (config reloaded)")
	}
	if next.Precision != prev.Precision {
		sh.sess.SetPrecision(next.Precision)
		changes = append(changes, "precision: "+strconv.Itoa(next.Precision)+" (config reloaded)")
	}
	return changes
}

func (sh *shell) prompt(base string) string {
	return sh.r.Styles().Mode.Render("["+sh.sess.Mode().String()+"]") + " " + base
}

// runScript evaluates every line of in. It reports how many lines failed.
func (sh *shell) runScript(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	total := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		total++
		if sh.handleLine(line) {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if sh.failed > 0 {
		return fmt.Errorf("%d of %d lines failed", sh.failed, total)
	}
	return nil
}

// handleLine runs one line and reports whether the shell should exit.
func (sh *shell) handleLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if strings.HasPrefix(line, ".") {
		return sh.handleDotCommand(line)
	}

	result, err := sh.sess.Evaluate(line)
	if err != nil {
		sh.fail(err)
		sh.pointAt(line, err)
		return false
	}
	sh.r.Println(sh.r.Styles().Result.Render(result))
	return false
}

func (sh *shell) fail(err error) {
	sh.failed++
	sh.r.Error(sessionError(err).Error())
}

// pointAt underlines the part of line that err refers to.
func (sh *shell) pointAt(line string, err error) {
	var ce *calc.Error
	if !errors.As(err, &ce) || !ce.Span.IsValid() {
		return
	}
	src, perr := calc.Preprocess(line)
	if perr != nil {
		return
	}
	muted := sh.r.Styles().Muted
	_, _ = fmt.Fprintln(sh.r.ErrWriter(), muted.Render("  "+src))
	_, _ = fmt.Fprintln(sh.r.ErrWriter(), muted.Render("  "+caret(ce.Span)))
}

// caret renders a marker under span, e.g. "    ^^^^".
func caret(span token.Span) string {
	return strings.Repeat(" ", max(span.Start.Column-1, 0)) + strings.Repeat("^", span.Width())
}

func (sh *shell) handleDotCommand(line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])
	args := parts[1:]

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(sh.r.Writer())

	case ".deg":
		sh.sess.SetMode(calc.Degrees)
		sh.r.Muted("angle mode: " + calc.Degrees.String())

	case ".rad":
		sh.sess.SetMode(calc.Radians)
		sh.r.Muted("angle mode: " + calc.Radians.String())

	case ".toggle":
		sh.r.Muted("angle mode: " + sh.sess.ToggleDegreeMode().String())

	case ".mode":
		sh.r.Println(sh.sess.Mode().String())

	case ".convert":
		if len(args) < 3 || len(args) > 4 {
			sh.usage(".convert <category> <value> <from> [to]")
			break
		}
		var to string
		if len(args) == 4 {
			to = args[3]
		}
		c, err := sh.sess.ConvertDetailed(args[0], args[1], args[2], to)
		if err != nil {
			sh.fail(err)
			break
		}
		sh.r.Println(fmt.Sprintf("%s %s = %s", args[1], c.From, sh.r.Styles().Result.Render(c.Result+" "+c.To)))

	case ".apply":
		if len(args) != 2 {
			sh.usage(".apply <function> <value>")
			break
		}
		result, err := sh.sess.Apply(strings.ToLower(args[0]), args[1])
		if err != nil {
			sh.fail(err)
			break
		}
		sh.r.Println(sh.r.Styles().Result.Render(result))

	case ".units":
		var err error
		if len(args) == 0 {
			err = listCategories(sh.r, sh.sess.Table())
		} else {
			err = listCategoryUnits(sh.r, sh.sess.Table(), strings.Join(args, " "))
		}
		if err != nil {
			sh.failed++
			sh.r.Error(err.Error())
		}

	case ".functions":
		names := make([]string, 0)
		for _, f := range calc.Functions() {
			names = append(names, f.Signature)
		}
		sh.r.Println(strings.Join(names, "  "))
		sh.r.Muted("constants: " + strings.Join(calc.Constants(), ", "))

	case ".history":
		entries := sh.sess.History()
		if len(entries) == 0 {
			sh.r.Muted("(no history)")
			break
		}
		for i, e := range entries {
			sh.r.Println(sh.r.Styles().Muted.Render(fmt.Sprintf("%3d", i+1)) + "  " + e.Text)
		}

	case ".recall":
		if len(args) != 1 {
			sh.usage(".recall <n>")
			break
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			sh.usage(".recall <n>")
			break
		}
		expr, err := sh.sess.Recall(n - 1)
		if err != nil {
			sh.fail(err)
			break
		}
		if sh.prefill != nil {
			sh.prefill(expr)
			break
		}
		sh.r.Println(expr)

	case ".clear":
		sh.sess.ClearHistory()
		sh.r.Muted("history cleared")

	default:
		sh.failed++
		sh.r.Error(fmt.Sprintf("Unknown command: %s (type .help for commands)", command))
	}
	return false
}

func (sh *shell) usage(u string) {
	sh.failed++
	sh.r.Warning("Usage: " + u)
}

func printREPLHelp(w io.Writer) {
	var b strings.Builder
	b.WriteString("\nCommands:\n")
	for _, c := range dotCommands {
		fmt.Fprintf(&b, "  %-34s %s\n", c.Usage, c.Summary)
	}
	b.WriteString(`
Tips:
  - ^ is exponentiation and π may be written for pi
  - log and round take keyword arguments: log(8, base=2), round(x, ndigits=2)
  - Use arrow keys to navigate line history
  - Tab completion works for function names, commands and categories
`)
	_, _ = fmt.Fprintln(w, b.String())
}

// calcCompleter completes the word under the cursor: dot-commands at the
// start of the line, categories after .convert and .units, quick functions
// after .apply, and calculator names everywhere else.
type calcCompleter struct{}

func (calcCompleter) Do(line []rune, pos int) ([][]rune, int) {
	head := line[:pos]

	start := len(head)
	for start > 0 {
		r := head[start-1]
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && r != '_' {
			break
		}
		start--
	}
	word := string(head[start:])
	text := string(head)

	var candidates []string
	fields := strings.Fields(text)
	switch {
	case start == 0 && strings.HasPrefix(word, "."):
		for _, c := range dotCommands {
			candidates = append(candidates, c.Name)
		}
	case len(fields) >= 1 && (fields[0] == ".convert" || fields[0] == ".units") &&
		(len(fields) == 1 || (len(fields) == 2 && word != "")):
		candidates = units.Categories()
	case len(fields) >= 1 && fields[0] == ".apply" &&
		(len(fields) == 1 || (len(fields) == 2 && word != "")):
		candidates = session.QuickFunctions
	case !strings.HasPrefix(text, "."):
		candidates = calc.Names()
	}

	var out [][]rune
	for _, c := range candidates {
		if strings.HasPrefix(c, word) && c != word {
			out = append(out, []rune(strings.TrimPrefix(c, word)))
		}
	}
	return out, pos - start
}
