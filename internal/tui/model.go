// Package tui is the full-screen terminal front end: a calculator, a unit
// converter and the session history, one per tab.
package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/leapstack-labs/leapcalc/internal/history"
	"github.com/leapstack-labs/leapcalc/internal/session"
)

// Tab identifies a screen.
type Tab int

// Tabs, in display order.
const (
	TabCalculator Tab = iota
	TabConverter
	TabHistory
	tabCount
)

var tabNames = [...]string{"Calculator", "Converter", "History"}

func (t Tab) String() string {
	if t < 0 || t >= tabCount {
		return "?"
	}
	return tabNames[t]
}

// Model is the bubbletea model. All state changes go through Update, so a
// Model can be driven with plain messages in tests.
type Model struct {
	sess   *session.Session
	keys   keyMap
	help   help.Model
	styles styles

	tab    Tab
	width  int
	height int

	calcInput  textinput.Model
	calcResult string
	calcErr    string

	categories []string
	catIdx     int
	units      []string
	fromIdx    int
	toIdx      int
	convInput  textinput.Model
	convResult string
	convErr    string

	cursor   int
	histErr  string
	histNote string

	// copyText writes to the system clipboard.
	copyText func(string) error
}

// New returns a model bound to sess, showing the calculator tab.
func New(sess *session.Session) Model {
	calcInput := textinput.New()
	calcInput.Prompt = "> "
	calcInput.Placeholder = "expression, e.g. sqrt(16) * 2^3"
	calcInput.Focus()

	convInput := textinput.New()
	convInput.Prompt = "value: "
	convInput.SetValue("1")

	m := Model{
		sess:       sess,
		keys:       defaultKeyMap(),
		help:       help.New(),
		styles:     defaultStyles(),
		calcInput:  calcInput,
		convInput:  convInput,
		categories: sess.Table().Categories(),
		copyText:   clipboard.WriteAll,
	}
	m.selectCategory(0)
	return m
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Tab returns the active tab.
func (m Model) Tab() Tab { return m.tab }

// Update handles a message and returns the next model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextTab):
			return m.setTab((m.tab + 1) % tabCount)
		case key.Matches(msg, m.keys.PrevTab):
			return m.setTab((m.tab + tabCount - 1) % tabCount)
		}

		switch m.tab {
		case TabConverter:
			return m.updateConverter(msg)
		case TabHistory:
			return m.updateHistory(msg)
		default:
			return m.updateCalculator(msg)
		}
	}

	var cmd tea.Cmd
	switch m.tab {
	case TabCalculator:
		m.calcInput, cmd = m.calcInput.Update(msg)
	case TabConverter:
		m.convInput, cmd = m.convInput.Update(msg)
	}
	return m, cmd
}

func (m Model) setTab(t Tab) (tea.Model, tea.Cmd) {
	m.tab = t
	m.keys.activeTab = t
	m.calcInput.Blur()
	m.convInput.Blur()

	switch t {
	case TabCalculator:
		return m, m.calcInput.Focus()
	case TabConverter:
		return m, m.convInput.Focus()
	default:
		m.histErr = ""
		m.histNote = ""
		if n := len(m.sess.History()); m.cursor >= n {
			m.cursor = max(n-1, 0)
		}
		return m, nil
	}
}

func (m Model) updateCalculator(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		input := strings.TrimSpace(m.calcInput.Value())
		if input == "" {
			return m, nil
		}
		result, err := m.sess.Evaluate(input)
		if err != nil {
			m.calcErr = fmt.Sprintf("%s: %v", session.KindOf(err), err)
			return m, nil
		}
		m.calcErr = ""
		m.calcResult = history.EvaluationText(input, result)
		m.calcInput.Reset()
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		m.sess.ToggleDegreeMode()
		return m, nil
	}

	var cmd tea.Cmd
	m.calcInput, cmd = m.calcInput.Update(msg)
	return m, cmd
}

func (m *Model) selectCategory(i int) {
	n := len(m.categories)
	if n == 0 {
		return
	}
	m.catIdx = (i%n + n) % n
	m.units, _ = m.sess.Table().Units(m.categories[m.catIdx])
	m.fromIdx, m.toIdx = 0, 0
	if len(m.units) > 1 {
		m.toIdx = 1
	}
	m.convResult, m.convErr = "", ""
}

func (m Model) updateConverter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		if len(m.units) == 0 {
			return m, nil
		}
		value := strings.TrimSpace(m.convInput.Value())
		c, err := m.sess.ConvertDetailed(m.categories[m.catIdx], value, m.units[m.fromIdx], m.units[m.toIdx])
		if err != nil {
			m.convErr = fmt.Sprintf("%s: %v", session.KindOf(err), err)
			m.convResult = ""
			return m, nil
		}
		m.convErr = ""
		m.convResult = fmt.Sprintf("%s %s = %s %s", value, c.From, c.Result, c.To)
		return m, nil

	case key.Matches(msg, m.keys.NextCat):
		m.selectCategory(m.catIdx + 1)
		return m, nil

	case key.Matches(msg, m.keys.PrevCat):
		m.selectCategory(m.catIdx - 1)
		return m, nil

	case key.Matches(msg, m.keys.CycleFrom):
		if len(m.units) > 0 {
			m.fromIdx = (m.fromIdx + 1) % len(m.units)
		}
		return m, nil

	case key.Matches(msg, m.keys.CycleTo):
		if len(m.units) > 0 {
			m.toIdx = (m.toIdx + 1) % len(m.units)
		}
		return m, nil

	case key.Matches(msg, m.keys.Swap):
		m.fromIdx, m.toIdx = m.toIdx, m.fromIdx
		return m, nil
	}

	var cmd tea.Cmd
	m.convInput, cmd = m.convInput.Update(msg)
	return m, cmd
}

func (m Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.sess.History())
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < n-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Clear):
		m.sess.ClearHistory()
		m.cursor = 0
		m.histErr = ""
		m.histNote = ""

	case key.Matches(msg, m.keys.Copy):
		entries := m.sess.History()
		if m.cursor >= len(entries) {
			return m, nil
		}
		if err := m.copyText(entries[m.cursor].Text); err != nil {
			m.histErr = "copy failed: " + err.Error()
			m.histNote = ""
			return m, nil
		}
		m.histErr = ""
		m.histNote = "History item copied to clipboard"

	case key.Matches(msg, m.keys.Submit):
		if n == 0 {
			return m, nil
		}
		expr, err := m.sess.Recall(m.cursor)
		if err != nil {
			m.histErr = err.Error()
			return m, nil
		}
		m.calcInput.SetValue(expr)
		m.calcInput.CursorEnd()
		return m.setTab(TabCalculator)
	}
	return m, nil
}

// View renders the active tab.
func (m Model) View() string {
	var b strings.Builder

	tabs := make([]string, tabCount)
	for t := TabCalculator; t < tabCount; t++ {
		if t == m.tab {
			tabs[t] = m.styles.activeTab.Render(t.String())
		} else {
			tabs[t] = m.styles.tab.Render(t.String())
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("  " + m.styles.mode.Render("["+m.sess.Mode().String()+"]"))
	b.WriteString("\n\n")

	switch m.tab {
	case TabConverter:
		b.WriteString(m.converterView())
	case TabHistory:
		b.WriteString(m.historyView())
	default:
		b.WriteString(m.calculatorView())
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) calculatorView() string {
	lines := []string{m.calcInput.View()}
	if m.calcErr != "" {
		lines = append(lines, m.styles.err.Render(m.calcErr))
	} else if m.calcResult != "" {
		lines = append(lines, m.styles.result.Render(m.calcResult))
	}
	return strings.Join(lines, "\n")
}

func (m Model) converterView() string {
	if len(m.categories) == 0 {
		return m.styles.muted.Render("no categories")
	}
	lines := []string{
		m.styles.label.Render("category: ") + m.categories[m.catIdx],
		m.styles.label.Render("from:     ") + m.units[m.fromIdx],
		m.styles.label.Render("to:       ") + m.units[m.toIdx],
		m.convInput.View(),
	}
	if m.convErr != "" {
		lines = append(lines, m.styles.err.Render(m.convErr))
	} else if m.convResult != "" {
		lines = append(lines, m.styles.result.Render(m.convResult))
	}
	return strings.Join(lines, "\n")
}

func (m Model) historyView() string {
	entries := m.sess.History()
	if len(entries) == 0 {
		return m.styles.muted.Render("(no history)")
	}
	lines := make([]string, 0, len(entries)+1)
	for i, e := range entries {
		line := fmt.Sprintf("%3d  %s", i+1, e.Text)
		if i == m.cursor {
			lines = append(lines, m.styles.selected.Render("> "+line))
			continue
		}
		lines = append(lines, "  "+line)
	}
	switch {
	case m.histErr != "":
		lines = append(lines, "", m.styles.err.Render(m.histErr))
	case m.histNote != "":
		lines = append(lines, "", m.styles.muted.Render(m.histNote))
	}
	return strings.Join(lines, "\n")
}

// Run starts the full-screen program for sess.
func Run(sess *session.Session, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(New(sess), opts...).Run()
	return err
}
