// Package session ties the evaluator, the unit converter and the history
// log together behind the calls a front end makes.
//
// A Session owns one evaluation context (the degree/radian flag) and one
// history. Every error leaving a Session is a *Error carrying the taxonomy
// name of what went wrong; the session stays usable after any error.
package session

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/leapstack-labs/leapcalc/internal/history"
	"github.com/leapstack-labs/leapcalc/pkg/calc"
	"github.com/leapstack-labs/leapcalc/pkg/units"
)

// Config holds session configuration.
type Config struct {
	// AngleMode is the initial angle mode (degrees by default)
	AngleMode calc.AngleMode
	// Precision is the number of significant digits in results (1-17, default 12)
	Precision int
	// Table is the conversion table (optional, uses units.Default if nil)
	Table *units.Table
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Session is one calculator session. It is safe for concurrent use.
type Session struct {
	mu        sync.Mutex
	id        string
	ctx       *calc.Context
	history   *history.History
	table     *units.Table
	precision int
	logger    *slog.Logger
}

// New creates a session.
func New(cfg Config) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	table := cfg.Table
	if table == nil {
		table = units.Default
	}
	precision := cfg.Precision
	if precision < 1 || precision > 17 {
		precision = calc.DefaultPrecision
	}

	id := uuid.NewString()
	s := &Session{
		id:        id,
		ctx:       calc.NewContextWithMode(cfg.AngleMode),
		history:   history.New(),
		table:     table,
		precision: precision,
		logger:    logger.With("session", id),
	}
	s.logger.Debug("session started", "angle_mode", s.ctx.Mode().String(), "precision", precision)
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Precision returns the number of significant digits used for results.
func (s *Session) Precision() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.precision
}

// SetPrecision changes the number of significant digits. Values outside
// 1-17 are ignored.
func (s *Session) SetPrecision(p int) {
	if p < 1 || p > 17 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.precision = p
}

// Table returns the conversion table the session uses.
func (s *Session) Table() *units.Table { return s.table }

// Evaluate evaluates expression and records "<expression> = <result>" in
// the history. Surrounding whitespace is ignored.
func (s *Session) Evaluate(expression string) (string, error) {
	expression = strings.TrimSpace(expression)

	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := calc.Evaluate(expression, s.ctx)
	if err != nil {
		s.logger.Debug("evaluation failed", "expression", expression, "error", err)
		return "", newError(err)
	}

	out := calc.Format(v, s.precision)
	s.history.Add(history.KindEvaluation, history.EvaluationText(expression, out))
	s.logger.Debug("evaluated", "expression", expression, "result", out, "mode", s.ctx.Mode().String())
	return out, nil
}

// Conversion is the resolved form of one conversion.
type Conversion struct {
	Category string
	Value    float64
	From     string
	To       string
	Result   string
}

// Convert converts value between two units of category and records the
// conversion in the history. An empty to selects the category's default
// partner unit (the second unit of the category, or the first if from is
// the second).
func (s *Session) Convert(category, value, from, to string) (string, error) {
	c, err := s.ConvertDetailed(category, value, from, to)
	if err != nil {
		return "", err
	}
	return c.Result, nil
}

// ConvertDetailed is Convert returning the canonical category and unit
// names alongside the result.
func (s *Session) ConvertDetailed(category, value, from, to string) (Conversion, error) {
	v, err := units.ParseValue(value)
	if err != nil {
		return Conversion{}, newError(err)
	}

	cat, err := s.table.Category(category)
	if err != nil {
		return Conversion{}, newError(err)
	}
	if from, err = s.table.CanonicalUnit(cat.Name, from); err != nil {
		return Conversion{}, newError(err)
	}
	if strings.TrimSpace(to) == "" {
		to = s.partner(cat.Name, from)
	}
	if to, err = s.table.CanonicalUnit(cat.Name, to); err != nil {
		return Conversion{}, newError(err)
	}

	res, err := s.table.Convert(cat.Name, v, from, to)
	if err != nil {
		return Conversion{}, newError(err)
	}

	s.mu.Lock()
	out := calc.Format(calc.Float(res), s.precision)
	s.history.Add(history.KindConversion, history.ConversionText(cat.Name, v, from, out, to))
	s.mu.Unlock()

	s.logger.Debug("converted", "category", cat.Name, "value", v, "from", from, "to", to, "result", out)
	return Conversion{Category: cat.Name, Value: v, From: from, To: to, Result: out}, nil
}

func (s *Session) partner(category, from string) string {
	first, second, err := s.table.DefaultPair(category)
	if err != nil {
		return from
	}
	if from == second {
		return first
	}
	return second
}

// QuickFunctions are the one-argument shortcuts Apply accepts.
var QuickFunctions = []string{"sin", "cos", "tan", "asin", "acos", "atan", "ln", "log10", "log", "inv"}

// Apply runs a single function on a plain number, the way a calculator's
// function keys act on the display. The result is rendered in full float
// precision and recorded as "<fn>(<value>) = <result>", or
// "1/(<value>) = <result>" for inv.
func (s *Session) Apply(fn, value string) (string, error) {
	known := false
	for _, q := range QuickFunctions {
		if q == fn {
			known = true
			break
		}
	}
	if !known {
		return "", &Error{Kind: KindInvalidExpression, Message: fmt.Sprintf("%q is not a quick function", fn)}
	}

	v, err := units.ParseValue(value)
	if err != nil {
		return "", newError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := calc.Call(fn, s.ctx, calc.Float(v))
	if err != nil {
		s.logger.Debug("quick function failed", "function", fn, "value", v, "error", err)
		return "", newError(err)
	}

	out := history.FloatRepr(res.Float64())
	label := fn + "(" + history.FloatRepr(v) + ")"
	if fn == "inv" {
		label = "1/(" + history.FloatRepr(v) + ")"
	}
	s.history.Add(history.KindEvaluation, history.EvaluationText(label, out))
	return out, nil
}

// ToggleDegreeMode flips between degrees and radians and returns the new mode.
func (s *Session) ToggleDegreeMode() calc.AngleMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx.Toggle()
	s.logger.Debug("angle mode toggled", "mode", s.ctx.Mode().String())
	return s.ctx.Mode()
}

// SetMode sets the angle mode.
func (s *Session) SetMode(m calc.AngleMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx.SetMode(m)
}

// Mode returns the current angle mode.
func (s *Session) Mode() calc.AngleMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx.Mode()
}

// History returns a copy of the history, oldest first.
func (s *Session) History() []history.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Entries()
}

// ClearHistory removes every history entry.
func (s *Session) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.history.Len()
	s.history.Clear()
	s.logger.Debug("history cleared", "entries", n)
}

// Recall returns the expression of history entry i (0-based) so it can be
// edited and evaluated again.
func (s *Session) Recall(i int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.history.Get(i)
	if !ok {
		return "", &Error{Kind: KindInvalidInput, Message: fmt.Sprintf("no history entry %d", i+1)}
	}
	expr, ok := e.Expression()
	if !ok {
		return "", &Error{Kind: KindInvalidInput, Message: fmt.Sprintf("history entry %d is not an expression", i+1)}
	}
	return expr, nil
}
