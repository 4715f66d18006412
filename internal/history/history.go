// Package history keeps the in-memory log of calculations and conversions
// made during one session.
package history

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind identifies what produced an entry.
type Kind string

const (
	// KindEvaluation is an expression and its result.
	KindEvaluation Kind = "evaluation"
	// KindConversion is a unit conversion.
	KindConversion Kind = "conversion"
)

// Entry is one line of history.
type Entry struct {
	Kind Kind      `json:"kind" yaml:"kind"`
	Text string    `json:"text" yaml:"text"`
	Time time.Time `json:"time" yaml:"time"`
}

func (e Entry) String() string { return e.Text }

// Expression returns the text left of the first "=", which is the
// expression that produced an evaluation entry. ok is false for entries
// without an "=", such as conversions.
func (e Entry) Expression() (expr string, ok bool) {
	left, _, found := strings.Cut(e.Text, "=")
	if !found {
		return "", false
	}
	return strings.TrimSpace(left), true
}

// EvaluationText formats an evaluation entry: "<expr> = <result>".
func EvaluationText(expr, result string) string {
	return expr + " = " + result
}

// ConversionText formats a conversion entry:
// "Convert (<category>): <value> <from> -> <result> <to>".
func ConversionText(category string, value float64, from, result, to string) string {
	return fmt.Sprintf("Convert (%s): %s %s -> %s %s", category, FloatRepr(value), from, result, to)
}

// FloatRepr renders f as the shortest round-tripping decimal, always
// marked as a float: 212 is "212.0", 1e16 is "1e+16", 1e-5 is "1e-05".
func FloatRepr(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	abs := math.Abs(f)
	if abs == 0 || (abs >= 1e-4 && abs < 1e16) {
		s := strconv.FormatFloat(f, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}
	return strconv.FormatFloat(f, 'e', -1, 64)
}

// History is an append-only list of entries. It is not safe for concurrent
// use; the owning session serializes access.
type History struct {
	entries []Entry
	now     func() time.Time
}

// New returns an empty history.
func New() *History {
	return &History{now: time.Now}
}

// Add appends an entry with the current time.
func (h *History) Add(kind Kind, text string) Entry {
	e := Entry{Kind: kind, Text: text, Time: h.now()}
	h.entries = append(h.entries, e)
	return e
}

// Entries returns a copy of all entries, oldest first.
func (h *History) Entries() []Entry {
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }

// Get returns entry i (0-based).
func (h *History) Get(i int) (Entry, bool) {
	if i < 0 || i >= len(h.entries) {
		return Entry{}, false
	}
	return h.entries[i], true
}

// Clear removes every entry.
func (h *History) Clear() {
	h.entries = nil
}
