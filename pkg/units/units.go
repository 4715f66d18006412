// Package units converts values between named units of a measurement
// category by way of the category's base unit.
//
// Every conversion is two steps: the value is taken to the base unit with
// the source unit's rule, then out of the base unit with the target unit's
// rule. Linear units scale by a factor; temperatures use affine formulas.
//
//	km, _ := units.Convert("Length", 1, "km", "m")        // 1000
//	f, _ := units.Convert("Temperature", 0, "C", "F")     // 32
package units

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var (
	// ErrUnknownCategory is returned when the category name is not in the table.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrUnknownUnit is returned when a unit is not part of the category.
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrInvalidInput is returned when a value string is not a number.
	ErrInvalidInput = errors.New("invalid input")
)

// Rule converts one unit to and from its category's base unit.
type Rule interface {
	ToBase(v float64) float64
	FromBase(v float64) float64
}

// Linear is a unit that is a fixed multiple of the base unit.
type Linear struct {
	Factor float64 // one of this unit, in base units
}

// ToBase implements Rule.
func (l Linear) ToBase(v float64) float64 { return v * l.Factor }

// FromBase implements Rule.
func (l Linear) FromBase(v float64) float64 { return v / l.Factor }

// Affine is a unit related to the base unit by an offset as well as a scale.
type Affine struct {
	To   func(float64) float64
	From func(float64) float64
}

// ToBase implements Rule.
func (a Affine) ToBase(v float64) float64 { return a.To(v) }

// FromBase implements Rule.
func (a Affine) FromBase(v float64) float64 { return a.From(v) }

// Unit is a named unit within a category.
type Unit struct {
	Name    string
	Aliases []string // alternate ASCII spellings
	Rule    Rule
}

// Category is an ordered set of units sharing a base unit.
type Category struct {
	Name  string
	Base  string // human name of the base unit
	Units []Unit
}

// Table is an immutable set of categories.
type Table struct {
	categories []*Category
	byName     map[string]*Category
	units      map[*Category]map[string]*Unit
}

var fold = cases.Fold()

func categoryKey(name string) string {
	return fold.String(norm.NFC.String(strings.TrimSpace(name)))
}

func unitKey(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// NewTable builds a table. Categories keep the given order; within a
// category the first two units form the default from/to pair.
func NewTable(categories ...Category) (*Table, error) {
	t := &Table{
		byName: make(map[string]*Category, len(categories)),
		units:  make(map[*Category]map[string]*Unit, len(categories)),
	}
	for i := range categories {
		c := categories[i]
		c.Units = append([]Unit(nil), c.Units...)
		if len(c.Units) == 0 {
			return nil, fmt.Errorf("category %q has no units", c.Name)
		}
		key := categoryKey(c.Name)
		if _, dup := t.byName[key]; dup {
			return nil, fmt.Errorf("duplicate category %q", c.Name)
		}

		lookup := make(map[string]*Unit, len(c.Units))
		for j := range c.Units {
			u := &c.Units[j]
			if u.Rule == nil {
				return nil, fmt.Errorf("unit %q in %q has no rule", u.Name, c.Name)
			}
			for _, name := range append([]string{u.Name}, u.Aliases...) {
				k := unitKey(name)
				if _, dup := lookup[k]; dup {
					return nil, fmt.Errorf("duplicate unit %q in %q", name, c.Name)
				}
				lookup[k] = u
			}
		}

		t.categories = append(t.categories, &c)
		t.byName[key] = &c
		t.units[&c] = lookup
	}
	return t, nil
}

// MustNewTable is like NewTable but panics on error.
func MustNewTable(categories ...Category) *Table {
	t, err := NewTable(categories...)
	if err != nil {
		panic(err)
	}
	return t
}

// Category looks up a category by name, ignoring case.
func (t *Table) Category(name string) (*Category, error) {
	c, ok := t.byName[categoryKey(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}
	return c, nil
}

func (t *Table) unit(c *Category, name string) (*Unit, error) {
	u, ok := t.units[c][unitKey(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a %s unit", ErrUnknownUnit, name, c.Name)
	}
	return u, nil
}

// Convert converts value from one unit to another within category.
func (t *Table) Convert(category string, value float64, from, to string) (float64, error) {
	c, err := t.Category(category)
	if err != nil {
		return 0, err
	}
	src, err := t.unit(c, from)
	if err != nil {
		return 0, err
	}
	dst, err := t.unit(c, to)
	if err != nil {
		return 0, err
	}
	return dst.Rule.FromBase(src.Rule.ToBase(value)), nil
}

// ConvertString parses value and converts it. The value is validated
// before the category and units are looked up.
func (t *Table) ConvertString(category, value, from, to string) (float64, error) {
	v, err := ParseValue(value)
	if err != nil {
		return 0, err
	}
	return t.Convert(category, v, from, to)
}

// ParseValue parses a user-entered decimal number. A single underscore may
// separate two digits ("1_000"); "inf" and "nan" are accepted. Hexadecimal
// forms such as "0x1p4" are rejected. Values too large for a float64 come
// back as ±Inf.
func ParseValue(s string) (float64, error) {
	t := strings.TrimSpace(s)
	if strings.ContainsAny(t, "xXpP") || !digitUnderscores(t) {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, s)
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(t, "_", ""), 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return v, nil
		}
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, s)
	}
	return v, nil
}

// digitUnderscores reports whether every underscore in s sits between two
// digits.
func digitUnderscores(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			continue
		}
		if i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// Categories returns the category names in table order.
func (t *Table) Categories() []string {
	names := make([]string, len(t.categories))
	for i, c := range t.categories {
		names[i] = c.Name
	}
	return names
}

// Units returns the unit names of category in table order.
func (t *Table) Units(category string) ([]string, error) {
	c, err := t.Category(category)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(c.Units))
	for i, u := range c.Units {
		names[i] = u.Name
	}
	return names, nil
}

// DefaultPair returns the first two units of category. A category with a
// single unit pairs it with itself.
func (t *Table) DefaultPair(category string) (from, to string, err error) {
	c, err := t.Category(category)
	if err != nil {
		return "", "", err
	}
	from = c.Units[0].Name
	to = from
	if len(c.Units) > 1 {
		to = c.Units[1].Name
	}
	return from, to, nil
}

// Base returns the name of the category's base unit.
func (t *Table) Base(category string) (string, error) {
	c, err := t.Category(category)
	if err != nil {
		return "", err
	}
	return c.Base, nil
}

// CanonicalUnit resolves an alias or differently normalized spelling to the
// unit's display name.
func (t *Table) CanonicalUnit(category, unit string) (string, error) {
	c, err := t.Category(category)
	if err != nil {
		return "", err
	}
	u, err := t.unit(c, unit)
	if err != nil {
		return "", err
	}
	return u.Name, nil
}
