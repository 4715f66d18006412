package calc

import (
	"fmt"
	"strings"
)

// AngleMode selects how trigonometric functions read and report angles.
type AngleMode int

// Angle modes.
const (
	Degrees AngleMode = iota
	Radians
)

// String returns the short label shown in front ends.
func (m AngleMode) String() string {
	if m == Radians {
		return "RAD"
	}
	return "DEG"
}

// ParseAngleMode accepts deg, degree(s), rad, radian(s), case-insensitively.
func ParseAngleMode(s string) (AngleMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deg", "degree", "degrees":
		return Degrees, nil
	case "rad", "radian", "radians":
		return Radians, nil
	default:
		return Degrees, fmt.Errorf("unknown angle mode %q (expected deg or rad)", s)
	}
}

// MarshalText encodes the mode as "deg" or "rad".
func (m AngleMode) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(m.String())), nil
}

// UnmarshalText accepts anything ParseAngleMode does.
func (m *AngleMode) UnmarshalText(text []byte) error {
	v, err := ParseAngleMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Context is the evaluation state of one calculator session: the
// degree/radian flag and nothing else. A Context is not safe for concurrent
// mutation; callers that share one across goroutines must serialize access.
type Context struct {
	degreeMode bool
}

// NewContext returns a context in degree mode.
func NewContext() *Context {
	return &Context{degreeMode: true}
}

// NewContextWithMode returns a context in the given mode.
func NewContextWithMode(m AngleMode) *Context {
	return &Context{degreeMode: m == Degrees}
}

// Toggle flips between degrees and radians.
func (c *Context) Toggle() {
	c.degreeMode = !c.degreeMode
}

// DegreeMode reports whether trig functions work in degrees.
func (c *Context) DegreeMode() bool {
	return c.degreeMode
}

// Mode returns the current angle mode.
func (c *Context) Mode() AngleMode {
	if c.degreeMode {
		return Degrees
	}
	return Radians
}

// SetMode sets the angle mode.
func (c *Context) SetMode(m AngleMode) {
	c.degreeMode = m == Degrees
}
