package calc

import (
	"math"
	"strconv"
)

// DefaultPrecision is the number of significant digits used for display.
const DefaultPrecision = 12

// Format renders v for display: integers in plain decimal, floats with
// precision significant digits in %g style, non-finite values as inf, -inf
// and nan. A precision outside 1..17 falls back to DefaultPrecision.
func Format(v Value, precision int) string {
	if v.isInt {
		return strconv.FormatInt(v.i, 10)
	}
	return formatFloat(v.f, precision)
}

// String formats v with DefaultPrecision.
func (v Value) String() string {
	return Format(v, DefaultPrecision)
}

func formatFloat(f float64, precision int) string {
	if precision < 1 || precision > 17 {
		precision = DefaultPrecision
	}
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'g', precision, 64)
}
