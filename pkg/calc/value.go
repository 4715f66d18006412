package calc

import (
	"math"
)

// Value is the result of an evaluation: an integer or a float.
//
// Integer literals combined with + - * and ** (non-negative exponent) stay
// integers while the result fits in an int64; anything else is a float.
type Value struct {
	f     float64
	i     int64
	isInt bool
}

// Int returns an integer value.
func Int(i int64) Value {
	return Value{f: float64(i), i: i, isInt: true}
}

// Float returns a float value.
func Float(f float64) Value {
	return Value{f: f}
}

// IsInt reports whether v holds an integer.
func (v Value) IsInt() bool { return v.isInt }

// Float64 returns v as a float64.
func (v Value) Float64() float64 { return v.f }

// Int64 returns the integer and true when v holds one.
func (v Value) Int64() (int64, bool) { return v.i, v.isInt }

func add(a, b Value) Value {
	if a.isInt && b.isInt {
		if (b.i > 0 && a.i > math.MaxInt64-b.i) || (b.i < 0 && a.i < math.MinInt64-b.i) {
			return Float(a.f + b.f)
		}
		return Int(a.i + b.i)
	}
	return Float(a.f + b.f)
}

func sub(a, b Value) Value {
	if a.isInt && b.isInt {
		if (b.i < 0 && a.i > math.MaxInt64+b.i) || (b.i > 0 && a.i < math.MinInt64+b.i) {
			return Float(a.f - b.f)
		}
		return Int(a.i - b.i)
	}
	return Float(a.f - b.f)
}

func mul(a, b Value) Value {
	if a.isInt && b.isInt {
		if a.i == 0 || b.i == 0 {
			return Int(0)
		}
		p := a.i * b.i
		if p/b.i != a.i || (a.i == -1 && b.i == math.MinInt64) || (b.i == -1 && a.i == math.MinInt64) {
			return Float(a.f * b.f)
		}
		return Int(p)
	}
	return Float(a.f * b.f)
}

// div is true division: the result is always a float.
func div(a, b Value) (Value, error) {
	if b.f == 0 {
		return Value{}, domainError("division by zero")
	}
	return Float(a.f / b.f), nil
}

func neg(a Value) Value {
	if a.isInt && a.i != math.MinInt64 {
		return Int(-a.i)
	}
	return Float(-a.f)
}

// power implements **. Integer bases with non-negative integer exponents
// stay exact while they fit; everything else follows floating-point pow with
// the domain checks of floatPow.
func power(a, b Value) (Value, error) {
	if a.isInt && b.isInt && b.i >= 0 {
		if r, ok := intPow(a.i, b.i); ok {
			return Int(r), nil
		}
		r := math.Pow(a.f, b.f)
		if math.IsInf(r, 0) {
			return Value{}, domainError("integer result too large")
		}
		return Float(r), nil
	}
	r, err := floatPow(a.f, b.f)
	if err != nil {
		return Value{}, err
	}
	return Float(r), nil
}

// intPow computes base**exp by squaring, reporting false on int64 overflow.
func intPow(base, exp int64) (int64, bool) {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			r := mul(Int(result), Int(base))
			if !r.isInt {
				return 0, false
			}
			result = r.i
		}
		exp >>= 1
		if exp > 0 {
			sq := mul(Int(base), Int(base))
			if !sq.isInt {
				return 0, false
			}
			base = sq.i
		}
	}
	return result, true
}

// floatPow is pow with real-number domain checks: zero cannot be raised to a
// negative power, a negative base needs an integral exponent, and a finite
// computation must not overflow.
func floatPow(x, y float64) (float64, error) {
	if x == 0 && y < 0 {
		return 0, domainError("zero cannot be raised to a negative power")
	}
	if x < 0 && !math.IsInf(x, 0) && !math.IsInf(y, 0) && y != math.Trunc(y) {
		return 0, domainError("negative number cannot be raised to a fractional power")
	}
	r := math.Pow(x, y)
	if math.IsInf(r, 0) && !math.IsInf(x, 0) && !math.IsInf(y, 0) {
		return 0, domainError("numerical result out of range")
	}
	return r, nil
}
