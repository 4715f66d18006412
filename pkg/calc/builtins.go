package calc

import (
	"math"
	"sort"
	"strconv"
)

// piF and the conversion factors are float64 variables, not constants, so
// the factors are rounded the same way a runtime division would round them.
var (
	piF      = math.Pi
	degToRad = piF / 180.0
	radToDeg = 180.0 / piF
)

// constants are the names usable as values.
var constants = map[string]Value{
	"pi": Float(math.Pi),
	"e":  Float(math.E),
}

// builtin is one callable entry of the namespace.
type builtin struct {
	minArgs int
	maxArgs int
	sig     string
	doc     string
	call    func(ctx *Context, args []Value) (Value, error)
	params  []string // names accepted as keywords; nil means positional only
}

// functions is the closed set of callable names.
var functions = map[string]builtin{
	"sin":   {1, 1, "sin(x)", "sine; x in degrees or radians per mode", trigFn("sin", math.Sin), []string{"x"}},
	"cos":   {1, 1, "cos(x)", "cosine; x in degrees or radians per mode", trigFn("cos", math.Cos), []string{"x"}},
	"tan":   {1, 1, "tan(x)", "tangent; x in degrees or radians per mode", trigFn("tan", math.Tan), []string{"x"}},
	"asin":  {1, 1, "asin(x)", "arc sine; result in degrees or radians per mode", invTrigFn("asin", math.Asin), []string{"x"}},
	"acos":  {1, 1, "acos(x)", "arc cosine; result in degrees or radians per mode", invTrigFn("acos", math.Acos), []string{"x"}},
	"atan":  {1, 1, "atan(x)", "arc tangent; result in degrees or radians per mode", invTrigFn("atan", math.Atan), []string{"x"}},
	"sqrt":  {1, 1, "sqrt(x)", "square root", unaryFn("sqrt", math.Sqrt), []string{"x"}},
	"cbrt":  {1, 1, "cbrt(x)", "signed cube root", callCbrt, []string{"x"}},
	"root":  {2, 2, "root(x, n)", "signed n-th root", callRoot, []string{"x", "n"}},
	"ln":    {1, 1, "ln(x)", "natural logarithm", logFn("ln", math.Log), []string{"x"}},
	"log10": {1, 1, "log10(x)", "base-10 logarithm", logFn("log10", math.Log10), []string{"x"}},
	"log":   {1, 2, "log(x, base=10)", "logarithm with optional base", callLog, []string{"x", "base"}},
	"fact":  {1, 1, "fact(n)", "factorial of int(n)", callFact, []string{"n"}},
	"exp":   {1, 1, "exp(x)", "e raised to x", unaryFn("exp", math.Exp), []string{"x"}},
	"pow":   {2, 2, "pow(x, y)", "x raised to y, always a float", callPow, []string{"x", "y"}},
	"inv":   {1, 1, "inv(x)", "reciprocal 1/x", callInv, []string{"x"}},
	"abs":   {1, 1, "abs(x)", "absolute value", callAbs, nil},
	"round": {1, 2, "round(number, ndigits)", "round half to even", callRound, []string{"number", "ndigits"}},
}

// FunctionInfo describes a namespace entry for help output.
type FunctionInfo struct {
	Name      string
	Signature string
	Doc       string
}

// Functions returns the callable namespace sorted by name.
func Functions() []FunctionInfo {
	out := make([]FunctionInfo, 0, len(functions))
	for name, fn := range functions {
		out = append(out, FunctionInfo{Name: name, Signature: fn.sig, Doc: fn.doc})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Constants returns the constant names sorted.
func Constants() []string {
	out := make([]string, 0, len(constants))
	for name := range constants {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Names returns every identifier an expression may reference.
func Names() []string {
	out := Constants()
	for _, f := range Functions() {
		out = append(out, f.Name)
	}
	sort.Strings(out)
	return out
}

// IsAllowed reports whether name is part of the namespace.
func IsAllowed(name string) bool {
	if _, ok := constants[name]; ok {
		return true
	}
	_, ok := functions[name]
	return ok
}

// checkReal turns the NaN/Inf results of a math function on a finite,
// non-NaN argument into domain errors.
func checkReal(name string, x, r float64) (Value, error) {
	if math.IsNaN(r) && !math.IsNaN(x) {
		return Value{}, domainError("%s: math domain error", name)
	}
	if math.IsInf(r, 0) && !math.IsInf(x, 0) {
		return Value{}, domainError("%s: math range error", name)
	}
	return Float(r), nil
}

func unaryFn(name string, f func(float64) float64) func(*Context, []Value) (Value, error) {
	return func(_ *Context, args []Value) (Value, error) {
		x := args[0].f
		return checkReal(name, x, f(x))
	}
}

func trigFn(name string, f func(float64) float64) func(*Context, []Value) (Value, error) {
	return func(ctx *Context, args []Value) (Value, error) {
		x := args[0].f
		if math.IsInf(x, 0) {
			return Value{}, domainError("%s: math domain error", name)
		}
		if ctx.DegreeMode() {
			x *= degToRad
		}
		return checkReal(name, x, f(x))
	}
}

func invTrigFn(name string, f func(float64) float64) func(*Context, []Value) (Value, error) {
	return func(ctx *Context, args []Value) (Value, error) {
		x := args[0].f
		v, err := checkReal(name, x, f(x))
		if err != nil {
			return Value{}, err
		}
		if ctx.DegreeMode() {
			return Float(v.f * radToDeg), nil
		}
		return v, nil
	}
}

func logFn(name string, f func(float64) float64) func(*Context, []Value) (Value, error) {
	return func(_ *Context, args []Value) (Value, error) {
		x := args[0].f
		if x <= 0 {
			return Value{}, domainError("%s: math domain error", name)
		}
		return checkReal(name, x, f(x))
	}
}

// signedRoot returns copysign(|x| ** (1/n), x).
func signedRoot(x, n float64) (Value, error) {
	if n == 0 {
		return Value{}, domainError("root: division by zero")
	}
	r, err := floatPow(math.Abs(x), 1.0/n)
	if err != nil {
		return Value{}, err
	}
	return Float(math.Copysign(r, x)), nil
}

func callCbrt(_ *Context, args []Value) (Value, error) {
	return signedRoot(args[0].f, 3.0)
}

func callRoot(_ *Context, args []Value) (Value, error) {
	return signedRoot(args[0].f, args[1].f)
}

// callLog computes log(x, base). base 10 goes through log10 directly;
// other bases divide natural logarithms.
func callLog(_ *Context, args []Value) (Value, error) {
	x := args[0].f
	base := 10.0
	if len(args) == 2 {
		base = args[1].f
	}
	if x <= 0 || base <= 0 {
		return Value{}, domainError("log: math domain error")
	}
	if base == 10 {
		return checkReal("log", x, math.Log10(x))
	}
	den := math.Log(base)
	if den == 0 {
		return Value{}, domainError("log: division by zero")
	}
	return checkReal("log", x, math.Log(x)/den)
}

// maxExactFactorial is the largest n whose factorial fits in an int64.
const maxExactFactorial = 20

// maxFloatFactorial is the largest n whose factorial is a finite float64.
const maxFloatFactorial = 170

func callFact(_ *Context, args []Value) (Value, error) {
	x := args[0]
	if !x.isInt {
		if math.IsNaN(x.f) || math.IsInf(x.f, 0) {
			return Value{}, domainError("fact: cannot convert %s to integer", formatFloat(x.f, 12))
		}
		x = Float(math.Trunc(x.f))
	}
	n := x.f
	if n < 0 {
		return Value{}, domainError("factorial not defined for negative values")
	}
	if n > maxFloatFactorial {
		return Value{}, domainError("factorial result too large")
	}

	k := int64(n)
	result := int64(1)
	for i := int64(2); i <= k && i <= maxExactFactorial; i++ {
		result *= i
	}
	if k <= maxExactFactorial {
		return Int(result), nil
	}
	f := float64(result)
	for i := int64(maxExactFactorial + 1); i <= k; i++ {
		f *= float64(i)
	}
	return Float(f), nil
}

func callPow(_ *Context, args []Value) (Value, error) {
	r, err := floatPow(args[0].f, args[1].f)
	if err != nil {
		return Value{}, err
	}
	return Float(r), nil
}

func callInv(_ *Context, args []Value) (Value, error) {
	if args[0].f == 0 {
		return Value{}, domainError("inverse of zero")
	}
	return Float(1.0 / args[0].f), nil
}

func callAbs(_ *Context, args []Value) (Value, error) {
	x := args[0]
	if x.isInt && x.i != math.MinInt64 {
		if x.i < 0 {
			return Int(-x.i), nil
		}
		return x, nil
	}
	return Float(math.Abs(x.f)), nil
}

// callRound rounds half to even. Without ndigits the result is an integer;
// with ndigits a float stays a float and an integer stays an integer.
func callRound(_ *Context, args []Value) (Value, error) {
	x := args[0]
	if len(args) == 1 {
		if x.isInt {
			return x, nil
		}
		if math.IsNaN(x.f) || math.IsInf(x.f, 0) {
			return Value{}, domainError("round: cannot convert %s to integer", formatFloat(x.f, 12))
		}
		r := math.RoundToEven(x.f)
		if r >= math.MinInt64 && r < math.MaxInt64 {
			return Int(int64(r)), nil
		}
		return Float(r), nil
	}

	nd, ok := args[1].Int64()
	if !ok {
		return Value{}, domainError("round: ndigits must be an integer")
	}

	if x.isInt {
		return roundInt(x.i, nd), nil
	}

	if math.IsNaN(x.f) || math.IsInf(x.f, 0) {
		return x, nil
	}
	if nd >= 0 {
		if nd > 323 {
			return x, nil
		}
		// Decimal formatting rounds the exact binary value half-to-even,
		// which is what correctly rounded round() does.
		s := strconv.FormatFloat(x.f, 'f', int(nd), 64)
		r, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Value{}, domainError("round: %v", err)
		}
		return Float(r), nil
	}
	if nd < -308 {
		return Float(math.Copysign(0, x.f)), nil
	}
	p := math.Pow(10, float64(-nd))
	return Float(math.RoundToEven(x.f/p) * p), nil
}

// roundInt rounds n half to even at a non-positive ndigits in integer
// arithmetic. A result outside the int64 range comes back as a float.
func roundInt(n, nd int64) Value {
	switch {
	case nd >= 0:
		return Int(n)
	case nd == -19:
		// Only |n| > 5e18 reaches the nearest multiple of 1e19.
		switch {
		case n > 5e18:
			return Float(1e19)
		case n < -5e18:
			return Float(-1e19)
		}
		return Int(0)
	case nd < -19:
		return Int(0)
	}

	p := int64(1)
	for i := int64(0); i < -nd; i++ {
		p *= 10
	}
	q, r := n/p, n%p
	if r < 0 {
		r += p
		q--
	}
	if 2*r > p || (2*r == p && q%2 != 0) {
		q++
	}
	if q > math.MaxInt64/p || q < math.MinInt64/p {
		return Float(float64(q) * float64(p))
	}
	return Int(q * p)
}
