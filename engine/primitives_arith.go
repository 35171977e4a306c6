package engine

import "math"

// asFloat64 and isReal support the arithmetic contagion rule: any Real
// operand makes the result a Real.
func asFloat64(v Any) (float64, bool) {
	switch n := v.(type) {
	case Integer:
		return float64(n), true
	case Real:
		return float64(n), true
	}
	return 0, false
}

func isReal(v Any) bool {
	_, ok := v.(Real)
	return ok
}

func anyReal(args []Any) bool {
	for _, a := range args {
		if isReal(a) {
			return true
		}
	}
	return false
}

func checkNums(name string, args []Any) error {
	for _, a := range args {
		if _, ok := asFloat64(a); !ok {
			return NewError(TypeError, "%s: not a number: %s", name, Format(a, true))
		}
	}
	return nil
}

func primAdd(args []Any) (Any, error) {
	if err := checkNums("+", args); err != nil {
		return nil, err
	}
	if anyReal(args) {
		var sum float64
		for _, a := range args {
			f, _ := asFloat64(a)
			sum += f
		}
		return Real(sum), nil
	}
	var sum int64
	for _, a := range args {
		sum += int64(a.(Integer))
	}
	return Integer(sum), nil
}

func primSub(args []Any) (Any, error) {
	if err := checkNums("-", args); err != nil {
		return nil, err
	}
	if len(args) == 1 {
		if anyReal(args) {
			f, _ := asFloat64(args[0])
			return Real(-f), nil
		}
		return Integer(-int64(args[0].(Integer))), nil
	}
	if anyReal(args) {
		f, _ := asFloat64(args[0])
		for _, a := range args[1:] {
			g, _ := asFloat64(a)
			f -= g
		}
		return Real(f), nil
	}
	n := int64(args[0].(Integer))
	for _, a := range args[1:] {
		n -= int64(a.(Integer))
	}
	return Integer(n), nil
}

func primMul(args []Any) (Any, error) {
	if err := checkNums("*", args); err != nil {
		return nil, err
	}
	if anyReal(args) {
		p := 1.0
		for _, a := range args {
			f, _ := asFloat64(a)
			p *= f
		}
		return Real(p), nil
	}
	p := int64(1)
	for _, a := range args {
		p *= int64(a.(Integer))
	}
	return Integer(p), nil
}

func primDiv(args []Any) (Any, error) {
	if err := checkNums("/", args); err != nil {
		return nil, err
	}
	if len(args) == 1 {
		f, _ := asFloat64(args[0])
		if f == 0 {
			return nil, NewError(ArithmeticError, "/: division by zero")
		}
		return Real(1 / f), nil
	}
	f, _ := asFloat64(args[0])
	for _, a := range args[1:] {
		g, _ := asFloat64(a)
		if g == 0 {
			return nil, NewError(ArithmeticError, "/: division by zero")
		}
		f /= g
	}
	return Real(f), nil
}

func asInteger(name string, v Any) (int64, error) {
	n, ok := v.(Integer)
	if !ok {
		return 0, NewError(TypeError, "%s: not an integer: %s", name, Format(v, true))
	}
	return int64(n), nil
}

func primQuotient(args []Any) (Any, error) {
	a, err := asInteger("quotient", args[0])
	if err != nil {
		return nil, err
	}
	b, err := asInteger("quotient", args[1])
	if err != nil {
		return nil, err
	}
	if b == 0 {
		return nil, NewError(ArithmeticError, "quotient: division by zero")
	}
	return Integer(a / b), nil
}

func primRemainder(args []Any) (Any, error) {
	a, err := asInteger("remainder", args[0])
	if err != nil {
		return nil, err
	}
	b, err := asInteger("remainder", args[1])
	if err != nil {
		return nil, err
	}
	if b == 0 {
		return nil, NewError(ArithmeticError, "remainder: division by zero")
	}
	return Integer(a % b), nil
}

func primModulo(args []Any) (Any, error) {
	a, err := asInteger("modulo", args[0])
	if err != nil {
		return nil, err
	}
	b, err := asInteger("modulo", args[1])
	if err != nil {
		return nil, err
	}
	if b == 0 {
		return nil, NewError(ArithmeticError, "modulo: division by zero")
	}
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return Integer(m), nil
}

func primAbs(args []Any) (Any, error) {
	switch n := args[0].(type) {
	case Integer:
		if n < 0 {
			return -n, nil
		}
		return n, nil
	case Real:
		return Real(math.Abs(float64(n))), nil
	default:
		return nil, NewError(TypeError, "abs: not a number: %s", Format(args[0], true))
	}
}

// primExpt implements exponentiation, keeping the result an Integer for an
// Integer base with a non-negative Integer exponent (so (integer? (expt 2
// 10)) stays #t) and falling back to math.Pow otherwise.
func primExpt(args []Any) (Any, error) {
	if err := checkNums("expt", args); err != nil {
		return nil, err
	}
	base, baseIsInt := args[0].(Integer)
	exp, expIsInt := args[1].(Integer)
	if baseIsInt && expIsInt && exp >= 0 {
		result := int64(1)
		b := int64(base)
		for i := int64(0); i < int64(exp); i++ {
			result *= b
		}
		return Integer(result), nil
	}
	b, _ := asFloat64(args[0])
	e, _ := asFloat64(args[1])
	return Real(math.Pow(b, e)), nil
}

func numCompare(name string, args []Any, ok func(cmp int) bool) (Any, error) {
	if err := checkNums(name, args); err != nil {
		return nil, err
	}
	for i := 0; i+1 < len(args); i++ {
		a, _ := asFloat64(args[i])
		b, _ := asFloat64(args[i+1])
		cmp := 0
		switch {
		case a < b:
			cmp = -1
		case a > b:
			cmp = 1
		}
		if !ok(cmp) {
			return false, nil
		}
	}
	return true, nil
}

func primNumEq(args []Any) (Any, error) { return numCompare("=", args, func(c int) bool { return c == 0 }) }
func primLt(args []Any) (Any, error)    { return numCompare("<", args, func(c int) bool { return c < 0 }) }
func primGt(args []Any) (Any, error)    { return numCompare(">", args, func(c int) bool { return c > 0 }) }
func primLe(args []Any) (Any, error)    { return numCompare("<=", args, func(c int) bool { return c <= 0 }) }
func primGe(args []Any) (Any, error)    { return numCompare(">=", args, func(c int) bool { return c >= 0 }) }

func primZeroP(args []Any) (Any, error) {
	f, ok := asFloat64(args[0])
	if !ok {
		return nil, NewError(TypeError, "zero?: not a number: %s", Format(args[0], true))
	}
	return f == 0, nil
}

func primEvenP(args []Any) (Any, error) {
	n, err := asInteger("even?", args[0])
	if err != nil {
		return nil, err
	}
	return n%2 == 0, nil
}

func primOddP(args []Any) (Any, error) {
	n, err := asInteger("odd?", args[0])
	if err != nil {
		return nil, err
	}
	return n%2 != 0, nil
}

func mathUnary(fn func(float64) float64) func(args []Any) (Any, error) {
	return func(args []Any) (Any, error) {
		f, ok := asFloat64(args[0])
		if !ok {
			return nil, NewError(TypeError, "not a number: %s", Format(args[0], true))
		}
		return Real(fn(f)), nil
	}
}
