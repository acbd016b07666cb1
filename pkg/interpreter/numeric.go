package interpreter

import (
	"math/big"

	"scheme/interpreter-go/pkg/runtime"
)

// The numeric tower lifts integers and rationals into a common rational
// domain and cross-multiplies on int64 components. Overflow of the cross
// products wraps silently (deterministically); only expt detects overflow.

type ratio struct {
	num, den int64
}

func asRatio(v runtime.Value) (ratio, error) {
	switch n := v.(type) {
	case runtime.IntegerValue:
		return ratio{num: n.Val, den: 1}, nil
	case runtime.RationalValue:
		return ratio{num: n.Num, den: n.Den}, nil
	default:
		return ratio{}, runtime.Errorf("numeric operand required")
	}
}

// ratValue keeps the result rational even when the denominator is 1.
func ratValue(r ratio) runtime.Value {
	return runtime.NewRational(r.num, r.den)
}

func ratAdd(a, b ratio) ratio {
	return ratio{num: a.num*b.den + b.num*a.den, den: a.den * b.den}
}

func ratSub(a, b ratio) ratio {
	return ratio{num: a.num*b.den - b.num*a.den, den: a.den * b.den}
}

func ratMul(a, b ratio) ratio {
	return ratio{num: a.num * b.num, den: a.den * b.den}
}

func ratDiv(a, b ratio) (ratio, error) {
	if b.num == 0 {
		return ratio{}, runtime.Errorf("division by zero")
	}
	return ratio{num: a.num * b.den, den: a.den * b.num}, nil
}

// compareNumeric returns -1, 0 or 1 over the int/rational domain.
func compareNumeric(a, b runtime.Value) (int, error) {
	ra, err := asRatio(a)
	if err != nil {
		return 0, runtime.Errorf("wrong typename in numeric comparison")
	}
	rb, err := asRatio(b)
	if err != nil {
		return 0, runtime.Errorf("wrong typename in numeric comparison")
	}
	left := ra.num * rb.den
	right := rb.num * ra.den
	switch {
	case left < right:
		return -1, nil
	case left > right:
		return 1, nil
	default:
		return 0, nil
	}
}

// intOperand accepts an integer or a denominator-1 rational.
func intOperand(v runtime.Value, op string) (int64, error) {
	switch n := v.(type) {
	case runtime.IntegerValue:
		return n.Val, nil
	case runtime.RationalValue:
		if n.Den == 1 {
			return n.Num, nil
		}
	}
	return 0, runtime.Errorf("%s is only defined for integers", op)
}

func evalModulo(a, b runtime.Value) (runtime.Value, error) {
	lhs, err := intOperand(a, "modulo")
	if err != nil {
		return nil, err
	}
	rhs, err := intOperand(b, "modulo")
	if err != nil {
		return nil, err
	}
	if rhs == 0 {
		return nil, runtime.Errorf("division by zero")
	}
	return runtime.IntegerValue{Val: lhs % rhs}, nil
}

// evalExpt uses exponentiation by squaring on a big.Int accumulator and
// fails when the result leaves the int64 range. Negative exponents and 0^0
// are domain errors.
func evalExpt(a, b runtime.Value) (runtime.Value, error) {
	base, err := intOperand(a, "expt")
	if err != nil {
		return nil, runtime.Errorf("wrong typename in expt")
	}
	exponent, err := intOperand(b, "expt")
	if err != nil {
		return nil, runtime.Errorf("wrong typename in expt")
	}
	if exponent < 0 {
		return nil, runtime.Errorf("negative exponent not supported for integers")
	}
	if base == 0 && exponent == 0 {
		return nil, runtime.Errorf("0^0 is undefined")
	}

	// Bases beyond ±1 overflow once the exponent exceeds 63; bail before
	// the accumulator grows unboundedly.
	if base > 1 || base < -1 {
		if exponent > 63 {
			return nil, runtime.Errorf("integer overflow in expt")
		}
	}

	result := big.NewInt(1)
	acc := big.NewInt(base)
	exp := exponent
	for exp > 0 {
		if exp%2 == 1 {
			result.Mul(result, acc)
		}
		acc.Mul(acc, acc)
		exp /= 2
	}
	if !result.IsInt64() {
		return nil, runtime.Errorf("integer overflow in expt")
	}
	return runtime.IntegerValue{Val: result.Int64()}, nil
}
