package interpreter

import (
	"fmt"

	"scheme/interpreter-go/pkg/ast"
	"scheme/interpreter-go/pkg/runtime"
)

func (in *Interpreter) applyUnary(op ast.Op, v runtime.Value) (runtime.Value, error) {
	switch op {
	case ast.OpCar:
		pair, ok := v.(*runtime.PairValue)
		if !ok {
			return nil, runtime.Errorf("car on non-pair")
		}
		return pair.Car, nil
	case ast.OpCdr:
		pair, ok := v.(*runtime.PairValue)
		if !ok {
			return nil, runtime.Errorf("cdr on non-pair")
		}
		return pair.Cdr, nil
	case ast.OpNot:
		return runtime.BoolValue{Val: runtime.IsFalse(v)}, nil
	case ast.OpIsBoolean:
		return runtime.BoolValue{Val: v.Kind() == runtime.KindBool}, nil
	case ast.OpIsNumber:
		return runtime.BoolValue{Val: v.Kind() == runtime.KindInteger || v.Kind() == runtime.KindRational}, nil
	case ast.OpIsNull:
		return runtime.BoolValue{Val: v.Kind() == runtime.KindNull}, nil
	case ast.OpIsPair:
		return runtime.BoolValue{Val: v.Kind() == runtime.KindPair}, nil
	case ast.OpIsProcedure:
		return runtime.BoolValue{Val: v.Kind() == runtime.KindProcedure}, nil
	case ast.OpIsSymbol:
		return runtime.BoolValue{Val: v.Kind() == runtime.KindSymbol}, nil
	case ast.OpIsString:
		return runtime.BoolValue{Val: v.Kind() == runtime.KindString}, nil
	case ast.OpIsList:
		return runtime.BoolValue{Val: runtime.IsProperList(v)}, nil
	case ast.OpDisplay:
		fmt.Fprint(in.Out, runtime.Render(v))
		return runtime.VoidValue{}, nil
	default:
		return nil, runtime.Errorf("unknown unary operator %s", op)
	}
}

func (in *Interpreter) applyBinary(op ast.Op, a, b runtime.Value) (runtime.Value, error) {
	switch op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv:
		ra, err := asRatio(a)
		if err != nil {
			return nil, err
		}
		rb, err := asRatio(b)
		if err != nil {
			return nil, err
		}
		switch op {
		case ast.OpAdd:
			return ratValue(ratAdd(ra, rb)), nil
		case ast.OpSub:
			return ratValue(ratSub(ra, rb)), nil
		case ast.OpMul:
			return ratValue(ratMul(ra, rb)), nil
		default:
			q, err := ratDiv(ra, rb)
			if err != nil {
				return nil, err
			}
			return ratValue(q), nil
		}
	case ast.OpModulo:
		return evalModulo(a, b)
	case ast.OpExpt:
		return evalExpt(a, b)
	case ast.OpLt, ast.OpLe, ast.OpEq, ast.OpGe, ast.OpGt:
		c, err := compareNumeric(a, b)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: compareHolds(op, c)}, nil
	case ast.OpCons:
		return runtime.Cons(a, b), nil
	case ast.OpSetCar:
		pair, ok := a.(*runtime.PairValue)
		if !ok {
			return nil, runtime.Errorf("set-car! on non-pair")
		}
		pair.Car = b
		return runtime.VoidValue{}, nil
	case ast.OpSetCdr:
		pair, ok := a.(*runtime.PairValue)
		if !ok {
			return nil, runtime.Errorf("set-cdr! on non-pair")
		}
		pair.Cdr = b
		return runtime.VoidValue{}, nil
	case ast.OpIsEq:
		return evalIsEq(a, b), nil
	default:
		return nil, runtime.Errorf("unknown binary operator %s", op)
	}
}

func compareHolds(op ast.Op, c int) bool {
	switch op {
	case ast.OpLt:
		return c < 0
	case ast.OpLe:
		return c <= 0
	case ast.OpEq:
		return c == 0
	case ast.OpGe:
		return c >= 0
	default:
		return c > 0
	}
}

// evalIsEq: numbers compare numerically across integer/rational, booleans
// by payload, symbols by name, null/void by kind; everything else falls
// through to object identity.
func evalIsEq(a, b runtime.Value) runtime.Value {
	numeric := func(v runtime.Value) bool {
		return v.Kind() == runtime.KindInteger || v.Kind() == runtime.KindRational
	}
	if numeric(a) && numeric(b) {
		c, err := compareNumeric(a, b)
		return runtime.BoolValue{Val: err == nil && c == 0}
	}
	if ab, ok := a.(runtime.BoolValue); ok {
		if bb, ok := b.(runtime.BoolValue); ok {
			return runtime.BoolValue{Val: ab.Val == bb.Val}
		}
	}
	if as, ok := a.(runtime.SymbolValue); ok {
		if bs, ok := b.(runtime.SymbolValue); ok {
			return runtime.BoolValue{Val: as.Name == bs.Name}
		}
	}
	if a.Kind() == runtime.KindNull && b.Kind() == runtime.KindNull {
		return runtime.BoolValue{Val: true}
	}
	if a.Kind() == runtime.KindVoid && b.Kind() == runtime.KindVoid {
		return runtime.BoolValue{Val: true}
	}
	return runtime.BoolValue{Val: identical(a, b)}
}

// identical compares heap objects by pointer; the value-typed kinds eq?
// recognises were handled above, so any other combination is not eq?.
func identical(a, b runtime.Value) bool {
	switch av := a.(type) {
	case *runtime.PairValue:
		bv, ok := b.(*runtime.PairValue)
		return ok && av == bv
	case *runtime.StringValue:
		bv, ok := b.(*runtime.StringValue)
		return ok && av == bv
	case *runtime.ProcedureValue:
		bv, ok := b.(*runtime.ProcedureValue)
		return ok && av == bv
	default:
		return false
	}
}

func (in *Interpreter) applyVariadic(op ast.Op, args []runtime.Value) (runtime.Value, error) {
	switch op {
	case ast.OpAdd:
		acc := ratio{num: 0, den: 1}
		for _, v := range args {
			r, err := asRatio(v)
			if err != nil {
				return nil, err
			}
			acc = ratAdd(acc, r)
		}
		if len(args) == 0 {
			return runtime.IntegerValue{Val: 0}, nil
		}
		return ratValue(acc), nil
	case ast.OpSub:
		if len(args) == 0 {
			return nil, runtime.Errorf("wrong number of arguments for -")
		}
		first, err := asRatio(args[0])
		if err != nil {
			return nil, err
		}
		if len(args) == 1 {
			return ratValue(ratio{num: -first.num, den: first.den}), nil
		}
		acc := first
		for _, v := range args[1:] {
			r, err := asRatio(v)
			if err != nil {
				return nil, err
			}
			acc = ratSub(acc, r)
		}
		return ratValue(acc), nil
	case ast.OpMul:
		if len(args) == 0 {
			return runtime.IntegerValue{Val: 1}, nil
		}
		acc := ratio{num: 1, den: 1}
		for _, v := range args {
			r, err := asRatio(v)
			if err != nil {
				return nil, err
			}
			acc = ratMul(acc, r)
		}
		return ratValue(acc), nil
	case ast.OpDiv:
		if len(args) == 0 {
			return nil, runtime.Errorf("wrong number of arguments for /")
		}
		first, err := asRatio(args[0])
		if err != nil {
			return nil, err
		}
		if len(args) == 1 {
			if first.num == 0 {
				return nil, runtime.Errorf("division by zero")
			}
			return ratValue(ratio{num: first.den, den: first.num}), nil
		}
		acc := first
		for _, v := range args[1:] {
			r, err := asRatio(v)
			if err != nil {
				return nil, err
			}
			acc, err = ratDiv(acc, r)
			if err != nil {
				return nil, err
			}
		}
		return ratValue(acc), nil
	case ast.OpLt, ast.OpLe, ast.OpEq, ast.OpGe, ast.OpGt:
		// Fewer than two arguments hold vacuously; the parser enforces the
		// minimum at ordinary call sites, but lifted closures route here.
		for i := 1; i < len(args); i++ {
			c, err := compareNumeric(args[i-1], args[i])
			if err != nil {
				return nil, err
			}
			if !compareHolds(op, c) {
				return runtime.BoolValue{Val: false}, nil
			}
		}
		return runtime.BoolValue{Val: true}, nil
	case ast.OpList:
		return runtime.ListOf(args...), nil
	case ast.OpAnd:
		// Lifted and/or land here with their arguments already evaluated;
		// only the direct call sites keep the lazy control nodes.
		var last runtime.Value = runtime.BoolValue{Val: true}
		for _, v := range args {
			if runtime.IsFalse(v) {
				return runtime.BoolValue{Val: false}, nil
			}
			last = v
		}
		return last, nil
	case ast.OpOr:
		for _, v := range args {
			if !runtime.IsFalse(v) {
				return v, nil
			}
		}
		return runtime.BoolValue{Val: false}, nil
	default:
		return nil, runtime.Errorf("unknown variadic operator %s", op)
	}
}
