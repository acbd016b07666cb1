package interpreter

import (
	"scheme/interpreter-go/pkg/runtime"
	"scheme/interpreter-go/pkg/syntax"
)

// quoteValue converts a read-tree node back into a value. A "." symbol in
// the penultimate position splices the final element in as the cdr of the
// last pair; a dot anywhere else is a bad quoted form.
func quoteValue(node syntax.Node) (runtime.Value, error) {
	switch n := node.(type) {
	case *syntax.Integer:
		return runtime.IntegerValue{Val: n.Value}, nil
	case *syntax.Rational:
		return runtime.NewRational(n.Numerator, n.Denominator), nil
	case *syntax.Boolean:
		return runtime.BoolValue{Val: n.Value}, nil
	case *syntax.String:
		return &runtime.StringValue{Val: n.Value}, nil
	case *syntax.Symbol:
		return runtime.SymbolValue{Name: n.Name}, nil
	case *syntax.List:
		return quoteList(n.Items)
	default:
		return nil, runtime.Errorf("bad quoted form")
	}
}

func quoteList(items []syntax.Node) (runtime.Value, error) {
	dot := -1
	for i, item := range items {
		if sym, ok := item.(*syntax.Symbol); ok && sym.Name == "." {
			dot = i
			break
		}
	}

	elems := items
	var tail runtime.Value = runtime.NullValue{}
	if dot >= 0 {
		if dot != len(items)-2 {
			return nil, runtime.Errorf("malformed dotted list")
		}
		if sym, ok := items[len(items)-1].(*syntax.Symbol); ok && sym.Name == "." {
			return nil, runtime.Errorf("malformed dotted list")
		}
		var err error
		tail, err = quoteValue(items[len(items)-1])
		if err != nil {
			return nil, err
		}
		elems = items[:dot]
	}

	for i := len(elems) - 1; i >= 0; i-- {
		car, err := quoteValue(elems[i])
		if err != nil {
			return nil, err
		}
		tail = runtime.Cons(car, tail)
	}
	return tail, nil
}
