package runtime

import (
	"fmt"

	"scheme/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInteger Kind = iota
	KindRational
	KindBool
	KindSymbol
	KindString
	KindNull
	KindPair
	KindProcedure
	KindVoid
	KindTerminate
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindRational:
		return "rational"
	case KindBool:
		return "boolean"
	case KindSymbol:
		return "symbol"
	case KindString:
		return "string"
	case KindNull:
		return "null"
	case KindPair:
		return "pair"
	case KindProcedure:
		return "procedure"
	case KindVoid:
		return "void"
	case KindTerminate:
		return "terminate"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type IntegerValue struct {
	Val int64
}

func (IntegerValue) Kind() Kind { return KindInteger }

// RationalValue keeps its denominator strictly positive and is never
// reduced: 4/2 stays 4/2.
type RationalValue struct {
	Num int64
	Den int64
}

// NewRational normalizes the sign onto the numerator. The denominator must
// be non-zero; division guards reject zero before construction.
func NewRational(num, den int64) RationalValue {
	if den < 0 {
		num, den = -num, -den
	}
	return RationalValue{Num: num, Den: den}
}

func (RationalValue) Kind() Kind { return KindRational }

type BoolValue struct {
	Val bool
}

func (BoolValue) Kind() Kind { return KindBool }

type SymbolValue struct {
	Name string
}

func (SymbolValue) Kind() Kind { return KindSymbol }

// StringValue is a pointer type so eq? observes object identity, matching
// pairs.
type StringValue struct {
	Val string
}

func (*StringValue) Kind() Kind { return KindString }

//-----------------------------------------------------------------------------
// Lists
//-----------------------------------------------------------------------------

// NullValue is the empty list.
type NullValue struct{}

func (NullValue) Kind() Kind { return KindNull }

// PairValue is heap-shared; set-car! / set-cdr! mutate it in place and the
// mutation is visible through every alias.
type PairValue struct {
	Car Value
	Cdr Value
}

func (*PairValue) Kind() Kind { return KindPair }

// Cons allocates a fresh pair.
func Cons(car, cdr Value) *PairValue {
	return &PairValue{Car: car, Cdr: cdr}
}

// ListOf builds a right-associated proper list of the given values.
func ListOf(items ...Value) Value {
	var list Value = NullValue{}
	for i := len(items) - 1; i >= 0; i-- {
		list = Cons(items[i], list)
	}
	return list
}

// IsProperList walks the cdr spine and requires termination in null.
func IsProperList(v Value) bool {
	for {
		switch val := v.(type) {
		case NullValue:
			return true
		case *PairValue:
			v = val.Cdr
		default:
			return false
		}
	}
}

//-----------------------------------------------------------------------------
// Procedures and sentinels
//-----------------------------------------------------------------------------

// ProcedureValue is a closure: parameter names, body expression, and the
// environment frozen at lambda evaluation. Cells stay shared, so later
// assignments in captured scopes are visible inside the closure.
type ProcedureValue struct {
	Params []string
	Body   ast.Expr
	Env    *Env
}

func (*ProcedureValue) Kind() Kind { return KindProcedure }

// VoidValue is the result of side-effecting operations.
type VoidValue struct{}

func (VoidValue) Kind() Kind { return KindVoid }

// TerminateValue is produced only by exit and flows upward until the driver
// observes it. It never appears inside a pair or a binding.
type TerminateValue struct{}

func (TerminateValue) Kind() Kind { return KindTerminate }

//-----------------------------------------------------------------------------
// Helpers
//-----------------------------------------------------------------------------

// IsFalse reports whether v is exactly the false boolean; every other value
// is truthy.
func IsFalse(v Value) bool {
	b, ok := v.(BoolValue)
	return ok && !b.Val
}
