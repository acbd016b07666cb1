package interpreter

import (
	"scheme/interpreter-go/pkg/ast"
	"scheme/interpreter-go/pkg/runtime"
)

// liftPrimitive materializes a closure for a bare primitive name reference,
// so built-ins can be passed as values without a pre-populated global
// environment. Fixed-arity primitives get matching parameter names and an
// operator-node body over those references; variadic-capable primitives get
// an empty parameter list and a bare variadic node as the body, which the
// application path dispatches to directly.
func liftPrimitive(spec ast.OpSpec, env *runtime.Env) *runtime.ProcedureValue {
	captured := env.Fork()

	switch spec.Op {
	case ast.OpVoid:
		return &runtime.ProcedureValue{Body: ast.NewVoidCall(), Env: captured}
	case ast.OpExit:
		return &runtime.ProcedureValue{Body: ast.NewExitCall(), Env: captured}
	}

	switch spec.Class {
	case ast.ArityFixed:
		if spec.Count == 1 {
			params := unaryLiftParams(spec.Op)
			return &runtime.ProcedureValue{
				Params: params,
				Body:   ast.NewUnaryOp(spec.Op, ast.NewVariable(params[0])),
				Env:    captured,
			}
		}
		params := binaryLiftParams(spec.Op)
		return &runtime.ProcedureValue{
			Params: params,
			Body:   ast.NewBinaryOp(spec.Op, ast.NewVariable(params[0]), ast.NewVariable(params[1])),
			Env:    captured,
		}
	default:
		return &runtime.ProcedureValue{Body: ast.NewVariadicOp(spec.Op, nil), Env: captured}
	}
}

func unaryLiftParams(op ast.Op) []string {
	switch op {
	case ast.OpCar, ast.OpCdr:
		return []string{"p"}
	default:
		return []string{"x"}
	}
}

func binaryLiftParams(op ast.Op) []string {
	switch op {
	case ast.OpSetCar, ast.OpSetCdr:
		return []string{"p", "v"}
	default:
		return []string{"a", "b"}
	}
}
