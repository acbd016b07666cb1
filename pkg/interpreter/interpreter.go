package interpreter

import (
	"io"
	"os"

	"scheme/interpreter-go/pkg/ast"
	"scheme/interpreter-go/pkg/runtime"
)

// Interpreter drives evaluation of expression nodes against an environment.
type Interpreter struct {
	// Out receives display output.
	Out io.Writer
}

// New returns an interpreter writing display output to stdout.
func New() *Interpreter {
	return &Interpreter{Out: os.Stdout}
}

// Evaluate computes the value of an expression in the given environment.
// Define grows the environment head in place, so a define evaluated inside
// a conditional extends the scope its caller passed in.
func (in *Interpreter) Evaluate(expr ast.Expr, env *runtime.Env) (runtime.Value, error) {
	switch n := expr.(type) {
	case *ast.IntegerLiteral:
		return runtime.IntegerValue{Val: n.Value}, nil
	case *ast.RationalLiteral:
		return runtime.NewRational(n.Numerator, n.Denominator), nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return &runtime.StringValue{Val: n.Value}, nil
	case *ast.Variable:
		return in.evaluateVariable(n, env)
	case *ast.Call:
		return in.evaluateCall(n, env)
	case *ast.Lambda:
		return &runtime.ProcedureValue{Params: n.Params, Body: n.Body, Env: env.Fork()}, nil
	case *ast.Define:
		return in.evaluateDefine(n, env)
	case *ast.Set:
		return in.evaluateSet(n, env)
	case *ast.Let:
		return in.evaluateLet(n, env)
	case *ast.Letrec:
		return in.evaluateLetrec(n, env)
	case *ast.Begin:
		return in.EvaluateSequence(n.Body, env)
	case *ast.If:
		return in.evaluateIf(n, env)
	case *ast.Cond:
		return in.evaluateCond(n, env)
	case *ast.Quote:
		return quoteValue(n.Form)
	case *ast.And:
		return in.evaluateAnd(n, env)
	case *ast.Or:
		return in.evaluateOr(n, env)
	case *ast.VoidCall:
		return runtime.VoidValue{}, nil
	case *ast.ExitCall:
		return runtime.TerminateValue{}, nil
	case *ast.UnaryOp:
		operand, err := in.Evaluate(n.Operand, env)
		if err != nil {
			return nil, err
		}
		return in.applyUnary(n.Op, operand)
	case *ast.BinaryOp:
		left, err := in.Evaluate(n.Left, env)
		if err != nil {
			return nil, err
		}
		right, err := in.Evaluate(n.Right, env)
		if err != nil {
			return nil, err
		}
		return in.applyBinary(n.Op, left, right)
	case *ast.VariadicOp:
		args, err := in.evaluateAll(n.Operands, env)
		if err != nil {
			return nil, err
		}
		return in.applyVariadic(n.Op, args)
	default:
		return nil, runtime.Errorf("unsupported expression type: %s", expr.NodeType())
	}
}

func (in *Interpreter) evaluateAll(exprs []ast.Expr, env *runtime.Env) ([]runtime.Value, error) {
	vals := make([]runtime.Value, 0, len(exprs))
	for _, e := range exprs {
		v, err := in.Evaluate(e, env)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// evaluateVariable resolves a name, lifting bare primitives into closures
// when no binding shadows them.
func (in *Interpreter) evaluateVariable(v *ast.Variable, env *runtime.Env) (runtime.Value, error) {
	if val, ok := env.Lookup(v.Name); ok {
		return val, nil
	}
	if spec, ok := ast.LookupPrimitive(v.Name); ok {
		return liftPrimitive(spec, env), nil
	}
	return nil, runtime.Errorf("invalid variable: %s", v.Name)
}

// evaluateCall applies a procedure. When the body is a variadic operator
// node the argument vector routes straight to that operator; auto-lifted
// variadic primitives rely on this path.
func (in *Interpreter) evaluateCall(call *ast.Call, env *runtime.Env) (runtime.Value, error) {
	callee, err := in.Evaluate(call.Callee, env)
	if err != nil {
		return nil, err
	}
	proc, ok := callee.(*runtime.ProcedureValue)
	if !ok {
		return nil, runtime.Errorf("attempt to apply a non-procedure")
	}

	args, err := in.evaluateAll(call.Args, env)
	if err != nil {
		return nil, err
	}

	if body, ok := proc.Body.(*ast.VariadicOp); ok {
		return in.applyVariadic(body.Op, args)
	}

	if len(args) != len(proc.Params) {
		return nil, runtime.Errorf("wrong number of arguments")
	}
	frame := proc.Env.Fork()
	for i, param := range proc.Params {
		frame.Define(param, args[i])
	}
	return in.Evaluate(proc.Body, frame)
}

// evaluateDefine binds name to void first (reusing an existing cell when
// the name is already bound), then evaluates the initializer in that scope
// so a function can refer to itself.
func (in *Interpreter) evaluateDefine(def *ast.Define, env *runtime.Env) (runtime.Value, error) {
	if _, bound := env.Lookup(def.Name); !bound {
		env.Define(def.Name, runtime.VoidValue{})
	}
	val, err := in.Evaluate(def.Init, env)
	if err != nil {
		return nil, err
	}
	env.Assign(def.Name, val)
	return runtime.VoidValue{}, nil
}

func (in *Interpreter) evaluateSet(set *ast.Set, env *runtime.Env) (runtime.Value, error) {
	if _, bound := env.Lookup(set.Name); !bound {
		return nil, runtime.Errorf("undefined variable: %s", set.Name)
	}
	val, err := in.Evaluate(set.Value, env)
	if err != nil {
		return nil, err
	}
	env.Assign(set.Name, val)
	return runtime.VoidValue{}, nil
}

// evaluateLet evaluates every initializer in the outer scope before binding
// any name.
func (in *Interpreter) evaluateLet(let *ast.Let, env *runtime.Env) (runtime.Value, error) {
	vals := make([]runtime.Value, 0, len(let.Bindings))
	for _, b := range let.Bindings {
		v, err := in.Evaluate(b.Init, env)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	inner := env.Fork()
	for i, b := range let.Bindings {
		inner.Define(b.Name, vals[i])
	}
	return in.Evaluate(let.Body, inner)
}

// evaluateLetrec pre-binds every name to void, then evaluates initializers
// in that shared scope and assigns back, so the bindings can be mutually
// recursive.
func (in *Interpreter) evaluateLetrec(letrec *ast.Letrec, env *runtime.Env) (runtime.Value, error) {
	inner := env.Fork()
	for _, b := range letrec.Bindings {
		inner.Define(b.Name, runtime.VoidValue{})
	}
	for _, b := range letrec.Bindings {
		v, err := in.Evaluate(b.Init, inner)
		if err != nil {
			return nil, err
		}
		inner.Assign(b.Name, v)
	}
	return in.Evaluate(letrec.Body, inner)
}

func (in *Interpreter) evaluateIf(n *ast.If, env *runtime.Env) (runtime.Value, error) {
	cond, err := in.Evaluate(n.Cond, env)
	if err != nil {
		return nil, err
	}
	if runtime.IsFalse(cond) {
		return in.Evaluate(n.Else, env)
	}
	return in.Evaluate(n.Then, env)
}

// evaluateCond scans clauses in order. An else clause fires unconditionally;
// otherwise the test value decides, and a test-only clause yields the test
// value itself.
func (in *Interpreter) evaluateCond(n *ast.Cond, env *runtime.Env) (runtime.Value, error) {
	for _, clause := range n.Clauses {
		if len(clause.Items) == 0 {
			continue
		}
		if v, ok := clause.Items[0].(*ast.Variable); ok && v.Name == "else" {
			return in.evaluateClauseBody(clause.Items[1:], env)
		}
		test, err := in.Evaluate(clause.Items[0], env)
		if err != nil {
			return nil, err
		}
		if runtime.IsFalse(test) {
			continue
		}
		if len(clause.Items) == 1 {
			return test, nil
		}
		return in.evaluateClauseBody(clause.Items[1:], env)
	}
	return runtime.VoidValue{}, nil
}

func (in *Interpreter) evaluateClauseBody(body []ast.Expr, env *runtime.Env) (runtime.Value, error) {
	var last runtime.Value = runtime.VoidValue{}
	for _, e := range body {
		v, err := in.Evaluate(e, env)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}

// evaluateAnd is true on zero operands, short-circuits on the first false,
// and otherwise returns the last value seen.
func (in *Interpreter) evaluateAnd(n *ast.And, env *runtime.Env) (runtime.Value, error) {
	var last runtime.Value = runtime.BoolValue{Val: true}
	for _, e := range n.Operands {
		v, err := in.Evaluate(e, env)
		if err != nil {
			return nil, err
		}
		if runtime.IsFalse(v) {
			return runtime.BoolValue{Val: false}, nil
		}
		last = v
	}
	return last, nil
}

// evaluateOr is false on zero operands and returns the first truthy value.
func (in *Interpreter) evaluateOr(n *ast.Or, env *runtime.Env) (runtime.Value, error) {
	for _, e := range n.Operands {
		v, err := in.Evaluate(e, env)
		if err != nil {
			return nil, err
		}
		if !runtime.IsFalse(v) {
			return v, nil
		}
	}
	return runtime.BoolValue{Val: false}, nil
}
