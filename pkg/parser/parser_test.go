package parser

import (
	"strings"
	"testing"

	"scheme/interpreter-go/pkg/ast"
	"scheme/interpreter-go/pkg/runtime"
	"scheme/interpreter-go/pkg/syntax"
)

func readForm(t *testing.T, src string) syntax.Node {
	t.Helper()
	node, err := syntax.NewReader(strings.NewReader(src)).Read()
	if err != nil {
		t.Fatalf("read %q failed: %v", src, err)
	}
	return node
}

func parseSource(t *testing.T, src string, env *runtime.Env) ast.Expr {
	t.Helper()
	expr, err := Parse(readForm(t, src), env)
	if err != nil {
		t.Fatalf("parse %q failed: %v", src, err)
	}
	return expr
}

func parseError(t *testing.T, src string) error {
	t.Helper()
	_, err := Parse(readForm(t, src), runtime.NewEnv())
	if err == nil {
		t.Fatalf("parse %q unexpectedly succeeded", src)
	}
	return err
}

func TestAtomsLower(t *testing.T) {
	env := runtime.NewEnv()
	if _, ok := parseSource(t, "42", env).(*ast.IntegerLiteral); !ok {
		t.Fatalf("integer literal did not lower")
	}
	if _, ok := parseSource(t, "1/2", env).(*ast.RationalLiteral); !ok {
		t.Fatalf("rational literal did not lower")
	}
	if _, ok := parseSource(t, "#t", env).(*ast.BooleanLiteral); !ok {
		t.Fatalf("boolean literal did not lower")
	}
	if _, ok := parseSource(t, `"s"`, env).(*ast.StringLiteral); !ok {
		t.Fatalf("string literal did not lower")
	}
}

func TestLoneSymbolIsVariableEvenForPrimitives(t *testing.T) {
	expr := parseSource(t, "car", runtime.NewEnv())
	v, ok := expr.(*ast.Variable)
	if !ok || v.Name != "car" {
		t.Fatalf("expected variable reference, got %#v", expr)
	}
}

func TestEmptyListParsesAsQuote(t *testing.T) {
	expr := parseSource(t, "()", runtime.NewEnv())
	q, ok := expr.(*ast.Quote)
	if !ok {
		t.Fatalf("expected quote, got %#v", expr)
	}
	list, ok := q.Form.(*syntax.List)
	if !ok || len(list.Items) != 0 {
		t.Fatalf("expected empty quoted list, got %#v", q.Form)
	}
}

func TestBinaryFastPathAndVariadicFallback(t *testing.T) {
	env := runtime.NewEnv()
	if _, ok := parseSource(t, "(+ 1 2)", env).(*ast.BinaryOp); !ok {
		t.Fatalf("two-argument + did not fuse to binary node")
	}
	vn, ok := parseSource(t, "(+ 1 2 3)", env).(*ast.VariadicOp)
	if !ok || vn.Op != ast.OpAdd || len(vn.Operands) != 3 {
		t.Fatalf("three-argument + did not lower to variadic node")
	}
	if _, ok := parseSource(t, "(+)", env).(*ast.VariadicOp); !ok {
		t.Fatalf("zero-argument + should be legal")
	}
	if _, ok := parseSource(t, "(- 5)", env).(*ast.VariadicOp); !ok {
		t.Fatalf("unary - should go variadic")
	}
}

func TestArityErrorsAtParseTime(t *testing.T) {
	for _, src := range []string{
		"(-)", "(/)", "(< 1)", "(= 1)", "(car 1 2)", "(cdr)",
		"(cons 1)", "(modulo 1)", "(expt 1 2 3)", "(not)", "(void 1)",
		"(exit 1)", "(eq? 1)", "(set-car! (list 1))",
	} {
		parseError(t, src)
	}
}

func TestShadowedPrimitiveParsesAsCall(t *testing.T) {
	env := runtime.NewEnv()
	env.Define("+", runtime.IntegerValue{Val: 0})
	expr := parseSource(t, "(+ 1 2)", env)
	call, ok := expr.(*ast.Call)
	if !ok {
		t.Fatalf("shadowed + lowered to %#v, want application", expr)
	}
	v, ok := call.Callee.(*ast.Variable)
	if !ok || v.Name != "+" {
		t.Fatalf("unexpected callee %#v", call.Callee)
	}
}

func TestLambdaParameterShadowingInsideBody(t *testing.T) {
	// The parameter named car must make (car 1 2 3) an ordinary call, not
	// an arity error on the primitive.
	expr := parseSource(t, "(lambda (car) (car 1 2 3))", runtime.NewEnv())
	lam, ok := expr.(*ast.Lambda)
	if !ok {
		t.Fatalf("expected lambda, got %#v", expr)
	}
	if _, ok := lam.Body.(*ast.Call); !ok {
		t.Fatalf("body should be an application, got %#v", lam.Body)
	}
}

func TestLambdaShapes(t *testing.T) {
	parseError(t, "(lambda (x))")
	parseError(t, "(lambda (1) x)")
	parseError(t, "(lambda (x x) x)")
	parseError(t, "(lambda x x)")

	lam := parseSource(t, "(lambda (a b) a b)", runtime.NewEnv()).(*ast.Lambda)
	if len(lam.Params) != 2 {
		t.Fatalf("expected 2 params, got %v", lam.Params)
	}
	if _, ok := lam.Body.(*ast.Begin); !ok {
		t.Fatalf("multi-expression body should wrap in begin, got %#v", lam.Body)
	}
}

func TestDefineFunctionSugar(t *testing.T) {
	expr := parseSource(t, "(define (fact n) (if (= n 0) 1 (* n (fact (- n 1)))))", runtime.NewEnv())
	def, ok := expr.(*ast.Define)
	if !ok || def.Name != "fact" {
		t.Fatalf("expected define of fact, got %#v", expr)
	}
	lam, ok := def.Init.(*ast.Lambda)
	if !ok || len(lam.Params) != 1 || lam.Params[0] != "n" {
		t.Fatalf("expected single-parameter lambda, got %#v", def.Init)
	}
	// fact is placeholder-bound while the body parses, so the recursive
	// call is an application of the variable fact.
	ifExpr := lam.Body.(*ast.If)
	mul := ifExpr.Else.(*ast.BinaryOp)
	if _, ok := mul.Right.(*ast.Call); !ok {
		t.Fatalf("recursive call did not parse as application: %#v", mul.Right)
	}
}

func TestDefineExtraBodyWrapsInBegin(t *testing.T) {
	def := parseSource(t, "(define x 1 2 3)", runtime.NewEnv()).(*ast.Define)
	if _, ok := def.Init.(*ast.Begin); !ok {
		t.Fatalf("expected begin-wrapped initializer, got %#v", def.Init)
	}
}

func TestLetBindingsParseInOuterScope(t *testing.T) {
	// The initializer (list 1) must not see the let-bound name list: it
	// parses in the outer scope, where list is the primitive, so it lowers to
	// the list operator rather than an application.
	expr := parseSource(t, "(let ((list (list 1)) (y 2)) (+ list y))", runtime.NewEnv())
	let, ok := expr.(*ast.Let)
	if !ok || len(let.Bindings) != 2 {
		t.Fatalf("expected let with 2 bindings, got %#v", expr)
	}
	if _, ok := let.Bindings[0].Init.(*ast.VariadicOp); !ok {
		t.Fatalf("list initializer should lower to the list operator, got %#v", let.Bindings[0].Init)
	}
	if _, ok := let.Body.(*ast.BinaryOp); !ok {
		t.Fatalf("let body should be binary +, got %#v", let.Body)
	}
}

func TestLetrecBindingsSeeEachOther(t *testing.T) {
	// The bound names shadow the car/cdr primitives, so both the sibling
	// reference and the body parse as applications only if the names are in
	// scope while they parse.
	src := "(letrec ((car (lambda (n) (cdr n))) (cdr (lambda (n) (car n)))) (car 10))"
	letrec := parseSource(t, src, runtime.NewEnv()).(*ast.Letrec)
	first := letrec.Bindings[0].Init.(*ast.Lambda)
	if _, ok := first.Body.(*ast.Call); !ok {
		t.Fatalf("letrec initializer did not see sibling binding: %#v", first.Body)
	}
	if _, ok := letrec.Body.(*ast.Call); !ok {
		t.Fatalf("letrec body did not see bindings: %#v", letrec.Body)
	}
}

func TestBadBindingShapes(t *testing.T) {
	parseError(t, "(let ((x)) x)")
	parseError(t, "(let (x) x)")
	parseError(t, "(let x x)")
	parseError(t, "(letrec ((1 2)) 3)")
	parseError(t, "(set! 1 2)")
	parseError(t, "(set! x)")
	parseError(t, "(if 1 2)")
	parseError(t, "(quote 1 2)")
	parseError(t, "(cond)")
	parseError(t, "(cond 1)")
	parseError(t, "(cond ())")
}

func TestCondKeepsElseClause(t *testing.T) {
	cond := parseSource(t, "(cond ((= 1 2) 'a) (else 'b 'c))", runtime.NewEnv()).(*ast.Cond)
	if len(cond.Clauses) != 2 {
		t.Fatalf("expected 2 clauses, got %d", len(cond.Clauses))
	}
	last := cond.Clauses[1]
	v, ok := last.Items[0].(*ast.Variable)
	if !ok || v.Name != "else" {
		t.Fatalf("else clause head not preserved: %#v", last.Items[0])
	}
	if len(last.Items) != 3 {
		t.Fatalf("else clause body lost expressions: %d", len(last.Items))
	}
}

func TestNonSymbolHeadIsApplication(t *testing.T) {
	expr := parseSource(t, "((lambda (x) x) 5)", runtime.NewEnv())
	call, ok := expr.(*ast.Call)
	if !ok {
		t.Fatalf("expected application, got %#v", expr)
	}
	if _, ok := call.Callee.(*ast.Lambda); !ok {
		t.Fatalf("expected lambda callee, got %#v", call.Callee)
	}
}

func TestUnboundHeadFallsBackToApplication(t *testing.T) {
	expr := parseSource(t, "(frobnicate 1 2)", runtime.NewEnv())
	call, ok := expr.(*ast.Call)
	if !ok {
		t.Fatalf("expected application, got %#v", expr)
	}
	if v := call.Callee.(*ast.Variable); v.Name != "frobnicate" {
		t.Fatalf("unexpected callee %#v", call.Callee)
	}
}

func TestAndOrLowerToLazyNodes(t *testing.T) {
	env := runtime.NewEnv()
	if _, ok := parseSource(t, "(and 1 2)", env).(*ast.And); !ok {
		t.Fatalf("and did not lower to its control node")
	}
	if _, ok := parseSource(t, "(or)", env).(*ast.Or); !ok {
		t.Fatalf("or did not lower to its control node")
	}
}

func TestVoidAndExitLower(t *testing.T) {
	env := runtime.NewEnv()
	if _, ok := parseSource(t, "(void)", env).(*ast.VoidCall); !ok {
		t.Fatalf("void call did not lower")
	}
	if _, ok := parseSource(t, "(exit)", env).(*ast.ExitCall); !ok {
		t.Fatalf("exit call did not lower")
	}
}

func TestPlaceholderBindingsDoNotLeak(t *testing.T) {
	env := runtime.NewEnv()
	parseSource(t, "(lambda (x) x)", env)
	if _, ok := env.Lookup("x"); ok {
		t.Fatalf("parse-time placeholder leaked into the caller environment")
	}
}
