package repl

import (
	"fmt"
	"io"

	"scheme/interpreter-go/pkg/ast"
	"scheme/interpreter-go/pkg/interpreter"
	"scheme/interpreter-go/pkg/parser"
	"scheme/interpreter-go/pkg/runtime"
	"scheme/interpreter-go/pkg/syntax"
)

// REPL is the top-level read–parse–evaluate–print loop. Adjacent top-level
// defines batch into one scope so they can be mutually recursive; every
// failure prints a single RuntimeError line and the loop continues.
type REPL struct {
	Reader *syntax.Reader
	Out    io.Writer
	// Prompt runs before each top-level read; nil suppresses prompting.
	Prompt func()

	interp *interpreter.Interpreter
	global *runtime.Env
	batch  interpreter.DefineBatch
}

// New builds a REPL whose display output and printed results share out.
func New(in *syntax.Reader, out io.Writer) *REPL {
	interp := interpreter.New()
	interp.Out = out
	return &REPL{
		Reader: in,
		Out:    out,
		interp: interp,
		global: runtime.NewEnv(),
	}
}

// Run loops until the terminate value is produced or input is exhausted.
func (r *REPL) Run() error {
	for {
		if r.Prompt != nil {
			r.Prompt()
		}
		node, err := r.Reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			r.fail()
			continue
		}
		done, err := r.handle(node)
		if err != nil {
			r.fail()
			continue
		}
		if done {
			return nil
		}
	}
}

// handle processes one top-level form; done reports the terminate value.
func (r *REPL) handle(node syntax.Node) (bool, error) {
	expr, err := parser.Parse(node, r.global)
	if err != nil {
		return false, err
	}

	if def, ok := expr.(*ast.Define); ok {
		r.batch.Add(def)
		fmt.Fprintln(r.Out)
		return false, nil
	}
	if !r.batch.Empty() {
		if err := r.batch.Flush(r.interp, r.global); err != nil {
			return false, err
		}
	}

	val, err := r.interp.Evaluate(expr, r.global)
	if err != nil {
		return false, err
	}
	if val.Kind() == runtime.KindTerminate {
		return true, nil
	}

	if val.Kind() == runtime.KindVoid && !isExplicitVoidCall(expr) {
		fmt.Fprintln(r.Out)
	} else {
		fmt.Fprintln(r.Out, runtime.Render(val))
	}
	return false, nil
}

// fail prints the diagnostic and resets per-form state.
func (r *REPL) fail() {
	r.batch.Reset()
	fmt.Fprintln(r.Out, "RuntimeError")
}

// isExplicitVoidCall reports whether the expression's value is void because
// the user asked for void: a direct void invocation, or a begin/if/cond
// whose reachable tail is one. Implicit voids print as a blank line instead
// of #<void>.
func isExplicitVoidCall(expr ast.Expr) bool {
	switch n := expr.(type) {
	case *ast.VoidCall:
		return true
	case *ast.Call:
		if v, ok := n.Callee.(*ast.Variable); ok && v.Name == "void" {
			return true
		}
	case *ast.Begin:
		if len(n.Body) > 0 {
			return isExplicitVoidCall(n.Body[len(n.Body)-1])
		}
	case *ast.If:
		return isExplicitVoidCall(n.Then) || isExplicitVoidCall(n.Else)
	case *ast.Cond:
		for _, clause := range n.Clauses {
			if len(clause.Items) > 0 && isExplicitVoidCall(clause.Items[len(clause.Items)-1]) {
				return true
			}
		}
	}
	return false
}
