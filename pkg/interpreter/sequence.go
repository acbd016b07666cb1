package interpreter

import (
	"scheme/interpreter-go/pkg/ast"
	"scheme/interpreter-go/pkg/runtime"
)

// DefineBatch collects adjacent definitions so they evaluate against a
// common scope: every pending name is bound before any right-hand side runs
// (to void, unless it already has a binding), giving mutual recursion. Both begin evaluation and the
// top-level driver flush through this one helper.
type DefineBatch struct {
	defs []*ast.Define
}

func (b *DefineBatch) Add(def *ast.Define) {
	b.defs = append(b.defs, def)
}

func (b *DefineBatch) Empty() bool {
	return len(b.defs) == 0
}

// Reset discards pending definitions; the driver calls it when a form
// fails so per-form state does not leak into the next read.
func (b *DefineBatch) Reset() {
	b.defs = nil
}

// Flush pre-binds every pending name (reusing an existing cell when the
// name is already bound), then evaluates each initializer in that shared
// scope and assigns the result back in order. Pending state is discarded
// whether or not an initializer fails.
func (b *DefineBatch) Flush(in *Interpreter, env *runtime.Env) error {
	defs := b.defs
	b.defs = nil
	for _, def := range defs {
		if _, bound := env.Lookup(def.Name); !bound {
			env.Define(def.Name, runtime.VoidValue{})
		}
	}
	for _, def := range defs {
		val, err := in.Evaluate(def.Init, env)
		if err != nil {
			return err
		}
		env.Assign(def.Name, val)
	}
	return nil
}

// EvaluateSequence runs an ordered expression sequence, batching adjacent
// defines and flushing the batch before any other expression executes. The
// terminate sentinel stops the sequence and flows upward.
func (in *Interpreter) EvaluateSequence(exprs []ast.Expr, env *runtime.Env) (runtime.Value, error) {
	var batch DefineBatch
	var last runtime.Value = runtime.VoidValue{}
	for _, e := range exprs {
		if def, ok := e.(*ast.Define); ok {
			batch.Add(def)
			continue
		}
		if err := batch.Flush(in, env); err != nil {
			return nil, err
		}
		val, err := in.Evaluate(e, env)
		if err != nil {
			return nil, err
		}
		if val.Kind() == runtime.KindTerminate {
			return val, nil
		}
		last = val
	}
	if err := batch.Flush(in, env); err != nil {
		return nil, err
	}
	return last, nil
}
