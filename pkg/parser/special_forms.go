package parser

import (
	"scheme/interpreter-go/pkg/ast"
	"scheme/interpreter-go/pkg/runtime"
	"scheme/interpreter-go/pkg/syntax"
)

func parseSpecialForm(name string, list *syntax.List, env *runtime.Env) (ast.Expr, error) {
	switch name {
	case "begin":
		return parseBegin(list, env)
	case "quote":
		return parseQuote(list)
	case "if":
		return parseIf(list, env)
	case "cond":
		return parseCond(list, env)
	case "lambda":
		return parseLambda(list, env)
	case "define":
		return parseDefine(list, env)
	case "let":
		return parseLet(list, env)
	case "letrec":
		return parseLetrec(list, env)
	case "set!":
		return parseSet(list, env)
	default:
		return nil, runtime.Errorf("unknown reserved word: %s", name)
	}
}

func parseBegin(list *syntax.List, env *runtime.Env) (ast.Expr, error) {
	body, err := parseItems(list.Items[1:], env)
	if err != nil {
		return nil, err
	}
	return ast.NewBegin(body), nil
}

func parseQuote(list *syntax.List) (ast.Expr, error) {
	if len(list.Items) != 2 {
		return nil, runtime.Errorf("wrong number of arguments for quote")
	}
	return ast.NewQuote(list.Items[1]), nil
}

func parseIf(list *syntax.List, env *runtime.Env) (ast.Expr, error) {
	if len(list.Items) != 4 {
		return nil, runtime.Errorf("wrong number of arguments for if")
	}
	cond, err := Parse(list.Items[1], env)
	if err != nil {
		return nil, err
	}
	then, err := Parse(list.Items[2], env)
	if err != nil {
		return nil, err
	}
	els, err := Parse(list.Items[3], env)
	if err != nil {
		return nil, err
	}
	return ast.NewIf(cond, then, els), nil
}

func parseCond(list *syntax.List, env *runtime.Env) (ast.Expr, error) {
	if len(list.Items) < 2 {
		return nil, runtime.Errorf("no clauses for cond")
	}
	clauses := make([]ast.CondClause, 0, len(list.Items)-1)
	for _, item := range list.Items[1:] {
		sub, ok := item.(*syntax.List)
		if !ok || len(sub.Items) == 0 {
			return nil, runtime.Errorf("wrong clause in cond")
		}
		items, err := parseItems(sub.Items, env)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, ast.CondClause{Items: items})
	}
	return ast.NewCond(clauses), nil
}

// parseParams requires a list of distinct symbols.
func parseParams(node syntax.Node, form string) ([]string, error) {
	list, ok := node.(*syntax.List)
	if !ok {
		return nil, runtime.Errorf("invalid parameter list in %s", form)
	}
	params := make([]string, 0, len(list.Items))
	seen := make(map[string]struct{}, len(list.Items))
	for _, item := range list.Items {
		sym, ok := item.(*syntax.Symbol)
		if !ok {
			return nil, runtime.Errorf("invalid parameter in %s", form)
		}
		if _, dup := seen[sym.Name]; dup {
			return nil, runtime.Errorf("duplicate parameter in %s", form)
		}
		seen[sym.Name] = struct{}{}
		params = append(params, sym.Name)
	}
	return params, nil
}

// parseBody parses a body sequence in the given scope and wraps multiple
// expressions in a begin node.
func parseBody(items []syntax.Node, env *runtime.Env) (ast.Expr, error) {
	body, err := parseItems(items, env)
	if err != nil {
		return nil, err
	}
	if len(body) == 1 {
		return body[0], nil
	}
	return ast.NewBegin(body), nil
}

// placeholderScope forks the environment and binds each name to a throwaway
// value so the shadowing check answers "bound" for names the surrounding
// form introduces. The placeholders never participate in evaluation.
func placeholderScope(env *runtime.Env, names ...string) *runtime.Env {
	inner := env.Fork()
	for _, name := range names {
		inner.Define(name, runtime.VoidValue{})
	}
	return inner
}

func parseLambda(list *syntax.List, env *runtime.Env) (ast.Expr, error) {
	if len(list.Items) < 3 {
		return nil, runtime.Errorf("wrong number of arguments for lambda")
	}
	params, err := parseParams(list.Items[1], "lambda")
	if err != nil {
		return nil, err
	}
	body, err := parseBody(list.Items[2:], placeholderScope(env, params...))
	if err != nil {
		return nil, err
	}
	return ast.NewLambda(params, body), nil
}

func parseDefine(list *syntax.List, env *runtime.Env) (ast.Expr, error) {
	if len(list.Items) < 3 {
		return nil, runtime.Errorf("wrong number of arguments for define")
	}

	// Function sugar: (define (fname p ...) body ...).
	if sig, ok := list.Items[1].(*syntax.List); ok {
		if len(sig.Items) == 0 {
			return nil, runtime.Errorf("invalid function signature in define")
		}
		nameSym, ok := sig.Items[0].(*syntax.Symbol)
		if !ok {
			return nil, runtime.Errorf("invalid function name in define")
		}
		params, err := parseParams(syntax.NewList(sig.Items[1:]...), "define")
		if err != nil {
			return nil, err
		}
		scope := placeholderScope(env, append([]string{nameSym.Name}, params...)...)
		body, err := parseBody(list.Items[2:], scope)
		if err != nil {
			return nil, err
		}
		return ast.NewDefine(nameSym.Name, ast.NewLambda(params, body)), nil
	}

	nameSym, ok := list.Items[1].(*syntax.Symbol)
	if !ok {
		return nil, runtime.Errorf("invalid variable name in define")
	}
	// Extra right-hand expressions wrap in begin: (define x 1 2 3) is legal.
	init, err := parseBody(list.Items[2:], env)
	if err != nil {
		return nil, err
	}
	return ast.NewDefine(nameSym.Name, init), nil
}

func parseBindings(node syntax.Node, env *runtime.Env, form string) ([]ast.Binding, []string, error) {
	list, ok := node.(*syntax.List)
	if !ok {
		return nil, nil, runtime.Errorf("invalid binding list in %s", form)
	}
	bindings := make([]ast.Binding, 0, len(list.Items))
	names := make([]string, 0, len(list.Items))
	for _, item := range list.Items {
		kv, ok := item.(*syntax.List)
		if !ok || len(kv.Items) != 2 {
			return nil, nil, runtime.Errorf("wrong binding in %s", form)
		}
		nameSym, ok := kv.Items[0].(*syntax.Symbol)
		if !ok {
			return nil, nil, runtime.Errorf("invalid %s variable", form)
		}
		init, err := Parse(kv.Items[1], env)
		if err != nil {
			return nil, nil, err
		}
		bindings = append(bindings, ast.Binding{Name: nameSym.Name, Init: init})
		names = append(names, nameSym.Name)
	}
	return bindings, names, nil
}

func parseLet(list *syntax.List, env *runtime.Env) (ast.Expr, error) {
	if len(list.Items) < 3 {
		return nil, runtime.Errorf("wrong number of arguments for let")
	}
	// Right-hand sides see the outer scope; only the body sees the names.
	bindings, names, err := parseBindings(list.Items[1], env, "let")
	if err != nil {
		return nil, err
	}
	body, err := parseBody(list.Items[2:], placeholderScope(env, names...))
	if err != nil {
		return nil, err
	}
	return ast.NewLet(bindings, body), nil
}

func parseLetrec(list *syntax.List, env *runtime.Env) (ast.Expr, error) {
	if len(list.Items) < 3 {
		return nil, runtime.Errorf("wrong number of arguments for letrec")
	}
	binds, ok := list.Items[1].(*syntax.List)
	if !ok {
		return nil, runtime.Errorf("invalid binding list in letrec")
	}
	// Every bound name is in scope before any right-hand side parses, so
	// the initializers can reference each other.
	var names []string
	for _, item := range binds.Items {
		kv, ok := item.(*syntax.List)
		if !ok || len(kv.Items) != 2 {
			return nil, runtime.Errorf("wrong binding in letrec")
		}
		nameSym, ok := kv.Items[0].(*syntax.Symbol)
		if !ok {
			return nil, runtime.Errorf("invalid letrec variable")
		}
		names = append(names, nameSym.Name)
	}
	scope := placeholderScope(env, names...)
	bindings, _, err := parseBindings(list.Items[1], scope, "letrec")
	if err != nil {
		return nil, err
	}
	body, err := parseBody(list.Items[2:], scope)
	if err != nil {
		return nil, err
	}
	return ast.NewLetrec(bindings, body), nil
}

func parseSet(list *syntax.List, env *runtime.Env) (ast.Expr, error) {
	if len(list.Items) != 3 {
		return nil, runtime.Errorf("wrong number of arguments for set!")
	}
	nameSym, ok := list.Items[1].(*syntax.Symbol)
	if !ok {
		return nil, runtime.Errorf("invalid variable name in set!")
	}
	value, err := Parse(list.Items[2], env)
	if err != nil {
		return nil, err
	}
	return ast.NewSet(nameSym.Name, value), nil
}
