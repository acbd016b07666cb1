package parser

import (
	"scheme/interpreter-go/pkg/ast"
	"scheme/interpreter-go/pkg/runtime"
	"scheme/interpreter-go/pkg/syntax"
)

// Parse lowers a read-tree node into an expression tree. The environment
// decides whether a head symbol is a user binding (ordinary application), a
// primitive, or a special form: a binding always wins, so user definitions
// shadow built-ins.
func Parse(node syntax.Node, env *runtime.Env) (ast.Expr, error) {
	switch n := node.(type) {
	case *syntax.Integer:
		return ast.NewIntegerLiteral(n.Value), nil
	case *syntax.Rational:
		return ast.NewRationalLiteral(n.Numerator, n.Denominator), nil
	case *syntax.Boolean:
		return ast.NewBooleanLiteral(n.Value), nil
	case *syntax.String:
		return ast.NewStringLiteral(n.Value), nil
	case *syntax.Symbol:
		// A lone symbol is always a variable reference; primitives are
		// resolved only in operator position (or lifted at evaluation).
		return ast.NewVariable(n.Name), nil
	case *syntax.List:
		return parseList(n, env)
	default:
		return nil, runtime.Errorf("unknown syntax node %s", node.NodeType())
	}
}

func parseList(list *syntax.List, env *runtime.Env) (ast.Expr, error) {
	if len(list.Items) == 0 {
		// () reads as (quote ()).
		return ast.NewQuote(syntax.NewList()), nil
	}

	head, isSymbol := list.Items[0].(*syntax.Symbol)
	if !isSymbol {
		callee, err := Parse(list.Items[0], env)
		if err != nil {
			return nil, err
		}
		args, err := parseItems(list.Items[1:], env)
		if err != nil {
			return nil, err
		}
		return ast.NewCall(callee, args), nil
	}

	// A binding in scope shadows primitives and reserved words.
	if _, bound := env.Lookup(head.Name); bound {
		args, err := parseItems(list.Items[1:], env)
		if err != nil {
			return nil, err
		}
		return ast.NewCall(ast.NewVariable(head.Name), args), nil
	}

	if spec, ok := ast.LookupPrimitive(head.Name); ok {
		return parsePrimitive(head.Name, spec, list.Items[1:], env)
	}

	if ast.IsSpecialForm(head.Name) {
		return parseSpecialForm(head.Name, list, env)
	}

	args, err := parseItems(list.Items[1:], env)
	if err != nil {
		return nil, err
	}
	return ast.NewCall(ast.NewVariable(head.Name), args), nil
}

func parseItems(items []syntax.Node, env *runtime.Env) ([]ast.Expr, error) {
	out := make([]ast.Expr, 0, len(items))
	for _, item := range items {
		expr, err := Parse(item, env)
		if err != nil {
			return nil, err
		}
		out = append(out, expr)
	}
	return out, nil
}

// parsePrimitive lowers an operator call site per the arity table: fixed
// arities map to unary/binary nodes (or the zero-argument void/exit nodes),
// the pair class fuses exactly-two call sites into a binary node and routes
// everything else through the variadic node, and unconstrained operators
// always go variadic. and/or get their own lazy nodes.
func parsePrimitive(name string, spec ast.OpSpec, operands []syntax.Node, env *runtime.Env) (ast.Expr, error) {
	args, err := parseItems(operands, env)
	if err != nil {
		return nil, err
	}

	switch spec.Op {
	case ast.OpAnd:
		return ast.NewAnd(args), nil
	case ast.OpOr:
		return ast.NewOr(args), nil
	}

	switch spec.Class {
	case ast.ArityFixed:
		if len(args) != spec.Count {
			return nil, runtime.Errorf("wrong number of arguments for %s", name)
		}
		switch spec.Count {
		case 0:
			if spec.Op == ast.OpExit {
				return ast.NewExitCall(), nil
			}
			return ast.NewVoidCall(), nil
		case 1:
			return ast.NewUnaryOp(spec.Op, args[0]), nil
		default:
			return ast.NewBinaryOp(spec.Op, args[0], args[1]), nil
		}
	case ast.ArityPair:
		if len(args) < spec.Count {
			return nil, runtime.Errorf("wrong number of arguments for %s", name)
		}
		if len(args) == 2 {
			return ast.NewBinaryOp(spec.Op, args[0], args[1]), nil
		}
		return ast.NewVariadicOp(spec.Op, args), nil
	default:
		return ast.NewVariadicOp(spec.Op, args), nil
	}
}
