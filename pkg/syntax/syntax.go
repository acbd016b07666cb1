package syntax

import (
	"fmt"
	"strings"
)

// NodeType identifies the read-tree node category.
type NodeType string

const (
	NodeInteger  NodeType = "Integer"
	NodeRational NodeType = "Rational"
	NodeBoolean  NodeType = "Boolean"
	NodeString   NodeType = "String"
	NodeSymbol   NodeType = "Symbol"
	NodeList     NodeType = "List"
)

// Node is the shared behaviour for all read-tree nodes. The reader produces
// these; the parser lowers them into expressions and quote embeds them raw.
type Node interface {
	NodeType() NodeType
	String() string
	isNode()
}

type nodeImpl struct{}

func (nodeImpl) isNode() {}

// Integer is a fixed-width integer literal.
type Integer struct {
	nodeImpl
	Value int64
}

func NewInteger(v int64) *Integer { return &Integer{Value: v} }

func (*Integer) NodeType() NodeType { return NodeInteger }
func (n *Integer) String() string   { return fmt.Sprintf("%d", n.Value) }

// Rational is a num/den literal. The reader only produces strictly positive
// denominators.
type Rational struct {
	nodeImpl
	Numerator   int64
	Denominator int64
}

func NewRational(num, den int64) *Rational { return &Rational{Numerator: num, Denominator: den} }

func (*Rational) NodeType() NodeType { return NodeRational }
func (n *Rational) String() string   { return fmt.Sprintf("%d/%d", n.Numerator, n.Denominator) }

// Boolean is a #t / #f literal.
type Boolean struct {
	nodeImpl
	Value bool
}

func NewBoolean(v bool) *Boolean { return &Boolean{Value: v} }

func (*Boolean) NodeType() NodeType { return NodeBoolean }
func (n *Boolean) String() string {
	if n.Value {
		return "#t"
	}
	return "#f"
}

// String is a double-quoted string literal, already unescaped.
type String struct {
	nodeImpl
	Value string
}

func NewString(v string) *String { return &String{Value: v} }

func (*String) NodeType() NodeType { return NodeString }
func (n *String) String() string   { return fmt.Sprintf("%q", n.Value) }

// Symbol is an identifier token.
type Symbol struct {
	nodeImpl
	Name string
}

func NewSymbol(name string) *Symbol { return &Symbol{Name: name} }

func (*Symbol) NodeType() NodeType { return NodeSymbol }
func (n *Symbol) String() string   { return n.Name }

// List is an ordered sequence of nodes. Dotted pairs are represented by a
// "." symbol in the penultimate position; the quote rule splices them.
type List struct {
	nodeImpl
	Items []Node
}

func NewList(items ...Node) *List { return &List{Items: items} }

func (*List) NodeType() NodeType { return NodeList }
func (n *List) String() string {
	parts := make([]string, len(n.Items))
	for i, item := range n.Items {
		parts[i] = item.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}
