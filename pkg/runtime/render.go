package runtime

import (
	"fmt"
	"strings"
)

// Render produces the textual form of a value: booleans as #t/#f, rationals
// as n/d (denominator-1 rationals as plain integers), pairs as (a b c) or
// (a b . c), the empty list as (), procedures as an opaque tag.
func Render(v Value) string {
	var sb strings.Builder
	writeValue(&sb, v)
	return sb.String()
}

func writeValue(sb *strings.Builder, v Value) {
	switch val := v.(type) {
	case IntegerValue:
		fmt.Fprintf(sb, "%d", val.Val)
	case RationalValue:
		if val.Den == 1 {
			fmt.Fprintf(sb, "%d", val.Num)
		} else {
			fmt.Fprintf(sb, "%d/%d", val.Num, val.Den)
		}
	case BoolValue:
		if val.Val {
			sb.WriteString("#t")
		} else {
			sb.WriteString("#f")
		}
	case SymbolValue:
		sb.WriteString(val.Name)
	case *StringValue:
		writeQuotedString(sb, val.Val)
	case NullValue:
		sb.WriteString("()")
	case *PairValue:
		sb.WriteByte('(')
		writeValue(sb, val.Car)
		writeCdr(sb, val.Cdr)
	case *ProcedureValue:
		sb.WriteString("#<procedure>")
	case VoidValue:
		sb.WriteString("#<void>")
	default:
		fmt.Fprintf(sb, "#<%s>", v.Kind())
	}
}

func writeCdr(sb *strings.Builder, v Value) {
	switch val := v.(type) {
	case NullValue:
		sb.WriteByte(')')
	case *PairValue:
		sb.WriteByte(' ')
		writeValue(sb, val.Car)
		writeCdr(sb, val.Cdr)
	default:
		sb.WriteString(" . ")
		writeValue(sb, v)
		sb.WriteByte(')')
	}
}

func writeQuotedString(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
}
