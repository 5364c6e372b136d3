// Package ast provides tree printing for debug dumps.
package ast

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented dump of the tree to w.
func Fprint(w io.Writer, e Expr) {
	printNode(w, e, 0)
}

func printNode(w io.Writer, e Expr, indent int) {
	pad := strings.Repeat("  ", indent)
	switch n := e.(type) {
	case Number:
		fmt.Fprintf(w, "%sNumber %s\n", pad, n.Value)
	case Variable:
		fmt.Fprintf(w, "%sVariable %s\n", pad, n.Name)
	case Const:
		fmt.Fprintf(w, "%sConst %s\n", pad, n.Which)
	case UnaryMinus:
		fmt.Fprintf(w, "%sUnaryMinus\n", pad)
		printNode(w, n.Child, indent+1)
	case BinOp:
		op := n.Op.String()
		if n.Op == OpImpMul {
			op = "implicit *"
		}
		fmt.Fprintf(w, "%sBinOp %s\n", pad, op)
		printNode(w, n.Left, indent+1)
		printNode(w, n.Right, indent+1)
	case CompareOp:
		fmt.Fprintf(w, "%sCompareOp %s\n", pad, n.Op)
		printNode(w, n.Left, indent+1)
		printNode(w, n.Right, indent+1)
	case BoolOp:
		fmt.Fprintf(w, "%sBoolOp %s\n", pad, n.Op)
		printNode(w, n.Left, indent+1)
		printNode(w, n.Right, indent+1)
	case Funct:
		fmt.Fprintf(w, "%sFunct %s\n", pad, n.Which)
		printNode(w, n.Arg, indent+1)
	default:
		fmt.Fprintf(w, "%s<unknown %T>\n", pad, e)
	}
}
