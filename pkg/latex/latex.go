// Package latex renders binary and multinode expression trees as
// LaTeX, re-introducing the parentheses that traditional notation
// requires around lower-precedence children.
package latex

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mveres/algebra/pkg/ast"
)

// Errors returned by the emitters.
var (
	ErrNoTree          = errors.New("latex: no parse tree")
	ErrUnknownNode     = errors.New("latex: unknown node kind")
	ErrUnknownFunction = errors.New("latex: unknown function")
	ErrUnknownConst    = errors.New("latex: unknown math constant")
)

var funcCommands = map[ast.FuncKind]string{
	ast.FnExp:  `\exp`,
	ast.FnLn:   `\ln`,
	ast.FnLog:  `\lg`,
	ast.FnSin:  `\sin`,
	ast.FnCos:  `\cos`,
	ast.FnTan:  `\tan`,
	ast.FnAsin: `\arcsin`,
	ast.FnAcos: `\arccos`,
	ast.FnAtan: `\arctan`,
}

var cmpCommands = map[ast.CompareKind]string{
	ast.CmpEq: `=`,
	ast.CmpGt: `>`,
	ast.CmpGe: `\geq `,
	ast.CmpLt: `<`,
	ast.CmpLe: `\leq `,
	ast.CmpNe: `\neq `,
}

// Emit renders a binary AST as LaTeX.
func Emit(e ast.Expr) (string, error) {
	if e == nil {
		return "", ErrNoTree
	}
	switch n := e.(type) {
	case ast.Number:
		return n.Value, nil
	case ast.Variable:
		return n.Name, nil
	case ast.Const:
		return constCommand(n.Which)
	case ast.UnaryMinus:
		s, err := emitChild(n.Child, parenUnaryChild(n.Child))
		if err != nil {
			return "", err
		}
		return "-" + s, nil
	case ast.BinOp:
		return emitBinOp(n)
	case ast.CompareOp:
		left, err := Emit(n.Left)
		if err != nil {
			return "", err
		}
		right, err := Emit(n.Right)
		if err != nil {
			return "", err
		}
		return left + cmpCommands[n.Op] + right, nil
	case ast.BoolOp:
		return emitBoolOp(n)
	case ast.Funct:
		s, err := Emit(n.Arg)
		if err != nil {
			return "", err
		}
		return renderFunct(n.Which, s)
	}
	return "", fmt.Errorf("%w: %T", ErrUnknownNode, e)
}

func constCommand(c ast.ConstKind) (string, error) {
	switch c {
	case ast.ConstE:
		return `\mathrm{e}`, nil
	case ast.ConstPi:
		return `\pi`, nil
	}
	return "", fmt.Errorf("%w: %d", ErrUnknownConst, c)
}

func emitChild(e ast.Expr, parens bool) (string, error) {
	s, err := Emit(e)
	if err != nil {
		return "", err
	}
	if parens {
		return `\left(` + s + `\right)`, nil
	}
	return s, nil
}

func emitBinOp(n ast.BinOp) (string, error) {
	switch n.Op {
	case ast.OpAdd:
		left, err := Emit(n.Left)
		if err != nil {
			return "", err
		}
		right, err := emitChild(n.Right, parenAddend(n.Right))
		if err != nil {
			return "", err
		}
		return left + "+" + right, nil

	case ast.OpSub:
		left, err := Emit(n.Left)
		if err != nil {
			return "", err
		}
		right, err := emitChild(n.Right, parenSubtrahend(n.Right))
		if err != nil {
			return "", err
		}
		return left + "-" + right, nil

	case ast.OpMul, ast.OpImpMul:
		left, err := emitChild(n.Left, parenMultiplicand(n.Left))
		if err != nil {
			return "", err
		}
		right, err := emitChild(n.Right, parenMultiplicator(n.Right))
		if err != nil {
			return "", err
		}
		sep := `\cdot `
		if n.Op == ast.OpImpMul {
			sep = ""
		}
		return left + sep + right, nil

	case ast.OpDiv:
		left, err := Emit(n.Left)
		if err != nil {
			return "", err
		}
		right, err := Emit(n.Right)
		if err != nil {
			return "", err
		}
		return `\frac{` + left + `}{` + right + `}`, nil

	case ast.OpPow:
		base, err := emitChild(n.Left, parenPowerBase(n.Left))
		if err != nil {
			return "", err
		}
		exp, err := Emit(n.Right)
		if err != nil {
			return "", err
		}
		return base + `^{` + exp + `}`, nil
	}
	return "", fmt.Errorf("%w: operator %d", ErrUnknownNode, n.Op)
}

func emitBoolOp(n ast.BoolOp) (string, error) {
	switch n.Op {
	case ast.BoolAnd:
		left, err := emitChild(n.Left, isOr(n.Left))
		if err != nil {
			return "", err
		}
		right, err := emitChild(n.Right, isOr(n.Right) || isAnd(n.Right))
		if err != nil {
			return "", err
		}
		return left + `\wedge ` + right, nil
	case ast.BoolOr:
		left, err := Emit(n.Left)
		if err != nil {
			return "", err
		}
		right, err := emitChild(n.Right, isOr(n.Right))
		if err != nil {
			return "", err
		}
		return left + `\vee ` + right, nil
	}
	return "", fmt.Errorf("%w: connective %d", ErrUnknownNode, n.Op)
}

// renderFunct renders a function application around an already
// rendered argument. sqrt and abs have their own delimiters; every
// other function gets explicit parentheses.
func renderFunct(which ast.FuncKind, s string) (string, error) {
	switch which {
	case ast.FnSqrt:
		return `\sqrt{` + s + `}`, nil
	case ast.FnAbs:
		return `\left|` + s + `\right|`, nil
	}
	cmd, ok := funcCommands[which]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnknownFunction, which)
	}
	return cmd + `\left(` + s + `\right)`, nil
}

// Parenthesization predicates over binary nodes.

func isAdd(e ast.Expr) bool {
	n, ok := e.(ast.BinOp)
	return ok && n.Op == ast.OpAdd
}

func isAddOrSub(e ast.Expr) bool {
	n, ok := e.(ast.BinOp)
	return ok && (n.Op == ast.OpAdd || n.Op == ast.OpSub)
}

func isMul(e ast.Expr) bool {
	n, ok := e.(ast.BinOp)
	return ok && n.Op.IsMultiplicative()
}

func isUnaryMinus(e ast.Expr) bool {
	_, ok := e.(ast.UnaryMinus)
	return ok
}

func isAnd(e ast.Expr) bool {
	n, ok := e.(ast.BoolOp)
	return ok && n.Op == ast.BoolAnd
}

func isOr(e ast.Expr) bool {
	n, ok := e.(ast.BoolOp)
	return ok && n.Op == ast.BoolOr
}

func parenMultiplicand(e ast.Expr) bool {
	return isAddOrSub(e)
}

func parenMultiplicator(e ast.Expr) bool {
	return isAddOrSub(e) || isUnaryMinus(e) || isMul(e)
}

func parenAddend(e ast.Expr) bool {
	return isAdd(e) || isUnaryMinus(e)
}

func parenSubtrahend(e ast.Expr) bool {
	return isAddOrSub(e) || isUnaryMinus(e)
}

func parenUnaryChild(e ast.Expr) bool {
	return isAddOrSub(e) || isUnaryMinus(e)
}

// parenPowerBase wraps every base that is not atomic or a function
// application.
func parenPowerBase(e ast.Expr) bool {
	switch e.(type) {
	case ast.Const, ast.Number, ast.Variable, ast.Funct:
		return false
	}
	return true
}

// joinCdot renders a list of fragments as a product.
func joinCdot(parts []string) string {
	if len(parts) == 0 {
		return "1"
	}
	return strings.Join(parts, `\cdot `)
}
