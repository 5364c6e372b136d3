package multinode

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/mveres/algebra/pkg/ast"
)

// ToBinary converts a multinode tree back into binary form. TermMulti
// children are put into a deterministic order first, so the output is
// canonical regardless of the order factors appeared in the source.
func ToBinary(n Node) (ast.Expr, error) {
	if n == nil {
		return nil, ErrEmptyTree
	}
	switch m := n.(type) {
	case Number:
		return ast.Number{Pos: m.Pos, Value: m.Value}, nil
	case Variable:
		return ast.Variable{Pos: m.Pos, Name: m.Name}, nil
	case Const:
		return ast.Const{Pos: m.Pos, Which: m.Which}, nil
	case UnaryMinus:
		child, err := ToBinary(m.Child)
		if err != nil {
			return nil, err
		}
		return ast.UnaryMinus{Pos: m.Pos, Child: child}, nil
	case Power:
		base, err := ToBinary(m.Base)
		if err != nil {
			return nil, err
		}
		exp, err := ToBinary(m.Exp)
		if err != nil {
			return nil, err
		}
		return ast.BinOp{Pos: m.Pos, Op: ast.OpPow, Left: base, Right: exp}, nil
	case Funct:
		arg, err := ToBinary(m.Arg)
		if err != nil {
			return nil, err
		}
		return ast.Funct{Pos: m.Pos, Which: m.Which, Arg: arg}, nil
	case CompareOp:
		left, err := ToBinary(m.Left)
		if err != nil {
			return nil, err
		}
		right, err := ToBinary(m.Right)
		if err != nil {
			return nil, err
		}
		return ast.CompareOp{Pos: m.Pos, Op: m.Op, Left: left, Right: right}, nil
	case BoolOp:
		left, err := ToBinary(m.Left)
		if err != nil {
			return nil, err
		}
		right, err := ToBinary(m.Right)
		if err != nil {
			return nil, err
		}
		return ast.BoolOp{Pos: m.Pos, Op: m.Op, Left: left, Right: right}, nil
	case ExprMulti:
		return exprMultiToBinary(m)
	case TermMulti:
		return termMultiToBinary(m)
	}
	return nil, fmt.Errorf("%w: %T", ErrUnknownNode, n)
}

// exprMultiToBinary re-folds summands left to right, spending a unary
// minus on a leading negative child.
func exprMultiToBinary(m ExprMulti) (ast.Expr, error) {
	if len(m.Children) == 0 {
		return nil, ErrEmptyTree
	}
	var acc ast.Expr
	for i, h := range m.Children {
		child, err := ToBinary(h.Child)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			if h.Sign == Minus {
				acc = ast.UnaryMinus{Pos: -1, Child: child}
			} else {
				acc = child
			}
			continue
		}
		op := ast.OpAdd
		if h.Sign == Minus {
			op = ast.OpSub
		}
		acc = ast.BinOp{Pos: -1, Op: op, Left: acc, Right: child}
	}
	return acc, nil
}

// termMultiToBinary re-folds factors into one left-leaning product per
// role, dividing when denominators exist. A term with only
// denominators gets a synthesized numerator of one.
func termMultiToBinary(m TermMulti) (ast.Expr, error) {
	children := sortedChildren(m)

	var num, den ast.Expr
	for _, h := range children {
		child, err := ToBinary(h.Child)
		if err != nil {
			return nil, err
		}
		if h.Role == Denominator {
			den = mulOnto(den, child)
		} else {
			num = mulOnto(num, child)
		}
	}
	if num == nil {
		num = ast.Number{Pos: -1, Value: "1"}
	}
	if den == nil {
		return num, nil
	}
	return ast.BinOp{Pos: -1, Op: ast.OpDiv, Left: num, Right: den}, nil
}

func mulOnto(acc, child ast.Expr) ast.Expr {
	if acc == nil {
		return child
	}
	return ast.BinOp{Pos: -1, Op: ast.OpMul, Left: acc, Right: child}
}

// childClass orders kinds within a role: numbers, constants,
// variables, everything else.
func childClass(n Node) int {
	switch n.(type) {
	case Number:
		return 0
	case Const:
		return 1
	case Variable:
		return 2
	}
	return 3
}

// sortedChildren applies the canonical term order: numerators before
// denominators; within a role numbers ascending by value, then
// constants, then variables ascending by first code point, then
// everything else keeping its original order.
func sortedChildren(m TermMulti) []TermHolder {
	out := make([]TermHolder, len(m.Children))
	copy(out, m.Children)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Role != out[j].Role {
			return out[i].Role == Numerator
		}
		ci, cj := childClass(out[i].Child), childClass(out[j].Child)
		if ci != cj {
			return ci < cj
		}
		switch ci {
		case 0:
			vi, erri := strconv.ParseFloat(out[i].Child.(Number).Value, 64)
			vj, errj := strconv.ParseFloat(out[j].Child.(Number).Value, 64)
			if erri != nil || errj != nil {
				return false
			}
			return vi < vj
		case 2:
			return out[i].Child.(Variable).Name[0] < out[j].Child.(Variable).Name[0]
		}
		return false
	})
	return out
}
