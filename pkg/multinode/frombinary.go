package multinode

import (
	"fmt"

	"github.com/mveres/algebra/pkg/ast"
)

// FromBinary converts a binary AST into multinode form.
func FromBinary(e ast.Expr) (Node, error) {
	if e == nil {
		return nil, ErrEmptyTree
	}
	switch n := e.(type) {
	case ast.BoolOp:
		left, err := FromBinary(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := FromBinary(n.Right)
		if err != nil {
			return nil, err
		}
		return BoolOp{Pos: n.Pos, Op: n.Op, Left: left, Right: right}, nil
	case ast.CompareOp:
		left, err := FromBinary(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := FromBinary(n.Right)
		if err != nil {
			return nil, err
		}
		return CompareOp{Pos: n.Pos, Op: n.Op, Left: left, Right: right}, nil
	}
	return exprLevel(e)
}

// signedLeaf is a collected summand before its child is converted.
type signedLeaf struct {
	sign Sign
	expr ast.Expr
}

// collectTerms gathers the leaves of the contiguous top-level chain of
// +, - and unary minus. Crossing the right side of a subtraction or a
// unary minus flips the sign of everything below it.
func collectTerms(e ast.Expr, sign Sign, out *[]signedLeaf) {
	switch n := e.(type) {
	case ast.BinOp:
		switch n.Op {
		case ast.OpAdd:
			collectTerms(n.Left, sign, out)
			collectTerms(n.Right, sign, out)
			return
		case ast.OpSub:
			collectTerms(n.Left, sign, out)
			collectTerms(n.Right, sign.Flip(), out)
			return
		}
	case ast.UnaryMinus:
		collectTerms(n.Child, sign.Flip(), out)
		return
	}
	*out = append(*out, signedLeaf{sign: sign, expr: e})
}

// exprLevel collapses the additive chain rooted at e. A single-leaf
// chain gets no wrapper; a lone negative leaf becomes a unary minus.
func exprLevel(e ast.Expr) (Node, error) {
	var leaves []signedLeaf
	collectTerms(e, Plus, &leaves)

	if len(leaves) == 1 {
		child, err := termLevel(leaves[0].expr)
		if err != nil {
			return nil, err
		}
		if leaves[0].sign == Minus {
			return UnaryMinus{Pos: -1, Child: child}, nil
		}
		return child, nil
	}

	holders := make([]ExprHolder, 0, len(leaves))
	for _, leaf := range leaves {
		child, err := termLevel(leaf.expr)
		if err != nil {
			return nil, err
		}
		holders = append(holders, ExprHolder{Sign: leaf.sign, Child: child})
	}
	return ExprMulti{Pos: e.StartPos(), Children: holders}, nil
}

// roledLeaf is a collected factor before its child is converted.
type roledLeaf struct {
	role Role
	expr ast.Expr
}

// collectFactors gathers the leaves of the contiguous top-level chain
// of *, implicit * and /. Everything below the right side of a
// division flips between numerator and denominator.
func collectFactors(e ast.Expr, role Role, out *[]roledLeaf) {
	if n, ok := e.(ast.BinOp); ok {
		switch {
		case n.Op.IsMultiplicative():
			collectFactors(n.Left, role, out)
			collectFactors(n.Right, role, out)
			return
		case n.Op == ast.OpDiv:
			collectFactors(n.Left, role, out)
			collectFactors(n.Right, role.Flip(), out)
			return
		}
	}
	*out = append(*out, roledLeaf{role: role, expr: e})
}

// termLevel collapses the multiplicative chain rooted at e, which has
// no additive operator at its top.
func termLevel(e ast.Expr) (Node, error) {
	var leaves []roledLeaf
	collectFactors(e, Numerator, &leaves)

	if len(leaves) == 1 {
		return atomLevel(leaves[0].expr)
	}

	holders := make([]TermHolder, 0, len(leaves))
	for _, leaf := range leaves {
		child, err := atomLevel(leaf.expr)
		if err != nil {
			return nil, err
		}
		holders = append(holders, TermHolder{Role: leaf.role, Child: child})
	}
	return TermMulti{Pos: e.StartPos(), Children: holders}, nil
}

// atomLevel converts a chain leaf. Leaves that are themselves additive
// subtrees (parenthesized sums, unary minus, boolean nodes) re-enter
// the full transform.
func atomLevel(e ast.Expr) (Node, error) {
	switch n := e.(type) {
	case ast.Number:
		return Number{Pos: n.Pos, Value: n.Value}, nil
	case ast.Variable:
		return Variable{Pos: n.Pos, Name: n.Name}, nil
	case ast.Const:
		return Const{Pos: n.Pos, Which: n.Which}, nil
	case ast.BinOp:
		if n.Op == ast.OpPow {
			base, err := FromBinary(n.Left)
			if err != nil {
				return nil, err
			}
			exp, err := FromBinary(n.Right)
			if err != nil {
				return nil, err
			}
			return Power{Pos: n.Pos, Base: base, Exp: exp}, nil
		}
		return FromBinary(e)
	case ast.Funct:
		arg, err := FromBinary(n.Arg)
		if err != nil {
			return nil, err
		}
		return Funct{Pos: n.Pos, Which: n.Which, Arg: arg}, nil
	case ast.UnaryMinus, ast.CompareOp, ast.BoolOp:
		return FromBinary(e)
	}
	return nil, fmt.Errorf("%w: %T", ErrUnknownNode, e)
}
