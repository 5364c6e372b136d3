// Package expand applies distributivity exhaustively to a multinode
// tree, turning products of sums into sums of products. Exponents are
// never distributed: (a+b)^2 stays as it is. Function arguments are
// expanded in place.
package expand

import (
	"errors"
	"strconv"

	"github.com/mveres/algebra/pkg/multinode"
)

// ErrExpectedTermMulti reports a product operand that should have been
// free of additive structure.
var ErrExpectedTermMulti = errors.New("expand: operand is an expression multinode")

// Expand rewrites n with all products of sums distributed.
func Expand(n multinode.Node) (multinode.Node, error) {
	switch m := n.(type) {
	case multinode.TermMulti:
		return expandTerm(m)
	case multinode.ExprMulti:
		return expandExpr(m)
	case multinode.Funct:
		arg, err := Expand(m.Arg)
		if err != nil {
			return nil, err
		}
		return multinode.Funct{Pos: m.Pos, Which: m.Which, Arg: arg}, nil
	}
	return n, nil
}

// expandTerm separates the numerator from the denominator, expands the
// factors on each side and folds them back with distributive products.
func expandTerm(m multinode.TermMulti) (multinode.Node, error) {
	var nums, dens []multinode.Node
	for _, h := range m.Children {
		if h.Role == multinode.Denominator {
			dens = append(dens, h.Child)
		} else {
			nums = append(nums, h.Child)
		}
	}

	num, err := foldProduct(nums)
	if err != nil {
		return nil, err
	}
	den, err := foldProduct(dens)
	if err != nil {
		return nil, err
	}

	if num == nil {
		num = multinode.Number{Pos: -1, Value: "1"}
	}
	if den == nil || isOne(den) {
		return num, nil
	}
	return multinode.TermMulti{Pos: -1, Children: []multinode.TermHolder{
		{Role: multinode.Numerator, Child: num},
		{Role: multinode.Denominator, Child: den},
	}}, nil
}

// expandExpr expands each summand in place, splicing nested sums into
// the parent with their signs flipped under a negative holder.
func expandExpr(m multinode.ExprMulti) (multinode.Node, error) {
	var holders []multinode.ExprHolder
	for _, h := range m.Children {
		child, err := Expand(h.Child)
		if err != nil {
			return nil, err
		}
		if sub, ok := child.(multinode.ExprMulti); ok {
			for _, sh := range sub.Children {
				sign := sh.Sign
				if h.Sign == multinode.Minus {
					sign = sign.Flip()
				}
				holders = append(holders, multinode.ExprHolder{Sign: sign, Child: sh.Child})
			}
			continue
		}
		holders = append(holders, multinode.ExprHolder{Sign: h.Sign, Child: child})
	}
	return multinode.ExprMulti{Pos: m.Pos, Children: holders}, nil
}

// foldProduct expands every factor and multiplies them left to right.
// It returns nil for an empty factor list.
func foldProduct(factors []multinode.Node) (multinode.Node, error) {
	if len(factors) == 0 {
		return nil, nil
	}
	acc, err := Expand(factors[0])
	if err != nil {
		return nil, err
	}
	for _, f := range factors[1:] {
		ex, err := Expand(f)
		if err != nil {
			return nil, err
		}
		acc, err = distributiveProduct(acc, ex)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// distributiveProduct multiplies two expanded operands, crossing the
// summands whenever an operand is a sum.
func distributiveProduct(n1, n2 multinode.Node) (multinode.Node, error) {
	e1, ok1 := n1.(multinode.ExprMulti)
	e2, ok2 := n2.(multinode.ExprMulti)

	switch {
	case ok1 && ok2:
		holders := make([]multinode.ExprHolder, 0, len(e1.Children)*len(e2.Children))
		for _, s1 := range e1.Children {
			for _, s2 := range e2.Children {
				sign := multinode.Minus
				if s1.Sign == s2.Sign {
					sign = multinode.Plus
				}
				child, err := simpleProduct(s1.Child, s2.Child)
				if err != nil {
					return nil, err
				}
				holders = append(holders, multinode.ExprHolder{Sign: sign, Child: child})
			}
		}
		return multinode.ExprMulti{Pos: -1, Children: holders}, nil

	case ok1:
		holders := make([]multinode.ExprHolder, 0, len(e1.Children))
		for _, s1 := range e1.Children {
			child, err := simpleProduct(s1.Child, n2)
			if err != nil {
				return nil, err
			}
			holders = append(holders, multinode.ExprHolder{Sign: s1.Sign, Child: child})
		}
		return multinode.ExprMulti{Pos: -1, Children: holders}, nil

	case ok2:
		holders := make([]multinode.ExprHolder, 0, len(e2.Children))
		for _, s2 := range e2.Children {
			child, err := simpleProduct(n1, s2.Child)
			if err != nil {
				return nil, err
			}
			holders = append(holders, multinode.ExprHolder{Sign: s2.Sign, Child: child})
		}
		return multinode.ExprMulti{Pos: -1, Children: holders}, nil
	}
	return simpleProduct(n1, n2)
}

// simpleProduct concatenates the factor lists of two sum-free
// operands, wrapping plain nodes as singleton numerator holders.
func simpleProduct(n1, n2 multinode.Node) (multinode.Node, error) {
	var holders []multinode.TermHolder
	for _, n := range []multinode.Node{n1, n2} {
		switch f := n.(type) {
		case multinode.ExprMulti:
			return nil, ErrExpectedTermMulti
		case multinode.TermMulti:
			holders = append(holders, f.Children...)
		default:
			holders = append(holders, multinode.TermHolder{Role: multinode.Numerator, Child: n})
		}
	}
	return multinode.TermMulti{Pos: -1, Children: holders}, nil
}

// isOne reports whether n is the numeric constant one.
func isOne(n multinode.Node) bool {
	num, ok := n.(multinode.Number)
	if !ok {
		return false
	}
	v, err := strconv.ParseFloat(num.Value, 64)
	return err == nil && v == 1
}
