package latex

import (
	"fmt"
	"strings"

	"github.com/mveres/algebra/pkg/ast"
	"github.com/mveres/algebra/pkg/multinode"
)

// EmitMulti renders a multinode tree as LaTeX. Collapsed sums render
// inside square brackets with per-child signs; collapsed terms render
// as a product list, or a fraction when denominators exist.
func EmitMulti(n multinode.Node) (string, error) {
	if n == nil {
		return "", ErrNoTree
	}
	switch m := n.(type) {
	case multinode.Number:
		return m.Value, nil
	case multinode.Variable:
		return m.Name, nil
	case multinode.Const:
		return constCommand(m.Which)
	case multinode.UnaryMinus:
		s, err := EmitMulti(m.Child)
		if err != nil {
			return "", err
		}
		return "-" + s, nil
	case multinode.Power:
		base, err := EmitMulti(m.Base)
		if err != nil {
			return "", err
		}
		if parenMultiBase(m.Base) {
			base = `\left(` + base + `\right)`
		}
		exp, err := EmitMulti(m.Exp)
		if err != nil {
			return "", err
		}
		return base + `^{` + exp + `}`, nil
	case multinode.Funct:
		s, err := EmitMulti(m.Arg)
		if err != nil {
			return "", err
		}
		return renderFunct(m.Which, s)
	case multinode.CompareOp:
		left, err := EmitMulti(m.Left)
		if err != nil {
			return "", err
		}
		right, err := EmitMulti(m.Right)
		if err != nil {
			return "", err
		}
		return left + cmpCommands[m.Op] + right, nil
	case multinode.BoolOp:
		left, err := EmitMulti(m.Left)
		if err != nil {
			return "", err
		}
		right, err := EmitMulti(m.Right)
		if err != nil {
			return "", err
		}
		op := `\wedge `
		if m.Op == ast.BoolOr {
			op = `\vee `
		}
		return left + op + right, nil
	case multinode.ExprMulti:
		return emitExprMulti(m)
	case multinode.TermMulti:
		return emitTermMulti(m)
	}
	return "", fmt.Errorf("%w: %T", ErrUnknownNode, n)
}

func emitExprMulti(m multinode.ExprMulti) (string, error) {
	var b strings.Builder
	b.WriteString(`\left[`)
	for i, h := range m.Children {
		if h.Sign == multinode.Minus {
			b.WriteString("-")
		} else if i > 0 {
			b.WriteString("+")
		}
		s, err := EmitMulti(h.Child)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	b.WriteString(`\right]`)
	return b.String(), nil
}

func emitTermMulti(m multinode.TermMulti) (string, error) {
	var nums, dens []string
	for _, h := range m.Children {
		s, err := EmitMulti(h.Child)
		if err != nil {
			return "", err
		}
		if h.Role == multinode.Denominator {
			dens = append(dens, s)
		} else {
			nums = append(nums, s)
		}
	}
	if len(dens) == 0 {
		return joinCdot(nums), nil
	}
	return `\frac{` + joinCdot(nums) + `}{` + joinCdot(dens) + `}`, nil
}

// parenMultiBase wraps non-atomic power bases. ExprMulti brings its
// own brackets and needs no extra parentheses.
func parenMultiBase(n multinode.Node) bool {
	switch n.(type) {
	case multinode.Const, multinode.Number, multinode.Variable, multinode.Funct, multinode.ExprMulti:
		return false
	}
	return true
}
