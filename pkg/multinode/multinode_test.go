package multinode

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mveres/algebra/pkg/ast"
	"github.com/mveres/algebra/pkg/eval"
	"github.com/mveres/algebra/pkg/lexer"
	"github.com/mveres/algebra/pkg/parser"
)

func build(t *testing.T, input string) Node {
	t.Helper()
	root, _, err := parser.New(lexer.DefaultConfig()).Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q): %v", input, err)
	}
	m, err := FromBinary(root)
	if err != nil {
		t.Fatalf("FromBinary(%q): %v", input, err)
	}
	return m
}

// mstrip zeroes positions so multinode trees compare structurally.
func mstrip(n Node) Node {
	switch m := n.(type) {
	case Number:
		m.Pos = 0
		return m
	case Variable:
		m.Pos = 0
		return m
	case Const:
		m.Pos = 0
		return m
	case UnaryMinus:
		return UnaryMinus{Child: mstrip(m.Child)}
	case Power:
		return Power{Base: mstrip(m.Base), Exp: mstrip(m.Exp)}
	case Funct:
		return Funct{Which: m.Which, Arg: mstrip(m.Arg)}
	case CompareOp:
		return CompareOp{Op: m.Op, Left: mstrip(m.Left), Right: mstrip(m.Right)}
	case BoolOp:
		return BoolOp{Op: m.Op, Left: mstrip(m.Left), Right: mstrip(m.Right)}
	case ExprMulti:
		hs := make([]ExprHolder, len(m.Children))
		for i, h := range m.Children {
			hs[i] = ExprHolder{Sign: h.Sign, Child: mstrip(h.Child)}
		}
		return ExprMulti{Children: hs}
	case TermMulti:
		hs := make([]TermHolder, len(m.Children))
		for i, h := range m.Children {
			hs[i] = TermHolder{Role: h.Role, Child: mstrip(h.Child)}
		}
		return TermMulti{Children: hs}
	}
	return n
}

// astStrip zeroes positions in a binary tree.
func astStrip(e ast.Expr) ast.Expr {
	switch n := e.(type) {
	case ast.Number:
		n.Pos = 0
		return n
	case ast.Variable:
		n.Pos = 0
		return n
	case ast.Const:
		n.Pos = 0
		return n
	case ast.UnaryMinus:
		return ast.UnaryMinus{Child: astStrip(n.Child)}
	case ast.BinOp:
		return ast.BinOp{Op: n.Op, Left: astStrip(n.Left), Right: astStrip(n.Right)}
	case ast.CompareOp:
		return ast.CompareOp{Op: n.Op, Left: astStrip(n.Left), Right: astStrip(n.Right)}
	case ast.BoolOp:
		return ast.BoolOp{Op: n.Op, Left: astStrip(n.Left), Right: astStrip(n.Right)}
	case ast.Funct:
		return ast.Funct{Which: n.Which, Arg: astStrip(n.Arg)}
	}
	return e
}

func TestAdditiveChain(t *testing.T) {
	assert.Equal(t, ExprMulti{Children: []ExprHolder{
		{Sign: Plus, Child: Variable{Name: "a"}},
		{Sign: Plus, Child: Variable{Name: "b"}},
		{Sign: Minus, Child: Variable{Name: "c"}},
	}}, mstrip(build(t, "a+b-c")))
}

func TestSubtractionFlipsRightSubtree(t *testing.T) {
	assert.Equal(t, ExprMulti{Children: []ExprHolder{
		{Sign: Plus, Child: Variable{Name: "a"}},
		{Sign: Minus, Child: Variable{Name: "b"}},
		{Sign: Minus, Child: Variable{Name: "c"}},
	}}, mstrip(build(t, "a-(b+c)")))

	// Double flip: subtracting a subtraction restores the sign.
	assert.Equal(t, ExprMulti{Children: []ExprHolder{
		{Sign: Plus, Child: Variable{Name: "a"}},
		{Sign: Minus, Child: Variable{Name: "b"}},
		{Sign: Plus, Child: Variable{Name: "c"}},
	}}, mstrip(build(t, "a-(b-c)")))
}

func TestUnaryMinusUnwrapped(t *testing.T) {
	assert.Equal(t, ExprMulti{Children: []ExprHolder{
		{Sign: Minus, Child: Variable{Name: "x"}},
		{Sign: Plus, Child: Variable{Name: "y"}},
	}}, mstrip(build(t, "-x+y")))

	// A single-leaf chain gets no wrapper.
	assert.Equal(t, UnaryMinus{Child: Variable{Name: "x"}}, mstrip(build(t, "-x")))
	assert.Equal(t, Variable{Name: "x"}, mstrip(build(t, "x")))
}

func TestMultiplicativeChain(t *testing.T) {
	assert.Equal(t, TermMulti{Children: []TermHolder{
		{Role: Numerator, Child: Number{Value: "2"}},
		{Role: Numerator, Child: Variable{Name: "x"}},
		{Role: Denominator, Child: Variable{Name: "y"}},
	}}, mstrip(build(t, "2*x/y")))
}

func TestDivisionByFractionFlipsRoles(t *testing.T) {
	assert.Equal(t, TermMulti{Children: []TermHolder{
		{Role: Numerator, Child: Variable{Name: "a"}},
		{Role: Denominator, Child: Variable{Name: "b"}},
		{Role: Numerator, Child: Variable{Name: "c"}},
	}}, mstrip(build(t, "a/(b/c)")))
}

func TestParenthesizedSumInsideTerm(t *testing.T) {
	assert.Equal(t, TermMulti{Children: []TermHolder{
		{Role: Numerator, Child: ExprMulti{Children: []ExprHolder{
			{Sign: Plus, Child: Variable{Name: "a"}},
			{Sign: Plus, Child: Variable{Name: "b"}},
		}}},
		{Role: Numerator, Child: Variable{Name: "c"}},
	}}, mstrip(build(t, "(a+b)*c")))
}

func TestFunctionArgumentsTransformed(t *testing.T) {
	assert.Equal(t, Funct{Which: ast.FnSin, Arg: ExprMulti{Children: []ExprHolder{
		{Sign: Plus, Child: Variable{Name: "x"}},
		{Sign: Plus, Child: Variable{Name: "y"}},
	}}}, mstrip(build(t, "SIN(x+y)")))
}

func TestPowerStaysBinary(t *testing.T) {
	assert.Equal(t, Power{
		Base: ExprMulti{Children: []ExprHolder{
			{Sign: Plus, Child: Variable{Name: "a"}},
			{Sign: Plus, Child: Variable{Name: "b"}},
		}},
		Exp: Number{Value: "2"},
	}, mstrip(build(t, "(a+b)^2")))
}

func TestCompareAndBoolDescend(t *testing.T) {
	m := build(t, "a+b=c*d")
	cmp, ok := m.(CompareOp)
	if !ok {
		t.Fatalf("root is %T, want CompareOp", m)
	}
	assert.Equal(t, ast.CmpEq, cmp.Op)
	if _, ok := cmp.Left.(ExprMulti); !ok {
		t.Errorf("left is %T, want ExprMulti", cmp.Left)
	}
	if _, ok := cmp.Right.(TermMulti); !ok {
		t.Errorf("right is %T, want TermMulti", cmp.Right)
	}
}

func TestToBinarySortsFactors(t *testing.T) {
	// b*a*2 re-folds with the number first, then variables by name.
	bin, err := ToBinary(build(t, "b*a*2"))
	if err != nil {
		t.Fatalf("ToBinary: %v", err)
	}
	assert.Equal(t, ast.BinOp{
		Op: ast.OpMul,
		Left: ast.BinOp{
			Op:    ast.OpMul,
			Left:  ast.Number{Value: "2"},
			Right: ast.Variable{Name: "a"},
		},
		Right: ast.Variable{Name: "b"},
	}, astStrip(bin))
}

func TestToBinaryDivision(t *testing.T) {
	bin, err := ToBinary(build(t, "a/b/c"))
	if err != nil {
		t.Fatalf("ToBinary: %v", err)
	}
	assert.Equal(t, ast.BinOp{
		Op:   ast.OpDiv,
		Left: ast.Variable{Name: "a"},
		Right: ast.BinOp{
			Op:    ast.OpMul,
			Left:  ast.Variable{Name: "b"},
			Right: ast.Variable{Name: "c"},
		},
	}, astStrip(bin))
}

func TestToBinarySynthesizesNumeratorOne(t *testing.T) {
	m := TermMulti{Children: []TermHolder{
		{Role: Denominator, Child: Variable{Pos: -1, Name: "x"}},
		{Role: Denominator, Child: Variable{Pos: -1, Name: "y"}},
	}}
	bin, err := ToBinary(m)
	if err != nil {
		t.Fatalf("ToBinary: %v", err)
	}
	assert.Equal(t, ast.BinOp{
		Op:   ast.OpDiv,
		Left: ast.Number{Value: "1"},
		Right: ast.BinOp{
			Op:    ast.OpMul,
			Left:  ast.Variable{Name: "x"},
			Right: ast.Variable{Name: "y"},
		},
	}, astStrip(bin))
}

func TestToBinaryLeadingMinus(t *testing.T) {
	bin, err := ToBinary(build(t, "-a-b"))
	if err != nil {
		t.Fatalf("ToBinary: %v", err)
	}
	assert.Equal(t, ast.BinOp{
		Op:    ast.OpSub,
		Left:  ast.UnaryMinus{Child: ast.Variable{Name: "a"}},
		Right: ast.Variable{Name: "b"},
	}, astStrip(bin))
}

func TestRoundTripPreservesValue(t *testing.T) {
	inputs := []string{
		"a+b-c",
		"a-(b-c)",
		"2*a/b/c",
		"(a+b)*(a-b)",
		"a/(b/c)",
		"-a*b+c/2",
		"SIN(a+b)^2+COS(a-b)^2",
		"(a+b)^2/(c+1)",
	}
	binds := []map[string]any{
		{"a": 2.0, "b": 3.0, "c": 5.0},
		{"a": -1.5, "b": 0.25, "c": 4.0},
	}

	var ev eval.Evaluator
	for _, input := range inputs {
		root, _, err := parser.New(lexer.DefaultConfig()).Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q): %v", input, err)
		}
		m, err := FromBinary(root)
		if err != nil {
			t.Fatalf("FromBinary(%q): %v", input, err)
		}
		back, err := ToBinary(m)
		if err != nil {
			t.Fatalf("ToBinary(%q): %v", input, err)
		}
		for _, b := range binds {
			want, err := ev.Eval(root, b)
			if err != nil {
				t.Fatalf("Eval(%q): %v", input, err)
			}
			got, err := ev.Eval(back, b)
			if err != nil {
				t.Fatalf("Eval(round-trip %q): %v", input, err)
			}
			assert.InDelta(t, want.Float64(), got.Float64(), 1e-9, "input %q binds %v", input, b)
		}
	}
}

func TestNilTree(t *testing.T) {
	if _, err := FromBinary(nil); err == nil {
		t.Error("FromBinary(nil): expected error")
	}
	if _, err := ToBinary(nil); err == nil {
		t.Error("ToBinary(nil): expected error")
	}
}
