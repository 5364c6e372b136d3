// Package parser implements a recursive descent parser for the
// expression grammar:
//
//	block     = boolexp
//	boolexp   = boolterm   { "|" boolterm }
//	boolterm  = boolfactor { "&" boolfactor }
//	boolfactor= boolatom | "[" boolexp "]"
//	boolatom  = expression [ cmpop expression ]
//	expression= [ "-" ] term { ("+"|"-") term }
//	term      = factor { ("*"|"/"|impmul) factor }
//	factor    = ( atom | "(" expression ")" ) [ "^" factor ]
//	atom      = mathconst | number | variable | funct
//	funct     = functionname "(" expression ")"
//
// Exponentiation is right-associative; every other binary operator is
// left-associative. Square brackets delimit boolean subexpressions,
// round parentheses arithmetic ones.
package parser

import (
	"sort"

	"github.com/mveres/algebra/pkg/ast"
	"github.com/mveres/algebra/pkg/lexer"
)

// Parser parses expression strings into a binary AST and collects the
// free variable names. A Parser is configured once and can be reused;
// the token stream, token index and variable set are reset on every
// Parse call.
type Parser struct {
	cfg  lexer.Config
	toks []lexer.Token
	pos  int
	vars map[string]bool
}

// New creates a Parser with the given lexer configuration.
func New(cfg lexer.Config) *Parser {
	return &Parser{cfg: cfg}
}

// Parse tokenizes and parses input. On success it returns the AST and
// the sorted list of distinct free variable names.
func (p *Parser) Parse(input string) (ast.Expr, []string, error) {
	toks, err := lexer.New(input, p.cfg).Tokens()
	if err != nil {
		return nil, nil, err
	}
	return p.ParseTokens(toks)
}

// ParseTokens parses an already-tokenized input.
func (p *Parser) ParseTokens(toks []lexer.Token) (ast.Expr, []string, error) {
	p.toks = toks
	p.pos = 0
	p.vars = make(map[string]bool)

	root, err := p.boolExp()
	if err != nil {
		return nil, nil, err
	}
	if !p.atEnd() {
		return nil, nil, p.errHere(ExpectedOr)
	}

	names, err := p.sortedVars()
	if err != nil {
		return nil, nil, err
	}
	return root, names, nil
}

// sortedVars returns the collected variable names in increasing order.
func (p *Parser) sortedVars() ([]string, error) {
	names := make([]string, 0, len(p.vars))
	for name := range p.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			return nil, &Error{Kind: VariableSortFailure, Pos: 0}
		}
	}
	return names, nil
}

func (p *Parser) atEnd() bool {
	return p.pos >= len(p.toks)
}

func (p *Parser) peek() lexer.Token {
	return p.toks[p.pos]
}

func (p *Parser) next() lexer.Token {
	tok := p.toks[p.pos]
	p.pos++
	return tok
}

// errHere builds an error at the current token, or at the last token
// seen when the stream has run out.
func (p *Parser) errHere(kind ErrorKind) error {
	pos := 0
	if p.pos < len(p.toks) {
		pos = p.toks[p.pos].Pos
	} else if len(p.toks) > 0 {
		pos = p.toks[len(p.toks)-1].Pos
	}
	return &Error{Kind: kind, Pos: pos}
}

func (p *Parser) boolExp() (ast.Expr, error) {
	left, err := p.boolTerm()
	if err != nil {
		return nil, err
	}
	for !p.atEnd() && p.peek().Type == lexer.TokenOr {
		tok := p.next()
		if p.atEnd() {
			return nil, &Error{Kind: ExpectedBoolTerm, Pos: tok.Pos}
		}
		right, err := p.boolTerm()
		if err != nil {
			return nil, err
		}
		left = ast.BoolOp{Pos: left.StartPos(), Op: ast.BoolOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) boolTerm() (ast.Expr, error) {
	left, err := p.boolFactor()
	if err != nil {
		return nil, err
	}
	for !p.atEnd() && p.peek().Type == lexer.TokenAnd {
		tok := p.next()
		if p.atEnd() {
			return nil, &Error{Kind: ExpectedBoolFactor, Pos: tok.Pos}
		}
		right, err := p.boolFactor()
		if err != nil {
			return nil, err
		}
		left = ast.BoolOp{Pos: left.StartPos(), Op: ast.BoolAnd, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) boolFactor() (ast.Expr, error) {
	if p.atEnd() {
		return nil, p.errHere(ExpectedBoolFactor)
	}
	if p.peek().Type == lexer.TokenLBracket {
		open := p.next()
		if p.atEnd() {
			return nil, &Error{Kind: ExpectedBoolExp, Pos: open.Pos}
		}
		inner, err := p.boolExp()
		if err != nil {
			return nil, err
		}
		if p.atEnd() || p.peek().Type != lexer.TokenRBracket {
			return nil, p.errHere(ExpectedRParen)
		}
		p.next()
		return inner, nil
	}
	return p.boolAtom()
}

var cmpKinds = map[lexer.TokenType]ast.CompareKind{
	lexer.TokenEq: ast.CmpEq,
	lexer.TokenGt: ast.CmpGt,
	lexer.TokenGe: ast.CmpGe,
	lexer.TokenLt: ast.CmpLt,
	lexer.TokenLe: ast.CmpLe,
	lexer.TokenNe: ast.CmpNe,
}

// compareKind maps a token to its comparison operator.
func compareKind(tok lexer.Token) (ast.CompareKind, error) {
	k, ok := cmpKinds[tok.Type]
	if !ok {
		return 0, &Error{Kind: ExpectedCompareOp, Pos: tok.Pos}
	}
	return k, nil
}

func (p *Parser) boolAtom() (ast.Expr, error) {
	left, err := p.expression()
	if err != nil {
		return nil, err
	}
	if p.atEnd() {
		return left, nil
	}
	if _, ok := cmpKinds[p.peek().Type]; !ok {
		return left, nil
	}
	k, err := compareKind(p.next())
	if err != nil {
		return nil, err
	}
	right, err := p.expression()
	if err != nil {
		return nil, err
	}
	return ast.CompareOp{Pos: left.StartPos(), Op: k, Left: left, Right: right}, nil
}

func (p *Parser) expression() (ast.Expr, error) {
	if p.atEnd() {
		return nil, p.errHere(ExpectedExpression)
	}

	var left ast.Expr
	if p.peek().Type == lexer.TokenMinus {
		minus := p.next()
		first, err := p.term()
		if err != nil {
			return nil, err
		}
		left = ast.UnaryMinus{Pos: minus.Pos, Child: first}
	} else {
		first, err := p.term()
		if err != nil {
			return nil, err
		}
		left = first
	}

	for !p.atEnd() {
		var op ast.BinaryOp
		switch p.peek().Type {
		case lexer.TokenPlus:
			op = ast.OpAdd
		case lexer.TokenMinus:
			op = ast.OpSub
		default:
			return left, nil
		}
		tok := p.next()
		if p.atEnd() {
			return nil, &Error{Kind: ExpectedTerm, Pos: tok.Pos}
		}
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = ast.BinOp{Pos: left.StartPos(), Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) term() (ast.Expr, error) {
	if p.atEnd() {
		return nil, p.errHere(ExpectedTerm)
	}
	left, err := p.factor()
	if err != nil {
		return nil, err
	}
	for !p.atEnd() {
		var op ast.BinaryOp
		switch p.peek().Type {
		case lexer.TokenStar:
			op = ast.OpMul
		case lexer.TokenSlash:
			op = ast.OpDiv
		case lexer.TokenImpMul:
			op = ast.OpImpMul
		default:
			return left, nil
		}
		tok := p.next()
		if p.atEnd() {
			return nil, &Error{Kind: ExpectedFactor, Pos: tok.Pos}
		}
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		left = ast.BinOp{Pos: left.StartPos(), Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) factor() (ast.Expr, error) {
	if p.atEnd() {
		return nil, p.errHere(ExpectedFactor)
	}

	var base ast.Expr
	if p.peek().Type == lexer.TokenLParen {
		p.next()
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if p.atEnd() || p.peek().Type != lexer.TokenRParen {
			return nil, p.errHere(ExpectedRParen)
		}
		p.next()
		base = inner
	} else {
		atom, err := p.atom()
		if err != nil {
			return nil, err
		}
		base = atom
	}

	if !p.atEnd() && p.peek().Type == lexer.TokenCaret {
		tok := p.next()
		if p.atEnd() {
			return nil, &Error{Kind: ExpectedFactor, Pos: tok.Pos}
		}
		exp, err := p.factor() // right-associative
		if err != nil {
			return nil, err
		}
		return ast.BinOp{Pos: base.StartPos(), Op: ast.OpPow, Left: base, Right: exp}, nil
	}
	return base, nil
}

var funcKinds = map[lexer.TokenType]ast.FuncKind{
	lexer.TokenAbs:  ast.FnAbs,
	lexer.TokenSqrt: ast.FnSqrt,
	lexer.TokenExp:  ast.FnExp,
	lexer.TokenLn:   ast.FnLn,
	lexer.TokenLog:  ast.FnLog,
	lexer.TokenSin:  ast.FnSin,
	lexer.TokenCos:  ast.FnCos,
	lexer.TokenTan:  ast.FnTan,
	lexer.TokenAsin: ast.FnAsin,
	lexer.TokenAcos: ast.FnAcos,
	lexer.TokenAtan: ast.FnAtan,
}

func (p *Parser) atom() (ast.Expr, error) {
	if p.atEnd() {
		return nil, p.errHere(ExpectedAtom)
	}
	tok := p.peek()
	switch {
	case tok.Type == lexer.TokenNumber:
		p.next()
		return ast.Number{Pos: tok.Pos, Value: tok.Literal}, nil
	case tok.Type == lexer.TokenVariable:
		p.next()
		p.vars[tok.Literal] = true
		return ast.Variable{Pos: tok.Pos, Name: tok.Literal}, nil
	case tok.Type == lexer.TokenE:
		p.next()
		return ast.Const{Pos: tok.Pos, Which: ast.ConstE}, nil
	case tok.Type == lexer.TokenPi:
		p.next()
		return ast.Const{Pos: tok.Pos, Which: ast.ConstPi}, nil
	case tok.Type.IsFunction():
		return p.funct()
	}
	return nil, p.errHere(ExpectedAtom)
}

func (p *Parser) funct() (ast.Expr, error) {
	fn := p.next()
	kind := funcKinds[fn.Type]
	if p.atEnd() || p.peek().Type != lexer.TokenLParen {
		return nil, p.errHere(ExpectedLParen)
	}
	p.next()
	arg, err := p.expression()
	if err != nil {
		return nil, err
	}
	if p.atEnd() || p.peek().Type != lexer.TokenRParen {
		return nil, p.errHere(ExpectedRParen)
	}
	p.next()
	return ast.Funct{Pos: fn.Pos, Which: kind, Arg: arg}, nil
}
