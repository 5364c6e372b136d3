// Package natbig implements exact natural-number arithmetic in a
// positional radix that is a power of ten. A value is a sequence of
// digits in [0, B), least significant first; zero is the empty
// sequence and the top digit of a nonzero value is never zero.
package natbig

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mveres/algebra/pkg/machint"
)

// Errors returned by parsing and construction.
var (
	ErrBadRadix   = errors.New("natbig: radix must be a power of ten, at least 10")
	ErrBadLiteral = errors.New("natbig: literal is not an unsigned decimal number")
	ErrBadDigit   = errors.New("natbig: digit out of range for radix")
)

// Nat is a natural number. The zero value represents zero. Nat values
// are immutable; every arithmetic operation returns a fresh value.
type Nat struct {
	digits []int // least significant first, no trailing (high-order) zeros
}

// IsZero reports whether u is zero.
func (u Nat) IsZero() bool {
	return len(u.digits) == 0
}

// Len returns the number of radix digits (0 for zero).
func (u Nat) Len() int {
	return len(u.digits)
}

// Digits returns a copy of the digit sequence, least significant first.
func (u Nat) Digits() []int {
	out := make([]int, len(u.digits))
	copy(out, u.digits)
	return out
}

func (u Nat) clone() Nat {
	return Nat{digits: u.Digits()}
}

// Arith performs natural-number arithmetic in a fixed radix.
type Arith struct {
	B int // radix, a power of ten
	L int // decimal digits per radix digit, log10(B)
}

// New creates an Arith for the given radix. The radix must be a
// positive power of ten no smaller than 10.
func New(radix int) (*Arith, error) {
	l := 0
	for b := radix; b > 1; b = machint.Div(b, 10) {
		if machint.Mod(b, 10) != 0 {
			return nil, ErrBadRadix
		}
		l++
	}
	if l == 0 || radix < 10 {
		return nil, ErrBadRadix
	}
	return &Arith{B: radix, L: l}, nil
}

// Zero returns the canonical zero.
func (a *Arith) Zero() Nat {
	return Nat{}
}

// One returns the canonical one.
func (a *Arith) One() Nat {
	return Nat{digits: []int{1}}
}

// FromDigit returns the one-digit number d. d must be in [0, B).
func (a *Arith) FromDigit(d int) Nat {
	if d < 0 || d >= a.B {
		panic("natbig: digit out of range")
	}
	if d == 0 {
		return Nat{}
	}
	return Nat{digits: []int{d}}
}

// FromDigits builds a number from a digit sequence, least significant
// first, stripping high-order zeros. Each digit must be in [0, B).
func (a *Arith) FromDigits(ds []int) (Nat, error) {
	for _, d := range ds {
		if d < 0 || d >= a.B {
			return Nat{}, ErrBadDigit
		}
	}
	out := make([]int, len(ds))
	copy(out, ds)
	return normalize(out), nil
}

// normalize strips high-order zero digits so zero becomes the empty
// sequence.
func normalize(ds []int) Nat {
	n := len(ds)
	for n > 0 && ds[n-1] == 0 {
		n--
	}
	if n == 0 {
		return Nat{}
	}
	return Nat{digits: ds[:n]}
}

// Parse reads an unsigned decimal string, grouping decimal digits into
// radix digits from the right. Leading zeros are stripped.
func (a *Arith) Parse(s string) (Nat, error) {
	if s == "" {
		return Nat{}, ErrBadLiteral
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return Nat{}, ErrBadLiteral
		}
	}
	s = strings.TrimLeft(s, "0")
	if s == "" {
		return Nat{}, nil
	}

	n := (len(s) + a.L - 1) / a.L
	ds := make([]int, 0, n)
	for hi := len(s); hi > 0; hi -= a.L {
		lo := hi - a.L
		if lo < 0 {
			lo = 0
		}
		d, err := strconv.Atoi(s[lo:hi])
		if err != nil {
			return Nat{}, ErrBadLiteral
		}
		ds = append(ds, d)
	}
	return normalize(ds), nil
}

// Render writes u as a decimal string. Non-leading radix digits are
// zero-padded to the radix width.
func (a *Arith) Render(u Nat) string {
	if u.IsZero() {
		return "0"
	}
	var b strings.Builder
	for i := len(u.digits) - 1; i >= 0; i-- {
		if i == len(u.digits)-1 {
			b.WriteString(strconv.Itoa(u.digits[i]))
		} else {
			fmt.Fprintf(&b, "%0*d", a.L, u.digits[i])
		}
	}
	return b.String()
}

// DebugRender writes the digit count and the raw radix digits, most
// significant first, e.g. "#3||5|432|17" in radix 1000.
func (a *Arith) DebugRender(u Nat) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d|", len(u.digits))
	for i := len(u.digits) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "|%d", u.digits[i])
	}
	return b.String()
}

// Cmp compares u and v, returning -1, 0 or 1. Shorter digit sequences
// are smaller; equal lengths compare digit by digit from the top.
func (a *Arith) Cmp(u, v Nat) int {
	if len(u.digits) != len(v.digits) {
		if len(u.digits) < len(v.digits) {
			return -1
		}
		return 1
	}
	for i := len(u.digits) - 1; i >= 0; i-- {
		if u.digits[i] != v.digits[i] {
			if u.digits[i] < v.digits[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Add returns u + v.
func (a *Arith) Add(u, v Nat) Nat {
	if len(u.digits) < len(v.digits) {
		u, v = v, u
	}
	out := make([]int, len(u.digits), len(u.digits)+1)
	carry := 0
	for i := 0; i < len(u.digits); i++ {
		s := u.digits[i] + carry
		if i < len(v.digits) {
			s += v.digits[i]
		}
		out[i] = machint.Mod(s, a.B)
		carry = machint.Div(s, a.B)
	}
	if carry != 0 {
		out = append(out, carry)
	}
	return normalize(out)
}

// Sub returns u - v. It panics if u < v.
func (a *Arith) Sub(u, v Nat) Nat {
	if len(v.digits) > len(u.digits) {
		panic("natbig: subtraction underflow")
	}
	out := make([]int, len(u.digits))
	borrow := 0
	for i := 0; i < len(u.digits); i++ {
		d := u.digits[i] - borrow
		if i < len(v.digits) {
			d -= v.digits[i]
		}
		if d < 0 {
			d += a.B
			borrow = 1
		} else {
			borrow = 0
		}
		out[i] = d
	}
	if borrow != 0 {
		panic("natbig: subtraction underflow")
	}
	return normalize(out)
}

// Mul returns u * v by schoolbook multiplication.
func (a *Arith) Mul(u, v Nat) Nat {
	if u.IsZero() || v.IsZero() {
		return Nat{}
	}
	acc := make([]int, len(u.digits)+len(v.digits))
	for j := 0; j < len(v.digits); j++ {
		if v.digits[j] == 0 {
			continue
		}
		carry := 0
		for i := 0; i < len(u.digits); i++ {
			t := acc[i+j] + u.digits[i]*v.digits[j] + carry
			acc[i+j] = machint.Mod(t, a.B)
			carry = machint.Div(t, a.B)
		}
		acc[j+len(u.digits)] = carry
	}
	return normalize(acc)
}

// mulDigit returns u * d for a single digit d in [0, B).
func (a *Arith) mulDigit(u Nat, d int) Nat {
	if d == 0 || u.IsZero() {
		return Nat{}
	}
	out := make([]int, len(u.digits), len(u.digits)+1)
	carry := 0
	for i := 0; i < len(u.digits); i++ {
		t := u.digits[i]*d + carry
		out[i] = machint.Mod(t, a.B)
		carry = machint.Div(t, a.B)
	}
	if carry != 0 {
		out = append(out, carry)
	}
	return normalize(out)
}

// MulDigit returns u * d. d must be in [0, B).
func (a *Arith) MulDigit(u Nat, d int) Nat {
	if d < 0 || d >= a.B {
		panic("natbig: digit out of range")
	}
	return a.mulDigit(u, d)
}

// ShortDivMod divides u by a single digit d in [1, B), returning the
// quotient and the remainder digit.
func (a *Arith) ShortDivMod(u Nat, d int) (Nat, int) {
	if d < 1 || d >= a.B {
		panic("natbig: short divisor out of range")
	}
	out := make([]int, len(u.digits))
	r := 0
	for i := len(u.digits) - 1; i >= 0; i-- {
		cur := r*a.B + u.digits[i]
		out[i] = machint.Div(cur, d)
		r = machint.Mod(cur, d)
	}
	return normalize(out), r
}

// pushDigit shifts u up one radix place and sets the new low digit.
func (a *Arith) pushDigit(u Nat, d int) Nat {
	out := make([]int, 0, len(u.digits)+1)
	out = append(out, d)
	out = append(out, u.digits...)
	return normalize(out)
}

func digitAt(u Nat, i int) int {
	if i < 0 || i >= len(u.digits) {
		return 0
	}
	return u.digits[i]
}

// DivMod returns the quotient and remainder of u / v using long
// division with Knuth's normalization: both operands are scaled by
// d = B/(vtop+1) so the divisor's top digit is at least B/2, which
// keeps the trial-quotient estimate within two of the true digit.
// It panics if v is zero.
func (a *Arith) DivMod(u, v Nat) (Nat, Nat) {
	if v.IsZero() {
		panic("natbig: division by zero")
	}
	if a.Cmp(u, v) < 0 {
		return Nat{}, u.clone()
	}
	if len(v.digits) == 1 {
		q, r := a.ShortDivMod(u, v.digits[0])
		return q, a.FromDigit(r)
	}

	d := machint.Div(a.B, v.digits[len(v.digits)-1]+1)
	un := a.mulDigit(u, d)
	vn := a.mulDigit(v, d)
	n := len(vn.digits)
	vtop := vn.digits[n-1]

	// Walk the normalized dividend from the top, folding one digit at a
	// time into an at-most-(n+1)-digit partial dividend.
	var part Nat
	qd := make([]int, 0, len(un.digits))
	for i := len(un.digits) - 1; i >= 0; i-- {
		part = a.pushDigit(part, un.digits[i])
		if a.Cmp(part, vn) < 0 {
			qd = append(qd, 0)
			continue
		}
		qhat := machint.Div(digitAt(part, n)*a.B+digitAt(part, n-1), vtop)
		if qhat > a.B-1 {
			qhat = a.B - 1
		}
		t := a.mulDigit(vn, qhat)
		for a.Cmp(t, part) > 0 {
			qhat--
			t = a.Sub(t, vn)
		}
		part = a.Sub(part, t)
		qd = append(qd, qhat)
	}

	// Quotient digits were produced most significant first.
	for l, r := 0, len(qd)-1; l < r; l, r = l+1, r-1 {
		qd[l], qd[r] = qd[r], qd[l]
	}
	q := normalize(qd)

	// Undo the normalization factor on the remainder.
	rem, _ := a.ShortDivMod(part, d)
	return q, rem
}

// Mod returns the remainder of u / v.
func (a *Arith) Mod(u, v Nat) Nat {
	_, r := a.DivMod(u, v)
	return r
}

// RadixShift returns u * B^k by prepending k zero digits.
func (a *Arith) RadixShift(u Nat, k int) Nat {
	if u.IsZero() || k == 0 {
		return u.clone()
	}
	out := make([]int, k, k+len(u.digits))
	out = append(out, u.digits...)
	return normalize(out)
}

// GCD returns the greatest common divisor of u and v by the Euclidean
// algorithm. GCD(u, 0) is u.
func (a *Arith) GCD(u, v Nat) Nat {
	u, v = u.clone(), v.clone()
	for !v.IsZero() {
		u, v = v, a.Mod(u, v)
	}
	return u
}
