// Package ratbig layers exact rational arithmetic over intbig and
// natbig. Every result is in lowest terms with a strictly positive
// denominator; zero is 0/1.
package ratbig

import (
	"errors"
	"strings"

	"github.com/mveres/algebra/pkg/intbig"
	"github.com/mveres/algebra/pkg/natbig"
)

// Errors returned by rational operations.
var (
	ErrBadLiteral          = errors.New("ratbig: malformed rational literal")
	ErrDenominatorZero     = errors.New("ratbig: denominator is zero")
	ErrReciprocalOfZero    = errors.New("ratbig: reciprocal of zero")
	ErrNegativePowerOfZero = errors.New("ratbig: negative power of zero")
)

// Rat is a rational number. The zero value is not canonical; obtain
// values from an Arith.
type Rat struct {
	num intbig.Int
	den natbig.Nat // always positive
}

// Num returns the numerator.
func (r Rat) Num() intbig.Int {
	return r.num
}

// Den returns the denominator.
func (r Rat) Den() natbig.Nat {
	return r.den
}

// IsZero reports whether r is zero.
func (r Rat) IsZero() bool {
	return r.num.IsZero()
}

// Arith performs rational arithmetic in a fixed radix.
type Arith struct {
	Int *intbig.Arith
}

// New creates an Arith for the given radix.
func New(radix int) (*Arith, error) {
	ints, err := intbig.New(radix)
	if err != nil {
		return nil, err
	}
	return &Arith{Int: ints}, nil
}

func (a *Arith) nat() *natbig.Arith {
	return a.Int.Nat
}

// Zero returns 0/1.
func (a *Arith) Zero() Rat {
	return Rat{num: a.Int.Zero(), den: a.nat().One()}
}

// One returns 1/1.
func (a *Arith) One() Rat {
	return Rat{num: a.Int.One(), den: a.nat().One()}
}

// reduce builds the canonical rational num/den. den must be positive.
func (a *Arith) reduce(num intbig.Int, den natbig.Nat) Rat {
	if num.IsZero() {
		return a.Zero()
	}
	g := a.nat().GCD(num.Mag(), den)
	if a.nat().Cmp(g, a.nat().One()) != 0 {
		qn, _ := a.nat().DivMod(num.Mag(), g)
		qd, _ := a.nat().DivMod(den, g)
		return Rat{num: a.Int.FromNat(qn, num.Sign()), den: qd}
	}
	return Rat{num: num, den: den}
}

// FromInt returns z/1.
func (a *Arith) FromInt(z intbig.Int) Rat {
	return Rat{num: z, den: a.nat().One()}
}

// Make builds the canonical rational num/den from integer parts. A
// negative denominator flips both signs; a zero denominator is an
// error.
func (a *Arith) Make(num, den intbig.Int) (Rat, error) {
	if den.IsZero() {
		return Rat{}, ErrDenominatorZero
	}
	if den.Sign() < 0 {
		num = a.Int.Neg(num)
		den = a.Int.Neg(den)
	}
	return a.reduce(num, den.Mag()), nil
}

// Parse reads a "Z/N" literal with exactly one slash.
func (a *Arith) Parse(s string) (Rat, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return Rat{}, ErrBadLiteral
	}
	num, err := a.Int.Parse(parts[0])
	if err != nil {
		return Rat{}, ErrBadLiteral
	}
	den, err := a.Int.Parse(parts[1])
	if err != nil {
		return Rat{}, ErrBadLiteral
	}
	return a.Make(num, den)
}

// Render writes r as "Z/N" in lowest terms.
func (a *Arith) Render(r Rat) string {
	return a.Int.Render(r.num) + "/" + a.nat().Render(r.den)
}

// Cmp compares u and v.
func (a *Arith) Cmp(u, v Rat) int {
	// u.num*v.den vs v.num*u.den
	l := a.Int.Mul(u.num, a.Int.FromNat(v.den, 1))
	r := a.Int.Mul(v.num, a.Int.FromNat(u.den, 1))
	return a.Int.Cmp(l, r)
}

// Add returns u + v. The denominators are trimmed by their GCD first
// so intermediates stay small; the result is reduced again since
// addition can reintroduce a common factor.
func (a *Arith) Add(u, v Rat) Rat {
	b, d := u.den, v.den
	g := a.nat().GCD(b, d)
	var num intbig.Int
	var den natbig.Nat
	if a.nat().Cmp(g, a.nat().One()) == 0 {
		num = a.Int.Add(
			a.Int.Mul(u.num, a.Int.FromNat(d, 1)),
			a.Int.Mul(v.num, a.Int.FromNat(b, 1)))
		den = a.nat().Mul(b, d)
	} else {
		s, _ := a.nat().DivMod(b, g)
		t, _ := a.nat().DivMod(d, g)
		num = a.Int.Add(
			a.Int.Mul(u.num, a.Int.FromNat(t, 1)),
			a.Int.Mul(v.num, a.Int.FromNat(s, 1)))
		den = a.nat().Mul(s, d)
	}
	return a.reduce(num, den)
}

// Sub returns u - v.
func (a *Arith) Sub(u, v Rat) Rat {
	return a.Add(u, Rat{num: a.Int.Neg(v.num), den: v.den})
}

// Mul returns u * v, cancelling across the diagonal before the
// multiplications to keep intermediates small.
func (a *Arith) Mul(u, v Rat) Rat {
	if u.IsZero() || v.IsZero() {
		return a.Zero()
	}
	gad := a.nat().GCD(u.num.Mag(), v.den)
	gbc := a.nat().GCD(u.den, v.num.Mag())

	an, _ := a.nat().DivMod(u.num.Mag(), gad)
	cn, _ := a.nat().DivMod(v.num.Mag(), gbc)
	bd, _ := a.nat().DivMod(u.den, gbc)
	dd, _ := a.nat().DivMod(v.den, gad)

	num := a.Int.FromNat(a.nat().Mul(an, cn), u.num.Sign()*v.num.Sign())
	den := a.nat().Mul(bd, dd)
	return a.reduce(num, den)
}

// Reciprocal returns 1/r with the denominator kept positive.
func (a *Arith) Reciprocal(r Rat) (Rat, error) {
	if r.IsZero() {
		return Rat{}, ErrReciprocalOfZero
	}
	return Rat{num: a.Int.FromNat(r.den, r.num.Sign()), den: r.num.Mag()}, nil
}

// Div returns u / v by multiplying with the reciprocal of v.
func (a *Arith) Div(u, v Rat) (Rat, error) {
	rec, err := a.Reciprocal(v)
	if err != nil {
		return Rat{}, err
	}
	return a.Mul(u, rec), nil
}

// Pow returns u raised to the integer power n by square-and-multiply
// over the absolute base. A negative n takes the reciprocal afterwards
// and a negative base re-applies its sign to the result. Zero to a
// negative power is an error; anything to the zeroth power is 1/1.
func (a *Arith) Pow(u Rat, n int) (Rat, error) {
	if n == 0 {
		return a.One(), nil
	}
	if u.IsZero() {
		if n < 0 {
			return Rat{}, ErrNegativePowerOfZero
		}
		return a.Zero(), nil
	}

	e := n
	if e < 0 {
		e = -e
	}
	base := Rat{num: a.Int.Abs(u.num), den: u.den}
	acc := a.One()
	for e > 0 {
		if e%2 == 1 {
			acc = a.Mul(acc, base)
		}
		base = a.Mul(base, base)
		e /= 2
	}
	if n < 0 {
		rec, err := a.Reciprocal(acc)
		if err != nil {
			return Rat{}, err
		}
		acc = rec
	}
	if u.num.Sign() < 0 {
		acc = Rat{num: a.Int.Neg(a.Int.Abs(acc.num)), den: acc.den}
	}
	return acc, nil
}
