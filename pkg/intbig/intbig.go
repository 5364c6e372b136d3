// Package intbig layers signed-integer arithmetic over natbig. A value
// pairs a natural magnitude with a sign; zero is always unsigned.
package intbig

import (
	"errors"
	"strings"

	"github.com/mveres/algebra/pkg/natbig"
)

// ErrBadLiteral reports a string that is not a signed decimal number.
var ErrBadLiteral = errors.New("intbig: literal is not a signed decimal number")

// Int is a signed integer. The zero value represents zero.
type Int struct {
	mag  natbig.Nat
	sign int // -1, 0 or 1; 0 iff mag is zero
}

// IsZero reports whether z is zero.
func (z Int) IsZero() bool {
	return z.sign == 0
}

// Sign returns -1, 0 or 1.
func (z Int) Sign() int {
	return z.sign
}

// Mag returns the magnitude of z.
func (z Int) Mag() natbig.Nat {
	return z.mag
}

// Arith performs signed-integer arithmetic in a fixed radix.
type Arith struct {
	Nat *natbig.Arith
}

// New creates an Arith for the given radix.
func New(radix int) (*Arith, error) {
	n, err := natbig.New(radix)
	if err != nil {
		return nil, err
	}
	return &Arith{Nat: n}, nil
}

// Zero returns the canonical zero.
func (a *Arith) Zero() Int {
	return Int{}
}

// One returns one.
func (a *Arith) One() Int {
	return Int{mag: a.Nat.One(), sign: 1}
}

// FromNat builds a signed integer from a magnitude and a sign. A zero
// magnitude yields canonical zero regardless of sign.
func (a *Arith) FromNat(mag natbig.Nat, sign int) Int {
	if mag.IsZero() || sign == 0 {
		return Int{}
	}
	if sign < 0 {
		return Int{mag: mag, sign: -1}
	}
	return Int{mag: mag, sign: 1}
}

// Parse reads an optional leading minus followed by an unsigned
// decimal number.
func (a *Arith) Parse(s string) (Int, error) {
	sign := 1
	if strings.HasPrefix(s, "-") {
		sign = -1
		s = s[1:]
	}
	mag, err := a.Nat.Parse(s)
	if err != nil {
		return Int{}, ErrBadLiteral
	}
	return a.FromNat(mag, sign), nil
}

// Render writes z as a decimal string. Zero renders as "0", never "-0".
func (a *Arith) Render(z Int) string {
	if z.sign < 0 {
		return "-" + a.Nat.Render(z.mag)
	}
	return a.Nat.Render(z.mag)
}

// Neg returns -z.
func (a *Arith) Neg(z Int) Int {
	return a.FromNat(z.mag, -z.sign)
}

// Abs returns the absolute value of z.
func (a *Arith) Abs(z Int) Int {
	return a.FromNat(z.mag, 1)
}

// Cmp compares u and v: positive > zero > negative, magnitudes within
// a sign (reversed for negatives).
func (a *Arith) Cmp(u, v Int) int {
	if u.sign != v.sign {
		if u.sign < v.sign {
			return -1
		}
		return 1
	}
	c := a.Nat.Cmp(u.mag, v.mag)
	if u.sign < 0 {
		return -c
	}
	return c
}

// Add returns u + v. Same signs add magnitudes; opposite signs
// subtract the smaller magnitude from the larger and keep the larger's
// sign.
func (a *Arith) Add(u, v Int) Int {
	if u.sign == 0 {
		return v
	}
	if v.sign == 0 {
		return u
	}
	if u.sign == v.sign {
		return a.FromNat(a.Nat.Add(u.mag, v.mag), u.sign)
	}
	switch a.Nat.Cmp(u.mag, v.mag) {
	case 0:
		return Int{}
	case 1:
		return a.FromNat(a.Nat.Sub(u.mag, v.mag), u.sign)
	default:
		return a.FromNat(a.Nat.Sub(v.mag, u.mag), v.sign)
	}
}

// Sub returns u - v.
func (a *Arith) Sub(u, v Int) Int {
	return a.Add(u, a.Neg(v))
}

// Mul returns u * v. The sign is positive when the operands share a
// sign, negative otherwise.
func (a *Arith) Mul(u, v Int) Int {
	return a.FromNat(a.Nat.Mul(u.mag, v.mag), u.sign*v.sign)
}

// DivMod returns the quotient and remainder of u / v. The quotient is
// positive exactly when the operands share a sign, and the remainder
// carries the dividend's sign:
//
//	 7 /  3 -> q= 2, r= 1
//	-7 /  3 -> q=-2, r=-1
//	 7 / -3 -> q=-2, r= 1
//	-7 / -3 -> q= 2, r=-1
//
// It panics if v is zero.
func (a *Arith) DivMod(u, v Int) (Int, Int) {
	if v.sign == 0 {
		panic("intbig: division by zero")
	}
	qm, rm := a.Nat.DivMod(u.mag, v.mag)
	return a.FromNat(qm, u.sign*v.sign), a.FromNat(rm, u.sign)
}
