// Package cipher implements a small text-encryption toy on top of the
// bignum layer: each character of the padded plaintext becomes one
// radix-B digit, the packed number is multiplied by an integer key,
// and the product renders as the decimal ciphertext. Decryption
// divides by the key and unpacks the digits.
package cipher

import (
	"errors"
	"strings"

	"github.com/mveres/algebra/pkg/natbig"
)

// Errors returned by the cipher.
var (
	ErrRadixTooSmall = errors.New("cipher: radix must exceed 255 so a character fits one digit")
	ErrBadKey        = errors.New("cipher: key must be a nonzero digit below the radix")
	ErrTooLong       = errors.New("cipher: plaintext longer than the block length")
	ErrWrongKey      = errors.New("cipher: ciphertext is not divisible by the key")
	ErrBadCiphertext = errors.New("cipher: decrypted digit is not a character")
)

// blockLen is the fixed plaintext block length; shorter inputs are
// padded with trailing spaces that decryption trims again.
const blockLen = 30

// Cipher encrypts and decrypts fixed-length text blocks.
type Cipher struct {
	arith *natbig.Arith
	key   int
}

// New creates a Cipher for the given radix and key. The radix must be
// large enough for any byte to fit in a single digit and the key must
// itself be a single nonzero digit.
func New(radix, key int) (*Cipher, error) {
	arith, err := natbig.New(radix)
	if err != nil {
		return nil, err
	}
	if arith.B <= 255 {
		return nil, ErrRadixTooSmall
	}
	if key < 1 || key >= arith.B {
		return nil, ErrBadKey
	}
	return &Cipher{arith: arith, key: key}, nil
}

// Encrypt packs s into a bignum, multiplies by the key and renders the
// product as a decimal string.
func (c *Cipher) Encrypt(s string) (string, error) {
	if len(s) > blockLen {
		return "", ErrTooLong
	}
	padded := s + strings.Repeat(" ", blockLen-len(s))

	digits := make([]int, blockLen)
	for i := 0; i < blockLen; i++ {
		digits[i] = int(padded[i])
	}
	packed, err := c.arith.FromDigits(digits)
	if err != nil {
		return "", err
	}
	return c.arith.Render(c.arith.MulDigit(packed, c.key)), nil
}

// Decrypt divides the ciphertext by the key, unpacks the digits into
// characters and trims the trailing space padding.
func (c *Cipher) Decrypt(s string) (string, error) {
	packed, err := c.arith.Parse(s)
	if err != nil {
		return "", err
	}
	q, r := c.arith.ShortDivMod(packed, c.key)
	if r != 0 {
		return "", ErrWrongKey
	}

	digits := q.Digits()
	buf := make([]byte, len(digits))
	for i, d := range digits {
		if d < 0 || d > 255 {
			return "", ErrBadCiphertext
		}
		buf[i] = byte(d)
	}
	return strings.TrimRight(string(buf), " "), nil
}
