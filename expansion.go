package residuehist

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	ErrNegativeExpansion = errors.New("residuehist: cannot expand a negative number")
	ErrExpansionMismatch = errors.New("residuehist: expansion does not evaluate back to its input")
)

// BaseExpansion returns the digits of n in base, least significant first, so
// that n == sum(coeffs[i] * base^i). Zero expands to a single zero digit.
// The digits are checked by evaluating them back with Horner's rule.
func BaseExpansion(n *big.Int, base int64) ([]int64, error) {
	if n.Sign() < 0 {
		return nil, fmt.Errorf("%w: %v", ErrNegativeExpansion, n)
	}
	if base < 2 {
		return nil, fmt.Errorf("%w: expansion base %d", ErrInvalidBase, base)
	}

	b := big.NewInt(base)
	rest := new(big.Int).Set(n)
	digit := new(big.Int)
	coeffs := make([]int64, 0, n.BitLen()/max(b.BitLen()-1, 1)+1)
	for {
		rest.QuoRem(rest, b, digit)
		coeffs = append(coeffs, digit.Int64())
		if rest.Sign() == 0 {
			break
		}
	}

	if y := EvalExpansion(coeffs, base); y.Cmp(n) != 0 {
		return nil, fmt.Errorf("%w: got %v, want %v", ErrExpansionMismatch, y, n)
	}
	return coeffs, nil
}

// EvalExpansion evaluates sum(coeffs[i] * base^i).
func EvalExpansion(coeffs []int64, base int64) *big.Int {
	b := big.NewInt(base)
	y := new(big.Int)
	c := new(big.Int)
	for i := len(coeffs) - 1; i >= 0; i-- {
		y.Mul(y, b)
		y.Add(y, c.SetInt64(coeffs[i]))
	}
	return y
}
