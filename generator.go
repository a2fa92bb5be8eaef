package residuehist

import (
	"fmt"
	"iter"
	"math/big"
	"strings"
)

type Mode int

const (
	// ModeSquare yields i² mod N for every index i.
	ModeSquare Mode = iota
	// ModeMultiplicative yields 1, B, B², ... reduced mod N, each value derived from the previous one.
	ModeMultiplicative
)

func (m Mode) String() string {
	switch m {
	case ModeSquare:
		return "square"
	case ModeMultiplicative:
		return "multiplicative"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "square", "sq":
		return ModeSquare, nil
	case "multiplicative", "mul":
		return ModeMultiplicative, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

type Generator struct {
	mode    Mode
	modulus int
	length  int
	base    int64
}

// NewGenerator validates its inputs and returns a generator of length residues mod modulus.
// base is only used by ModeMultiplicative.
func NewGenerator(mode Mode, modulus, length int, base int64) (*Generator, error) {
	if modulus <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidModulus, modulus)
	}
	if length < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}
	switch mode {
	case ModeSquare:
	case ModeMultiplicative:
		if base < 1 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidBase, base)
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownMode, mode)
	}
	return &Generator{mode: mode, modulus: modulus, length: length, base: base}, nil
}

func (g *Generator) Mode() Mode   { return g.mode }
func (g *Generator) Modulus() int { return g.modulus }
func (g *Generator) Len() int     { return g.length }

// Residues returns the sequence. Every call starts from fresh state, so the
// multiplicative sequence restarts at 1 mod N.
func (g *Generator) Residues() iter.Seq[int] {
	if g.mode == ModeMultiplicative {
		return g.multiplicative()
	}
	return g.square()
}

func (g *Generator) Collect() []int {
	out := make([]int, 0, g.length)
	for r := range g.Residues() {
		out = append(out, r)
	}
	return out
}

func (g *Generator) square() iter.Seq[int] {
	return func(yield func(int) bool) {
		n := big.NewInt(int64(g.modulus))
		i, sq := new(big.Int), new(big.Int)
		for idx := 0; idx < g.length; idx++ {
			i.SetInt64(int64(idx))
			sq.Mul(i, i)
			sq.Mod(sq, n)
			if !yield(int(sq.Int64())) {
				return
			}
		}
	}
}

func (g *Generator) multiplicative() iter.Seq[int] {
	return func(yield func(int) bool) {
		n := big.NewInt(int64(g.modulus))
		b := big.NewInt(g.base)
		result := big.NewInt(1)
		residue := new(big.Int)
		for idx := 0; idx < g.length; idx++ {
			residue.Mod(result, n)
			if !yield(int(residue.Int64())) {
				return
			}
			result.Mul(residue, b)
		}
	}
}

// SquareResidue returns i² mod modulus. It panics if modulus is not positive.
func SquareResidue(i, modulus int) int {
	if modulus <= 0 {
		panic("residuehist: misuse of SquareResidue")
	}
	x := big.NewInt(int64(i))
	x.Mul(x, x)
	return int(x.Mod(x, big.NewInt(int64(modulus))).Int64())
}
