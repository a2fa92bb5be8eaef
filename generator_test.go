package residuehist

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// naiveSquares only works while i*i fits in an int.
func naiveSquares(n, length int) []int {
	res := make([]int, length)
	for i := range res {
		res[i] = i * i % n
	}
	return res
}

func TestSquareSequence(t *testing.T) {
	gen, err := NewGenerator(ModeSquare, 10, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 4, 9, 6, 5, 6, 9, 4, 1}, gen.Collect())
}

func TestSquareMatchesNaive(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for range 50 {
		n := r.Intn(5000) + 1
		length := r.Intn(3 * n)
		gen, err := NewGenerator(ModeSquare, n, length, 0)
		require.NoError(t, err)
		assert.Equal(t, naiveSquares(n, length), gen.Collect(), "n=%d length=%d", n, length)
	}
}

func TestSquareResidueIsIndexPure(t *testing.T) {
	const n = 352426590011477
	for _, i := range []int{0, 1, 7, 1 << 31, 4_000_000_000, 123456789012} {
		a := SquareResidue(i, n)
		b := SquareResidue(i, n)
		assert.Equal(t, a, b)
		assert.GreaterOrEqual(t, a, 0)
		assert.Less(t, a, n)
	}
}

func TestSquareResidueLargeIndexNoWraparound(t *testing.T) {
	// (2^32)^2 = 2^64 overflows int64; 2^64 mod 1000003 computed by hand via 2^32 mod p.
	const p = 1000003
	x := (1 << 32) % p
	assert.Equal(t, x*x%p, SquareResidue(1<<32, p))
}

func TestMultiplicativeSequence(t *testing.T) {
	gen, err := NewGenerator(ModeMultiplicative, 5, 5, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 4, 3, 1}, gen.Collect())
}

func TestMultiplicativeBaseOneIsConstant(t *testing.T) {
	for _, n := range []int{1, 2, 10, 97} {
		gen, err := NewGenerator(ModeMultiplicative, n, 25, 1)
		require.NoError(t, err)
		for i, r := range gen.Collect() {
			assert.Equal(t, 1%n, r, "n=%d index=%d", n, i)
		}
	}
}

func TestMultiplicativeRestartsPerCall(t *testing.T) {
	gen, err := NewGenerator(ModeMultiplicative, 31571, 100, 3)
	require.NoError(t, err)
	assert.Equal(t, gen.Collect(), gen.Collect())

	first := 0
	for r := range gen.Residues() {
		first = r
		break
	}
	assert.Equal(t, 1, first)
}

func TestMultiplicativeHugeBase(t *testing.T) {
	const base = int64(1) << 62
	const n = 1_000_000_007
	gen, err := NewGenerator(ModeMultiplicative, n, 20, base)
	require.NoError(t, err)
	seq := gen.Collect()
	b := int(base % n)
	want := 1
	for i, r := range seq {
		assert.Equal(t, want, r, "index %d", i)
		// want*b < 2^60 since both are below 2^30.
		want = want * b % n
	}
}

func TestGeneratorValidation(t *testing.T) {
	_, err := NewGenerator(ModeSquare, 0, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidModulus)
	_, err = NewGenerator(ModeSquare, -3, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidModulus)
	_, err = NewGenerator(ModeSquare, 3, -1, 0)
	assert.ErrorIs(t, err, ErrInvalidLength)
	_, err = NewGenerator(ModeMultiplicative, 3, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidBase)
	_, err = NewGenerator(Mode(7), 3, 1, 2)
	assert.ErrorIs(t, err, ErrUnknownMode)

	gen, err := NewGenerator(ModeSquare, 3, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, gen.Collect())
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"square", ModeSquare},
		{"SQ", ModeSquare},
		{" multiplicative ", ModeMultiplicative},
		{"mul", ModeMultiplicative},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseMode(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := ParseMode("cube")
	assert.ErrorIs(t, err, ErrUnknownMode)
	assert.Equal(t, "multiplicative", ModeMultiplicative.String())
}
