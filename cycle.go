package residuehist

import (
	"fmt"
	"math/big"
)

// Cycle describes the eventually periodic sequence 1, B, B², ... mod N:
// the first Tail values never repeat, after that the values repeat every Period steps.
type Cycle struct {
	Tail   int
	Period int
}

// MultiplicativeCycle finds the tail and period of the multiplicative sequence
// with Floyd's tortoise and hare, in constant memory.
func MultiplicativeCycle(modulus int, base int64) (Cycle, error) {
	if modulus <= 0 {
		return Cycle{}, fmt.Errorf("%w: %d", ErrInvalidModulus, modulus)
	}
	if base < 1 {
		return Cycle{}, fmt.Errorf("%w: %d", ErrInvalidBase, base)
	}

	n := big.NewInt(int64(modulus))
	b := big.NewInt(base)
	step := func(x *big.Int) {
		x.Mul(x, b)
		x.Mod(x, n)
	}
	start := func() *big.Int {
		return new(big.Int).Mod(big.NewInt(1), n)
	}

	slow, fast := start(), start()
	for {
		step(slow)
		step(fast)
		step(fast)
		if slow.Cmp(fast) == 0 {
			break
		}
	}

	// Walk from the start and from the meeting point at the same pace; they meet at the cycle entry.
	slow = start()
	tail := 0
	for slow.Cmp(fast) != 0 {
		step(slow)
		step(fast)
		tail++
	}

	period := 1
	step(fast)
	for slow.Cmp(fast) != 0 {
		step(fast)
		period++
	}
	return Cycle{Tail: tail, Period: period}, nil
}
