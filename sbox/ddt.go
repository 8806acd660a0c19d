package sbox

import (
	"fmt"

	"git.gammaspectra.live/P2Pool/sbox/types"
	"git.gammaspectra.live/P2Pool/sbox/utils"
)

// checkDomain verifies s can be indexed by XOR differences and masks
func checkDomain(s types.SBox) error {
	n := len(s)
	if n == 0 || n > types.MaxSize || !utils.IsPowerOfTwo(n) {
		return fmt.Errorf("%w: %d is not a power of two in [1, %d]", ErrInvalidDomain, n, types.MaxSize)
	}
	for x, y := range s {
		if int(y) >= n {
			return fmt.Errorf("%w: S(%d) = %d out of range [0, %d)", ErrInvalidSBox, x, y, n)
		}
	}
	return nil
}

// DDT computes the differential distribution table of s:
// DDT[dx][dy] counts the x for which S(x) XOR S(x XOR dx) = dy.
//
// Any mapping is accepted, the row sum, DDT[0][0] = N and even count properties only hold for permutations.
func DDT(s types.SBox) (*types.Table, error) {
	if err := checkDomain(s); err != nil {
		return nil, err
	}

	n := len(s)
	t := types.NewTable(n)
	for dx := 0; dx < n; dx++ {
		for x := 0; x < n; x++ {
			t.Inc(dx, int(s[x]^s[x^dx]))
		}
	}
	return t, nil
}

// DifferentialUniformity returns the largest DDT count with a non-zero input difference
func DifferentialUniformity(ddt *types.Table) int {
	return int(ddt.MaxFrom(1))
}
