package sbox

import (
	"git.gammaspectra.live/P2Pool/sbox/types"
)

// Evaluate computes c[0] + c[1]*x + ... + c[len(c)-1]*x^(len(c)-1) mod n with Horner's method,
// reducing every intermediate step. n must be positive.
func Evaluate(c types.Coefficients, x, n int) uint8 {
	if len(c) == 0 {
		return 0
	}
	m := uint32(n)
	xm := uint32(x) % m
	y := uint32(c[len(c)-1]) % m
	for i := len(c) - 2; i >= 0; i-- {
		y = (y * xm) % m
		y = (y + uint32(c[i])) % m
	}
	return uint8(y)
}

// EvaluateAll evaluates c at every point of [0, n)
func EvaluateAll(c types.Coefficients, n int) types.SBox {
	s := make(types.SBox, n)
	for x := range s {
		s[x] = Evaluate(c, x, n)
	}
	return s
}
