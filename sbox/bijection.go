package sbox

import (
	"fmt"

	"git.gammaspectra.live/P2Pool/sbox/types"
)

// IsBijective reports whether s holds every value of [0, len(s)) exactly once
func IsBijective(s types.SBox) bool {
	if len(s) == 0 || len(s) > types.MaxSize {
		return false
	}
	var seen [types.MaxSize]bool
	for _, v := range s {
		if int(v) >= len(s) || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// Validate returns ErrInvalidSBox unless s is a permutation
func Validate(s types.SBox) error {
	if !IsBijective(s) {
		return fmt.Errorf("%w: %s is not a permutation of [0, %d)", ErrInvalidSBox, s, len(s))
	}
	return nil
}

// Inverse returns the S-box mapping s[x] back to x
func Inverse(s types.SBox) (types.SBox, error) {
	if err := Validate(s); err != nil {
		return nil, err
	}
	inv := make(types.SBox, len(s))
	for x, y := range s {
		inv[y] = uint8(x)
	}
	return inv, nil
}

// Identity returns the S-box mapping every x to itself
func Identity(n int) types.SBox {
	s := make(types.SBox, n)
	for x := range s {
		s[x] = uint8(x)
	}
	return s
}
