// Package spn implements the fixed 16-bit substitution-permutation layer: a bit relocation
// over the whole word and a 4-bit S-box applied to each nibble.
package spn

import (
	"git.gammaspectra.live/P2Pool/sbox/types"
)

var sbox = [16]uint8{
	0xE, 0xB, 0x4, 0x6,
	0xA, 0xD, 0x7, 0x0,
	0x3, 0x8, 0xF, 0xC,
	0x5, 0x9, 0x1, 0x2,
}

var sboxInverse = [16]uint8{
	0x7, 0xE, 0xF, 0x8,
	0x2, 0xC, 0x3, 0x6,
	0x9, 0xD, 0x4, 0x1,
	0xB, 0x5, 0x0, 0xA,
}

type relocation struct {
	mask  uint16
	shift int // positive moves bits towards the most significant end
}

// permutation moves each masked group of bits by its shift, every bit of the word is covered exactly once
var permutation = [...]relocation{
	{0xC00C, -1},
	{0x0020, -2},
	{0x0010, -4},
	{0x0C00, -5},
	{0x2000, -6},
	{0x1000, -8},

	{0x00C0, 3},
	{0x0100, 4},
	{0x0200, 6},
	{0x0001, 8},
	{0x0002, 10},
}

// NibbleSBox returns a copy of the nibble substitution table
func NibbleSBox() types.SBox {
	return types.SBox(sbox[:]).Clone()
}

// Permute relocates the bits of w
func Permute(w types.Word) types.Word {
	var out uint16
	for _, r := range permutation {
		if r.shift < 0 {
			out |= (uint16(w) & r.mask) >> -r.shift
		} else {
			out |= (uint16(w) & r.mask) << r.shift
		}
	}
	return types.Word(out)
}

// PermuteInverse undoes Permute
func PermuteInverse(w types.Word) types.Word {
	var out uint16
	for _, r := range permutation {
		if r.shift < 0 {
			out |= (uint16(w) & (r.mask >> -r.shift)) << -r.shift
		} else {
			out |= (uint16(w) & (r.mask << r.shift)) >> r.shift
		}
	}
	return types.Word(out)
}

func substitute(w types.Word, table *[16]uint8) types.Word {
	var out types.Word
	for i := 0; i < 4; i++ {
		out |= types.Word(table[w.Nibble(i)]) << (4 * i)
	}
	return out
}

// Substitute applies the nibble S-box to each of the four nibbles of w
func Substitute(w types.Word) types.Word {
	return substitute(w, &sbox)
}

func SubstituteInverse(w types.Word) types.Word {
	return substitute(w, &sboxInverse)
}

// Transform relocates the bits of w, then substitutes every nibble of the permuted word
func Transform(w types.Word) types.Word {
	return Substitute(Permute(w))
}

func TransformInverse(w types.Word) types.Word {
	return PermuteInverse(SubstituteInverse(w))
}

// Round is the keyless round function, substitution first then permutation
func Round(w types.Word) types.Word {
	return Permute(Substitute(w))
}

func RoundInverse(w types.Word) types.Word {
	return SubstituteInverse(PermuteInverse(w))
}
