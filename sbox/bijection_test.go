package sbox

import (
	"testing"

	"git.gammaspectra.live/P2Pool/sbox/types"
	"github.com/stretchr/testify/require"
)

func TestIsBijective(t *testing.T) {
	tests := []struct {
		s        types.SBox
		expected bool
	}{
		{types.SBox{0}, true},
		{types.SBox{1, 0}, true},
		{types.SBox{3, 14, 1, 10, 4, 9, 5, 6, 8, 11, 15, 2, 13, 12, 0, 7}, true},
		{types.SBox{2, 0, 1}, true},
		{types.SBox{0, 0}, false},
		{types.SBox{1, 2, 2, 0}, false},
		{types.SBox{0, 1, 5, 2}, false},
		{types.SBox{}, false},
		{nil, false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, IsBijective(tt.s), "%s", tt.s)
	}

	for _, n := range []int{1, 3, 16, 100, 256} {
		for _, s := range randomPermutations(n, 5, uint64(n)) {
			require.True(t, IsBijective(s), "%s", s)
			s[0] = s[len(s)-1]
			if n > 1 {
				require.False(t, IsBijective(s), "%s", s)
			}
		}
	}
}

func TestInverse(t *testing.T) {
	inv, err := Inverse(nibbleSBox)
	require.NoError(t, err)
	require.Equal(t, types.SBox{0x7, 0xE, 0xF, 0x8, 0x2, 0xC, 0x3, 0x6, 0x9, 0xD, 0x4, 0x1, 0xB, 0x5, 0x0, 0xA}, inv)
	for x := range nibbleSBox {
		require.Equal(t, uint8(x), inv[nibbleSBox[x]])
	}

	_, err = Inverse(types.SBox{0, 0, 1, 1})
	require.ErrorIs(t, err, ErrInvalidSBox)
}
