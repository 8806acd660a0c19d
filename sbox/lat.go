package sbox

import (
	"git.gammaspectra.live/P2Pool/sbox/types"
	"git.gammaspectra.live/P2Pool/sbox/utils"
)

// LAT computes the linear approximation table of s:
// LAT[in][out] counts the x for which parity(x AND in) = parity(S(x) AND out).
// Counts are raw, subtract N/2 to obtain the bias.
func LAT(s types.SBox) (*types.Table, error) {
	if err := checkDomain(s); err != nil {
		return nil, err
	}

	n := len(s)
	t := types.NewTable(n)
	for x := 0; x < n; x++ {
		y := uint(s[x])
		for in := 0; in < n; in++ {
			p := utils.Parity(uint(x & in))
			for out := 0; out < n; out++ {
				if p == utils.Parity(y&uint(out)) {
					t.Inc(in, out)
				}
			}
		}
	}
	return t, nil
}

// Linearity returns the largest |LAT[in][out] - N/2| over every mask pair except (0, 0)
func Linearity(lat *types.Table) int {
	n := lat.Size()
	half := n / 2
	var m int
	for in := 0; in < n; in++ {
		for out := 0; out < n; out++ {
			if in == 0 && out == 0 {
				continue
			}
			bias := int(lat.At(in, out)) - half
			if bias < 0 {
				bias = -bias
			}
			m = max(m, bias)
		}
	}
	return m
}
