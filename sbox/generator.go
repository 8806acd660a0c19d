package sbox

import (
	"fmt"

	"git.gammaspectra.live/P2Pool/sbox/types"
)

// Generator builds candidate S-boxes by evaluating random polynomials mod N.
//
// Coefficients are drawn so that c[1] is odd and both c[2] + c[4] + ... and c[3] + c[5] + ... are even.
// These constraints raise the share of bijective candidates, they do not guarantee one, see IsBijective.
type Generator struct {
	n      int
	source Source
}

func NewGenerator(n int, source Source) (*Generator, error) {
	if n <= 0 || n > types.MaxSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDomain, n)
	}
	return &Generator{
		n:      n,
		source: source,
	}, nil
}

func (g *Generator) Size() int {
	return g.n
}

func (g *Generator) draw() uint8 {
	return uint8(g.source.IntN(g.n))
}

// Coefficients draws a fresh coefficient vector satisfying the parity constraints
func (g *Generator) Coefficients() types.Coefficients {
	c := make(types.Coefficients, g.n)
	c[0] = g.draw()
	if g.n < 2 {
		return c
	}

	for {
		c[1] = g.draw()
		if c[1]&1 == 1 {
			break
		}
	}

	for {
		var even, odd uint
		for i := 2; i < g.n; i++ {
			c[i] = g.draw()
			if i&1 == 0 {
				even += uint(c[i])
			} else {
				odd += uint(c[i])
			}
		}
		if even&1 == 0 && odd&1 == 0 {
			return c
		}
	}
}

// Candidate returns the polynomial evaluated over [0, N) together with its coefficients.
// The result is not checked for bijectivity.
func (g *Generator) Candidate() (types.SBox, types.Coefficients) {
	c := g.Coefficients()
	return EvaluateAll(c, g.n), c
}
