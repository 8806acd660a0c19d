package sbox

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"io"
	"math"
	"math/rand/v2"

	"git.gammaspectra.live/P2Pool/sbox/utils"
	"golang.org/x/crypto/sha3"
)

// Source yields uniform integers in [0, n). Implementations are not safe for concurrent use.
type Source interface {
	IntN(n int) int
}

type seededSource struct {
	r *rand.Rand
}

// NewSeededSource returns a fast reproducible source
func NewSeededSource(seed uint64) Source {
	return seededSource{
		r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (s seededSource) IntN(n int) int {
	return s.r.IntN(n)
}

// readerSource rejection samples 32-bit words read from an entropy stream
type readerSource struct {
	r      io.Reader
	buf    [136]byte
	offset int
}

func newReaderSource(r io.Reader) *readerSource {
	s := &readerSource{r: r}
	s.offset = len(s.buf)
	return s
}

// NewShakeSource returns a reproducible source expanding seed with SHAKE256
func NewShakeSource(seed []byte) Source {
	h := sha3.NewShake256()
	_, _ = h.Write([]byte("sbox_source"))
	_, _ = h.Write(seed)
	return newReaderSource(h)
}

// NewSystemSource returns a non-reproducible source backed by crypto/rand
func NewSystemSource() Source {
	return newReaderSource(cryptorand.Reader)
}

func (s *readerSource) uint32() uint32 {
	if s.offset+4 > len(s.buf) {
		if _, err := io.ReadFull(s.r, s.buf[:]); err != nil {
			utils.Panicf("random source read failed: %s", err)
		}
		s.offset = 0
	}
	v := binary.LittleEndian.Uint32(s.buf[s.offset:])
	s.offset += 4
	return v
}

func (s *readerSource) IntN(n int) int {
	if n <= 0 || uint64(n) > math.MaxUint32 {
		utils.Panicf("invalid argument to IntN: %d", n)
	}
	m := uint64(n)
	// largest multiple of n that fits, values at or past it would bias the modulo
	limit := (uint64(math.MaxUint32) + 1) / m * m
	for {
		if v := uint64(s.uint32()); v < limit {
			return int(v % m)
		}
	}
}
