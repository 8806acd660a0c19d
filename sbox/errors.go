package sbox

import "errors"

var (
	// ErrInvalidSBox is returned when a mapping is not a permutation of [0, N) but one is required
	ErrInvalidSBox = errors.New("invalid sbox")
	// ErrInvalidDomain is returned for sizes outside [1, 256], or not a power of two where XOR indexing is used
	ErrInvalidDomain = errors.New("invalid domain size")
	// ErrSearchExhausted is returned along with a populated Result when no candidate met the threshold
	ErrSearchExhausted = errors.New("search exhausted")
)
