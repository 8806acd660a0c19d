package types

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"

	"git.gammaspectra.live/P2Pool/sbox/utils"
	fasthex "github.com/tmthrgd/go-hex"
	"lukechampine.com/uint128"
)

// MaxSize is the largest domain an S-box value can address
const MaxSize = math.MaxUint8 + 1

// KeySize is the largest S-box size that packs into an SBoxKey
const KeySize = 16

var ErrMalformedInput = errors.New("malformed input")

// SBoxKey packs up to KeySize 4-bit entries into Lo and the entry count into Hi
type SBoxKey = uint128.Uint128

// SBox maps x to SBox[x]. It is only a valid substitution when it is a permutation of [0, len).
//
//nolint:recvcheck
type SBox []uint8

func (s SBox) Size() int {
	return len(s)
}

func (s SBox) Clone() SBox {
	return append(SBox(nil), s...)
}

// Key returns a comparable identity for small S-boxes.
// ok is false past KeySize entries or when an entry does not fit in a nibble.
func (s SBox) Key() (key SBoxKey, ok bool) {
	if len(s) == 0 || len(s) > KeySize {
		return key, false
	}
	var lo uint64
	for i, v := range s {
		if v >= KeySize {
			return key, false
		}
		lo |= uint64(v) << (4 * i)
	}
	return uint128.New(lo, uint64(len(s))), true
}

func (s SBox) Hex() string {
	return fasthex.EncodeToString(s)
}

// String renders the same bracketed list ParseSBox accepts
func (s SBox) String() string {
	return string(appendList(nil, s))
}

func (s SBox) MarshalJSON() ([]byte, error) {
	return marshalUint8Slice(s)
}

func (s *SBox) UnmarshalJSON(buf []byte) error {
	return unmarshalUint8Slice(buf, (*[]uint8)(s))
}

// Coefficients are the polynomial coefficients c[0..N-1], lowest degree first
//
//nolint:recvcheck
type Coefficients []uint8

func (c Coefficients) String() string {
	return string(appendList(nil, c))
}

func (c Coefficients) MarshalJSON() ([]byte, error) {
	return marshalUint8Slice(c)
}

func (c *Coefficients) UnmarshalJSON(buf []byte) error {
	return unmarshalUint8Slice(buf, (*[]uint8)(c))
}

func appendList[T ~[]uint8](buf []byte, s T) []byte {
	buf = append(buf, '[')
	for i, v := range s {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendUint(buf, uint64(v), 10)
	}
	return append(buf, ']')
}

func marshalUint8Slice[T ~[]uint8](b T) ([]byte, error) {
	a := make([]uint16, len(b))
	for i := range a {
		a[i] = uint16(b[i])
	}
	return utils.MarshalJSON(a)
}

func unmarshalUint8Slice(buf []byte, b *[]uint8) error {
	var a []uint16
	if err := utils.UnmarshalJSON(buf, &a); err != nil {
		return err
	}
	*b = (*b)[:0]
	for _, v := range a {
		if v > math.MaxUint8 {
			return errors.New("invalid value")
		}
		*b = append(*b, uint8(v))
	}

	return nil
}

func isSeparator(c byte) bool {
	return c == ',' || c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// ParseSBox reads a list of decimal values such as "[3,14,1,10]".
// Brackets are optional and values may be separated by commas or whitespace.
// Every value must be below the number of values given.
func ParseSBox(text string) (SBox, error) {
	buf := bytes.TrimSpace([]byte(text))
	if len(buf) > 0 && buf[0] == '[' {
		if buf[len(buf)-1] != ']' {
			return nil, fmt.Errorf("%w: unterminated list", ErrMalformedInput)
		}
		buf = buf[1 : len(buf)-1]
	}

	var values []uint64
	for len(buf) > 0 {
		for len(buf) > 0 && isSeparator(buf[0]) {
			buf = buf[1:]
		}
		if len(buf) == 0 {
			break
		}
		end := 0
		for end < len(buf) && !isSeparator(buf[end]) {
			end++
		}
		v, err := utils.ParseUint64(buf[:end])
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrMalformedInput, len(values), err)
		}
		values = append(values, v)
		buf = buf[end:]
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("%w: empty list", ErrMalformedInput)
	}
	if len(values) > MaxSize {
		return nil, fmt.Errorf("%w: %d entries, at most %d supported", ErrMalformedInput, len(values), MaxSize)
	}

	s := make(SBox, len(values))
	for i, v := range values {
		if v >= uint64(len(values)) {
			return nil, fmt.Errorf("%w: entry %d = %d out of range [0, %d)", ErrMalformedInput, i, v, len(values))
		}
		s[i] = uint8(v)
	}
	return s, nil
}

func MustSBoxFromString(text string) SBox {
	if s, err := ParseSBox(text); err != nil {
		panic(err)
	} else {
		return s
	}
}
