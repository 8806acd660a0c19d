package types

import (
	"encoding/binary"
	"fmt"
	"strings"

	fasthex "github.com/tmthrgd/go-hex"
)

// Word is the 16-bit block handled by the nibble substitution-permutation layer
type Word uint16

// WordFromString parses one to four hex digits, with an optional 0x prefix.
func WordFromString(s string) (Word, error) {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if len(s) == 0 || len(s) > 4 {
		return 0, fmt.Errorf("%w: word %q must have 1 to 4 hex digits", ErrMalformedInput, s)
	}

	var buf [2]byte
	if _, err := fasthex.Decode(buf[:], []byte(strings.Repeat("0", 4-len(s))+s)); err != nil {
		return 0, fmt.Errorf("%w: word %q: %w", ErrMalformedInput, s, err)
	}
	return Word(binary.BigEndian.Uint16(buf[:])), nil
}

func MustWordFromString(s string) Word {
	if w, err := WordFromString(s); err != nil {
		panic(err)
	} else {
		return w
	}
}

// Nibble returns the 4-bit group i, 0 being the least significant
func (w Word) Nibble(i int) uint8 {
	return uint8(w>>(4*i)) & 0xf
}

func (w Word) String() string {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], uint16(w))
	return fasthex.EncodeToString(buf[:])
}

func (w Word) MarshalJSON() ([]byte, error) {
	var buf [4 + 2]byte
	buf[0] = '"'
	buf[len(buf)-1] = '"'
	var raw [2]byte
	binary.BigEndian.PutUint16(raw[:], uint16(w))
	fasthex.Encode(buf[1:], raw[:])
	return buf[:], nil
}

func (w *Word) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("%w: word must be a hex string", ErrMalformedInput)
	}
	v, err := WordFromString(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*w = v
	return nil
}
