package types

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
)

func assertNoError(t *testing.T, err error, msgAndArgs ...any) {
	if err != nil {
		message := ""
		if len(msgAndArgs) > 0 {
			message = fmt.Sprint(msgAndArgs...) + ": "
		}
		t.Errorf("%sunexpected err: %s", message, err)
	}
}

func assertMalformed(t *testing.T, err error, contains string) {
	if !errors.Is(err, ErrMalformedInput) {
		t.Errorf("expected ErrMalformedInput, got %v", err)
		return
	}
	if !strings.Contains(err.Error(), contains) {
		t.Errorf("actual: %v expected: %v", err.Error(), contains)
	}
}

func assertEqual(t *testing.T, actual, expected any, msgAndArgs ...any) {
	if !reflect.DeepEqual(actual, expected) {
		message := ""
		if len(msgAndArgs) > 0 {
			message = fmt.Sprint(msgAndArgs...) + ": "
		}
		t.Errorf("%sactual: %v expected: %v", message, actual, expected)
	}
}

func TestParse(t *testing.T) {
	spec.Run(t, "ParseSBox", func(t *testing.T, when spec.G, it spec.S) {
		it("parses a bracketed list", func() {
			s, err := ParseSBox("[3,14,1,10,4,9,5,6,8,11,15,2,13,12,0,7]")
			assertNoError(t, err)
			assertEqual(t, s, SBox{3, 14, 1, 10, 4, 9, 5, 6, 8, 11, 15, 2, 13, 12, 0, 7})
		})

		it("parses whitespace and trailing separators", func() {
			s, err := ParseSBox("  [2, 0,\t3 1, ]\n")
			assertNoError(t, err)
			assertEqual(t, s, SBox{2, 0, 3, 1})
		})

		it("parses a bare list", func() {
			s, err := ParseSBox("1 0")
			assertNoError(t, err)
			assertEqual(t, s, SBox{1, 0})
		})

		it("round trips through String", func() {
			text := "[14,11,4,6,10,13,7,0,3,8,15,12,5,9,1,2]"
			s, err := ParseSBox(text)
			assertNoError(t, err)
			assertEqual(t, s.String(), text)
		})

		it("keeps non permutations", func() {
			s, err := ParseSBox("[0,0,1,1]")
			assertNoError(t, err)
			assertEqual(t, s, SBox{0, 0, 1, 1})
		})

		it("fails w/ unterminated list", func() {
			_, err := ParseSBox("[1,0")
			assertMalformed(t, err, "unterminated")
		})

		it("fails w/ empty list", func() {
			_, err := ParseSBox("[ ]")
			assertMalformed(t, err, "empty")
		})

		it("fails w/ non integer entry", func() {
			_, err := ParseSBox("[0,x,1]")
			assertMalformed(t, err, "entry 1")
		})

		it("fails w/ negative entry", func() {
			_, err := ParseSBox("[0,-1]")
			assertMalformed(t, err, "entry 1")
		})

		it("fails w/ out of range entry", func() {
			_, err := ParseSBox("[0,4,1,2]")
			assertMalformed(t, err, "out of range")
		})
	}, spec.Report(report.Log{}), spec.Parallel(), spec.Random())

	spec.Run(t, "WordFromString", func(t *testing.T, when spec.G, it spec.S) {
		it("parses four digits", func() {
			w, err := WordFromString("1a2b")
			assertNoError(t, err)
			assertEqual(t, w, Word(0x1a2b))
			assertEqual(t, w.String(), "1a2b")
		})

		it("parses prefixed upper case", func() {
			w, err := WordFromString("0xFFFF")
			assertNoError(t, err)
			assertEqual(t, w, Word(0xffff))
		})

		it("pads short input", func() {
			w, err := WordFromString("f")
			assertNoError(t, err)
			assertEqual(t, w, Word(0x000f))
			assertEqual(t, w.String(), "000f")
			assertEqual(t, MustWordFromString("0x0f"), w)
		})

		it("fails w/ too many digits", func() {
			_, err := WordFromString("12345")
			assertMalformed(t, err, "1 to 4 hex digits")
		})

		it("fails w/ invalid digits", func() {
			_, err := WordFromString("zz")
			assertMalformed(t, err, "zz")
		})

		it("fails w/ doubled prefix", func() {
			_, err := WordFromString("0x0X12")
			assertMalformed(t, err, "0X12")

			_, err = WordFromString("0X0x1")
			assertMalformed(t, err, "0x1")
		})
	}, spec.Report(report.Log{}), spec.Parallel(), spec.Random())
}

func TestSBox_Key(t *testing.T) {
	a, ok := SBox{0}.Key()
	if !ok {
		t.Fatal("expected key")
	}
	b, ok := SBox{0, 0}.Key()
	if !ok {
		t.Fatal("expected key")
	}
	if a == b {
		t.Fatalf("keys of different sizes collide: %s", a)
	}

	c, _ := SBox{1, 0, 3, 2}.Key()
	d, _ := SBox{1, 0, 3, 2}.Key()
	if c != d {
		t.Fatalf("expected equal keys, got %s and %s", c, d)
	}

	if _, ok = make(SBox, KeySize+1).Key(); ok {
		t.Fatal("expected no key past KeySize entries")
	}
	if _, ok = (SBox{0, 16}).Key(); ok {
		t.Fatal("expected no key for entries past a nibble")
	}
	if _, ok = (SBox{}).Key(); ok {
		t.Fatal("expected no key for empty sbox")
	}
}

func TestSBox_JSON(t *testing.T) {
	s := SBox{3, 0, 2, 1}
	buf, err := s.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(buf) != "[3,0,2,1]" {
		t.Fatalf("expected [3,0,2,1], got %s", buf)
	}

	var other SBox
	if err = other.UnmarshalJSON(buf); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(other, s) {
		t.Fatalf("expected %s, got %s", s, other)
	}

	if err = other.UnmarshalJSON([]byte("[256]")); err == nil {
		t.Fatal("expected error for value above 255")
	}
}

func TestWord_JSON(t *testing.T) {
	buf, err := Word(0xabcd).MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(buf) != `"abcd"` {
		t.Fatalf(`expected "abcd", got %s`, buf)
	}

	var w Word
	if err = w.UnmarshalJSON([]byte(`"0x00ff"`)); err != nil {
		t.Fatal(err)
	}
	if w != 0x00ff {
		t.Fatalf("expected 00ff, got %s", w)
	}
}

func TestWord_Nibble(t *testing.T) {
	w := Word(0x1234)
	for i, expected := range []uint8{4, 3, 2, 1} {
		if n := w.Nibble(i); n != expected {
			t.Errorf("nibble %d: expected %d, got %d", i, expected, n)
		}
	}
}

func FuzzParseSBox(f *testing.F) {
	f.Add("[3,14,1,10,4,9,5,6,8,11,15,2,13,12,0,7]")
	f.Add("1 0")
	f.Add("[0,,1]")
	f.Fuzz(func(t *testing.T, text string) {
		s, err := ParseSBox(text)
		if err != nil {
			t.SkipNow()
		}
		for i, v := range s {
			if int(v) >= len(s) {
				t.Fatalf("entry %d = %d out of range [0, %d)", i, v, len(s))
			}
		}
		again, err := ParseSBox(s.String())
		if err != nil {
			t.Fatalf("cannot parse own output %s: %s", s, err)
		}
		if !reflect.DeepEqual(again, s) {
			t.Fatalf("round trip mismatch: have %s, want %s", again, s)
		}
	})
}
