package util

import (
	"errors"
	"unicode/utf16"
)

// ErrSpanOutOfRange reports a UTF-16 span that does not fit the text.
var ErrSpanOutOfRange = errors.New("util: span out of range")

// UTF16Text indexes a string by UTF-16 code units, the unit native text
// services report offsets in.
type UTF16Text struct {
	units []uint16
	// runeAt[i] is the rune index of the code unit i; len(units) maps to
	// the rune count.
	runeAt []int
}

// NewUTF16Text encodes s once for repeated span lookups.
func NewUTF16Text(s string) *UTF16Text {
	t := &UTF16Text{
		units:  make([]uint16, 0, len(s)),
		runeAt: make([]int, 0, len(s)+1),
	}
	n := 0
	for _, r := range s {
		before := len(t.units)
		t.units = utf16.AppendRune(t.units, r)
		for range len(t.units) - before {
			t.runeAt = append(t.runeAt, n)
		}
		n++
	}
	t.runeAt = append(t.runeAt, n)
	return t
}

// Len returns the length in UTF-16 code units.
func (t *UTF16Text) Len() int { return len(t.units) }

// Span converts a UTF-16 span to rune start and length and returns the
// spanned substring.
func (t *UTF16Text) Span(start, length int) (runeStart, runeLen int, sub string, err error) {
	if start < 0 || length < 0 || start+length > len(t.units) {
		return 0, 0, "", ErrSpanOutOfRange
	}
	end := start + length
	runeStart = t.runeAt[start]
	runeLen = t.runeAt[end] - runeStart
	return runeStart, runeLen, string(utf16.Decode(t.units[start:end])), nil
}
