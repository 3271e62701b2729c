package model

import (
	"cmp"
	"fmt"
	"slices"
)

// CorrectionKind tags the variant held by a Correction.
// The zero value is KindNone.
type CorrectionKind uint8

const (
	KindNone        CorrectionKind = iota // no correction offered
	KindDelete                            // delete the span
	KindSuggestions                       // pick one of Suggestions
	KindReplacement                       // replace with Replacement
)

var kindNames = [...]string{"none", "delete", "suggestions", "replacement"}

func (k CorrectionKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("CorrectionKind(%d)", uint8(k))
}

func (k CorrectionKind) MarshalText() ([]byte, error) {
	if int(k) >= len(kindNames) {
		return nil, fmt.Errorf("model: unknown correction kind %d", uint8(k))
	}
	return []byte(kindNames[k]), nil
}

func (k *CorrectionKind) UnmarshalText(b []byte) error {
	for i, n := range kindNames {
		if n == string(b) {
			*k = CorrectionKind(i)
			return nil
		}
	}
	return fmt.Errorf("model: unknown correction kind %q", b)
}

// Correction is how a SpellingError can be resolved. Only the field that
// belongs to Kind is set.
type Correction struct {
	Kind        CorrectionKind `json:"kind"`
	Suggestions []string       `json:"suggestions,omitempty"` // KindSuggestions, may be empty
	Replacement string         `json:"replacement,omitempty"` // KindReplacement
}

func NoCorrection() Correction     { return Correction{} }
func DeleteCorrection() Correction { return Correction{Kind: KindDelete} }

func SuggestionsCorrection(s []string) Correction {
	return Correction{Kind: KindSuggestions, Suggestions: s}
}

func ReplacementCorrection(s string) Correction {
	return Correction{Kind: KindReplacement, Replacement: s}
}

// Compare orders corrections by kind, then suggestion list, then
// replacement.
func (c Correction) Compare(o Correction) int {
	if r := cmp.Compare(c.Kind, o.Kind); r != 0 {
		return r
	}
	if r := slices.Compare(c.Suggestions, o.Suggestions); r != 0 {
		return r
	}
	return cmp.Compare(c.Replacement, o.Replacement)
}

// SpellingError is one finding. Start and Length are rune offsets into the
// checked text.
type SpellingError struct {
	Start      int        `json:"start"`
	Length     int        `json:"length"`
	Correction Correction `json:"correction"`
}

// End is the exclusive rune offset of the span.
func (e SpellingError) End() int { return e.Start + e.Length }

// Compare orders errors lexicographically by start, length and correction.
func (e SpellingError) Compare(o SpellingError) int {
	if r := cmp.Compare(e.Start, o.Start); r != 0 {
		return r
	}
	if r := cmp.Compare(e.Length, o.Length); r != 0 {
		return r
	}
	return e.Correction.Compare(o.Correction)
}

// Equal reports structural equality.
func (e SpellingError) Equal(o SpellingError) bool { return e.Compare(o) == 0 }

// Item is a SpellingError enriched for reporting.
type Item struct {
	SpellingError
	Origin    string `json:"origin"`              // flagged slice of the text
	Distances []int  `json:"distances,omitempty"` // Levenshtein(origin, suggestion[i])
}

// Result is JSON-serialisable as-is.
type Result struct {
	Original     string `json:"original"`
	Corrected    string `json:"corrected"`    // first suggestion/replacement applied
	EditDistance int    `json:"editDistance"` // Levenshtein(original, corrected)
	CharCount    int    `json:"charCount"`    // UTF-8 rune length
	Locale       string `json:"locale"`
	ErrorCount   int    `json:"errorCount"`
	Errors       []Item `json:"errors"`
}
