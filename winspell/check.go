package winspell

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/Alfex4936/winspell/internal/model"
	"github.com/Alfex4936/winspell/internal/util"
)

// CheckResult checks text and builds a Result: the findings that survive
// dict, their flagged text and suggestion distances, and text with every
// correction applied.
//
// dict may be nil.
func (s *Spellchecker) CheckResult(text string, dict *Dict) (*Result, error) {
	errs, err := s.Check(text)
	if err != nil {
		return nil, err
	}
	errs = FilterByDict(text, errs, dict)
	return buildResult(text, s.locale, errs), nil
}

func buildResult(text, locale string, errs []SpellingError) *Result {
	runes := []rune(text)
	items := make([]model.Item, 0, len(errs))
	for _, e := range errs {
		origin := string(runes[e.Start:e.End()])
		items = append(items, model.Item{
			SpellingError: e,
			Origin:        origin,
			Distances:     util.Distances(origin, e.Correction.Suggestions),
		})
	}

	res := &Result{
		Original:   text,
		Corrected:  ApplyCorrections(text, errs),
		CharCount:  utf8.RuneCountInString(text),
		Locale:     locale,
		ErrorCount: len(items),
		Errors:     items,
	}
	res.EditDistance = util.Levenshtein(res.Original, res.Corrected)
	return res
}

// ApplyCorrections resolves every error in text: Delete removes the span,
// Suggestions takes the first suggestion, Replacement takes the
// replacement and None leaves the span as is. Overlapping spans after the
// first are skipped.
func ApplyCorrections(text string, errs []SpellingError) string {
	if len(errs) == 0 {
		return text
	}
	// Apply right-to-left so earlier rune offsets stay valid.
	sorted := slices.Clone(errs)
	slices.SortFunc(sorted, func(a, b SpellingError) int { return b.Compare(a) })

	runes := []rune(text)
	limit := len(runes)
	for _, e := range sorted {
		if e.End() > limit || e.Start < 0 {
			continue
		}
		var repl []rune
		switch c := e.Correction; c.Kind {
		case KindDelete:
		case KindSuggestions:
			if len(c.Suggestions) == 0 {
				continue
			}
			repl = []rune(c.Suggestions[0])
		case KindReplacement:
			repl = []rune(c.Replacement)
		default:
			continue
		}
		runes = slices.Replace(runes, e.Start, e.End(), repl...)
		limit = e.Start
	}
	return string(runes)
}

// FilterByDict drops errors whose flagged text is a dictionary word.
// Delete findings flag a repeat, not a spelling, and are always kept.
func FilterByDict(text string, errs []SpellingError, dict *Dict) []SpellingError {
	if dict.Len() == 0 || len(errs) == 0 {
		return errs
	}
	runes := []rune(text)
	kept := errs[:0:0]
	for _, e := range errs {
		if e.Correction.Kind != KindDelete && e.End() <= len(runes) && dict.Contains(strings.TrimSpace(string(runes[e.Start:e.End()]))) {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}
