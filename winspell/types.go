package winspell

import (
	"slices"

	"github.com/Alfex4936/winspell/internal/model"
)

type (
	// SpellingError is one finding: a rune span of the checked text and
	// how to correct it.
	SpellingError = model.SpellingError
	// Correction is a closed variant over none, delete, a list of
	// suggestions and a single replacement.
	Correction = model.Correction
	// CorrectionKind tags a Correction.
	CorrectionKind = model.CorrectionKind
	// Result is the JSON report produced by CheckResult.
	Result = model.Result
	// Item is a SpellingError with its flagged text and suggestion
	// distances.
	Item = model.Item
)

const (
	KindNone        = model.KindNone
	KindDelete      = model.KindDelete
	KindSuggestions = model.KindSuggestions
	KindReplacement = model.KindReplacement
)

var (
	NoCorrection          = model.NoCorrection
	DeleteCorrection      = model.DeleteCorrection
	SuggestionsCorrection = model.SuggestionsCorrection
	ReplacementCorrection = model.ReplacementCorrection
)

// SortErrors orders errs by start, length and correction.
func SortErrors(errs []SpellingError) {
	slices.SortFunc(errs, SpellingError.Compare)
}

// Dedup sorts errs and drops structurally equal duplicates.
func Dedup(errs []SpellingError) []SpellingError {
	SortErrors(errs)
	return slices.CompactFunc(errs, SpellingError.Equal)
}
