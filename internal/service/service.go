// Package service describes the native spell-checking collaborator that
// winspell marshals against: a factory, per-locale checkers and the two
// enumeration protocols (spelling errors and suggestion strings).
//
// Offsets reported by an ErrorEntry are UTF-16 code units into the text
// passed to ComprehensiveCheck, as on the Windows Spell Checking API.
package service

// Action is the corrective action the service recommends for an error.
// Values match CORRECTIVE_ACTION in spellcheck.h.
type Action uint32

const (
	ActionNone           Action = 0
	ActionGetSuggestions Action = 1
	ActionReplace        Action = 2
	ActionDelete         Action = 3
)

// Provider is the checker factory (ISpellCheckerFactory).
type Provider interface {
	SupportedLanguages() ([]string, error)
	IsSupported(locale string) (bool, error)
	CreateSpellChecker(locale string) (Checker, error)
	Release()
}

// Checker is a locale-bound checker instance (ISpellChecker).
type Checker interface {
	LanguageTag() (string, error)
	ComprehensiveCheck(text string) (ErrorEnum, error)
	Suggest(word string) (StringEnum, error)
	Ignore(word string) error
	Release()
}

// ErrorEnum yields errors left to right. ok is false once exhausted; any
// non-success status from the service counts as exhaustion.
type ErrorEnum interface {
	Next() (e ErrorEntry, ok bool)
	Release()
}

// ErrorEntry is one detected error (ISpellingError).
type ErrorEntry interface {
	StartIndex() (uint32, error)
	Length() (uint32, error)
	CorrectiveAction() (Action, error)
	Replacement() (String, error)
	Release()
}

// StringEnum yields suggestion strings (IEnumString). ok is false once
// exhausted or when the service hands back a null entry.
type StringEnum interface {
	Next() (s String, ok bool)
	Release()
}

// String is a string owned by the service allocator. Release must be
// called exactly once.
type String interface {
	Value() (string, error)
	Release()
}

// Take copies s into a Go string and releases the native buffer, also
// when the copy fails.
func Take(s String) (string, error) {
	defer s.Release()
	return s.Value()
}
