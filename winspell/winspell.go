// Package winspell is a thin wrapper around the operating system's spell
// checking service: the Windows Spell Checking API on Windows, hunspell
// elsewhere.
//
// Create a Spellchecker for the desired locale, then call Check. The
// returned SpellingErrors carry rune offsets and a Correction.
//
//	sc, err := winspell.NewDefault()
//	if err != nil {
//		return err
//	}
//	defer sc.Close()
//	errs, err := sc.Check("another one bitess the dust")
package winspell

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/Alfex4936/winspell/internal/com"
	"github.com/Alfex4936/winspell/internal/model"
	"github.com/Alfex4936/winspell/internal/service"
	"github.com/Alfex4936/winspell/internal/util"
)

// DefaultLocale is the locale used by NewDefault.
const DefaultLocale = "en-US"

// Spellchecker checks text for one locale. It holds no state besides the
// service handle, so it can be reused; concurrent use is as safe as the
// underlying service.
type Spellchecker struct {
	checker service.Checker
	locale  string
	logger  *log.Logger

	// mu is held for reading while the checker is in use and for
	// writing by Close.
	mu     sync.RWMutex
	closed bool
}

// New creates a Spellchecker for locale (e.g. "en-US").
//
// An unsupported locale yields ErrUnsupportedLocale. Any other failure is
// wrapped in ErrServiceUnavailable. The Spellchecker is nil in both cases.
func New(locale string, opts ...Option) (*Spellchecker, error) {
	com.EnsureInitialized()

	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	logger := o.logger.With("locale", locale)

	p, release, err := o.open()
	if err != nil {
		logger.Debug("spell checker factory unavailable", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}
	defer release()

	ok, err := p.IsSupported(locale)
	if err != nil {
		logger.Debug("locale support query failed", "err", err)
		return nil, fmt.Errorf("%w: is supported %q: %w", ErrServiceUnavailable, locale, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLocale, locale)
	}

	c, err := p.CreateSpellChecker(locale)
	if err != nil {
		logger.Debug("checker creation failed", "err", err)
		return nil, fmt.Errorf("%w: create checker %q: %w", ErrServiceUnavailable, locale, err)
	}

	return &Spellchecker{
		checker: c,
		locale:  locale,
		logger:  logger,
	}, nil
}

// NewDefault is New(DefaultLocale).
func NewDefault(opts ...Option) (*Spellchecker, error) {
	return New(DefaultLocale, opts...)
}

// Locale returns the locale the Spellchecker was created for.
func (s *Spellchecker) Locale() string { return s.locale }

// Close releases the service handle once calls in progress have returned.
// It is safe to call more than once.
func (s *Spellchecker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.checker.Release()
	return nil
}

// Ignore tells the service to accept word for the lifetime of this
// Spellchecker. Nothing is persisted.
func (s *Spellchecker) Ignore(word string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	if err := s.checker.Ignore(word); err != nil {
		return fmt.Errorf("%w: ignore: %w", ErrServiceUnavailable, err)
	}
	return nil
}

// Check runs a comprehensive check of text and returns every error in
// text order. The result is empty, not nil, when text has no errors. Any
// failure of the service discards the partial result and returns a nil
// slice with an error wrapping ErrServiceUnavailable.
func (s *Spellchecker) Check(text string) ([]SpellingError, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	errs, err := s.check(text)
	if err != nil {
		s.logger.Debug("check failed", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}
	return errs, nil
}

func (s *Spellchecker) check(text string) ([]SpellingError, error) {
	// The Windows service rejects empty text with E_INVALIDARG.
	if text == "" {
		return []SpellingError{}, nil
	}
	enum, err := s.checker.ComprehensiveCheck(text)
	if err != nil {
		return nil, fmt.Errorf("comprehensive check: %w", err)
	}
	defer enum.Release()

	units := util.NewUTF16Text(text)
	results := make([]SpellingError, 0)
	for {
		entry, ok := enum.Next()
		if !ok {
			return results, nil
		}
		e, err := s.resolve(units, entry)
		if err != nil {
			return nil, err
		}
		results = append(results, e)
	}
}

// resolve reads one error entry and releases it.
func (s *Spellchecker) resolve(units *util.UTF16Text, entry service.ErrorEntry) (SpellingError, error) {
	defer entry.Release()

	start, err := entry.StartIndex()
	if err != nil {
		return SpellingError{}, fmt.Errorf("start index: %w", err)
	}
	length, err := entry.Length()
	if err != nil {
		return SpellingError{}, fmt.Errorf("length: %w", err)
	}
	runeStart, runeLen, word, err := units.Span(int(start), int(length))
	if err != nil {
		return SpellingError{}, fmt.Errorf("span [%d,+%d): %w", start, length, err)
	}
	action, err := entry.CorrectiveAction()
	if err != nil {
		return SpellingError{}, fmt.Errorf("corrective action: %w", err)
	}

	var c Correction
	switch action {
	case service.ActionDelete:
		c = model.DeleteCorrection()
	case service.ActionGetSuggestions:
		list, err := s.suggest(word)
		if err != nil {
			return SpellingError{}, err
		}
		c = model.SuggestionsCorrection(list)
	case service.ActionReplace:
		r, err := entry.Replacement()
		if err != nil {
			return SpellingError{}, fmt.Errorf("replacement: %w", err)
		}
		v, err := service.Take(r)
		if err != nil {
			return SpellingError{}, fmt.Errorf("replacement: %w", err)
		}
		c = model.ReplacementCorrection(v)
	default:
		c = model.NoCorrection()
	}

	return SpellingError{Start: runeStart, Length: runeLen, Correction: c}, nil
}

// suggest drains the service's suggestions for word, releasing every
// string as soon as it is copied.
func (s *Spellchecker) suggest(word string) ([]string, error) {
	strs, err := s.checker.Suggest(word)
	if err != nil {
		return nil, fmt.Errorf("suggest %q: %w", word, err)
	}
	defer strs.Release()

	list := make([]string, 0)
	for {
		str, ok := strs.Next()
		if !ok {
			return list, nil
		}
		v, err := service.Take(str)
		if err != nil {
			return nil, fmt.Errorf("suggest %q: %w", word, err)
		}
		list = append(list, v)
	}
}
