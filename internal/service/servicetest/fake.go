// Package servicetest provides an in-memory service.Provider for tests.
//
// The fake checks words against a fixed vocabulary and accounts for every
// native handle and string it hands out, so tests can assert that each one
// is released exactly once.
package servicetest

import (
	"errors"
	"strings"
	"sync"
	"unicode"
	"unicode/utf16"

	"github.com/Alfex4936/winspell/internal/service"
)

// ErrInjected is returned by every failure the fake is told to inject.
var ErrInjected = errors.New("servicetest: injected failure")

// Failure names a fake call that should fail.
type Failure int

const (
	FailNone Failure = iota
	FailIsSupported
	FailCreate
	FailCheck
	FailStart
	FailLength
	FailAction
	FailReplacement
	FailSuggest
	FailStringValue
)

// Entry describes how the fake reports a misspelled word.
type Entry struct {
	Action      service.Action
	Suggestions []string
	Replacement string
	// Span, if set, is reported instead of the word's own offsets.
	Span *Span
}

// Span is a UTF-16 span reported by the fake.
type Span struct {
	Start, Length uint32
}

// Provider is a fake checker factory.
type Provider struct {
	Locales []string
	// Words maps misspelled words to the entry reported for them. Words
	// absent from the map are correct.
	Words map[string]Entry
	// RepeatedWordDelete reports an immediately repeated word as a
	// Delete finding, as the Windows service does.
	RepeatedWordDelete bool
	Fail               Failure
	// OnCheck, if set, runs at the start of every ComprehensiveCheck.
	OnCheck func(text string)

	mu       sync.Mutex
	live     map[string]int
	released map[string]int
	doubles  int
}

// NewProvider returns a fake supporting en-US with a small vocabulary of
// typos.
func NewProvider() *Provider {
	return &Provider{
		Locales: []string{"en-US", "en-GB"},
		Words: map[string]Entry{
			"bitess":   {Action: service.ActionGetSuggestions, Suggestions: []string{"bites", "bitesize"}},
			"whitness": {Action: service.ActionGetSuggestions, Suggestions: []string{"whiteness", "witness"}},
			"teh":      {Action: service.ActionReplace, Replacement: "the"},
			"zzxq":     {Action: service.ActionGetSuggestions},
			"qqq":      {Action: service.ActionNone},
		},
		RepeatedWordDelete: true,
	}
}

func (p *Provider) acquire(kind string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.live == nil {
		p.live = map[string]int{}
		p.released = map[string]int{}
	}
	p.live[kind]++
}

func (p *Provider) release(kind string, done *bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if *done {
		p.doubles++
		return
	}
	*done = true
	p.live[kind]--
	p.released[kind]++
}

// Live reports handles and strings of the given kind ("checker", "errors",
// "entry", "strings", "string") that were handed out and not released.
func (p *Provider) Live(kind string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.live[kind]
}

// Released reports how many handles of kind were released.
func (p *Provider) Released(kind string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.released[kind]
}

// DoubleReleases reports Release calls on already released values.
func (p *Provider) DoubleReleases() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doubles
}

func (p *Provider) SupportedLanguages() ([]string, error) {
	return append([]string(nil), p.Locales...), nil
}

func (p *Provider) IsSupported(locale string) (bool, error) {
	if p.Fail == FailIsSupported {
		return false, ErrInjected
	}
	for _, l := range p.Locales {
		if strings.EqualFold(l, locale) {
			return true, nil
		}
	}
	return false, nil
}

func (p *Provider) CreateSpellChecker(locale string) (service.Checker, error) {
	if p.Fail == FailCreate {
		return nil, ErrInjected
	}
	p.acquire("checker")
	return &checker{p: p, locale: locale, ignored: map[string]bool{}}, nil
}

func (p *Provider) Release() {}

type checker struct {
	p       *Provider
	locale  string
	done    bool
	mu      sync.Mutex
	ignored map[string]bool
}

func (c *checker) LanguageTag() (string, error) { return c.locale, nil }

func (c *checker) Ignore(word string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ignored[word] = true
	return nil
}

func (c *checker) Release() { c.p.release("checker", &c.done) }

func (c *checker) ComprehensiveCheck(text string) (service.ErrorEnum, error) {
	if c.p.OnCheck != nil {
		c.p.OnCheck(text)
	}
	if c.p.Fail == FailCheck {
		return nil, ErrInjected
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	var entries []*entry
	var prev string
	for _, w := range words(text) {
		lower := strings.ToLower(w.text)
		switch e, bad := c.p.Words[w.text]; {
		case c.ignored[w.text]:
		case c.p.RepeatedWordDelete && lower == prev:
			// span covers the separator and the repeated word
			entries = append(entries, &entry{p: c.p, start: w.sepStart, length: w.end - w.sepStart, action: service.ActionDelete})
		case bad:
			start, length := w.start, w.end-w.start
			if e.Span != nil {
				start, length = e.Span.Start, e.Span.Length
			}
			entries = append(entries, &entry{p: c.p, start: start, length: length, action: e.Action, replacement: e.Replacement})
		}
		prev = lower
	}
	c.p.acquire("errors")
	return &errorEnum{p: c.p, entries: entries}, nil
}

func (c *checker) Suggest(word string) (service.StringEnum, error) {
	if c.p.Fail == FailSuggest {
		return nil, ErrInjected
	}
	c.p.acquire("strings")
	return &stringEnum{p: c.p, items: c.p.Words[word].Suggestions}, nil
}

type errorEnum struct {
	p       *Provider
	entries []*entry
	pos     int
	done    bool
}

func (e *errorEnum) Next() (service.ErrorEntry, bool) {
	if e.pos >= len(e.entries) {
		return nil, false
	}
	en := e.entries[e.pos]
	e.pos++
	e.p.acquire("entry")
	return en, true
}

func (e *errorEnum) Release() { e.p.release("errors", &e.done) }

type entry struct {
	p           *Provider
	start       uint32
	length      uint32
	action      service.Action
	replacement string
	done        bool
}

func (e *entry) StartIndex() (uint32, error) {
	if e.p.Fail == FailStart {
		return 0, ErrInjected
	}
	return e.start, nil
}

func (e *entry) Length() (uint32, error) {
	if e.p.Fail == FailLength {
		return 0, ErrInjected
	}
	return e.length, nil
}

func (e *entry) CorrectiveAction() (service.Action, error) {
	if e.p.Fail == FailAction {
		return 0, ErrInjected
	}
	return e.action, nil
}

func (e *entry) Replacement() (service.String, error) {
	if e.p.Fail == FailReplacement {
		return nil, ErrInjected
	}
	return e.p.newString(e.replacement), nil
}

func (e *entry) Release() { e.p.release("entry", &e.done) }

type stringEnum struct {
	p     *Provider
	items []string
	pos   int
	done  bool
}

func (s *stringEnum) Next() (service.String, bool) {
	if s.pos >= len(s.items) {
		return nil, false
	}
	v := s.items[s.pos]
	s.pos++
	return s.p.newString(v), true
}

func (s *stringEnum) Release() { s.p.release("strings", &s.done) }

type nativeString struct {
	p    *Provider
	v    string
	done bool
}

func (p *Provider) newString(v string) *nativeString {
	p.acquire("string")
	return &nativeString{p: p, v: v}
}

func (s *nativeString) Value() (string, error) {
	if s.p.Fail == FailStringValue {
		return "", ErrInjected
	}
	return s.v, nil
}

func (s *nativeString) Release() { s.p.release("string", &s.done) }

type word struct {
	text     string
	sepStart uint32 // end of the previous word, in UTF-16 units
	start    uint32
	end      uint32
}

// words splits text into letter runs with UTF-16 offsets.
func words(text string) []word {
	var out []word
	var pos, lastEnd uint32
	var cur []rune
	var start uint32
	flush := func() {
		if len(cur) > 0 {
			out = append(out, word{text: string(cur), sepStart: lastEnd, start: start, end: pos})
			lastEnd = pos
			cur = cur[:0]
		}
	}
	for _, r := range text {
		if unicode.IsLetter(r) || r == '\'' {
			if len(cur) == 0 {
				start = pos
			}
			cur = append(cur, r)
		} else {
			flush()
		}
		pos += uint32(utf16.RuneLen(r))
	}
	flush()
	return out
}
