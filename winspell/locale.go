package winspell

import (
	"fmt"
	"strings"

	golocale "github.com/jeandeaual/go-locale"
	"golang.org/x/text/language"
)

// CanonicalLocale normalizes a locale such as "en_us" or "EN-US" to its
// BCP 47 form ("en-US").
func CanonicalLocale(locale string) (string, error) {
	tag, err := language.Parse(strings.ReplaceAll(strings.TrimSpace(locale), "_", "-"))
	if err != nil {
		return "", fmt.Errorf("winspell: invalid locale %q: %w", locale, err)
	}
	return tag.String(), nil
}

// SystemLocale returns the user's preferred locale in BCP 47 form.
func SystemLocale() (string, error) {
	l, err := golocale.GetLocale()
	if err != nil {
		return "", fmt.Errorf("winspell: detect system locale: %w", err)
	}
	return CanonicalLocale(l)
}

// NewForSystemLocale is New(SystemLocale()). There is no fallback when the
// system locale is not supported.
func NewForSystemLocale(opts ...Option) (*Spellchecker, error) {
	l, err := SystemLocale()
	if err != nil {
		return nil, err
	}
	return New(l, opts...)
}

// IsSupported asks the service whether it has a checker for locale.
func IsSupported(locale string, opts ...Option) (bool, error) {
	o, err := newOptions(opts)
	if err != nil {
		return false, err
	}
	p, release, err := o.open()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}
	defer release()

	ok, err := p.IsSupported(locale)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}
	return ok, nil
}

// SupportedLocales lists the locales the service can check.
func SupportedLocales(opts ...Option) ([]string, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	p, release, err := o.open()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}
	defer release()

	tags, err := p.SupportedLanguages()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}
	return tags, nil
}
