package winspell

import (
	"errors"

	"github.com/Alfex4936/winspell/internal/com"
)

var (
	// ErrUnsupportedLocale is the regular negative answer of New: the
	// service has no checker for the requested locale.
	ErrUnsupportedLocale = errors.New("winspell: locale not supported")

	// ErrServiceUnavailable wraps every failure of the native service.
	ErrServiceUnavailable = errors.New("winspell: spell checking service failed")

	// ErrClosed is returned by a Spellchecker after Close.
	ErrClosed = errors.New("winspell: spellchecker closed")

	// ErrUnsupportedPlatform is returned when the host has no spell
	// checking service winspell can bind to.
	ErrUnsupportedPlatform = com.ErrUnsupportedPlatform
)

func isUnsupported(err error) bool { return errors.Is(err, ErrUnsupportedLocale) }
