//go:build windows

package com

import (
	"runtime"
	"syscall"
	"unsafe"

	ole "github.com/go-ole/go-ole"
	"golang.org/x/sys/windows"

	"github.com/Alfex4936/winspell/internal/service"
)

var (
	clsidSpellCheckerFactory = ole.NewGUID("{7AB36653-1796-484B-BDFA-E74F1DB7C1DC}")
	iidISpellCheckerFactory  = ole.NewGUID("{8E018A9D-2415-4677-BF08-794EA61F94BB}")
)

// vtable slots, counted from IUnknown::QueryInterface.
const (
	factorySupportedLanguages = 3
	factoryIsSupported        = 4
	factoryCreateSpellChecker = 5

	checkerLanguageTag        = 3
	checkerSuggest            = 5
	checkerIgnore             = 7
	checkerComprehensiveCheck = 16

	errorEnumNext         = 3
	errorStartIndex       = 3
	errorLength           = 4
	errorCorrectiveAction = 5
	errorReplacement      = 6
	stringEnumNext        = 3

	// ISpellChecker has the longest vtable we index into.
	maxVtableLen = 17
)

// object is a raw COM interface pointer.
type object struct {
	unk *ole.IUnknown
}

func (o object) call(slot int, args ...uintptr) uintptr {
	vtbl := (*[maxVtableLen]uintptr)(unsafe.Pointer(o.unk.RawVTable))
	hr, _, _ := syscall.SyscallN(vtbl[slot], append([]uintptr{uintptr(unsafe.Pointer(o.unk))}, args...)...)
	return hr
}

func (o object) release() {
	if o.unk != nil {
		o.unk.Release()
	}
}

func hresult(hr uintptr) error {
	if hr != sOK {
		return ole.NewError(hr)
	}
	return nil
}

// Factory is ISpellCheckerFactory.
type Factory struct {
	object
}

// NewFactory activates the system spell checker factory.
func NewFactory() (*Factory, error) {
	EnsureInitialized()
	unk, err := ole.CreateInstance(clsidSpellCheckerFactory, iidISpellCheckerFactory)
	if err != nil {
		return nil, err
	}
	return &Factory{object{unk: unk}}, nil
}

func (f *Factory) SupportedLanguages() ([]string, error) {
	var enum *ole.IUnknown
	if err := hresult(f.call(factorySupportedLanguages, uintptr(unsafe.Pointer(&enum)))); err != nil {
		return nil, err
	}
	strs := &stringEnum{object{enum}}
	defer strs.Release()

	var tags []string
	for {
		s, ok := strs.Next()
		if !ok {
			return tags, nil
		}
		tag, err := service.Take(s)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
}

func (f *Factory) IsSupported(locale string) (bool, error) {
	tag, err := windows.UTF16PtrFromString(locale)
	if err != nil {
		return false, err
	}
	var supported int32
	hr := f.call(factoryIsSupported, uintptr(unsafe.Pointer(tag)), uintptr(unsafe.Pointer(&supported)))
	runtime.KeepAlive(tag)
	if err := hresult(hr); err != nil {
		return false, err
	}
	return supported != 0, nil
}

func (f *Factory) CreateSpellChecker(locale string) (service.Checker, error) {
	tag, err := windows.UTF16PtrFromString(locale)
	if err != nil {
		return nil, err
	}
	var checker *ole.IUnknown
	hr := f.call(factoryCreateSpellChecker, uintptr(unsafe.Pointer(tag)), uintptr(unsafe.Pointer(&checker)))
	runtime.KeepAlive(tag)
	if err := hresult(hr); err != nil {
		return nil, err
	}
	return &spellChecker{object{checker}}, nil
}

func (f *Factory) Release() { f.release() }

// spellChecker is ISpellChecker.
type spellChecker struct {
	object
}

func (c *spellChecker) LanguageTag() (string, error) {
	var p *uint16
	if err := hresult(c.call(checkerLanguageTag, uintptr(unsafe.Pointer(&p)))); err != nil {
		return "", err
	}
	return service.Take(&coString{p})
}

func (c *spellChecker) ComprehensiveCheck(text string) (service.ErrorEnum, error) {
	t, err := windows.UTF16PtrFromString(text)
	if err != nil {
		return nil, err
	}
	var enum *ole.IUnknown
	hr := c.call(checkerComprehensiveCheck, uintptr(unsafe.Pointer(t)), uintptr(unsafe.Pointer(&enum)))
	runtime.KeepAlive(t)
	if err := hresult(hr); err != nil {
		return nil, err
	}
	return &errorEnum{object{enum}}, nil
}

func (c *spellChecker) Suggest(word string) (service.StringEnum, error) {
	w, err := windows.UTF16PtrFromString(word)
	if err != nil {
		return nil, err
	}
	var enum *ole.IUnknown
	hr := c.call(checkerSuggest, uintptr(unsafe.Pointer(w)), uintptr(unsafe.Pointer(&enum)))
	runtime.KeepAlive(w)
	if err := hresult(hr); err != nil {
		return nil, err
	}
	return &stringEnum{object{enum}}, nil
}

func (c *spellChecker) Ignore(word string) error {
	w, err := windows.UTF16PtrFromString(word)
	if err != nil {
		return err
	}
	hr := c.call(checkerIgnore, uintptr(unsafe.Pointer(w)))
	runtime.KeepAlive(w)
	return hresult(hr)
}

func (c *spellChecker) Release() { c.release() }

// errorEnum is IEnumSpellingError.
type errorEnum struct {
	object
}

func (e *errorEnum) Next() (service.ErrorEntry, bool) {
	var entry *ole.IUnknown
	// S_FALSE marks the end of the enumeration.
	if hr := e.call(errorEnumNext, uintptr(unsafe.Pointer(&entry))); hr != sOK || entry == nil {
		return nil, false
	}
	return &spellingError{object{entry}}, true
}

func (e *errorEnum) Release() { e.release() }

// spellingError is ISpellingError.
type spellingError struct {
	object
}

func (e *spellingError) ulong(slot int) (uint32, error) {
	var v uint32
	if err := hresult(e.call(slot, uintptr(unsafe.Pointer(&v)))); err != nil {
		return 0, err
	}
	return v, nil
}

func (e *spellingError) StartIndex() (uint32, error) { return e.ulong(errorStartIndex) }

func (e *spellingError) Length() (uint32, error) { return e.ulong(errorLength) }

func (e *spellingError) CorrectiveAction() (service.Action, error) {
	v, err := e.ulong(errorCorrectiveAction)
	return service.Action(v), err
}

func (e *spellingError) Replacement() (service.String, error) {
	var p *uint16
	if err := hresult(e.call(errorReplacement, uintptr(unsafe.Pointer(&p)))); err != nil {
		return nil, err
	}
	return &coString{p}, nil
}

func (e *spellingError) Release() { e.release() }

// stringEnum is IEnumString.
type stringEnum struct {
	object
}

func (s *stringEnum) Next() (service.String, bool) {
	var p *uint16
	var fetched uint32
	hr := s.call(stringEnumNext, 1, uintptr(unsafe.Pointer(&p)), uintptr(unsafe.Pointer(&fetched)))
	if hr != sOK || p == nil {
		return nil, false
	}
	return &coString{p}, true
}

func (s *stringEnum) Release() { s.release() }

// coString is an LPWSTR allocated with CoTaskMemAlloc.
type coString struct {
	p *uint16
}

func (s *coString) Value() (string, error) {
	return windows.UTF16PtrToString(s.p), nil
}

func (s *coString) Release() {
	if s.p != nil {
		windows.CoTaskMemFree(unsafe.Pointer(s.p))
		s.p = nil
	}
}

var _ service.Provider = (*Factory)(nil)
