//go:build !windows

package com

import "github.com/Alfex4936/winspell/internal/service"

// Factory is unavailable outside Windows.
type Factory struct{}

// NewFactory always fails outside Windows.
func NewFactory() (*Factory, error) {
	EnsureInitialized()
	return nil, ErrUnsupportedPlatform
}

func (*Factory) SupportedLanguages() ([]string, error)  { return nil, ErrUnsupportedPlatform }
func (*Factory) IsSupported(string) (bool, error)       { return false, ErrUnsupportedPlatform }
func (*Factory) CreateSpellChecker(string) (service.Checker, error) {
	return nil, ErrUnsupportedPlatform
}
func (*Factory) Release() {}
