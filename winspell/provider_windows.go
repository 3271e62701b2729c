//go:build windows

package winspell

import (
	"github.com/Alfex4936/winspell/internal/com"
	"github.com/Alfex4936/winspell/internal/service"
)

// platformProvider activates ISpellCheckerFactory.
func platformProvider() (service.Provider, error) {
	f, err := com.NewFactory()
	if err != nil {
		return nil, err
	}
	return f, nil
}
