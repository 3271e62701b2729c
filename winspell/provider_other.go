//go:build !windows

package winspell

import (
	"github.com/Alfex4936/winspell/internal/local"
	"github.com/Alfex4936/winspell/internal/service"
)

// platformProvider falls back to the system hunspell installation.
func platformProvider() (service.Provider, error) {
	return local.NewProvider(""), nil
}
