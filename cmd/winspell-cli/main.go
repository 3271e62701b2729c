// Command winspell-cli pipes stdin (or a file) through the system spell
// checker and prints the result.
//
// Usage:
//
//	echo "another one bitess the dust" | winspell-cli
//	winspell-cli check -f text.txt --locale en-GB --format pretty
//	winspell-cli locales
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
)

// Version is set at build time.
var Version = "dev"

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
