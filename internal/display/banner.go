package display

import (
	"fmt"
	"os"

	"github.com/rbatista/convmux/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Enabled() {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, `  ____                 __  __
 / ___|___  _ ____   _|  \/  |_   ___  __
| |   / _ \| '_ \ \ / / |\/| | | | \ \/ /
| |__| (_) | | | \ V /| |  | | |_| |>  <
 \____\___/|_| |_|\_/ |_|  |_|\__,_/_/\_\
`)
	if term.Enabled() {
		fmt.Fprintln(os.Stdout, term.NC)
	} else {
		fmt.Fprintln(os.Stdout)
	}
}
