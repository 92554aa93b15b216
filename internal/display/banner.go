package display

import (
	"fmt"
	"os"

	"github.com/backmassage/rdmdenoise/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	fmt.Fprint(os.Stdout, term.Magenta)
	fmt.Fprint(os.Stdout, `          _               _                 _
 _ __ __| |_ __ ___   __| | ___ _ __   ___ (_)___  ___
| '__/ _`+"`"+` | '_ `+"`"+` _ \ / _`+"`"+` |/ _ \ '_ \ / _ \| / __|/ _ \
| | | (_| | | | | | | (_| |  __/ | | | (_) | \__ \  __/
|_|  \__,_|_| |_| |_|\__,_|\___|_| |_|\___/|_|___/\___|
`)
	if term.Enabled() {
		fmt.Fprint(os.Stdout, term.NC)
	}
	fmt.Fprintln(os.Stdout)
}
