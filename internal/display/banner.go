// Package display holds console presentation helpers shared by both commands.
package display

import (
	"fmt"
	"os"

	"github.com/ccontreras/formgen/internal/logging"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if logging.Magenta != "" {
		fmt.Fprint(os.Stdout, "\033[1;95m")
	}
	fmt.Fprint(os.Stdout, ` _____                     ____
|  ___|__  _ __ _ __ ___  / ___| ___ _ __
| |_ / _ \| '__| '_ ` + "`" + ` _ \| |  _ / _ \ '_ \
|  _| (_) | |  | | | | | | |_| |  __/ | | |
|_|  \___/|_|  |_| |_| |_|\____|\___|_| |_|
`)
	if logging.Magenta != "" {
		fmt.Fprintln(os.Stdout, logging.NC)
	}
}
