package config

import (
	"fmt"
	"io"
	"os"
)

// exitFunc is swapped by tests that cannot let the process die.
var exitFunc = os.Exit

// Exitf writes a formatted message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	exitf(os.Stderr, format, args...)
}

func exitf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
	exitFunc(1)
}
