package config

import (
	"fmt"
	"log"
	"os"
)

// Exitf writes a formatted error message to stderr and exits with code 1.
// The message carries the current log prefix so fatal exits read like the
// rest of the command output.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, log.Prefix()+format+"\n", args...)
	os.Exit(1)
}
