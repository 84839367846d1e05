// Package errors renders failures for the terminal. Library code returns
// plain errors; only the command boundary formats or exits through here.
package errors

import (
	"fmt"
	"os"

	"github.com/minhtpham/mealgrid/internal/logger"
)

// Format renders err with the standard "Error: " prefix. A nil error renders
// as the empty string.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf is Format over a message built from a format string.
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs err, prints it to stderr, and exits non-zero. Nil is a no-op so
// callers can pass a command result straight through.
func Fatal(err error) {
	if err != nil {
		logger.Error("Command failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf is Fatal over a message built from a format string.
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
