package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/northpower/dailysched/internal/codec"
	"github.com/northpower/dailysched/internal/logger"
	"github.com/northpower/dailysched/internal/validation"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hint returns a follow-up line for errors the user can fix, or "".
func Hint(err error) string {
	var vErr *validation.ValidationError
	if stderrors.As(err, &vErr) {
		return "Run with --help to see the flag for each field."
	}
	var fErr *codec.FormatError
	if stderrors.As(err, &fErr) {
		return `Import files must look like {"schedules": {"<id>": {...}}}.`
	}
	return ""
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		if hint := Hint(err); hint != "" {
			fmt.Fprintf(os.Stderr, "%s\n", hint)
		}
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
