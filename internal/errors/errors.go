package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/sodam-app/sodam/internal/hangdam"
	"github.com/sodam-app/sodam/internal/logger"
	"github.com/sodam-app/sodam/internal/settings"
	"github.com/sodam-app/sodam/internal/storage"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %s", Describe(err))
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Describe turns known failures into a message for the user.
// Unknown errors are returned as is.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, hangdam.ErrCycleAlreadyArchived):
		return "this hangdam has already grown up and is archived; write to the current one instead"
	case errors.Is(err, hangdam.ErrCycleNotFound):
		return "no hangdam with that id"
	case errors.Is(err, hangdam.ErrEntryPersistFailed):
		return fmt.Sprintf("your happiness could not be saved, nothing was changed (%v)", err)
	case errors.Is(err, settings.ErrSettingsAccessFailed):
		return fmt.Sprintf("settings could not be read or written (%v)", err)
	case errors.Is(err, storage.ErrNotFound):
		return "not found"
	default:
		return err.Error()
	}
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
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
