package hangdam

import "errors"

var (
	// ErrCycleNotFound is returned when a Hangdam id does not resolve.
	ErrCycleNotFound = errors.New("hangdam not found")
	// ErrCycleAlreadyArchived is returned when writing to an archived Hangdam.
	ErrCycleAlreadyArchived = errors.New("hangdam is already archived")
	// ErrEntryPersistFailed wraps store failures while recording a happiness.
	ErrEntryPersistFailed = errors.New("failed to save happiness")
)
