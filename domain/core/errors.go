package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound          = errors.New("resource not found")
	ErrDetectionNotFound = fmt.Errorf("%w: detection", ErrNotFound)

	// Input errors
	ErrNotStructured     = errors.New("text is not structured data")
	ErrEmptySource       = errors.New("source contains no data")
	ErrUnreadableSource  = errors.New("source could not be parsed")
	ErrInputTooLarge     = errors.New("input exceeds size limit")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrBatchTooLarge     = errors.New("batch exceeds size limit")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewInputTooLargeError(size, limit int) error {
	return fmt.Errorf("%w: %d bytes > %d", ErrInputTooLarge, size, limit)
}

func NewUnsupportedFormatError(filename string) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsNotStructured(err error) bool {
	return errors.Is(err, ErrNotStructured)
}

// IsInputError reports errors caused by the caller's input rather than the system
func IsInputError(err error) bool {
	return errors.Is(err, ErrNotStructured) ||
		errors.Is(err, ErrEmptySource) ||
		errors.Is(err, ErrUnreadableSource) ||
		errors.Is(err, ErrInputTooLarge) ||
		errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrBatchTooLarge)
}
