package compose

import (
	"errors"
	"fmt"
)

// fileNotFoundError indicates that a compose file could not be found.
type fileNotFoundError struct {
	path  string
	cause error
}

func (e *fileNotFoundError) Error() string {
	return fmt.Sprintf("compose file not found: %s", e.path)
}

func (e *fileNotFoundError) Unwrap() error {
	return e.cause
}

// IsFileNotFoundError checks if an error is a fileNotFoundError.
func IsFileNotFoundError(err error) bool {
	var ferr *fileNotFoundError
	return errors.As(err, &ferr)
}

// pathError indicates an error reading a compose or env file.
type pathError struct {
	path  string
	cause error
}

func (e *pathError) Error() string {
	return fmt.Sprintf("path error: %s (%v)", e.path, e.cause)
}

func (e *pathError) Unwrap() error {
	return e.cause
}

// IsPathError checks if an error is a pathError.
func IsPathError(err error) bool {
	var perr *pathError
	return errors.As(err, &perr)
}

// loaderError indicates that compose-go rejected a document.
type loaderError struct {
	cause error
}

func (e *loaderError) Error() string {
	return fmt.Sprintf("failed to load compose file: %v", e.cause)
}

func (e *loaderError) Unwrap() error {
	return e.cause
}

// IsLoaderError checks if an error is a loaderError.
func IsLoaderError(err error) bool {
	var lerr *loaderError
	return errors.As(err, &lerr)
}
