package domain

import (
	"errors"
	"fmt"

	m "antiseptic.dev/pkg/antiseptic/internal/model"
)

// ErrInvalidEncoding marks content that is not valid UTF-8.
var ErrInvalidEncoding = errors.New("invalid UTF-8")

// ErrLineTooLong marks a line longer than the tokenizer reads into memory.
var ErrLineTooLong = errors.New("line too long")

// InvalidPathError reports a root path that does not exist. It aborts the run.
type InvalidPathError struct {
	Path m.Path
	Err  error
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid path %s: %v", e.Path, e.Err)
}

func (e *InvalidPathError) Unwrap() error {
	return e.Err
}

// DictionaryLoadError reports a base dictionary that is missing or malformed.
// It aborts the run.
type DictionaryLoadError struct {
	Path m.Path
	Err  error
}

func (e *DictionaryLoadError) Error() string {
	return fmt.Sprintf("load dictionary %s: %v", e.Path, e.Err)
}

func (e *DictionaryLoadError) Unwrap() error {
	return e.Err
}
