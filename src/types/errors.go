package types

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// NotFound reports a missing record, or a caller without standing to see it.
func NotFound(msg string) error {
	return &kindError{kind: ErrNotFound, msg: msg}
}

func Invalid(msg string) error {
	return &kindError{kind: ErrValidation, msg: msg}
}
