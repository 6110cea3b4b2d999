package codec

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrBadSignature        = errors.New("bad header signature")
	ErrTruncatedInput      = errors.New("truncated input")
	ErrInvalidEncoding     = errors.New("invalid text encoding")
	ErrMalformedTerminator = errors.New("malformed terminator")
)

// DecodeError reports a decode failure together with the byte offset at
// which it occurred. It wraps one of the sentinel errors above, so callers
// can test the kind with errors.Is.
type DecodeError struct {
	Offset int64
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// decodeErrorf builds a DecodeError whose message wraps kind with context.
func decodeErrorf(offset int64, kind error, format string, args ...interface{}) *DecodeError {
	return &DecodeError{
		Offset: offset,
		Err:    fmt.Errorf(format+": %w", append(args, kind)...),
	}
}
