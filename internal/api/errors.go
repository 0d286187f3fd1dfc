package api

import (
	"errors"
	"fmt"
)

// ErrRemote matches every failure returned by Client, via errors.Is.
var ErrRemote = errors.New("restaurant api request failed")

// Error is the single failure shape of the client. Message carries the
// server-supplied text when the body had its error flag set; Err carries the
// transport or decoding failure otherwise.
type Error struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("api: %s: %s", e.Op, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("api: %s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("api: %s failed", e.Op)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == ErrRemote }
