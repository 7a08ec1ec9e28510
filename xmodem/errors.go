package xmodem

import (
	"fmt"

	"github.com/moffa90/go-xmodem/sio"
)

// UnexpectedByteError reports a protocol framing mismatch: the peer sent a
// control or sequence byte other than the one the protocol required.
// It matches sio.ErrInvalidData under errors.Is.
type UnexpectedByteError struct {
	// Want is the byte the protocol required at this point
	Want byte

	// Got is the byte actually read from the transport
	Got byte
}

func (e *UnexpectedByteError) Error() string {
	return fmt.Sprintf("unexpected byte 0x%02X, want 0x%02X", e.Got, e.Want)
}

func (e *UnexpectedByteError) Unwrap() error { return sio.ErrInvalidData }

// IsUnexpectedByte returns true if the error is an UnexpectedByteError.
func IsUnexpectedByte(err error) bool {
	_, ok := err.(*UnexpectedByteError)
	return ok
}
