package sio

import "errors"

// Error kinds shared by all byte endpoints. These identify classes of failure
// rather than individual occurrences; wrap them with context and match with
// errors.Is.
var (
	// ErrInvalidData indicates a protocol framing mismatch: a control or
	// sequence byte other than the one the peer was required to send.
	ErrInvalidData = errors.New("invalid data")

	// ErrInterrupted indicates a transient, retryable failure local to one
	// packet (checksum mismatch or peer NAK). It is the only kind the
	// stream-level retry loops re-attempt.
	ErrInterrupted = errors.New("interrupted")

	// ErrAborted indicates the peer unilaterally cancelled the transfer
	// with a CAN byte. Never retried.
	ErrAborted = errors.New("connection aborted")

	// ErrTimedOut indicates a transport read exceeded its configured
	// timeout.
	ErrTimedOut = errors.New("read timed out")

	// ErrUnexpectedEOF indicates an undersized caller buffer or an
	// exhausted bounded sink.
	ErrUnexpectedEOF = errors.New("unexpected EOF")

	// ErrBrokenPipe indicates the per-packet retry budget was exhausted.
	ErrBrokenPipe = errors.New("broken pipe")
)
