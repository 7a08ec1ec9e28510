// Package sio defines the byte-endpoint capabilities the transfer engine is
// generic over, together with the error-kind taxonomy shared by every
// endpoint implementation.
//
// # Capabilities
//
// An endpoint advertises what it can do by implementing one or both of two
// single-method interfaces:
//
//	type ByteReader interface { ReadByte() (byte, error) }
//	type ByteWriter interface { WriteByte(byte) error }
//
// These are the same method sets as io.ByteReader and io.ByteWriter, so
// bytes.Reader, bufio.Reader/Writer and friends satisfy them directly.
// Bulk transfers are provided as package functions rather than interface
// methods:
//
//	n, err := sio.Read(endpoint, buf)   // byte-at-a-time unless endpoint is an io.Reader
//	n, err := sio.Write(endpoint, buf)  // byte-at-a-time unless endpoint is an io.Writer
//
// # Error kinds
//
// Endpoints report failures as (wrappers of) the kind sentinels declared in
// this package. Callers classify with errors.Is:
//
//	if errors.Is(err, sio.ErrTimedOut) {
//	    // the transport read deadline expired
//	}
//
// ErrInterrupted is the only retryable kind; everything else is fatal for the
// operation that observed it.
//
// # Test transport
//
// Pipe returns two connected in-memory ports that follow the same contract as
// a serial UART: blocking byte reads (optionally bounded by a read timeout)
// and blocking byte writes with no partial-write silence. It exists so the
// protocol engine can be exercised without hardware.
package sio
