package sio

import (
	"errors"
	"io"
)

// ByteReader is the readable byte-endpoint capability.
// It matches io.ByteReader, so standard library readers qualify.
type ByteReader interface {
	// ReadByte reads and returns the next byte, blocking until one is
	// available or the endpoint fails.
	ReadByte() (byte, error)
}

// ByteWriter is the writable byte-endpoint capability.
// It matches io.ByteWriter, so standard library writers qualify.
type ByteWriter interface {
	// WriteByte writes a single byte, blocking until the endpoint has
	// accepted it or failed. There is no partial-write silence: a nil
	// return means the byte was accepted.
	WriteByte(byte) error
}

// ByteReadWriter combines both capabilities. The protocol engine requires it
// of its transport; data sources and sinks need only one side.
type ByteReadWriter interface {
	ByteReader
	ByteWriter
}

// Read fills buf from r. If r also implements io.Reader, a single bulk read
// is issued; otherwise bytes are read one at a time and the first error stops
// the transfer, returning the count read so far.
func Read(r ByteReader, buf []byte) (int, error) {
	if rr, ok := r.(io.Reader); ok {
		return rr.Read(buf)
	}
	for i := range buf {
		b, err := r.ReadByte()
		if err != nil {
			return i, err
		}
		buf[i] = b
	}
	return len(buf), nil
}

// Write writes buf to w. If w also implements io.Writer, a single bulk write
// is issued; otherwise bytes are written one at a time and the first error
// stops the transfer, returning the count written so far.
func Write(w ByteWriter, buf []byte) (int, error) {
	if ww, ok := w.(io.Writer); ok {
		return ww.Write(buf)
	}
	for i, b := range buf {
		if err := w.WriteByte(b); err != nil {
			return i, err
		}
	}
	return len(buf), nil
}

// ReadMax reads from r into buf until buf is full or the source is exhausted,
// whichever comes first, and returns the number of bytes filled. A read that
// consumes zero bytes, or one that fails with io.EOF, marks exhaustion.
// ErrInterrupted reads are skipped transparently; any other error is returned
// along with the count filled before it.
func ReadMax(r ByteReader, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := Read(r, buf[total:])
		total += n
		switch {
		case errors.Is(err, io.EOF):
			return total, nil
		case errors.Is(err, ErrInterrupted):
			// retryable, go again
		case err != nil:
			return total, err
		case n == 0:
			return total, nil
		}
	}
	return total, nil
}
