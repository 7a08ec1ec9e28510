package sio

import (
	"io"
	"sync"
	"time"
)

// defaultPipeDepth is the per-direction buffer of a Pipe, sized well past one
// framed packet so a half-duplex exchange never deadlocks on its own echo.
const defaultPipeDepth = 4096

// Port is one end of an in-memory duplex byte pipe. It follows the serial
// transport contract: blocking byte reads with an optional read timeout, and
// blocking byte writes with no partial-write silence.
//
// A Port is exclusively owned by one transfer session at a time; it is not
// safe for concurrent use of the same end.
type Port struct {
	in      <-chan byte
	out     chan<- byte
	done    chan struct{}
	timeout time.Duration
	once    sync.Once
}

// Pipe returns two connected Ports. Bytes written to one end are read from
// the other, in order. Each direction buffers defaultPipeDepth bytes.
func Pipe() (*Port, *Port) {
	ab := make(chan byte, defaultPipeDepth)
	ba := make(chan byte, defaultPipeDepth)
	a := &Port{in: ba, out: ab, done: make(chan struct{})}
	b := &Port{in: ab, out: ba, done: make(chan struct{})}
	return a, b
}

// SetReadTimeout bounds how long ReadByte blocks waiting for the peer.
// A zero or negative duration restores the default of blocking indefinitely.
func (p *Port) SetReadTimeout(d time.Duration) {
	p.timeout = d
}

// ReadByte blocks until the peer has written a byte. If a read timeout is
// set and expires first, it returns ErrTimedOut. Once the peer end is closed
// and drained it returns io.EOF.
func (p *Port) ReadByte() (byte, error) {
	if p.timeout <= 0 {
		b, ok := <-p.in
		if !ok {
			return 0, io.EOF
		}
		return b, nil
	}
	select {
	case b, ok := <-p.in:
		if !ok {
			return 0, io.EOF
		}
		return b, nil
	case <-time.After(p.timeout):
		return 0, ErrTimedOut
	}
}

// WriteByte blocks until the pipe has accepted the byte. Writing on a closed
// end fails with ErrBrokenPipe.
func (p *Port) WriteByte(b byte) error {
	select {
	case <-p.done:
		return ErrBrokenPipe
	default:
	}
	p.out <- b
	return nil
}

// Close marks this end closed. The peer observes io.EOF after draining any
// buffered bytes. Close is idempotent.
func (p *Port) Close() error {
	p.once.Do(func() {
		close(p.done)
		close(p.out)
	})
	return nil
}
