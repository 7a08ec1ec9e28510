package xmodem

import (
	"errors"
	"fmt"

	"github.com/moffa90/go-xmodem/sio"
)

// Transmit sends the whole of data to the peer on port and returns the
// number of real bytes written, excluding the zero padding added to the
// final short packet. The stream always ends with the EOT exchange, even
// when data is empty.
//
// Each packet is retried on sio.ErrInterrupted up to the retry budget, then
// the transfer fails with sio.ErrBrokenPipe. Any other error is fatal
// immediately.
//
// Example:
//
//	n, err := xmodem.Transmit(bytes.NewReader(image), port)
func Transmit(data sio.ByteReader, port sio.ByteReadWriter, opts ...Option) (int, error) {
	t := New(port, opts...)
	var packet [PacketSize]byte
	written := 0

	for {
		n, err := sio.ReadMax(data, packet[:])
		if err != nil {
			return written, err
		}
		if n == 0 {
			if _, err := t.WritePacket(nil); err != nil {
				return written, err
			}
			return written, nil
		}
		for i := n; i < PacketSize; i++ {
			packet[i] = 0
		}

		if err := t.writeWithRetry(packet[:]); err != nil {
			return written, err
		}
		written += n
	}
}

// Receive reads a whole stream from the peer on port and forwards every
// packet's payload to into. It returns the number of bytes received, which
// is always a multiple of PacketSize: the sender's final zero padding is
// written to the sink along with the data, because the protocol itself
// carries no length field. Callers that need the true image length must
// learn it out of band from the sender.
//
// The retry policy is the same as Transmit's.
//
// Example:
//
//	n, err := xmodem.Receive(port, sink)
func Receive(port sio.ByteReadWriter, into sio.ByteWriter, opts ...Option) (int, error) {
	t := New(port, opts...)
	var packet [PacketSize]byte
	received := 0

	for {
		n, err := t.readWithRetry(packet[:])
		if err != nil {
			return received, err
		}
		if n == 0 {
			return received, nil
		}
		if _, err := sio.Write(into, packet[:]); err != nil {
			return received, err
		}
		received += n
	}
}

// writeWithRetry attempts one packet up to maxAttempts times, retrying only
// sio.ErrInterrupted failures. The sequence number does not advance across
// failed attempts, so every retry re-sends the same packet.
func (t *Transfer) writeWithRetry(packet []byte) error {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		_, err := t.WritePacket(packet)
		if err == nil {
			return nil
		}
		if !errors.Is(err, sio.ErrInterrupted) {
			return err
		}
	}
	return fmt.Errorf("packet %d rejected %d times: %w", t.seq, maxAttempts, sio.ErrBrokenPipe)
}

// readWithRetry is writeWithRetry's receive-side mirror.
func (t *Transfer) readWithRetry(buf []byte) (int, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		n, err := t.ReadPacket(buf)
		if err == nil {
			return n, nil
		}
		if !errors.Is(err, sio.ErrInterrupted) {
			return 0, err
		}
	}
	return 0, fmt.Errorf("packet %d corrupted %d times: %w", t.seq, maxAttempts, sio.ErrBrokenPipe)
}
