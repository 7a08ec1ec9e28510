package xmodem

import (
	"fmt"
	"io"

	"github.com/moffa90/go-xmodem/sio"
)

// state is the position of a transfer session in its lifecycle.
// Checksum failures and peer NAKs are self-loops on stateInTransfer;
// the EOT exchange is the only transition into stateFinished.
type state int

const (
	// stateAwaitingStart: the opening handshake byte has not yet been
	// exchanged for this session.
	stateAwaitingStart state = iota

	// stateInTransfer: the handshake is done and packets are moving.
	stateInTransfer

	// stateFinished: the EOT exchange completed. Terminal; a session is
	// one-shot and a fresh one must be built for the next transfer.
	stateFinished
)

// Transfer is a single XMODEM session over a byte transport. It owns the
// transport exclusively for its lifetime and tracks the one piece of state
// that must stay correct across packet retries: the expected sequence
// number, which advances only on confirmed success.
//
// A Transfer drives either direction: the receiving side calls ReadPacket,
// the sending side calls WritePacket. Most callers want the stream-level
// Transmit and Receive functions instead, which add the retry policy.
type Transfer struct {
	port     sio.ByteReadWriter
	seq      byte
	state    state
	progress ProgressFunc
}

// New creates a transfer session over port. The session takes exclusive
// ownership of the transport; no other code may touch it until the session
// is done.
//
// Example:
//
//	t := xmodem.New(port, xmodem.WithProgress(progressFunc))
//	n, err := t.ReadPacket(buf)
func New(port sio.ByteReadWriter, opts ...Option) *Transfer {
	if port == nil {
		panic("port cannot be nil")
	}

	t := &Transfer{
		port:     port,
		seq:      1,
		state:    stateAwaitingStart,
		progress: noopProgress,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Option is a functional option for configuring a transfer session.
type Option func(*Transfer)

// WithProgress sets a callback for transfer-lifecycle events.
//
// Example:
//
//	n, err := xmodem.Receive(port, sink,
//	    xmodem.WithProgress(func(p xmodem.Progress) { fmt.Println(p.Phase) }),
//	)
func WithProgress(f ProgressFunc) Option {
	return func(t *Transfer) {
		if f != nil {
			t.progress = f
		}
	}
}

// readByte reads one byte from the transport. With abortOnCAN set, a CAN
// byte fails the session with sio.ErrAborted; payload reads clear it so
// that 0x18 data bytes pass through.
func (t *Transfer) readByte(abortOnCAN bool) (byte, error) {
	b, err := t.port.ReadByte()
	if err != nil {
		return 0, err
	}
	if abortOnCAN && b == CAN {
		return 0, fmt.Errorf("peer cancelled transfer: %w", sio.ErrAborted)
	}
	return b, nil
}

// expectByte reads one byte and requires it to equal want. A differing CAN
// fails with sio.ErrAborted, any other mismatch with UnexpectedByteError.
// Nothing is written back on mismatch.
func (t *Transfer) expectByte(want byte) error {
	got, err := t.port.ReadByte()
	if err != nil {
		return err
	}
	if got == want {
		return nil
	}
	if got == CAN {
		return fmt.Errorf("peer cancelled transfer: %w", sio.ErrAborted)
	}
	return &UnexpectedByteError{Want: want, Got: got}
}

// expectByteOrCancel is expectByte, except that on mismatch a CAN is first
// written out to tell the peer the session is dead.
func (t *Transfer) expectByteOrCancel(want byte) error {
	got, err := t.port.ReadByte()
	if err != nil {
		return err
	}
	if got == want {
		return nil
	}
	if err := t.port.WriteByte(CAN); err != nil {
		return err
	}
	if got == CAN {
		return fmt.Errorf("peer cancelled transfer: %w", sio.ErrAborted)
	}
	return &UnexpectedByteError{Want: want, Got: got}
}

// ReadPacket receives a single packet into buf, which must hold at least
// PacketSize bytes. On success it returns PacketSize; a return of 0 with a
// nil error means the sender completed the EOT exchange and the stream is
// over.
//
// On the first call for the session, a NAK is written to signal readiness
// and PhaseStarted is reported. The buffer size is then checked before any
// further wire interaction: an undersized buffer fails with
// sio.ErrUnexpectedEOF having consumed no transport bytes beyond that
// one-time handshake.
//
// Error kinds:
//   - sio.ErrInterrupted: the packet checksum did not match. A NAK was sent
//     and the expected sequence number is unchanged, so the caller may retry
//     this same packet.
//   - sio.ErrAborted: a CAN arrived where not expected. Fatal.
//   - sio.ErrInvalidData: a control byte was neither EOT nor SOH, the second
//     EOT never came, or a sequence byte mismatched. Fatal.
//   - sio.ErrUnexpectedEOF: buf is smaller than PacketSize.
func (t *Transfer) ReadPacket(buf []byte) (int, error) {
	if t.state == stateFinished {
		return 0, io.EOF
	}
	if t.state == stateAwaitingStart {
		if err := t.port.WriteByte(NAK); err != nil {
			return 0, err
		}
		t.state = stateInTransfer
		t.progress(Progress{Phase: PhaseStarted})
	}
	if len(buf) < PacketSize {
		return 0, fmt.Errorf("receive buffer holds %d bytes, need %d: %w",
			len(buf), PacketSize, sio.ErrUnexpectedEOF)
	}

	first, err := t.readByte(true)
	if err != nil {
		return 0, err
	}
	switch first {
	case EOT:
		// EOT, NAK, EOT, ACK closes the stream.
		if err := t.port.WriteByte(NAK); err != nil {
			return 0, err
		}
		if err := t.expectByte(EOT); err != nil {
			return 0, err
		}
		if err := t.port.WriteByte(ACK); err != nil {
			return 0, err
		}
		t.state = stateFinished
		return 0, nil
	case SOH:
		// fall through to the framed packet
	default:
		return 0, &UnexpectedByteError{Want: SOH, Got: first}
	}

	if err := t.expectByteOrCancel(t.seq); err != nil {
		return 0, err
	}
	if err := t.expectByteOrCancel(^t.seq); err != nil {
		return 0, err
	}

	var sum byte
	for i := 0; i < PacketSize; i++ {
		b, err := t.readByte(false)
		if err != nil {
			return 0, err
		}
		buf[i] = b
		sum += b
	}

	check, err := t.readByte(false)
	if err != nil {
		return 0, err
	}
	if check != sum {
		if err := t.port.WriteByte(NAK); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("packet %d checksum 0x%02X, want 0x%02X: %w",
			t.seq, check, sum, sio.ErrInterrupted)
	}

	if err := t.port.WriteByte(ACK); err != nil {
		return 0, err
	}
	t.progress(Progress{Phase: PhasePacket, Packet: t.seq})
	t.seq++
	return PacketSize, nil
}

// WritePacket sends a single packet from buf, which must hold exactly
// PacketSize bytes, or be empty to drive the end-of-transmission exchange.
// On success it returns the number of payload bytes written. Callers must
// finish every stream with WritePacket(nil).
//
// On the first call for the session, PhaseWaiting is reported and the
// sender blocks for the receiver's opening NAK before PhaseStarted.
//
// Error kinds:
//   - sio.ErrInterrupted: the receiver NAKed the packet. The expected
//     sequence number is unchanged, so the caller may retry this same
//     packet.
//   - sio.ErrAborted: a CAN arrived where not expected. Fatal.
//   - sio.ErrInvalidData: the opening byte was not NAK, an EOT response was
//     wrong, or the packet acknowledgment was neither ACK nor NAK. Fatal.
//   - sio.ErrUnexpectedEOF: buf length is neither 0 nor PacketSize.
func (t *Transfer) WritePacket(buf []byte) (int, error) {
	if t.state == stateFinished {
		return 0, io.EOF
	}
	if len(buf) != 0 && len(buf) != PacketSize {
		return 0, fmt.Errorf("payload is %d bytes, need exactly %d or none: %w",
			len(buf), PacketSize, sio.ErrUnexpectedEOF)
	}
	if t.state == stateAwaitingStart {
		t.progress(Progress{Phase: PhaseWaiting})
		if err := t.expectByte(NAK); err != nil {
			return 0, err
		}
		t.state = stateInTransfer
		t.progress(Progress{Phase: PhaseStarted})
	}

	if len(buf) == 0 {
		if err := t.port.WriteByte(EOT); err != nil {
			return 0, err
		}
		if err := t.expectByte(NAK); err != nil {
			return 0, err
		}
		if err := t.port.WriteByte(EOT); err != nil {
			return 0, err
		}
		if err := t.expectByte(ACK); err != nil {
			return 0, err
		}
		t.state = stateFinished
		return 0, nil
	}

	if err := t.port.WriteByte(SOH); err != nil {
		return 0, err
	}
	if err := t.port.WriteByte(t.seq); err != nil {
		return 0, err
	}
	if err := t.port.WriteByte(^t.seq); err != nil {
		return 0, err
	}

	var sum byte
	for _, b := range buf {
		if err := t.port.WriteByte(b); err != nil {
			return 0, err
		}
		sum += b
	}
	if err := t.port.WriteByte(sum); err != nil {
		return 0, err
	}

	resp, err := t.readByte(true)
	if err != nil {
		return 0, err
	}
	switch resp {
	case ACK:
		t.progress(Progress{Phase: PhasePacket, Packet: t.seq})
		t.seq++
		return PacketSize, nil
	case NAK:
		return 0, fmt.Errorf("peer rejected packet %d: %w", t.seq, sio.ErrInterrupted)
	default:
		return 0, &UnexpectedByteError{Want: ACK, Got: resp}
	}
}
