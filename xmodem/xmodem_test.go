package xmodem

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/moffa90/go-xmodem/sio"
)

// scriptPort scripts the peer's bytes and records everything written,
// in the spirit of a mock serial device.
type scriptPort struct {
	reads  []byte
	pos    int
	writes []byte
}

func (p *scriptPort) ReadByte() (byte, error) {
	if p.pos >= len(p.reads) {
		return 0, io.EOF
	}
	b := p.reads[p.pos]
	p.pos++
	return b, nil
}

func (p *scriptPort) WriteByte(b byte) error {
	p.writes = append(p.writes, b)
	return nil
}

// frame builds the wire encoding of one packet.
func frame(seq byte, payload []byte) []byte {
	buf := []byte{SOH, seq, ^seq}
	var sum byte
	for _, b := range payload {
		sum += b
	}
	buf = append(buf, payload...)
	return append(buf, sum)
}

func payloadOf(fill byte) []byte {
	p := make([]byte, PacketSize)
	for i := range p {
		p[i] = fill
	}
	return p
}

func TestReadPacketUndersizedBuffer(t *testing.T) {
	// The one-time start handshake is written, then the short buffer is
	// rejected without consuming a single transport byte.
	port := &scriptPort{reads: frame(1, payloadOf(0xAA))}
	session := New(port)

	_, err := session.ReadPacket(make([]byte, 3))
	if !errors.Is(err, sio.ErrUnexpectedEOF) {
		t.Fatalf("error = %v, want sio.ErrUnexpectedEOF", err)
	}
	if !bytes.Equal(port.writes, []byte{NAK}) {
		t.Errorf("writes = % X, want just the handshake NAK", port.writes)
	}
	if port.pos != 0 {
		t.Errorf("consumed %d transport bytes, want 0", port.pos)
	}
}

func TestReadPacketSuccess(t *testing.T) {
	payload := payloadOf(0x42)
	port := &scriptPort{reads: frame(1, payload)}
	session := New(port)

	buf := make([]byte, PacketSize)
	n, err := session.ReadPacket(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != PacketSize {
		t.Errorf("n = %d, want %d", n, PacketSize)
	}
	if !bytes.Equal(buf, payload) {
		t.Error("payload not copied into buffer")
	}
	if !bytes.Equal(port.writes, []byte{NAK, ACK}) {
		t.Errorf("writes = % X, want NAK then ACK", port.writes)
	}
}

func TestReadPacketEOTExchange(t *testing.T) {
	port := &scriptPort{reads: []byte{EOT, EOT}}
	session := New(port)

	n, err := session.ReadPacket(make([]byte, PacketSize))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Errorf("n = %d, want 0 at end of stream", n)
	}
	if !bytes.Equal(port.writes, []byte{NAK, NAK, ACK}) {
		t.Errorf("writes = % X, want handshake NAK, then NAK, ACK", port.writes)
	}

	// the session is finished; further calls do not touch the wire
	if _, err := session.ReadPacket(make([]byte, PacketSize)); err != io.EOF {
		t.Errorf("error after EOT = %v, want io.EOF", err)
	}
}

func TestReadPacketSecondEOTMissing(t *testing.T) {
	port := &scriptPort{reads: []byte{EOT, SOH}}
	session := New(port)

	_, err := session.ReadPacket(make([]byte, PacketSize))
	if !errors.Is(err, sio.ErrInvalidData) {
		t.Fatalf("error = %v, want sio.ErrInvalidData", err)
	}
}

func TestReadPacketChecksumMismatch(t *testing.T) {
	payload := payloadOf(0x42)
	bad := frame(1, payload)
	bad[len(bad)-1]++ // corrupt the checksum byte

	port := &scriptPort{reads: append(bad, frame(1, payload)...)}
	session := New(port)
	buf := make([]byte, PacketSize)

	_, err := session.ReadPacket(buf)
	if !errors.Is(err, sio.ErrInterrupted) {
		t.Fatalf("error = %v, want sio.ErrInterrupted", err)
	}
	if port.writes[len(port.writes)-1] != NAK {
		t.Error("corrupt packet was not NAKed")
	}

	// sequence must not have advanced: the same packet is accepted next
	n, err := session.ReadPacket(buf)
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if n != PacketSize {
		t.Errorf("retry n = %d, want %d", n, PacketSize)
	}
}

func TestReadPacketFraming(t *testing.T) {
	goodPayload := payloadOf(0x11)

	tests := []struct {
		name    string
		reads   []byte
		wantErr error
		wantCAN bool // a CAN is written out after the handshake NAK
	}{
		{
			name:    "CAN as first control byte",
			reads:   []byte{CAN},
			wantErr: sio.ErrAborted,
		},
		{
			name:    "garbage control byte",
			reads:   []byte{0x2A},
			wantErr: sio.ErrInvalidData,
		},
		{
			name:    "wrong sequence byte",
			reads:   []byte{SOH, 7},
			wantErr: sio.ErrInvalidData,
			wantCAN: true,
		},
		{
			name:    "CAN as sequence byte",
			reads:   []byte{SOH, CAN},
			wantErr: sio.ErrAborted,
			wantCAN: true,
		},
		{
			name:    "wrong complement byte",
			reads:   []byte{SOH, 1, 0x00},
			wantErr: sio.ErrInvalidData,
			wantCAN: true,
		},
		{
			name:    "valid frame accepted",
			reads:   frame(1, goodPayload),
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			port := &scriptPort{reads: tt.reads}
			session := New(port)

			_, err := session.ReadPacket(make([]byte, PacketSize))
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}

			gotCAN := len(port.writes) > 1 && port.writes[len(port.writes)-1] == CAN
			if gotCAN != tt.wantCAN {
				t.Errorf("CAN written = %v, want %v (writes = % X)", gotCAN, tt.wantCAN, port.writes)
			}
		})
	}
}

func TestWritePacketBadLength(t *testing.T) {
	for _, n := range []int{1, 64, 127, 129, 256} {
		port := &scriptPort{}
		session := New(port)

		_, err := session.WritePacket(make([]byte, n))
		if !errors.Is(err, sio.ErrUnexpectedEOF) {
			t.Errorf("len %d: error = %v, want sio.ErrUnexpectedEOF", n, err)
		}
		if len(port.writes) != 0 || port.pos != 0 {
			t.Errorf("len %d: wire was touched", n)
		}
	}
}

func TestWritePacketSuccess(t *testing.T) {
	payload := payloadOf(0x42)
	port := &scriptPort{reads: []byte{NAK, ACK}}
	session := New(port)

	n, err := session.WritePacket(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != PacketSize {
		t.Errorf("n = %d, want %d", n, PacketSize)
	}
	if !bytes.Equal(port.writes, frame(1, payload)) {
		t.Errorf("wire frame = % X, want % X", port.writes, frame(1, payload))
	}
}

func TestWritePacketResponses(t *testing.T) {
	payload := payloadOf(0x42)

	tests := []struct {
		name    string
		reads   []byte
		wantErr error
	}{
		{
			name:    "peer NAKs the packet",
			reads:   []byte{NAK, NAK},
			wantErr: sio.ErrInterrupted,
		},
		{
			name:    "peer cancels at the acknowledgment",
			reads:   []byte{NAK, CAN},
			wantErr: sio.ErrAborted,
		},
		{
			name:    "peer sends garbage acknowledgment",
			reads:   []byte{NAK, 0x2A},
			wantErr: sio.ErrInvalidData,
		},
		{
			name:    "handshake byte is not NAK",
			reads:   []byte{ACK},
			wantErr: sio.ErrInvalidData,
		},
		{
			name:    "handshake byte is CAN",
			reads:   []byte{CAN},
			wantErr: sio.ErrAborted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := New(&scriptPort{reads: tt.reads})
			_, err := session.WritePacket(payload)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWritePacketEOTExchange(t *testing.T) {
	port := &scriptPort{reads: []byte{NAK, NAK, ACK}}
	session := New(port)

	n, err := session.WritePacket(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Errorf("n = %d, want 0", n)
	}
	if !bytes.Equal(port.writes, []byte{EOT, EOT}) {
		t.Errorf("writes = % X, want EOT, EOT", port.writes)
	}

	if _, err := session.WritePacket(nil); err != io.EOF {
		t.Errorf("error after EOT = %v, want io.EOF", err)
	}
}

func TestSequenceWraparound(t *testing.T) {
	// A session expecting packet 255 must accept 255, then 0 with
	// complement 255.
	p255 := payloadOf(0x01)
	p0 := payloadOf(0x02)
	port := &scriptPort{reads: append(frame(255, p255), frame(0, p0)...)}

	session := New(port)
	session.state = stateInTransfer
	session.seq = 255

	buf := make([]byte, PacketSize)
	for _, want := range [][]byte{p255, p0} {
		n, err := session.ReadPacket(buf)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != PacketSize || !bytes.Equal(buf, want) {
			t.Fatal("wrapped packet not accepted")
		}
	}
	if session.seq != 1 {
		t.Errorf("seq after wraparound = %d, want 1", session.seq)
	}
}

func TestWriteSequenceWraparound(t *testing.T) {
	if ^byte(0) != 255 {
		t.Fatal("complement arithmetic broken")
	}

	port := &scriptPort{reads: []byte{ACK}}
	session := New(port)
	session.state = stateInTransfer
	session.seq = 0

	if _, err := session.WritePacket(payloadOf(0x03)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if port.writes[1] != 0 || port.writes[2] != 255 {
		t.Errorf("seq/complement on wire = %d/%d, want 0/255", port.writes[1], port.writes[2])
	}
}

func TestProgressEvents(t *testing.T) {
	payload := payloadOf(0x42)
	reads := append(frame(1, payload), EOT, EOT)
	port := &scriptPort{reads: reads}

	var events []Progress
	session := New(port, WithProgress(func(p Progress) {
		events = append(events, p)
	}))

	buf := make([]byte, PacketSize)
	if _, err := session.ReadPacket(buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := session.ReadPacket(buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Progress{
		{Phase: PhaseStarted},
		{Phase: PhasePacket, Packet: 1},
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, events[i], want[i])
		}
	}
}
