package xmodem

// Control bytes of the XMODEM (checksum variant) protocol.
const (
	// SOH marks the start of a framed 128-byte packet (0x01)
	SOH byte = 0x01

	// EOT signals end of transmission (0x04)
	EOT byte = 0x04

	// ACK accepts a packet or an EOT (0x06)
	ACK byte = 0x06

	// NAK rejects a packet, and doubles as the receiver's
	// ready-for-data handshake byte (0x15)
	NAK byte = 0x15

	// CAN aborts the transfer unilaterally (0x18)
	CAN byte = 0x18
)

// PacketSize is the fixed payload length of every framed packet.
// Streams whose length is not a multiple of PacketSize are zero-padded
// on the final packet by the sender.
const PacketSize = 128

// FrameSize is the on-wire size of a framed packet:
// SOH(1) + SEQ(1) + COMPLEMENT(1) + PAYLOAD(128) + CHECKSUM(1)
const FrameSize = PacketSize + 4

// maxAttempts bounds how many times the stream drivers retry a single
// packet after checksum failures or peer NAKs before giving up with
// ErrBrokenPipe.
const maxAttempts = 10
