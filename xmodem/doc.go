// Package xmodem implements the XMODEM file-transfer protocol, checksum
// variant: a byte-oriented, half-duplex, retry-driven protocol for moving an
// arbitrary-length byte stream over an unreliable serial link.
//
// # Protocol Overview
//
// Data moves in fixed 132-byte frames:
//
//	[SOH][SEQ][255-SEQ][PAYLOAD(128)][CHECKSUM]
//
// Where:
//   - SOH = Start of packet (0x01)
//   - SEQ = Packet sequence number, starts at 1, wraps modulo 256
//   - CHECKSUM = 8-bit wraparound sum of the 128 payload bytes
//
// The receiver opens the session with a NAK. It ACKs each good packet and
// NAKs a corrupt one, which the sender then re-sends. The stream ends with a
// double EOT exchange:
//
//	sender: EOT        receiver: NAK
//	sender: EOT        receiver: ACK
//
// A CAN byte (0x18) from either side aborts the transfer unconditionally.
//
// # Usage
//
// The whole-stream drivers own the retry policy and are the usual entry
// points:
//
//	// sending side
//	n, err := xmodem.Transmit(bytes.NewReader(image), port)
//
//	// receiving side
//	n, err := xmodem.Receive(port, sink)
//
// The packet-level session is available for callers that need finer control:
//
//	t := xmodem.New(port)
//	for {
//	    n, err := t.ReadPacket(buf)
//	    // ...
//	}
//
// # Endpoints
//
// The engine is generic over the byte-endpoint capabilities in package sio.
// The transport must be readable and writable; the data source or sink needs
// only one side. Any io.ByteReader/io.ByteWriter qualifies, so files,
// bytes.Reader and in-memory pipes all work without adapters.
//
// # Error Handling
//
// Failures carry the sio error kinds and are classified with errors.Is:
//
//	_, err := xmodem.Receive(port, sink)
//	switch {
//	case errors.Is(err, sio.ErrBrokenPipe):
//	    // retry budget exhausted
//	case errors.Is(err, sio.ErrAborted):
//	    // peer sent CAN
//	}
//
// Only sio.ErrInterrupted (checksum mismatch or peer NAK) is retried, and
// only by the stream drivers; every other kind is fatal for the transfer.
package xmodem
