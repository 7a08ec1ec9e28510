// Package mem provides the bounded memory sink that turns received transfer
// bytes into writes against a raw memory region.
package mem

import (
	"fmt"

	"github.com/moffa90/go-xmodem/sio"
)

// Sink writes successive bytes into a fixed region, refusing anything past
// the end. It implements only the writable capability, so it can be handed
// directly to the transfer engine as the destination.
//
// The sink does not own the region's memory; it only holds the write cursor.
// Construct a fresh Sink for every transfer attempt.
type Sink struct {
	region []byte
	n      int
}

// NewSink returns a sink over region. The region's capacity bounds the
// largest acceptable image; a transfer that overruns it fails with
// sio.ErrUnexpectedEOF rather than writing past the end.
//
// For a raw hardware address range, build the region with Region:
//
//	sink := mem.NewSink(mem.Region(0x80000, 0x4000000))
func NewSink(region []byte) *Sink {
	return &Sink{region: region}
}

// WriteByte stores b at the cursor and advances it by one. Once the cursor
// reaches the end of the region, every write fails with sio.ErrUnexpectedEOF
// and the cursor does not move: an exhausted sink means the image is larger
// than the region, a configuration error, not a transient fault.
func (s *Sink) WriteByte(b byte) error {
	if s.n == len(s.region) {
		return fmt.Errorf("memory region of %d bytes exhausted: %w",
			len(s.region), sio.ErrUnexpectedEOF)
	}
	s.region[s.n] = b
	s.n++
	return nil
}

// Len reports how many bytes have been written so far.
func (s *Sink) Len() int { return s.n }

// Remaining reports how many more bytes the sink will accept.
func (s *Sink) Remaining() int { return len(s.region) - s.n }

// Bytes returns the written prefix of the region. The slice aliases the
// region's memory.
func (s *Sink) Bytes() []byte { return s.region[:s.n] }
