package xmodem

// Phase identifies a transfer-lifecycle event.
type Phase string

// Transfer lifecycle phases reported to the progress callback.
const (
	// PhaseWaiting is reported by the sender just before it blocks
	// waiting for the receiver's initial NAK.
	PhaseWaiting Phase = "waiting"

	// PhaseStarted is reported once the opening handshake byte has been
	// exchanged and the transfer proper begins.
	PhaseStarted Phase = "started"

	// PhasePacket is reported after one packet has been fully transferred
	// and acknowledged. Progress.Packet carries its sequence number.
	PhasePacket Phase = "packet"
)

// Progress describes one transfer-lifecycle event.
// Passed to ProgressFunc callbacks during a transfer.
type Progress struct {
	// Phase is the event kind
	Phase Phase

	// Packet is the sequence number of the acknowledged packet.
	// Only meaningful when Phase is PhasePacket.
	Packet byte
}

// ProgressFunc observes transfer-lifecycle events. It is invoked
// synchronously from inside the engine and has no effect on protocol
// correctness; implementations must return quickly and must not fail.
//
// Example:
//
//	n, err := xmodem.Receive(port, sink, xmodem.WithProgress(func(p xmodem.Progress) {
//	    if p.Phase == xmodem.PhasePacket {
//	        fmt.Printf("packet %d done\n", p.Packet)
//	    }
//	}))
type ProgressFunc func(Progress)

// noopProgress is the default callback.
func noopProgress(Progress) {}
