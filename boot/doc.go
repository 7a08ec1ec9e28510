// Package boot provides the bootstrap driver: the loop that receives a new
// binary image over a serial transport, writes it into a load region, and
// hands control to it.
//
// # Overview
//
// A Loader wires the pieces below it together, once per transfer attempt:
//   - a fresh transfer session (package xmodem) over the transport
//   - a fresh bounded memory sink (package mem) over the load region
//
// On success the handoff callback fires with the image; on any failure the
// partial write is discarded and the loader waits for the sender to try
// again. A corrupt or partial image is never handed off.
//
// # Basic Usage
//
//	port := openTransport()                      // any sio.ByteReadWriter
//	region := mem.Region(0x80000, 0x4000000)     // or an ordinary []byte
//
//	loader := boot.New(port, region,
//	    boot.WithHandoff(func(image []byte) error { return jumpTo(image) }),
//	    boot.WithLogger(myLogger),
//	    boot.WithRetryDelay(time.Second),
//	)
//
//	n, err := loader.Run(context.Background())
//
// # Configuration Files
//
// Host-side tools can keep loader settings in TOML:
//
//	cfg, err := boot.LoadConfig("loader.toml")
//	port.SetReadTimeout(cfg.ReadTimeout())
//	loader := boot.New(port, region, cfg.Options()...)
//
// # Cancellation
//
// Run checks its context between attempts. A transfer already blocked on a
// silent peer only unblocks when the transport's read timeout expires, so
// configure one whenever prompt cancellation matters.
package boot
