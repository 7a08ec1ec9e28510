package boot

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/moffa90/go-xmodem/mem"
	"github.com/moffa90/go-xmodem/sio"
	"github.com/moffa90/go-xmodem/xmodem"
)

// Loader owns the receive-and-boot loop: it waits for a peer to push an
// image over the transport, writes it into the load region, and hands it
// off once a transfer completes cleanly. Partial or corrupt transfers are
// never handed off; the next attempt simply overwrites the region from the
// start.
type Loader struct {
	port   sio.ByteReadWriter
	region []byte
	config Config
}

// New creates a Loader receiving over port into region. The region bounds
// the largest acceptable image; build it from raw address constants with
// mem.Region on bare-metal targets, or from an ordinary buffer elsewhere.
//
// Example:
//
//	loader := boot.New(port, mem.Region(binaryStart, bootStart),
//	    boot.WithHandoff(jump),
//	    boot.WithLogger(log),
//	)
//	n, err := loader.Run(ctx)
func New(port sio.ByteReadWriter, region []byte, opts ...Option) *Loader {
	if port == nil {
		panic("port cannot be nil")
	}
	if len(region) == 0 {
		panic("load region cannot be empty")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Loader{
		port:   port,
		region: region,
		config: cfg,
	}
}

// ReceiveImage performs a single transfer attempt: a fresh session over a
// fresh sink covering the whole load region. It returns the number of bytes
// received, which is always a multiple of the packet size; the true image
// length is known only to the sender, so the tail of the count may be zero
// padding.
//
// A transfer with no configured transport timeout can block indefinitely
// waiting for a sender; the context is only consulted before the attempt
// starts.
func (l *Loader) ReceiveImage(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, errors.Wrap(err, "cancelled")
	}

	sink := mem.NewSink(l.region)
	n, err := xmodem.Receive(l.port, sink, xmodem.WithProgress(l.config.ProgressCallback))
	if err != nil {
		return n, errors.Wrap(err, "receive image")
	}
	return n, nil
}

// Run receives until a transfer completes cleanly, then invokes the handoff
// callback with the image and returns its byte count. Failed attempts are
// logged, the partial write is discarded, and after RetryDelay the loop
// starts over, up to MaxAttempts (indefinitely when zero). Cancel via the
// context between attempts.
func (l *Loader) Run(ctx context.Context) (int, error) {
	start := time.Now()

	for attempt := 1; ; attempt++ {
		n, err := l.ReceiveImage(ctx)
		if err == nil {
			l.logInfo("image received",
				"bytes", n,
				"attempt", attempt,
				"elapsed", time.Since(start).String(),
			)
			if l.config.Handoff != nil {
				if err := l.config.Handoff(l.region[:n]); err != nil {
					return n, errors.Wrap(err, "handoff")
				}
			}
			return n, nil
		}

		if ctx.Err() != nil {
			return 0, errors.Wrap(ctx.Err(), "cancelled")
		}
		l.logError("transfer attempt failed", "attempt", attempt, "error", err.Error())

		if l.config.MaxAttempts > 0 && attempt >= l.config.MaxAttempts {
			return 0, errors.Wrapf(err, "gave up after %d attempts", attempt)
		}

		select {
		case <-ctx.Done():
			return 0, errors.Wrap(ctx.Err(), "cancelled")
		case <-time.After(l.config.RetryDelay):
		}
	}
}

// logInfo logs an info message if a logger is configured.
func (l *Loader) logInfo(msg string, keysAndValues ...interface{}) {
	if l.config.Logger != nil {
		l.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (l *Loader) logError(msg string, keysAndValues ...interface{}) {
	if l.config.Logger != nil {
		l.config.Logger.Error(msg, keysAndValues...)
	}
}
