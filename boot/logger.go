package boot

// Logger is an optional logging interface the loader reports through.
// This allows integration with any logging framework.
//
// Example with zerolog:
//
//	type ZLog struct{ l zerolog.Logger }
//	func (z *ZLog) Debug(msg string, kv ...interface{}) { z.l.Debug().Fields(kv).Msg(msg) }
//	func (z *ZLog) Info(msg string, kv ...interface{})  { z.l.Info().Fields(kv).Msg(msg) }
//	func (z *ZLog) Error(msg string, kv ...interface{}) { z.l.Error().Fields(kv).Msg(msg) }
//
//	loader := boot.New(port, region, boot.WithLogger(&ZLog{log}))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}

// HandoffFunc receives the loaded image once a transfer completes. On
// hardware this is where control jumps to the image's start address; a host
// tool might write it to disk instead. The image slice aliases the load
// region and includes the receiver-side zero padding.
type HandoffFunc func(image []byte) error
