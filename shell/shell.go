// Package shell implements the console input state machine of the
// interactive shell: a streaming decoder that turns raw console bytes,
// including ANSI arrow/delete escape sequences, into discrete keys, plus
// command-line parsing. It is independent of the transfer engine.
package shell

import "github.com/moffa90/go-xmodem/sio"

// Key is one decoded console key. Plain bytes decode to their own value;
// escape sequences decode to the named keys above the byte range.
type Key int

// Keys decoded from escape sequences.
const (
	KeyUp Key = 0x100 + iota
	KeyDown
	KeyRight
	KeyLeft
	KeyDelete
)

// Keys decoded from single control bytes.
const (
	KeyBell      Key = 0x07
	KeyBackspace Key = 0x08
	KeyEnter     Key = 0x0D
)

const esc = 0x1B

// decodeState tracks how much of an escape sequence has been seen.
type decodeState int

const (
	statePlain decodeState = iota
	stateEscape
	stateBracket
	stateBracket3
)

// Decoder is a streaming key decoder. Feed it one byte at a time; zero
// value is ready to use.
type Decoder struct {
	state decodeState
}

// Feed advances the decoder with one input byte. When the byte completes a
// key, Feed returns it with ok set; mid-sequence bytes return ok unset. An
// unrecognized escape sequence decodes to KeyBell, mirroring a terminal's
// complaint about input it cannot honor.
func (d *Decoder) Feed(b byte) (key Key, ok bool) {
	switch d.state {
	case stateEscape:
		if b == '[' {
			d.state = stateBracket
			return 0, false
		}
		d.state = statePlain
		return KeyBell, true

	case stateBracket:
		d.state = statePlain
		switch b {
		case '3':
			d.state = stateBracket3
			return 0, false
		case 'A':
			return KeyUp, true
		case 'B':
			return KeyDown, true
		case 'C':
			return KeyRight, true
		case 'D':
			return KeyLeft, true
		default:
			return KeyBell, true
		}

	case stateBracket3:
		d.state = statePlain
		if b == '~' {
			return KeyDelete, true
		}
		return KeyBell, true

	default:
		if b == esc {
			d.state = stateEscape
			return 0, false
		}
		return Key(b), true
	}
}

// ReadKey blocks on the console endpoint until a whole key has been
// decoded.
func (d *Decoder) ReadKey(console sio.ByteReader) (Key, error) {
	for {
		b, err := console.ReadByte()
		if err != nil {
			return 0, err
		}
		if key, ok := d.Feed(b); ok {
			return key, nil
		}
	}
}
