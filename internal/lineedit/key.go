package lineedit

// Key is a decoded editing key.
type Key uint8

const (
	// KeyNone means the byte produced nothing (ignored byte or an escape
	// sequence still in progress).
	KeyNone Key = iota
	KeyPrintable
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

var keyNames = [...]string{
	KeyNone:      "none",
	KeyPrintable: "printable",
	KeyEnter:     "enter",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
}

// String returns the key name.
func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "unknown"
}

// Event is the result of feeding one byte to a Decoder.
type Event struct {
	Key Key

	// Byte is the inserted byte for KeyPrintable.
	Byte byte
}
