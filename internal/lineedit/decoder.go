package lineedit

// State is the decoder state.
type State uint8

const (
	// StateNormal treats bytes as data or control.
	StateNormal State = iota

	// StateEscapeStart saw ESC and waits for '['.
	StateEscapeStart

	// StateEscapeCode waits for the final code byte of a CSI sequence.
	StateEscapeCode

	// StateEscapeDeleteArg saw "ESC [ 3" and waits for '~'.
	StateEscapeDeleteArg
)

var stateNames = [...]string{
	StateNormal:          "normal",
	StateEscapeStart:     "escape-start",
	StateEscapeCode:      "escape-code",
	StateEscapeDeleteArg: "escape-delete-arg",
}

// String returns the state name.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Decoder classifies raw input bytes into editing keys.
// The zero value is ready to use.
type Decoder struct {
	state State
}

// State returns the current decoder state.
func (d *Decoder) State() State {
	return d.state
}

// Reset returns the decoder to StateNormal, dropping any partial sequence.
func (d *Decoder) Reset() {
	d.state = StateNormal
}

// Feed consumes one byte and returns the key it completes, if any.
func (d *Decoder) Feed(b byte) Event {
	// ESC always starts a new sequence, abandoning any partial one.
	if b == ESC {
		d.state = StateEscapeStart
		return Event{}
	}

	switch d.state {
	case StateEscapeStart:
		if b == '[' {
			d.state = StateEscapeCode
		} else {
			d.state = StateNormal
		}
		return Event{}

	case StateEscapeCode:
		d.state = StateNormal
		switch b {
		case '3':
			d.state = StateEscapeDeleteArg
			return Event{}
		case 'A':
			return Event{Key: KeyUp}
		case 'B':
			return Event{Key: KeyDown}
		case 'C':
			return Event{Key: KeyRight}
		case 'D':
			return Event{Key: KeyLeft}
		}
		return Event{}

	case StateEscapeDeleteArg:
		d.state = StateNormal
		if b == '~' {
			return Event{Key: KeyDelete}
		}
		return Event{}
	}

	switch {
	case isPrintable(b):
		return Event{Key: KeyPrintable, Byte: b}
	case b == CR || b == LF:
		return Event{Key: KeyEnter}
	case b == DEL:
		return Event{Key: KeyBackspace}
	}
	return Event{}
}
