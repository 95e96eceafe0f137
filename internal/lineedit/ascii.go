package lineedit

// Control bytes the editor reacts to.
const (
	NUL = 0x00 // null
	TAB = 0x09 // horizontal tab
	LF  = 0x0A // line feed
	CR  = 0x0D // carriage return
	ESC = 0x1B // escape
	SP  = 0x20 // space
	DEL = 0x7F // delete, sent by the backspace key
)

// isPrintable reports whether b is inserted into the line as-is.
func isPrintable(b byte) bool {
	return b >= SP && b < DEL
}
