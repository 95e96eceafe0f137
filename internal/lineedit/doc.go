// Package lineedit turns a raw keystroke stream into a finished, tokenized
// command line.
//
// The editor expects the terminal to already be in raw mode. It decodes the
// bytes it reads with a small state machine (Decoder), applies the decoded
// keys to a bounded Line, and keeps the terminal in sync through a Renderer
// that only uses cursor left/right, erase-to-end-of-line and CRLF.
//
// # Input
//
// Input is readiness driven: an Editor blocks in Source.Wait until the
// stream is readable or closed, then drains what is available. FileSource
// polls a file descriptor; ReaderSource is the blocking fallback for plain
// io.Readers.
//
// # Usage
//
//	ed := lineedit.New(lineedit.NewFileSource(os.Stdin), os.Stdout)
//	for {
//	    args, err := ed.Prompt("econ>", 24)
//	    if err != nil {
//	        return err
//	    }
//	    if len(args) > 0 {
//	        dispatcher.Invoke(args, commands)
//	    }
//	    if ed.Closed() {
//	        return nil
//	    }
//	}
package lineedit
