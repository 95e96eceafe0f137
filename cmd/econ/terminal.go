package main

import (
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// makeRaw puts in into raw mode when it is a terminal. The returned
// function restores the previous mode and is safe to call more than once.
func makeRaw(in io.Reader) (func(), error) {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return func() {}, nil
	}

	fd := int(f.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			_ = term.Restore(fd, state)
		})
	}, nil
}
