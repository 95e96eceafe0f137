package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultTimeout bounds a single run.
const DefaultTimeout = 5 * time.Second

// Status values for non-numeric results.
const (
	statusOK      = 0
	statusFailure = 1
)

// Option configures a Script.
type Option func(*Script)

// WithTimeout sets the time limit for one run. Zero disables the limit.
func WithTimeout(d time.Duration) Option {
	return func(s *Script) {
		s.timeout = d
	}
}

// Script is a compiled Lua command handler. It is safe for concurrent
// use; runs are serialized.
type Script struct {
	name    string
	timeout time.Duration

	mu     sync.Mutex
	L      *lua.LState
	run    *lua.LFunction
	out    io.Writer
	closed bool
}

// Compile loads source and resolves its run function. name identifies the
// script in error messages.
func Compile(name, source string, opts ...Option) (*Script, error) {
	s := &Script{
		name:    name,
		timeout: DefaultTimeout,
		out:     io.Discard,
	}
	for _, opt := range opts {
		opt(s)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)
	s.L = L
	s.installOutput()

	chunk, err := L.LoadString(source)
	if err != nil {
		L.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrCompile, name, err)
	}

	cancel := s.withContext()
	L.Push(chunk)
	err = L.PCall(0, 0, nil)
	cancel()
	if err != nil {
		L.Close()
		return nil, fmt.Errorf("%w: %s: %s", ErrCompile, name, luaMessage(err))
	}

	fn, ok := L.GetGlobal("run").(*lua.LFunction)
	if !ok {
		L.Close()
		return nil, fmt.Errorf("%w: %s", ErrNoRun, name)
	}
	s.run = fn
	return s, nil
}

// Name returns the script name.
func (s *Script) Name() string {
	return s.name
}

// Run calls run(argv) with output bound to out.
func (s *Script) Run(out io.Writer, argv []string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		fmt.Fprintf(out, "%s: %v\r\n", s.name, ErrClosed)
		return statusFailure
	}

	s.out = out
	defer func() { s.out = io.Discard }()

	args := s.L.CreateTable(len(argv), 0)
	for _, a := range argv {
		args.Append(lua.LString(a))
	}

	cancel := s.withContext()
	defer cancel()

	top := s.L.GetTop()
	s.L.Push(s.run)
	s.L.Push(args)
	if err := s.L.PCall(1, 1, nil); err != nil {
		s.L.SetTop(top)
		fmt.Fprintf(out, "%s: %s\r\n", s.name, luaMessage(err))
		return statusFailure
	}

	ret := s.L.Get(-1)
	s.L.SetTop(top)
	return status(ret)
}

// Close releases the Lua state. Later runs fail.
func (s *Script) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.L.Close()
	return nil
}

func status(v lua.LValue) int {
	switch v := v.(type) {
	case lua.LNumber:
		return int(v)
	case lua.LBool:
		if v {
			return statusOK
		}
		return statusFailure
	}
	if v == lua.LNil {
		return statusOK
	}
	return statusFailure
}

// withContext applies the run timeout and returns its release function.
func (s *Script) withContext() func() {
	if s.timeout <= 0 {
		return func() {}
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	s.L.SetContext(ctx)
	return func() {
		s.L.RemoveContext()
		cancel()
	}
}

func (s *Script) installOutput() {
	s.L.SetGlobal("write", s.L.NewFunction(func(L *lua.LState) int {
		for i := 1; i <= L.GetTop(); i++ {
			io.WriteString(s.out, L.ToStringMeta(L.Get(i)).String())
		}
		return 0
	}))
	s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, L.GetTop())
		for i := range parts {
			parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
		}
		io.WriteString(s.out, strings.Join(parts, "\t")+"\r\n")
		return 0
	}))
}

// luaMessage strips the traceback from a Lua error.
func luaMessage(err error) string {
	var apiErr *lua.ApiError
	if errors.As(err, &apiErr) && apiErr.Object != nil {
		return apiErr.Object.String()
	}
	return err.Error()
}

func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
}
