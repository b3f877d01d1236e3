package script

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/pyedit-io/pyedit/internal/engine/position"
)

// Default limits for policy scripts.
const (
	DefaultCallTimeout = 100 * time.Millisecond
	blockOpenerFunc    = "is_block_opener"
	indentWidthGlobal  = "indent_width"
)

// Policy wraps a user-supplied Lua script that customizes editing
// behavior. The script must define is_block_opener(line) returning a
// boolean, and may set a global indent_width number.
//
// gopher-lua's LState is not goroutine-safe; the mutex serializes all
// calls into the interpreter.
type Policy struct {
	mu sync.Mutex

	l           *lua.LState
	callTimeout time.Duration
	closed      bool
}

// Option configures a Policy.
type Option func(*Policy)

// WithCallTimeout bounds each call into the script. Long-running Lua
// that never calls back into Go cannot be interrupted mid-execution,
// so this is best-effort.
func WithCallTimeout(d time.Duration) Option {
	return func(p *Policy) {
		p.callTimeout = d
	}
}

// New compiles and runs a policy script, verifying it defines the
// required functions.
func New(source string, opts ...Option) (*Policy, error) {
	p := &Policy{callTimeout: DefaultCallTimeout}
	for _, opt := range opts {
		opt(p)
	}

	l := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(l)
	sandbox(l)
	p.l = l

	if err := l.DoString(source); err != nil {
		l.Close()
		return nil, fmt.Errorf("script: loading policy: %w", err)
	}
	if l.GetGlobal(blockOpenerFunc).Type() != lua.LTFunction {
		l.Close()
		return nil, ErrNoFunction
	}
	return p, nil
}

// NewFromFile loads a policy script from disk.
func NewFromFile(path string, opts ...Option) (*Policy, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: reading policy file: %w", err)
	}
	return New(string(source), opts...)
}

// openSafeLibraries opens only the Lua standard libraries a policy
// script legitimately needs. io, os, debug, and package stay closed.
func openSafeLibraries(l *lua.LState) {
	lua.OpenBase(l)
	lua.OpenTable(l)
	lua.OpenString(l)
	lua.OpenMath(l)
}

// sandbox strips globals that could escape the interpreter.
func sandbox(l *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		l.SetGlobal(name, lua.LNil)
	}
}

// IsBlockOpener calls the script's is_block_opener with the given line.
func (p *Policy) IsBlockOpener(line string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return false, ErrPolicyClosed
	}

	if p.callTimeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), p.callTimeout)
		defer cancel()
		p.l.SetContext(ctx)
		defer p.l.RemoveContext()
	}

	err := p.l.CallByParam(lua.P{
		Fn:      p.l.GetGlobal(blockOpenerFunc),
		NRet:    1,
		Protect: true,
	}, lua.LString(line))
	if err != nil {
		return false, fmt.Errorf("script: is_block_opener: %w", err)
	}

	ret := p.l.Get(-1)
	p.l.Pop(1)
	return lua.LVAsBool(ret), nil
}

// IndentWidth returns the script's indent_width global, or def when
// the script does not set one.
func (p *Policy) IndentWidth(def int) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return def
	}
	if n, ok := p.l.GetGlobal(indentWidthGlobal).(lua.LNumber); ok && int(n) > 0 {
		return int(n)
	}
	return def
}

// BlockOpener adapts the policy into the engine's predicate type. Call
// failures fall back to the built-in colon rule rather than breaking
// the editing loop.
func (p *Policy) BlockOpener() position.BlockOpenerFunc {
	fallback := position.TrailingDelimiter(":")
	return func(line string) bool {
		ok, err := p.IsBlockOpener(line)
		if err != nil {
			return fallback(line)
		}
		return ok
	}
}

// Close releases the interpreter. Further calls return ErrPolicyClosed.
func (p *Policy) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	p.l.Close()
}
