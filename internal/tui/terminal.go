package tui

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Terminal owns the tcell screen lifecycle.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen
	inited bool
}

// NewTerminal allocates a real terminal screen.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewTerminalWithScreen wraps an existing screen. Tests pass a tcell
// SimulationScreen here.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

// Init puts the terminal into raw mode with mouse and bracketed paste
// enabled.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	t.screen.EnablePaste()
	t.inited = true
	return nil
}

// Fini restores the terminal. Safe to call more than once.
func (t *Terminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.inited {
		t.screen.Fini()
		t.inited = false
	}
}

// Screen exposes the underlying screen for rendering.
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

// Size returns the terminal dimensions.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Size()
}

// PollEvent blocks until the next input event.
func (t *Terminal) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// Interrupt unblocks a pending PollEvent, used during shutdown.
func (t *Terminal) Interrupt() {
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil)) // queue may be full

}
