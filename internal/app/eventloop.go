package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pyedit-io/pyedit/internal/engine"
	"github.com/pyedit-io/pyedit/internal/engine/position"
)

// Run executes the event loop until quit or context cancellation.
func (a *App) Run(ctx context.Context) error {
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)

	if err := a.term.Init(); err != nil {
		return fmt.Errorf("app: terminal init: %w", err)
	}
	defer a.term.Fini()

	stop := context.AfterFunc(ctx, a.term.Interrupt)
	defer stop()

	a.render()
	for {
		ev := a.term.PollEvent()
		if ev == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := a.HandleEvent(ev); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
		a.render()
	}
}

// HandleEvent processes one input event. Exported for tests, which
// feed synthetic tcell events without a terminal.
func (a *App) HandleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventResize:
		a.term.Screen().Sync()
	case *tcell.EventInterrupt:
		return ErrQuit
	}
	return nil
}

func (a *App) render() {
	a.view.SetStatus(a.statusLeft())
	a.view.Render(a.term.Screen())
}

func (a *App) handleKey(ev *tcell.EventKey) error {
	a.message = ""

	switch ev.Key() {
	case tcell.KeyCtrlQ:
		return ErrQuit

	case tcell.KeyCtrlS:
		if err := a.Save(); err != nil {
			a.message = err.Error()
		} else {
			a.message = "saved"
		}

	case tcell.KeyCtrlZ:
		if _, err := a.eng.Undo(); err != nil {
			a.message = "nothing to undo"
		} else {
			a.dirty = true
			a.view.InvalidateAll()
		}

	case tcell.KeyCtrlY:
		if _, err := a.eng.Redo(); err != nil {
			a.message = "nothing to redo"
		} else {
			a.dirty = true
			a.view.InvalidateAll()
		}

	case tcell.KeyCtrlR:
		a.runProgram()

	case tcell.KeyEscape:
		a.view.SetOutput(nil)

	case tcell.KeyEnter:
		a.insertNewline()

	case tcell.KeyTab:
		a.insertTab()

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		line := int(a.eng.CursorPoint().Line)
		if n, err := a.eng.DeleteBackward(1); err == nil && n > 0 {
			a.dirty = true
			a.invalidateFrom(line - 1)
		}

	case tcell.KeyDelete:
		line := int(a.eng.CursorPoint().Line)
		if n, err := a.eng.DeleteForward(1); err == nil && n > 0 {
			a.dirty = true
			a.invalidateFrom(line)
		}

	case tcell.KeyLeft:
		a.moveBy(-1)
	case tcell.KeyRight:
		a.moveBy(1)
	case tcell.KeyUp:
		a.moveVertical(-1)
	case tcell.KeyDown:
		a.moveVertical(1)
	case tcell.KeyPgUp:
		a.moveVertical(-a.pageSize())
	case tcell.KeyPgDn:
		a.moveVertical(a.pageSize())
	case tcell.KeyHome:
		a.moveToLineEdge(false)
	case tcell.KeyEnd:
		a.moveToLineEdge(true)

	case tcell.KeyRune:
		a.insertText(string(ev.Rune()))
	}
	return nil
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	if ev.Buttons()&tcell.Button1 == 0 {
		return
	}
	x, y := ev.Position()
	width, height := a.term.Size()
	line, col, ok := a.view.BufferPosition(x, y, width, height)
	if !ok {
		return
	}
	if _, err := a.eng.ClickAt(line, col); err != nil {
		a.log.Debugf("click (%d,%d): %v", line, col, err)
	}
}

func (a *App) insertText(text string) {
	line := int(a.eng.CursorPoint().Line)
	if _, err := a.eng.Insert(text); err != nil {
		a.message = err.Error()
		return
	}
	a.dirty = true
	a.invalidateFrom(line)
}

// insertNewline inserts a line break plus automatic indentation as a
// single undo step: the previous line's leading whitespace, deepened
// by one level after a block opener.
func (a *App) insertNewline() {
	indent := ""
	if a.settings.AutoIndent {
		current := a.eng.CurrentLine()
		indent = position.Indentation(current)
		if a.eng.IsBlockOpener() {
			indent += strings.Repeat(" ", a.settings.TabWidth)
		}
	}

	line := int(a.eng.CursorPoint().Line)
	a.eng.BeginGroup()
	_, err := a.eng.Insert("\n" + indent)
	a.eng.EndGroup()
	if err != nil {
		a.message = err.Error()
		return
	}
	a.dirty = true
	a.invalidateFrom(line)
}

// insertTab inserts spaces up to the next tab stop.
func (a *App) insertTab() {
	col := int(a.eng.CursorPoint().Column)
	n := a.settings.TabWidth - col%a.settings.TabWidth
	a.insertText(strings.Repeat(" ", n))
}

func (a *App) moveBy(delta int) {
	target := a.eng.Cursor() + delta
	if target < 0 || target > a.eng.Len() {
		return
	}
	if err := a.eng.MoveCursorTo(target); err != nil {
		a.log.Debugf("move to %d: %v", target, err)
	}
}

// pageSize is the vertical jump for PgUp/PgDn, one screen of text.
func (a *App) pageSize() int {
	_, height := a.term.Size()
	if height <= 2 {
		return 1
	}
	return height - 2
}

func (a *App) moveVertical(delta int) {
	p := a.eng.CursorPoint()
	line := int(p.Line) + delta
	if line < 0 {
		line = 0
	}
	target := a.eng.PointToOffset(engine.Point{Line: uint32(line), Column: p.Column})
	if err := a.eng.MoveCursorTo(target); err != nil {
		a.log.Debugf("move to %d: %v", target, err)
	}
}

func (a *App) moveToLineEdge(end bool) {
	p := a.eng.CursorPoint()
	col := uint32(0)
	if end {
		col = uint32(len([]rune(a.eng.LineText(int(p.Line)))))
	}
	target := a.eng.PointToOffset(engine.Point{Line: p.Line, Column: col})
	if err := a.eng.MoveCursorTo(target); err != nil {
		a.log.Debugf("move to %d: %v", target, err)
	}
}

// runProgram executes the buffer and routes output to the view's
// output pane.
func (a *App) runProgram() {
	a.message = "running..."
	a.render()

	res, err := a.runner.Run(context.Background(), a.eng.Text())
	if err != nil {
		a.message = err.Error()
		a.log.Errorf("run: %v", err)
		return
	}

	var lines []string
	if res.Stdout != "" {
		lines = append(lines, splitLines(res.Stdout)...)
	}
	if res.Stderr != "" {
		lines = append(lines, splitLines(res.Stderr)...)
	}
	if len(lines) == 0 {
		lines = []string{"(no output)"}
	}
	a.view.SetOutput(lines)

	if res.TimedOut {
		a.message = "run timed out"
	} else {
		a.message = fmt.Sprintf("exit %d in %s", res.ExitCode, res.Duration.Round(time.Millisecond))
	}
	a.log.Infof("run %s: exit=%d timed_out=%v", res.ID, res.ExitCode, res.TimedOut)
}

func (a *App) invalidateFrom(line int) {
	if line < 0 {
		line = 0
	}
	a.view.Invalidate(line)
}

func splitLines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}
