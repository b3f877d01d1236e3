package tui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/pyedit-io/pyedit/internal/engine"
	"github.com/pyedit-io/pyedit/internal/highlight"
)

func newSimScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	sim.SetSize(width, height)
	t.Cleanup(sim.Fini)
	return sim
}

func screenRow(sim tcell.SimulationScreen, y int) string {
	width, _ := sim.Size()
	var sb strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := sim.GetContent(x, y)
		sb.WriteRune(r)
	}
	return strings.TrimRight(sb.String(), " ")
}

func newTestView(content string) (*engine.Engine, *View) {
	eng := engine.New(engine.WithContent(content))
	provider := highlight.NewProvider(nil, 0)
	return eng, NewView(eng, provider)
}

func TestRenderShowsBufferText(t *testing.T) {
	sim := newSimScreen(t, 40, 10)
	_, view := newTestView("def foo():\n    pass")

	view.Render(sim)

	if row := screenRow(sim, 0); !strings.Contains(row, "def foo():") {
		t.Errorf("expected first line on screen, got %q", row)
	}
	if row := screenRow(sim, 1); !strings.Contains(row, "pass") {
		t.Errorf("expected second line on screen, got %q", row)
	}
}

func TestRenderGutterNumbers(t *testing.T) {
	sim := newSimScreen(t, 40, 10)
	_, view := newTestView("a\nb\nc")

	view.Render(sim)

	if row := screenRow(sim, 2); !strings.HasPrefix(row, " 3") {
		t.Errorf("expected line number 3 in gutter, got %q", row)
	}
}

func TestRenderWithoutGutter(t *testing.T) {
	sim := newSimScreen(t, 40, 10)
	eng := engine.New(engine.WithContent("hello"))
	view := NewView(eng, highlight.NewProvider(nil, 0), WithLineNumbers(false))

	view.Render(sim)

	if row := screenRow(sim, 0); !strings.HasPrefix(row, "hello") {
		t.Errorf("expected text at column 0, got %q", row)
	}
}

func TestRenderStatusLine(t *testing.T) {
	sim := newSimScreen(t, 40, 10)
	eng, view := newTestView("hello")
	if err := eng.MoveCursorTo(0); err != nil {
		t.Fatal(err)
	}
	view.SetStatus("main.py")

	view.Render(sim)

	row := screenRow(sim, 9)
	if !strings.Contains(row, "main.py") {
		t.Errorf("expected status text, got %q", row)
	}
	if !strings.Contains(row, "Ln 1, Col 1") {
		t.Errorf("expected cursor position, got %q", row)
	}
	if err := eng.MoveCursorTo(eng.Len()); err != nil {
		t.Fatal(err)
	}
	view.Render(sim)
	if row := screenRow(sim, 9); !strings.Contains(row, "Ln 1, Col 6") {
		t.Errorf("expected end-of-line cursor position, got %q", row)
	}
}

func TestRenderOutputPane(t *testing.T) {
	sim := newSimScreen(t, 40, 12)
	_, view := newTestView("x = 1")
	view.SetOutput([]string{"hello from program"})

	view.Render(sim)

	found := false
	for y := 0; y < 12; y++ {
		if strings.Contains(screenRow(sim, y), "hello from program") {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected output pane contents on screen")
	}
}

func TestScrollFollowsCursor(t *testing.T) {
	sim := newSimScreen(t, 40, 10)
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = "line"
	}
	eng, view := newTestView(strings.Join(lines, "\n"))

	if err := eng.MoveCursorTo(eng.Len()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	view.Render(sim)

	if view.TopLine() == 0 {
		t.Error("expected view to scroll down to the cursor")
	}
	cursorRow := 49 - view.TopLine()
	if cursorRow < 0 || cursorRow >= 9 {
		t.Errorf("expected cursor line visible, top=%d", view.TopLine())
	}
}

func TestBufferPositionFromClick(t *testing.T) {
	_, view := newTestView("hello\nworld")

	line, col, ok := view.BufferPosition(view.gutterWidth()+2, 1, 40, 10)
	if !ok {
		t.Fatal("expected click inside text area")
	}
	if line != 1 || col != 2 {
		t.Errorf("expected line 1 col 2, got line %d col %d", line, col)
	}

	if _, _, ok := view.BufferPosition(0, 9, 40, 10); ok {
		t.Error("expected click on status line to be rejected")
	}
}

func TestClickPastLineEndClampsColumn(t *testing.T) {
	_, view := newTestView("ab\nlonger line")

	_, col, ok := view.BufferPosition(view.gutterWidth()+30, 0, 40, 10)
	if !ok {
		t.Fatal("expected click inside text area")
	}
	if col != 2 {
		t.Errorf("expected column clamped to line length 2, got %d", col)
	}
}

func TestTabExpansion(t *testing.T) {
	_, view := newTestView("\tx")

	if got := view.visualCol("\tx", 1); got != 4 {
		t.Errorf("expected visual column 4 after tab, got %d", got)
	}
	if got := view.runeColForVisual("\tx", 4); got != 1 {
		t.Errorf("expected rune column 1 at visual 4, got %d", got)
	}
	if got := view.runeColForVisual("\tx", 2); got != 0 {
		t.Errorf("expected click mid-tab to land on the tab, got %d", got)
	}
}

func TestInvalidateAfterEdit(t *testing.T) {
	sim := newSimScreen(t, 40, 10)
	eng, view := newTestView(`s = """open`)

	view.Render(sim)

	if err := eng.MoveCursorTo(eng.Len()); err != nil {
		t.Fatal(err)
	}
	if _, err := eng.Insert(`"""`); err != nil {
		t.Fatal(err)
	}
	view.Invalidate(0)
	view.Render(sim)

	if row := screenRow(sim, 0); !strings.Contains(row, `s = """open"""`) {
		t.Errorf("expected closed string on screen, got %q", row)
	}
}
