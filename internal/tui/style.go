package tui

import (
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/pyedit-io/pyedit/internal/highlight"
)

// toTcellColor converts a theme color to a 24-bit terminal color.
func toTcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// styleFor builds the terminal style for a token style over the given
// background.
func styleFor(s highlight.Style, bg colorful.Color) tcell.Style {
	st := tcell.StyleDefault.
		Foreground(toTcellColor(s.Foreground)).
		Background(toTcellColor(bg))
	if s.Bold {
		st = st.Bold(true)
	}
	if s.Italic {
		st = st.Italic(true)
	}
	return st
}

// plainStyle builds a foreground-over-background style.
func plainStyle(fg, bg colorful.Color) tcell.Style {
	return tcell.StyleDefault.
		Foreground(toTcellColor(fg)).
		Background(toTcellColor(bg))
}
