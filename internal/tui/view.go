package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/pyedit-io/pyedit/internal/engine"
	"github.com/pyedit-io/pyedit/internal/highlight"
)

// View composes the editor screen: gutter, highlighted text area,
// status line, and an optional output pane at the bottom.
type View struct {
	eng      *engine.Engine
	provider *highlight.Provider

	tabWidth        int
	showLineNumbers bool

	topLine int
	leftCol int

	status string
	output []string
}

// ViewOption configures a View.
type ViewOption func(*View)

// WithTabWidth sets the tab expansion width.
func WithTabWidth(w int) ViewOption {
	return func(v *View) {
		if w > 0 {
			v.tabWidth = w
		}
	}
}

// WithLineNumbers toggles the gutter.
func WithLineNumbers(show bool) ViewOption {
	return func(v *View) {
		v.showLineNumbers = show
	}
}

// NewView creates a view over an engine.
func NewView(eng *engine.Engine, provider *highlight.Provider, opts ...ViewOption) *View {
	v := &View{
		eng:             eng,
		provider:        provider,
		tabWidth:        4,
		showLineNumbers: true,
	}
	for _, opt := range opts {
		opt(v)
	}
	provider.SetLineGetter(func(line uint32) string {
		return eng.LineText(int(line))
	})
	return v
}

// SetStatus sets the status line message.
func (v *View) SetStatus(msg string) {
	v.status = msg
}

// SetOutput replaces the output pane contents. Empty hides the pane.
func (v *View) SetOutput(lines []string) {
	v.output = lines
}

// Output reports the current output pane contents.
func (v *View) Output() []string {
	return v.output
}

// TopLine reports the first visible buffer line.
func (v *View) TopLine() int {
	return v.topLine
}

// Invalidate drops cached highlighting from the given line down. Call
// after any buffer edit.
func (v *View) Invalidate(fromLine int) {
	if fromLine < 0 {
		fromLine = 0
	}
	v.provider.InvalidateFrom(uint32(fromLine))
}

// InvalidateAll drops all cached highlighting.
func (v *View) InvalidateAll() {
	v.provider.InvalidateAll()
}

// BufferPosition translates screen coordinates to a buffer line and
// rune column, for mouse clicks. ok is false outside the text area.
func (v *View) BufferPosition(x, y, width, height int) (line, col int, ok bool) {
	textH := v.textHeight(height)
	if y < 0 || y >= textH {
		return 0, 0, false
	}
	line = v.topLine + y
	gutterW := v.gutterWidth()
	visCol := x - gutterW + v.leftCol
	if visCol < 0 {
		visCol = 0
	}
	col = v.runeColForVisual(v.eng.LineText(line), visCol)
	return line, col, true
}

// Render draws the full frame and positions the hardware cursor.
func (v *View) Render(screen tcell.Screen) {
	width, height := screen.Size()
	if width <= 0 || height <= 0 {
		return
	}

	theme := v.provider.Theme()
	bgStyle := plainStyle(theme.Foreground, theme.Background)

	textH := v.textHeight(height)
	cursor := v.eng.CursorPoint()
	v.scrollTo(int(cursor.Line), v.visualCol(v.eng.LineText(int(cursor.Line)), int(cursor.Column)), width, textH)

	fill(screen, 0, 0, width, height, bgStyle)

	gutterW := v.gutterWidth()
	lineCount := v.eng.LineCount()
	for row := 0; row < textH; row++ {
		line := v.topLine + row
		if line >= lineCount {
			break
		}
		v.renderLine(screen, row, line, line == int(cursor.Line), gutterW, width, theme)
	}

	v.renderStatus(screen, textH, width, cursor, theme)
	v.renderOutput(screen, textH+1, width, height, theme)

	cursorX := gutterW + v.visualCol(v.eng.LineText(int(cursor.Line)), int(cursor.Column)) - v.leftCol
	cursorY := int(cursor.Line) - v.topLine
	if cursorX >= gutterW && cursorX < width && cursorY >= 0 && cursorY < textH {
		screen.ShowCursor(cursorX, cursorY)
	} else {
		screen.HideCursor()
	}
	screen.Show()
}

func (v *View) renderLine(screen tcell.Screen, row, line int, isCursorLine bool, gutterW, width int, theme *highlight.Theme) {
	bg := theme.Background
	if isCursorLine {
		bg = theme.CursorLine
	}

	if v.showLineNumbers {
		num := fmt.Sprintf("%*d ", gutterW-1, line+1)
		numStyle := plainStyle(theme.LineNumber, theme.Background)
		if isCursorLine {
			numStyle = plainStyle(theme.Foreground, theme.Background)
		}
		drawText(screen, 0, row, num, numStyle)
	}

	if isCursorLine {
		fill(screen, gutterW, row, width, row+1, plainStyle(theme.Foreground, bg))
	}

	text := v.eng.LineText(line)
	tokens := v.provider.TokensForLine(uint32(line))
	cells := v.lineCells(text, tokens, theme, bg)

	for i := v.leftCol; i < len(cells) && gutterW+i-v.leftCol < width; i++ {
		c := cells[i]
		screen.SetContent(gutterW+i-v.leftCol, row, c.r, nil, c.style)
	}
}

func (v *View) renderStatus(screen tcell.Screen, y, width int, cursor engine.Point, theme *highlight.Theme) {
	style := plainStyle(theme.StatusBarText, theme.StatusBar)
	fill(screen, 0, y, width, y+1, style)

	left := " " + v.status
	right := fmt.Sprintf(" Ln %d, Col %d ", cursor.Line+1, cursor.Column+1)
	drawText(screen, 0, y, left, style)
	if len(right) < width {
		drawText(screen, width-len(right), y, right, style)
	}
}

func (v *View) renderOutput(screen tcell.Screen, y, width, height int, theme *highlight.Theme) {
	if len(v.output) == 0 || y >= height {
		return
	}
	titleStyle := plainStyle(theme.Dim(theme.Foreground), theme.Background)
	drawText(screen, 0, y, strings.Repeat("-", max(0, width)), titleStyle)
	drawText(screen, 1, y, " output ", titleStyle)

	lineStyle := plainStyle(theme.Foreground, theme.Background)
	for i, line := range v.output {
		row := y + 1 + i
		if row >= height {
			break
		}
		drawText(screen, 0, row, line, lineStyle)
	}
}

// textHeight returns the rows available for buffer text after the
// status line and output pane are carved off.
func (v *View) textHeight(screenHeight int) int {
	outputH := 0
	if len(v.output) > 0 {
		outputH = len(v.output) + 1
		if limit := screenHeight / 3; outputH > limit {
			outputH = limit
		}
	}
	h := screenHeight - 1 - outputH
	if h < 1 {
		h = 1
	}
	return h
}

func (v *View) gutterWidth() int {
	if !v.showLineNumbers {
		return 0
	}
	digits := 1
	for n := v.eng.LineCount(); n >= 10; n /= 10 {
		digits++
	}
	return digits + 2
}

// scrollTo keeps the cursor inside the visible text area.
func (v *View) scrollTo(cursorLine, cursorVisCol, width, textH int) {
	if cursorLine < v.topLine {
		v.topLine = cursorLine
	}
	if cursorLine >= v.topLine+textH {
		v.topLine = cursorLine - textH + 1
	}

	textW := width - v.gutterWidth()
	if textW < 1 {
		textW = 1
	}
	if cursorVisCol < v.leftCol {
		v.leftCol = cursorVisCol
	}
	if cursorVisCol >= v.leftCol+textW {
		v.leftCol = cursorVisCol - textW + 1
	}
}

type viewCell struct {
	r     rune
	style tcell.Style
}

// lineCells expands a line into visual cells, widening tabs to the
// next tab stop and attaching token styles by rune column.
func (v *View) lineCells(text string, tokens []highlight.Token, theme *highlight.Theme, bg colorful.Color) []viewCell {
	var cells []viewCell
	defaultStyle := plainStyle(theme.Foreground, bg)
	for col, r := range []rune(text) {
		if r == '\t' {
			for {
				cells = append(cells, viewCell{' ', defaultStyle})
				if len(cells)%v.tabWidth == 0 {
					break
				}
			}
			continue
		}
		style := defaultStyle
		if tok, ok := highlight.TokenAt(tokens, uint32(col)); ok {
			style = styleFor(theme.StyleForToken(tok.Type), bg)
		}
		cells = append(cells, viewCell{r, style})
	}
	return cells
}

// visualCol converts a rune column to its on-screen column after tab
// expansion.
func (v *View) visualCol(text string, runeCol int) int {
	vis := 0
	for col, r := range []rune(text) {
		if col >= runeCol {
			break
		}
		if r == '\t' {
			vis += v.tabWidth - vis%v.tabWidth
		} else {
			vis++
		}
	}
	return vis
}

// runeColForVisual inverts visualCol for mouse clicks. A click
// anywhere inside a tab's expansion lands on the tab itself; columns
// past the end of the line map to the line length.
func (v *View) runeColForVisual(text string, visCol int) int {
	vis := 0
	for col, r := range []rune(text) {
		width := 1
		if r == '\t' {
			width = v.tabWidth - vis%v.tabWidth
		}
		if visCol < vis+width {
			return col
		}
		vis += width
	}
	return len([]rune(text))
}

func fill(screen tcell.Screen, left, top, right, bottom int, style tcell.Style) {
	for y := top; y < bottom; y++ {
		for x := left; x < right; x++ {
			screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
