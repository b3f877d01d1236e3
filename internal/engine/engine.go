package engine

import (
	"sync"

	"github.com/pyedit-io/pyedit/internal/engine/cursor"
	"github.com/pyedit-io/pyedit/internal/engine/gapbuf"
	"github.com/pyedit-io/pyedit/internal/engine/history"
	"github.com/pyedit-io/pyedit/internal/engine/position"
)

// Re-export commonly used types for convenience.
type (
	// Point represents a line/column position.
	Point = position.Point

	// Selection represents an anchor/cursor pair.
	Selection = cursor.Selection

	// Snapshot is an undo/redo checkpoint.
	Snapshot = history.Snapshot

	// BlockOpenerFunc is the injectable auto-indent policy.
	BlockOpenerFunc = position.BlockOpenerFunc
)

// Engine is the facade over the editing core: the gap buffer, the
// position mapper, and the undo/redo history. Every mutating operation
// is checkpointed so one call corresponds to one undo step, and a
// failing call leaves content, cursor, and both history stacks
// untouched.
//
// The editing session itself is single-threaded, but collaborators
// (highlighting, execution) query Text from other goroutines, so the
// facade is guarded by an RWMutex. Text always returns a copy, never a
// view into the gap storage.
type Engine struct {
	mu sync.RWMutex

	buf  *gapbuf.Buffer
	hist *history.History

	blockOpener position.BlockOpenerFunc

	// Configuration
	maxUndoEntries int
	readOnly       bool
	initContent    string
}

// New creates an engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{}

	for _, opt := range opts {
		opt(e)
	}

	if e.initContent != "" {
		e.buf = gapbuf.FromString(e.initContent)
	} else {
		e.buf = gapbuf.New()
	}
	e.hist = history.New(e.maxUndoEntries)

	return e
}

// checkpoint records the current state before a mutation.
func (e *Engine) checkpoint() {
	e.hist.Push(history.NewSnapshot(e.buf.Text(), e.buf.Cursor()))
}

// Read Operations

// Text returns the full logical content as an immutable copy.
func (e *Engine) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Text()
}

// Len returns the logical content length in runes.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Len()
}

// Cursor returns the current cursor offset.
func (e *Engine) Cursor() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Cursor()
}

// IsEmpty returns true if the document has no content.
func (e *Engine) IsEmpty() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.IsEmpty()
}

// LineCount returns the number of lines in the document.
func (e *Engine) LineCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return position.NewMapper(e.buf.Text()).LineCount()
}

// LineText returns the text of the given line without its newline.
func (e *Engine) LineText(line int) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return position.NewMapper(e.buf.Text()).Line(line)
}

// CurrentLine returns the text of the line containing the cursor.
func (e *Engine) CurrentLine() string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	m := position.NewMapper(e.buf.Text())
	p, err := m.OffsetToPoint(e.buf.Cursor())
	if err != nil {
		return ""
	}
	return m.Line(int(p.Line))
}

// Position Conversion

// CursorPoint returns the cursor as a line/column point.
func (e *Engine) CursorPoint() Point {
	e.mu.RLock()
	defer e.mu.RUnlock()

	p, err := position.NewMapper(e.buf.Text()).OffsetToPoint(e.buf.Cursor())
	if err != nil {
		return Point{}
	}
	return p
}

// OffsetToPoint converts a linear offset to a line/column point.
func (e *Engine) OffsetToPoint(offset int) (Point, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	p, err := position.NewMapper(e.buf.Text()).OffsetToPoint(offset)
	if err != nil {
		return Point{}, ErrOffsetOutOfRange
	}
	return p, nil
}

// PointToOffset converts a line/column point to a linear offset, with
// line and column clamped into the document.
func (e *Engine) PointToOffset(p Point) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return position.NewMapper(e.buf.Text()).PointToOffset(p)
}

// Write Operations

// Insert writes text at the current cursor and returns the new cursor
// offset.
func (e *Engine) Insert(text string) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return 0, ErrReadOnly
	}
	if text == "" {
		return e.buf.Cursor(), nil
	}

	e.checkpoint()
	e.buf.Insert(text)

	return e.buf.Cursor(), nil
}

// DeleteBackward removes up to n runes before the cursor, returning the
// count actually removed. Deleting past the start clamps.
func (e *Engine) DeleteBackward(n int) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return 0, ErrReadOnly
	}

	if n > e.buf.Cursor() {
		n = e.buf.Cursor()
	}
	if n <= 0 {
		return 0, nil
	}

	e.checkpoint()
	return e.buf.DeleteBackward(n), nil
}

// DeleteForward removes up to n runes after the cursor, returning the
// count actually removed. Deleting past the end clamps.
func (e *Engine) DeleteForward(n int) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return 0, ErrReadOnly
	}

	if avail := e.buf.Len() - e.buf.Cursor(); n > avail {
		n = avail
	}
	if n <= 0 {
		return 0, nil
	}

	e.checkpoint()
	return e.buf.DeleteForward(n), nil
}

// DeleteRange removes the logical range [start, end). The cursor lands
// at start. On error nothing changes.
func (e *Engine) DeleteRange(start, end int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}

	// Validate before checkpointing so a rejected call leaves history
	// untouched.
	if start > end {
		return ErrRangeInvalid
	}
	if start < 0 || end > e.buf.Len() {
		return ErrOffsetOutOfRange
	}
	if start == end {
		return nil
	}

	e.checkpoint()
	return e.buf.DeleteRange(start, end)
}

// DeleteSelection removes the selected text. The selection may run in
// either direction; a malformed pair fails with ErrSelectionInvalid.
func (e *Engine) DeleteSelection(sel Selection) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	if !sel.IsValid() {
		return ErrSelectionInvalid
	}

	r := sel.Clamp(e.buf.Len()).Normalize()
	if r.IsEmpty() {
		return nil
	}

	e.checkpoint()
	return e.buf.DeleteRange(r.Start(), r.End())
}

// MoveCursorTo relocates the cursor to the logical offset. Movement is
// not a mutation and records no undo step.
func (e *Engine) MoveCursorTo(offset int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.MoveCursorTo(offset)
}

// ClickAt resolves a line/column position (clamped into the document)
// and moves the cursor there, returning the resulting offset.
func (e *Engine) ClickAt(line, column int) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if line < 0 || column < 0 {
		return 0, ErrOffsetOutOfRange
	}

	off := position.NewMapper(e.buf.Text()).PointToOffset(Point{
		Line:   uint32(line),
		Column: uint32(column),
	})
	if err := e.buf.MoveCursorTo(off); err != nil {
		return 0, err
	}

	return off, nil
}

// Undo/Redo Operations

// Undo restores the state before the most recent mutation and returns
// the restored cursor offset.
func (e *Engine) Undo() (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return 0, ErrReadOnly
	}

	current := history.NewSnapshot(e.buf.Text(), e.buf.Cursor())
	s, err := e.hist.Undo(current)
	if err != nil {
		return 0, err
	}

	e.buf.Restore(s.Content, s.Cursor)
	return e.buf.Cursor(), nil
}

// Redo reinstates the most recently undone state and returns the
// restored cursor offset.
func (e *Engine) Redo() (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return 0, ErrReadOnly
	}

	current := history.NewSnapshot(e.buf.Text(), e.buf.Cursor())
	s, err := e.hist.Redo(current)
	if err != nil {
		return 0, err
	}

	e.buf.Restore(s.Content, s.Cursor)
	return e.buf.Cursor(), nil
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	return e.hist.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool {
	return e.hist.CanRedo()
}

// UndoCount returns the number of undo steps available.
func (e *Engine) UndoCount() int {
	return e.hist.UndoCount()
}

// RedoCount returns the number of redo steps available.
func (e *Engine) RedoCount() int {
	return e.hist.RedoCount()
}

// BeginGroup starts an undo group: all mutations until EndGroup restore
// with a single undo.
func (e *Engine) BeginGroup() {
	e.hist.BeginGroup()
}

// EndGroup ends the current undo group.
func (e *Engine) EndGroup() {
	e.hist.EndGroup()
}

// CancelGroup abandons the current undo group without recording it.
func (e *Engine) CancelGroup() {
	e.hist.CancelGroup()
}

// ClearHistory removes all undo/redo history.
func (e *Engine) ClearHistory() {
	e.hist.Clear()
}

// Policy

// IsBlockOpener reports whether the line containing the cursor opens a
// block under the injected policy, used by the caller to auto-indent
// after Enter. The policy itself runs outside the lock; it may be a
// script with its own synchronization.
func (e *Engine) IsBlockOpener() bool {
	e.mu.RLock()
	m := position.NewMapper(e.buf.Text())
	p, err := m.OffsetToPoint(e.buf.Cursor())
	var line string
	if err == nil {
		line = m.Line(int(p.Line))
	}
	fn := e.blockOpener
	e.mu.RUnlock()

	if err != nil {
		return false
	}
	return position.IsBlockOpener(line, fn)
}

// IsBlockOpenerLine applies the injected policy to an arbitrary line.
func (e *Engine) IsBlockOpenerLine(line string) bool {
	e.mu.RLock()
	fn := e.blockOpener
	e.mu.RUnlock()
	return position.IsBlockOpener(line, fn)
}

// SetBlockOpener replaces the auto-indent policy. A nil policy falls
// back to the trailing-colon default.
func (e *Engine) SetBlockOpener(fn BlockOpenerFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.blockOpener = fn
}

// State management

// IsReadOnly returns true if the engine rejects mutations.
func (e *Engine) IsReadOnly() bool {
	return e.readOnly
}

// SetContent replaces the whole document, moves the cursor to the end,
// and resets history. Used for loading a file into the session.
func (e *Engine) SetContent(content string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}

	e.buf = gapbuf.FromString(content)
	e.hist.Clear()

	return nil
}
