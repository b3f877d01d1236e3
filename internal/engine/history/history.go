package history

import (
	"errors"
	"sync"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// History manages the undo and redo stacks for one editing session.
//
// Every externally visible mutation records a Snapshot of the state
// before it via Push. Push on a fresh (non-undo/redo) action clears the
// redo stack: once the user diverges from an undone timeline, that
// branch is discarded.
type History struct {
	mu sync.Mutex

	undoStack []Snapshot
	redoStack []Snapshot

	// Grouping state: while grouping, only the first Push records, so a
	// multi-edit user action coalesces into one undo step.
	grouping bool
	recorded bool

	// maxEntries caps the undo stack; <= 0 means unbounded.
	maxEntries int
}

// New creates a history manager. maxEntries <= 0 means unbounded depth,
// matching the editor's advertised infinite undo; a positive cap evicts
// the oldest snapshot first.
func New(maxEntries int) *History {
	return &History{maxEntries: maxEntries}
}

// Push records the state before a fresh mutation and clears the redo
// stack. Inside a group only the first Push is recorded.
func (h *History) Push(s Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		if h.recorded {
			return
		}
		h.recorded = true
	}

	h.pushLocked(s)
}

// pushLocked appends without acquiring the lock.
func (h *History) pushLocked(s Snapshot) {
	h.undoStack = append(h.undoStack, s)
	h.redoStack = nil

	if h.maxEntries > 0 && len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo pops the most recent snapshot, pushing the caller's current state
// onto the redo stack. Returns ErrNothingToUndo when the undo stack is
// empty; the stacks are unchanged on error.
func (h *History) Undo(current Snapshot) (Snapshot, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return Snapshot{}, ErrNothingToUndo
	}

	top := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, current)

	return top, nil
}

// Redo pops the most recent redo snapshot, pushing the caller's current
// state onto the undo stack. Returns ErrNothingToRedo when the redo
// stack is empty; the stacks are unchanged on error.
func (h *History) Redo(current Snapshot) (Snapshot, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return Snapshot{}, ErrNothingToRedo
	}

	top := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, current)

	return top, nil
}

// BeginGroup starts a snapshot group. Pushes until EndGroup record at
// most one snapshot, so the whole group restores with a single undo.
// Nested calls are ignored.
func (h *History) BeginGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		return
	}
	h.grouping = true
	h.recorded = false
}

// EndGroup finishes the current snapshot group.
func (h *History) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.grouping = false
	h.recorded = false
}

// CancelGroup abandons the current group, discarding its recorded
// snapshot if one was taken.
func (h *History) CancelGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping && h.recorded && len(h.undoStack) > 0 {
		h.undoStack = h.undoStack[:len(h.undoStack)-1]
	}
	h.grouping = false
	h.recorded = false
}

// IsGrouping returns true if currently inside a snapshot group.
func (h *History) IsGrouping() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.grouping
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo steps available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo steps available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// PeekUndo returns the snapshot the next Undo would restore.
func (h *History) PeekUndo() (Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return Snapshot{}, false
	}
	return h.undoStack[len(h.undoStack)-1], true
}

// PeekRedo returns the snapshot the next Redo would restore.
func (h *History) PeekRedo() (Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return Snapshot{}, false
	}
	return h.redoStack[len(h.redoStack)-1], true
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
	h.grouping = false
	h.recorded = false
}

// SetMaxEntries changes the undo depth cap, trimming oldest entries if
// the stack is already larger. max <= 0 removes the cap.
func (h *History) SetMaxEntries(max int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxEntries = max

	if max > 0 && len(h.undoStack) > max {
		excess := len(h.undoStack) - max
		h.undoStack = h.undoStack[excess:]
	}
}

// MaxEntries returns the undo depth cap; <= 0 means unbounded.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}
