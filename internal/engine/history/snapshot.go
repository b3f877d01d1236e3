package history

import "time"

// Snapshot is an immutable capture of the document state used as an
// undo/redo checkpoint: the full logical content plus the cursor offset.
// Snapshots are owned by the history stacks; the buffer never references
// them.
type Snapshot struct {
	Content string
	Cursor  int
	Taken   time.Time
}

// NewSnapshot captures content and cursor with the current timestamp.
func NewSnapshot(content string, cursor int) Snapshot {
	return Snapshot{
		Content: content,
		Cursor:  cursor,
		Taken:   time.Now(),
	}
}

// Equal reports whether two snapshots capture the same document state.
// Timestamps are ignored.
func (s Snapshot) Equal(other Snapshot) bool {
	return s.Content == other.Content && s.Cursor == other.Cursor
}
