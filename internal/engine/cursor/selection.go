package cursor

import "fmt"

// Selection represents a range of selected text. Anchor is where the
// selection started; Head is the current cursor position. When Anchor ==
// Head the selection is just a cursor. Selection is an immutable value
// type; selections are transient UI state and never survive an undo.
type Selection struct {
	Anchor int // Where the selection started
	Head   int // Current cursor position (where typing occurs)
}

// New creates a selection from anchor to head.
func New(anchor, head int) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// At creates a selection representing just a cursor (no extent).
func At(offset int) Selection {
	return Selection{Anchor: offset, Head: offset}
}

// IsEmpty returns true if the selection has no extent (just a cursor).
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// IsValid returns true if both ends are non-negative.
func (s Selection) IsValid() bool {
	return s.Anchor >= 0 && s.Head >= 0
}

// Len returns the length of the selection.
func (s Selection) Len() int {
	if s.Anchor <= s.Head {
		return s.Head - s.Anchor
	}
	return s.Anchor - s.Head
}

// Start returns the lower bound of the selection.
func (s Selection) Start() int {
	if s.Anchor <= s.Head {
		return s.Anchor
	}
	return s.Head
}

// End returns the upper bound of the selection.
func (s Selection) End() int {
	if s.Anchor >= s.Head {
		return s.Anchor
	}
	return s.Head
}

// Cursor returns the head position (where typing would occur).
func (s Selection) Cursor() int {
	return s.Head
}

// IsForward returns true if the selection extends forward (head >= anchor).
func (s Selection) IsForward() bool {
	return s.Head >= s.Anchor
}

// Extend returns a new selection with the head moved to offset. The
// anchor stays fixed.
func (s Selection) Extend(offset int) Selection {
	return Selection{Anchor: s.Anchor, Head: offset}
}

// Collapse collapses the selection to a cursor at the head.
func (s Selection) Collapse() Selection {
	return Selection{Anchor: s.Head, Head: s.Head}
}

// Normalize returns a forward selection (anchor <= head).
func (s Selection) Normalize() Selection {
	if s.Anchor <= s.Head {
		return s
	}
	return Selection{Anchor: s.Head, Head: s.Anchor}
}

// Clamp returns a selection clamped to the valid range [0, maxOffset].
func (s Selection) Clamp(maxOffset int) Selection {
	clamp := func(v int) int {
		if v < 0 {
			return 0
		}
		if v > maxOffset {
			return maxOffset
		}
		return v
	}
	return Selection{Anchor: clamp(s.Anchor), Head: clamp(s.Head)}
}

// Contains returns true if the given offset is within the selection.
// Empty selections contain nothing.
func (s Selection) Contains(offset int) bool {
	return offset >= s.Start() && offset < s.End()
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Cursor(%d)", s.Head)
	}
	return fmt.Sprintf("Selection(%d-%d)", s.Anchor, s.Head)
}
