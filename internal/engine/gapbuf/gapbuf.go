package gapbuf

import "errors"

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
)

// Buffer is a gap buffer over rune cells. Storage is a single contiguous
// slice partitioned into three regions: content before the cursor in
// [0, gapStart), the gap in [gapStart, gapEnd), and content after the
// cursor in [gapEnd, len(data)). The cursor always equals gapStart, so
// edits at the cursor only touch the gap boundaries.
//
// Buffer is not safe for concurrent use; it is owned by a single editing
// session. The engine facade provides synchronization for collaborators.
type Buffer struct {
	data     []rune
	gapStart int
	gapEnd   int
	minGap   int
}

// New creates an empty buffer. The entire initial storage is gap.
func New(opts ...Option) *Buffer {
	b := &Buffer{minGap: DefaultMinGap}

	for _, opt := range opts {
		opt(b)
	}

	if b.data == nil {
		b.data = make([]rune, DefaultCapacity)
	}
	b.gapStart = 0
	b.gapEnd = len(b.data)

	return b
}

// FromString creates a buffer holding s with the cursor at the end.
// Capacity is at least the content length plus the minimum gap reserve.
func FromString(s string, opts ...Option) *Buffer {
	b := &Buffer{minGap: DefaultMinGap}

	for _, opt := range opts {
		opt(b)
	}

	rs := []rune(s)
	capacity := len(rs) + b.minGap
	if len(b.data) > capacity {
		capacity = len(b.data)
	}

	b.data = make([]rune, capacity)
	copy(b.data, rs)
	b.gapStart = len(rs)
	b.gapEnd = capacity

	return b
}

// Len returns the logical content length in runes, excluding the gap.
func (b *Buffer) Len() int {
	return len(b.data) - (b.gapEnd - b.gapStart)
}

// Cursor returns the logical cursor offset. It always equals the gap start.
func (b *Buffer) Cursor() int {
	return b.gapStart
}

// Cap returns the total storage capacity including the gap.
func (b *Buffer) Cap() int {
	return len(b.data)
}

// GapLen returns the current size of the gap.
func (b *Buffer) GapLen() int {
	return b.gapEnd - b.gapStart
}

// IsEmpty returns true if the buffer holds no content.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// Text returns the logical content as a string: the pre-gap and post-gap
// regions concatenated in order. The result is always a fresh copy, never
// a view into the gap storage.
func (b *Buffer) Text() string {
	out := make([]rune, 0, b.Len())
	out = append(out, b.data[:b.gapStart]...)
	out = append(out, b.data[b.gapEnd:]...)
	return string(out)
}

// Insert writes s into the gap at the current cursor. The gap shrinks from
// its start and the cursor advances past the inserted text. When the
// fragment is larger than the gap the buffer grows first; growth doubles
// capacity so insertion stays amortized O(1) per rune.
func (b *Buffer) Insert(s string) {
	if s == "" {
		return
	}

	rs := []rune(s)
	if len(rs) > b.GapLen() {
		b.grow(len(rs))
	}

	copy(b.data[b.gapStart:], rs)
	b.gapStart += len(rs)
}

// DeleteBackward removes up to n runes before the cursor by widening the
// gap leftward. Returns the number of runes actually removed; n larger
// than the content before the cursor clamps rather than underflowing.
// Capacity never shrinks.
func (b *Buffer) DeleteBackward(n int) int {
	if n < 0 {
		n = 0
	}
	if n > b.gapStart {
		n = b.gapStart
	}

	for i := b.gapStart - n; i < b.gapStart; i++ {
		b.data[i] = 0
	}
	b.gapStart -= n

	return n
}

// DeleteForward removes up to n runes after the cursor by widening the gap
// rightward. Returns the number of runes actually removed, clamped to the
// content after the cursor.
func (b *Buffer) DeleteForward(n int) int {
	avail := len(b.data) - b.gapEnd
	if n < 0 {
		n = 0
	}
	if n > avail {
		n = avail
	}

	for i := b.gapEnd; i < b.gapEnd+n; i++ {
		b.data[i] = 0
	}
	b.gapEnd += n

	return n
}

// DeleteRange removes the logical range [start, end). It is equivalent to
// moving the cursor to end and extending the gap leftward over the range.
// On error the buffer is unchanged.
func (b *Buffer) DeleteRange(start, end int) error {
	if start > end {
		return ErrRangeInvalid
	}
	if start < 0 || end > b.Len() {
		return ErrOffsetOutOfRange
	}

	if err := b.MoveCursorTo(end); err != nil {
		return err
	}
	b.DeleteBackward(end - start)

	return nil
}

// MoveCursorTo relocates the gap so the cursor sits at the logical offset.
// Only the runes between the old and new cursor positions are copied
// across the gap, so the cost is O(distance moved). An out-of-range offset
// returns ErrOffsetOutOfRange and leaves the buffer untouched.
func (b *Buffer) MoveCursorTo(offset int) error {
	if offset < 0 || offset > b.Len() {
		return ErrOffsetOutOfRange
	}

	if offset < b.gapStart {
		// Slide the gap left: runes in [offset, gapStart) move to the
		// far side of the gap.
		delta := b.gapStart - offset
		copy(b.data[b.gapEnd-delta:b.gapEnd], b.data[offset:b.gapStart])
		b.gapStart -= delta
		b.gapEnd -= delta
		b.clearGap()
	} else if offset > b.gapStart {
		// Slide the gap right: runes in [gapEnd, gapEnd+delta) move to
		// the near side.
		delta := offset - b.gapStart
		copy(b.data[b.gapStart:b.gapStart+delta], b.data[b.gapEnd:b.gapEnd+delta])
		b.gapStart += delta
		b.gapEnd += delta
		b.clearGap()
	}

	return nil
}

// RuneAt returns the rune at the logical offset.
func (b *Buffer) RuneAt(offset int) (rune, bool) {
	if offset < 0 || offset >= b.Len() {
		return 0, false
	}
	if offset < b.gapStart {
		return b.data[offset], true
	}
	return b.data[offset+b.GapLen()], true
}

// Restore replaces the entire content and cursor in one step, reusing the
// existing storage when it fits. Used by undo/redo to reinstate snapshots.
// The cursor is clamped into the new content.
func (b *Buffer) Restore(text string, cursor int) {
	rs := []rune(text)

	if len(rs)+b.minGap > len(b.data) {
		capacity := 2 * len(b.data)
		if capacity < len(rs)+b.minGap {
			capacity = len(rs) + b.minGap
		}
		b.data = make([]rune, capacity)
	} else {
		for i := range b.data {
			b.data[i] = 0
		}
	}

	copy(b.data, rs)
	b.gapStart = len(rs)
	b.gapEnd = len(b.data)

	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(rs) {
		cursor = len(rs)
	}
	// Restore never fails: the cursor is already clamped.
	_ = b.MoveCursorTo(cursor)
}

// grow replaces the storage with a larger region, keeping the logical
// content and cursor fixed while opening a fresh gap at the cursor. The
// new capacity is at least double the old and large enough for need runes.
func (b *Buffer) grow(need int) {
	capacity := 2 * len(b.data)
	if capacity < b.Len()+need+b.minGap {
		capacity = b.Len() + need + b.minGap
	}

	data := make([]rune, capacity)
	copy(data, b.data[:b.gapStart])

	tail := len(b.data) - b.gapEnd
	newGapEnd := capacity - tail
	copy(data[newGapEnd:], b.data[b.gapEnd:])

	b.data = data
	b.gapEnd = newGapEnd
}

// clearGap resets gap cells to the sentinel. The gap never holds
// meaningful runes; keeping it zeroed makes buffer dumps readable.
func (b *Buffer) clearGap() {
	for i := b.gapStart; i < b.gapEnd; i++ {
		b.data[i] = 0
	}
}
