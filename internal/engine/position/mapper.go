package position

import "errors"

// ErrOffsetOutOfRange is returned when an offset falls outside the
// logical content.
var ErrOffsetOutOfRange = errors.New("offset out of range")

// Mapper converts between linear rune offsets and line/column points for
// one content snapshot. It is a pure function of the content it was built
// from: a buffer mutation produces a new Mapper, so the line-start index
// can never go stale. The index itself is built lazily on first use.
type Mapper struct {
	content []rune

	// lineStarts[i] is the offset of the first rune of line i.
	// Built on demand; nil until then.
	lineStarts []int
}

// NewMapper creates a mapper over a content snapshot.
func NewMapper(content string) *Mapper {
	return &Mapper{content: []rune(content)}
}

// ensureIndex builds the line-start table. A document always has at
// least one line; each newline starts another.
func (m *Mapper) ensureIndex() {
	if m.lineStarts != nil {
		return
	}

	m.lineStarts = append(m.lineStarts, 0)
	for i, r := range m.content {
		if r == '\n' {
			m.lineStarts = append(m.lineStarts, i+1)
		}
	}
}

// Len returns the content length in runes.
func (m *Mapper) Len() int {
	return len(m.content)
}

// LineCount returns the number of lines. An empty document has one line.
func (m *Mapper) LineCount() int {
	m.ensureIndex()
	return len(m.lineStarts)
}

// LineStart returns the offset of the first rune of the given line,
// clamped to the last line.
func (m *Mapper) LineStart(line int) int {
	m.ensureIndex()

	if line < 0 {
		line = 0
	}
	if line >= len(m.lineStarts) {
		line = len(m.lineStarts) - 1
	}

	return m.lineStarts[line]
}

// lineEnd returns the offset one past the last rune of the line,
// excluding the newline.
func (m *Mapper) lineEnd(line int) int {
	m.ensureIndex()

	if line+1 < len(m.lineStarts) {
		return m.lineStarts[line+1] - 1
	}
	return len(m.content)
}

// Line returns the text of the given line without its newline. Out of
// range lines clamp to the nearest line.
func (m *Mapper) Line(line int) string {
	m.ensureIndex()

	if line < 0 {
		line = 0
	}
	if line >= len(m.lineStarts) {
		line = len(m.lineStarts) - 1
	}

	return string(m.content[m.lineStarts[line]:m.lineEnd(line)])
}

// OffsetToPoint converts a linear offset to a zero-based line/column
// point. Offset len(content) is valid and maps to the position past the
// final rune. Anything outside [0, len] fails with ErrOffsetOutOfRange.
func (m *Mapper) OffsetToPoint(offset int) (Point, error) {
	if offset < 0 || offset > len(m.content) {
		return Point{}, ErrOffsetOutOfRange
	}

	m.ensureIndex()

	// Binary search for the line containing the offset: the last line
	// whose start is <= offset.
	lo, hi := 0, len(m.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if m.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}

	return Point{
		Line:   uint32(lo),
		Column: uint32(offset - m.lineStarts[lo]),
	}, nil
}

// PointToOffset converts a line/column point to a linear offset. The
// line is clamped to the document and the column to the line length, the
// behavior mouse-click targeting wants.
func (m *Mapper) PointToOffset(p Point) int {
	m.ensureIndex()

	line := int(p.Line)
	if line >= len(m.lineStarts) {
		line = len(m.lineStarts) - 1
	}

	start := m.lineStarts[line]
	col := int(p.Column)
	if max := m.lineEnd(line) - start; col > max {
		col = max
	}

	return start + col
}
