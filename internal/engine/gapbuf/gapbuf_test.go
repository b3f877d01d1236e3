package gapbuf

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	b := New()

	if !b.IsEmpty() {
		t.Error("new buffer should be empty")
	}

	if b.Len() != 0 {
		t.Errorf("expected length 0, got %d", b.Len())
	}

	if b.Cursor() != 0 {
		t.Errorf("expected cursor 0, got %d", b.Cursor())
	}

	if b.GapLen() != b.Cap() {
		t.Errorf("expected the whole storage to be gap, got gap %d of %d", b.GapLen(), b.Cap())
	}
}

func TestFromString(t *testing.T) {
	b := FromString("hello")

	if b.Text() != "hello" {
		t.Errorf("expected %q, got %q", "hello", b.Text())
	}

	if b.Len() != 5 {
		t.Errorf("expected length 5, got %d", b.Len())
	}

	if b.Cursor() != 5 {
		t.Errorf("expected cursor at end (5), got %d", b.Cursor())
	}

	if b.Cap() < b.Len()+DefaultMinGap {
		t.Errorf("expected capacity >= content + min gap, got %d", b.Cap())
	}
}

func TestInsertIntoEmpty(t *testing.T) {
	b := New()
	b.Insert("hello")

	if b.Text() != "hello" {
		t.Errorf("expected %q, got %q", "hello", b.Text())
	}

	if b.Cursor() != 5 {
		t.Errorf("expected cursor 5, got %d", b.Cursor())
	}
}

func TestInsertAtStart(t *testing.T) {
	b := FromString("hello")

	if err := b.MoveCursorTo(0); err != nil {
		t.Fatalf("move failed: %v", err)
	}
	b.Insert("X")

	if b.Text() != "Xhello" {
		t.Errorf("expected %q, got %q", "Xhello", b.Text())
	}

	if b.Cursor() != 1 {
		t.Errorf("expected cursor 1, got %d", b.Cursor())
	}
}

func TestInsertInMiddle(t *testing.T) {
	b := FromString("Hi")

	if err := b.MoveCursorTo(1); err != nil {
		t.Fatalf("move failed: %v", err)
	}
	b.Insert("e")

	if b.Text() != "Hei" {
		t.Errorf("expected %q, got %q", "Hei", b.Text())
	}
}

func TestInsertGrowsBuffer(t *testing.T) {
	b := New(WithCapacity(4), WithMinGap(2))
	b.Insert("ab")

	if err := b.MoveCursorTo(1); err != nil {
		t.Fatalf("move failed: %v", err)
	}

	// Fragment larger than the remaining gap forces a resize.
	frag := strings.Repeat("x", 64)
	oldCap := b.Cap()
	b.Insert(frag)

	if b.Cap() <= oldCap {
		t.Errorf("expected capacity to grow beyond %d, got %d", oldCap, b.Cap())
	}

	want := "a" + frag + "b"
	if b.Text() != want {
		t.Errorf("expected %q, got %q", want, b.Text())
	}

	if b.Cursor() != 1+len(frag) {
		t.Errorf("expected cursor %d, got %d", 1+len(frag), b.Cursor())
	}
}

func TestGrowDoubles(t *testing.T) {
	b := New(WithCapacity(8), WithMinGap(2))
	b.Insert("abcdefgh")

	before := b.Cap()
	b.Insert("i")

	if b.Cap() < 2*before {
		t.Errorf("expected doubling growth from %d, got %d", before, b.Cap())
	}
}

func TestDeleteBackward(t *testing.T) {
	b := FromString("hello")

	n := b.DeleteBackward(2)
	if n != 2 {
		t.Errorf("expected 2 deleted, got %d", n)
	}

	if b.Text() != "hel" {
		t.Errorf("expected %q, got %q", "hel", b.Text())
	}

	if b.Cursor() != 3 {
		t.Errorf("expected cursor 3, got %d", b.Cursor())
	}
}

func TestDeleteBackwardClamps(t *testing.T) {
	b := FromString("ab")

	n := b.DeleteBackward(10)
	if n != 2 {
		t.Errorf("expected clamp to 2 deleted, got %d", n)
	}

	if b.Text() != "" {
		t.Errorf("expected empty content, got %q", b.Text())
	}
}

func TestDeleteBackwardAtStart(t *testing.T) {
	b := FromString("ab")
	if err := b.MoveCursorTo(0); err != nil {
		t.Fatalf("move failed: %v", err)
	}

	if n := b.DeleteBackward(1); n != 0 {
		t.Errorf("expected 0 deleted at start, got %d", n)
	}

	if b.Text() != "ab" {
		t.Errorf("content changed: %q", b.Text())
	}
}

func TestDeleteForward(t *testing.T) {
	b := FromString("hello")
	if err := b.MoveCursorTo(0); err != nil {
		t.Fatalf("move failed: %v", err)
	}

	n := b.DeleteForward(2)
	if n != 2 {
		t.Errorf("expected 2 deleted, got %d", n)
	}

	if b.Text() != "llo" {
		t.Errorf("expected %q, got %q", "llo", b.Text())
	}

	if b.Cursor() != 0 {
		t.Errorf("expected cursor 0, got %d", b.Cursor())
	}
}

func TestDeleteForwardClamps(t *testing.T) {
	b := FromString("ab")
	if err := b.MoveCursorTo(1); err != nil {
		t.Fatalf("move failed: %v", err)
	}

	if n := b.DeleteForward(10); n != 1 {
		t.Errorf("expected clamp to 1 deleted, got %d", n)
	}

	if b.Text() != "a" {
		t.Errorf("expected %q, got %q", "a", b.Text())
	}
}

func TestDeleteRange(t *testing.T) {
	b := FromString("hello world")

	if err := b.DeleteRange(5, 11); err != nil {
		t.Fatalf("delete range failed: %v", err)
	}

	if b.Text() != "hello" {
		t.Errorf("expected %q, got %q", "hello", b.Text())
	}

	if b.Cursor() != 5 {
		t.Errorf("expected cursor 5, got %d", b.Cursor())
	}
}

func TestDeleteRangeEmpty(t *testing.T) {
	b := FromString("abc")

	if err := b.DeleteRange(1, 1); err != nil {
		t.Fatalf("empty range should succeed: %v", err)
	}

	if b.Text() != "abc" {
		t.Errorf("expected unchanged content, got %q", b.Text())
	}
}

func TestDeleteRangeInvalid(t *testing.T) {
	b := FromString("abc")

	if err := b.DeleteRange(2, 1); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}

	if err := b.DeleteRange(0, 4); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}

	if err := b.DeleteRange(-1, 2); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}

	if b.Text() != "abc" {
		t.Errorf("failed delete mutated content: %q", b.Text())
	}
}

func TestMoveCursorBounds(t *testing.T) {
	b := FromString("hello")

	for off := 0; off <= b.Len(); off++ {
		if err := b.MoveCursorTo(off); err != nil {
			t.Errorf("move to %d failed: %v", off, err)
		}
		if b.Cursor() != off {
			t.Errorf("expected cursor %d, got %d", off, b.Cursor())
		}
	}

	if err := b.MoveCursorTo(-1); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange for -1, got %v", err)
	}

	if err := b.MoveCursorTo(6); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange for 6, got %v", err)
	}

	if b.Text() != "hello" {
		t.Errorf("failed move mutated content: %q", b.Text())
	}
}

func TestMoveCursorPreservesContent(t *testing.T) {
	b := FromString("abcdefgh")

	// Slide the gap back and forth; content must be stable throughout.
	for _, off := range []int{0, 8, 3, 5, 1, 7, 4} {
		if err := b.MoveCursorTo(off); err != nil {
			t.Fatalf("move to %d failed: %v", off, err)
		}
		if b.Text() != "abcdefgh" {
			t.Fatalf("content corrupted after move to %d: %q", off, b.Text())
		}
	}
}

func TestRuneAt(t *testing.T) {
	b := FromString("héllo")
	if err := b.MoveCursorTo(2); err != nil {
		t.Fatalf("move failed: %v", err)
	}

	want := []rune("héllo")
	for i, r := range want {
		got, ok := b.RuneAt(i)
		if !ok || got != r {
			t.Errorf("RuneAt(%d): expected %q, got %q (ok=%v)", i, r, got, ok)
		}
	}

	if _, ok := b.RuneAt(5); ok {
		t.Error("expected RuneAt past end to fail")
	}
}

func TestRestore(t *testing.T) {
	b := FromString("hello")
	b.DeleteBackward(5)

	b.Restore("hello", 5)

	if b.Text() != "hello" {
		t.Errorf("expected %q, got %q", "hello", b.Text())
	}

	if b.Cursor() != 5 {
		t.Errorf("expected cursor 5, got %d", b.Cursor())
	}
}

func TestRestoreClampsCursor(t *testing.T) {
	b := New()
	b.Restore("ab", 99)

	if b.Cursor() != 2 {
		t.Errorf("expected cursor clamped to 2, got %d", b.Cursor())
	}
}

func TestRestoreLargerThanCapacity(t *testing.T) {
	b := New(WithCapacity(4), WithMinGap(2))
	text := strings.Repeat("y", 100)

	b.Restore(text, 50)

	if b.Text() != text {
		t.Errorf("restore lost content, got %d runes", len(b.Text()))
	}

	if b.Cursor() != 50 {
		t.Errorf("expected cursor 50, got %d", b.Cursor())
	}
}

func TestUnicodeContent(t *testing.T) {
	b := FromString("日本語")

	if b.Len() != 3 {
		t.Errorf("expected rune length 3, got %d", b.Len())
	}

	if err := b.MoveCursorTo(1); err != nil {
		t.Fatalf("move failed: %v", err)
	}
	b.Insert("x")

	if b.Text() != "日x本語" {
		t.Errorf("expected %q, got %q", "日x本語", b.Text())
	}
}

// referenceModel is the plain ordered-sequence model the gap buffer must
// agree with under any operation sequence.
type referenceModel struct {
	content []rune
	cursor  int
}

func (m *referenceModel) insert(s string) {
	rs := []rune(s)
	out := make([]rune, 0, len(m.content)+len(rs))
	out = append(out, m.content[:m.cursor]...)
	out = append(out, rs...)
	out = append(out, m.content[m.cursor:]...)
	m.content = out
	m.cursor += len(rs)
}

func (m *referenceModel) deleteBackward(n int) {
	if n > m.cursor {
		n = m.cursor
	}
	m.content = append(m.content[:m.cursor-n], m.content[m.cursor:]...)
	m.cursor -= n
}

func (m *referenceModel) deleteForward(n int) {
	if n > len(m.content)-m.cursor {
		n = len(m.content) - m.cursor
	}
	m.content = append(m.content[:m.cursor], m.content[m.cursor+n:]...)
}

func (m *referenceModel) moveTo(off int) {
	m.cursor = off
}

func TestReplayAgainstReferenceModel(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	b := New(WithCapacity(8), WithMinGap(4))
	model := &referenceModel{}

	const alphabet = "abcdefgh\nijklm nop"

	for step := 0; step < 5000; step++ {
		switch rng.Intn(4) {
		case 0: // insert a random short fragment
			n := rng.Intn(6) + 1
			frag := make([]byte, n)
			for i := range frag {
				frag[i] = alphabet[rng.Intn(len(alphabet))]
			}
			b.Insert(string(frag))
			model.insert(string(frag))
		case 1:
			n := rng.Intn(4)
			b.DeleteBackward(n)
			model.deleteBackward(n)
		case 2:
			n := rng.Intn(4)
			b.DeleteForward(n)
			model.deleteForward(n)
		case 3:
			off := rng.Intn(b.Len() + 1)
			if err := b.MoveCursorTo(off); err != nil {
				t.Fatalf("step %d: move to %d failed: %v", step, off, err)
			}
			model.moveTo(off)
		}

		if b.Text() != string(model.content) {
			t.Fatalf("step %d: content diverged from reference model", step)
		}
		if b.Cursor() != model.cursor {
			t.Fatalf("step %d: cursor %d diverged from reference %d", step, b.Cursor(), model.cursor)
		}
	}
}

func BenchmarkInsertSequential(b *testing.B) {
	buf := New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Insert("a")
	}
}

func BenchmarkInsertAfterJump(b *testing.B) {
	buf := FromString(strings.Repeat("x", 10000))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = buf.MoveCursorTo(i % buf.Len())
		buf.Insert("a")
	}
}
