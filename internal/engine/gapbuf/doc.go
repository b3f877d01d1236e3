// Package gapbuf implements the gap buffer that backs the editor engine.
//
// A gap buffer keeps one contiguous block of reserved-but-unused capacity
// (the gap) positioned at the cursor. Typing fills the gap from the left,
// backspace widens it, and moving the cursor slides the gap through the
// storage by copying only the runes between the old and new positions.
// Sequential edits at the cursor are therefore O(1) amortized, while a
// cursor jump costs O(distance moved).
//
// Buffer state with content "Hello World" and the cursor after "Hello":
//
//	[H][e][l][l][o][ ][ ][ ][ ][W][o][r][l][d]
//	                ^gapStart   ^gapEnd
//
// Offsets in the public API are logical: positions in the content as the
// user sees it, excluding the gap. The gap region holds zero-rune
// sentinels and never contributes to Text or Len.
//
// Buffer is owned by a single editing session and performs no locking;
// the engine package synchronizes access for concurrent collaborators.
package gapbuf
