// Package engine provides the text editing core: a gap-buffer document,
// cursor and position mapping, and unbounded branch-discarding undo.
//
// The Engine facade combines three subpackages:
//
//   - gapbuf: the gap buffer that stores the document and makes edits at
//     the cursor amortized O(1)
//   - position: conversion between linear offsets and line/column
//     points, plus the pluggable block-opener policy for auto-indent
//   - history: snapshot stacks giving undo/redo with new-timeline
//     semantics (a fresh edit after undo discards the redo branch)
//
// Basic usage:
//
//	e := engine.New(engine.WithContent("hello"))
//	e.MoveCursorTo(0)
//	e.Insert("X")            // "Xhello", cursor 1
//	e.Undo()                 // back to "hello", cursor 5
//
// Every mutating call is atomic with respect to observable state: it
// either fully completes, updating content, cursor, and history
// together, or fails (out-of-range offset, invalid range, empty undo
// stack) leaving all three untouched. Errors are recoverable; callers
// surface them to the user and continue.
//
// Undo granularity is one call per step. Callers composing one user
// action from several calls (Enter plus auto-indent) wrap them in
// BeginGroup/EndGroup so the action undoes as a unit.
package engine
