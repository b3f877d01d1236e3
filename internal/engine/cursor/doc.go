// Package cursor provides the selection value type used for block
// deletion and UI highlighting.
//
// A Selection is an ordered pair of logical offsets: the anchor, where
// the selection began, and the head, where the cursor currently sits.
// Either end may precede the other; Normalize and Range-style accessors
// give the caller a forward view when direction does not matter.
//
// The editor owns exactly one selection at a time. Multi-cursor editing
// is deliberately unsupported.
package cursor
