// Package history provides snapshot-based undo/redo for the editor
// engine.
//
// Each undo step is a full Snapshot of document content and cursor taken
// before a mutation. Undo pops the top snapshot and parks the current
// state on the redo stack; redo is symmetric. A fresh mutation after an
// undo clears the redo stack entirely, so abandoned timelines are
// discarded rather than branched.
//
// Snapshot groups coalesce a compound user action (for example Enter
// followed by auto-indent) into a single undo step: while a group is
// open only the first Push records.
//
// Depth is unbounded by default. A cap can be set explicitly, evicting
// the oldest snapshots first; full-content snapshots keep the
// implementation simple at O(document) memory per step, which is fine at
// the document sizes this editor targets.
package history
