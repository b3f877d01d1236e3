package engine

import "github.com/pyedit-io/pyedit/internal/engine/position"

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent sets the initial document content. The cursor starts at
// the end of the content.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
	}
}

// WithMaxUndoEntries caps the undo stack depth, evicting oldest first.
// Values <= 0 leave the depth unbounded, which is the default.
func WithMaxUndoEntries(max int) Option {
	return func(e *Engine) {
		e.maxUndoEntries = max
	}
}

// WithBlockOpener injects the auto-indent block-opener policy.
func WithBlockOpener(fn position.BlockOpenerFunc) Option {
	return func(e *Engine) {
		e.blockOpener = fn
	}
}

// WithReadOnly toggles whether the engine rejects all mutations with
// ErrReadOnly.
func WithReadOnly(readOnly bool) Option {
	return func(e *Engine) {
		e.readOnly = readOnly
	}
}
