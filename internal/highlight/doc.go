// Package highlight provides line-oriented Python syntax highlighting.
//
// Highlighting is stateful across lines only through LexerState, which
// tracks whether a line ends inside a triple-quoted string. Provider
// caches per-line token runs plus the state at each line boundary, so
// an edit invalidates the edited line and everything after it but
// recomputes lazily from the nearest cached state.
//
// The package also owns the Python indentation policy: BlockOpener
// reports whether a line ends with a colon and should indent the next
// line.
package highlight
