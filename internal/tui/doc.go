// Package tui renders the editor to a terminal with tcell.
//
// Terminal owns the screen lifecycle; View draws frames from the
// engine: a line-number gutter, the highlighted text area, a status
// line, and an output pane for program runs. Scrolling follows the
// cursor in both axes, and tabs expand to the configured width.
package tui
