// Package position maps between linear rune offsets and line/column
// points over a content snapshot.
//
// A Mapper is derived state: it is constructed from a Text() snapshot
// and discarded after use, so every buffer mutation invalidates it by
// construction. Within one Mapper a lazily built line-start table makes
// repeated conversions O(log lines) instead of a full scan; correctness
// never depends on the table being present.
//
// The package also hosts the auto-indent policy hook. BlockOpenerFunc is
// a pluggable predicate supplied by the syntax layer; the default is the
// trailing-colon rule for Python.
package position
