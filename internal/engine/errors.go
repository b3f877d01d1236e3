package engine

import (
	"errors"

	"github.com/pyedit-io/pyedit/internal/engine/gapbuf"
	"github.com/pyedit-io/pyedit/internal/engine/history"
)

// Errors returned by engine operations. The buffer and history sentinels
// are re-exported so callers can match with errors.Is against this
// package alone.
var (
	// ErrOffsetOutOfRange indicates an offset outside [0, Len()].
	ErrOffsetOutOfRange = gapbuf.ErrOffsetOutOfRange

	// ErrRangeInvalid indicates a range with end < start.
	ErrRangeInvalid = gapbuf.ErrRangeInvalid

	// ErrSelectionInvalid indicates a malformed anchor/cursor pair.
	ErrSelectionInvalid = errors.New("invalid selection")

	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = history.ErrNothingToRedo

	// ErrReadOnly indicates a mutation was attempted on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")
)
