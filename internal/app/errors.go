package app

import "errors"

// Application errors.
var (
	// ErrQuit signals that the editor should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning indicates the event loop is already running.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNoFile indicates a save was requested with no file path.
	ErrNoFile = errors.New("no file to save to")
)
