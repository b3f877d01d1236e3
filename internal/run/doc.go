// Package run executes buffer contents with an external interpreter.
//
// Execution is one-shot: the source is written to a private temporary
// file, the interpreter runs it under a timeout, and both output
// streams are captured with a size cap. Each Result carries a unique
// ID for correlating output with editor state.
package run
