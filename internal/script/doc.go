// Package script runs user-supplied Lua policy scripts.
//
// A policy script customizes editing behavior without rebuilding the
// editor. The contract is small: the script defines
//
//	function is_block_opener(line)
//	  return ...
//	end
//
// and may set a global indent_width. Scripts run in a restricted
// interpreter: only the base, table, string, and math libraries are
// open, and file or module loading primitives are removed. Each call
// into the script is bounded by a timeout through the interpreter's
// context support.
package script
