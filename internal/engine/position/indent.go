package position

import "strings"

// BlockOpenerFunc reports whether a line introduces a new block and the
// next line should be indented one level deeper. The policy is injected
// by the syntax layer; the engine core treats it as opaque.
type BlockOpenerFunc func(line string) bool

// TrailingDelimiter builds a block-opener policy that matches lines whose
// trimmed text ends with any of the given delimiter characters. For
// Python the delimiter set is ":".
func TrailingDelimiter(delims string) BlockOpenerFunc {
	return func(line string) bool {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			return false
		}
		return strings.ContainsRune(delims, rune(trimmed[len(trimmed)-1]))
	}
}

// defaultBlockOpener is the fallback when no policy is injected.
var defaultBlockOpener = TrailingDelimiter(":")

// IsBlockOpener applies the policy to the line, falling back to the
// trailing-colon default when policy is nil.
func IsBlockOpener(line string, policy BlockOpenerFunc) bool {
	if policy == nil {
		policy = defaultBlockOpener
	}
	return policy(line)
}

// Indentation returns the leading whitespace of a line, used to carry the
// current indent level onto the next line after Enter.
func Indentation(line string) string {
	for i, r := range line {
		if r != ' ' && r != '\t' {
			return line[:i]
		}
	}
	return line
}
