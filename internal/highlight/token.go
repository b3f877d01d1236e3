package highlight

// TokenType represents the semantic type of a token.
type TokenType uint8

// Token types for syntax highlighting.
const (
	TokenNone TokenType = iota
	TokenComment
	TokenString
	TokenNumber
	TokenKeyword
	TokenOperator
	TokenIdentifier
	TokenFunction
	TokenClass
	TokenDecorator
	TokenConstant
	TokenBuiltin

	tokenTypeCount
)

// tokenTypeNames maps token types to their string names.
var tokenTypeNames = []string{
	TokenNone:       "none",
	TokenComment:    "comment",
	TokenString:     "string",
	TokenNumber:     "number",
	TokenKeyword:    "keyword",
	TokenOperator:   "operator",
	TokenIdentifier: "identifier",
	TokenFunction:   "function",
	TokenClass:      "class",
	TokenDecorator:  "decorator",
	TokenConstant:   "constant",
	TokenBuiltin:    "builtin",
}

// String returns the string representation of a token type.
func (t TokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "unknown"
}

// Token represents a highlighted span on a single line. Columns are
// rune-indexed, EndCol exclusive.
type Token struct {
	Type     TokenType
	StartCol uint32
	EndCol   uint32
}

// Len returns the length of the token in runes.
func (t Token) Len() uint32 {
	return t.EndCol - t.StartCol
}

// Contains returns true if the column is within the token.
func (t Token) Contains(col uint32) bool {
	return col >= t.StartCol && col < t.EndCol
}

// LexerState carries multi-line constructs across HighlightLine calls.
type LexerState uint8

// Lexer states.
const (
	LexerStateNormal LexerState = iota
	LexerStateTripleSingle // inside '''...'''
	LexerStateTripleDouble // inside """..."""
)

// Highlighter tokenizes source one line at a time. prevState is the
// lexer state at the end of the previous line; the returned state feeds
// the next line, so multi-line strings survive line boundaries.
type Highlighter interface {
	HighlightLine(line string, prevState LexerState) ([]Token, LexerState)
	Language() string
	FileExtensions() []string
}

// TokenAt returns the token covering the given column, if any. Tokens
// are sorted by StartCol.
func TokenAt(tokens []Token, col uint32) (Token, bool) {
	for _, tok := range tokens {
		if tok.Contains(col) {
			return tok, true
		}
		if tok.StartCol > col {
			break
		}
	}
	return Token{}, false
}
