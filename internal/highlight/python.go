package highlight

import "unicode"

// pythonKeywords is the keyword set of Python 3.
var pythonKeywords = map[string]TokenType{
	"and": TokenKeyword, "as": TokenKeyword, "assert": TokenKeyword,
	"async": TokenKeyword, "await": TokenKeyword, "break": TokenKeyword,
	"class": TokenKeyword, "continue": TokenKeyword, "def": TokenKeyword,
	"del": TokenKeyword, "elif": TokenKeyword, "else": TokenKeyword,
	"except": TokenKeyword, "finally": TokenKeyword, "for": TokenKeyword,
	"from": TokenKeyword, "global": TokenKeyword, "if": TokenKeyword,
	"import": TokenKeyword, "in": TokenKeyword, "is": TokenKeyword,
	"lambda": TokenKeyword, "nonlocal": TokenKeyword, "not": TokenKeyword,
	"or": TokenKeyword, "pass": TokenKeyword, "raise": TokenKeyword,
	"return": TokenKeyword, "try": TokenKeyword, "while": TokenKeyword,
	"with": TokenKeyword, "yield": TokenKeyword,

	"True": TokenConstant, "False": TokenConstant, "None": TokenConstant,
}

// pythonBuiltins is the subset of builtins worth coloring.
var pythonBuiltins = map[string]bool{
	"abs": true, "all": true, "any": true, "bool": true, "bytes": true,
	"dict": true, "enumerate": true, "float": true, "format": true,
	"input": true, "int": true, "isinstance": true, "len": true,
	"list": true, "map": true, "max": true, "min": true, "open": true,
	"print": true, "range": true, "repr": true, "reversed": true,
	"round": true, "set": true, "sorted": true, "str": true, "sum": true,
	"super": true, "tuple": true, "type": true, "zip": true,
}

const pythonOperators = "+-*/%=<>!&|^~@(){}[],.:;"

// pythonHighlighter tokenizes Python source line by line.
type pythonHighlighter struct{}

// Python returns the highlighter for Python source.
func Python() Highlighter {
	return pythonHighlighter{}
}

func (pythonHighlighter) Language() string {
	return "python"
}

func (pythonHighlighter) FileExtensions() []string {
	return []string{".py", ".pyw"}
}

// HighlightLine tokenizes one line, carrying triple-quoted string state
// across lines.
func (h pythonHighlighter) HighlightLine(line string, prevState LexerState) ([]Token, LexerState) {
	rs := []rune(line)
	var tokens []Token
	state := prevState
	i := 0

	// Finish a multi-line string continuing from the previous line.
	if state != LexerStateNormal {
		quote := tripleFor(state)
		end := findTriple(rs, 0, quote)
		if end < 0 {
			if len(rs) > 0 {
				tokens = append(tokens, Token{TokenString, 0, uint32(len(rs))})
			}
			return tokens, state
		}
		tokens = append(tokens, Token{TokenString, 0, uint32(end + 3)})
		i = end + 3
		state = LexerStateNormal
	}

	prevWord := ""
	for i < len(rs) {
		r := rs[i]

		switch {
		case r == '#':
			tokens = append(tokens, Token{TokenComment, uint32(i), uint32(len(rs))})
			i = len(rs)

		case isTripleAt(rs, i):
			quote := rs[i]
			start := i
			end := findTriple(rs, i+3, quote)
			if end < 0 {
				tokens = append(tokens, Token{TokenString, uint32(start), uint32(len(rs))})
				if quote == '\'' {
					state = LexerStateTripleSingle
				} else {
					state = LexerStateTripleDouble
				}
				i = len(rs)
				break
			}
			tokens = append(tokens, Token{TokenString, uint32(start), uint32(end + 3)})
			i = end + 3
			prevWord = ""

		case r == '\'' || r == '"':
			start := i
			i = scanString(rs, i)
			tokens = append(tokens, Token{TokenString, uint32(start), uint32(i)})
			prevWord = ""

		case unicode.IsDigit(r):
			start := i
			for i < len(rs) && (unicode.IsDigit(rs[i]) || unicode.IsLetter(rs[i]) || rs[i] == '.' || rs[i] == '_') {
				i++
			}
			tokens = append(tokens, Token{TokenNumber, uint32(start), uint32(i)})
			prevWord = ""

		case r == '@' && i+1 < len(rs) && isIdentStart(rs[i+1]):
			start := i
			i++
			for i < len(rs) && (isIdentStart(rs[i]) || unicode.IsDigit(rs[i]) || rs[i] == '.') {
				i++
			}
			tokens = append(tokens, Token{TokenDecorator, uint32(start), uint32(i)})
			prevWord = ""

		case isIdentStart(r):
			start := i
			for i < len(rs) && (isIdentStart(rs[i]) || unicode.IsDigit(rs[i])) {
				i++
			}
			word := string(rs[start:i])
			tokens = append(tokens, Token{classifyWord(word, prevWord), uint32(start), uint32(i)})
			prevWord = word

		default:
			if isOperator(r) {
				start := i
				for i < len(rs) && isOperator(rs[i]) {
					i++
				}
				tokens = append(tokens, Token{TokenOperator, uint32(start), uint32(i)})
			} else {
				i++
			}
			if r != ' ' && r != '\t' {
				prevWord = ""
			}
		}
	}

	return tokens, state
}

// classifyWord resolves an identifier against keywords, builtins, and
// the def/class name positions.
func classifyWord(word, prevWord string) TokenType {
	if t, ok := pythonKeywords[word]; ok {
		return t
	}
	switch prevWord {
	case "def":
		return TokenFunction
	case "class":
		return TokenClass
	}
	if pythonBuiltins[word] {
		return TokenBuiltin
	}
	return TokenIdentifier
}

// scanString consumes a single-quoted string starting at rs[i],
// honoring backslash escapes. Returns the index one past the closing
// quote, or the line end when unterminated.
func scanString(rs []rune, i int) int {
	quote := rs[i]
	i++
	for i < len(rs) {
		if rs[i] == '\\' {
			i += 2
			continue
		}
		if rs[i] == quote {
			return i + 1
		}
		i++
	}
	return len(rs)
}

// isTripleAt reports whether a triple quote starts at rs[i].
func isTripleAt(rs []rune, i int) bool {
	if i+2 >= len(rs) {
		return false
	}
	r := rs[i]
	return (r == '\'' || r == '"') && rs[i+1] == r && rs[i+2] == r
}

// findTriple returns the index where the closing triple quote begins,
// or -1 when the string runs past the line.
func findTriple(rs []rune, from int, quote rune) int {
	for i := from; i <= len(rs)-3; i++ {
		if rs[i] == quote && rs[i+1] == quote && rs[i+2] == quote {
			return i
		}
	}
	return -1
}

func tripleFor(state LexerState) rune {
	if state == LexerStateTripleSingle {
		return '\''
	}
	return '"'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isOperator(r rune) bool {
	for _, op := range pythonOperators {
		if r == op {
			return true
		}
	}
	return false
}
