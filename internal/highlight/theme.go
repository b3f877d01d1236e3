package highlight

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/pyedit-io/pyedit/internal/engine/position"
)

// Style describes how a token is rendered.
type Style struct {
	Foreground colorful.Color
	Bold       bool
	Italic     bool
}

// Theme defines colors and styles for the editor view.
type Theme struct {
	Name string

	Background    colorful.Color
	Foreground    colorful.Color
	Selection     colorful.Color
	CursorLine    colorful.Color
	LineNumber    colorful.Color
	StatusBar     colorful.Color
	StatusBarText colorful.Color

	TokenStyles map[TokenType]Style
}

// StyleForToken returns the style for a token type, falling back to the
// default foreground.
func (t *Theme) StyleForToken(tokenType TokenType) Style {
	if style, ok := t.TokenStyles[tokenType]; ok {
		return style
	}
	return Style{Foreground: t.Foreground}
}

// Dim blends a color halfway toward the background, used for gutter
// text and inactive chrome.
func (t *Theme) Dim(c colorful.Color) colorful.Color {
	return c.BlendRgb(t.Background, 0.5)
}

// hex parses a #rrggbb color; themes are built from literals, so a
// parse failure is a programming error.
func hex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("highlight: bad theme color " + s)
	}
	return c
}

// DefaultTheme returns the standard dark theme.
func DefaultTheme() *Theme {
	return &Theme{
		Name:          "default",
		Background:    hex("#1e1e1e"),
		Foreground:    hex("#d4d4d4"),
		Selection:     hex("#264f78"),
		CursorLine:    hex("#2a2a2a"),
		LineNumber:    hex("#858585"),
		StatusBar:     hex("#007acc"),
		StatusBarText: hex("#ffffff"),
		TokenStyles: map[TokenType]Style{
			TokenComment:   {Foreground: hex("#6a9955"), Italic: true},
			TokenString:    {Foreground: hex("#ce9178")},
			TokenNumber:    {Foreground: hex("#b5cea8")},
			TokenKeyword:   {Foreground: hex("#569cd6"), Bold: true},
			TokenOperator:  {Foreground: hex("#d4d4d4")},
			TokenFunction:  {Foreground: hex("#dcdcaa")},
			TokenClass:     {Foreground: hex("#4ec9b0")},
			TokenDecorator: {Foreground: hex("#dcdcaa"), Italic: true},
			TokenConstant:  {Foreground: hex("#569cd6")},
			TokenBuiltin:   {Foreground: hex("#4ec9b0")},
		},
	}
}

// MonokaiTheme returns the Monokai-inspired theme.
func MonokaiTheme() *Theme {
	return &Theme{
		Name:          "monokai",
		Background:    hex("#272822"),
		Foreground:    hex("#f8f8f2"),
		Selection:     hex("#49483e"),
		CursorLine:    hex("#3e3d32"),
		LineNumber:    hex("#90908a"),
		StatusBar:     hex("#414339"),
		StatusBarText: hex("#f8f8f2"),
		TokenStyles: map[TokenType]Style{
			TokenComment:   {Foreground: hex("#75715e"), Italic: true},
			TokenString:    {Foreground: hex("#e6db74")},
			TokenNumber:    {Foreground: hex("#ae81ff")},
			TokenKeyword:   {Foreground: hex("#f92672"), Bold: true},
			TokenOperator:  {Foreground: hex("#f92672")},
			TokenFunction:  {Foreground: hex("#a6e22e")},
			TokenClass:     {Foreground: hex("#a6e22e")},
			TokenDecorator: {Foreground: hex("#a6e22e"), Italic: true},
			TokenConstant:  {Foreground: hex("#ae81ff")},
			TokenBuiltin:   {Foreground: hex("#66d9ef"), Italic: true},
		},
	}
}

// ThemeByName resolves a theme name, falling back to the default.
func ThemeByName(name string) *Theme {
	switch name {
	case "monokai":
		return MonokaiTheme()
	default:
		return DefaultTheme()
	}
}

// BlockOpener returns the auto-indent predicate for Python: a line
// opens a block when its trimmed text ends with a colon. The syntax
// layer owns this policy; the engine consumes it opaquely.
func BlockOpener() position.BlockOpenerFunc {
	return position.TrailingDelimiter(":")
}
