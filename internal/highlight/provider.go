package highlight

import "sync"

// Provider caches per-line highlighting results and the lexer state at
// each line boundary, so that editing one line only recomputes the
// lines that can actually change.
type Provider struct {
	mu sync.RWMutex

	highlighter Highlighter
	theme       *Theme

	lineCache    map[uint32]*cachedLine
	stateCache   map[uint32]LexerState
	maxCacheSize int

	// lineGetter retrieves line content by line number.
	lineGetter func(line uint32) string
}

// cachedLine holds cached highlighting for a single line. The original
// text is kept for cache validation.
type cachedLine struct {
	text   string
	tokens []Token
	state  LexerState
}

// NewProvider creates a highlight provider with the given theme. A nil
// theme falls back to the default; maxCache <= 0 uses a sane default.
func NewProvider(theme *Theme, maxCache int) *Provider {
	if theme == nil {
		theme = DefaultTheme()
	}
	if maxCache <= 0 {
		maxCache = 1000
	}
	return &Provider{
		highlighter:  Python(),
		theme:        theme,
		lineCache:    make(map[uint32]*cachedLine),
		stateCache:   make(map[uint32]LexerState),
		maxCacheSize: maxCache,
	}
}

// SetHighlighter sets the active highlighter and clears the cache.
func (p *Provider) SetHighlighter(h Highlighter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.highlighter = h
	p.clearCache()
}

// SetTheme sets the active theme.
func (p *Provider) SetTheme(theme *Theme) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.theme = theme
}

// Theme returns the current theme.
func (p *Provider) Theme() *Theme {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.theme
}

// SetLineGetter sets the function used to retrieve line content.
func (p *Provider) SetLineGetter(getter func(line uint32) string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lineGetter = getter
}

// TokensForLine returns the highlight tokens for a line, computing and
// caching them as needed.
func (p *Provider) TokensForLine(line uint32) []Token {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.highlighter == nil || p.lineGetter == nil {
		return nil
	}

	text := p.lineGetter(line)
	return p.tokensLocked(line, text)
}

// InvalidateFrom drops cached highlighting for startLine and every line
// after it. An edit can change the lexer state carried into all
// following lines, so invalidation is always suffix-shaped.
func (p *Provider) InvalidateFrom(startLine uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()

	toDelete := make([]uint32, 0)
	for line := range p.lineCache {
		if line >= startLine {
			toDelete = append(toDelete, line)
		}
	}
	for _, line := range toDelete {
		delete(p.lineCache, line)
		delete(p.stateCache, line)
	}
}

// InvalidateAll clears all cached highlighting.
func (p *Provider) InvalidateAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clearCache()
}

func (p *Provider) tokensLocked(line uint32, text string) []Token {
	if cached, ok := p.lineCache[line]; ok && cached.text == text {
		return cached.tokens
	}

	prevState := LexerStateNormal
	if line > 0 {
		if state, ok := p.stateCache[line-1]; ok {
			prevState = state
		} else {
			prevState = p.computeStateUpTo(line - 1)
		}
	}

	tokens, endState := p.highlighter.HighlightLine(text, prevState)
	p.cacheResult(line, text, tokens, endState)
	return tokens
}

// computeStateUpTo computes and caches lexer state up to and including
// targetLine, resuming from the nearest cached state below it.
func (p *Provider) computeStateUpTo(targetLine uint32) LexerState {
	var startLine uint32
	state := LexerStateNormal

	for line := targetLine; line > 0; line-- {
		if s, ok := p.stateCache[line-1]; ok {
			startLine = line
			state = s
			break
		}
	}

	for line := startLine; line <= targetLine; line++ {
		text := p.lineGetter(line)
		_, state = p.highlighter.HighlightLine(text, state)
		p.stateCache[line] = state
	}

	return state
}

func (p *Provider) cacheResult(line uint32, text string, tokens []Token, state LexerState) {
	if len(p.lineCache) >= p.maxCacheSize {
		p.evictCache()
	}
	p.lineCache[line] = &cachedLine{text: text, tokens: tokens, state: state}
	p.stateCache[line] = state
}

// evictCache removes roughly a quarter of the cached lines.
func (p *Provider) evictCache() {
	toRemove := len(p.lineCache) / 4
	if toRemove < 10 {
		toRemove = 10
	}
	removed := 0
	for line := range p.lineCache {
		delete(p.lineCache, line)
		delete(p.stateCache, line)
		removed++
		if removed >= toRemove {
			break
		}
	}
}

func (p *Provider) clearCache() {
	p.lineCache = make(map[uint32]*cachedLine)
	p.stateCache = make(map[uint32]LexerState)
}
