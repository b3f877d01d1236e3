package gapbuf

// Default sizing values.
const (
	DefaultCapacity = 128
	DefaultMinGap   = 32
)

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithCapacity sets the initial storage capacity in runes.
func WithCapacity(n int) Option {
	return func(b *Buffer) {
		if n > 0 {
			b.data = make([]rune, n)
		}
	}
}

// WithMinGap sets the minimum gap reserve kept after growth and when
// building a buffer from initial content.
func WithMinGap(n int) Option {
	return func(b *Buffer) {
		if n > 0 {
			b.minGap = n
		}
	}
}
