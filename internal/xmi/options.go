package xmi

import "github.com/rs/zerolog"

const (
	// DefaultMaxBytes bounds the document size read by the parser.
	DefaultMaxBytes int64 = 64 << 20
	// DefaultMaxDepth bounds element nesting.
	DefaultMaxDepth = 256
)

// Options controls parsing. Build it through Option values.
type Options struct {
	Logger   zerolog.Logger
	MaxBytes int64
	MaxDepth int
}

// Option mutates Options.
type Option func(*Options)

// WithLogger sets the logger used for debug output about skipped elements.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithMaxBytes limits the number of bytes read from the source. Values <= 0
// keep the default.
func WithMaxBytes(n int64) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxBytes = n
		}
	}
}

// WithMaxDepth limits element nesting. Values <= 0 keep the default.
func WithMaxDepth(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxDepth = n
		}
	}
}

func buildOptions(opts []Option) Options {
	o := Options{
		Logger:   zerolog.Nop(),
		MaxBytes: DefaultMaxBytes,
		MaxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
