// Package config holds the functional-options configuration shared by
// the lexer, parser, and generator. The pattern mirrors the teacher
// repo's eval.EvalOption/WithBasePath/NewEvaluator construction.
package config

// Options controls strictness and resource bounds across the codec.
type Options struct {
	IndentSize      int
	Strict          bool
	MaxNestingDepth int
	MaxNumberLength int
	Delimiter       byte
}

func defaults() Options {
	return Options{
		IndentSize:      2,
		Strict:          true,
		MaxNestingDepth: 1000,
		MaxNumberLength: 1000,
		Delimiter:       ',',
	}
}

// Option mutates Options during construction.
type Option func(*Options)

// WithIndentSize sets the number of spaces per indentation level.
func WithIndentSize(n int) Option {
	return func(o *Options) { o.IndentSize = n }
}

// WithStrict toggles strict-mode validation.
func WithStrict(strict bool) Option {
	return func(o *Options) { o.Strict = strict }
}

// WithLenient is sugar for WithStrict(false).
func WithLenient() Option {
	return func(o *Options) { o.Strict = false }
}

// WithMaxNestingDepth bounds context-stack depth.
func WithMaxNestingDepth(n int) Option {
	return func(o *Options) { o.MaxNestingDepth = n }
}

// WithMaxNumberLength bounds the length of a single numeric literal.
func WithMaxNumberLength(n int) Option {
	return func(o *Options) { o.MaxNumberLength = n }
}

// WithDelimiter sets the generator's default array element delimiter
// (one of ',', '|', '\t'; spec §6.1). Parsing always detects the
// delimiter from the input and ignores this option.
func WithDelimiter(d byte) Option {
	return func(o *Options) { o.Delimiter = d }
}

// New builds Options from defaults plus the given overrides.
func New(opts ...Option) Options {
	o := defaults()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
