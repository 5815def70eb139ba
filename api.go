package ruleschema

import (
	"go.uber.org/zap"

	js "github.com/reoring/ruleschema/jsonschema"
)

// Parser converts a rule source into a JSON Schema document.
type Parser interface {
	// Parse returns the schema for src. A nil source, or one without rules,
	// yields the minimal document. It fails only on a malformed source, and
	// never returns a partial document.
	Parse(src RuleSource) (*js.Document, error)
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for debug output. nil restores the no-op
// logger.
func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) {
		if l == nil {
			l = zap.NewNop()
		}
		b.log = l
	}
}

// New returns a Builder configured by opts. A Builder is safe for concurrent
// use; issue messages read the process-wide translator set through the i18n
// package.
func New(opts ...Option) *Builder {
	b := &Builder{log: zap.NewNop(), handlers: defaultHandlers()}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Parse is a convenience wrapper around New(opts...).Parse(src).
func Parse(src RuleSource, opts ...Option) (*js.Document, error) {
	return New(opts...).Parse(src)
}

var _ Parser = (*Builder)(nil)
