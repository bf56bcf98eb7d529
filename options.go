package polyroots

import (
	"io"
	"log/slog"
)

// DefaultMaxDegree is the degree at which input is rejected.
const DefaultMaxDegree = 10

// Option configures Analyze, CheckDegree, NewTutorial and Solve.
type Option func(*options)

type options struct {
	maxDegree int
	logger    *slog.Logger
}

// WithMaxDegree makes CheckDegree, and so NewTutorial and Solve, reject
// polynomials of degree n or more. Values below 1 are ignored.
func WithMaxDegree(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDegree = n
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		maxDegree: DefaultMaxDegree,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
