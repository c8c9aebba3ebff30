package memory

import "github.com/charmbracelet/log"

// DefaultDepthLimit is the call depth a StackArea accepts before overflowing.
const DefaultDepthLimit = 200

type options struct {
	depthLimit int
	budget     *Budget
	logger     *log.Logger
}

type Option func(*options)

// WithDepthLimit sets the frame limit of a StackArea.
func WithDepthLimit(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.depthLimit = n
		}
	}
}

// WithBudget charges heap and static allocations against b.
func WithBudget(b *Budget) Option {
	return func(o *options) { o.budget = b }
}

// WithLogger replaces the area's logger
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(prefix string, opts []Option) options {
	o := options{depthLimit: DefaultDepthLimit}
	for _, fn := range opts {
		fn(&o)
	}

	if o.logger == nil {
		o.logger = log.WithPrefix(prefix)
	}

	return o
}
