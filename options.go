package elmen

import (
	"context"
	"log/slog"
)

// options holds the per-builder configuration.
type options struct {
	verbosity Verbosity
	logger    *slog.Logger
	observer  Observer
	ctx       context.Context
}

// Option configures a Builder.
type Option func(*options)

// WithVerbosity sets the validation level (default: Default).
func WithVerbosity(v Verbosity) Option {
	return func(o *options) {
		o.verbosity = v
	}
}

// WithLogger sets the logger used for High verbosity diagnostics.
// If nil, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithObserver attaches an Observer, e.g. from pkg/observe.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithContext sets the context handed to the observer when the builder
// starts. It is not used for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		o.ctx = ctx
	}
}

func buildOptions(opts []Option) options {
	o := options{verbosity: Default}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	o.logger = o.logger.With("component", "elmen")
	if o.observer == nil {
		o.observer = nopObserver{}
	}
	if o.ctx == nil {
		o.ctx = context.Background()
	}
	return o
}
