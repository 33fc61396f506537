package validator

import "log/slog"

// Options configures a Validator instance.
type Options struct {
	// Logger receives diagnostic lines on model loads and swallowed
	// introspection failures. Defaults to slog.Default().
	Logger *slog.Logger

	// Identifiers supplies IDs for created instances. Defaults to
	// UUIDGenerator.
	Identifiers IdentifierGenerator
}

// Option mutates Options during construction.
type Option func(*Options)

// WithLogger injects a structured logger for diagnostic output.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithIdentifierGenerator injects the identifier strategy used by
// CreateInstance.
func WithIdentifierGenerator(ids IdentifierGenerator) Option {
	return func(opts *Options) {
		opts.Identifiers = ids
	}
}

// NewOptions applies Option functions and returns the resulting configuration
// with defaults filled in. Implementations under internal/engine call this
// helper to remain consistent.
func NewOptions(options ...Option) Options {
	cfg := Options{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Identifiers == nil {
		cfg.Identifiers = UUIDGenerator{}
	}
	return cfg
}
