package validation

import (
	"context"
	"log/slog"
	"net/http"
)

// GuardFunc lets the surrounding system gate requests (session checks, API
// keys). Returning an error rejects the request before any handler work.
type GuardFunc func(r *http.Request) error

// ModelStore persists named model definitions so the active model survives
// restarts. Satisfied by *registry.Store.
type ModelStore interface {
	Save(ctx context.Context, name, definition, rootType string) error
}

type Options struct {
	RoutePath    string
	Guard        GuardFunc
	MaxBodyBytes int64
	Store        ModelStore
	Logger       *slog.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:    "/api/validation",
		MaxBodyBytes: 1 << 20,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/validation"
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithMaxBodyBytes(limit int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = limit
	}
}

func WithStore(store ModelStore) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Store = store
	}
}

func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}
