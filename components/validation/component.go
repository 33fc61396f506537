package validation

import (
	"net/http"

	"github.com/goliatone/go-modelval/pkg/validator"
)

// Component is a small, extraction-friendly wrapper around the validation
// endpoints, their configuration, and routing helpers.
type Component struct {
	validator validator.Validator
	opts      Options
}

// New constructs a component with default options plus any overrides.
func New(v validator.Validator, fns ...OptionFn) *Component {
	opts := NewOptions(fns...)
	return &Component{validator: v, opts: opts}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Handler returns a net/http handler with the component routes mounted at the
// configured route path.
func (c *Component) Handler() http.Handler {
	mux := http.NewServeMux()
	_, _ = c.RegisterRoutes(mux, "")
	return mux
}

// RegisterRoutes registers the component endpoints under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) ([]string, error) {
	if c == nil {
		return nil, nil
	}
	return RegisterRoutesWithOptions(mux, basePath, c.validator, c.opts)
}
