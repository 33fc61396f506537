package validation

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-modelval/pkg/validator"
)

// Mux is the minimal interface required to register net/http handlers.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// routeSuffixes enumerates the endpoints the component exposes relative to
// its mount path.
var routeSuffixes = []string{"/validate", "/types", "/instances", "/model"}

// MountPaths returns the full mount paths for the component routes under
// basePath.
func MountPaths(basePath string, fns ...OptionFn) []string {
	opts := NewOptions(fns...)
	base := mountPath(basePath, opts.RoutePath)
	paths := make([]string, 0, len(routeSuffixes))
	for _, suffix := range routeSuffixes {
		paths = append(paths, base+suffix)
	}
	return paths
}

// RegisterRoutes registers the validation endpoints under basePath on mux.
func RegisterRoutes(mux Mux, basePath string, v validator.Validator, fns ...OptionFn) ([]string, error) {
	opts := NewOptions(fns...)
	return RegisterRoutesWithOptions(mux, basePath, v, opts)
}

// RegisterRoutesWithOptions registers the endpoints using a pre-built Options
// value. Callers are expected to pass an Options value produced by NewOptions
// (or equivalent) so defaults apply.
func RegisterRoutesWithOptions(mux Mux, basePath string, v validator.Validator, opts Options) ([]string, error) {
	if mux == nil {
		return nil, fmt.Errorf("validation: missing mux")
	}
	if v == nil {
		return nil, fmt.Errorf("validation: missing validator")
	}
	opts = NewOptions(func(o *Options) { *o = opts })

	h := &handler{validator: v, opts: opts}
	base := mountPath(basePath, opts.RoutePath)

	mux.Handle(base+"/validate", http.HandlerFunc(h.handleValidate))
	mux.Handle(base+"/types", http.HandlerFunc(h.handleTypes))
	mux.Handle(base+"/instances", http.HandlerFunc(h.handleInstance))
	mux.Handle(base+"/model", http.HandlerFunc(h.handleModel))

	paths := make([]string, 0, len(routeSuffixes))
	for _, suffix := range routeSuffixes {
		paths = append(paths, base+suffix)
	}
	return paths, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}
	routePath = strings.TrimRight(routePath, "/")

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
