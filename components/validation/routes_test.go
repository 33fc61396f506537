package validation

import (
	"net/http"
	"testing"
)

func TestMountPath(t *testing.T) {
	cases := []struct {
		base  string
		route string
		want  string
	}{
		{"", "/api/validation", "/api/validation"},
		{"/", "/api/validation", "/api/validation"},
		{"/admin", "/api/validation", "/admin/api/validation"},
		{"admin", "validation", "/admin/validation"},
		{"/admin/", "/validation/", "/admin/validation"},
	}
	for _, tc := range cases {
		if got := mountPath(tc.base, tc.route); got != tc.want {
			t.Fatalf("mountPath(%q, %q) = %q, want %q", tc.base, tc.route, got, tc.want)
		}
	}
}

func TestMountPaths(t *testing.T) {
	paths := MountPaths("/admin")
	want := []string{
		"/admin/api/validation/validate",
		"/admin/api/validation/types",
		"/admin/api/validation/instances",
		"/admin/api/validation/model",
	}
	if len(paths) != len(want) {
		t.Fatalf("expected %d paths, got %v", len(want), paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("path %d = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestRegisterRoutesValidation(t *testing.T) {
	if _, err := RegisterRoutes(nil, "", newTestValidator(t)); err == nil {
		t.Fatalf("expected an error for nil mux")
	}
	if _, err := RegisterRoutes(http.NewServeMux(), "", nil); err == nil {
		t.Fatalf("expected an error for nil validator")
	}

	paths, err := RegisterRoutes(http.NewServeMux(), "", newTestValidator(t))
	if err != nil {
		t.Fatalf("register routes: %v", err)
	}
	if len(paths) != 4 {
		t.Fatalf("expected 4 routes, got %v", paths)
	}
}
