package validation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-modelval/internal/engine"
	"github.com/goliatone/go-modelval/pkg/testsupport"
	"github.com/goliatone/go-modelval/pkg/validator"
)

func newTestValidator(t *testing.T) validator.Validator {
	t.Helper()
	return engine.New(validator.NewOptions(
		validator.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		validator.WithIdentifierGenerator(testsupport.SequentialIDs()),
	))
}

func serve(t *testing.T, c *Component, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestValidateEndpoint(t *testing.T) {
	v := newTestValidator(t)
	testsupport.MustLoad(t, v, testsupport.PersonModel, "")
	c := New(v)

	rec := serve(t, c, http.MethodPost, "/api/validation/validate",
		`{"data":{"name":"Ada"},"type":"org.example.Person"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result validator.ValidationResult
	decodeBody(t, rec, &result)
	if !result.IsValid {
		t.Fatalf("expected valid result, got %+v", result.Errors)
	}
}

func TestValidateEndpointInvalidData(t *testing.T) {
	v := newTestValidator(t)
	testsupport.MustLoad(t, v, testsupport.PersonModel, "")
	c := New(v)

	rec := serve(t, c, http.MethodPost, "/api/validation/validate",
		`{"data":{},"type":"org.example.Person"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("validation failures still answer 200, got %d", rec.Code)
	}

	var result validator.ValidationResult
	decodeBody(t, rec, &result)
	if result.IsValid || len(result.Errors) != 1 || result.Errors[0].Field != "name" {
		t.Fatalf("expected one error on name, got %+v", result)
	}
}

func TestValidateEndpointNoModel(t *testing.T) {
	c := New(newTestValidator(t))

	rec := serve(t, c, http.MethodPost, "/api/validation/validate", `{"data":{"name":"Ada"}}`)
	var result validator.ValidationResult
	decodeBody(t, rec, &result)
	if result.IsValid || len(result.Errors) != 1 || result.Errors[0].Field != "model" {
		t.Fatalf("expected the no-model result, got %+v", result)
	}
}

func TestValidateEndpointRejectsBadBody(t *testing.T) {
	c := New(newTestValidator(t))
	rec := serve(t, c, http.MethodPost, "/api/validation/validate", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTypesEndpoint(t *testing.T) {
	v := newTestValidator(t)
	testsupport.MustLoad(t, v, testsupport.CatalogModel, "")
	c := New(v)

	rec := serve(t, c, http.MethodGet, "/api/validation/types", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp typesResponse
	decodeBody(t, rec, &resp)
	want := []string{"org.catalog.Product", "org.catalog.Vendor"}
	if len(resp.Data) != len(want) || resp.Data[0] != want[0] || resp.Data[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, resp.Data)
	}
}

func TestInstanceEndpoint(t *testing.T) {
	v := newTestValidator(t)
	testsupport.MustLoad(t, v, testsupport.PersonModel, "")
	c := New(v)

	rec := serve(t, c, http.MethodPost, "/api/validation/instances", `{"type":"org.example.Person"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp instanceResponse
	decodeBody(t, rec, &resp)
	if resp.Data["$class"] != "org.example.Person" {
		t.Fatalf("expected a tagged instance, got %v", resp.Data)
	}

	rec = serve(t, c, http.MethodPost, "/api/validation/instances", `{"type":"org.example.Robot"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown type, got %d", rec.Code)
	}
}

func TestModelEndpoint(t *testing.T) {
	v := newTestValidator(t)
	c := New(v)

	rec := serve(t, c, http.MethodGet, "/api/validation/model", "")
	var status modelStatusResponse
	decodeBody(t, rec, &status)
	if status.Loaded {
		t.Fatalf("expected unloaded status")
	}

	payload, err := json.Marshal(loadModelRequest{
		Definition: testsupport.PersonModel,
		RootType:   "org.example.Person",
	})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	rec = serve(t, c, http.MethodPost, "/api/validation/model", string(payload))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &status)
	if !status.Loaded || status.RootType != "org.example.Person" || status.Types != 1 {
		t.Fatalf("unexpected status after load: %+v", status)
	}
}

func TestModelEndpointRejectsBadDefinition(t *testing.T) {
	c := New(newTestValidator(t))

	rec := serve(t, c, http.MethodPost, "/api/validation/model", `{"definition":"not a model"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	var resp errorResponse
	decodeBody(t, rec, &resp)
	if resp.Error == "" {
		t.Fatalf("expected an error message")
	}
}

type modelStoreFunc func(ctx context.Context, name, definition, rootType string) error

func (f modelStoreFunc) Save(ctx context.Context, name, definition, rootType string) error {
	return f(ctx, name, definition, rootType)
}

func TestModelEndpointPersistsNamedModels(t *testing.T) {
	var savedName, savedRoot string
	store := modelStoreFunc(func(_ context.Context, name, _, rootType string) error {
		savedName, savedRoot = name, rootType
		return nil
	})

	v := newTestValidator(t)
	c := New(v, WithStore(store))

	payload, err := json.Marshal(loadModelRequest{
		Definition: testsupport.PersonModel,
		RootType:   "org.example.Person",
		Name:       "people",
	})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	rec := serve(t, c, http.MethodPost, "/api/validation/model", string(payload))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if savedName != "people" || savedRoot != "org.example.Person" {
		t.Fatalf("expected persisted model, got name=%q root=%q", savedName, savedRoot)
	}
}

func TestGuardRejectsRequests(t *testing.T) {
	c := New(newTestValidator(t), WithGuard(func(*http.Request) error {
		return StatusError{Code: http.StatusUnauthorized, Err: errors.New("no session")}
	}))

	rec := serve(t, c, http.MethodGet, "/api/validation/types", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	c := New(newTestValidator(t))

	rec := serve(t, c, http.MethodGet, "/api/validation/validate", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	rec = serve(t, c, http.MethodDelete, "/api/validation/model", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
