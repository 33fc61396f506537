package validation

import (
	"errors"
	"io"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-modelval/pkg/validator"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type validateRequest struct {
	Data any    `json:"data"`
	Type string `json:"type,omitempty"`
}

type typesResponse struct {
	Data []string `json:"data"`
}

type instanceRequest struct {
	Type string `json:"type"`
}

type instanceResponse struct {
	Data map[string]any `json:"data"`
}

type loadModelRequest struct {
	Definition string `json:"definition"`
	RootType   string `json:"rootType,omitempty"`
	// Name, when set and a store is configured, persists the definition so it
	// can be reloaded at startup.
	Name string `json:"name,omitempty"`
}

type modelStatusResponse struct {
	Loaded   bool   `json:"loaded"`
	RootType string `json:"rootType,omitempty"`
	Types    int    `json:"types"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handler struct {
	validator validator.Validator
	opts      Options
}

func (h *handler) guard(w http.ResponseWriter, r *http.Request) bool {
	if h.opts.Guard == nil {
		return true
	}
	if err := h.opts.Guard(r); err != nil {
		writeGuardError(w, err)
		return false
	}
	return true
}

func (h *handler) decode(w http.ResponseWriter, r *http.Request, target any) bool {
	body := http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes)
	defer func() {
		_, _ = io.Copy(io.Discard, body)
	}()
	if err := json.NewDecoder(body).Decode(target); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func (h *handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) || !h.guard(w, r) {
		return
	}
	var req validateRequest
	if !h.decode(w, r, &req) {
		return
	}
	result := h.validator.ValidateData(r.Context(), req.Data, req.Type)
	writeJSON(w, http.StatusOK, result)
}

func (h *handler) handleTypes(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) || !h.guard(w, r) {
		return
	}
	types := h.validator.AvailableTypes()
	if types == nil {
		types = []string{}
	}
	writeJSON(w, http.StatusOK, typesResponse{Data: types})
}

func (h *handler) handleInstance(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) || !h.guard(w, r) {
		return
	}
	var req instanceRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Type == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "type is required"})
		return
	}
	instance := h.validator.CreateInstance(req.Type)
	if instance == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "could not create instance of " + req.Type})
		return
	}
	writeJSON(w, http.StatusOK, instanceResponse{Data: instance})
}

func (h *handler) handleModel(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if !h.guard(w, r) {
			return
		}
		writeJSON(w, http.StatusOK, modelStatusResponse{
			Loaded:   h.validator.IsLoaded(),
			RootType: h.validator.RootType(),
			Types:    len(h.validator.AvailableTypes()),
		})
	case http.MethodPost:
		if !h.guard(w, r) {
			return
		}
		h.handleLoadModel(w, r)
	default:
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodPost)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *handler) handleLoadModel(w http.ResponseWriter, r *http.Request) {
	var req loadModelRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Definition == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "definition is required"})
		return
	}

	if err := h.validator.LoadModel(r.Context(), req.Definition, req.RootType); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}

	if h.opts.Store != nil && req.Name != "" {
		if err := h.opts.Store.Save(r.Context(), req.Name, req.Definition, req.RootType); err != nil {
			h.opts.Logger.Error("persist model failed", "name", req.Name, "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "model loaded but could not be persisted"})
			return
		}
	}

	writeJSON(w, http.StatusOK, modelStatusResponse{
		Loaded:   h.validator.IsLoaded(),
		RootType: h.validator.RootType(),
		Types:    len(h.validator.AvailableTypes()),
	})
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	return false
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}
