package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/easycookie/pkg/cookie"
	"github.com/dmitrymomot/easycookie/pkg/logger"
	"github.com/dmitrymomot/easycookie/pkg/visitor"
)

const defaultStoragePrefix = "easycookie:"

type handler struct {
	storage       cookie.Storage
	cookieCfg     cookie.Config
	visitorCookie string
	maxBodySize   int64
	log           *slog.Logger
}

type setRequest struct {
	Value   json.RawMessage   `json:"value"`
	Options cookie.Attributes `json:"options"`
}

type setResponse struct {
	Name   string `json:"name"`
	Cookie string `json:"cookie"`
	Stored bool   `json:"stored"`
}

type valueResponse struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

type optionsResponse struct {
	Name    string            `json:"name"`
	Options cookie.Attributes `json:"options"`
}

type listResponse struct {
	Cookies map[string]any `json:"cookies"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// manager builds a cookie manager for one request. Attribute documents are
// namespaced by the visitor ID so visitors never see each other's options.
func (h *handler) manager(w http.ResponseWriter, r *http.Request) (*cookie.Manager, error) {
	ctx := r.Context()

	opts := []cookie.Option{
		cookie.WithStoragePrefix(h.storagePrefix(ctx)),
		cookie.WithLogger(h.log),
	}
	if h.cookieCfg.Path == "" {
		// The request path is an API route, not a page; scope cookies to the site.
		opts = append(opts, cookie.WithDefaults(cookie.Path("/")))
	}

	m, err := cookie.NewFromConfig(cookie.NewHTTPDocument(w, r), h.storage, h.cookieCfg, opts...)
	if err != nil {
		return nil, err
	}

	m.OnChange(func(e cookie.SetEvent) {
		h.log.InfoContext(ctx, "cookie changed",
			logger.Event("cookie.change"),
			logger.CookieName(e.Name),
			logger.Cookie(e.Cookie),
			slog.Bool("stored", m.Has(e.Name)),
		)
	})
	m.OnRemove(func(e cookie.RemoveEvent) {
		h.log.InfoContext(ctx, "cookie removed", logger.Event("cookie.remove"), logger.CookieName(e.Name))
	})

	return m, nil
}

// storagePrefix is the namespace holding the current visitor's attribute sets.
func (h *handler) storagePrefix(ctx context.Context) string {
	prefix := h.cookieCfg.StoragePrefix
	if prefix == "" {
		prefix = defaultStoragePrefix
	}
	return prefix + visitor.FromContext(ctx) + ":"
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	m, err := h.manager(w, r)
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, err)
		return
	}

	resp := listResponse{Cookies: make(map[string]any)}
	for name := range m.Cookies() {
		if name == h.visitorCookie {
			continue
		}
		if v, err := m.Get(name); err == nil {
			resp.Cookies[name] = v
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	name, ok := h.cookieName(w, r)
	if !ok {
		return
	}
	m, err := h.manager(w, r)
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, err)
		return
	}

	v, err := m.Get(name)
	if errors.Is(err, cookie.ErrCookieNotFound) {
		h.fail(w, r, http.StatusNotFound, err)
		return
	}
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, valueResponse{Name: name, Value: v})
}

func (h *handler) options(w http.ResponseWriter, r *http.Request) {
	name, ok := h.cookieName(w, r)
	if !ok {
		return
	}
	m, err := h.manager(w, r)
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, err)
		return
	}

	opts, err := m.GetOptions(name)
	switch {
	case errors.Is(err, cookie.ErrOptionsNotFound):
		h.fail(w, r, http.StatusNotFound, err)
	case err != nil:
		h.fail(w, r, http.StatusInternalServerError, err)
	default:
		writeJSON(w, http.StatusOK, optionsResponse{Name: name, Options: opts})
	}
}

func (h *handler) set(w http.ResponseWriter, r *http.Request) {
	name, ok := h.cookieName(w, r)
	if !ok {
		return
	}

	var req setRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBodySize))
	if err := dec.Decode(&req); err != nil {
		h.fail(w, r, http.StatusBadRequest, errors.Join(errInvalidBody, err))
		return
	}
	if len(req.Value) == 0 {
		h.fail(w, r, http.StatusBadRequest, errors.Join(errInvalidBody, errors.New("value is required")))
		return
	}

	value, err := decodeValue(req.Value)
	if err != nil {
		h.fail(w, r, http.StatusBadRequest, errors.Join(errInvalidBody, err))
		return
	}

	m, err := h.manager(w, r)
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, err)
		return
	}

	wire, err := m.Set(name, value, req.Options...)
	switch {
	case errors.Is(err, cookie.ErrSerialize):
		h.fail(w, r, http.StatusBadRequest, err)
		return
	case err != nil:
		h.fail(w, r, http.StatusInternalServerError, err)
		return
	}

	resp := setResponse{Name: name, Cookie: wire, Stored: m.Has(name)}
	if !resp.Stored {
		h.log.WarnContext(r.Context(), errRejected.Error(), logger.CookieName(name))
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) remove(w http.ResponseWriter, r *http.Request) {
	name, ok := h.cookieName(w, r)
	if !ok {
		return
	}
	m, err := h.manager(w, r)
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, err)
		return
	}

	if err := m.Remove(name); err != nil {
		h.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) removeAll(w http.ResponseWriter, r *http.Request) {
	m, err := h.manager(w, r)
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, err)
		return
	}

	names := make([]string, 0)
	for name := range m.Cookies() {
		if name != h.visitorCookie {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	var errs []error
	for _, name := range names {
		errs = append(errs, m.Remove(name))
	}
	// Attribute sets outlive cookies the browser dropped on its own.
	if pd, ok := h.storage.(cookie.PrefixDeleter); ok {
		errs = append(errs, pd.DeletePrefix(r.Context(), h.storagePrefix(r.Context())))
	}
	if err := errors.Join(errs...); err != nil {
		h.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) cookieName(w http.ResponseWriter, r *http.Request) (string, bool) {
	name := chi.URLParam(r, "name")
	if name == h.visitorCookie {
		h.fail(w, r, http.StatusForbidden, errReservedName)
		return "", false
	}
	return name, true
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		h.log.ErrorContext(r.Context(), "request failed", logger.Error(err))
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// decodeValue keeps numbers as json.Number so they are written to the
// cookie exactly as the client sent them.
func decodeValue(raw json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
