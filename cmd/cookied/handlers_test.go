package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/easycookie/pkg/cookie"
)

type client struct {
	t       *testing.T
	srv     http.Handler
	cookies map[string]string
}

func newClient(t *testing.T, storage cookie.Storage, cookieCfg cookie.Config) *client {
	t.Helper()

	log := slog.New(slog.DiscardHandler)
	cfg := appConfig{VisitorCookie: "visitor", MaxBodySize: 1 << 14, Cookie: cookieCfg}
	h := &handler{
		storage:       storage,
		cookieCfg:     cookieCfg,
		visitorCookie: cfg.VisitorCookie,
		maxBodySize:   cfg.MaxBodySize,
		log:           log,
	}
	return &client{t: t, srv: newRouter(cfg, h, nil, log), cookies: map[string]string{}}
}

// do sends a request with the client's cookies and applies Set-Cookie
// headers from the response the way a browser would. Values are kept raw
// because JSON cookie values are not valid for net/http's cookie parser.
func (c *client) do(method, path, body string) *httptest.ResponseRecorder {
	c.t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	pairs := make([]string, 0, len(c.cookies))
	for name, value := range c.cookies {
		pairs = append(pairs, name+"="+value)
	}
	if len(pairs) > 0 {
		req.Header.Set("Cookie", strings.Join(pairs, "; "))
	}
	rec := httptest.NewRecorder()
	c.srv.ServeHTTP(rec, req)

	for _, sc := range rec.Header().Values("Set-Cookie") {
		parts := strings.Split(sc, ";")
		name, value, _ := strings.Cut(strings.TrimSpace(parts[0]), "=")
		if expired(parts[1:]) {
			delete(c.cookies, name)
			continue
		}
		c.cookies[name] = value
	}
	return rec
}

func expired(attrs []string) bool {
	for _, attr := range attrs {
		key, val, _ := strings.Cut(strings.TrimSpace(attr), "=")
		if strings.EqualFold(key, "max-age") {
			n, err := strconv.Atoi(val)
			return err == nil && n <= 0
		}
	}
	return false
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestCookiesAPI(t *testing.T) {
	t.Parallel()

	storage := cookie.NewMemoryStorage()
	c := newClient(t, storage, cookie.Config{SameSite: "lax"})

	rec := c.do(http.MethodGet, "/cookies", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[listResponse](t, rec).Cookies)
	require.Contains(t, c.cookies, "visitor")

	rec = c.do(http.MethodPut, "/cookies/theme", `{"value":"dark","options":{"maxAge":3600}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	set := decode[setResponse](t, rec)
	assert.True(t, set.Stored)
	assert.Equal(t, "theme=dark; path=/; same-site=lax; max-age=3600", set.Cookie)
	assert.Equal(t, "dark", c.cookies["theme"])

	rec = c.do(http.MethodPut, "/cookies/prefs", `{"value":{"font":12}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = c.do(http.MethodGet, "/cookies/theme", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, valueResponse{Name: "theme", Value: "dark"}, decode[valueResponse](t, rec))

	rec = c.do(http.MethodGet, "/cookies", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{
		"theme": "dark",
		"prefs": map[string]any{"font": float64(12)},
	}, decode[listResponse](t, rec).Cookies)

	rec = c.do(http.MethodGet, "/cookies/theme/options", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"theme","options":{"path":"/","sameSite":"lax","maxAge":3600}}`, rec.Body.String())

	rec = c.do(http.MethodDelete, "/cookies/theme", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotContains(t, c.cookies, "theme")

	rec = c.do(http.MethodGet, "/cookies/theme", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = c.do(http.MethodGet, "/cookies/theme/options", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodDelete, "/cookies", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"visitor"}, keys(c.cookies))
}

func TestCookiesAPI_VisitorsAreIsolated(t *testing.T) {
	t.Parallel()

	storage := cookie.NewMemoryStorage()
	alice := newClient(t, storage, cookie.Config{})
	bob := newClient(t, storage, cookie.Config{})

	require.Equal(t, http.StatusOK, alice.do(http.MethodPut, "/cookies/lang", `{"value":"en","options":{"secure":true}}`).Code)
	require.Equal(t, http.StatusOK, bob.do(http.MethodPut, "/cookies/lang", `{"value":"de"}`).Code)

	rec := alice.do(http.MethodGet, "/cookies/lang/options", "")
	assert.JSONEq(t, `{"name":"lang","options":{"path":"/","secure":true}}`, rec.Body.String())

	rec = bob.do(http.MethodGet, "/cookies/lang/options", "")
	assert.JSONEq(t, `{"name":"lang","options":{"path":"/"}}`, rec.Body.String())
	assert.NotEqual(t, alice.cookies["visitor"], bob.cookies["visitor"])
}

func TestCookiesAPI_RemoveAllDropsStoredOptions(t *testing.T) {
	t.Parallel()

	storage := cookie.NewMemoryStorage()
	alice := newClient(t, storage, cookie.Config{})
	bob := newClient(t, storage, cookie.Config{})

	require.Equal(t, http.StatusOK, alice.do(http.MethodPut, "/cookies/lang", `{"value":"en"}`).Code)
	require.Equal(t, http.StatusOK, bob.do(http.MethodPut, "/cookies/lang", `{"value":"de"}`).Code)

	// Options whose cookie the browser already dropped.
	orphan := "easycookie:" + alice.cookies["visitor"] + ":expired"
	require.NoError(t, storage.Set(orphan, []byte(`{"path":"/"}`), 0))
	require.Equal(t, 3, storage.Len())

	require.Equal(t, http.StatusNoContent, alice.do(http.MethodDelete, "/cookies", "").Code)

	v, err := storage.Get(orphan)
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.Equal(t, 1, storage.Len())

	rec := bob.do(http.MethodGet, "/cookies/lang/options", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCookiesAPI_Errors(t *testing.T) {
	t.Parallel()

	c := newClient(t, cookie.NewMemoryStorage(), cookie.Config{})

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		code   int
	}{
		{"malformed body", http.MethodPut, "/cookies/a", `{`, http.StatusBadRequest},
		{"missing value", http.MethodPut, "/cookies/a", `{"options":{}}`, http.StatusBadRequest},
		{"options not an object", http.MethodPut, "/cookies/a", `{"value":1,"options":[1]}`, http.StatusBadRequest},
		{"reserved name", http.MethodPut, "/cookies/visitor", `{"value":"x"}`, http.StatusForbidden},
		{"reserved name read", http.MethodGet, "/cookies/visitor", "", http.StatusForbidden},
		{"oversized cookie", http.MethodPut, "/cookies/big", `{"value":"` + strings.Repeat("x", 5000) + `"}`, http.StatusUnprocessableEntity},
		{"missing cookie", http.MethodGet, "/cookies/nope", "", http.StatusNotFound},
		{"remove missing is a noop", http.MethodDelete, "/cookies/nope", "", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := c.do(tt.method, tt.path, tt.body)
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
		})
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	c := newClient(t, cookie.NewMemoryStorage(), cookie.Config{})

	rec := c.do(http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, c.cookies, "visitor", "health routes do not issue visitor cookies")
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
