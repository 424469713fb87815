package cookie

import (
	"net/http"
	"strings"
	"sync"
)

// HTTPDocument is a Transport bound to one HTTP exchange. It starts from the
// request's Cookie header and sends every accepted write to the client as a
// Set-Cookie header, while reads reflect those writes the way a browser's
// document.cookie would.
type HTTPDocument struct {
	mu   sync.Mutex
	w    http.ResponseWriter
	jar  *Jar
	path string
}

// NewHTTPDocument creates a document for the request r answered through w.
func NewHTTPDocument(w http.ResponseWriter, r *http.Request) *HTTPDocument {
	header := strings.Join(r.Header.Values("Cookie"), cookieSeparator)
	path := r.URL.Path
	if path == "" {
		path = "/"
	}
	return &HTTPDocument{
		w:    w,
		jar:  NewJar(header),
		path: path,
	}
}

func (d *HTTPDocument) Cookies() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.jar.Header()
}

func (d *HTTPDocument) SetCookie(cookie string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.jar.Apply(cookie) {
		d.w.Header().Add("Set-Cookie", cookie)
	}
}

func (d *HTTPDocument) Path() string {
	return d.path
}
