//go:build js && wasm

package browser

import (
	"syscall/js"

	"github.com/dmitrymomot/easycookie/pkg/cookie"
)

// Document is a cookie.Transport over the page's document.cookie.
type Document struct {
	doc      js.Value
	location js.Value
}

// NewDocument binds the global document. It fails outside a page context,
// for example in a web worker.
func NewDocument() (*Document, error) {
	doc := js.Global().Get("document")
	if doc.IsUndefined() || doc.IsNull() {
		return nil, ErrNoDocument
	}
	return &Document{
		doc:      doc,
		location: js.Global().Get("location"),
	}, nil
}

func (d *Document) Cookies() string {
	return d.doc.Get("cookie").String()
}

func (d *Document) SetCookie(c string) {
	d.doc.Set("cookie", c)
}

// Path returns location.pathname, or "/" when it is unavailable.
func (d *Document) Path() string {
	if d.location.IsUndefined() || d.location.IsNull() {
		return "/"
	}
	if p := d.location.Get("pathname"); p.Type() == js.TypeString && p.String() != "" {
		return p.String()
	}
	return "/"
}

var (
	_ cookie.Transport    = (*Document)(nil)
	_ cookie.PathProvider = (*Document)(nil)
)
