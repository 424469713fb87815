//go:build js && wasm

package browser

import "github.com/dmitrymomot/easycookie/pkg/cookie"

// NewManager creates a cookie.Manager over document.cookie. Attribute
// documents go to localStorage when it is usable and to memory otherwise.
func NewManager(opts ...cookie.Option) (*cookie.Manager, error) {
	doc, err := NewDocument()
	if err != nil {
		return nil, err
	}

	var storage cookie.Storage = cookie.NewMemoryStorage()
	if ls, err := NewLocalStorage(); err == nil {
		storage = ls
	}

	return cookie.New(doc, storage, opts...), nil
}
