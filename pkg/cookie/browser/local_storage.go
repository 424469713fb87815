//go:build js && wasm

package browser

import (
	"errors"
	"fmt"
	"syscall/js"
	"time"

	"github.com/dmitrymomot/easycookie/pkg/cookie"
)

// LocalStorage is a cookie.Storage over window.localStorage. Values are
// stored as strings. localStorage has no expiry, so the expiration passed
// to Set is ignored; documents are dropped when the cookie is removed.
type LocalStorage struct {
	store js.Value
}

// NewLocalStorage binds window.localStorage. Access can throw when storage
// is disabled by the user agent; that is reported as ErrNoLocalStorage.
func NewLocalStorage() (s *LocalStorage, err error) {
	defer func() {
		if r := recover(); r != nil {
			s, err = nil, errors.Join(ErrNoLocalStorage, fmt.Errorf("%v", r))
		}
	}()

	store := js.Global().Get("localStorage")
	if store.IsUndefined() || store.IsNull() {
		return nil, ErrNoLocalStorage
	}
	return &LocalStorage{store: store}, nil
}

func (s *LocalStorage) Get(key string) (val []byte, err error) {
	defer recoverJS(&err)

	v := s.store.Call("getItem", key)
	if v.IsNull() || v.IsUndefined() {
		return nil, nil
	}
	return []byte(v.String()), nil
}

func (s *LocalStorage) Set(key string, val []byte, _ time.Duration) (err error) {
	defer recoverJS(&err)

	// setItem throws QuotaExceededError when storage is full.
	s.store.Call("setItem", key, string(val))
	return nil
}

func (s *LocalStorage) Delete(key string) (err error) {
	defer recoverJS(&err)

	s.store.Call("removeItem", key)
	return nil
}

// recoverJS converts a thrown JavaScript exception into an error.
func recoverJS(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if jsErr, ok := r.(js.Error); ok {
		*err = errors.Join(ErrStorage, jsErr)
		return
	}
	*err = errors.Join(ErrStorage, fmt.Errorf("%v", r))
}

var _ cookie.Storage = (*LocalStorage)(nil)
