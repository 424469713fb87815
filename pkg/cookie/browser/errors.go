package browser

import "errors"

var (
	ErrNoDocument     = errors.New("browser.no_document")
	ErrNoLocalStorage = errors.New("browser.no_local_storage")
	ErrStorage        = errors.New("browser.storage")
)
