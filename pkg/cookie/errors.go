package cookie

import "errors"

var (
	ErrCookieNotFound  = errors.New("cookie.not_found")
	ErrOptionsNotFound = errors.New("cookie.options_not_found")
	ErrInvalidOptions  = errors.New("cookie.invalid_options")
	ErrSerialize       = errors.New("cookie.serialize")
	ErrStorage         = errors.New("cookie.storage")
	ErrInvalidSameSite = errors.New("cookie.invalid_same_site")
)
