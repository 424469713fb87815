package visitor

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultCookieName = "visitor"
	DefaultMaxAge     = 365 * 24 * time.Hour
)

type options struct {
	name   string
	maxAge time.Duration
	secure bool
}

// Option configures Middleware.
type Option func(*options)

// WithCookieName changes the name of the visitor cookie. Empty names are ignored.
func WithCookieName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithMaxAge changes the lifetime of a newly issued visitor cookie.
func WithMaxAge(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.maxAge = d
		}
	}
}

// WithSecure marks issued visitor cookies as Secure.
func WithSecure(secure bool) Option {
	return func(o *options) { o.secure = secure }
}

// Middleware makes sure every request carries a visitor ID. A valid UUID in
// the visitor cookie is reused; a missing or malformed one is replaced by a
// new UUID that is sent back as an HttpOnly cookie.
func Middleware(opts ...Option) func(http.Handler) http.Handler {
	o := options{name: DefaultCookieName, maxAge: DefaultMaxAge}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := fromRequest(r, o.name)
			if !ok {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     o.name,
					Value:    id,
					Path:     "/",
					MaxAge:   int(o.maxAge.Seconds()),
					HttpOnly: true,
					Secure:   o.secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
		})
	}
}

func fromRequest(r *http.Request, name string) (string, bool) {
	c, err := r.Cookie(name)
	if err != nil {
		return "", false
	}
	id, err := uuid.Parse(c.Value)
	if err != nil {
		return "", false
	}
	return id.String(), true
}
