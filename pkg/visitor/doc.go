// Package visitor issues and reads an anonymous visitor identifier kept in
// a cookie.
//
// Middleware reuses the UUID found in the visitor cookie or issues a new one,
// and stores it in the request context. FromContext reads it back and
// LoggerExtractor attaches it to log records as "visitor_id". The cookie
// service uses the ID to namespace the attribute documents of each visitor.
//
//	r := chi.NewRouter()
//	r.Use(visitor.Middleware(visitor.WithSecure(true)))
//	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
//		id := visitor.FromContext(r.Context())
//		_ = id
//	})
//
// Malformed identifiers are replaced silently; the package returns no errors.
package visitor
