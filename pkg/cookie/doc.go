// Package cookie provides a manager for document cookies: the cookie header a
// browser exposes as document.cookie, or anything that behaves like it.
//
// It normalizes cookie creation, keeps an in-memory mirror of the current
// cookies, remembers the attributes each cookie was written with (a cookie
// header never echoes attributes back) and notifies callers about writes and
// removals.
//
// # Overview
//
// The Manager type is the entry point. It is built over two capabilities:
//
//   • Transport – reads the whole cookie header and writes one cookie at a time
//   • Storage – a key-value store for the JSON encoded attribute sets
//
// Once created you can:
//
//   • Set() – write a cookie with merged default attributes
//   • Get(), GetString(), GetJSON() – read mirrored values
//   • GetOptions() – recover the attributes a cookie was written with
//   • Remove() – expire a cookie
//   • OnSet(), OnRemove(), OnChange() – register single-slot callbacks
//
// # Cookie strings
//
// Attribute keys are given in camel case and written hyphenated:
// MaxAge(3600) becomes "max-age=3600" and SameSite(http.SameSiteLaxMode)
// becomes "same-site=lax". Attributes with a falsy value (false, "", 0, nil)
// are left out entirely, which also means MaxAge(0) is never written. A true
// value is written as a bare flag such as "secure".
//
// Values that are not strings, numbers or booleans are JSON encoded before
// they are written, and Get decodes JSON by default.
//
// # Write verification
//
// Documents accept cookie writes silently and may drop them (oversized value,
// foreign domain, cookies disabled). After every write the Manager reads the
// header back and looks for the exact name=value pair. A missing pair is
// treated as a rejected write: the cookie is dropped from the mirror and from
// the attribute storage, OnSet is skipped, OnChange still fires.
//
// # Transports
//
// MemoryDocument emulates a browser in memory and is handy in tests.
// HTTPDocument serves one HTTP exchange: it starts from the request cookies
// and sends every write as a Set-Cookie header. The browser subpackage binds
// document.cookie and localStorage under GOOS=js GOARCH=wasm.
//
// # Usage
//
//	import "github.com/dmitrymomot/easycookie/pkg/cookie"
//
//	doc := cookie.NewMemoryDocument("", cookie.WithDocumentPath("/app"))
//	m := cookie.New(doc, cookie.NewMemoryStorage(),
//	    cookie.WithDefaults(cookie.SameSite(http.SameSiteLaxMode)),
//	)
//
//	m.OnChange(func(e cookie.SetEvent) { log.Println("cookie changed:", e.Cookie) })
//
//	_, _ = m.Set("prefs", map[string]any{"theme": "dark"}, cookie.MaxAge(3600))
//	prefs, _ := m.Get("prefs") // map[string]any{"theme": "dark"}
//	opts, _ := m.GetOptions("prefs")
//	_ = m.Remove("prefs")
//
// # Configuration
//
// The Config struct lets the defaults be loaded from environment variables
// via github.com/caarlos0/env. Only non-zero fields are applied.
//
//	cfg := cookie.DefaultConfig()
//	_ = env.Parse(&cfg)
//	m, _ := cookie.NewFromConfig(doc, storage, cfg)
//
// # Error Handling
//
// Package-level sentinel errors such as ErrCookieNotFound, ErrOptionsNotFound
// and ErrStorage can be matched with errors.Is. A rejected write is not an
// error; inspect Has() or rely on OnSet to detect it.
package cookie
