// Package browser binds the cookie manager to a real browser when the
// program is compiled with GOOS=js GOARCH=wasm.
//
// Document reads and writes document.cookie and reports location.pathname as
// the default cookie path. LocalStorage keeps the attribute documents in
// window.localStorage so they survive page reloads.
//
//	m, err := browser.NewManager(cookie.WithStoragePrefix("easycookie:"))
//	if err != nil {
//	    // document or localStorage is not available
//	}
//	_, _ = m.Set("theme", "dark", cookie.MaxAge(3600))
package browser
