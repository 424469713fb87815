package cookie

import (
	"strings"
	"unicode"
)

const cookieSeparator = "; "

// ParseCookies splits a cookie header of the form "a=1; b=2" into a
// name to raw value map. Values are not decoded and may contain "=".
func ParseCookies(header string) map[string]string {
	cookies := make(map[string]string)
	for _, segment := range strings.Split(header, cookieSeparator) {
		if segment == "" {
			continue
		}
		name, value, _ := strings.Cut(segment, "=")
		cookies[name] = value
	}
	return cookies
}

// hasPair reports whether the header contains exactly the given name=value segment.
func hasPair(header, pair string) bool {
	for _, segment := range strings.Split(header, cookieSeparator) {
		if segment == pair {
			return true
		}
	}
	return false
}

// AttributeName rewrites a camel-case option key into the hyphenated
// lower-case form used in cookie strings: maxAge becomes max-age. Only ASCII
// upper-case letters start a new word; every letter is lower-cased.
func AttributeName(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 2)
	for i, r := range key {
		if i > 0 && 'A' <= r && r <= 'Z' {
			b.WriteByte('-')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
