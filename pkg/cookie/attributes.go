package cookie

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	sameSiteNone   = "none"
	sameSiteLax    = "lax"
	sameSiteStrict = "strict"
)

// Attribute is a single cookie modifier such as path, domain or maxAge.
// Keys are kept exactly as supplied; they are rewritten to the wire form
// (maxAge -> max-age) only when a cookie is serialized.
type Attribute struct {
	Key   string
	Value any
}

// Attr creates an arbitrary attribute. Any cookie attribute is accepted,
// the manager does not validate names or values.
func Attr(key string, value any) Attribute {
	return Attribute{Key: key, Value: value}
}

func Path(path string) Attribute {
	return Attribute{Key: "path", Value: path}
}

func Domain(domain string) Attribute {
	return Attribute{Key: "domain", Value: domain}
}

// MaxAge sets the lifetime in seconds. Note that zero is suppressed during
// serialization like every other falsy attribute value; use a negative value
// to expire a cookie immediately.
func MaxAge(seconds int) Attribute {
	return Attribute{Key: "maxAge", Value: seconds}
}

// Expires stores t in the HTTP date format so the persisted options stay
// identical to what was written to the cookie header.
func Expires(t time.Time) Attribute {
	return Attribute{Key: "expires", Value: t.UTC().Format(http.TimeFormat)}
}

func Secure(secure bool) Attribute {
	return Attribute{Key: "secure", Value: secure}
}

// SameSite stores the lower-case mode name. http.SameSiteDefaultMode maps to
// an empty value, which omits the attribute.
func SameSite(mode http.SameSite) Attribute {
	s, _ := SameSiteToString(mode)
	return Attribute{Key: "sameSite", Value: s}
}

// HTTPOnly passes the flag through. Browsers ignore HttpOnly on cookies
// written from script.
func HTTPOnly(httpOnly bool) Attribute {
	return Attribute{Key: "httpOnly", Value: httpOnly}
}

func Partitioned(partitioned bool) Attribute {
	return Attribute{Key: "partitioned", Value: partitioned}
}

// Attributes is an insertion-ordered attribute set. The order is preserved
// in the serialized cookie string and in the persisted JSON document.
type Attributes []Attribute

// Get returns the value stored under key.
func (a Attributes) Get(key string) (any, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return nil, false
}

// Set returns a copy of a with key set to value. An existing key keeps its
// position, a new key is appended.
func (a Attributes) Set(key string, value any) Attributes {
	out := a.clone()
	for i := range out {
		if out[i].Key == key {
			out[i].Value = value
			return out
		}
	}
	return append(out, Attribute{Key: key, Value: value})
}

// Merge returns a copy of a overlaid with over. Values from over win per key.
// The receiver is never modified.
func (a Attributes) Merge(over Attributes) Attributes {
	out := a.clone()
	for _, attr := range over {
		out = out.Set(attr.Key, attr.Value)
	}
	return out
}

// Keys returns attribute keys in insertion order.
func (a Attributes) Keys() []string {
	keys := make([]string, len(a))
	for i, attr := range a {
		keys[i] = attr.Key
	}
	return keys
}

func (a Attributes) clone() Attributes {
	out := make(Attributes, len(a), len(a)+1)
	copy(out, a)
	return out
}

// MarshalJSON encodes the attributes as a JSON object keeping insertion order.
func (a Attributes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, attr := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(attr.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(attr.Value)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", attr.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping the key order of the document.
// Numbers are kept as json.Number so they are written back verbatim.
func (a *Attributes) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*a = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("attributes: expected JSON object, got %v", tok)
	}

	out := make(Attributes, 0, 4)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("attributes: unexpected key %v", tok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("attribute %q: %w", key, err)
		}
		out = append(out, Attribute{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*a = out
	return nil
}

// StringToSameSite converts a string to http.SameSite.
func StringToSameSite(s string) (http.SameSite, error) {
	switch strings.ToLower(s) {
	case sameSiteNone:
		return http.SameSiteNoneMode, nil
	case sameSiteLax:
		return http.SameSiteLaxMode, nil
	case sameSiteStrict:
		return http.SameSiteStrictMode, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidSameSite, s)
	}
}

// SameSiteToString converts an http.SameSite value to its attribute value.
func SameSiteToString(s http.SameSite) (string, error) {
	switch s {
	case http.SameSiteNoneMode:
		return sameSiteNone, nil
	case http.SameSiteLaxMode:
		return sameSiteLax, nil
	case http.SameSiteStrictMode:
		return sameSiteStrict, nil
	default:
		return "", fmt.Errorf("%w: %v", ErrInvalidSameSite, s)
	}
}
