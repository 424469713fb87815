package cookie

import (
	"encoding/json"
	"log/slog"
	"time"
)

// Option configures a Manager.
type Option func(*Manager)

// WithDefaults overlays attributes on the manager defaults. The default
// path seeded from the transport can be overridden this way.
func WithDefaults(attrs ...Attribute) Option {
	return func(m *Manager) {
		m.defaults = m.defaults.Merge(attrs)
	}
}

// WithLogger sets the logger used for write and storage diagnostics.
// A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithStoragePrefix namespaces the keys used for persisted attributes.
func WithStoragePrefix(prefix string) Option {
	return func(m *Manager) {
		m.prefix = prefix
	}
}

// WithOptionsTTL sets the expiration passed to Storage.Set for persisted
// attributes. Zero keeps them until the cookie is removed or overwritten.
func WithOptionsTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.optionsTTL = ttl
		}
	}
}

// DecodeFunc turns a URL-decoded cookie value into a richer value.
type DecodeFunc func(value string) (any, error)

// JSONDecode is the default DecodeFunc.
func JSONDecode(value string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(value), &v); err != nil {
		return nil, err
	}
	return v, nil
}

type getOptions struct {
	decode  bool
	decoder DecodeFunc
}

// GetOption configures a single Get call.
type GetOption func(*getOptions)

// WithoutDecode makes Get return the URL-decoded string as is.
func WithoutDecode() GetOption {
	return func(o *getOptions) { o.decode = false }
}

// WithDecoder replaces the JSON decoder used by Get. A nil decoder is ignored.
func WithDecoder(fn DecodeFunc) GetOption {
	return func(o *getOptions) {
		if fn != nil {
			o.decoder = fn
		}
	}
}

func applyGetOptions(opts []GetOption) getOptions {
	o := getOptions{decode: true, decoder: JSONDecode}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
