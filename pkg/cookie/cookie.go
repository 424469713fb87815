package cookie

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net/url"
	"sync"
	"time"

	"github.com/dmitrymomot/easycookie/pkg/logger"
)

// SetEvent describes a Set call. OnChange receives it whether or not the
// write was accepted; OnSet receives it only on success.
type SetEvent struct {
	Name    string
	Value   any
	Cookie  string
	Options Attributes
}

// RemoveEvent carries the value a cookie had before Remove expired it.
type RemoveEvent struct {
	Name  string
	Value any
}

// Manager mirrors the cookies of a document, writes new ones with merged
// default attributes and remembers which attributes each cookie was written
// with.
//
// The mirror is built once from the transport in New and afterwards only
// changes through Set and Remove. Cookies changed by anyone else are not
// picked up.
type Manager struct {
	mu         sync.Mutex
	transport  Transport
	storage    Storage
	cookies    map[string]string
	defaults   Attributes
	prefix     string
	optionsTTL time.Duration
	logger     *slog.Logger

	onSet    func(SetEvent)
	onRemove func(RemoveEvent)
	onChange func(SetEvent)
}

// New creates a Manager over the given transport and attribute storage.
// The default path attribute is the transport's current path when it
// implements PathProvider, "/" otherwise. A nil storage falls back to a
// MemoryStorage.
func New(t Transport, s Storage, opts ...Option) *Manager {
	path := "/"
	if p, ok := t.(PathProvider); ok && p.Path() != "" {
		path = p.Path()
	}
	if s == nil {
		s = NewMemoryStorage()
	}

	m := &Manager{
		transport: t,
		storage:   s,
		cookies:   ParseCookies(t.Cookies()),
		defaults:  Attributes{Path(path)},
		logger:    slog.New(slog.DiscardHandler),
		onSet:     func(SetEvent) {},
		onRemove:  func(RemoveEvent) {},
		onChange:  func(SetEvent) {},
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// AddDefaultOptions merges attrs into the defaults used by every Set.
func (m *Manager) AddDefaultOptions(attrs ...Attribute) {
	m.mu.Lock()
	m.defaults = m.defaults.Merge(attrs)
	m.mu.Unlock()
}

// Defaults returns a copy of the current default attributes.
func (m *Manager) Defaults() Attributes {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.defaults.Merge(nil)
}

// Set writes a cookie and returns the cookie string that was written.
//
// Non-string values are JSON encoded. Call attributes override the manager
// defaults per key. Because a document accepts cookie writes without any
// error signal, Set reads the cookie header back to find out whether the
// write stuck. If it did, the mirror and the persisted attributes are
// updated and OnSet fires; if it did not, both records of the cookie are
// dropped. OnChange fires in either case.
//
// The returned error is only non-nil when the value cannot be encoded
// (nothing is written) or when the attribute storage fails.
func (m *Manager) Set(name string, value any, attrs ...Attribute) (string, error) {
	m.mu.Lock()

	options := m.defaults.Merge(attrs)
	cookie, pair, err := Serialize(name, value, options)
	if err != nil {
		m.mu.Unlock()
		return "", err
	}

	m.transport.SetCookie(cookie)
	stored := hasPair(m.transport.Cookies(), pair)

	var storageErr error
	if stored {
		m.cookies[name] = pair[len(name)+1:]
		storageErr = m.setOptions(name, options)
	} else {
		delete(m.cookies, name)
		storageErr = m.removeOptions(name)
	}

	onSet, onChange := m.onSet, m.onChange
	m.mu.Unlock()

	if stored {
		m.logger.Debug("cookie set", logger.Component("cookie"), logger.CookieName(name))
	} else {
		m.logger.Warn("cookie write rejected by document",
			logger.Component("cookie"),
			logger.CookieName(name),
			logger.Cookie(cookie),
		)
	}

	event := SetEvent{Name: name, Value: value, Cookie: cookie, Options: options}
	if stored {
		onSet(event)
	}
	onChange(event)

	if storageErr != nil {
		m.logger.Error("failed to persist cookie options",
			logger.Component("cookie"),
			logger.CookieName(name),
			logger.Error(storageErr),
		)
		return cookie, errors.Join(ErrStorage, storageErr)
	}

	return cookie, nil
}

// Get returns the value of a mirrored cookie. The raw value is URL-decoded
// and then, unless WithoutDecode is given, run through the decoder (JSON by
// default). A value the decoder rejects is returned as the decoded string.
// Missing cookies yield ErrCookieNotFound.
func (m *Manager) Get(name string, opts ...GetOption) (any, error) {
	o := applyGetOptions(opts)

	raw, ok := m.lookup(name)
	if !ok {
		return nil, ErrCookieNotFound
	}

	value := unescape(raw)
	if !o.decode {
		return value, nil
	}

	decoded, err := o.decoder(value)
	if err != nil {
		return value, nil
	}
	return decoded, nil
}

// GetString returns the URL-decoded cookie value without further decoding.
func (m *Manager) GetString(name string) (string, error) {
	raw, ok := m.lookup(name)
	if !ok {
		return "", ErrCookieNotFound
	}
	return unescape(raw), nil
}

// GetJSON decodes the cookie value into dest.
func (m *Manager) GetJSON(name string, dest any) error {
	raw, ok := m.lookup(name)
	if !ok {
		return ErrCookieNotFound
	}
	if err := json.Unmarshal([]byte(unescape(raw)), dest); err != nil {
		return fmt.Errorf("decode cookie %q: %w", name, err)
	}
	return nil
}

// Has reports whether the mirror holds name.
func (m *Manager) Has(name string) bool {
	_, ok := m.lookup(name)
	return ok
}

// Cookies returns a snapshot of the mirror with raw values.
func (m *Manager) Cookies() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.cookies)
}

// GetOptions returns the attributes the cookie was last successfully set
// with. Cookies that were never set through a manager have none and yield
// ErrOptionsNotFound.
func (m *Manager) GetOptions(name string) (Attributes, error) {
	data, err := m.storage.Get(m.prefix + name)
	if err != nil {
		return nil, errors.Join(ErrStorage, err)
	}
	if data == nil {
		return nil, ErrOptionsNotFound
	}

	var attrs Attributes
	if err := json.Unmarshal(data, &attrs); err != nil {
		return nil, errors.Join(ErrInvalidOptions, err)
	}
	return attrs, nil
}

// Remove expires a cookie by setting it to an empty value with max-age=-1
// and fires OnRemove with the value it had. The path and domain it was
// last set with are reused so the expiring write targets the same cookie.
// Removing a missing cookie, or one whose decoded value is falsy (empty,
// false, zero, null), does nothing and fires no callback.
func (m *Manager) Remove(name string) error {
	previous, err := m.Get(name)
	if err != nil || isFalsy(previous) {
		return nil
	}

	attrs := make([]Attribute, 0, 3)
	if stored, err := m.GetOptions(name); err == nil {
		for _, key := range []string{"path", "domain"} {
			if v, ok := stored.Get(key); ok {
				attrs = append(attrs, Attr(key, v))
			}
		}
	}
	attrs = append(attrs, MaxAge(-1))

	_, err = m.Set(name, "", attrs...)

	m.mu.Lock()
	onRemove := m.onRemove
	m.mu.Unlock()

	onRemove(RemoveEvent{Name: name, Value: previous})
	return err
}

// OnSet registers the callback fired after a successful Set. It replaces
// the previous callback; nil restores the no-op.
func (m *Manager) OnSet(fn func(SetEvent)) {
	if fn == nil {
		fn = func(SetEvent) {}
	}
	m.mu.Lock()
	m.onSet = fn
	m.mu.Unlock()
}

// OnRemove registers the callback fired after Remove. It replaces the
// previous callback; nil restores the no-op.
func (m *Manager) OnRemove(fn func(RemoveEvent)) {
	if fn == nil {
		fn = func(RemoveEvent) {}
	}
	m.mu.Lock()
	m.onRemove = fn
	m.mu.Unlock()
}

// OnChange registers the callback fired after every Set, accepted or not,
// including the one issued by Remove. It replaces the previous callback;
// nil restores the no-op.
func (m *Manager) OnChange(fn func(SetEvent)) {
	if fn == nil {
		fn = func(SetEvent) {}
	}
	m.mu.Lock()
	m.onChange = fn
	m.mu.Unlock()
}

func (m *Manager) lookup(name string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.cookies[name]
	return raw, ok
}

// Must be called with lock held.
func (m *Manager) setOptions(name string, attrs Attributes) error {
	data, err := json.Marshal(attrs)
	if err != nil {
		return err
	}
	return m.storage.Set(m.prefix+name, data, m.optionsTTL)
}

// Must be called with lock held.
func (m *Manager) removeOptions(name string) error {
	return m.storage.Delete(m.prefix + name)
}

// unescape mirrors decodeURIComponent; malformed escapes leave the value untouched.
func unescape(raw string) string {
	value, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return value
}
