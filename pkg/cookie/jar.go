package cookie

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultMaxCookieSize is the name+value limit most browsers enforce.
const DefaultMaxCookieSize = 4096

// Jar applies cookie strings the way a browser applies writes to
// document.cookie: a positive lifetime stores or overwrites the cookie,
// max-age<=0 or an expiry in the past deletes it, and malformed or oversized
// cookies are dropped without any error. Path and domain scoping are not
// modelled; the jar represents the cookies visible to a single document.
// Jar is not safe for concurrent use.
type Jar struct {
	names   []string
	values  map[string]string
	maxSize int
	now     func() time.Time
}

// NewJar creates a jar seeded from a cookie header.
func NewJar(header string) *Jar {
	j := &Jar{
		values:  make(map[string]string),
		maxSize: DefaultMaxCookieSize,
		now:     time.Now,
	}
	for _, segment := range strings.Split(header, cookieSeparator) {
		if segment == "" {
			continue
		}
		name, value, _ := strings.Cut(segment, "=")
		j.put(name, value)
	}
	return j
}

// Header renders the stored cookies as "a=1; b=2" in insertion order.
func (j *Jar) Header() string {
	pairs := make([]string, 0, len(j.names))
	for _, name := range j.names {
		pairs = append(pairs, name+"="+j.values[name])
	}
	return strings.Join(pairs, cookieSeparator)
}

// Apply processes one cookie string. It reports whether the jar accepted it
// (stored or deleted the cookie).
func (j *Jar) Apply(cookie string) bool {
	segments := strings.Split(cookie, ";")
	name, value, ok := strings.Cut(strings.TrimSpace(segments[0]), "=")
	if !ok || name == "" {
		return false
	}
	if j.maxSize > 0 && len(name)+len(value) > j.maxSize {
		return false
	}

	var (
		maxAge    *int
		expiresAt time.Time
	)
	for _, segment := range segments[1:] {
		key, val, _ := strings.Cut(strings.TrimSpace(segment), "=")
		switch strings.ToLower(key) {
		case "max-age":
			n, err := strconv.Atoi(strings.TrimSpace(val))
			if err != nil {
				continue
			}
			maxAge = &n
		case "expires":
			t, err := http.ParseTime(strings.TrimSpace(val))
			if err != nil {
				continue
			}
			expiresAt = t
		}
	}

	switch {
	case maxAge != nil && *maxAge <= 0:
		j.remove(name)
	case maxAge == nil && !expiresAt.IsZero() && !expiresAt.After(j.now()):
		j.remove(name)
	default:
		j.put(name, value)
	}
	return true
}

// Len returns the number of stored cookies.
func (j *Jar) Len() int {
	return len(j.names)
}

func (j *Jar) put(name, value string) {
	if _, exists := j.values[name]; !exists {
		j.names = append(j.names, name)
	}
	j.values[name] = value
}

func (j *Jar) remove(name string) {
	if _, exists := j.values[name]; !exists {
		return
	}
	delete(j.values, name)
	for i, n := range j.names {
		if n == name {
			j.names = append(j.names[:i], j.names[i+1:]...)
			break
		}
	}
}

// DocumentOption configures a MemoryDocument.
type DocumentOption func(*MemoryDocument)

// WithDocumentPath sets the path reported to the manager.
func WithDocumentPath(path string) DocumentOption {
	return func(d *MemoryDocument) { d.path = path }
}

// WithMaxCookieSize changes the name+value limit. Zero disables it.
func WithMaxCookieSize(n int) DocumentOption {
	return func(d *MemoryDocument) { d.jar.maxSize = n }
}

// WithRejectFunc installs a hook that silently drops matching writes,
// simulating disabled cookies, quota or domain failures.
func WithRejectFunc(fn func(cookie string) bool) DocumentOption {
	return func(d *MemoryDocument) { d.reject = fn }
}

// WithClock overrides the time source used for expires attributes.
func WithClock(now func() time.Time) DocumentOption {
	return func(d *MemoryDocument) {
		if now != nil {
			d.jar.now = now
		}
	}
}

// MemoryDocument is an in-memory Transport with browser-like semantics.
// It is useful in tests and in programs that want the manager's bookkeeping
// without a real browser.
type MemoryDocument struct {
	mu     sync.Mutex
	jar    *Jar
	path   string
	reject func(cookie string) bool
	writes []string
}

// NewMemoryDocument creates a document whose cookie header starts as header.
func NewMemoryDocument(header string, opts ...DocumentOption) *MemoryDocument {
	d := &MemoryDocument{
		jar:  NewJar(header),
		path: "/",
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *MemoryDocument) Cookies() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.jar.Header()
}

func (d *MemoryDocument) SetCookie(cookie string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.writes = append(d.writes, cookie)
	if d.reject != nil && d.reject(cookie) {
		return
	}
	d.jar.Apply(cookie)
}

func (d *MemoryDocument) Path() string {
	return d.path
}

// Writes returns every cookie string written so far, rejected ones included.
func (d *MemoryDocument) Writes() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.writes))
	copy(out, d.writes)
	return out
}
