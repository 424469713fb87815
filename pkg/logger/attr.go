package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// RequestID records the request identifier under the key "request_id".
// If id is nil, it returns an empty Attr.
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

// VisitorID records the visitor identifier under the key "visitor_id".
func VisitorID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("visitor_id", id)
}

// CookieName records a cookie name under the key "cookie_name".
func CookieName(name string) slog.Attr {
	return slog.String("cookie_name", name)
}

// Cookie records a full cookie string under the key "cookie".
func Cookie(cookie string) slog.Attr {
	return slog.String("cookie", cookie)
}

// Driver records a storage driver name under the key "driver".
func Driver(name string) slog.Attr {
	return slog.String("driver", name)
}
