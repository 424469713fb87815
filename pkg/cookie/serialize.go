package cookie

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// EncodeValue converts a cookie value to its string form. Strings and
// scalars are written as is, everything else is JSON encoded.
func EncodeValue(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(v).Int(), 10), nil
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(v).Uint(), 10), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSerialize, err)
	}
	return string(data), nil
}

// Serialize builds the cookie string for name and value with the given
// attributes. It returns the full string and the bare "name=value" pair
// that is looked up in the cookie header to verify a write.
func Serialize(name string, value any, attrs Attributes) (cookie, pair string, err error) {
	encoded, err := EncodeValue(value)
	if err != nil {
		return "", "", err
	}

	pair = name + "=" + encoded

	var b strings.Builder
	b.WriteString(pair)
	for _, attr := range attrs {
		value := indirect(attr.Value)
		if isFalsy(value) {
			continue
		}
		b.WriteString(cookieSeparator)
		b.WriteString(AttributeName(attr.Key))
		if v, ok := value.(bool); ok && v {
			continue
		}
		b.WriteByte('=')
		b.WriteString(formatAttrValue(value))
	}

	return b.String(), pair, nil
}

// isFalsy reports whether a value counts as unset: nil, false, the empty
// string, numeric zero and NaN. Pointers are judged by what they point to.
func isFalsy(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case bool:
		return !v
	case string:
		return v == ""
	case json.Number:
		f, err := v.Float64()
		return v == "" || (err == nil && (f == 0 || math.IsNaN(f)))
	case time.Time:
		return v.IsZero()
	case http.SameSite:
		return v == http.SameSiteDefaultMode
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.IsZero()
	case reflect.Float32, reflect.Float64:
		return rv.IsZero() || math.IsNaN(rv.Float())
	case reflect.Pointer:
		if rv.IsNil() {
			return true
		}
		return isFalsy(indirect(value))
	}
	return false
}

// indirect follows pointers down to the value they reference. A nil
// pointer is returned as nil.
func indirect(value any) any {
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}

func formatAttrValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case time.Time:
		return v.UTC().Format(http.TimeFormat)
	case time.Duration:
		return strconv.FormatInt(int64(v/time.Second), 10)
	case http.SameSite:
		s, _ := SameSiteToString(v)
		return s
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return fmt.Sprint(value)
}
