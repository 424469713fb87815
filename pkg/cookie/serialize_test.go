package cookie_test

import (
	"encoding/json"
	"math"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/easycookie/pkg/cookie"
)

func TestEncodeValue(t *testing.T) {
	t.Parallel()

	type prefs struct {
		Theme string `json:"theme"`
	}

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "string", value: "v", want: "v"},
		{name: "empty string", value: "", want: ""},
		{name: "bytes", value: []byte("raw"), want: "raw"},
		{name: "int", value: 42, want: "42"},
		{name: "negative int64", value: int64(-7), want: "-7"},
		{name: "uint8", value: uint8(255), want: "255"},
		{name: "float", value: 1.5, want: "1.5"},
		{name: "bool", value: true, want: "true"},
		{name: "json number", value: json.Number("10"), want: "10"},
		{name: "nil", value: nil, want: "null"},
		{name: "map", value: map[string]any{"a": 1}, want: `{"a":1}`},
		{name: "slice", value: []int{1, 2}, want: "[1,2]"},
		{name: "struct", value: prefs{Theme: "dark"}, want: `{"theme":"dark"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := cookie.EncodeValue(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unsupported value", func(t *testing.T) {
		t.Parallel()
		_, err := cookie.EncodeValue(func() {})
		assert.ErrorIs(t, err, cookie.ErrSerialize)
	})
}

func TestSerialize(t *testing.T) {
	t.Parallel()

	t.Run("attribute order follows insertion", func(t *testing.T) {
		t.Parallel()
		wire, pair, err := cookie.Serialize("n", "v", cookie.Attributes{
			cookie.SameSite(http.SameSiteNoneMode),
			cookie.Secure(true),
			cookie.Path("/x"),
		})
		require.NoError(t, err)
		assert.Equal(t, "n=v; same-site=none; secure; path=/x", wire)
		assert.Equal(t, "n=v", pair)
	})

	t.Run("falsy values are skipped", func(t *testing.T) {
		t.Parallel()
		wire, _, err := cookie.Serialize("n", "v", cookie.Attributes{
			cookie.Attr("a", 0),
			cookie.Attr("b", 0.0),
			cookie.Attr("c", ""),
			cookie.Attr("d", false),
			cookie.Attr("e", nil),
			cookie.Attr("f", json.Number("0")),
			cookie.Attr("g", time.Time{}),
			cookie.Attr("h", http.SameSiteDefaultMode),
			cookie.Attr("keep", "yes"),
		})
		require.NoError(t, err)
		assert.Equal(t, "n=v; keep=yes", wire)
	})

	t.Run("NaN and pointers to falsy values are skipped", func(t *testing.T) {
		t.Parallel()
		zero, empty, off := 0, "", false
		wire, _, err := cookie.Serialize("n", "v", cookie.Attributes{
			cookie.Attr("maxAge", math.NaN()),
			cookie.Attr("a", float32(math.NaN())),
			cookie.Attr("b", json.Number("NaN")),
			cookie.Attr("c", &zero),
			cookie.Attr("d", &empty),
			cookie.Attr("e", &off),
			cookie.Attr("f", (*string)(nil)),
		})
		require.NoError(t, err)
		assert.Equal(t, "n=v", wire)
	})

	t.Run("pointer values are dereferenced", func(t *testing.T) {
		t.Parallel()
		path, age, secure := "/x", 60, true
		wire, _, err := cookie.Serialize("n", "v", cookie.Attributes{
			cookie.Attr("path", &path),
			cookie.Attr("maxAge", &age),
			cookie.Attr("secure", &secure),
		})
		require.NoError(t, err)
		assert.Equal(t, "n=v; path=/x; max-age=60; secure", wire)
	})

	t.Run("typed attribute values", func(t *testing.T) {
		t.Parallel()
		wire, _, err := cookie.Serialize("n", "v", cookie.Attributes{
			cookie.Attr("expires", time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)),
			cookie.Attr("maxAge", 90*time.Second),
			cookie.Attr("sameSite", http.SameSiteLaxMode),
			cookie.Attr("maxAgeFloat", 1.25),
		})
		require.NoError(t, err)
		assert.Equal(t, "n=v; expires=Wed, 02 Jan 2030 03:04:05 GMT; max-age=90; same-site=lax; max-age-float=1.25", wire)
	})

	t.Run("name and value are not rewritten", func(t *testing.T) {
		t.Parallel()
		wire, pair, err := cookie.Serialize("userPrefs", "darkMode", nil)
		require.NoError(t, err)
		assert.Equal(t, "userPrefs=darkMode", wire)
		assert.Equal(t, wire, pair)
	})
}
