package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/easycookie/pkg/config"
	"github.com/dmitrymomot/easycookie/pkg/cookie"
)

type serviceConfig struct {
	Driver    string   `env:"TEST_STORAGE_DRIVER" envDefault:"memory"`
	CacheSize int      `env:"TEST_CACHE_SIZE" envDefault:"128"`
	Hosts     []string `env:"TEST_TRUSTED_HOSTS" envSeparator:","`
	Priority  string   `env:"TEST_PRIORITY"`
}

type overrideConfig struct {
	OnlyHere string `env:"TEST_OVERRIDE_ONLY"`
}

type defaultsConfig struct {
	Name string `env:"TEST_APP_NAME_DEFAULT" envDefault:"cookied"`
	Size int    `env:"TEST_SIZE_DEFAULT" envDefault:"42"`
	On   bool   `env:"TEST_ON_DEFAULT" envDefault:"true"`
}

type singletonConfig struct {
	Value string `env:"TEST_SINGLETON_VALUE"`
}

type requiredConfig struct {
	Required string `env:"TEST_REQUIRED_VALUE,required"`
}

func unsetAll(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		// t.Setenv registers a restore; Unsetenv then clears the value.
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

var fileKeys = []string{
	"COOKIE_DOMAIN", "COOKIE_MAX_AGE", "COOKIE_SECURE", "COOKIE_SAME_SITE",
	"TEST_STORAGE_DRIVER", "TEST_CACHE_SIZE", "TEST_TRUSTED_HOSTS", "TEST_PRIORITY",
	"TEST_OVERRIDE_ONLY",
}

func TestLoadEnv_CookieConfig(t *testing.T) {
	unsetAll(t, fileKeys...)
	config.ResetCache()

	require.NoError(t, config.LoadEnv("testdata/.env.cookied"))

	var cfg cookie.Config
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "example.test", cfg.Domain)
	assert.Equal(t, 86400, cfg.MaxAge)
	assert.True(t, cfg.Secure)
	assert.Equal(t, "lax", cfg.SameSite)

	attrs, err := cfg.Attributes()
	require.NoError(t, err)
	assert.Equal(t, []string{"domain", "maxAge", "secure", "sameSite"}, attrs.Keys())

	var svc serviceConfig
	require.NoError(t, config.Load(&svc))
	assert.Equal(t, "memory", svc.Driver)
	assert.Equal(t, 256, svc.CacheSize)
	assert.Equal(t, []string{"a.test", "b.test"}, svc.Hosts)
	assert.Equal(t, "file_value", svc.Priority)
}

func TestLoadEnv_MultiplePaths(t *testing.T) {
	unsetAll(t, fileKeys...)
	config.ResetCache()

	require.NoError(t, config.LoadEnv("testdata/.env.cookied", "testdata/.env.override"))

	var svc serviceConfig
	require.NoError(t, config.Load(&svc))
	assert.Equal(t, "redis", svc.Driver)
	assert.Equal(t, "override_value", svc.Priority)
	assert.Equal(t, 256, svc.CacheSize)

	var over overrideConfig
	require.NoError(t, config.Load(&over))
	assert.Equal(t, "only_here", over.OnlyHere)
}

func TestLoadEnv_NonExistentPath(t *testing.T) {
	assert.Error(t, config.LoadEnv("testdata/missing.env"))
	assert.Panics(t, func() { config.MustLoadEnv("testdata/missing.env") })
}

func TestLoad_DefaultValues(t *testing.T) {
	unsetAll(t, "TEST_APP_NAME_DEFAULT", "TEST_SIZE_DEFAULT", "TEST_ON_DEFAULT")
	config.ResetCache()

	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, defaultsConfig{Name: "cookied", Size: 42, On: true}, cfg)
}

func TestLoad_Cached(t *testing.T) {
	config.ResetCache()
	t.Setenv("TEST_SINGLETON_VALUE", "first")

	var first singletonConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("TEST_SINGLETON_VALUE", "second")

	var second singletonConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value)

	var reloaded singletonConfig
	require.NoError(t, config.ForceReloadConfig(&reloaded))
	assert.Equal(t, "second", reloaded.Value)
}

func TestLoad_MissingRequired(t *testing.T) {
	unsetAll(t, "TEST_REQUIRED_VALUE")
	config.ResetCache()

	var cfg requiredConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
	assert.Panics(t, func() { config.MustLoad(&requiredConfig{}) })

	t.Setenv("TEST_REQUIRED_VALUE", "present")
	require.NoError(t, config.Load(&cfg), "a failed parse is retried")
	assert.Equal(t, "present", cfg.Required)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *serviceConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	assert.ErrorIs(t, config.ForceReloadConfig(cfg), config.ErrNilPointer)
}
