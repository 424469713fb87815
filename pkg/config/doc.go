// Package config loads application configuration from environment variables
// into typed structs and caches the result per type.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - LoadEnv reads one or more .env files into the process environment.
//   - Load parses the environment into any struct using env tags. The default
//     .env file of the working directory is read on first use if present.
//   - Each configuration type is parsed once and served from a cache after
//     that. A failed parse is not cached.
//   - MustLoadEnv and MustLoad panic on failure for configuration the
//     process cannot start without.
//   - ResetCache and ForceReloadConfig exist for tests.
//
// # Usage
//
//	import "github.com/dmitrymomot/easycookie/pkg/config"
//
//	var cfg cookie.Config
//	config.MustLoad(&cfg)
//
//	m, err := cookie.NewFromConfig(doc, storage, cfg)
//
// # Error Handling
//
// ErrParsingConfig wraps the env parsing error and ErrNilPointer reports a
// nil destination; match them with errors.Is.
package config
