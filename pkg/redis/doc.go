// Package redis connects to Redis and exposes it as a store for cookie
// attribute documents.
//
// The package wraps the go-redis client and adds:
//
//   - Connect, which retries the connection using the supplied configuration.
//   - Storage, a key-value wrapper that satisfies cookie.Storage.
//   - Healthcheck, for HTTP liveness and readiness probes.
//
// Configuration is described by the Config struct whose fields can be
// populated from environment variables via github.com/caarlos0/env.
//
// # Usage
//
//	import "github.com/dmitrymomot/easycookie/pkg/redis"
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    // handle error, probably terminate the application
//	}
//	defer client.Close()
//
//	store := redis.NewStorageWithConfig(client, cfg)
//	m := cookie.New(doc, store, cookie.WithStoragePrefix("easycookie:"))
//
// Drop everything a prefix owns, for example one visitor's options:
//
//	_ = store.DeletePrefix(ctx, "easycookie:visitor-id:")
//
// # Errors
//
// Sentinel errors such as ErrRedisNotReady and ErrStorage wrap the
// underlying go-redis errors using errors.Join. redis.Nil is never
// returned; a missing key reads as nil.
package redis
