package main

import (
	"time"

	"github.com/dmitrymomot/easycookie/pkg/cookie"
	"github.com/dmitrymomot/easycookie/pkg/httpserver"
	"github.com/dmitrymomot/easycookie/pkg/mongo"
	"github.com/dmitrymomot/easycookie/pkg/pg"
	"github.com/dmitrymomot/easycookie/pkg/redis"
)

const (
	driverMemory   = "memory"
	driverRedis    = "redis"
	driverPostgres = "postgres"
	driverMongo    = "mongo"
)

type appConfig struct {
	Env              string        `env:"APP_ENV" envDefault:"development"`
	Name             string        `env:"APP_NAME" envDefault:"cookied"`
	StorageDriver    string        `env:"STORAGE_DRIVER" envDefault:"memory"` // memory, redis, postgres or mongo
	OptionsCacheSize int           `env:"OPTIONS_CACHE_SIZE" envDefault:"1024"`
	OptionsCacheTTL  time.Duration `env:"OPTIONS_CACHE_TTL" envDefault:"1m"`
	VisitorCookie    string        `env:"VISITOR_COOKIE_NAME" envDefault:"visitor"`
	MaxBodySize      int64         `env:"MAX_BODY_SIZE" envDefault:"16384"`
	ReadyTimeout     time.Duration `env:"READY_TIMEOUT" envDefault:"2s"`
	JanitorInterval  time.Duration `env:"JANITOR_INTERVAL" envDefault:"10m"`

	HTTP     httpserver.Config
	Cookie   cookie.Config
	Redis    redis.Config
	Postgres pg.Config
	Mongo    mongo.Config
}
