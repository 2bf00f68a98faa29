// Package redis stores per-session demo page state as JSON values with a
// TTL. A session document is written with a single SET so readers never
// observe a half-updated result pair.
package redis

import (
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Adapter struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

type Option func(*Adapter)

const (
	defaultKeyPrefix = "session:"
	defaultTTL       = 24 * time.Hour
)

func New(client *redis.Client, options ...Option) *Adapter {
	a := &Adapter{
		client:    client,
		keyPrefix: defaultKeyPrefix,
		ttl:       defaultTTL,
		logger:    zap.NewNop(),
	}

	for _, o := range options {
		o(a)
	}

	a.logger.Sugar().With(
		"key prefix", a.keyPrefix,
		"ttl", a.ttl,
	).Info("init redis session adapter")

	return a
}

func WithKeyPrefix(prefix string) Option {
	return func(a *Adapter) {
		a.keyPrefix = prefix
	}
}

func WithTTL(ttl time.Duration) Option {
	return func(a *Adapter) {
		a.ttl = ttl
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

const adapterName = "redis"

func (a *Adapter) Name() string {
	return adapterName
}
