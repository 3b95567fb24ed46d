package cache

import (
	"context"
	"time"

	"library-api/pkg/cache"
)

// NoopCache is used when REDIS_HOST is not configured. Every lookup misses and no lease is granted.
type NoopCache struct{}

var _ cache.Cache = NoopCache{}

func (NoopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

func (NoopCache) Lease(context.Context, string, time.Duration) (string, error) { return "", nil }

func (NoopCache) Fill(context.Context, string, string, interface{}, time.Duration) error { return nil }

func (NoopCache) Delete(context.Context, ...string) error { return nil }

func (NoopCache) Ping(context.Context) error { return nil }
