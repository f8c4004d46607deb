package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"go-gin-contact-board/internal/core/cache"
)

type Option func(*options)

type options struct {
	log   *zap.Logger
	cache *cache.Cache
	ttl   time.Duration
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithCache 按 id 读取走 redis，写操作后失效；c 为 nil 时不启用
func WithCache(c *cache.Cache, ttl time.Duration) Option {
	return func(o *options) {
		o.cache = c
		o.ttl = ttl
	}
}

func buildOptions(opts []Option) options {
	o := options{log: zap.NewNop(), ttl: 5 * time.Minute}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func (o options) evict(ctx context.Context, key string) {
	if o.cache == nil {
		return
	}
	if err := o.cache.Del(ctx, key); err != nil {
		o.log.Warn("cache evict failed", zap.String("key", key), zap.Error(err))
	}
}
