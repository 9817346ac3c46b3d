// Package cache keeps rendered question listing pages in Redis.
//
// Pages are stored under a key that embeds a generation number. Any write
// that could change a listing bumps the generation, so stale pages are never
// read again and simply expire.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/emilythestrangee/qna-forum/backend/internal/config"
	"github.com/emilythestrangee/qna-forum/backend/internal/models"
)

// Lookup is the result of a Get. On a miss, pass Generation back to Set:
// a page built after an invalidation is then written under the old
// generation and never read.
type Lookup struct {
	Page       *models.QuestionPage
	Hit        bool
	Generation int64
}

// PageCache is the listing cache used by the question service.
type PageCache interface {
	Get(ctx context.Context, f models.QuestionFilter) (Lookup, error)
	Set(ctx context.Context, gen int64, f models.QuestionFilter, page *models.QuestionPage) error
	// Invalidate makes every cached page unreachable.
	Invalidate(ctx context.Context) error
	Close() error
}

type redisCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache connects with a redis:// URL and pings the server.
func NewRedisCache(ctx context.Context, cfg config.RedisConfig) (PageCache, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return newRedisCache(rdb, cfg.Prefix, cfg.PageTTL), nil
}

func newRedisCache(rdb *redis.Client, prefix string, ttl time.Duration) *redisCache {
	if prefix == "" {
		prefix = "qna:"
	}
	return &redisCache{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (c *redisCache) versionKey() string { return c.prefix + "questions:gen" }

// pageKey is deterministic for equal filters; url.Values sorts its keys.
func (c *redisCache) pageKey(gen int64, f models.QuestionFilter) string {
	v := url.Values{}
	v.Set("page", strconv.Itoa(f.Page))
	v.Set("limit", strconv.Itoa(f.Limit))
	v.Set("sort", f.Sort)
	v.Set("subject", f.Subject)
	v.Set("search", f.Search)
	return fmt.Sprintf("%squestions:%d:%s", c.prefix, gen, v.Encode())
}

func (c *redisCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, c.versionKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *redisCache) Get(ctx context.Context, f models.QuestionFilter) (Lookup, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return Lookup{}, err
	}

	raw, err := c.rdb.Get(ctx, c.pageKey(gen, f)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Lookup{Generation: gen}, nil
	}
	if err != nil {
		return Lookup{}, err
	}

	var page models.QuestionPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return Lookup{}, fmt.Errorf("decode cached page: %w", err)
	}
	return Lookup{Page: &page, Hit: true, Generation: gen}, nil
}

func (c *redisCache) Set(ctx context.Context, gen int64, f models.QuestionFilter, page *models.QuestionPage) error {
	raw, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("encode page: %w", err)
	}
	return c.rdb.Set(ctx, c.pageKey(gen, f), raw, c.ttl).Err()
}

func (c *redisCache) Invalidate(ctx context.Context) error {
	return c.rdb.Incr(ctx, c.versionKey()).Err()
}

func (c *redisCache) Close() error { return c.rdb.Close() }

// Nop is used when Redis is not configured: every lookup misses.
type Nop struct{}

func (Nop) Get(context.Context, models.QuestionFilter) (Lookup, error) { return Lookup{}, nil }

func (Nop) Set(context.Context, int64, models.QuestionFilter, *models.QuestionPage) error { return nil }

func (Nop) Invalidate(context.Context) error { return nil }

func (Nop) Close() error { return nil }
