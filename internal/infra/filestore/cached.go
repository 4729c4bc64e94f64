package filestore

import (
	"context"
	"log/slog"
	"time"

	"cinema-ticketing/internal/pkg/config"
	"cinema-ticketing/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
)

const documentKeyPrefix = "cache:document:"

// ByteCache is the cache contract. Get reports a miss with found == false.
type ByteCache interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

type RedisCache struct {
	client *redis.Client
}

func NewRedisClient(cfg config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
	})
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Del(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// CachedStore serves document bytes from the cache when it can. Cache
// failures are logged and the inner store answers instead.
type CachedStore struct {
	inner  shared.DocumentStore
	cache  ByteCache
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedStore(inner shared.DocumentStore, cache ByteCache, ttl time.Duration, logger *slog.Logger) *CachedStore {
	return &CachedStore{
		inner:  inner,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// Save drops any cached copy; a regenerated document must not be shadowed
// by the previous bytes.
func (s *CachedStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	ref, err := s.inner.Save(ctx, name, data)
	if err != nil {
		return "", err
	}
	s.evict(ctx, ref)
	return ref, nil
}

func (s *CachedStore) Open(ctx context.Context, ref string) ([]byte, error) {
	data, found, err := s.cache.Get(ctx, documentKey(ref))
	if err != nil {
		s.logger.Warn("document cache read failed", "ref", ref, "error", err.Error())
	} else if found {
		return data, nil
	}

	data, err = s.inner.Open(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, documentKey(ref), data, s.ttl); err != nil {
		s.logger.Warn("document cache write failed", "ref", ref, "error", err.Error())
	}
	return data, nil
}

// Exists always asks the inner store; a cached copy may outlive the file.
func (s *CachedStore) Exists(ctx context.Context, ref string) (bool, error) {
	return s.inner.Exists(ctx, ref)
}

func (s *CachedStore) Delete(ctx context.Context, ref string) error {
	s.evict(ctx, ref)
	return s.inner.Delete(ctx, ref)
}

func (s *CachedStore) evict(ctx context.Context, ref string) {
	if err := s.cache.Del(ctx, documentKey(ref)); err != nil {
		s.logger.Warn("document cache eviction failed", "ref", ref, "error", err.Error())
	}
}

func documentKey(ref string) string {
	return documentKeyPrefix + ref
}
