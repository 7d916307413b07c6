// Package revocation keeps the ids of logged-out tokens until they expire.
package revocation

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

type List interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type MemoryList struct {
	cache *cache.Cache
}

func NewMemoryList() *MemoryList {
	return &MemoryList{
		cache: cache.New(time.Hour, 10*time.Minute),
	}
}

func (l *MemoryList) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	l.cache.Set(tokenID, struct{}{}, ttl)
	return nil
}

func (l *MemoryList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	_, found := l.cache.Get(tokenID)
	return found, nil
}

const redisKeyPrefix = "querychat:revoked:"

// RedisList shares revocations between server instances.
type RedisList struct {
	rdb *redis.Client
}

func NewRedisList(rdb *redis.Client) *RedisList {
	return &RedisList{rdb: rdb}
}

func (l *RedisList) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return l.rdb.Set(ctx, redisKeyPrefix+tokenID, 1, ttl).Err()
}

func (l *RedisList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := l.rdb.Exists(ctx, redisKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Connect parses url (or treats it as a host:port) and pings the server.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}
