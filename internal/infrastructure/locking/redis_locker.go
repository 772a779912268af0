package locking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"grota_financiamento/internal/domain/entities"
	"grota_financiamento/internal/infrastructure/logger"
	"grota_financiamento/internal/usecase/interfaces"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	keyPrefix        = "lock:"
	defaultTTL       = 10 * time.Second
	retryInterval    = 50 * time.Millisecond
	defaultRetryWait = time.Second
)

// RedisLocker serializes writers of one entity across instances. A lock that
// cannot be obtained within the retry window surfaces as entities.ErrConflict.
type RedisLocker struct {
	client *redislock.Client
	ttl    time.Duration
	wait   time.Duration
}

var _ interfaces.IEntityLocker = (*RedisLocker)(nil)

func NewRedisLocker(rdb redis.UniversalClient, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisLocker{
		client: redislock.New(rdb),
		ttl:    ttl,
		wait:   defaultRetryWait,
	}
}

// WithWait sets how long Lock keeps retrying before giving up.
func (l *RedisLocker) WithWait(d time.Duration) *RedisLocker {
	l.wait = d
	return l
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	retries := int(l.wait / retryInterval)
	lock, err := l.client.Obtain(ctx, keyPrefix+key, l.ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(retryInterval), retries),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		logger.Get().WithField("key", key).Warn("[lock][redis] could not obtain lock")
		return nil, fmt.Errorf("lock %s: %w", key, entities.ErrConflict)
	}
	if err != nil {
		logger.LogError("lock", "Lock", "obtain", map[string]any{"key": key}, err)
		return nil, fmt.Errorf("lock %s: %w", key, err)
	}

	return func() {
		// the request context may already be cancelled here
		relCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := lock.Release(relCtx); err != nil {
			logger.Get().WithFields(logrus.Fields{"key": key}).WithError(err).Warn("[lock][redis] release failed")
		}
	}, nil
}

// NewRedisClient pings addr before returning the client.
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
		PoolSize: 100,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	logger.Get().WithField("addr", addr).Info("[lock][redis] connected")
	return rdb, nil
}
