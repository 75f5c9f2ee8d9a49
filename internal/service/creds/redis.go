package creds

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultLockTTL   = time.Minute
	lockRetryBackoff = 100 * time.Millisecond
)

// RedisStore はRedisに値を保存し、redislockでプロセス間の排他を取るStore
type RedisStore struct {
	client  *redis.Client
	locker  *redislock.Client
	lockTTL time.Duration
}

// NewRedisStore はRedisStoreを作成する
func NewRedisStore(client *redis.Client, lockTTL time.Duration) *RedisStore {
	if lockTTL <= 0 {
		lockTTL = DefaultLockTTL
	}
	return &RedisStore{
		client:  client,
		locker:  redislock.New(client),
		lockTTL: lockTTL,
	}
}

// NewRedisStoreFromURL は redis://host:port/db 形式のURLからRedisStoreを作成する
func NewRedisStoreFromURL(url string, lockTTL time.Duration) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("RedisのURLが不正です: %w", err)
	}
	return NewRedisStore(redis.NewClient(opt), lockTTL), nil
}

// Close はRedisクライアントを閉じる
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (s *RedisStore) SetWithExpiry(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

// WithLock は key+":lock" のロックを取得してfnを実行する。
// ロックが取れるまではlockTTLを上限に再試行する
func (s *RedisStore) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	lockKey := key + ":lock"
	lock, err := s.locker.Obtain(ctx, lockKey, s.lockTTL, &redislock.Options{
		RetryStrategy: redislock.LinearBackoff(lockRetryBackoff),
	})
	if err != nil {
		return fmt.Errorf("ロック %s の取得に失敗: %w", lockKey, err)
	}
	defer func() {
		if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
			slog.Warn("failed to release lock", "key", lockKey, "error", err)
		}
	}()

	return fn(ctx)
}
