package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const lockoutKeyPrefix = "invento:login_failures:"

// LockoutStore реализует repository.LoginLockoutStore поверх Redis.
// Счетчик живет в ключе с TTL, окно отсчитывается от первой неудачи.
type LockoutStore struct {
	client *goredis.Client
}

// NewLockoutStore создает новый экземпляр LockoutStore
func NewLockoutStore(client *goredis.Client) *LockoutStore {
	return &LockoutStore{client: client}
}

// RecordFailure увеличивает счетчик неудач и ставит TTL на первой неудаче
func (s *LockoutStore) RecordFailure(ctx context.Context, key string, window time.Duration) (int64, error) {
	redisKey := lockoutKeyPrefix + key

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("record login failure: %w", err)
	}
	return incr.Val(), nil
}

// Failures возвращает текущее значение счетчика
func (s *LockoutStore) Failures(ctx context.Context, key string) (int64, error) {
	n, err := s.client.Get(ctx, lockoutKeyPrefix+key).Int64()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("get login failures: %w", err)
	}
	return n, nil
}

// Clear сбрасывает счетчик после успешного входа
func (s *LockoutStore) Clear(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, lockoutKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("clear login failures: %w", err)
	}
	return nil
}
