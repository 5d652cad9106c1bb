package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrRunInProgress is returned when another process holds the run lock.
var ErrRunInProgress = errors.New("another extraction run holds the lock")

// RunLocker guards a store against concurrent runs.
type RunLocker interface {
	Acquire(ctx context.Context) (release func(context.Context) error, err error)
}

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisRunLock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisRunLock locks key in Redis for at most ttl. The key should identify the
// store, so runs against different databases do not block each other.
func NewRedisRunLock(client *redis.Client, key string, ttl time.Duration) RunLocker {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &redisRunLock{client: client, key: key, ttl: ttl}
}

func (l *redisRunLock) Acquire(ctx context.Context) (func(context.Context) error, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, ErrRunInProgress
	}

	release := func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{l.key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("release run lock: %w", err)
		}
		return nil
	}
	return release, nil
}

type noopRunLock struct{}

// NoopRunLock is used when no Redis is configured.
func NoopRunLock() RunLocker {
	return noopRunLock{}
}

func (noopRunLock) Acquire(context.Context) (func(context.Context) error, error) {
	return func(context.Context) error { return nil }, nil
}
