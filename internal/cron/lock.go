package cron

import (
	"context"
	"time"

	"github.com/sanda94/super-admin-backend/pkg/redis"
)

// Locker serializes job execution across worker replicas.
type Locker interface {
	// Acquire returns true when the named lock was obtained.
	Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, name string) error
}

// RedisLock implements Locker on a shared redis instance. The TTL bounds how
// long a crashed worker can hold the lock.
type RedisLock struct {
	client *redis.Client
	owner  string
}

// NewRedisLock returns a redis-backed locker. Owner identifies this replica in
// the lock value for debugging.
func NewRedisLock(client *redis.Client, owner string) *RedisLock {
	return &RedisLock{client: client, owner: owner}
}

func (l *RedisLock) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	return l.client.SetNX(ctx, l.client.LockKey(name), l.owner, ttl)
}

func (l *RedisLock) Release(ctx context.Context, name string) error {
	return l.client.Del(ctx, l.client.LockKey(name))
}
