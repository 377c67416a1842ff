package reservations

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// AdmissionLocker serializes admissions that compete for the same physical
// floor on the same date. The duplicate check, the conflict check, and the
// insert run under one lock, so two overlapping requests can never both pass
// the conflict check and double-book a court.
type AdmissionLocker interface {
	// Acquire blocks until the (groupKey, date) lock is held or ctx/wait
	// expires, then returns a release function.
	Acquire(ctx context.Context, groupKey, date string) (func(), error)
}

// ErrLockNotAcquired is returned when the admission lock could not be taken
// within the configured wait. The caller treats it as a transient store
// condition: nothing has been written, retry is safe.
var ErrLockNotAcquired = fmt.Errorf("%w: admission lock busy", ErrStoreUnavailable)

const lockKeyPrefix = "campusmind:admission:lock:"

// Lua release script: only the holder that set the token may delete the key,
// so a lock that expired and was re-acquired by another request is never
// released by the first holder.
const luaReleaseLock = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0
`

// redisLocker implements AdmissionLocker with a Redis SET NX PX lock.
type redisLocker struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
}

// NewRedisLocker creates a Redis-backed admission locker. ttl bounds how
// long a crashed holder can stall a (group, date) key; wait bounds how long
// a competing request queues before failing safe.
func NewRedisLocker(client *redis.Client, ttl, wait time.Duration) AdmissionLocker {
	return &redisLocker{client: client, ttl: ttl, wait: wait}
}

func (l *redisLocker) Acquire(ctx context.Context, groupKey, date string) (func(), error) {
	key := lockKeyPrefix + groupKey + ":" + date
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		if ok {
			release := func() {
				releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				_ = l.client.Eval(releaseCtx, luaReleaseLock, []string{key}, token).Err()
			}
			return release, nil
		}

		if time.Now().After(deadline) {
			return nil, ErrLockNotAcquired
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(25 * time.Millisecond):
		}
	}
}

// localLocker is the in-process fallback used when Redis is not configured
// (single-instance deployments, tests). Same serialization guarantee, scoped
// to one process.
type localLocker struct {
	mu    sync.Mutex
	locks map[string]*localLockEntry
}

type localLockEntry struct {
	mu   sync.Mutex
	refs int
}

// NewLocalLocker creates an in-process admission locker.
func NewLocalLocker() AdmissionLocker {
	return &localLocker{locks: make(map[string]*localLockEntry)}
}

func (l *localLocker) Acquire(ctx context.Context, groupKey, date string) (func(), error) {
	key := groupKey + ":" + date

	l.mu.Lock()
	entry, ok := l.locks[key]
	if !ok {
		entry = &localLockEntry{}
		l.locks[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	release := func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
	return release, nil
}
