package evaluation

import (
	"context"
	"sync"
	"time"
)

// DefaultCacheTTL is how long an evaluation result is served from cache
const DefaultCacheTTL = 30 * time.Minute

/*
Cache is an interface to a store of evaluation results by algorithm name.

Its Get method takes an algorithm name and returns the cached result for
it, or nil if there is none or it has expired.

Its Set method takes a result and a time to live and caches the result
under its algorithm name.

Its Invalidate method drops every cached result.
*/
type Cache interface {
	Get(ctx context.Context, algorithm string) (*Result, error)
	Set(ctx context.Context, r *Result, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

type cacheEntry struct {
	result  *Result
	expires time.Time
}

type memoryCache struct {
	entries map[string]cacheEntry
	now     func() time.Time
	lock    *sync.Mutex
}

/*
NewMemoryCache takes a function returning the current time, time.Now if
nil, and returns a Cache in process memory that expires entries with it.
*/
func NewMemoryCache(now func() time.Time) Cache {
	if now == nil {
		now = time.Now
	}
	return &memoryCache{entries: make(map[string]cacheEntry), now: now, lock: &sync.Mutex{}}
}

func (mc *memoryCache) Get(ctx context.Context, algorithm string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mc.lock.Lock()
	defer mc.lock.Unlock()
	e, ok := mc.entries[algorithm]
	if !ok {
		return nil, nil
	}
	if !mc.now().Before(e.expires) {
		delete(mc.entries, algorithm)
		return nil, nil
	}
	return e.result, nil
}

func (mc *memoryCache) Set(ctx context.Context, r *Result, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mc.lock.Lock()
	defer mc.lock.Unlock()
	mc.entries[r.Algorithm] = cacheEntry{r, mc.now().Add(ttl)}
	return nil
}

func (mc *memoryCache) Invalidate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mc.lock.Lock()
	defer mc.lock.Unlock()
	mc.entries = make(map[string]cacheEntry)
	return nil
}
