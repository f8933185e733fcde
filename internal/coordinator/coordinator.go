// Package coordinator collapses concurrent identical reads into a single
// in-flight operation and memoizes settled results for a caller-chosen TTL.
// It serializes nothing across distinct keys and deliberately stays out of
// the write path; writers evict stale entries with Invalidate or
// InvalidatePattern instead.
package coordinator

import (
	"regexp"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type cacheEntry struct {
	value    any
	storedAt time.Time
}

type Coordinator struct {
	group   singleflight.Group
	mu      sync.Mutex
	entries map[string]cacheEntry
	now     func() time.Time
}

func New() *Coordinator {
	return &Coordinator{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Do runs task with at-most-one concurrent execution per key. Callers that
// arrive while an execution for key is pending receive its result, error
// included; once settled the key is forgotten and the next call starts
// fresh.
func (coord *Coordinator) Do(key string, task func() (any, error)) (any, error) {
	value, err, _ := coord.group.Do(key, task)
	return value, err
}

// GetCached returns the memoized value for key when it is no older than
// ttl, otherwise invokes fetch (deduplicated through Do) and stores the
// result. A failed fetch caches nothing.
func (coord *Coordinator) GetCached(key string, ttl time.Duration, fetch func() (any, error)) (any, error) {
	if value, ok := coord.lookup(key, ttl); ok {
		return value, nil
	}

	return coord.Do(key, func() (any, error) {
		// A concurrent caller may have settled and cached while this one
		// waited on the in-flight map.
		if value, ok := coord.lookup(key, ttl); ok {
			return value, nil
		}

		value, err := fetch()
		if err != nil {
			return nil, err
		}

		coord.mu.Lock()
		coord.entries[key] = cacheEntry{value: value, storedAt: coord.now()}
		coord.mu.Unlock()
		return value, nil
	})
}

func (coord *Coordinator) Invalidate(key string) {
	coord.mu.Lock()
	defer coord.mu.Unlock()
	delete(coord.entries, key)
}

// InvalidatePattern evicts every cached key matching pattern and returns
// how many entries were dropped.
func (coord *Coordinator) InvalidatePattern(pattern *regexp.Regexp) int {
	coord.mu.Lock()
	defer coord.mu.Unlock()

	dropped := 0
	for key := range coord.entries {
		if pattern.MatchString(key) {
			delete(coord.entries, key)
			dropped++
		}
	}
	return dropped
}

func (coord *Coordinator) lookup(key string, ttl time.Duration) (any, bool) {
	coord.mu.Lock()
	defer coord.mu.Unlock()

	entry, ok := coord.entries[key]
	if !ok {
		return nil, false
	}
	if coord.now().Sub(entry.storedAt) > ttl {
		delete(coord.entries, key)
		return nil, false
	}
	return entry.value, true
}
