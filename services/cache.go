package services

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/panyam/ramtool/solver"
)

// ResultCache memoizes solver responses by scenario content.  A nil
// *ResultCache is valid and caches nothing.
type ResultCache struct {
	entries *lru.Cache[string, any]
	hits    atomic.Int64
	misses  atomic.Int64
}

// NewResultCache returns nil (no caching) when size <= 0.
func NewResultCache(size int) (*ResultCache, error) {
	if size <= 0 {
		return nil, nil
	}
	entries, err := lru.New[string, any](size)
	if err != nil {
		return nil, err
	}
	return &ResultCache{entries: entries}, nil
}

// ScenarioKey hashes the canonical JSON of a scenario under a solve kind.
// The encoder emits struct fields in declaration order so equal scenarios
// always hash the same.
func ScenarioKey(kind string, scenario *solver.Scenario) (string, error) {
	data, err := json.Marshal(scenario)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(append([]byte(kind+":"), data...))
	return hex.EncodeToString(sum[:]), nil
}

func (c *ResultCache) get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.entries.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

func (c *ResultCache) add(key string, v any) {
	if c != nil {
		c.entries.Add(key, v)
	}
}

// Len is the number of cached responses.
func (c *ResultCache) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}

func (c *ResultCache) Stats() (hits, misses int64) {
	if c == nil {
		return 0, 0
	}
	return c.hits.Load(), c.misses.Load()
}

// cached runs solve through the cache.  Errors are not cached.  Hits hand
// back the stored pointer, so callers must treat responses as read only.
func cached[T any](c *ResultCache, kind string, scenario *solver.Scenario, solve func(*solver.Scenario) (*T, error)) (*T, error) {
	if c == nil {
		return solve(scenario)
	}
	key, err := ScenarioKey(kind, scenario)
	if err != nil {
		return solve(scenario)
	}
	if v, ok := c.get(key); ok {
		if resp, ok := v.(*T); ok {
			return resp, nil
		}
	}
	resp, err := solve(scenario)
	if err != nil {
		return nil, err
	}
	c.add(key, resp)
	return resp, nil
}
