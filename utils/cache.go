package utils

import (
	"sync"
	"sync/atomic"

	"github.com/dolthub/swiss"
	"github.com/floatdrop/lru"
)

type Cache[K comparable, V any] interface {
	Get(key K) (value V, ok bool)
	Set(key K, value V)
	Delete(key K)
	Clear()
	Stats() (hits, misses uint64)
}

type cacheStats struct {
	hits   atomic.Uint64
	misses atomic.Uint64
}

func (s *cacheStats) hit(ok bool) {
	if ok {
		s.hits.Add(1)
	} else {
		s.misses.Add(1)
	}
}

func (s *cacheStats) Stats() (hits, misses uint64) {
	return s.hits.Load(), s.misses.Load()
}

// LRUCache evicts the least recently used entry once size entries are stored
type LRUCache[K comparable, V any] struct {
	cacheStats
	lock   sync.Mutex
	size   int
	values *lru.LRU[K, V]
}

func NewLRUCache[K comparable, V any](size int) *LRUCache[K, V] {
	return &LRUCache[K, V]{
		size:   size,
		values: lru.New[K, V](size),
	}
}

func (c *LRUCache[K, V]) Get(key K) (value V, ok bool) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if v := c.values.Get(key); v != nil {
		value, ok = *v, true
	}
	c.hit(ok)
	return value, ok
}

func (c *LRUCache[K, V]) Set(key K, value V) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.values.Set(key, value)
}

func (c *LRUCache[K, V]) Delete(key K) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.values.Remove(key)
}

func (c *LRUCache[K, V]) Clear() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.values = lru.New[K, V](c.size)
}

// MapCache keeps up to size entries, further entries are dropped until Clear is called
type MapCache[K comparable, V any] struct {
	cacheStats
	lock   sync.RWMutex
	size   int
	values *swiss.Map[K, V]
}

func NewMapCache[K comparable, V any](size int) *MapCache[K, V] {
	return &MapCache[K, V]{
		size:   size,
		values: swiss.NewMap[K, V](uint32(size)),
	}
}

func (c *MapCache[K, V]) Get(key K) (value V, ok bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	value, ok = c.values.Get(key)
	c.hit(ok)
	return value, ok
}

func (c *MapCache[K, V]) Set(key K, value V) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.values.Count() >= c.size && !c.values.Has(key) {
		return
	}
	c.values.Put(key, value)
}

func (c *MapCache[K, V]) Delete(key K) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.values.Delete(key)
}

func (c *MapCache[K, V]) Clear() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.values.Clear()
}

// NilCache stores nothing
type NilCache[K comparable, V any] struct {
	cacheStats
}

func NewNilCache[K comparable, V any]() *NilCache[K, V] {
	return &NilCache[K, V]{}
}

func (c *NilCache[K, V]) Get(K) (value V, ok bool) {
	c.hit(false)
	return value, false
}

func (c *NilCache[K, V]) Set(K, V) {}

func (c *NilCache[K, V]) Delete(K) {}

func (c *NilCache[K, V]) Clear() {}
