/*
DESCRIPTION
  cache.go implements the engine's per-pipeline result cache (§4.7): keyed
  by (piece, roi_in, roi_out, parameter-hash, descriptor-hash), guaranteeing
  at-most-one concurrent execution per key. A second caller for the same
  key blocks until the first completes (or fails) and reuses the result.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package engine

import (
	"container/list"
	"hash/fnv"
	"sync"

	"github.com/rawforge/pixelpipe/pixel"
)

// Key identifies one cacheable piece of work.
type Key struct {
	PieceID    string
	RoiIn      pixel.ROI
	RoiOut     pixel.ROI
	ParamHash  uint64
	DscHash    uint64
}

// entry is one in-flight or completed unit of cached work.
type entry struct {
	key  Key
	done chan struct{}
	buf  *pixel.Buffer
	dsc  pixel.Descriptor
	err  error
}

// Cache is a pipeline-scoped cache of (piece, ROI, params, descriptor) ->
// rendered buffer. It is safe for concurrent use. When limit is nonzero,
// the least-recently-used entry is evicted whenever a Compute would
// otherwise grow the cache past limit.
type Cache struct {
	mu      sync.Mutex
	limit   uint
	entries map[Key]*list.Element
	order   *list.List // list.Element.Value is *entry; front = most recent.
}

// NewCache returns an empty Cache. A limit of 0 means unbounded: no entry
// is ever evicted for size.
func NewCache(limit uint) *Cache {
	return &Cache{
		limit:   limit,
		entries: make(map[Key]*list.Element),
		order:   list.New(),
	}
}

// Compute returns the cached (buf, dsc) for key if present, otherwise
// calls fn exactly once (even under concurrent callers for the same key)
// and caches its result. A failed computation (fn returning a non-nil
// error) is cached as a failed entry and not retried by subsequent
// callers with the same key — matching "any in-flight cache entry is
// marked failed" on cancellation.
func (c *Cache) Compute(key Key, fn func() (*pixel.Buffer, pixel.Descriptor, error)) (*pixel.Buffer, pixel.Descriptor, error) {
	c.mu.Lock()
	if el, ok := c.entries[key]; ok {
		c.order.MoveToFront(el)
		e := el.Value.(*entry)
		c.mu.Unlock()
		<-e.done
		return e.buf, e.dsc, e.err
	}
	e := &entry{key: key, done: make(chan struct{})}
	c.entries[key] = c.order.PushFront(e)
	c.evictLocked()
	c.mu.Unlock()

	buf, dsc, err := fn()
	e.buf, e.dsc, e.err = buf, dsc, err
	close(e.done)
	return buf, dsc, err
}

// evictLocked drops the least-recently-used entries until the cache is at
// or under its configured limit. Must be called with c.mu held.
func (c *Cache) evictLocked() {
	if c.limit == 0 {
		return
	}
	for uint(c.order.Len()) > c.limit {
		oldest := c.order.Back()
		if oldest == nil {
			return
		}
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*entry).key)
	}
}

// InvalidatePiece drops every cached entry belonging to pieceID. Called
// when a piece's enabled state flips or its descriptor changes outside of
// the key's own hashing (defensive cleanup; most invalidation happens
// naturally because a changed parameter or descriptor hash changes the
// key itself).
func (c *Cache) InvalidatePiece(pieceID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, el := range c.entries {
		if k.PieceID == pieceID {
			c.order.Remove(el)
			delete(c.entries, k)
		}
	}
}

// Clear empties the cache. Called when the pipeline is freed.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Key]*list.Element)
	c.order = list.New()
}

// HashParams returns a stable hash of a piece's committed parameter
// bytes, used as the ParamHash component of a cache Key.
func HashParams(params []byte) uint64 {
	h := fnv.New64a()
	h.Write(params)
	return h.Sum64()
}

// HashDescriptor returns a stable hash of a buffer descriptor, used as the
// DscHash component of a cache Key.
func HashDescriptor(d pixel.Descriptor) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(v uint64) {
		for i := 0; i < 8; i++ {
			buf[i] = byte(v >> (8 * i))
		}
		h.Write(buf[:])
	}
	put(uint64(d.Channels))
	put(uint64(d.Datatype))
	put(uint64(d.Colorspace))
	put(uint64(d.Filters.Kind))
	put(uint64(d.Filters.Mask))
	return h.Sum64()
}
