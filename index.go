package spanarena

import (
	"fmt"

	"go.uber.org/zap"
)

// Index maps a key field of T to the slot holding that key. ByKey is
// idempotent: while a slot for k is live every ByKey(k) returns that slot.
// The entry is erased in the same step that frees the slot, so a later
// ByKey(k) allocates a fresh record. The index remembers the key each slot was
// allocated under; rewriting the key field afterwards does not rekey it.
type Index[T any, K comparable] struct {
	c       *Container[T]
	entries map[K]Location
	keys    map[Location]K
	keyOf   func(*T) K
	setKey  func(*T, K)
}

// NewIndex layers an index over c. keyOf reads the key field of a record and
// setKey writes it into a newly allocated one. Every slot of c is expected to
// be allocated through the index.
func NewIndex[T any, K comparable](c *Container[T], keyOf func(*T) K, setKey func(*T, K)) *Index[T, K] {
	ix := &Index[T, K]{
		c:       c,
		entries: make(map[K]Location),
		keys:    make(map[Location]K),
		keyOf:   keyOf,
		setKey:  setKey,
	}
	c.OnFree(ix.erase)
	return ix
}

// erase drops the mapping for a slot that is being freed.
func (ix *Index[T, K]) erase(loc Location, rec *T) {
	k, ok := ix.keys[loc]
	if !ok {
		return
	}
	delete(ix.keys, loc)
	if cur := ix.keyOf(rec); cur != k {
		ix.c.cfg.logger.Debug("indexed key field rewritten",
			zap.Stringer("loc", loc),
			zap.Any("indexed", k),
			zap.Any("current", cur))
	}
	if cur, ok := ix.entries[k]; ok && cur == loc {
		delete(ix.entries, k)
	}
}

// KeyOf returns the key loc was allocated under, which may differ from the
// record's current key field if that field was rewritten.
func (ix *Index[T, K]) KeyOf(loc Location) (K, bool) {
	k, ok := ix.keys[loc]
	return k, ok
}

// Container returns the container the index is layered over.
func (ix *Index[T, K]) Container() *Container[T] {
	return ix.c
}

// Len returns the number of distinct live keys.
func (ix *Index[T, K]) Len() int {
	return len(ix.entries)
}

// ByKey returns an AutoHandle on the slot for k, allocating and keying a new
// slot if none is live. Either way the caller owns one new reference.
func (ix *Index[T, K]) ByKey(k K) (*AutoHandle[T], error) {
	loc, err := ix.acquire(k)
	if err != nil {
		return nil, err
	}
	return &AutoHandle[T]{c: ix.c, loc: loc}, nil
}

// acquire is ByKey without the handle wrapper, for reference fields that keep
// the owned reference as a bare location.
func (ix *Index[T, K]) acquire(k K) (Location, error) {
	if loc, ok := ix.entries[k]; ok {
		ix.c.Retain(loc)
		return loc, nil
	}
	loc, err := ix.c.alloc()
	if err != nil {
		return InvalidLocation, fmt.Errorf("index lookup %v: %w", k, err)
	}
	ix.setKey(&ix.c.slot(loc.Index).rec, k)
	ix.entries[k] = loc
	ix.keys[loc] = k
	return loc, nil
}

// Lookup returns a non-owning view of the slot for k without allocating.
func (ix *Index[T, K]) Lookup(k K) (Ref[T], bool) {
	loc, ok := ix.entries[k]
	if !ok {
		return Ref[T]{c: ix.c}, false
	}
	return Ref[T]{c: ix.c, loc: loc}, true
}
