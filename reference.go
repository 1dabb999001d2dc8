package spanarena

// The reference field types below are embedded in records. Each one owns at
// most one reference on a slot of a target container and always releases the
// old target before (or, for ManualRef, right after) adopting a new one. None
// of them release anything on their own when the owning record dies: schema
// code calls Release from the owning container's OnFree observer.

// ManualRef is a reference field set explicitly by the caller. Nothing
// recomputes it.
type ManualRef[T any] struct {
	loc Location
}

// Assign points r at target: target is retained first, then the previous
// target (if any) is released. Assigning InvalidLocation clears the field.
func (r *ManualRef[T]) Assign(c *Container[T], target Location) {
	if target.IsValid() {
		c.Retain(target)
	}
	old := r.loc
	r.loc = target
	if old.IsValid() {
		c.Release(old)
	}
}

// Release drops the held reference, if any.
func (r *ManualRef[T]) Release(c *Container[T]) {
	r.Assign(c, InvalidLocation)
}

// Loc returns the referenced location or InvalidLocation.
func (r *ManualRef[T]) Loc() Location {
	return r.loc
}

// Ref returns a read accessor over the referenced slot.
func (r *ManualRef[T]) Ref(c *Container[T]) Ref[T] {
	return Ref[T]{c: c, loc: r.loc}
}

// AutoRef is a reference field resolved through an Index from a key computed
// off other fields of the owning record. Update is called inline with each
// write to one of those fields, so the field is always current. Until the
// first such write it stays invalid and holds nothing.
type AutoRef[T any, K comparable] struct {
	loc Location
	key K
}

// Update resolves the reference for key. If key is the one already resolved
// nothing happens; otherwise the old target is released and ByKey(key)
// acquires the new one. On error the field is left invalid.
func (r *AutoRef[T, K]) Update(ix *Index[T, K], key K) error {
	if r.loc.IsValid() && r.key == key {
		return nil
	}
	r.Release(ix)
	loc, err := ix.acquire(key)
	if err != nil {
		return err
	}
	r.loc, r.key = loc, key
	return nil
}

// Release drops the held reference, if any, leaving the field unresolved.
func (r *AutoRef[T, K]) Release(ix *Index[T, K]) {
	if !r.loc.IsValid() {
		return
	}
	old := r.loc
	r.loc = InvalidLocation
	ix.c.Release(old)
}

// Loc returns the resolved location or InvalidLocation.
func (r *AutoRef[T, K]) Loc() Location {
	return r.loc
}

// Key returns the key the field was last resolved with.
func (r *AutoRef[T, K]) Key() K {
	return r.key
}

// Ref returns a read accessor over the resolved slot.
func (r *AutoRef[T, K]) Ref(ix *Index[T, K]) Ref[T] {
	return Ref[T]{c: ix.c, loc: r.loc}
}

// CachedRef tracks the same dependencies as AutoRef but only records the new
// key on write. The index is consulted on the next Resolve, so any number of
// writes between reads cost at most one release and one lookup.
type CachedRef[T any, K comparable] struct {
	loc      Location
	resolved K
	key      K
	dirty    bool
}

// Mark records key as the wanted key and flags the field for recomputation.
// No container or index operation happens here.
func (r *CachedRef[T, K]) Mark(key K) {
	r.key = key
	r.dirty = true
}

// Dirty reports whether a Mark is waiting for the next Resolve.
func (r *CachedRef[T, K]) Dirty() bool {
	return r.dirty
}

// Resolve brings the field up to date and returns a read accessor. When
// dirty and the wanted key differs from the resolved one (or nothing is
// resolved yet) the old target is released and the new one acquired. A
// field that was never marked resolves to an invalid reference. On error the
// field stays dirty so a later Resolve retries.
func (r *CachedRef[T, K]) Resolve(ix *Index[T, K]) (Ref[T], error) {
	if r.dirty {
		if !r.loc.IsValid() || r.resolved != r.key {
			r.Release(ix)
			loc, err := ix.acquire(r.key)
			if err != nil {
				return Ref[T]{c: ix.c}, err
			}
			r.loc, r.resolved = loc, r.key
		}
		r.dirty = false
	}
	return Ref[T]{c: ix.c, loc: r.loc}, nil
}

// Release drops the held reference, if any. A pending Mark survives, so the
// next Resolve acquires the wanted key again.
func (r *CachedRef[T, K]) Release(ix *Index[T, K]) {
	if !r.loc.IsValid() {
		return
	}
	old := r.loc
	r.loc = InvalidLocation
	ix.c.Release(old)
}

// Loc returns the currently held location without resolving.
func (r *CachedRef[T, K]) Loc() Location {
	return r.loc
}
