package spanarena

// AutoHandle owns exactly one reference on a slot. Release it with Put
// (typically deferred) or move the reference out with ToHandle; after either
// call the AutoHandle is invalid and further Puts are no-ops.
//
//	h, err := c.Alloc()
//	if err != nil {
//		return err
//	}
//	defer h.Put()
type AutoHandle[T any] struct {
	c   *Container[T]
	loc Location
}

// Valid reports whether the handle still owns a reference to a live slot.
func (h *AutoHandle[T]) Valid() bool {
	return h != nil && h.c != nil && h.c.Valid(h.loc)
}

// Loc returns the location of the slot, or InvalidLocation after Put or
// ToHandle.
func (h *AutoHandle[T]) Loc() Location {
	return h.loc
}

// Value returns the record for reading. Writes must go through Modify.
func (h *AutoHandle[T]) Value() *T {
	return h.c.Get(h.loc)
}

// Get returns a non-owning view of the slot, suitable for assigning to a
// ManualRef or for handing to code that must not take ownership.
func (h *AutoHandle[T]) Get() Ref[T] {
	return Ref[T]{c: h.c, loc: h.loc}
}

// Refcount returns the slot's current reference count.
func (h *AutoHandle[T]) Refcount() uint32 {
	return h.c.Refcount(h.loc)
}

// Modify returns the write gate for the slot.
func (h *AutoHandle[T]) Modify() *Modifier[T] {
	return newModifier(h.c, h.loc)
}

// ToHandle moves the owned reference into a plain Handle. The refcount is
// unchanged and the AutoHandle becomes invalid.
func (h *AutoHandle[T]) ToHandle() Handle[T] {
	if !h.c.Valid(h.loc) {
		h.c.cfg.violation("to_handle", h.loc)
		return Handle[T]{}
	}
	out := Handle[T]{loc: h.loc}
	h.loc = InvalidLocation
	return out
}

// Put releases the owned reference. Calling Put on an AutoHandle that was
// already released or converted does nothing.
func (h *AutoHandle[T]) Put() {
	if h == nil || !h.loc.IsValid() {
		return
	}
	loc := h.loc
	h.loc = InvalidLocation
	h.c.Release(loc)
}

// Handle is a bare location whose reference is accounted for by the caller.
// It does not know its container; every operation takes it explicitly.
type Handle[T any] struct {
	loc Location
}

// HandleAt wraps loc without touching its refcount. The caller asserts that
// one reference on loc is already owned on the handle's behalf.
func HandleAt[T any](loc Location) Handle[T] {
	return Handle[T]{loc: loc}
}

// Valid reports whether the handle's slot is still live in c.
func (h *Handle[T]) Valid(c *Container[T]) bool {
	return c.Valid(h.loc)
}

// Loc returns the handle's location.
func (h *Handle[T]) Loc() Location {
	return h.loc
}

// Access returns the record in c.
func (h *Handle[T]) Access(c *Container[T]) *T {
	return c.Get(h.loc)
}

// Modify returns the write gate for the handle's slot in c.
func (h *Handle[T]) Modify(c *Container[T]) *Modifier[T] {
	return newModifier(c, h.loc)
}

// Put releases the handle's reference and invalidates it. A second Put is
// a contract violation.
func (h *Handle[T]) Put(c *Container[T]) {
	loc := h.loc
	h.loc = InvalidLocation
	c.Release(loc)
}

// Ref is a non-owning view of a slot. It never changes refcounts; it is the
// read accessor for reference fields and the span argument of metrics
// visitors.
type Ref[T any] struct {
	c   *Container[T]
	loc Location
}

// Valid reports whether the referenced slot is live.
func (r Ref[T]) Valid() bool {
	return r.c != nil && r.c.Valid(r.loc)
}

// Loc returns the referenced location, InvalidLocation for an unset reference.
func (r Ref[T]) Loc() Location {
	return r.loc
}

// Value returns the referenced record.
func (r Ref[T]) Value() *T {
	return r.c.Get(r.loc)
}

// Refcount returns the referenced slot's reference count, 0 if not live.
func (r Ref[T]) Refcount() uint32 {
	if r.c == nil {
		return 0
	}
	return r.c.Refcount(r.loc)
}
