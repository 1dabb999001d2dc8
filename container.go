package spanarena

import (
	"math"

	"go.uber.org/zap"
)

// slot is one record plus its liveness bookkeeping.
type slot[T any] struct {
	rec        T
	refcount   uint32
	generation uint32
}

// chunk is a fixed-size run of slots. Chunks are never reallocated, so record
// pointers stay put while the container grows.
type chunk[T any] struct {
	slots []slot[T]
}

// Container is a pool of fixed-shape records addressed by Location. Slots are
// reference counted: a slot is freed the instant its count reaches zero and
// its index goes back on the free list. Not goroutine-safe; see Exclusive.
type Container[T any] struct {
	cfg *config

	chunks []chunk[T]
	free   []uint32
	next   uint32 // first never-used slot index
	live   int

	allocs uint64
	frees  uint64

	onFree  []func(Location, *T)
	onWrite map[FieldID][]func(Location, *T) error
}

// NewContainer creates an empty container. The first chunk is allocated
// lazily on the first Alloc.
func NewContainer[T any](opts ...Option) *Container[T] {
	return &Container[T]{
		cfg:     resolveConfig(opts...),
		onWrite: make(map[FieldID][]func(Location, *T) error),
	}
}

// Name returns the label given with WithName.
func (c *Container[T]) Name() string {
	return c.cfg.name
}

// Len returns the number of live slots.
func (c *Container[T]) Len() int {
	return c.live
}

// Alloc takes a free slot (growing the pool if none is free), sets its
// refcount to 1 and returns an AutoHandle owning that reference. The record
// is zero-valued. ErrExhausted is returned when no slot can be addressed.
func (c *Container[T]) Alloc() (*AutoHandle[T], error) {
	loc, err := c.alloc()
	if err != nil {
		return nil, err
	}
	return &AutoHandle[T]{c: c, loc: loc}, nil
}

func (c *Container[T]) alloc() (Location, error) {
	var idx uint32
	if n := len(c.free); n > 0 {
		idx = c.free[n-1]
		c.free = c.free[:n-1]
	} else {
		if !c.hasRoom() {
			c.cfg.logger.Warn("container exhausted", zap.Int("live", c.live))
			return InvalidLocation, ErrExhausted
		}
		if int(c.next) == len(c.chunks)*c.cfg.chunkSize {
			c.grow()
		}
		idx = c.next
		c.next++
	}

	s := c.slot(idx)
	s.generation++
	if s.generation == 0 {
		// Skip the invalid sentinel on wrap-around.
		s.generation = 1
	}
	s.refcount = 1
	c.live++
	c.allocs++
	return Location{Index: idx, Generation: s.generation}, nil
}

func (c *Container[T]) hasRoom() bool {
	if c.cfg.maxSlots > 0 && int(c.next) >= c.cfg.maxSlots {
		return false
	}
	return c.next < math.MaxUint32
}

// grow appends one chunk of chunkSize slots.
func (c *Container[T]) grow() {
	c.chunks = append(c.chunks, chunk[T]{slots: make([]slot[T], c.cfg.chunkSize)})
	c.cfg.logger.Debug("container grew",
		zap.Int("chunks", len(c.chunks)),
		zap.Int("capacity", len(c.chunks)*c.cfg.chunkSize),
	)
}

func (c *Container[T]) slot(idx uint32) *slot[T] {
	size := uint32(c.cfg.chunkSize)
	return &c.chunks[idx/size].slots[idx%size]
}

// lookup returns the slot for loc if loc names a live slot.
func (c *Container[T]) lookup(loc Location) (*slot[T], bool) {
	if !loc.IsValid() || loc.Index >= c.next {
		return nil, false
	}
	s := c.slot(loc.Index)
	if s.generation != loc.Generation || s.refcount == 0 {
		return nil, false
	}
	return s, true
}

// Valid reports whether loc names a live slot of this container.
func (c *Container[T]) Valid(loc Location) bool {
	_, ok := c.lookup(loc)
	return ok
}

// Get returns the record at loc. The pointer stays valid for as long as the
// slot is live. A stale location is a contract violation; with debug checks
// off Get returns nil.
func (c *Container[T]) Get(loc Location) *T {
	s, ok := c.lookup(loc)
	if !ok {
		c.cfg.violation("get", loc)
		return nil
	}
	return &s.rec
}

// Refcount returns the number of references held on loc, or 0 if loc is not
// live.
func (c *Container[T]) Refcount(loc Location) uint32 {
	s, ok := c.lookup(loc)
	if !ok {
		return 0
	}
	return s.refcount
}

// Retain adds one reference to loc.
func (c *Container[T]) Retain(loc Location) {
	s, ok := c.lookup(loc)
	if !ok {
		c.cfg.violation("retain", loc)
		return
	}
	if s.refcount == math.MaxUint32 {
		c.cfg.violation("retain overflow", loc)
		return
	}
	s.refcount++
}

// Release drops one reference from loc and frees the slot when the count
// reaches zero.
func (c *Container[T]) Release(loc Location) {
	s, ok := c.lookup(loc)
	if !ok {
		c.cfg.violation("release", loc)
		return
	}
	s.refcount--
	if s.refcount == 0 {
		c.free1(loc, s)
	}
}

// free1 runs the free observers, then clears the record and returns the
// index to the free list. Observers may release slots of any container,
// this one included.
func (c *Container[T]) free1(loc Location, s *slot[T]) {
	for _, fn := range c.onFree {
		fn(loc, &s.rec)
	}
	var zero T
	s.rec = zero
	c.free = append(c.free, loc.Index)
	c.live--
	c.frees++
	c.cfg.logger.Debug("slot freed", zap.Stringer("loc", loc))
}

// OnFree registers fn to run whenever a slot is about to be freed. The
// record still holds its final field values when fn runs. Observers run in
// registration order.
func (c *Container[T]) OnFree(fn func(loc Location, rec *T)) {
	c.onFree = append(c.onFree, fn)
}

// Each calls fn for every live slot in index order until fn returns false.
// fn must not free or allocate slots.
func (c *Container[T]) Each(fn func(loc Location, rec *T) bool) {
	for idx := uint32(0); idx < c.next; idx++ {
		s := c.slot(idx)
		if s.refcount == 0 {
			continue
		}
		if !fn(Location{Index: idx, Generation: s.generation}, &s.rec) {
			return
		}
	}
}

// Ref returns a non-owning view of loc.
func (c *Container[T]) Ref(loc Location) Ref[T] {
	return Ref[T]{c: c, loc: loc}
}
