// Package spanarena implements the runtime object model of a schema-driven
// span store: reference-counted records in chunked containers, keyed lookup,
// reference fields between records, and time-bucketed metrics.
//
// # Overview
//
// A Container holds fixed-shape records ("spans") of one type. Every slot
// carries a refcount and a generation; a Location is the (index, generation)
// pair naming one slot, so a location that outlived its slot never matches
// the slot's next tenant. A slot is freed the moment its refcount reaches
// zero. There is no tracing and no deferred reclamation.
//
// Record types, key fields, reference policies and metric shapes come from a
// schema. Generated (or hand-written) glue instantiates the generic types in
// this package and adds typed accessors on top.
//
// # Handles
//
//	c := spanarena.NewContainer[Span]()
//
//	h, err := c.Alloc() // owns one reference
//	if err != nil {
//		return err
//	}
//	defer h.Put() // no-op if ownership was moved out below
//
//	keep := h.ToHandle() // move the reference into a plain Handle
//	...
//	keep.Put(c)
//
// AutoHandle owns exactly one reference. Handle is a bare location whose
// reference the caller tracks. Ref is a non-owning view.
//
// # Keyed Index
//
//	ix := spanarena.NewIndex(c,
//		func(s *Span) uint32 { return s.Number },
//		func(s *Span, k uint32) { s.Number = k })
//	h, err := ix.ByKey(42) // same slot for every ByKey(42) while it lives
//
// # Writes and Reference Fields
//
// Writes go through a Modifier. A container keeps a table from FieldID to
// hooks; a write to a field runs its hooks before returning. ManualRef is set
// by the caller, AutoRef is recomputed inside the hook, and CachedRef is only
// marked in the hook and recomputed on the next read.
//
// # Metrics
//
// A MetricsStore buckets samples per span into interval-wide timeslots. The
// first sample of a (span, timeslot) pair retains the span; Foreach drains
// closed timeslots, oldest first, and releases those references.
//
// # Thread Safety
//
// Nothing in this package locks. Use Exclusive, or keep all access on one
// goroutine.
package spanarena
