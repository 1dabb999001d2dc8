package spanarena

// FieldID names a record field for the purpose of write tracking. Schemas
// number their fields; the values only need to be unique per record type.
type FieldID uint16

// OnWrite registers hook as dependent on field: every write to field made
// through a Modifier runs hook after the write is applied and before the
// write returns. Auto and cached references hang their recomputation here.
func (c *Container[T]) OnWrite(field FieldID, hook func(loc Location, rec *T) error) {
	c.onWrite[field] = append(c.onWrite[field], hook)
}

// Modifier is the write gate for one slot. Field writes made through Set fire
// the hooks registered with OnWrite; writes made any other way do not.
type Modifier[T any] struct {
	c   *Container[T]
	loc Location
}

func newModifier[T any](c *Container[T], loc Location) *Modifier[T] {
	if !c.Valid(loc) {
		c.cfg.violation("modify", loc)
	}
	return &Modifier[T]{c: c, loc: loc}
}

// Set applies write to the record and then runs field's dependent hooks in
// registration order. The first hook error stops the chain and is returned;
// the write itself is kept.
func (m *Modifier[T]) Set(field FieldID, write func(rec *T)) error {
	rec := m.c.Get(m.loc)
	if rec == nil {
		return ErrInvalidLocation
	}
	write(rec)
	for _, hook := range m.c.onWrite[field] {
		if err := hook(m.loc, rec); err != nil {
			return err
		}
	}
	return nil
}

// Record returns the record behind the gate for reading.
func (m *Modifier[T]) Record() *T {
	return m.c.Get(m.loc)
}

// Loc returns the location being modified.
func (m *Modifier[T]) Loc() Location {
	return m.loc
}
