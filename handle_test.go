package spanarena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAutoHandleToHandle(t *testing.T) {
	c := NewContainer[record]()

	ah, err := c.Alloc()
	require.NoError(t, err)
	loc := ah.Loc()

	h := ah.ToHandle()
	require.False(t, ah.Valid())
	require.Equal(t, InvalidLocation, ah.Loc())
	require.True(t, h.Valid(c))
	require.Equal(t, loc, h.Loc())
	require.Equal(t, 1, c.Len(), "conversion moves the reference")
	require.Equal(t, uint32(1), c.Refcount(loc))

	// The deferred Put of a converted AutoHandle must not release again.
	ah.Put()
	require.Equal(t, 1, c.Len())

	require.NoError(t, h.Modify(c).Set(0, func(r *record) { r.key = "moved" }))
	require.Equal(t, "moved", h.Access(c).key)

	h.Put(c)
	require.False(t, h.Valid(c))
	require.Equal(t, 0, c.Len())
}

func TestHandleDoublePutPanics(t *testing.T) {
	c := NewContainer[record]()

	ah, err := c.Alloc()
	require.NoError(t, err)
	h := ah.ToHandle()
	h2 := h

	h.Put(c)
	require.Panics(t, func() { h2.Put(c) })
	require.Equal(t, 0, c.Len())
}

func TestHandleAt(t *testing.T) {
	c := NewContainer[record]()

	ah, err := c.Alloc()
	require.NoError(t, err)
	defer ah.Put()

	c.Retain(ah.Loc())
	h := HandleAt[record](ah.Loc())
	require.Equal(t, uint32(2), ah.Refcount())

	h.Put(c)
	require.Equal(t, uint32(1), ah.Refcount())
}

func TestRef(t *testing.T) {
	c := NewContainer[record]()

	var zero Ref[record]
	require.False(t, zero.Valid())
	require.Equal(t, uint32(0), zero.Refcount())

	ah, err := c.Alloc()
	require.NoError(t, err)
	require.NoError(t, ah.Modify().Set(0, func(r *record) { r.value = 3 }))

	ref := ah.Get()
	require.True(t, ref.Valid())
	require.Equal(t, ah.Loc(), ref.Loc())
	require.Equal(t, 3, ref.Value().value)
	require.Equal(t, uint32(1), ref.Refcount(), "a Ref does not own a reference")

	ah.Put()
	require.False(t, ref.Valid())
	require.Equal(t, uint32(0), ref.Refcount())
}

func TestLocation(t *testing.T) {
	require.False(t, InvalidLocation.IsValid())
	require.Equal(t, "loc(invalid)", InvalidLocation.String())

	l := Location{Index: 3, Generation: 2}
	require.True(t, l.IsValid())
	require.Equal(t, "loc(3@2)", l.String())

	seen := map[Location]bool{l: true}
	require.True(t, seen[Location{Index: 3, Generation: 2}])
	require.False(t, seen[Location{Index: 3, Generation: 3}])
}
