package spanarena

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func newRecordIndex(opts ...Option) *Index[record, string] {
	return NewIndex(NewContainer[record](opts...),
		func(r *record) string { return r.key },
		func(r *record, k string) { r.key = k },
	)
}

func TestIndexByKeyIdempotent(t *testing.T) {
	ix := newRecordIndex()

	a, err := ix.ByKey("k")
	require.NoError(t, err)
	defer a.Put()
	require.Equal(t, "k", a.Value().key)

	b, err := ix.ByKey("k")
	require.NoError(t, err)
	defer b.Put()

	require.Equal(t, a.Loc(), b.Loc())
	require.Equal(t, 1, ix.Container().Len())
	require.Equal(t, 1, ix.Len())
	require.Equal(t, uint32(2), a.Refcount())
}

func TestIndexDistinctKeys(t *testing.T) {
	ix := newRecordIndex()

	a, err := ix.ByKey("k1")
	require.NoError(t, err)
	defer a.Put()
	b, err := ix.ByKey("k2")
	require.NoError(t, err)
	defer b.Put()

	require.NotEqual(t, a.Loc(), b.Loc())
	require.Equal(t, 2, ix.Container().Len())
	require.Equal(t, 2, ix.Len())
}

func TestIndexEraseOnFree(t *testing.T) {
	ix := newRecordIndex()

	a, err := ix.ByKey("k")
	require.NoError(t, err)
	require.NoError(t, a.Modify().Set(0, func(r *record) { r.value = 99 }))
	old := a.Loc()
	a.Put()

	require.Equal(t, 0, ix.Len())
	_, ok := ix.Lookup("k")
	require.False(t, ok)

	b, err := ix.ByKey("k")
	require.NoError(t, err)
	defer b.Put()
	require.NotEqual(t, old, b.Loc(), "a freed key comes back as a new identity")
	require.Equal(t, 0, b.Value().value, "fields start from zero")
}

func TestIndexKeyFieldRewritten(t *testing.T) {
	ix := newRecordIndex()

	a, err := ix.ByKey("a")
	require.NoError(t, err)
	require.NoError(t, a.Modify().Set(0, func(r *record) { r.key = "b" }))

	k, ok := ix.KeyOf(a.Loc())
	require.True(t, ok)
	require.Equal(t, "a", k, "the index keeps the allocation key")

	ref, ok := ix.Lookup("a")
	require.True(t, ok)
	require.Equal(t, a.Loc(), ref.Loc())

	old := a.Loc()
	a.Put()
	require.Equal(t, 0, ix.Container().Len())
	require.Equal(t, 0, ix.Len())
	_, ok = ix.KeyOf(old)
	require.False(t, ok)

	again, err := ix.ByKey("a")
	require.NoError(t, err)
	defer again.Put()
	require.True(t, again.Valid())
	require.Equal(t, "a", again.Value().key)
	require.Equal(t, 1, ix.Container().Len())
	require.Equal(t, 1, ix.Len())
}

func TestIndexLookup(t *testing.T) {
	ix := newRecordIndex()

	_, ok := ix.Lookup("missing")
	require.False(t, ok)
	require.Equal(t, 0, ix.Container().Len(), "Lookup never allocates")

	a, err := ix.ByKey("k")
	require.NoError(t, err)
	defer a.Put()

	ref, ok := ix.Lookup("k")
	require.True(t, ok)
	require.Equal(t, a.Loc(), ref.Loc())
	require.Equal(t, uint32(1), ref.Refcount())
}

func TestIndexExhausted(t *testing.T) {
	ix := newRecordIndex(WithMaxSlots(1))

	a, err := ix.ByKey("a")
	require.NoError(t, err)
	defer a.Put()

	// Existing keys still resolve at the cap.
	again, err := ix.ByKey("a")
	require.NoError(t, err)
	again.Put()

	_, err = ix.ByKey("b")
	require.True(t, errors.Is(err, ErrExhausted))
	require.Equal(t, 1, ix.Len())
}
