package spanarena

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestExclusiveConcurrentByKey(t *testing.T) {
	ex := NewExclusive(newRecordIndex())

	const numGoroutines = 8
	const keysPerGoroutine = 50

	var wg sync.WaitGroup
	for g := 0; g < numGoroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := 0; k < keysPerGoroutine; k++ {
				ex.Do(func(ix *Index[record, string]) {
					h, err := ix.ByKey(fmt.Sprintf("key-%d", k))
					if err != nil {
						t.Error(err)
						return
					}
					// Keep one reference per key; drop the duplicates.
					if h.Refcount() > 1 {
						h.Put()
						return
					}
					h.ToHandle()
				})
			}
		}()
	}
	wg.Wait()

	ex.Do(func(ix *Index[record, string]) {
		require.Equal(t, keysPerGoroutine, ix.Len())
		require.Equal(t, keysPerGoroutine, ix.Container().Len())
	})
}

func TestExclusiveDoErr(t *testing.T) {
	ex := NewExclusive(NewContainer[record](WithMaxSlots(1)))

	err := ex.DoErr(func(c *Container[record]) error {
		_, err := c.Alloc()
		return err
	})
	require.NoError(t, err)

	err = ex.DoErr(func(c *Container[record]) error {
		_, err := c.Alloc()
		return err
	})
	require.True(t, errors.Is(err, ErrExhausted))
}

func TestExclusiveStats(t *testing.T) {
	ex := NewExclusive(NewContainer[record](WithName("guarded")))
	ex.Do(func(c *Container[record]) {
		_, err := c.Alloc()
		require.NoError(t, err)
	})

	s := ex.Stats()
	require.Equal(t, "guarded", s.Name)
	require.Equal(t, 1, s.Live)

	// Values without stats report nothing.
	require.Equal(t, Stats{}, NewExclusive(newRecordIndex()).Stats())
}

func TestExclusiveCollectorScrape(t *testing.T) {
	ex := NewExclusive(NewContainer[record](WithName("scraped")))
	col := NewCollector(ex)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			ex.Do(func(c *Container[record]) {
				h, _ := c.Alloc()
				h.Put()
			})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			ch := make(chan prometheus.Metric, 4)
			col.Collect(ch)
			close(ch)
		}
	}()
	wg.Wait()

	require.Equal(t, uint64(100), ex.Stats().Allocs)
}
