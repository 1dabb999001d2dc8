package spanarena

import (
	"runtime"
	"testing"
)

// BenchmarkRealisticUsage compares span churn against a heap-allocated map of
// pointers, the structure the container replaces.
func BenchmarkRealisticUsage(b *testing.B) {

	// Test 1: flows keyed by connection id, most of them short-lived
	b.Run("KeyedChurn/Index", func(b *testing.B) {
		ix := NewIndex(NewContainer[record](WithChunkSize(1024)),
			func(r *record) string { return r.key },
			func(r *record, k string) { r.key = k })
		keys := benchKeys(256)
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			h, _ := ix.ByKey(keys[i%len(keys)])
			h.Put()
		}
	})

	b.Run("KeyedChurn/Builtin", func(b *testing.B) {
		m := make(map[string]*record)
		keys := benchKeys(256)
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			k := keys[i%len(keys)]
			r, ok := m[k]
			if !ok {
				r = &record{key: k}
				m[k] = r
			}
			delete(m, k)
			if i%1000 == 0 {
				runtime.GC()
			}
		}
	})

	// Test 2: an auto reference flipping between two targets
	b.Run("AutoRefFlip", func(b *testing.B) {
		s := newOwnerSchema(WithChunkSize(64))
		o, _ := s.owners.Alloc()
		defer o.Put()
		prefixes := []string{"a", "b"}
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			_ = o.Modify().Set(fieldPrefix, func(w *owner) { w.prefix = prefixes[i%2] })
		}
	})

	// Test 3: metrics for a fixed population, drained every interval
	b.Run("MetricsWindow", func(b *testing.B) {
		c := NewContainer[record](WithChunkSize(1024))
		m := NewMetricsStore(c, 1000, mergeSample)
		var spans []Location
		for i := 0; i < 100; i++ {
			h, _ := c.Alloc()
			held := h.ToHandle()
			spans = append(spans, held.Loc())
		}
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			now := uint64(i)
			_ = m.Update(spans[i%len(spans)], now, sample{count: 1, sum: i})
			if i%1000 == 999 {
				m.Foreach(now, func(uint64, Ref[record], *sample, uint64) {})
			}
		}
	})
}

func benchKeys(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = string(rune('a'+i%26)) + string(rune('a'+i/26))
	}
	return keys
}
