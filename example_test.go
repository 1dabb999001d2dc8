package spanarena

import (
	"fmt"
	"time"
)

type flow struct {
	id      string
	process ManualRef[proc]
}

type proc struct {
	pid uint32
}

// Example demonstrates allocation, keyed lookup and release.
func Example() {
	procs := NewIndex(NewContainer[proc](),
		func(p *proc) uint32 { return p.pid },
		func(p *proc, pid uint32) { p.pid = pid })

	a, _ := procs.ByKey(100)
	b, _ := procs.ByKey(100)
	fmt.Printf("same span: %v\n", a.Loc() == b.Loc())
	fmt.Printf("live procs: %d\n", procs.Container().Len())

	a.Put()
	b.Put()
	fmt.Printf("live procs after put: %d\n", procs.Container().Len())

	// Output:
	// same span: true
	// live procs: 1
	// live procs after put: 0
}

// ExampleManualRef demonstrates a record keeping another record alive.
func ExampleManualRef() {
	procs := NewContainer[proc]()
	flows := NewContainer[flow]()
	flows.OnFree(func(_ Location, f *flow) {
		f.process.Release(procs)
	})

	p, _ := procs.Alloc()
	f, _ := flows.Alloc()
	_ = f.Modify().Set(1, func(fl *flow) { fl.process.Assign(procs, p.Loc()) })

	p.Put()
	fmt.Printf("procs held by flow: %d\n", procs.Len())

	f.Put()
	fmt.Printf("procs after flow is gone: %d\n", procs.Len())

	// Output:
	// procs held by flow: 1
	// procs after flow is gone: 0
}

// ExampleMetricsStore demonstrates windowed aggregation.
func ExampleMetricsStore() {
	procs := NewContainer[proc]()
	cpu := NewMetricsStore(procs, 10*time.Second, func(total *uint64, v uint64) { *total += v })

	p, _ := procs.Alloc()
	start := uint64(100 * time.Second)
	_ = cpu.Update(p.Loc(), start+uint64(time.Second), 3)
	_ = cpu.Update(p.Loc(), start+uint64(4*time.Second), 4)
	p.Put()

	fmt.Printf("ready at +15s: %v\n", cpu.Ready(start+uint64(15*time.Second)))
	now := start + uint64(20*time.Second)
	cpu.Foreach(now, func(ts uint64, _ Ref[proc], total *uint64, interval uint64) {
		fmt.Printf("bucket %ds..%ds: %d\n", ts/uint64(time.Second), (ts+interval)/uint64(time.Second), *total)
	})
	fmt.Printf("procs after drain: %d\n", procs.Len())

	// Output:
	// ready at +15s: false
	// bucket 100s..110s: 7
	// procs after drain: 0
}
