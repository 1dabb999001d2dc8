package spanarena

import "fmt"

// Location identifies a slot inside one Container. Two locations are equal
// iff both index and generation match, so a location that outlived its slot
// never compares equal to the slot's next tenant.
//
// The zero value is InvalidLocation: generations of live slots start at 1.
type Location struct {
	Index      uint32
	Generation uint32
}

// InvalidLocation is the sentinel stored by unset references.
var InvalidLocation = Location{}

// IsValid reports whether l is something other than the invalid sentinel. It
// does not check liveness; use Container.Valid for that.
func (l Location) IsValid() bool {
	return l.Generation != 0
}

func (l Location) String() string {
	if !l.IsValid() {
		return "loc(invalid)"
	}
	return fmt.Sprintf("loc(%d@%d)", l.Index, l.Generation)
}
