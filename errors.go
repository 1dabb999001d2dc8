package spanarena

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	// ErrExhausted is returned when a container cannot hand out another slot.
	ErrExhausted = errors.New("spanarena: container exhausted")
	// ErrInvalidLocation is returned when an operation needs a live slot and
	// was given a stale or invalid location.
	ErrInvalidLocation = errors.New("spanarena: invalid location")
)

// ContractViolation is the panic value raised on misuse of a handle or
// location while debug checks are enabled.
type ContractViolation struct {
	Op  string
	Loc Location
}

func (v *ContractViolation) Error() string {
	return fmt.Sprintf("spanarena: contract violation in %s at %s", v.Op, v.Loc)
}

// violation reports misuse. It always logs; it panics only with debug checks
// on. Callers must skip the operation when it returns.
func (c *config) violation(op string, loc Location) {
	c.logger.Error("contract violation",
		zap.String("op", op),
		zap.Uint32("index", loc.Index),
		zap.Uint32("generation", loc.Generation),
	)
	if c.debugChecks {
		panic(&ContractViolation{Op: op, Loc: loc})
	}
}
