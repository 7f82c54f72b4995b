package netlist

import (
	"errors"
	"fmt"
)

// Mutation errors. Every failed mutation leaves the netlist untouched.
var (
	// ErrUnknownModelPort is returned by CreatePort when the block's model
	// declares no port with the requested name.
	ErrUnknownModelPort = errors.New("netlist: port name not declared by block model")

	// ErrBitOutOfRange is returned by CreatePin when the bit index is not
	// below the port width.
	ErrBitOutOfRange = errors.New("netlist: bit index out of port range")

	// ErrDriverConflict is returned by CreatePin and AddNet when wiring a
	// driver pin to a net that already has a live driver. The netlist never
	// silently demotes or replaces drivers.
	ErrDriverConflict = errors.New("netlist: net already has a driver")

	// ErrNetExists is returned by AddNet when the net name is already in use.
	ErrNetExists = errors.New("netlist: net name already exists")

	// ErrPinExists is returned by CreatePin when the (port, bit) pin already
	// exists with a different net or kind. Re-creating a pin with identical
	// arguments is a no-op instead.
	ErrPinExists = errors.New("netlist: pin already exists with different net or kind")

	// ErrPinConnected is returned by AddNet when a supplied pin is already
	// wired to some net.
	ErrPinConnected = errors.New("netlist: pin already connected to a net")

	// ErrPinKind is returned by AddNet when a driver slot receives a sink
	// pin or a sink slot receives a driver pin.
	ErrPinKind = errors.New("netlist: pin kind does not match its net role")

	// ErrDuplicatePin is returned by AddNet when the same pin is listed
	// more than once in the sink set.
	ErrDuplicatePin = errors.New("netlist: pin listed more than once")

	// ErrWrongNet is returned by RemoveNetPin when the pin is not on the net.
	ErrWrongNet = errors.New("netlist: pin is not connected to this net")
)

// ViolationKind classifies a consistency violation reported by Verify.
type ViolationKind uint8

const (
	// ViolationSize means the parallel columns of a store disagree in length.
	ViolationSize ViolationKind = iota
	// ViolationCrossRef means a cross-reference between entities is not
	// symmetric (e.g. a port's owning block does not list the port).
	ViolationCrossRef
	// ViolationLookup means a fast lookup table disagrees with a linear
	// scan of the stores.
	ViolationLookup
)

// String returns the kind name.
func (k ViolationKind) String() string {
	switch k {
	case ViolationSize:
		return "size"
	case ViolationCrossRef:
		return "cross-reference"
	case ViolationLookup:
		return "lookup"
	default:
		return fmt.Sprintf("violation(%d)", uint8(k))
	}
}

// ConsistencyError reports a broken internal invariant found by Verify.
// It indicates a defect in the netlist implementation itself, not bad
// caller input, and is not recoverable.
type ConsistencyError struct {
	Kind   ViolationKind
	Detail string
}

// Error implements error.
func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("netlist: %s consistency violation: %s", e.Kind, e.Detail)
}

func consistencyf(kind ViolationKind, format string, args ...any) error {
	return &ConsistencyError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}
