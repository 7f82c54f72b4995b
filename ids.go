package netlist

import (
	"fmt"
	"math"

	"github.com/fpgaflow/netlist/arch"
)

// BlockID identifies a block. IDs are dense indexes into the block
// columns; they are stable until the next Compress call.
type BlockID uint32

// PortID identifies a port.
type PortID uint32

// PinID identifies a pin.
type PinID uint32

// NetID identifies a net.
type NetID uint32

// Invalid ID sentinels. Zero is a legal ID (the first created entity),
// so the sentinel is the maximum value of the underlying type.
const (
	InvalidBlockID = BlockID(math.MaxUint32)
	InvalidPortID  = PortID(math.MaxUint32)
	InvalidPinID   = PinID(math.MaxUint32)
	InvalidNetID   = NetID(math.MaxUint32)
)

// Valid reports whether the id is not the invalid sentinel.
// Note this does not check the id against any particular netlist.
func (id BlockID) Valid() bool { return id != InvalidBlockID }

// Valid reports whether the id is not the invalid sentinel.
func (id PortID) Valid() bool { return id != InvalidPortID }

// Valid reports whether the id is not the invalid sentinel.
func (id PinID) Valid() bool { return id != InvalidPinID }

// Valid reports whether the id is not the invalid sentinel.
func (id NetID) Valid() bool { return id != InvalidNetID }

// PinKind distinguishes driver pins from sink pins.
type PinKind uint8

const (
	// PinDriver marks the pin producing a net's value. A net has at most
	// one driver, stored at slot 0 of its pin list.
	PinDriver PinKind = iota
	// PinSink marks a pin consuming a net's value.
	PinSink
)

// String returns "driver" or "sink".
func (k PinKind) String() string {
	switch k {
	case PinDriver:
		return "driver"
	case PinSink:
		return "sink"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// BlockType is a derived classification of a block, computed from its
// model. It is a convenience for back ends that treat pads and
// sequential elements specially.
type BlockType uint8

const (
	// BlockCombinational is a block with no clock and no pad model.
	BlockCombinational BlockType = iota
	// BlockSequential is a block whose model declares a clock port.
	BlockSequential
	// BlockInputPad is a primary input.
	BlockInputPad
	// BlockOutputPad is a primary output.
	BlockOutputPad
)

// String returns the lower-case type name.
func (t BlockType) String() string {
	switch t {
	case BlockCombinational:
		return "combinational"
	case BlockSequential:
		return "sequential"
	case BlockInputPad:
		return "inpad"
	case BlockOutputPad:
		return "outpad"
	default:
		return fmt.Sprintf("type(%d)", uint8(t))
	}
}

// LogicValue is a single entry of a truth table cover.
type LogicValue uint8

const (
	// LogicFalse is a constant 0.
	LogicFalse LogicValue = iota
	// LogicTrue is a constant 1.
	LogicTrue
	// LogicDontCare matches either value.
	LogicDontCare
)

// TruthTable is the single-output cover attached to LUT-like blocks, or a
// single row holding the initial state of a latch. The netlist stores it
// opaquely; only the front and back ends interpret it.
type TruthTable [][]LogicValue

// Clone returns a deep copy of the table. Returns nil for a nil table.
func (tt TruthTable) Clone() TruthTable {
	if tt == nil {
		return nil
	}
	out := make(TruthTable, len(tt))
	for i, row := range tt {
		out[i] = append([]LogicValue(nil), row...)
	}
	return out
}

// blockTypeOf derives the BlockType from a model.
func blockTypeOf(model *arch.Model) BlockType {
	switch model.Name() {
	case arch.ModelInput:
		return BlockInputPad
	case arch.ModelOutput:
		return BlockOutputPad
	}
	if model.HasClock() {
		return BlockSequential
	}
	return BlockCombinational
}
