package netlist

import (
	"fmt"

	"github.com/fpgaflow/netlist/arch"
)

/*
 * Block accessors.
 *
 * All accessors panic when handed an invalid, tombstoned or stale ID;
 * see the validation notes in netlist.go.
 */

// BlockName returns the name of the block.
func (nl *Netlist) BlockName(id BlockID) string {
	nl.mustBlock(id)
	return nl.strings.Lookup(nl.blockNames[id])
}

// BlockModel returns the architecture model of the block.
func (nl *Netlist) BlockModel(id BlockID) *arch.Model {
	nl.mustBlock(id)
	return nl.blockModels[id]
}

// BlockType returns the derived classification of the block.
func (nl *Netlist) BlockType(id BlockID) BlockType {
	nl.mustBlock(id)
	return blockTypeOf(nl.blockModels[id])
}

// BlockTruthTable returns the truth table of the block. Nil for blocks
// without one. The returned table must not be modified.
func (nl *Netlist) BlockTruthTable(id BlockID) TruthTable {
	nl.mustBlock(id)
	return nl.blockTTs[id]
}

// BlockInputPorts returns the block's input ports in creation order.
// The returned slice must not be modified.
func (nl *Netlist) BlockInputPorts(id BlockID) []PortID {
	nl.mustBlock(id)
	return nl.blockInputs[id]
}

// BlockOutputPorts returns the block's output ports in creation order.
// Note some blocks (e.g. PLLs) can produce outputs which are clocks.
// The returned slice must not be modified.
func (nl *Netlist) BlockOutputPorts(id BlockID) []PortID {
	nl.mustBlock(id)
	return nl.blockOutputs[id]
}

// BlockClockPorts returns the block's clock ports in creation order.
// The returned slice must not be modified.
func (nl *Netlist) BlockClockPorts(id BlockID) []PortID {
	nl.mustBlock(id)
	return nl.blockClocks[id]
}

/*
 * Port accessors.
 */

// PortName returns the name of the port.
func (nl *Netlist) PortName(id PortID) string {
	nl.mustPort(id)
	return nl.strings.Lookup(nl.portNames[id])
}

// PortWidth returns the number of bits in the port.
func (nl *Netlist) PortWidth(id PortID) int {
	nl.mustPort(id)
	return nl.portWidths[id]
}

// PortBlock returns the block owning the port.
func (nl *Netlist) PortBlock(id PortID) BlockID {
	nl.mustPort(id)
	return nl.portBlocks[id]
}

// PortClass returns the directional class of the port as declared by the
// owning block's model.
func (nl *Netlist) PortClass(id PortID) arch.PortClass {
	nl.mustPort(id)
	return nl.portClasses[id]
}

// PortPins returns the port's live pins in bit order. Bits without a pin
// are skipped.
func (nl *Netlist) PortPins(id PortID) []PinID {
	nl.mustPort(id)
	pins := make([]PinID, 0, len(nl.portPins[id]))
	for _, pin := range nl.portPins[id] {
		if pin.Valid() {
			pins = append(pins, pin)
		}
	}
	return pins
}

// PortPin returns the pin at the given bit of the port, or InvalidPinID
// if the bit has no pin. Panics if bit is outside [0, width).
func (nl *Netlist) PortPin(id PortID, bit int) PinID {
	nl.mustPort(id)
	nl.mustBit(id, bit)
	return nl.portPins[id][bit]
}

// PortNet returns the net connected at the given bit of the port, or
// InvalidNetID if the bit is unconnected.
func (nl *Netlist) PortNet(id PortID, bit int) NetID {
	pin := nl.PortPin(id, bit)
	if !pin.Valid() {
		return InvalidNetID
	}
	return nl.pinNets[pin]
}

func (nl *Netlist) mustBit(id PortID, bit int) {
	if bit < 0 || bit >= nl.portWidths[id] {
		panic(fmt.Sprintf("netlist %q: bit %d out of range for port %d (width %d)",
			nl.name, bit, id, nl.portWidths[id]))
	}
}

/*
 * Pin accessors.
 */

// PinNet returns the net the pin is connected to, or InvalidNetID if the
// pin is unconnected.
func (nl *Netlist) PinNet(id PinID) NetID {
	nl.mustPin(id)
	return nl.pinNets[id]
}

// PinKind returns whether the pin is a driver or a sink.
func (nl *Netlist) PinKind(id PinID) PinKind {
	nl.mustPin(id)
	return nl.pinKinds[id]
}

// PinPort returns the port owning the pin.
func (nl *Netlist) PinPort(id PinID) PortID {
	nl.mustPin(id)
	return nl.pinPorts[id]
}

// PinPortBit returns the pin's bit index within its port.
func (nl *Netlist) PinPortBit(id PinID) int {
	nl.mustPin(id)
	return nl.pinBits[id]
}

// PinBlock returns the block owning the pin (via its port).
func (nl *Netlist) PinBlock(id PinID) BlockID {
	nl.mustPin(id)
	return nl.portBlocks[nl.pinPorts[id]]
}

/*
 * Net accessors.
 */

// NetName returns the name of the net.
func (nl *Netlist) NetName(id NetID) string {
	nl.mustNet(id)
	return nl.strings.Lookup(nl.netNames[id])
}

// NetPins returns the net's pins. Slot 0 is the driver and may be
// InvalidPinID; the remaining slots are sinks. The returned slice must
// not be modified.
func (nl *Netlist) NetPins(id NetID) []PinID {
	nl.mustNet(id)
	return nl.netPins[id]
}

// NetDriver returns the net's driver pin, or InvalidPinID if the net is
// undriven.
func (nl *Netlist) NetDriver(id NetID) PinID {
	nl.mustNet(id)
	return nl.netPins[id][0]
}

// NetSinks returns the net's sink pins. The returned slice must not be
// modified.
func (nl *Netlist) NetSinks(id NetID) []PinID {
	nl.mustNet(id)
	return nl.netPins[id][1:]
}

/*
 * Name-based lookups. Benign absence is signalled with the invalid
 * sentinel, never an error.
 */

// FindBlock returns the block with the given name, or InvalidBlockID.
func (nl *Netlist) FindBlock(name string) BlockID {
	nameID, ok := nl.strings.Find(name)
	if !ok {
		return InvalidBlockID
	}
	if id, ok := nl.blockByName[nameID]; ok {
		return id
	}
	return InvalidBlockID
}

// FindPort returns the named port on the given block, or InvalidPortID.
func (nl *Netlist) FindPort(block BlockID, name string) PortID {
	nl.mustBlock(block)
	nameID, ok := nl.strings.Find(name)
	if !ok {
		return InvalidPortID
	}
	if id, ok := nl.portByKey[portKey{Block: block, Name: nameID}]; ok {
		return id
	}
	return InvalidPortID
}

// FindPin returns the pin at the given bit of the port, or InvalidPinID.
// Unlike PortPin this does not panic on an out-of-range bit.
func (nl *Netlist) FindPin(port PortID, bit int) PinID {
	nl.mustPort(port)
	if id, ok := nl.pinByKey[pinKey{Port: port, Bit: bit}]; ok {
		return id
	}
	return InvalidPinID
}

// FindNet returns the net with the given name, or InvalidNetID.
func (nl *Netlist) FindNet(name string) NetID {
	nameID, ok := nl.strings.Find(name)
	if !ok {
		return InvalidNetID
	}
	if id, ok := nl.netByName[nameID]; ok {
		return id
	}
	return InvalidNetID
}
