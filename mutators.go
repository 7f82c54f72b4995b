package netlist

import (
	"fmt"

	"github.com/fpgaflow/netlist/arch"
)

// CreateBlock creates a block, or returns the existing block of the same
// name. On first creation the block has empty port lists. The truth
// table is stored opaquely and may be nil; it is only meaningful for
// LUT-like blocks (logic cover) and latches (initial state).
//
// Model and truth table arguments are ignored when the block already
// exists; the name alone identifies the block.
func (nl *Netlist) CreateBlock(name string, model *arch.Model, tt TruthTable) BlockID {
	if model == nil {
		panic(fmt.Sprintf("netlist %q: nil model for block %q", nl.name, name))
	}

	nameID := nl.strings.Intern(name)
	if id, ok := nl.blockByName[nameID]; ok {
		return id
	}

	id := BlockID(len(nl.blockNames))
	nl.blockNames = append(nl.blockNames, nameID)
	nl.blockModels = append(nl.blockModels, model)
	nl.blockTTs = append(nl.blockTTs, tt)
	nl.blockInputs = append(nl.blockInputs, nil)
	nl.blockOutputs = append(nl.blockOutputs, nil)
	nl.blockClocks = append(nl.blockClocks, nil)

	nl.blockByName[nameID] = id
	return id
}

// CreatePort creates a port on the block, or returns the existing port
// of the same name. The port's width and directional class come from the
// block's model; if the model declares no such port, ErrUnknownModelPort
// is returned and nothing is mutated.
func (nl *Netlist) CreatePort(block BlockID, name string) (PortID, error) {
	nl.mustBlock(block)

	nameID := nl.strings.Intern(name)
	key := portKey{Block: block, Name: nameID}
	if id, ok := nl.portByKey[key]; ok {
		return id, nil
	}

	def, ok := nl.blockModels[block].Port(name)
	if !ok {
		return InvalidPortID, fmt.Errorf("%w: model %q has no port %q",
			ErrUnknownModelPort, nl.blockModels[block].Name(), name)
	}

	id := PortID(len(nl.portNames))
	nl.portNames = append(nl.portNames, nameID)
	nl.portBlocks = append(nl.portBlocks, block)
	nl.portWidths = append(nl.portWidths, def.Width)
	nl.portClasses = append(nl.portClasses, def.Class)

	slots := make([]PinID, def.Width)
	for i := range slots {
		slots[i] = InvalidPinID
	}
	nl.portPins = append(nl.portPins, slots)

	switch def.Class {
	case arch.Input:
		nl.blockInputs[block] = append(nl.blockInputs[block], id)
	case arch.Output:
		nl.blockOutputs[block] = append(nl.blockOutputs[block], id)
	case arch.Clock:
		nl.blockClocks[block] = append(nl.blockClocks[block], id)
	}

	nl.portByKey[key] = id
	return id, nil
}

// CreatePin creates a pin at the given bit of the port and wires it to
// net (InvalidNetID for an unconnected pin). A driver pin takes the
// net's slot 0; wiring a second driver returns ErrDriverConflict.
//
// Creating a pin that already exists is a no-op returning the existing
// id when net and kind match, and ErrPinExists otherwise.
func (nl *Netlist) CreatePin(port PortID, bit int, net NetID, kind PinKind) (PinID, error) {
	nl.mustPort(port)
	if net.Valid() {
		nl.mustNet(net)
	}

	if bit < 0 || bit >= nl.portWidths[port] {
		return InvalidPinID, fmt.Errorf("%w: bit %d, port %q width %d",
			ErrBitOutOfRange, bit, nl.PortName(port), nl.portWidths[port])
	}

	key := pinKey{Port: port, Bit: bit}
	if id, ok := nl.pinByKey[key]; ok {
		if nl.pinNets[id] == net && nl.pinKinds[id] == kind {
			return id, nil
		}
		return InvalidPinID, fmt.Errorf("%w: pin (%q, %d)", ErrPinExists, nl.PortName(port), bit)
	}

	if net.Valid() && kind == PinDriver && nl.netPins[net][0].Valid() {
		return InvalidPinID, fmt.Errorf("%w: net %q", ErrDriverConflict, nl.NetName(net))
	}

	id := PinID(len(nl.pinPorts))
	nl.pinPorts = append(nl.pinPorts, port)
	nl.pinBits = append(nl.pinBits, bit)
	nl.pinNets = append(nl.pinNets, net)
	nl.pinKinds = append(nl.pinKinds, kind)

	nl.portPins[port][bit] = id
	if net.Valid() {
		if kind == PinDriver {
			nl.netPins[net][0] = id
		} else {
			nl.netPins[net] = append(nl.netPins[net], id)
		}
	}

	nl.pinByKey[key] = id
	return id, nil
}

// CreateNet creates an empty net (invalid driver, no sinks), or returns
// the existing net of the same name.
func (nl *Netlist) CreateNet(name string) NetID {
	nameID := nl.strings.Intern(name)
	if id, ok := nl.netByName[nameID]; ok {
		return id
	}

	id := NetID(len(nl.netNames))
	nl.netNames = append(nl.netNames, nameID)
	nl.netPins = append(nl.netPins, []PinID{InvalidPinID})

	nl.netByName[nameID] = id
	return id
}

// AddNet creates a fully specified net in one call: name must be unused,
// driver must be an unconnected driver pin (or InvalidPinID for an
// undriven net) and sinks must be distinct unconnected sink pins. The
// call either fully succeeds or mutates nothing.
func (nl *Netlist) AddNet(name string, driver PinID, sinks []PinID) (NetID, error) {
	if nl.FindNet(name).Valid() {
		return InvalidNetID, fmt.Errorf("%w: %q", ErrNetExists, name)
	}

	// Validate the whole pin set before touching any state.
	if driver.Valid() {
		nl.mustPin(driver)
		if nl.pinKinds[driver] != PinDriver {
			return InvalidNetID, fmt.Errorf("%w: pin %d is not a driver", ErrPinKind, driver)
		}
		if nl.pinNets[driver].Valid() {
			return InvalidNetID, fmt.Errorf("%w: driver pin %d", ErrPinConnected, driver)
		}
	}
	seen := make(map[PinID]struct{}, len(sinks))
	for _, sink := range sinks {
		nl.mustPin(sink)
		if nl.pinKinds[sink] != PinSink {
			return InvalidNetID, fmt.Errorf("%w: pin %d is not a sink", ErrPinKind, sink)
		}
		if nl.pinNets[sink].Valid() {
			return InvalidNetID, fmt.Errorf("%w: sink pin %d", ErrPinConnected, sink)
		}
		if _, dup := seen[sink]; dup {
			return InvalidNetID, fmt.Errorf("%w: sink pin %d", ErrDuplicatePin, sink)
		}
		seen[sink] = struct{}{}
	}

	id := nl.CreateNet(name)
	if driver.Valid() {
		nl.netPins[id][0] = driver
		nl.pinNets[driver] = id
	}
	for _, sink := range sinks {
		nl.netPins[id] = append(nl.netPins[id], sink)
		nl.pinNets[sink] = id
	}
	return id, nil
}

// RemoveBlock tombstones the block together with all its ports and pins.
// Pins are detached from their nets; the nets themselves survive.
// Storage is reclaimed by the next Compress.
func (nl *Netlist) RemoveBlock(block BlockID) {
	nl.mustBlock(block)

	for _, ports := range [][]PortID{nl.blockInputs[block], nl.blockOutputs[block], nl.blockClocks[block]} {
		for _, port := range ports {
			nl.removePort(port)
		}
	}

	delete(nl.blockByName, nl.blockNames[block])
	nl.blockTombs.Add(uint32(block))
	nl.dirty = true
}

// RemoveNet tombstones the net. Pins that were on the net stay on their
// ports but become unconnected.
func (nl *Netlist) RemoveNet(net NetID) {
	nl.mustNet(net)

	for _, pin := range nl.netPins[net] {
		if pin.Valid() {
			nl.pinNets[pin] = InvalidNetID
		}
	}
	nl.netPins[net] = []PinID{InvalidPinID}

	delete(nl.netByName, nl.netNames[net])
	nl.netTombs.Add(uint32(net))
	nl.dirty = true
}

// RemoveNetPin disconnects the pin from the net. The pin keeps its port
// slot but becomes unconnected; the net loses the pin from its list.
// Returns ErrWrongNet if the pin is not on the net.
func (nl *Netlist) RemoveNetPin(net NetID, pin PinID) error {
	nl.mustNet(net)
	nl.mustPin(pin)

	if nl.pinNets[pin] != net {
		return fmt.Errorf("%w: pin %d, net %q", ErrWrongNet, pin, nl.NetName(net))
	}

	pins := nl.netPins[net]
	if pins[0] == pin {
		pins[0] = InvalidPinID
	} else {
		for i := 1; i < len(pins); i++ {
			if pins[i] == pin {
				nl.netPins[net] = append(pins[:i], pins[i+1:]...)
				break
			}
		}
	}

	nl.pinNets[pin] = InvalidNetID
	nl.dirty = true
	return nil
}

// removePort tombstones a port and all of its pins. Only called while
// removing the owning block, so the block's port lists are not patched
// here; the tombstoned block row carries them until Compress.
func (nl *Netlist) removePort(port PortID) {
	for _, pin := range nl.portPins[port] {
		if pin.Valid() {
			nl.removePin(pin)
		}
	}

	delete(nl.portByKey, portKey{Block: nl.portBlocks[port], Name: nl.portNames[port]})
	nl.portTombs.Add(uint32(port))
	nl.dirty = true
}

// removePin tombstones a pin and detaches it from its net.
func (nl *Netlist) removePin(pin PinID) {
	if net := nl.pinNets[pin]; net.Valid() {
		pins := nl.netPins[net]
		if pins[0] == pin {
			pins[0] = InvalidPinID
		} else {
			for i := 1; i < len(pins); i++ {
				if pins[i] == pin {
					nl.netPins[net] = append(pins[:i], pins[i+1:]...)
					break
				}
			}
		}
		nl.pinNets[pin] = InvalidNetID
	}

	delete(nl.pinByKey, pinKey{Port: nl.pinPorts[pin], Bit: nl.pinBits[pin]})
	nl.pinTombs.Add(uint32(pin))
	nl.dirty = true
}
