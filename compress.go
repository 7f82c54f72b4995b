package netlist

import (
	"slices"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/fpgaflow/netlist/internal/intern"
)

// Compress evicts all tombstoned rows and renumbers the survivors
// densely, preserving their relative order. Every cross-reference and
// every lookup table is rewritten to the new numbering.
//
// This invalidates ALL previously issued IDs, including IDs of entities
// that were not removed. Callers must drop every handle they hold and
// re-acquire them via Find* or the iteration ranges.
//
// Compress is never triggered implicitly; batching several Remove*
// calls before one Compress is the intended usage.
func (nl *Netlist) Compress() {
	before := nl.Stats()

	// Per-kind renumbering vectors: oldID -> newID, invalid for evicted
	// rows. Each vector is built in the same pass that compacts the
	// kind's columns.
	blockMap := nl.cleanBlocks()
	portMap := nl.cleanPorts()
	pinMap := nl.cleanPins()
	netMap := nl.cleanNets()

	// The reference graph is cyclic (block<->port<->pin<->net), so there
	// is no eviction order that leaves references intact. Instead every
	// store is rewritten through the renumbering vector of each kind it
	// references.
	nl.rebuildBlockRefs(portMap)
	nl.rebuildPortRefs(blockMap, pinMap)
	nl.rebuildPinRefs(portMap, netMap)
	nl.rebuildNetRefs(pinMap)

	// Rebuilding the lookup tables from the compacted stores is cheaper
	// and less error-prone than patching hash entries during the rewrite.
	nl.rebuildLookups()

	nl.shrinkToFit()
	nl.dirty = false

	nl.logger.LogCompress(nl.name, before, nl.Stats())
}

// cleanBlocks drops tombstoned block rows and returns the old->new id
// mapping. Live rows keep their relative order.
func (nl *Netlist) cleanBlocks() []BlockID {
	idMap := make([]BlockID, len(nl.blockNames))
	next := 0
	for old := range nl.blockNames {
		if nl.blockTombs.Contains(uint32(old)) {
			idMap[old] = InvalidBlockID
			continue
		}
		idMap[old] = BlockID(next)
		if next != old {
			nl.blockNames[next] = nl.blockNames[old]
			nl.blockModels[next] = nl.blockModels[old]
			nl.blockTTs[next] = nl.blockTTs[old]
			nl.blockInputs[next] = nl.blockInputs[old]
			nl.blockOutputs[next] = nl.blockOutputs[old]
			nl.blockClocks[next] = nl.blockClocks[old]
		}
		next++
	}
	nl.blockNames = nl.blockNames[:next]
	nl.blockModels = nl.blockModels[:next]
	nl.blockTTs = nl.blockTTs[:next]
	nl.blockInputs = nl.blockInputs[:next]
	nl.blockOutputs = nl.blockOutputs[:next]
	nl.blockClocks = nl.blockClocks[:next]
	nl.blockTombs = roaring.New()
	return idMap
}

// cleanPorts drops tombstoned port rows and returns the old->new mapping.
func (nl *Netlist) cleanPorts() []PortID {
	idMap := make([]PortID, len(nl.portNames))
	next := 0
	for old := range nl.portNames {
		if nl.portTombs.Contains(uint32(old)) {
			idMap[old] = InvalidPortID
			continue
		}
		idMap[old] = PortID(next)
		if next != old {
			nl.portNames[next] = nl.portNames[old]
			nl.portBlocks[next] = nl.portBlocks[old]
			nl.portWidths[next] = nl.portWidths[old]
			nl.portClasses[next] = nl.portClasses[old]
			nl.portPins[next] = nl.portPins[old]
		}
		next++
	}
	nl.portNames = nl.portNames[:next]
	nl.portBlocks = nl.portBlocks[:next]
	nl.portWidths = nl.portWidths[:next]
	nl.portClasses = nl.portClasses[:next]
	nl.portPins = nl.portPins[:next]
	nl.portTombs = roaring.New()
	return idMap
}

// cleanPins drops tombstoned pin rows and returns the old->new mapping.
func (nl *Netlist) cleanPins() []PinID {
	idMap := make([]PinID, len(nl.pinPorts))
	next := 0
	for old := range nl.pinPorts {
		if nl.pinTombs.Contains(uint32(old)) {
			idMap[old] = InvalidPinID
			continue
		}
		idMap[old] = PinID(next)
		if next != old {
			nl.pinPorts[next] = nl.pinPorts[old]
			nl.pinBits[next] = nl.pinBits[old]
			nl.pinNets[next] = nl.pinNets[old]
			nl.pinKinds[next] = nl.pinKinds[old]
		}
		next++
	}
	nl.pinPorts = nl.pinPorts[:next]
	nl.pinBits = nl.pinBits[:next]
	nl.pinNets = nl.pinNets[:next]
	nl.pinKinds = nl.pinKinds[:next]
	nl.pinTombs = roaring.New()
	return idMap
}

// cleanNets drops tombstoned net rows and returns the old->new mapping.
func (nl *Netlist) cleanNets() []NetID {
	idMap := make([]NetID, len(nl.netNames))
	next := 0
	for old := range nl.netNames {
		if nl.netTombs.Contains(uint32(old)) {
			idMap[old] = InvalidNetID
			continue
		}
		idMap[old] = NetID(next)
		if next != old {
			nl.netNames[next] = nl.netNames[old]
			nl.netPins[next] = nl.netPins[old]
		}
		next++
	}
	nl.netNames = nl.netNames[:next]
	nl.netPins = nl.netPins[:next]
	nl.netTombs = roaring.New()
	return idMap
}

// rebuildBlockRefs rewrites the port lists held by blocks. Ports whose
// rows were evicted are dropped from the lists.
func (nl *Netlist) rebuildBlockRefs(portMap []PortID) {
	for b := range nl.blockNames {
		nl.blockInputs[b] = remapPorts(nl.blockInputs[b], portMap)
		nl.blockOutputs[b] = remapPorts(nl.blockOutputs[b], portMap)
		nl.blockClocks[b] = remapPorts(nl.blockClocks[b], portMap)
	}
}

// rebuildPortRefs rewrites the block and pin references held by ports.
// Pin slots keep their bit position; an evicted pin leaves its slot
// invalid (unconnected bit) rather than shifting later bits.
func (nl *Netlist) rebuildPortRefs(blockMap []BlockID, pinMap []PinID) {
	for p := range nl.portNames {
		nl.portBlocks[p] = blockMap[nl.portBlocks[p]]
		slots := nl.portPins[p]
		for bit, pin := range slots {
			if !pin.Valid() {
				continue
			}
			slots[bit] = pinMap[pin]
		}
	}
}

// rebuildPinRefs rewrites the port and net references held by pins.
func (nl *Netlist) rebuildPinRefs(portMap []PortID, netMap []NetID) {
	for p := range nl.pinPorts {
		nl.pinPorts[p] = portMap[nl.pinPorts[p]]
		if net := nl.pinNets[p]; net.Valid() {
			nl.pinNets[p] = netMap[net]
		}
	}
}

// rebuildNetRefs rewrites the pin lists held by nets. The driver slot is
// positional and stays (possibly invalid); evicted sinks are dropped.
func (nl *Netlist) rebuildNetRefs(pinMap []PinID) {
	for n := range nl.netNames {
		pins := nl.netPins[n]
		if pins[0].Valid() {
			pins[0] = pinMap[pins[0]]
		}
		out := pins[:1]
		for _, sink := range pins[1:] {
			if newID := pinMap[sink]; newID.Valid() {
				out = append(out, newID)
			}
		}
		nl.netPins[n] = out
	}
}

// rebuildLookups reconstructs all four hash tables from the compacted
// stores.
func (nl *Netlist) rebuildLookups() {
	nl.blockByName = make(map[intern.StringID]BlockID, len(nl.blockNames))
	for b, nameID := range nl.blockNames {
		nl.blockByName[nameID] = BlockID(b)
	}

	nl.portByKey = make(map[portKey]PortID, len(nl.portNames))
	for p, nameID := range nl.portNames {
		nl.portByKey[portKey{Block: nl.portBlocks[p], Name: nameID}] = PortID(p)
	}

	nl.pinByKey = make(map[pinKey]PinID, len(nl.pinPorts))
	for p := range nl.pinPorts {
		nl.pinByKey[pinKey{Port: nl.pinPorts[p], Bit: nl.pinBits[p]}] = PinID(p)
	}

	nl.netByName = make(map[intern.StringID]NetID, len(nl.netNames))
	for n, nameID := range nl.netNames {
		nl.netByName[nameID] = NetID(n)
	}
}

// shrinkToFit releases the spare capacity left behind by eviction.
// No semantic effect.
func (nl *Netlist) shrinkToFit() {
	nl.blockNames = slices.Clip(nl.blockNames)
	nl.blockModels = slices.Clip(nl.blockModels)
	nl.blockTTs = slices.Clip(nl.blockTTs)
	nl.blockInputs = slices.Clip(nl.blockInputs)
	nl.blockOutputs = slices.Clip(nl.blockOutputs)
	nl.blockClocks = slices.Clip(nl.blockClocks)

	nl.portNames = slices.Clip(nl.portNames)
	nl.portBlocks = slices.Clip(nl.portBlocks)
	nl.portWidths = slices.Clip(nl.portWidths)
	nl.portClasses = slices.Clip(nl.portClasses)
	nl.portPins = slices.Clip(nl.portPins)

	nl.pinPorts = slices.Clip(nl.pinPorts)
	nl.pinBits = slices.Clip(nl.pinBits)
	nl.pinNets = slices.Clip(nl.pinNets)
	nl.pinKinds = slices.Clip(nl.pinKinds)

	nl.netNames = slices.Clip(nl.netNames)
	nl.netPins = slices.Clip(nl.netPins)
}

func remapPorts(ports []PortID, portMap []PortID) []PortID {
	out := ports[:0]
	for _, p := range ports {
		if newID := portMap[p]; newID.Valid() {
			out = append(out, newID)
		}
	}
	return out
}
