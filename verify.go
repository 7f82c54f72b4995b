package netlist

import (
	"golang.org/x/sync/errgroup"

	"github.com/fpgaflow/netlist/arch"
)

// Verify checks the netlist's internal consistency and returns a
// ConsistencyError describing the first broken invariant, or nil.
//
// It recomputes everything independently of the fast lookup tables, so
// it can act as a correctness oracle for the mutation and compression
// logic. It is O(total entities) and meant for use after bulk
// construction or mutation batches, not per operation.
//
// The three check families (sizes, cross-references, lookups) are
// independent read-only scans and run concurrently.
func (nl *Netlist) Verify() error {
	var g errgroup.Group
	g.Go(nl.verifySizes)
	g.Go(nl.verifyRefs)
	g.Go(nl.verifyLookups)
	return g.Wait()
}

// verifySizes checks that the parallel columns of every store agree in
// length.
func (nl *Netlist) verifySizes() error {
	nb := len(nl.blockNames)
	if len(nl.blockModels) != nb || len(nl.blockTTs) != nb ||
		len(nl.blockInputs) != nb || len(nl.blockOutputs) != nb || len(nl.blockClocks) != nb {
		return consistencyf(ViolationSize, "block columns disagree: names=%d models=%d tts=%d in=%d out=%d clk=%d",
			nb, len(nl.blockModels), len(nl.blockTTs), len(nl.blockInputs), len(nl.blockOutputs), len(nl.blockClocks))
	}

	np := len(nl.portNames)
	if len(nl.portBlocks) != np || len(nl.portWidths) != np ||
		len(nl.portClasses) != np || len(nl.portPins) != np {
		return consistencyf(ViolationSize, "port columns disagree: names=%d blocks=%d widths=%d classes=%d pins=%d",
			np, len(nl.portBlocks), len(nl.portWidths), len(nl.portClasses), len(nl.portPins))
	}
	for p, slots := range nl.portPins {
		if nl.portTombs.Contains(uint32(p)) {
			continue
		}
		if len(slots) != nl.portWidths[p] {
			return consistencyf(ViolationSize, "port %d has %d pin slots for width %d", p, len(slots), nl.portWidths[p])
		}
	}

	npin := len(nl.pinPorts)
	if len(nl.pinBits) != npin || len(nl.pinNets) != npin || len(nl.pinKinds) != npin {
		return consistencyf(ViolationSize, "pin columns disagree: ports=%d bits=%d nets=%d kinds=%d",
			npin, len(nl.pinBits), len(nl.pinNets), len(nl.pinKinds))
	}

	if len(nl.netPins) != len(nl.netNames) {
		return consistencyf(ViolationSize, "net columns disagree: names=%d pins=%d",
			len(nl.netNames), len(nl.netPins))
	}
	for n, pins := range nl.netPins {
		if nl.netTombs.Contains(uint32(n)) {
			continue
		}
		if len(pins) < 1 {
			return consistencyf(ViolationSize, "net %d has no driver slot", n)
		}
	}
	return nil
}

// verifyRefs checks cross-reference symmetry between all entity kinds.
func (nl *Netlist) verifyRefs() error {
	if err := nl.verifyBlockPortRefs(); err != nil {
		return err
	}
	if err := nl.verifyPortPinRefs(); err != nil {
		return err
	}
	return nl.verifyNetPinRefs()
}

func (nl *Netlist) verifyBlockPortRefs() error {
	// Forward: each port in a block's lists points back at the block and
	// sits in the list matching its class.
	seen := make(map[PortID]int)
	for b := range nl.blockNames {
		if nl.blockTombs.Contains(uint32(b)) {
			continue
		}
		block := BlockID(b)
		lists := []struct {
			ports []PortID
			class arch.PortClass
		}{
			{nl.blockInputs[b], arch.Input},
			{nl.blockOutputs[b], arch.Output},
			{nl.blockClocks[b], arch.Clock},
		}
		for _, l := range lists {
			for _, port := range l.ports {
				if !nl.validPort(port) {
					return consistencyf(ViolationCrossRef, "block %d lists invalid port %d", b, port)
				}
				if nl.portBlocks[port] != block {
					return consistencyf(ViolationCrossRef, "port %d is listed by block %d but owned by block %d",
						port, b, nl.portBlocks[port])
				}
				if nl.portClasses[port] != l.class {
					return consistencyf(ViolationCrossRef, "port %d has class %s but sits in the %s list of block %d",
						port, nl.portClasses[port], l.class, b)
				}
				seen[port]++
			}
		}
	}

	// Reverse: every live port appears in its block's lists exactly once.
	for p := range nl.portNames {
		if nl.portTombs.Contains(uint32(p)) {
			continue
		}
		port := PortID(p)
		if !nl.validBlock(nl.portBlocks[p]) {
			return consistencyf(ViolationCrossRef, "port %d owned by invalid block %d", p, nl.portBlocks[p])
		}
		if seen[port] != 1 {
			return consistencyf(ViolationCrossRef, "port %d appears %d times in block port lists, want 1",
				p, seen[port])
		}
	}
	return nil
}

func (nl *Netlist) verifyPortPinRefs() error {
	// Forward: each occupied pin slot points back at (port, bit).
	for p := range nl.portNames {
		if nl.portTombs.Contains(uint32(p)) {
			continue
		}
		port := PortID(p)
		for bit, pin := range nl.portPins[p] {
			if !pin.Valid() {
				continue
			}
			if !nl.validPin(pin) {
				return consistencyf(ViolationCrossRef, "port %d bit %d holds invalid pin %d", p, bit, pin)
			}
			if nl.pinPorts[pin] != port || nl.pinBits[pin] != bit {
				return consistencyf(ViolationCrossRef, "pin %d stored at (port %d, bit %d) but claims (port %d, bit %d)",
					pin, p, bit, nl.pinPorts[pin], nl.pinBits[pin])
			}
		}
	}

	// Reverse: every live pin occupies exactly its slot.
	for p := range nl.pinPorts {
		if nl.pinTombs.Contains(uint32(p)) {
			continue
		}
		pin := PinID(p)
		port := nl.pinPorts[p]
		if !nl.validPort(port) {
			return consistencyf(ViolationCrossRef, "pin %d owned by invalid port %d", p, port)
		}
		bit := nl.pinBits[p]
		if bit < 0 || bit >= nl.portWidths[port] {
			return consistencyf(ViolationCrossRef, "pin %d has bit %d outside port %d width %d",
				p, bit, port, nl.portWidths[port])
		}
		if nl.portPins[port][bit] != pin {
			return consistencyf(ViolationCrossRef, "pin %d not stored at its slot (port %d, bit %d)", p, port, bit)
		}
	}
	return nil
}

func (nl *Netlist) verifyNetPinRefs() error {
	// Forward: net pin lists reference live pins that point back, with
	// the driver at slot 0 and at most one driver overall.
	onNet := make(map[PinID]int)
	for n := range nl.netNames {
		if nl.netTombs.Contains(uint32(n)) {
			continue
		}
		net := NetID(n)
		for slot, pin := range nl.netPins[n] {
			if slot == 0 && !pin.Valid() {
				continue // undriven net
			}
			if !nl.validPin(pin) {
				return consistencyf(ViolationCrossRef, "net %d slot %d holds invalid pin %d", n, slot, pin)
			}
			if nl.pinNets[pin] != net {
				return consistencyf(ViolationCrossRef, "pin %d listed on net %d but wired to net %d",
					pin, n, nl.pinNets[pin])
			}
			if slot == 0 && nl.pinKinds[pin] != PinDriver {
				return consistencyf(ViolationCrossRef, "net %d driver slot holds %s pin %d", n, nl.pinKinds[pin], pin)
			}
			if slot > 0 && nl.pinKinds[pin] != PinSink {
				return consistencyf(ViolationCrossRef, "net %d sink slot %d holds %s pin %d", n, slot, nl.pinKinds[pin], pin)
			}
			onNet[pin]++
		}
	}

	// Reverse: every connected live pin appears on its net exactly once.
	for p := range nl.pinPorts {
		if nl.pinTombs.Contains(uint32(p)) {
			continue
		}
		pin := PinID(p)
		net := nl.pinNets[p]
		if !net.Valid() {
			continue
		}
		if !nl.validNet(net) {
			return consistencyf(ViolationCrossRef, "pin %d wired to invalid net %d", p, net)
		}
		if onNet[pin] != 1 {
			return consistencyf(ViolationCrossRef, "pin %d appears %d times on net %d, want 1", p, onNet[pin], net)
		}
	}
	return nil
}

// verifyLookups checks that every fast lookup table matches what a
// linear scan of the stores produces.
func (nl *Netlist) verifyLookups() error {
	liveBlocks := 0
	for b, nameID := range nl.blockNames {
		if nl.blockTombs.Contains(uint32(b)) {
			continue
		}
		liveBlocks++
		if got, ok := nl.blockByName[nameID]; !ok || got != BlockID(b) {
			return consistencyf(ViolationLookup, "block %d (%s) missing or mismatched in name lookup",
				b, nl.strings.Lookup(nameID))
		}
	}
	if len(nl.blockByName) != liveBlocks {
		return consistencyf(ViolationLookup, "block lookup has %d entries, want %d", len(nl.blockByName), liveBlocks)
	}

	livePorts := 0
	for p, nameID := range nl.portNames {
		if nl.portTombs.Contains(uint32(p)) {
			continue
		}
		livePorts++
		key := portKey{Block: nl.portBlocks[p], Name: nameID}
		if got, ok := nl.portByKey[key]; !ok || got != PortID(p) {
			return consistencyf(ViolationLookup, "port %d missing or mismatched in (block, name) lookup", p)
		}
	}
	if len(nl.portByKey) != livePorts {
		return consistencyf(ViolationLookup, "port lookup has %d entries, want %d", len(nl.portByKey), livePorts)
	}

	livePins := 0
	for p := range nl.pinPorts {
		if nl.pinTombs.Contains(uint32(p)) {
			continue
		}
		livePins++
		key := pinKey{Port: nl.pinPorts[p], Bit: nl.pinBits[p]}
		if got, ok := nl.pinByKey[key]; !ok || got != PinID(p) {
			return consistencyf(ViolationLookup, "pin %d missing or mismatched in (port, bit) lookup", p)
		}
	}
	if len(nl.pinByKey) != livePins {
		return consistencyf(ViolationLookup, "pin lookup has %d entries, want %d", len(nl.pinByKey), livePins)
	}

	liveNets := 0
	for n, nameID := range nl.netNames {
		if nl.netTombs.Contains(uint32(n)) {
			continue
		}
		liveNets++
		if got, ok := nl.netByName[nameID]; !ok || got != NetID(n) {
			return consistencyf(ViolationLookup, "net %d (%s) missing or mismatched in name lookup",
				n, nl.strings.Lookup(nameID))
		}
	}
	if len(nl.netByName) != liveNets {
		return consistencyf(ViolationLookup, "net lookup has %d entries, want %d", len(nl.netByName), liveNets)
	}
	return nil
}
