package netlist

import (
	"fmt"
	"iter"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/fpgaflow/netlist/arch"
	"github.com/fpgaflow/netlist/internal/intern"
)

// portKey addresses a port by (owning block, interned name).
type portKey struct {
	Block BlockID
	Name  intern.StringID
}

// pinKey addresses a pin by (owning port, bit index).
type pinKey struct {
	Port PortID
	Bit  int
}

// Netlist is the atom netlist container.
//
// Storage is struct-of-arrays: every entity kind has a set of parallel
// columns indexed by its ID. Removed rows are tombstoned in a per-kind
// bitmap and physically evicted only by Compress.
//
// The zero value is not usable; call New.
type Netlist struct {
	name   string
	dirty  bool
	logger *Logger

	strings *intern.Table

	// Block columns, indexed by BlockID.
	blockNames   []intern.StringID
	blockModels  []*arch.Model
	blockTTs     []TruthTable
	blockInputs  [][]PortID
	blockOutputs [][]PortID
	blockClocks  [][]PortID
	blockTombs   *roaring.Bitmap

	// Port columns, indexed by PortID.
	portNames   []intern.StringID
	portBlocks  []BlockID
	portWidths  []int
	portClasses []arch.PortClass
	portPins    [][]PinID // one slot per bit; InvalidPinID when the bit has no pin
	portTombs   *roaring.Bitmap

	// Pin columns, indexed by PinID.
	pinPorts []PortID
	pinBits  []int
	pinNets  []NetID // InvalidNetID when unconnected
	pinKinds []PinKind
	pinTombs *roaring.Bitmap

	// Net columns, indexed by NetID.
	netNames []intern.StringID
	netPins  [][]PinID // slot 0 is the driver (may be invalid), rest are sinks
	netTombs *roaring.Bitmap

	// Fast lookups. Rebuilt from scratch by Compress; kept in sync
	// incrementally by every mutation in between.
	blockByName map[intern.StringID]BlockID
	portByKey   map[portKey]PortID
	pinByKey    map[pinKey]PinID
	netByName   map[intern.StringID]NetID
}

// New creates an empty netlist with the given name.
func New(name string, opts ...Option) *Netlist {
	o := options{logger: NoopLogger()}
	for _, fn := range opts {
		fn(&o)
	}

	hint := o.capacityHint

	return &Netlist{
		name:   name,
		logger: o.logger,

		strings: intern.NewTable(),

		blockNames:   make([]intern.StringID, 0, hint),
		blockModels:  make([]*arch.Model, 0, hint),
		blockTTs:     make([]TruthTable, 0, hint),
		blockInputs:  make([][]PortID, 0, hint),
		blockOutputs: make([][]PortID, 0, hint),
		blockClocks:  make([][]PortID, 0, hint),
		blockTombs:   roaring.New(),

		portTombs: roaring.New(),
		pinTombs:  roaring.New(),
		netTombs:  roaring.New(),

		blockByName: make(map[intern.StringID]BlockID, hint),
		portByKey:   make(map[portKey]PortID, hint),
		pinByKey:    make(map[pinKey]PinID, hint),
		netByName:   make(map[intern.StringID]NetID, hint),
	}
}

// Name returns the netlist name.
func (nl *Netlist) Name() string { return nl.name }

// Dirty reports whether any rows are tombstoned, i.e. a Remove* call has
// happened since the last Compress.
func (nl *Netlist) Dirty() bool { return nl.dirty }

// Blocks iterates over all live blocks in id order.
func (nl *Netlist) Blocks() iter.Seq[BlockID] {
	return func(yield func(BlockID) bool) {
		for i := range nl.blockNames {
			id := BlockID(i)
			if nl.blockTombs.Contains(uint32(i)) {
				continue
			}
			if !yield(id) {
				return
			}
		}
	}
}

// Nets iterates over all live nets in id order.
func (nl *Netlist) Nets() iter.Seq[NetID] {
	return func(yield func(NetID) bool) {
		for i := range nl.netNames {
			id := NetID(i)
			if nl.netTombs.Contains(uint32(i)) {
				continue
			}
			if !yield(id) {
				return
			}
		}
	}
}

/*
 * Handle validation.
 *
 * Passing an invalid, tombstoned, or stale (pre-Compress) ID to an
 * accessor is a programmer error. Silent stale reads are the dominant
 * class of netlist corruption bugs, so accessors fail fast instead of
 * returning garbage.
 */

func (nl *Netlist) validBlock(id BlockID) bool {
	return id.Valid() && int(id) < len(nl.blockNames) && !nl.blockTombs.Contains(uint32(id))
}

func (nl *Netlist) validPort(id PortID) bool {
	return id.Valid() && int(id) < len(nl.portNames) && !nl.portTombs.Contains(uint32(id))
}

func (nl *Netlist) validPin(id PinID) bool {
	return id.Valid() && int(id) < len(nl.pinPorts) && !nl.pinTombs.Contains(uint32(id))
}

func (nl *Netlist) validNet(id NetID) bool {
	return id.Valid() && int(id) < len(nl.netNames) && !nl.netTombs.Contains(uint32(id))
}

func (nl *Netlist) mustBlock(id BlockID) {
	if !nl.validBlock(id) {
		panic(fmt.Sprintf("netlist %q: invalid block id %d", nl.name, id))
	}
}

func (nl *Netlist) mustPort(id PortID) {
	if !nl.validPort(id) {
		panic(fmt.Sprintf("netlist %q: invalid port id %d", nl.name, id))
	}
}

func (nl *Netlist) mustPin(id PinID) {
	if !nl.validPin(id) {
		panic(fmt.Sprintf("netlist %q: invalid pin id %d", nl.name, id))
	}
}

func (nl *Netlist) mustNet(id NetID) {
	if !nl.validNet(id) {
		panic(fmt.Sprintf("netlist %q: invalid net id %d", nl.name, id))
	}
}
