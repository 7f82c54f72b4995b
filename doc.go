// Package netlist implements the primitive (atom) netlist used between
// logic synthesis and placement/routing.
//
// The netlist is a hypergraph of Blocks, Ports, Pins and Nets:
//
//   - A Block is a primitive node (LUT, flip-flop, I/O pad) with ports.
//   - A Port is a named, fixed-width group of pins on a block.
//   - A Pin is a single-bit connection point, either a driver or a sink.
//   - A Net is the hyperedge connecting one driver pin to its sinks.
//
// Every entity is referenced through an opaque, kind-specific ID
// (BlockID, PortID, PinID, NetID). Internally the netlist is stored in
// struct-of-arrays form: each ID is an index into a set of parallel
// columns, which keeps hot queries cache-friendly and lets the back end
// walk millions of pins without pointer chasing.
//
// # Building a netlist
//
//	lut := arch.MustModel("lut2",
//		arch.PortDef{Name: "in", Width: 2, Class: arch.Input},
//		arch.PortDef{Name: "out", Width: 1, Class: arch.Output},
//	)
//
//	nl := netlist.New("top")
//	b1 := nl.CreateBlock("b1", lut, nil)
//	y, _ := nl.CreatePort(b1, "out")
//	n1 := nl.CreateNet("n1")
//	_, _ = nl.CreatePin(y, 0, n1, netlist.PinDriver)
//
// All Create* calls are idempotent: creating an entity that already
// exists returns the existing ID.
//
// # Removing and compressing
//
// Remove* calls only tombstone rows; storage is reclaimed by an explicit
// Compress call:
//
//	nl.RemoveBlock(b1)
//	nl.Compress() // invalidates ALL previously issued IDs
//
// Compress renumbers every surviving entity densely and rewrites all
// cross-references, so any ID obtained before the call must be
// discarded. Dirty reports whether tombstones are pending.
//
// # Concurrency
//
// The netlist performs no internal locking. Concurrent readers are safe
// only while no mutation (Create*, Remove*, Compress) is in flight; the
// caller owns that discipline.
package netlist
