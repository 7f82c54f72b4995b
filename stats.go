package netlist

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Stats holds entity counts and lookup table sizes for debugging and
// logging. Total counts include tombstoned rows; live counts do not.
type Stats struct {
	Blocks     int
	LiveBlocks int
	Ports      int
	LivePorts  int
	Pins       int
	LivePins   int
	Nets       int
	LiveNets   int
	Strings    int

	BlockLookupEntries int
	PortLookupEntries  int
	PinLookupEntries   int
	NetLookupEntries   int
}

// Stats returns a snapshot of the container's sizes.
func (nl *Netlist) Stats() Stats {
	return Stats{
		Blocks:     len(nl.blockNames),
		LiveBlocks: len(nl.blockNames) - int(nl.blockTombs.GetCardinality()),
		Ports:      len(nl.portNames),
		LivePorts:  len(nl.portNames) - int(nl.portTombs.GetCardinality()),
		Pins:       len(nl.pinPorts),
		LivePins:   len(nl.pinPorts) - int(nl.pinTombs.GetCardinality()),
		Nets:       len(nl.netNames),
		LiveNets:   len(nl.netNames) - int(nl.netTombs.GetCardinality()),
		Strings:    nl.strings.Len(),

		BlockLookupEntries: len(nl.blockByName),
		PortLookupEntries:  len(nl.portByKey),
		PinLookupEntries:   len(nl.pinByKey),
		NetLookupEntries:   len(nl.netByName),
	}
}

// PrintStats logs the current stats through the attached logger.
func (nl *Netlist) PrintStats() {
	nl.logger.LogStats(nl.name, nl.Stats())
}

// Fingerprint returns a hash of the live netlist contents, independent
// of ID numbering: it hashes names and structure rather than handles, so
// it is unchanged by Compress. Useful for cheap change detection between
// pipeline stages.
func (nl *Netlist) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [8]byte

	writeInt := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = d.Write(buf[:])
	}
	writeString := func(s string) {
		writeInt(len(s))
		_, _ = d.WriteString(s)
	}

	for block := range nl.Blocks() {
		writeString(nl.BlockName(block))
		writeString(nl.BlockModel(block).Name())
		tt := nl.BlockTruthTable(block)
		writeInt(len(tt))
		for _, row := range tt {
			writeInt(len(row))
			for _, v := range row {
				writeInt(int(v))
			}
		}
		for _, ports := range [][]PortID{nl.BlockInputPorts(block), nl.BlockOutputPorts(block), nl.BlockClockPorts(block)} {
			writeInt(len(ports))
			for _, port := range ports {
				writeString(nl.PortName(port))
				writeInt(nl.PortWidth(port))
				for bit := 0; bit < nl.PortWidth(port); bit++ {
					pin := nl.PortPin(port, bit)
					if !pin.Valid() {
						writeInt(-1)
						continue
					}
					writeInt(int(nl.PinKind(pin)))
					if net := nl.PinNet(pin); net.Valid() {
						writeString(nl.NetName(net))
					} else {
						writeString("")
					}
				}
			}
		}
	}

	for net := range nl.Nets() {
		writeString(nl.NetName(net))
	}

	return d.Sum64()
}
