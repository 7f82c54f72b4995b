package netlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsCounts(t *testing.T) {
	nl, _ := chain(t, 3)

	st := nl.Stats()
	assert.Equal(t, 3, st.Blocks)
	assert.Equal(t, 3, st.LiveBlocks)
	assert.Equal(t, 4, st.Ports)
	assert.Equal(t, 4, st.Pins)
	assert.Equal(t, 2, st.Nets)
	assert.Equal(t, st.Blocks, st.BlockLookupEntries)
	assert.Equal(t, st.Ports, st.PortLookupEntries)
	assert.Equal(t, st.Pins, st.PinLookupEntries)
	assert.Equal(t, st.Nets, st.NetLookupEntries)

	// Tombstoning drops live counts and lookup entries; totals stay.
	nl.RemoveBlock(nl.FindBlock("blk1"))
	st = nl.Stats()
	assert.Equal(t, 3, st.Blocks)
	assert.Equal(t, 2, st.LiveBlocks)
	assert.Equal(t, 4, st.Ports)
	assert.Equal(t, 2, st.LivePorts)
	assert.Equal(t, 2, st.LivePins)
	assert.Equal(t, 2, st.BlockLookupEntries)
	assert.Equal(t, 2, st.PortLookupEntries)

	// Compaction brings totals back down to the live counts.
	nl.Compress()
	st = nl.Stats()
	assert.Equal(t, st.LiveBlocks, st.Blocks)
	assert.Equal(t, st.LivePorts, st.Ports)
	assert.Equal(t, st.LivePins, st.Pins)
	assert.Equal(t, st.LiveNets, st.Nets)
}

func TestFingerprintMatchesEqualNetlists(t *testing.T) {
	a, _ := chain(t, 4)
	b, _ := chain(t, 4)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestFingerprintSeesContentChanges(t *testing.T) {
	nl, _ := chain(t, 3)
	base := nl.Fingerprint()

	nl.CreateNet("extra")
	changed := nl.Fingerprint()
	assert.NotEqual(t, base, changed)

	// Detaching a pin changes connectivity, and with it the hash.
	net := nl.FindNet("net0")
	require.NoError(t, nl.RemoveNetPin(net, nl.NetSinks(net)[0]))
	assert.NotEqual(t, changed, nl.Fingerprint())
}

func TestPrintStats(t *testing.T) {
	nl, _ := chain(t, 2)
	assert.NotPanics(t, nl.PrintStats)
}
