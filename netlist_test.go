package netlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fpgaflow/netlist/arch"
)

func lutModel(t *testing.T) *arch.Model {
	t.Helper()
	return arch.MustModel("lut2",
		arch.PortDef{Name: "in", Width: 2, Class: arch.Input},
		arch.PortDef{Name: "out", Width: 1, Class: arch.Output},
	)
}

func dffModel(t *testing.T) *arch.Model {
	t.Helper()
	return arch.MustModel("dff",
		arch.PortDef{Name: "D", Width: 1, Class: arch.Input},
		arch.PortDef{Name: "Q", Width: 1, Class: arch.Output},
		arch.PortDef{Name: "clk", Width: 1, Class: arch.Clock},
	)
}

func TestCreateBlockIdempotent(t *testing.T) {
	nl := New("top")
	lut := lutModel(t)

	b1 := nl.CreateBlock("b1", lut, nil)
	b1Again := nl.CreateBlock("b1", lut, nil)

	assert.Equal(t, b1, b1Again)
	assert.Equal(t, 1, nl.Stats().Blocks)
	assert.Equal(t, "b1", nl.BlockName(b1))
	assert.Same(t, lut, nl.BlockModel(b1))
	require.NoError(t, nl.Verify())
}

func TestCreatePort(t *testing.T) {
	nl := New("top")
	ff := nl.CreateBlock("ff", dffModel(t), nil)

	d, err := nl.CreatePort(ff, "D")
	require.NoError(t, err)
	q, err := nl.CreatePort(ff, "Q")
	require.NoError(t, err)
	clk, err := nl.CreatePort(ff, "clk")
	require.NoError(t, err)

	// Idempotent by (block, name).
	dAgain, err := nl.CreatePort(ff, "D")
	require.NoError(t, err)
	assert.Equal(t, d, dAgain)
	assert.Equal(t, 3, nl.Stats().Ports)

	// Ports land in the list matching their model class.
	assert.Equal(t, []PortID{d}, nl.BlockInputPorts(ff))
	assert.Equal(t, []PortID{q}, nl.BlockOutputPorts(ff))
	assert.Equal(t, []PortID{clk}, nl.BlockClockPorts(ff))

	assert.Equal(t, arch.Input, nl.PortClass(d))
	assert.Equal(t, 1, nl.PortWidth(d))
	assert.Equal(t, ff, nl.PortBlock(d))
	assert.Equal(t, "D", nl.PortName(d))

	// Unknown model port fails without mutating.
	_, err = nl.CreatePort(ff, "bogus")
	assert.ErrorIs(t, err, ErrUnknownModelPort)
	assert.Equal(t, 3, nl.Stats().Ports)

	require.NoError(t, nl.Verify())
}

func TestCreatePinAndNets(t *testing.T) {
	nl := New("top")
	lut := lutModel(t)
	b1 := nl.CreateBlock("b1", lut, nil)
	in, err := nl.CreatePort(b1, "in")
	require.NoError(t, err)

	n1 := nl.CreateNet("n1")
	assert.Equal(t, n1, nl.CreateNet("n1"))
	assert.False(t, nl.NetDriver(n1).Valid())
	assert.Empty(t, nl.NetSinks(n1))

	pin, err := nl.CreatePin(in, 1, n1, PinSink)
	require.NoError(t, err)

	// Idempotent with identical arguments.
	again, err := nl.CreatePin(in, 1, n1, PinSink)
	require.NoError(t, err)
	assert.Equal(t, pin, again)

	// Same slot with different wiring is rejected.
	_, err = nl.CreatePin(in, 1, InvalidNetID, PinSink)
	assert.ErrorIs(t, err, ErrPinExists)

	// Bit outside the port width is rejected.
	_, err = nl.CreatePin(in, 2, n1, PinSink)
	assert.ErrorIs(t, err, ErrBitOutOfRange)

	assert.Equal(t, in, nl.PinPort(pin))
	assert.Equal(t, 1, nl.PinPortBit(pin))
	assert.Equal(t, n1, nl.PinNet(pin))
	assert.Equal(t, PinSink, nl.PinKind(pin))
	assert.Equal(t, b1, nl.PinBlock(pin))

	assert.Equal(t, pin, nl.PortPin(in, 1))
	assert.False(t, nl.PortPin(in, 0).Valid())
	assert.Equal(t, n1, nl.PortNet(in, 1))
	assert.Equal(t, InvalidNetID, nl.PortNet(in, 0))
	assert.Equal(t, []PinID{pin}, nl.PortPins(in))

	require.NoError(t, nl.Verify())
}

func TestDriverUniqueness(t *testing.T) {
	nl := New("top")
	lut := lutModel(t)
	b1 := nl.CreateBlock("b1", lut, nil)
	b2 := nl.CreateBlock("b2", lut, nil)
	out1, err := nl.CreatePort(b1, "out")
	require.NoError(t, err)
	out2, err := nl.CreatePort(b2, "out")
	require.NoError(t, err)

	n1 := nl.CreateNet("n1")
	d1, err := nl.CreatePin(out1, 0, n1, PinDriver)
	require.NoError(t, err)
	assert.Equal(t, d1, nl.NetDriver(n1))

	// A second driver on the same net is a caller error.
	_, err = nl.CreatePin(out2, 0, n1, PinDriver)
	assert.ErrorIs(t, err, ErrDriverConflict)
	assert.Equal(t, d1, nl.NetDriver(n1))
	require.NoError(t, nl.Verify())
}

func TestAddNet(t *testing.T) {
	nl := New("top")
	lut := lutModel(t)
	b1 := nl.CreateBlock("b1", lut, nil)
	b2 := nl.CreateBlock("b2", lut, nil)
	out, err := nl.CreatePort(b1, "out")
	require.NoError(t, err)
	in, err := nl.CreatePort(b2, "in")
	require.NoError(t, err)

	driver, err := nl.CreatePin(out, 0, InvalidNetID, PinDriver)
	require.NoError(t, err)
	sink0, err := nl.CreatePin(in, 0, InvalidNetID, PinSink)
	require.NoError(t, err)
	sink1, err := nl.CreatePin(in, 1, InvalidNetID, PinSink)
	require.NoError(t, err)

	n1, err := nl.AddNet("n1", driver, []PinID{sink0, sink1})
	require.NoError(t, err)
	assert.Equal(t, driver, nl.NetDriver(n1))
	assert.Equal(t, []PinID{sink0, sink1}, nl.NetSinks(n1))
	assert.Equal(t, n1, nl.PinNet(driver))

	// The name must be previously unused.
	_, err = nl.AddNet("n1", InvalidPinID, nil)
	assert.ErrorIs(t, err, ErrNetExists)

	// Already-connected pins are rejected before any mutation.
	_, err = nl.AddNet("n2", driver, nil)
	assert.ErrorIs(t, err, ErrPinConnected)
	assert.False(t, nl.FindNet("n2").Valid())

	// Kind mismatches are rejected.
	_, err = nl.AddNet("n3", sink0, nil)
	assert.ErrorIs(t, err, ErrPinKind)
	_, err = nl.AddNet("n4", InvalidPinID, []PinID{driver})
	assert.ErrorIs(t, err, ErrPinKind)

	require.NoError(t, nl.Verify())
}

func TestAddNetRejectsRepeatedSink(t *testing.T) {
	nl := New("top")
	lut := lutModel(t)
	b1 := nl.CreateBlock("b1", lut, nil)
	in, err := nl.CreatePort(b1, "in")
	require.NoError(t, err)
	sink, err := nl.CreatePin(in, 0, InvalidNetID, PinSink)
	require.NoError(t, err)

	// The same pin twice in the sink set must not be wired twice.
	_, err = nl.AddNet("n1", InvalidPinID, []PinID{sink, sink})
	assert.ErrorIs(t, err, ErrDuplicatePin)

	// Rejected before any mutation: the pin stays unconnected, the net
	// was never created, and all invariants hold.
	assert.Equal(t, InvalidNetID, nl.PinNet(sink))
	assert.False(t, nl.FindNet("n1").Valid())
	require.NoError(t, nl.Verify())
}

func TestFindLookups(t *testing.T) {
	nl := New("top")
	lut := lutModel(t)
	b1 := nl.CreateBlock("b1", lut, nil)
	in, err := nl.CreatePort(b1, "in")
	require.NoError(t, err)
	pin, err := nl.CreatePin(in, 0, InvalidNetID, PinSink)
	require.NoError(t, err)
	n1 := nl.CreateNet("n1")

	assert.Equal(t, b1, nl.FindBlock("b1"))
	assert.Equal(t, in, nl.FindPort(b1, "in"))
	assert.Equal(t, pin, nl.FindPin(in, 0))
	assert.Equal(t, n1, nl.FindNet("n1"))

	// Benign absence yields the invalid sentinel, never an error.
	assert.Equal(t, InvalidBlockID, nl.FindBlock("nope"))
	assert.Equal(t, InvalidPortID, nl.FindPort(b1, "nope"))
	assert.Equal(t, InvalidPinID, nl.FindPin(in, 1))
	assert.Equal(t, InvalidNetID, nl.FindNet("nope"))
}

func TestIterationOrder(t *testing.T) {
	nl := New("top")
	lut := lutModel(t)
	var want []BlockID
	for _, name := range []string{"a", "b", "c"} {
		want = append(want, nl.CreateBlock(name, lut, nil))
	}

	var got []BlockID
	for id := range nl.Blocks() {
		got = append(got, id)
	}
	assert.Equal(t, want, got)

	n1 := nl.CreateNet("n1")
	n2 := nl.CreateNet("n2")
	var nets []NetID
	for id := range nl.Nets() {
		nets = append(nets, id)
	}
	assert.Equal(t, []NetID{n1, n2}, nets)
}

func TestAccessorPanicsOnStaleID(t *testing.T) {
	nl := New("top")
	lut := lutModel(t)
	b1 := nl.CreateBlock("b1", lut, nil)

	assert.Panics(t, func() { nl.BlockName(InvalidBlockID) })
	assert.Panics(t, func() { nl.BlockName(BlockID(99)) })

	nl.RemoveBlock(b1)
	assert.Panics(t, func() { nl.BlockName(b1) })
}

func TestBlockType(t *testing.T) {
	nl := New("top")

	inpad := arch.MustModel(arch.ModelInput, arch.PortDef{Name: "inpad", Width: 1, Class: arch.Output})
	outpad := arch.MustModel(arch.ModelOutput, arch.PortDef{Name: "outpad", Width: 1, Class: arch.Input})

	assert.Equal(t, BlockInputPad, nl.BlockType(nl.CreateBlock("i", inpad, nil)))
	assert.Equal(t, BlockOutputPad, nl.BlockType(nl.CreateBlock("o", outpad, nil)))
	assert.Equal(t, BlockCombinational, nl.BlockType(nl.CreateBlock("l", lutModel(t), nil)))
	assert.Equal(t, BlockSequential, nl.BlockType(nl.CreateBlock("f", dffModel(t), nil)))
}

// TestEndToEndScenario follows the canonical two-block flow: B1.Y drives
// net N1, B2.A sinks it; removing B2 and compressing leaves N1 driven
// with no sinks.
func TestEndToEndScenario(t *testing.T) {
	src := arch.MustModel("src", arch.PortDef{Name: "Y", Width: 1, Class: arch.Output})
	dst := arch.MustModel("dst", arch.PortDef{Name: "A", Width: 1, Class: arch.Input})

	nl := New("top")
	b1 := nl.CreateBlock("B1", src, nil)
	b2 := nl.CreateBlock("B2", dst, nil)

	y, err := nl.CreatePort(b1, "Y")
	require.NoError(t, err)
	a, err := nl.CreatePort(b2, "A")
	require.NoError(t, err)

	n1 := nl.CreateNet("N1")
	drv, err := nl.CreatePin(y, 0, n1, PinDriver)
	require.NoError(t, err)
	snk, err := nl.CreatePin(a, 0, n1, PinSink)
	require.NoError(t, err)

	require.NoError(t, nl.Verify())

	assert.Equal(t, drv, nl.NetDriver(n1))
	assert.Equal(t, []PinID{snk}, nl.NetSinks(n1))
	assert.Equal(t, b1, nl.PinBlock(drv))
	assert.Equal(t, b2, nl.PinBlock(snk))

	nl.RemoveBlock(b2)
	require.True(t, nl.Dirty())
	require.NoError(t, nl.Verify())

	nl.Compress()
	require.NoError(t, nl.Verify())
	assert.False(t, nl.Dirty())

	// B2 is gone; N1 survives with an unchanged driver and no sinks.
	assert.False(t, nl.FindBlock("B2").Valid())
	n1 = nl.FindNet("N1")
	require.True(t, n1.Valid())
	driver := nl.NetDriver(n1)
	require.True(t, driver.Valid())
	assert.Equal(t, "B1", nl.BlockName(nl.PinBlock(driver)))
	assert.Empty(t, nl.NetSinks(n1))
	assert.Equal(t, 1, nl.Stats().LiveBlocks)
}
