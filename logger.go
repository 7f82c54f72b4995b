package netlist

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with netlist-specific helpers.
// The default netlist logger discards everything; use WithLogger to
// attach one.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, a text handler writing to stderr is used.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger that writes human-readable text to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler)}
}

// LogCompress logs the outcome of a Compress call.
func (l *Logger) LogCompress(name string, before, after Stats) {
	l.Debug("netlist compressed",
		"netlist", name,
		"blocks", after.LiveBlocks,
		"ports", after.LivePorts,
		"pins", after.LivePins,
		"nets", after.LiveNets,
		"evicted_blocks", before.Blocks-after.Blocks,
		"evicted_ports", before.Ports-after.Ports,
		"evicted_pins", before.Pins-after.Pins,
		"evicted_nets", before.Nets-after.Nets,
	)
}

// LogStats logs entity counts and lookup table sizes.
func (l *Logger) LogStats(name string, s Stats) {
	l.Info("netlist stats",
		"netlist", name,
		"blocks", s.Blocks,
		"live_blocks", s.LiveBlocks,
		"ports", s.Ports,
		"live_ports", s.LivePorts,
		"pins", s.Pins,
		"live_pins", s.LivePins,
		"nets", s.Nets,
		"live_nets", s.LiveNets,
		"strings", s.Strings,
		"block_lookup", s.BlockLookupEntries,
		"port_lookup", s.PortLookupEntries,
		"pin_lookup", s.PinLookupEntries,
		"net_lookup", s.NetLookupEntries,
	)
}
