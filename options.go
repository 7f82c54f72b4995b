package netlist

type options struct {
	logger       *Logger
	capacityHint int
}

// Option configures New.
type Option func(*options)

// WithLogger attaches a structured logger. If nil is passed, logging
// stays disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCapacityHint pre-sizes the per-kind columns for roughly n blocks.
// Purely a performance hint; the netlist grows as needed regardless.
func WithCapacityHint(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacityHint = n
		}
	}
}
