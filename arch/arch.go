// Package arch describes the primitive block types available to a netlist.
//
// A Model is the architecture-side declaration of a primitive: the set of
// ports it exposes, each with a fixed bit width and a directional class.
// The netlist consults a block's Model when a port is created to decide
// which of the block's port lists (input/output/clock) the port joins.
// Models are immutable after construction and shared by reference.
package arch

import (
	"fmt"
)

// Well-known model names for the built-in primitives of a BLIF-style
// front end. Anything else is treated as a user primitive.
const (
	ModelInput  = ".input"
	ModelOutput = ".output"
	ModelNames  = ".names"
	ModelLatch  = ".latch"
)

// PortClass is the directional class of a model port.
type PortClass uint8

const (
	// Input ports consume signals.
	Input PortClass = iota
	// Output ports produce signals.
	Output
	// Clock ports consume clock signals.
	Clock
)

// String returns the lower-case class name.
func (c PortClass) String() string {
	switch c {
	case Input:
		return "input"
	case Output:
		return "output"
	case Clock:
		return "clock"
	default:
		return fmt.Sprintf("class(%d)", uint8(c))
	}
}

// PortDef declares a single port on a model.
type PortDef struct {
	Name  string
	Width int
	Class PortClass
}

// Model is an immutable primitive type descriptor.
type Model struct {
	name  string
	ports []PortDef
	index map[string]int
}

// NewModel creates a model from its port declarations.
// Port names must be unique and non-empty, widths must be at least one bit.
func NewModel(name string, ports ...PortDef) (*Model, error) {
	if name == "" {
		return nil, fmt.Errorf("arch: model name must not be empty")
	}

	m := &Model{
		name:  name,
		ports: make([]PortDef, 0, len(ports)),
		index: make(map[string]int, len(ports)),
	}
	for _, p := range ports {
		if p.Name == "" {
			return nil, fmt.Errorf("arch: model %q has a port with an empty name", name)
		}
		if p.Width < 1 {
			return nil, fmt.Errorf("arch: model %q port %q has width %d, want >= 1", name, p.Name, p.Width)
		}
		if _, dup := m.index[p.Name]; dup {
			return nil, fmt.Errorf("arch: model %q declares port %q twice", name, p.Name)
		}
		m.index[p.Name] = len(m.ports)
		m.ports = append(m.ports, p)
	}
	return m, nil
}

// MustModel is like NewModel but panics on error. Intended for tests and
// static model definitions.
func MustModel(name string, ports ...PortDef) *Model {
	m, err := NewModel(name, ports...)
	if err != nil {
		panic(err)
	}
	return m
}

// Name returns the model name.
func (m *Model) Name() string { return m.name }

// Port returns the declaration of the named port.
func (m *Model) Port(name string) (PortDef, bool) {
	i, ok := m.index[name]
	if !ok {
		return PortDef{}, false
	}
	return m.ports[i], true
}

// Ports returns the port declarations in declaration order.
// The returned slice must not be modified.
func (m *Model) Ports() []PortDef { return m.ports }

// HasClock reports whether the model declares any clock port.
func (m *Model) HasClock() bool {
	for _, p := range m.ports {
		if p.Class == Clock {
			return true
		}
	}
	return false
}
