package arch

import (
	"fmt"
	"io"
	"sort"

	yaml "gopkg.in/yaml.v2"
)

// Library is a named collection of models, typically loaded from an
// architecture description file. It is the lookup surface handed to
// snapshot loading so model references can be resolved by name.
type Library struct {
	models map[string]*Model
}

// NewLibrary creates a library holding the given models.
func NewLibrary(models ...*Model) (*Library, error) {
	l := &Library{models: make(map[string]*Model, len(models))}
	for _, m := range models {
		if err := l.Add(m); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Add registers a model. Model names must be unique within the library.
func (l *Library) Add(m *Model) error {
	if _, dup := l.models[m.Name()]; dup {
		return fmt.Errorf("arch: library already contains model %q", m.Name())
	}
	l.models[m.Name()] = m
	return nil
}

// Get returns the named model.
func (l *Library) Get(name string) (*Model, bool) {
	m, ok := l.models[name]
	return m, ok
}

// Names returns the sorted model names.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.models))
	for name := range l.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of models in the library.
func (l *Library) Len() int { return len(l.models) }

// libraryDoc is the YAML shape of an architecture model file:
//
//	models:
//	  - name: lut4
//	    ports:
//	      - {name: in, width: 4, class: input}
//	      - {name: out, width: 1, class: output}
type libraryDoc struct {
	Models []modelDoc `yaml:"models"`
}

type modelDoc struct {
	Name  string    `yaml:"name"`
	Ports []portDoc `yaml:"ports"`
}

type portDoc struct {
	Name  string `yaml:"name"`
	Width int    `yaml:"width"`
	Class string `yaml:"class"`
}

// LoadLibrary parses a YAML model description into a Library.
func LoadLibrary(r io.Reader) (*Library, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("arch: read library: %w", err)
	}

	var doc libraryDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("arch: parse library: %w", err)
	}

	lib, _ := NewLibrary()
	for _, md := range doc.Models {
		ports := make([]PortDef, 0, len(md.Ports))
		for _, pd := range md.Ports {
			class, err := parseClass(pd.Class)
			if err != nil {
				return nil, fmt.Errorf("arch: model %q port %q: %w", md.Name, pd.Name, err)
			}
			width := pd.Width
			if width == 0 {
				width = 1 // unspecified width defaults to a single bit
			}
			ports = append(ports, PortDef{Name: pd.Name, Width: width, Class: class})
		}
		m, err := NewModel(md.Name, ports...)
		if err != nil {
			return nil, err
		}
		if err := lib.Add(m); err != nil {
			return nil, err
		}
	}
	return lib, nil
}

func parseClass(s string) (PortClass, error) {
	switch s {
	case "input", "":
		return Input, nil
	case "output":
		return Output, nil
	case "clock":
		return Clock, nil
	default:
		return 0, fmt.Errorf("unknown port class %q", s)
	}
}
