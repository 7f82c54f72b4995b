package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// Netlist snapshot documents are plain structs of strings and integers,
// which JSON handles portably. Implement Codec to plug in anything else
// (e.g. protobuf/msgpack); snapshots always record the codec name so
// files are validated on load.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the codec used when none is configured.
var Default Codec = JSON{}
