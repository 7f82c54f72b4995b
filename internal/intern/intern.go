// Package intern deduplicates strings into a dense table.
//
// All names in the netlist (blocks, ports, nets) are stored as StringIDs so
// the fast lookup maps hold fixed-size keys instead of strings. IDs are
// assigned sequentially and remain stable for the lifetime of the table.
package intern

import "fmt"

// StringID is a dense identifier for an interned string.
type StringID uint32

// Invalid is the sentinel StringID. It never refers to a stored string.
const Invalid = StringID(^uint32(0))

// Valid reports whether the id refers to a stored string.
func (id StringID) Valid() bool { return id != Invalid }

// Table maps strings to stable StringIDs and back.
// IDs index a slice, so Lookup is a plain array access.
type Table struct {
	ids map[string]StringID
	rev []string
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{ids: make(map[string]StringID)}
}

// Intern returns the StringID for s, allocating a new slot if s has not been
// seen before. Equal strings always yield the same id.
func (t *Table) Intern(s string) StringID {
	if id, ok := t.ids[s]; ok {
		return id
	}
	id := StringID(len(t.rev))
	t.rev = append(t.rev, s)
	t.ids[s] = id
	return id
}

// Find returns the StringID for s if it has been interned.
func (t *Table) Find(s string) (StringID, bool) {
	id, ok := t.ids[s]
	return id, ok
}

// Lookup returns the string for id. Panics if id is invalid or out of range.
func (t *Table) Lookup(id StringID) string {
	if !id.Valid() || int(id) >= len(t.rev) {
		panic(fmt.Sprintf("intern: invalid string id %d", id))
	}
	return t.rev[id]
}

// Len returns the number of interned strings.
func (t *Table) Len() int { return len(t.rev) }
