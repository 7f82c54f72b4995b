package snapshot

import (
	"context"
	"fmt"
	"hash/crc32"

	"github.com/fpgaflow/netlist"
	"github.com/fpgaflow/netlist/arch"
	"github.com/fpgaflow/netlist/blobstore"
	"github.com/fpgaflow/netlist/codec"
)

var crcTable = crc32.MakeTable(crc32.Castagnoli)

type options struct {
	codec       codec.Codec
	compression Compression
}

// Option configures Save and Load.
type Option func(*options)

// WithCodec selects the payload codec. Load only uses this as a
// fallback check; the codec actually used is the one named in the blob.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithCompression selects the payload compression for Save.
func WithCompression(c Compression) Option {
	return func(o *options) { o.compression = c }
}

/*
 * Portable payload document. Connectivity is stored by name so the
 * document is independent of any particular ID numbering.
 */

type document struct {
	Name   string     `json:"name"`
	Blocks []blockDoc `json:"blocks"`
	Nets   []string   `json:"nets"`
}

type blockDoc struct {
	Name       string                 `json:"name"`
	Model      string                 `json:"model"`
	TruthTable [][]netlist.LogicValue `json:"truth_table,omitempty"`
	Ports      []portDoc              `json:"ports,omitempty"`
}

type portDoc struct {
	Name string   `json:"name"`
	Pins []pinDoc `json:"pins,omitempty"`
}

type pinDoc struct {
	Bit  int             `json:"bit"`
	Net  string          `json:"net,omitempty"` // empty = unconnected
	Kind netlist.PinKind `json:"kind"`
}

// Save writes the live contents of nl to the blob store under name.
// Tombstoned entities are not written, so saving a dirty netlist
// behaves like saving its compressed equivalent.
func Save(ctx context.Context, nl *netlist.Netlist, store blobstore.Store, name string, opts ...Option) error {
	o := options{codec: codec.Default, compression: CompressionZSTD}
	for _, fn := range opts {
		fn(&o)
	}

	doc := encodeDocument(nl)
	payload, err := o.codec.Marshal(doc)
	if err != nil {
		return fmt.Errorf("snapshot: encode payload: %w", err)
	}

	stored, err := compress(payload, o.compression)
	if err != nil {
		return err
	}

	h := header{
		Magic:       MagicNumber,
		Version:     Version,
		Compression: o.compression,
		CodecName:   o.codec.Name(),
		PayloadLen:  uint64(len(stored)),
		Checksum:    crc32.Checksum(stored, crcTable),
	}
	head, err := h.encode()
	if err != nil {
		return err
	}

	blob := make([]byte, 0, len(head)+len(stored))
	blob = append(blob, head...)
	blob = append(blob, stored...)

	if err := store.Put(ctx, name, blob); err != nil {
		return fmt.Errorf("snapshot: store %q: %w", name, err)
	}
	return nil
}

// Load reads a snapshot from the blob store and rebuilds the netlist,
// resolving model references through lib. IDs are freshly assigned; the
// loaded netlist always passes Verify.
func Load(ctx context.Context, store blobstore.Store, name string, lib *arch.Library, opts ...Option) (*netlist.Netlist, error) {
	o := options{}
	for _, fn := range opts {
		fn(&o)
	}

	blob, err := store.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("snapshot: fetch %q: %w", name, err)
	}

	h, payloadOff, err := decodeHeader(blob)
	if err != nil {
		return nil, err
	}

	stored := blob[payloadOff:]
	if uint64(len(stored)) != h.PayloadLen {
		return nil, fmt.Errorf("snapshot: payload is %d bytes, header says %d", len(stored), h.PayloadLen)
	}
	if crc32.Checksum(stored, crcTable) != h.Checksum {
		return nil, ErrChecksum
	}

	c, ok := codec.ByName(h.CodecName)
	if !ok {
		// Allow a caller-supplied codec that is not built in.
		if o.codec == nil || o.codec.Name() != h.CodecName {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, h.CodecName)
		}
		c = o.codec
	}

	payload, err := decompress(stored, h.Compression)
	if err != nil {
		return nil, err
	}

	var doc document
	if err := c.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("snapshot: decode payload: %w", err)
	}

	return buildNetlist(&doc, lib)
}

// encodeDocument flattens the live netlist into the portable document.
func encodeDocument(nl *netlist.Netlist) *document {
	doc := &document{Name: nl.Name()}

	for block := range nl.Blocks() {
		bd := blockDoc{
			Name:       nl.BlockName(block),
			Model:      nl.BlockModel(block).Name(),
			TruthTable: nl.BlockTruthTable(block),
		}
		for _, ports := range [][]netlist.PortID{
			nl.BlockInputPorts(block),
			nl.BlockOutputPorts(block),
			nl.BlockClockPorts(block),
		} {
			for _, port := range ports {
				pd := portDoc{Name: nl.PortName(port)}
				for bit := 0; bit < nl.PortWidth(port); bit++ {
					pin := nl.PortPin(port, bit)
					if !pin.Valid() {
						continue
					}
					netName := ""
					if net := nl.PinNet(pin); net.Valid() {
						netName = nl.NetName(net)
					}
					pd.Pins = append(pd.Pins, pinDoc{
						Bit:  bit,
						Net:  netName,
						Kind: nl.PinKind(pin),
					})
				}
				bd.Ports = append(bd.Ports, pd)
			}
		}
		doc.Blocks = append(doc.Blocks, bd)
	}

	// Net order matters: it fixes the restored NetIDs and preserves nets
	// with no pins at all.
	for net := range nl.Nets() {
		doc.Nets = append(doc.Nets, nl.NetName(net))
	}
	return doc
}

// buildNetlist replays the document through the mutation API.
func buildNetlist(doc *document, lib *arch.Library) (*netlist.Netlist, error) {
	nl := netlist.New(doc.Name, netlist.WithCapacityHint(len(doc.Blocks)))

	for _, name := range doc.Nets {
		nl.CreateNet(name)
	}

	for _, bd := range doc.Blocks {
		model, ok := lib.Get(bd.Model)
		if !ok {
			return nil, fmt.Errorf("%w: block %q references model %q", ErrUnknownModel, bd.Name, bd.Model)
		}
		block := nl.CreateBlock(bd.Name, model, netlist.TruthTable(bd.TruthTable))

		for _, pd := range bd.Ports {
			port, err := nl.CreatePort(block, pd.Name)
			if err != nil {
				return nil, fmt.Errorf("snapshot: restore block %q: %w", bd.Name, err)
			}
			for _, pin := range pd.Pins {
				net := netlist.InvalidNetID
				if pin.Net != "" {
					net = nl.CreateNet(pin.Net)
				}
				if _, err := nl.CreatePin(port, pin.Bit, net, pin.Kind); err != nil {
					return nil, fmt.Errorf("snapshot: restore pin (%s, %d): %w", pd.Name, pin.Bit, err)
				}
			}
		}
	}
	return nl, nil
}
