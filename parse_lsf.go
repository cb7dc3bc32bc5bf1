package lsdoc

import (
	"bytes"
	"fmt"
)

// ============================================================
// LSF Decoding
// ============================================================

var lsfMagic = []byte("LSOF")

const (
	lsfVersionMin = 2
	lsfVersionMax = 7
)

// sectionDesc is one header descriptor: size on disk and size after
// decompression.
type sectionDesc struct {
	compressed   uint32
	uncompressed uint32
}

// lsfNodeRec is the fixed 16-byte node record.
type lsfNodeRec struct {
	nameInner uint16
	nameOuter uint16
	parent    int32
	sibling   int32
	firstAttr int32
}

// lsfAttrRec is the fixed 16-byte attribute record.
type lsfAttrRec struct {
	nameInner uint16
	nameOuter uint16
	typeInfo  uint32
	next      int32
	offset    uint32
}

// DecodeLSF decodes a binary resource. The input is the whole file.
func DecodeLSF(data []byte) (*Document, error) {
	r := newByteReader(data)

	magic, err := r.take(4)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(magic, lsfMagic) {
		return nil, fmt.Errorf("%w: %q", ErrBadMagic, magic)
	}
	formatVersion, err := r.u32()
	if err != nil {
		return nil, err
	}
	if formatVersion < lsfVersionMin || formatVersion > lsfVersionMax {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, formatVersion)
	}
	packed, err := r.u64()
	if err != nil {
		return nil, err
	}
	engine := UnpackVersion(packed)
	if engine.Major == 0 {
		// Old editors wrote a zeroed engine field.
		engine = Version{Major: 4, Minor: 0, Revision: 9, Build: 0}
	}

	var descStrings, descKeys, descNodes, descAttrs, descValues sectionDesc
	for _, d := range []*sectionDesc{&descStrings, &descKeys, &descNodes, &descAttrs, &descValues} {
		if d.compressed, err = r.u32(); err != nil {
			return nil, err
		}
		if d.uncompressed, err = r.u32(); err != nil {
			return nil, err
		}
	}
	flags, err := r.u32()
	if err != nil {
		return nil, err
	}
	reserved, err := r.u32()
	if err != nil {
		return nil, err
	}
	method := compressionMethod(flags)

	// Section data follows the header in a fixed order that differs from
	// the descriptor order: keys come last.
	stringsBuf, err := readSection(r, descStrings, method)
	if err != nil {
		return nil, err
	}
	nodesBuf, err := readSection(r, descNodes, method)
	if err != nil {
		return nil, err
	}
	attrsBuf, err := readSection(r, descAttrs, method)
	if err != nil {
		return nil, err
	}
	valuesBuf, err := readSection(r, descValues, method)
	if err != nil {
		return nil, err
	}
	keysBuf, err := readSection(r, descKeys, method)
	if err != nil {
		return nil, err
	}

	names, err := decodeNameTable(newByteReader(stringsBuf))
	if err != nil {
		return nil, err
	}
	nodeRecs, err := decodeNodeRecords(nodesBuf)
	if err != nil {
		return nil, err
	}
	attrRecs, err := decodeAttrRecords(attrsBuf)
	if err != nil {
		return nil, err
	}

	doc := &Document{Version: engine}
	doc.Metadata = MetadataNone
	if reserved == uint32(MetadataLegacyAdjacency) || reserved == uint32(MetadataKeysAndAdjacency) {
		doc.Metadata = MetadataFormat(reserved)
	}
	if len(keysBuf) > 0 {
		doc.Metadata = MetadataKeysAndAdjacency
	}

	nodes, err := materializeNodes(doc, nodeRecs, attrRecs, valuesBuf, names)
	if err != nil {
		return nil, err
	}
	if err := applyKeys(keysBuf, nodes, names); err != nil {
		return nil, err
	}
	return doc, nil
}

func readSection(r *byteReader, desc sectionDesc, method uint32) ([]byte, error) {
	onDisk := desc.compressed
	if method == 0 && onDisk == 0 {
		onDisk = desc.uncompressed
	}
	payload, err := r.take(int(onDisk))
	if err != nil {
		return nil, err
	}
	return decompressSection(payload, desc.uncompressed, method)
}

func decodeNodeRecords(buf []byte) ([]lsfNodeRec, error) {
	r := newByteReader(buf)
	recs := make([]lsfNodeRec, 0, len(buf)/16)
	for r.remaining() > 0 {
		var rec lsfNodeRec
		var err error
		if rec.nameInner, err = r.u16(); err != nil {
			return nil, err
		}
		if rec.nameOuter, err = r.u16(); err != nil {
			return nil, err
		}
		if rec.parent, err = r.i32(); err != nil {
			return nil, err
		}
		if rec.sibling, err = r.i32(); err != nil {
			return nil, err
		}
		if rec.firstAttr, err = r.i32(); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func decodeAttrRecords(buf []byte) ([]lsfAttrRec, error) {
	r := newByteReader(buf)
	recs := make([]lsfAttrRec, 0, len(buf)/16)
	for r.remaining() > 0 {
		var rec lsfAttrRec
		var err error
		if rec.nameInner, err = r.u16(); err != nil {
			return nil, err
		}
		if rec.nameOuter, err = r.u16(); err != nil {
			return nil, err
		}
		if rec.typeInfo, err = r.u32(); err != nil {
			return nil, err
		}
		if rec.next, err = r.i32(); err != nil {
			return nil, err
		}
		if rec.offset, err = r.u32(); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// materializeNodes turns flat records into the region tree. Parents are
// linked through a single pass over the records, which keeps document order
// and stays linear in the node count. The stored sibling index is ignored;
// record order is authoritative.
func materializeNodes(doc *Document, nodeRecs []lsfNodeRec, attrRecs []lsfAttrRec, values []byte, names *nameList) ([]*Node, error) {
	nodes := make([]*Node, len(nodeRecs))
	for i := range nodeRecs {
		nodes[i] = &Node{}
	}
	for i, rec := range nodeRecs {
		name, err := names.get(rec.nameOuter, rec.nameInner)
		if err != nil {
			return nil, err
		}
		nodes[i].Name = name
		if err := attachAttrs(nodes[i], rec.firstAttr, attrRecs, values, names); err != nil {
			return nil, err
		}
		switch {
		case rec.parent == -1:
			region := doc.Region(name)
			if region == nil {
				doc.Regions = append(doc.Regions, Region{Name: name})
				region = &doc.Regions[len(doc.Regions)-1]
			}
			region.Nodes = append(region.Nodes, nodes[i])
		case rec.parent < 0 || int(rec.parent) >= len(nodes):
			return nil, fmt.Errorf("%w: parent %d of %d", ErrInvalidNodeIndex, rec.parent, len(nodes))
		default:
			nodes[rec.parent].Children = append(nodes[rec.parent].Children, nodes[i])
		}
	}
	return nodes, nil
}

// attachAttrs follows one attribute chain. A chain longer than the record
// table means a cycle, reported as an invalid index.
func attachAttrs(n *Node, first int32, attrRecs []lsfAttrRec, values []byte, names *nameList) error {
	steps := 0
	for idx := first; idx != -1; steps++ {
		if idx < 0 || int(idx) >= len(attrRecs) || steps > len(attrRecs) {
			return fmt.Errorf("%w: %d of %d", ErrInvalidAttributeIndex, idx, len(attrRecs))
		}
		rec := attrRecs[idx]
		name, err := names.get(rec.nameOuter, rec.nameInner)
		if err != nil {
			return err
		}
		t := TypeID(rec.typeInfo & 0x3f)
		length := rec.typeInfo >> 6
		end := uint64(rec.offset) + uint64(length)
		if end > uint64(len(values)) {
			return fmt.Errorf("%w: value at %d+%d exceeds section of %d bytes",
				ErrTruncated, rec.offset, length, len(values))
		}
		v, err := DecodeValue(t, values[rec.offset:end])
		if err != nil {
			return err
		}
		n.Attrs = append(n.Attrs, Attr{Name: name, Value: v})
		idx = rec.next
	}
	return nil
}

// applyKeys resolves the optional keys section onto its nodes.
func applyKeys(buf []byte, nodes []*Node, names *nameList) error {
	r := newByteReader(buf)
	for r.remaining() > 0 {
		idx, err := r.u32()
		if err != nil {
			return err
		}
		inner, err := r.u16()
		if err != nil {
			return err
		}
		outer, err := r.u16()
		if err != nil {
			return err
		}
		if int(idx) >= len(nodes) {
			return fmt.Errorf("%w: key references node %d of %d", ErrInvalidNodeIndex, idx, len(nodes))
		}
		key, err := names.get(outer, inner)
		if err != nil {
			return err
		}
		nodes[idx].Key = key
	}
	return nil
}
