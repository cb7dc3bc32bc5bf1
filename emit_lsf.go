package lsdoc

// ============================================================
// LSF Encoding
// ============================================================

// lsfWriteVersion is the format version stamped on output.
const lsfWriteVersion = 6

// lsfWriteFlags marks all sections as LZ4 block compressed.
const lsfWriteFlags = 0x01

type lsfKeyRec struct {
	node uint32
	ref  nameRef
}

// lsfEncoder accumulates the flat record tables during the tree walk.
type lsfEncoder struct {
	names  *nameTable
	nodes  []lsfNodeRec
	attrs  []lsfAttrRec
	values byteWriter
	keys   []lsfKeyRec

	// lastChild tracks the most recent child per parent index (-1 for
	// roots) so sibling links can be patched in one pass.
	lastChild map[int32]int32
}

// EncodeLSF encodes a document into the binary form. Node records are
// emitted in depth-first document order and every section is LZ4 block
// compressed.
func EncodeLSF(doc *Document) ([]byte, error) {
	enc := &lsfEncoder{
		names:     newNameTable(),
		lastChild: make(map[int32]int32),
	}
	for i := range doc.Regions {
		for _, root := range doc.Regions[i].Nodes {
			enc.addNode(root, -1)
		}
	}

	var nodesRaw, attrsRaw byteWriter
	for _, rec := range enc.nodes {
		nodesRaw.u16(rec.nameInner)
		nodesRaw.u16(rec.nameOuter)
		nodesRaw.i32(rec.parent)
		nodesRaw.i32(rec.sibling)
		nodesRaw.i32(rec.firstAttr)
	}
	for _, rec := range enc.attrs {
		attrsRaw.u16(rec.nameInner)
		attrsRaw.u16(rec.nameOuter)
		attrsRaw.u32(rec.typeInfo)
		attrsRaw.i32(rec.next)
		attrsRaw.u32(rec.offset)
	}
	var keysRaw byteWriter
	for _, k := range enc.keys {
		keysRaw.u32(k.node)
		keysRaw.u16(k.ref.inner)
		keysRaw.u16(k.ref.outer)
	}
	var stringsRaw byteWriter
	enc.names.encode(&stringsRaw)

	meta := doc.Metadata
	if len(enc.keys) > 0 {
		meta = MetadataKeysAndAdjacency
	}

	sections := [5][]byte{stringsRaw.buf, keysRaw.buf, nodesRaw.buf, attrsRaw.buf, enc.values.buf}
	var packed [5][]byte
	for i, raw := range sections {
		packed[i] = compressSection(raw)
	}

	var out byteWriter
	out.bytes(lsfMagic)
	out.u32(lsfWriteVersion)
	out.u64(doc.Version.Pack())
	for i := range sections {
		out.u32(uint32(len(packed[i])))
		out.u32(uint32(len(sections[i])))
	}
	out.u32(lsfWriteFlags)
	out.u32(uint32(meta))

	// Data order: strings, nodes, attributes, values, keys.
	out.bytes(packed[0])
	out.bytes(packed[2])
	out.bytes(packed[3])
	out.bytes(packed[4])
	out.bytes(packed[1])
	return out.buf, nil
}

// addNode appends one node record and recurses into its children. Returns
// nothing; sibling links of earlier records are patched as later siblings
// arrive.
func (e *lsfEncoder) addNode(n *Node, parent int32) {
	idx := int32(len(e.nodes))
	ref := e.names.intern(n.Name)

	rec := lsfNodeRec{
		nameInner: ref.inner,
		nameOuter: ref.outer,
		parent:    parent,
		sibling:   -1,
		firstAttr: -1,
	}
	if len(n.Attrs) > 0 {
		rec.firstAttr = int32(len(e.attrs))
		e.addAttrs(n.Attrs)
	}
	e.nodes = append(e.nodes, rec)

	if prev, ok := e.lastChild[parent]; ok {
		e.nodes[prev].sibling = idx
	}
	e.lastChild[parent] = idx

	if n.Key != "" {
		e.keys = append(e.keys, lsfKeyRec{node: uint32(idx), ref: e.names.intern(n.Key)})
	}
	for _, c := range n.Children {
		e.addNode(c, idx)
	}
}

// addAttrs appends one node's attributes as a consecutive run linked through
// next indices.
func (e *lsfEncoder) addAttrs(attrs []Attr) {
	for i, a := range attrs {
		ref := e.names.intern(a.Name)
		offset := uint32(len(e.values.buf))
		length := EncodeValue(&e.values, a.Value)
		next := int32(-1)
		if i+1 < len(attrs) {
			next = int32(len(e.attrs)) + 1
		}
		e.attrs = append(e.attrs, lsfAttrRec{
			nameInner: ref.inner,
			nameOuter: ref.outer,
			typeInfo:  uint32(a.Value.Type()) | uint32(length)<<6,
			next:      next,
			offset:    offset,
		})
	}
}
