package lsdoc

// ============================================================
// Document Model
// ============================================================

// MetadataFormat selects which optional binary sections and XML
// compatibility markers a document carries.
type MetadataFormat uint32

const (
	MetadataNone             MetadataFormat = 0
	MetadataLegacyAdjacency  MetadataFormat = 1
	MetadataKeysAndAdjacency MetadataFormat = 2
)

// Version is the engine version quad packed into 64 bits in LSF headers.
type Version struct {
	Major    uint32
	Minor    uint32
	Revision uint32
	Build    uint32
}

// Pack packs the quad into the 64-bit header layout:
// major:7@55 | minor:8@47 | revision:16@31 | build:31@0.
func (v Version) Pack() uint64 {
	return (uint64(v.Major)&0x7F)<<55 |
		(uint64(v.Minor)&0xFF)<<47 |
		(uint64(v.Revision)&0xFFFF)<<31 |
		uint64(v.Build)&0x7FFFFFFF
}

// UnpackVersion unpacks the 64-bit header layout into a quad.
func UnpackVersion(packed uint64) Version {
	return Version{
		Major:    uint32((packed >> 55) & 0x7F),
		Minor:    uint32((packed >> 47) & 0xFF),
		Revision: uint32((packed >> 31) & 0xFFFF),
		Build:    uint32(packed & 0x7FFFFFFF),
	}
}

// Document is a decoded resource: an engine version, a metadata-format flag,
// and the ordered named regions.
type Document struct {
	Version  Version
	Metadata MetadataFormat
	Regions  []Region
}

// Region is a named top-level container. LSF and LSJ regions hold exactly one
// root node; LSX files in the wild occasionally carry sibling roots, so the
// model keeps a slice.
type Region struct {
	Name  string
	Nodes []*Node
}

// Node is a tagged element with ordered attributes and ordered children.
// The optional Key carries the binary keys-section identity used when
// documents are merged.
type Node struct {
	Name     string
	Key      string
	Attrs    []Attr
	Children []*Node
}

// Attr is one named attribute. Insertion order is significant.
type Attr struct {
	Name  string
	Value Value
}

// ChildGroup is the set of children sharing one tag, in document order.
type ChildGroup struct {
	Name  string
	Nodes []*Node
}

// Region returns the region with the given name, or nil.
func (d *Document) Region(name string) *Region {
	for i := range d.Regions {
		if d.Regions[i].Name == name {
			return &d.Regions[i]
		}
	}
	return nil
}

// ============================================================
// Node Operations
// ============================================================

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (Value, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return Value{}, false
}

// SetAttr replaces the named attribute in place, or appends it.
func (n *Node) SetAttr(name string, v Value) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = v
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: v})
}

// AppendChild adds a child node.
func (n *Node) AppendChild(child *Node) {
	n.Children = append(n.Children, child)
}

// ChildGroups returns the children grouped by tag name, groups ordered by
// first appearance and nodes in document order within each group.
func (n *Node) ChildGroups() []ChildGroup {
	var groups []ChildGroup
	index := make(map[string]int, len(n.Children))
	for _, c := range n.Children {
		if i, ok := index[c.Name]; ok {
			groups[i].Nodes = append(groups[i].Nodes, c)
			continue
		}
		index[c.Name] = len(groups)
		groups = append(groups, ChildGroup{Name: c.Name, Nodes: []*Node{c}})
	}
	return groups
}

// ============================================================
// Query Surface
// ============================================================
//
// These helpers serve single-field lookups (localization handles, flags,
// dialog fields) without building a converted document. Duplicate sibling
// names resolve to the first match in document order.

// NodeNamed returns the first node named name in a depth-first walk of root,
// including root itself, or nil.
func NodeNamed(root *Node, name string) *Node {
	if root == nil {
		return nil
	}
	if root.Name == name {
		return root
	}
	for _, c := range root.Children {
		if found := NodeNamed(c, name); found != nil {
			return found
		}
	}
	return nil
}

// AttrString returns the named attribute's canonical text form.
func (n *Node) AttrString(name string) (string, bool) {
	v, ok := n.Attr(name)
	if !ok {
		return "", false
	}
	return FormatText(v), true
}

// AttrFloat returns the named attribute as float64 for numeric kinds.
func (n *Node) AttrFloat(name string) (float64, bool) {
	v, ok := n.Attr(name)
	if !ok {
		return 0, false
	}
	return v.Number()
}

// AttrInt returns the named attribute as int64 for integer kinds.
func (n *Node) AttrInt(name string) (int64, bool) {
	v, ok := n.Attr(name)
	if !ok {
		return 0, false
	}
	switch v.typ {
	case TypeUint8, TypeUint16, TypeUint32, TypeUint64:
		return int64(v.uintVal), true
	case TypeInt8, TypeInt16, TypeInt32, TypeInt64, TypeOldInt64:
		return v.intVal, true
	}
	return 0, false
}
