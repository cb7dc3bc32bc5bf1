package lsdoc

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLSFRoundTrip(t *testing.T) {
	doc := sampleDocument()
	data, err := EncodeLSF(doc)
	require.NoError(t, err)

	got, err := DecodeLSF(data)
	require.NoError(t, err)
	requireDocEqual(t, doc, got)
	require.Equal(t, doc.Version, got.Version)
}

func TestLSFKeysRoundTrip(t *testing.T) {
	doc := sampleDocument()
	doc.Regions[0].Nodes[0].Children[0].Key = "UUID"

	data, err := EncodeLSF(doc)
	require.NoError(t, err)
	got, err := DecodeLSF(data)
	require.NoError(t, err)

	require.Equal(t, MetadataKeysAndAdjacency, got.Metadata)
	require.Equal(t, "UUID", got.Regions[0].Nodes[0].Children[0].Key)
}

func TestLSFNoKeysNoKeySection(t *testing.T) {
	doc := sampleDocument()
	data, err := EncodeLSF(doc)
	require.NoError(t, err)

	// Keys descriptor is the second pair after magic, version, engine.
	compressed := binary.LittleEndian.Uint32(data[24:])
	uncompressed := binary.LittleEndian.Uint32(data[28:])
	require.Zero(t, compressed)
	require.Zero(t, uncompressed)
}

func TestLSFBadMagic(t *testing.T) {
	doc := sampleDocument()
	data, err := EncodeLSF(doc)
	require.NoError(t, err)
	data[0] = 'X'

	_, err = DecodeLSF(data)
	require.ErrorIs(t, err, ErrBadMagic)
}

func TestLSFUnsupportedVersion(t *testing.T) {
	doc := sampleDocument()
	data, err := EncodeLSF(doc)
	require.NoError(t, err)

	for _, v := range []uint32{0, 1, 8, 1000} {
		bad := append([]byte(nil), data...)
		binary.LittleEndian.PutUint32(bad[4:], v)
		_, err := DecodeLSF(bad)
		require.ErrorIs(t, err, ErrUnsupportedVersion, "version %d", v)
	}
}

func TestLSFTruncated(t *testing.T) {
	doc := sampleDocument()
	data, err := EncodeLSF(doc)
	require.NoError(t, err)

	for _, n := range []int{0, 3, 10, 40, len(data) - 1} {
		_, err := DecodeLSF(data[:n])
		require.Error(t, err, "length %d", n)
	}
}

func TestLSFCorruptSection(t *testing.T) {
	doc := sampleDocument()
	data, err := EncodeLSF(doc)
	require.NoError(t, err)

	// Scramble the start of the compressed strings section.
	for i := 64; i < 68; i++ {
		data[i] ^= 0xa5
	}
	_, err = DecodeLSF(data)
	require.Error(t, err)
}

// A zeroed engine version field is replaced with the oldest version that
// wrote such files.
func TestLSFZeroEngineVersion(t *testing.T) {
	doc := sampleDocument()
	doc.Version = Version{}
	data, err := EncodeLSF(doc)
	require.NoError(t, err)

	got, err := DecodeLSF(data)
	require.NoError(t, err)
	require.Equal(t, Version{Major: 4, Minor: 0, Revision: 9, Build: 0}, got.Version)
}

// Attribute order and sibling order must survive the flat record tables.
func TestLSFOrderPreserved(t *testing.T) {
	doc := &Document{Version: Version{Major: 4}}
	root := &Node{Name: "root"}
	for _, name := range []string{"zeta", "alpha", "mid"} {
		root.Attrs = append(root.Attrs, Attr{Name: name, Value: StringValue(TypeLSString, name)})
	}
	for _, name := range []string{"c1", "c2", "c1again"} {
		root.AppendChild(&Node{Name: name})
	}
	doc.Regions = []Region{{Name: "root", Nodes: []*Node{root}}}

	data, err := EncodeLSF(doc)
	require.NoError(t, err)
	got, err := DecodeLSF(data)
	require.NoError(t, err)

	gotRoot := got.Regions[0].Nodes[0]
	require.Equal(t, []string{"zeta", "alpha", "mid"}, attrNames(gotRoot))
	require.Equal(t, "c1", gotRoot.Children[0].Name)
	require.Equal(t, "c2", gotRoot.Children[1].Name)
	require.Equal(t, "c1again", gotRoot.Children[2].Name)
}

// Encoding the same document twice must be byte-identical; bucket and pair
// assignment depend only on content and insertion order.
func TestLSFDeterministic(t *testing.T) {
	doc := sampleDocument()
	a, err := EncodeLSF(doc)
	require.NoError(t, err)
	b, err := EncodeLSF(doc)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func attrNames(n *Node) []string {
	names := make([]string, len(n.Attrs))
	for i, a := range n.Attrs {
		names[i] = a.Name
	}
	return names
}
