package lsdoc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func metaDocument() *Document {
	info := &Node{Name: "ModuleInfo"}
	info.SetAttr("Name", StringValue(TypeLSString, "GustavDev"))
	info.SetAttr("Folder", StringValue(TypeLSString, "GustavDev"))
	info.SetAttr("UUID", StringValue(TypeFixedString, "28ac9ce2-2aba-8cda-b3b5-6e922f71b6b8"))
	info.SetAttr("Author", StringValue(TypeLSString, "Someone"))
	info.SetAttr("Description", StringValue(TypeLSString, "Main campaign"))
	info.SetAttr("Version64", IntValue(TypeInt64, int64(Version{Major: 4, Minor: 0, Revision: 9, Build: 331}.Pack())))

	root := &Node{Name: "Config"}
	root.AppendChild(&Node{Name: "Dependencies"})
	root.AppendChild(info)
	return &Document{
		Version: Version{Major: 4, Minor: 0, Revision: 9, Build: 331},
		Regions: []Region{{Name: "Config", Nodes: []*Node{root}}},
	}
}

func TestReadModMetadata(t *testing.T) {
	m, err := ReadModMetadata(metaDocument())
	require.NoError(t, err)
	require.Equal(t, "GustavDev", m.Name)
	require.Equal(t, "GustavDev", m.Folder)
	require.Equal(t, "28ac9ce2-2aba-8cda-b3b5-6e922f71b6b8", m.UUID)
	require.Equal(t, "Someone", m.Author)
	require.Equal(t, "Main campaign", m.Description)
	require.Equal(t, "4.0.9.331", m.VersionString())
}

// The reader works on any decoded form, so metadata from an LSX byte stream
// comes out identical.
func TestReadModMetadataFromLSX(t *testing.T) {
	data, err := EncodeLSX(metaDocument())
	require.NoError(t, err)
	doc, err := DecodeLSX(data)
	require.NoError(t, err)

	m, err := ReadModMetadata(doc)
	require.NoError(t, err)
	require.Equal(t, "GustavDev", m.Name)
	require.Equal(t, "4.0.9.331", m.VersionString())
}

func TestReadModMetadataMissingNode(t *testing.T) {
	doc := &Document{Regions: []Region{{Name: "Config", Nodes: []*Node{{Name: "Config"}}}}}
	_, err := ReadModMetadata(doc)
	require.ErrorIs(t, err, ErrMissingField)
}

func TestReadModMetadataPartial(t *testing.T) {
	info := &Node{Name: "ModuleInfo"}
	info.SetAttr("Name", StringValue(TypeLSString, "Sparse"))
	doc := &Document{Regions: []Region{{Name: "Config", Nodes: []*Node{info}}}}

	m, err := ReadModMetadata(doc)
	require.NoError(t, err)
	require.Equal(t, "Sparse", m.Name)
	require.Equal(t, "", m.Author)
	require.Equal(t, "0.0.0.0", m.VersionString())
}
