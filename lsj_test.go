package lsdoc

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLSJRoundTrip(t *testing.T) {
	doc := sampleDocument()
	data, err := EncodeLSJ(doc)
	require.NoError(t, err)

	got, err := DecodeLSJ(data)
	require.NoError(t, err)
	requireDocEqual(t, doc, got)
	require.Equal(t, doc.Version, got.Version)
}

func TestLSJOutputIsValidJSON(t *testing.T) {
	data, err := EncodeLSJ(sampleDocument())
	require.NoError(t, err)
	require.True(t, json.Valid(data))
	require.True(t, strings.HasSuffix(string(data), "\r\n"))
	require.Contains(t, string(data), "\t\"save\"")
}

func TestLSJHeaderVersion(t *testing.T) {
	doc := &Document{Version: Version{Major: 4, Minor: 0, Revision: 9, Build: 331}}
	data, err := EncodeLSJ(doc)
	require.NoError(t, err)
	require.Contains(t, string(data), `"version": "4.0.9.331"`)

	got, err := DecodeLSJ(data)
	require.NoError(t, err)
	require.Equal(t, doc.Version, got.Version)
}

func TestLSJAttrShapes(t *testing.T) {
	doc := &Document{Version: Version{Major: 4}}
	root := &Node{Name: "root"}
	root.SetAttr("count", IntValue(TypeInt32, -5))
	root.SetAttr("flag", BoolValue(true))
	root.SetAttr("label", TranslatedValue(TranslatedString{Handle: "h123", Version: 5}))
	doc.Regions = []Region{{Name: "root", Nodes: []*Node{root}}}

	data, err := EncodeLSJ(doc)
	require.NoError(t, err)
	text := string(data)

	require.Contains(t, text, `"type": "int32"`)
	require.Contains(t, text, `"value": -5`)
	require.Contains(t, text, `"value": true`)
	require.Contains(t, text, `"handle": "h123"`)
	require.Contains(t, text, `"version": 5`)
	// No inline value was set, so none is written.
	require.NotContains(t, text, `"value": ""`)

	got, err := DecodeLSJ(data)
	require.NoError(t, err)
	requireDocEqual(t, doc, got)
}

// The type field may carry the numeric id instead of the name.
func TestLSJNumericType(t *testing.T) {
	src := `{"save":{"header":{"version":"4.0.9.0"},"regions":{"root":{
		"count": {"type": 4, "value": 12},
		"name": {"type": "23", "value": "x"}
	}}}}`
	doc, err := DecodeLSJ([]byte(src))
	require.NoError(t, err)

	root := doc.Regions[0].Nodes[0]
	v, ok := root.Attr("count")
	require.True(t, ok)
	require.Equal(t, TypeInt32, v.Type())
	require.Equal(t, int64(12), v.Int64())
	v, ok = root.Attr("name")
	require.True(t, ok)
	require.Equal(t, TypeLSString, v.Type())
}

func TestLSJMissingFields(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"no type", `{"save":{"regions":{"r":{"a":{"value":1}}}}}`},
		{"no value", `{"save":{"regions":{"r":{"a":{"type":"int32"}}}}}`},
		{"no handle", `{"save":{"regions":{"r":{"a":{"type":"TranslatedString","version":1}}}}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeLSJ([]byte(tc.src))
			require.ErrorIs(t, err, ErrMissingField)
		})
	}
}

func TestLSJMalformed(t *testing.T) {
	for _, src := range []string{
		``,
		`{`,
		`[1, 2]`,
		`{"save":{"regions":{"r":{"a": 5}}}}`,
	} {
		_, err := DecodeLSJ([]byte(src))
		require.ErrorIs(t, err, ErrMalformedMarkup, src)
	}
}

func TestLSJFSStringRoundTrip(t *testing.T) {
	fs := TranslatedFSString{
		Handle:  "hfs",
		Version: 2,
		Value:   "[1] strikes",
		Arguments: []TranslatedFSArgument{
			{Key: "[1]", String: TranslatedFSString{Handle: "harg", Value: "Orc"}, Value: "Orc"},
		},
	}
	doc := &Document{Version: Version{Major: 4}}
	root := &Node{Name: "root"}
	root.SetAttr("line", TranslatedFSValue(fs))
	doc.Regions = []Region{{Name: "root", Nodes: []*Node{root}}}

	data, err := EncodeLSJ(doc)
	require.NoError(t, err)
	require.True(t, json.Valid(data))

	got, err := DecodeLSJ(data)
	require.NoError(t, err)
	v, ok := got.Regions[0].Nodes[0].Attr("line")
	require.True(t, ok)
	require.True(t, TranslatedFSValue(fs).Equal(v))
}

// An empty format-string value is written as JSON null, not "".
func TestLSJFSNullValue(t *testing.T) {
	doc := &Document{Version: Version{Major: 4}}
	root := &Node{Name: "root"}
	root.SetAttr("line", TranslatedFSValue(TranslatedFSString{Handle: "hfs"}))
	doc.Regions = []Region{{Name: "root", Nodes: []*Node{root}}}

	data, err := EncodeLSJ(doc)
	require.NoError(t, err)
	require.Contains(t, string(data), `"value": null`)

	got, err := DecodeLSJ(data)
	require.NoError(t, err)
	v, _ := got.Regions[0].Nodes[0].Attr("line")
	require.Equal(t, "", v.TranslatedFS().Value)
}
