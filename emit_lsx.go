package lsdoc

import (
	"strconv"
	"strings"
)

// ============================================================
// LSX Encoding
// ============================================================
//
// The XML form is emitted by hand so the byte layout stays stable: tab
// indentation, a space before every self-closing slash, CRLF line endings
// behind a UTF-8 byte order mark, one trailing newline.

// EncodeLSX encodes a document as XML.
func EncodeLSX(doc *Document) ([]byte, error) {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n")
	b.WriteString("<save>\n")
	b.WriteString("\t<version major=\"" + strconv.FormatUint(uint64(doc.Version.Major), 10) +
		"\" minor=\"" + strconv.FormatUint(uint64(doc.Version.Minor), 10) +
		"\" revision=\"" + strconv.FormatUint(uint64(doc.Version.Revision), 10) +
		"\" build=\"" + strconv.FormatUint(uint64(doc.Version.Build), 10) +
		"\" lslib_meta=\"" + metaMarker(doc) + "\" />\n")
	for i := range doc.Regions {
		region := &doc.Regions[i]
		b.WriteString("\t<region id=\"" + xmlEscape(region.Name) + "\">\n")
		for _, n := range region.Nodes {
			emitLSXNode(&b, n, 2)
		}
		b.WriteString("\t</region>\n")
	}
	b.WriteString("</save>\n")
	text := strings.ReplaceAll(b.String(), "\n", "\r\n")
	return append(append([]byte(nil), utf8BOM...), text...), nil
}

// metaMarker composes the compatibility marker carried on the version
// element.
func metaMarker(doc *Document) string {
	parts := []string{"v1"}
	if doc.Version.Major >= 4 {
		parts = append(parts, "bswap_guids")
	}
	switch doc.Metadata {
	case MetadataKeysAndAdjacency:
		parts = append(parts, "lsf_keys_adjacency")
	case MetadataLegacyAdjacency:
		parts = append(parts, "lsf_adjacency")
	}
	return strings.Join(parts, ",")
}

func emitLSXNode(b *strings.Builder, n *Node, depth int) {
	indent := strings.Repeat("\t", depth)
	b.WriteString(indent + "<node id=\"" + xmlEscape(n.Name) + "\"")
	if n.Key != "" {
		b.WriteString(" key=\"" + xmlEscape(n.Key) + "\"")
	}
	if len(n.Attrs) == 0 && len(n.Children) == 0 {
		b.WriteString(" />\n")
		return
	}
	b.WriteString(">\n")
	for _, a := range n.Attrs {
		emitLSXAttr(b, &a, depth+1)
	}
	if len(n.Children) > 0 {
		b.WriteString(indent + "\t<children>\n")
		for _, c := range n.Children {
			emitLSXNode(b, c, depth+2)
		}
		b.WriteString(indent + "\t</children>\n")
	}
	b.WriteString(indent + "</node>\n")
}

func emitLSXAttr(b *strings.Builder, a *Attr, depth int) {
	indent := strings.Repeat("\t", depth)
	b.WriteString(indent + "<attribute id=\"" + xmlEscape(a.Name) +
		"\" type=\"" + TypeName(a.Value.Type()) + "\"")
	switch a.Value.Type() {
	case TypeTranslatedString:
		ts := a.Value.Translated()
		b.WriteString(" handle=\"" + xmlEscape(ts.Handle) + "\"")
		if ts.Value != "" {
			b.WriteString(" value=\"" + xmlEscape(ts.Value) + "\"")
		} else {
			b.WriteString(" version=\"" + strconv.FormatUint(uint64(ts.Version), 10) + "\"")
		}
	case TypeTranslatedFSString:
		// Format arguments have no XML rendering; the handle and value
		// carry through.
		fs := a.Value.TranslatedFS()
		b.WriteString(" handle=\"" + xmlEscape(fs.Handle) + "\"")
		b.WriteString(" value=\"" + xmlEscape(fs.Value) + "\"")
	default:
		b.WriteString(" value=\"" + xmlEscape(FormatText(a.Value)) + "\"")
	}
	b.WriteString(" />\n")
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"'", "&apos;",
)

func xmlEscape(s string) string {
	return xmlEscaper.Replace(s)
}
