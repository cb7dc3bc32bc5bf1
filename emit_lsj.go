package lsdoc

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ============================================================
// LSJ Encoding
// ============================================================
//
// Emitted by hand for stable byte layout: tab indentation and CRLF line
// endings. A region renders as its root node directly; when an LSX source
// carried sibling roots only the first one survives, since a JSON object key
// can hold one value.

const lsjEOL = "\r\n"

// EncodeLSJ encodes a document as JSON.
func EncodeLSJ(doc *Document) ([]byte, error) {
	var b strings.Builder
	b.WriteString("{" + lsjEOL)
	b.WriteString("\t\"save\": {" + lsjEOL)
	b.WriteString("\t\t\"header\": {" + lsjEOL)
	b.WriteString("\t\t\t\"version\": " + jsonQuote(versionString(doc.Version)) + lsjEOL)
	b.WriteString("\t\t}," + lsjEOL)
	b.WriteString("\t\t\"regions\": {")
	for i := range doc.Regions {
		region := &doc.Regions[i]
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(lsjEOL + "\t\t\t" + jsonQuote(region.Name) + ": ")
		if len(region.Nodes) == 0 {
			b.WriteString("{}")
			continue
		}
		emitLSJNode(&b, region.Nodes[0], 3)
	}
	b.WriteString(lsjEOL + "\t\t}" + lsjEOL)
	b.WriteString("\t}" + lsjEOL)
	b.WriteString("}" + lsjEOL)
	return []byte(b.String()), nil
}

func versionString(v Version) string {
	return strconv.FormatUint(uint64(v.Major), 10) + "." +
		strconv.FormatUint(uint64(v.Minor), 10) + "." +
		strconv.FormatUint(uint64(v.Revision), 10) + "." +
		strconv.FormatUint(uint64(v.Build), 10)
}

// emitLSJNode writes a node object. Attributes come first, then child
// groups, both in document order.
func emitLSJNode(b *strings.Builder, n *Node, depth int) {
	indent := strings.Repeat("\t", depth)
	b.WriteString("{")
	first := true
	sep := func() {
		if !first {
			b.WriteString(",")
		}
		first = false
		b.WriteString(lsjEOL + indent + "\t")
	}
	for i := range n.Attrs {
		sep()
		a := &n.Attrs[i]
		b.WriteString(jsonQuote(a.Name) + ": ")
		emitLSJValue(b, a.Value, depth+1)
	}
	for _, g := range n.ChildGroups() {
		sep()
		b.WriteString(jsonQuote(g.Name) + ": [")
		for j, c := range g.Nodes {
			if j > 0 {
				b.WriteString(",")
			}
			b.WriteString(lsjEOL + indent + "\t\t")
			emitLSJNode(b, c, depth+2)
		}
		b.WriteString(lsjEOL + indent + "\t]")
	}
	if first {
		b.WriteString("}")
		return
	}
	b.WriteString(lsjEOL + indent + "}")
}

// emitLSJValue writes one attribute object.
func emitLSJValue(b *strings.Builder, v Value, depth int) {
	indent := strings.Repeat("\t", depth)
	field := func(comma bool, name, lit string) {
		if comma {
			b.WriteString(",")
		}
		b.WriteString(lsjEOL + indent + "\t" + jsonQuote(name) + ": " + lit)
	}
	b.WriteString("{")
	field(false, "type", jsonQuote(TypeName(v.Type())))
	switch v.Type() {
	case TypeTranslatedString:
		ts := v.Translated()
		if ts.Value != "" {
			field(true, "value", jsonQuote(ts.Value))
		}
		if ts.Version != 0 {
			field(true, "version", strconv.FormatUint(uint64(ts.Version), 10))
		}
		field(true, "handle", jsonQuote(ts.Handle))
	case TypeTranslatedFSString:
		emitLSJFSBody(b, v.TranslatedFS(), depth, field, true)
	case TypeNone:
	default:
		field(true, "value", jsonValueLiteral(v))
	}
	b.WriteString(lsjEOL + indent + "}")
}

// emitLSJFSBody writes the fields of a format string: value, optional
// version, handle, and the argument list. leadComma is true when an earlier
// field (the attribute's type) already opened the object.
func emitLSJFSBody(b *strings.Builder, fs *TranslatedFSString, depth int, field func(bool, string, string), leadComma bool) {
	if fs.Value == "" {
		field(leadComma, "value", "null")
	} else {
		field(leadComma, "value", jsonQuote(fs.Value))
	}
	if fs.Version != 0 {
		field(true, "version", strconv.FormatUint(uint64(fs.Version), 10))
	}
	field(true, "handle", jsonQuote(fs.Handle))
	field(true, "arguments", "[")
	indent := strings.Repeat("\t", depth)
	for i := range fs.Arguments {
		arg := &fs.Arguments[i]
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(lsjEOL + indent + "\t\t{")
		b.WriteString(lsjEOL + indent + "\t\t\t" + jsonQuote("key") + ": " + jsonQuote(arg.Key) + ",")
		b.WriteString(lsjEOL + indent + "\t\t\t" + jsonQuote("string") + ": {")
		inner := func(comma bool, name, lit string) {
			if comma {
				b.WriteString(",")
			}
			b.WriteString(lsjEOL + indent + "\t\t\t\t" + jsonQuote(name) + ": " + lit)
		}
		emitLSJFSBody(b, &arg.String, depth+3, inner, false)
		b.WriteString(lsjEOL + indent + "\t\t\t},")
		b.WriteString(lsjEOL + indent + "\t\t\t" + jsonQuote("value") + ": " + jsonQuote(arg.Value))
		b.WriteString(lsjEOL + indent + "\t\t}")
	}
	b.WriteString(lsjEOL + indent + "\t]")
}

// jsonValueLiteral renders a non-translated value as its JSON literal:
// numbers and bools bare, everything else a quoted canonical string.
func jsonValueLiteral(v Value) string {
	if v.Type() == TypeBool {
		if v.Bool() {
			return "true"
		}
		return "false"
	}
	if IsNumeric(v.Type()) {
		return FormatText(v)
	}
	return jsonQuote(FormatText(v))
}

// jsonQuote renders a JSON string literal without HTML escaping.
func jsonQuote(s string) string {
	var sb strings.Builder
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		b, _ := json.Marshal(s)
		return string(b)
	}
	return strings.TrimRight(sb.String(), "\n")
}
