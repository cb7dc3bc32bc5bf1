package lsdoc

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ============================================================
// LSX Decoding
// ============================================================

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// DecodeLSX decodes the XML form. A leading UTF-8 byte order mark is
// accepted and stripped.
func DecodeLSX(data []byte) (*Document, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	dec := xml.NewDecoder(bytes.NewReader(data))

	doc := &Document{}
	var region *Region
	var stack []*Node

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedMarkup, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "save", "children", "header":
			case "version":
				parseVersionElement(doc, t)
			case "region":
				doc.Regions = append(doc.Regions, Region{Name: xmlAttr(t, "id")})
				region = &doc.Regions[len(doc.Regions)-1]
				stack = stack[:0]
			case "node":
				n := &Node{Name: xmlAttr(t, "id"), Key: xmlAttr(t, "key")}
				if len(stack) > 0 {
					stack[len(stack)-1].AppendChild(n)
				} else if region != nil {
					region.Nodes = append(region.Nodes, n)
				}
				stack = append(stack, n)
			case "attribute":
				if len(stack) == 0 {
					return nil, fmt.Errorf("%w: attribute outside node", ErrMalformedMarkup)
				}
				a, err := parseAttrElement(t)
				if err != nil {
					return nil, err
				}
				n := stack[len(stack)-1]
				n.Attrs = append(n.Attrs, a)
			}
		case xml.EndElement:
			if t.Name.Local == "node" && len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	return doc, nil
}

func xmlAttr(e xml.StartElement, name string) string {
	for _, a := range e.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func parseVersionElement(doc *Document, e xml.StartElement) {
	parse := func(name string) uint32 {
		n, _ := strconv.ParseUint(xmlAttr(e, name), 10, 32)
		return uint32(n)
	}
	doc.Version = Version{
		Major:    parse("major"),
		Minor:    parse("minor"),
		Revision: parse("revision"),
		Build:    parse("build"),
	}
	doc.Metadata = parseMetaMarker(xmlAttr(e, "lslib_meta"))
}

// parseMetaMarker reads the compatibility marker back into the metadata flag.
func parseMetaMarker(marker string) MetadataFormat {
	for _, part := range strings.Split(marker, ",") {
		switch part {
		case "lsf_keys_adjacency":
			return MetadataKeysAndAdjacency
		case "lsf_adjacency":
			return MetadataLegacyAdjacency
		}
	}
	return MetadataNone
}

func parseAttrElement(e xml.StartElement) (Attr, error) {
	name := xmlAttr(e, "id")
	t := TypeFromName(xmlAttr(e, "type"))
	switch t {
	case TypeTranslatedString:
		ver, _ := strconv.ParseUint(xmlAttr(e, "version"), 10, 16)
		ts := TranslatedString{
			Handle:  xmlAttr(e, "handle"),
			Version: uint16(ver),
			Value:   xmlAttr(e, "value"),
		}
		return Attr{Name: name, Value: TranslatedValue(ts)}, nil
	case TypeTranslatedFSString:
		ver, _ := strconv.ParseUint(xmlAttr(e, "version"), 10, 16)
		fs := TranslatedFSString{
			Handle:  xmlAttr(e, "handle"),
			Version: uint16(ver),
			Value:   xmlAttr(e, "value"),
		}
		return Attr{Name: name, Value: TranslatedFSValue(fs)}, nil
	}
	v, _, err := ParseText(t, xmlAttr(e, "value"))
	if err != nil {
		return Attr{}, err
	}
	return Attr{Name: name, Value: v}, nil
}
