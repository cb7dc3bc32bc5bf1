package lsdoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ============================================================
// LSJ Decoding
// ============================================================
//
// The JSON form is read token by token so that attribute and child-group
// order is preserved; unmarshalling into maps would lose it.

// DecodeLSJ decodes the JSON form.
func DecodeLSJ(data []byte) (*Document, error) {
	p := &lsjParser{dec: json.NewDecoder(bytes.NewReader(data))}
	p.dec.UseNumber()

	doc := &Document{}
	if err := p.expectDelim('{'); err != nil {
		return nil, err
	}
	for p.dec.More() {
		key, err := p.stringToken()
		if err != nil {
			return nil, err
		}
		if key != "save" {
			if err := p.skip(); err != nil {
				return nil, err
			}
			continue
		}
		if err := p.parseSave(doc); err != nil {
			return nil, err
		}
	}
	if err := p.expectDelim('}'); err != nil {
		return nil, err
	}
	return doc, nil
}

type lsjParser struct {
	dec *json.Decoder
}

func (p *lsjParser) next() (json.Token, error) {
	t, err := p.dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMarkup, err)
	}
	return t, nil
}

func (p *lsjParser) expectDelim(d rune) error {
	t, err := p.next()
	if err != nil {
		return err
	}
	if dl, ok := t.(json.Delim); !ok || dl != json.Delim(d) {
		return fmt.Errorf("%w: expected %q, got %v", ErrMalformedMarkup, d, t)
	}
	return nil
}

func (p *lsjParser) stringToken() (string, error) {
	t, err := p.next()
	if err != nil {
		return "", err
	}
	s, ok := t.(string)
	if !ok {
		return "", fmt.Errorf("%w: expected string, got %v", ErrMalformedMarkup, t)
	}
	return s, nil
}

func (p *lsjParser) skip() error {
	var raw json.RawMessage
	if err := p.dec.Decode(&raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedMarkup, err)
	}
	return nil
}

func (p *lsjParser) parseSave(doc *Document) error {
	if err := p.expectDelim('{'); err != nil {
		return err
	}
	for p.dec.More() {
		key, err := p.stringToken()
		if err != nil {
			return err
		}
		switch key {
		case "header":
			if err := p.parseHeader(doc); err != nil {
				return err
			}
		case "regions":
			if err := p.parseRegions(doc); err != nil {
				return err
			}
		default:
			if err := p.skip(); err != nil {
				return err
			}
		}
	}
	return p.expectDelim('}')
}

func (p *lsjParser) parseHeader(doc *Document) error {
	if err := p.expectDelim('{'); err != nil {
		return err
	}
	for p.dec.More() {
		key, err := p.stringToken()
		if err != nil {
			return err
		}
		if key != "version" {
			if err := p.skip(); err != nil {
				return err
			}
			continue
		}
		s, err := p.stringToken()
		if err != nil {
			return err
		}
		doc.Version = parseVersionString(s)
	}
	return p.expectDelim('}')
}

// parseVersionString parses "major.minor.revision.build". Short or malformed
// parts default to zero.
func parseVersionString(s string) Version {
	var quad [4]uint32
	for i, part := range strings.SplitN(s, ".", 4) {
		n, _ := strconv.ParseUint(part, 10, 32)
		quad[i] = uint32(n)
	}
	return Version{Major: quad[0], Minor: quad[1], Revision: quad[2], Build: quad[3]}
}

func (p *lsjParser) parseRegions(doc *Document) error {
	if err := p.expectDelim('{'); err != nil {
		return err
	}
	for p.dec.More() {
		name, err := p.stringToken()
		if err != nil {
			return err
		}
		if err := p.expectDelim('{'); err != nil {
			return err
		}
		root := &Node{Name: name}
		if err := p.parseNodeBody(root); err != nil {
			return err
		}
		doc.Regions = append(doc.Regions, Region{Name: name, Nodes: []*Node{root}})
	}
	return p.expectDelim('}')
}

// parseNodeBody reads the members of a node object whose opening brace is
// already consumed. An object member is an attribute, an array member is a
// child group.
func (p *lsjParser) parseNodeBody(n *Node) error {
	for p.dec.More() {
		key, err := p.stringToken()
		if err != nil {
			return err
		}
		t, err := p.next()
		if err != nil {
			return err
		}
		dl, ok := t.(json.Delim)
		if !ok {
			return fmt.Errorf("%w: node member %q is neither object nor array", ErrMalformedMarkup, key)
		}
		switch dl {
		case json.Delim('{'):
			a, err := p.parseAttrBody(key)
			if err != nil {
				return err
			}
			n.Attrs = append(n.Attrs, a)
		case json.Delim('['):
			for p.dec.More() {
				if err := p.expectDelim('{'); err != nil {
					return err
				}
				child := &Node{Name: key}
				if err := p.parseNodeBody(child); err != nil {
					return err
				}
				n.AppendChild(child)
			}
			if err := p.expectDelim(']'); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: node member %q is neither object nor array", ErrMalformedMarkup, key)
		}
	}
	return p.expectDelim('}')
}

// parseAttrBody reads an attribute object whose opening brace is already
// consumed. Field order is free; the type field is required.
func (p *lsjParser) parseAttrBody(name string) (Attr, error) {
	var (
		typeTok   json.Token
		valueTok  json.Token
		hasValue  bool
		handle    string
		hasHandle bool
		version   uint16
		args      []TranslatedFSArgument
	)
	for p.dec.More() {
		key, err := p.stringToken()
		if err != nil {
			return Attr{}, err
		}
		switch key {
		case "type":
			if typeTok, err = p.next(); err != nil {
				return Attr{}, err
			}
		case "value":
			if valueTok, err = p.next(); err != nil {
				return Attr{}, err
			}
			hasValue = true
		case "handle":
			if handle, err = p.stringToken(); err != nil {
				return Attr{}, err
			}
			hasHandle = true
		case "version":
			t, err := p.next()
			if err != nil {
				return Attr{}, err
			}
			if num, ok := t.(json.Number); ok {
				n, _ := strconv.ParseUint(num.String(), 10, 16)
				version = uint16(n)
			}
		case "arguments":
			if args, err = p.parseFSArguments(); err != nil {
				return Attr{}, err
			}
		default:
			if err := p.skip(); err != nil {
				return Attr{}, err
			}
		}
	}
	if err := p.expectDelim('}'); err != nil {
		return Attr{}, err
	}
	if typeTok == nil {
		return Attr{}, fmt.Errorf("%w: attribute %q has no type", ErrMissingField, name)
	}
	t := typeFromToken(typeTok)
	switch t {
	case TypeNone:
		return Attr{Name: name, Value: NoneValue()}, nil
	case TypeTranslatedString:
		if !hasHandle {
			return Attr{}, fmt.Errorf("%w: attribute %q has no handle", ErrMissingField, name)
		}
		ts := TranslatedString{Handle: handle, Version: version, Value: tokenString(valueTok)}
		return Attr{Name: name, Value: TranslatedValue(ts)}, nil
	case TypeTranslatedFSString:
		if !hasHandle {
			return Attr{}, fmt.Errorf("%w: attribute %q has no handle", ErrMissingField, name)
		}
		fs := TranslatedFSString{Handle: handle, Version: version, Value: tokenString(valueTok), Arguments: args}
		return Attr{Name: name, Value: TranslatedFSValue(fs)}, nil
	}
	if !hasValue {
		return Attr{}, fmt.Errorf("%w: attribute %q has no value", ErrMissingField, name)
	}
	v, _, err := ParseText(t, tokenString(valueTok))
	if err != nil {
		return Attr{}, err
	}
	return Attr{Name: name, Value: v}, nil
}

func (p *lsjParser) parseFSArguments() ([]TranslatedFSArgument, error) {
	if err := p.expectDelim('['); err != nil {
		return nil, err
	}
	var args []TranslatedFSArgument
	for p.dec.More() {
		if err := p.expectDelim('{'); err != nil {
			return nil, err
		}
		var arg TranslatedFSArgument
		for p.dec.More() {
			key, err := p.stringToken()
			if err != nil {
				return nil, err
			}
			switch key {
			case "key":
				if arg.Key, err = p.stringToken(); err != nil {
					return nil, err
				}
			case "string":
				if err := p.expectDelim('{'); err != nil {
					return nil, err
				}
				if arg.String, err = p.parseFSBody(); err != nil {
					return nil, err
				}
			case "value":
				t, err := p.next()
				if err != nil {
					return nil, err
				}
				arg.Value = tokenString(t)
			default:
				if err := p.skip(); err != nil {
					return nil, err
				}
			}
		}
		if err := p.expectDelim('}'); err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	if err := p.expectDelim(']'); err != nil {
		return nil, err
	}
	return args, nil
}

// parseFSBody reads a nested format-string object whose opening brace is
// already consumed.
func (p *lsjParser) parseFSBody() (TranslatedFSString, error) {
	var fs TranslatedFSString
	for p.dec.More() {
		key, err := p.stringToken()
		if err != nil {
			return fs, err
		}
		switch key {
		case "value":
			t, err := p.next()
			if err != nil {
				return fs, err
			}
			fs.Value = tokenString(t)
		case "handle":
			if fs.Handle, err = p.stringToken(); err != nil {
				return fs, err
			}
		case "version":
			t, err := p.next()
			if err != nil {
				return fs, err
			}
			if num, ok := t.(json.Number); ok {
				n, _ := strconv.ParseUint(num.String(), 10, 16)
				fs.Version = uint16(n)
			}
		case "arguments":
			if fs.Arguments, err = p.parseFSArguments(); err != nil {
				return fs, err
			}
		default:
			if err := p.skip(); err != nil {
				return fs, err
			}
		}
	}
	return fs, p.expectDelim('}')
}

// typeFromToken resolves the type field, which may be the type name or its
// numeric id.
func typeFromToken(t json.Token) TypeID {
	switch v := t.(type) {
	case string:
		return TypeFromName(v)
	case json.Number:
		n, err := strconv.ParseUint(v.String(), 10, 32)
		if err == nil && TypeID(n) <= maxTypeID {
			return TypeID(n)
		}
	}
	return TypeNone
}

// tokenString renders a scalar token in its canonical text form. Null and
// absent values render empty.
func tokenString(t json.Token) string {
	switch v := t.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "True"
		}
		return "False"
	}
	return ""
}
