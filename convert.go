package lsdoc

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ============================================================
// Format Selection and Conversion
// ============================================================

// Format selects one of the three resource encodings.
type Format int

const (
	FormatLSF Format = iota
	FormatLSX
	FormatLSJ
)

// String returns the format's extension name.
func (f Format) String() string {
	switch f {
	case FormatLSF:
		return "lsf"
	case FormatLSX:
		return "lsx"
	case FormatLSJ:
		return "lsj"
	}
	return "unknown"
}

// FormatForPath selects the codec for a file path by extension, case
// insensitively.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lsf":
		return FormatLSF, nil
	case ".lsx":
		return FormatLSX, nil
	case ".lsj":
		return FormatLSJ, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Decode decodes data in the given format.
func Decode(data []byte, f Format) (*Document, error) {
	switch f {
	case FormatLSF:
		return DecodeLSF(data)
	case FormatLSX:
		return DecodeLSX(data)
	case FormatLSJ:
		return DecodeLSJ(data)
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, f)
}

// Encode encodes a document in the given format.
func Encode(doc *Document, f Format) ([]byte, error) {
	switch f {
	case FormatLSF:
		return EncodeLSF(doc)
	case FormatLSX:
		return EncodeLSX(doc)
	case FormatLSJ:
		return EncodeLSJ(doc)
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, f)
}

// Convert decodes data from one format and re-encodes it in another. The
// document model is the pivot, so any of the nine direction pairs works,
// including same-to-same normalization.
func Convert(data []byte, from, to Format) ([]byte, error) {
	doc, err := Decode(data, from)
	if err != nil {
		return nil, err
	}
	return Encode(doc, to)
}
