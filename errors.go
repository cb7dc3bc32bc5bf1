package lsdoc

import "errors"

// Decode and encode failures are reported through these sentinels so callers
// can branch with errors.Is. Detail is attached via fmt.Errorf wrapping.
var (
	// ErrBadMagic marks a binary payload that does not start with "LSOF".
	ErrBadMagic = errors.New("lsdoc: bad magic")

	// ErrUnsupportedVersion marks a binary format version outside 2..7.
	ErrUnsupportedVersion = errors.New("lsdoc: unsupported format version")

	// ErrDecompression marks a corrupt LZ4 stream or a decompressed size
	// that does not match the declared uncompressed size.
	ErrDecompression = errors.New("lsdoc: decompression failed")

	// ErrTruncated marks a declared length that exceeds the available bytes.
	ErrTruncated = errors.New("lsdoc: truncated input")

	// ErrInvalidStringIndex marks an out-of-range name table reference
	// (the 65535 sentinel is not an error and resolves to "").
	ErrInvalidStringIndex = errors.New("lsdoc: invalid string table index")

	// ErrInvalidAttributeIndex marks a broken attribute chain.
	ErrInvalidAttributeIndex = errors.New("lsdoc: invalid attribute index")

	// ErrInvalidNodeIndex marks a node record referencing a parent outside
	// the node table.
	ErrInvalidNodeIndex = errors.New("lsdoc: invalid node index")

	// ErrMalformedMarkup marks an XML or JSON syntax error.
	ErrMalformedMarkup = errors.New("lsdoc: malformed markup")

	// ErrMissingField marks a JSON attribute object without its required
	// type, value, or handle field.
	ErrMissingField = errors.New("lsdoc: missing required field")

	// ErrUnknownType marks an unassigned type id in binary input.
	ErrUnknownType = errors.New("lsdoc: unknown type id")

	// ErrUnknownFormat marks a file extension that selects no codec.
	ErrUnknownFormat = errors.New("lsdoc: unrecognized format")
)
