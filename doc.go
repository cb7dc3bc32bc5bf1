// Package lsdoc implements the three equivalent encodings of the engine's
// hierarchical resource files and lossless conversion between them.
//
// The encodings are:
//   - LSF (binary): interned names, flat record tables, LZ4 block sections
//   - LSX (XML): the editor-facing text form
//   - LSJ (JSON): the pipeline-facing text form
//
// All three map onto one document model: a Document holds named Regions,
// each region holds a tree of Nodes, each node carries ordered typed Attrs.
// Conversion always pivots through the model, so any of the nine direction
// pairs behaves the same.
//
// # Decoding and Encoding
//
//	doc, err := lsdoc.DecodeLSF(data)
//	out, err := lsdoc.EncodeLSX(doc)
//
// or, driven by file extension:
//
//	from, _ := lsdoc.FormatForPath("meta.lsf")
//	out, err := lsdoc.Convert(data, from, lsdoc.FormatLSX)
//
// # Value Model
//
// Attribute values are a tagged union over the format's 34 type ids:
// integers, floats, strings, vectors, matrices, guids, raw buffers, and the
// two localized string kinds. Values round-trip bit-exactly through the
// binary form and through the canonical text forms shared by LSX and LSJ.
//
// Decoding is strict about structure (truncation, bad indices, unknown type
// ids are errors) and tolerant about legacy content (malformed numeric text
// defaults to zero, stray bytes in strings are replaced).
package lsdoc
