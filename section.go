package lsdoc

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/pierrec/lz4/v4"
)

// ============================================================
// Byte Reader
// ============================================================

// byteReader is a bounds-checked little-endian cursor over untrusted input.
// Every read reports ErrTruncated instead of panicking when the payload runs
// short.
type byteReader struct {
	buf []byte
	pos int
}

func newByteReader(buf []byte) *byteReader {
	return &byteReader{buf: buf}
}

func (r *byteReader) remaining() int {
	return len(r.buf) - r.pos
}

func (r *byteReader) take(n int) ([]byte, error) {
	if n < 0 || r.remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			ErrTruncated, n, r.pos, r.remaining())
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *byteReader) u8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *byteReader) u16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *byteReader) u32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *byteReader) u64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *byteReader) i32() (int32, error) {
	n, err := r.u32()
	return int32(n), err
}

func (r *byteReader) f32() (float32, error) {
	n, err := r.u32()
	return math.Float32frombits(n), err
}

func (r *byteReader) f64() (float64, error) {
	n, err := r.u64()
	return math.Float64frombits(n), err
}

// ============================================================
// Byte Writer
// ============================================================

// byteWriter accumulates little-endian output. It mirrors byteReader and
// never fails.
type byteWriter struct {
	buf []byte
}

func (w *byteWriter) bytes(b []byte) {
	w.buf = append(w.buf, b...)
}

func (w *byteWriter) u8(n uint8) {
	w.buf = append(w.buf, n)
}

func (w *byteWriter) u16(n uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, n)
}

func (w *byteWriter) u32(n uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, n)
}

func (w *byteWriter) u64(n uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, n)
}

func (w *byteWriter) i32(n int32) {
	w.u32(uint32(n))
}

func (w *byteWriter) f32(f float32) {
	w.u32(math.Float32bits(f))
}

func (w *byteWriter) f64(f float64) {
	w.u64(math.Float64bits(f))
}

// ============================================================
// Section Compression
// ============================================================

// compressionMethod extracts the low nibble of the header compression flags.
// Zero means sections are stored raw.
func compressionMethod(flags uint32) uint32 {
	return flags & 0x0f
}

// decompressSection restores one section payload. A zero method returns the
// payload unchanged; otherwise the payload is an LZ4 block whose decompressed
// length must match the descriptor exactly.
func decompressSection(payload []byte, uncompressedSize uint32, method uint32) ([]byte, error) {
	if method == 0 {
		return payload, nil
	}
	if uncompressedSize == 0 {
		return nil, nil
	}
	out := make([]byte, uncompressedSize)
	n, err := lz4.UncompressBlock(payload, out)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
	}
	if uint32(n) != uncompressedSize {
		return nil, fmt.Errorf("%w: section inflated to %d bytes, descriptor says %d",
			ErrDecompression, n, uncompressedSize)
	}
	return out, nil
}

// compressSection produces the LZ4 block form of a section payload. Inputs
// the block compressor declines (incompressible or tiny) fall back to a
// literal-only block, which every block decoder accepts.
func compressSection(payload []byte) []byte {
	if len(payload) == 0 {
		return nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(payload)))
	var c lz4.Compressor
	n, err := c.CompressBlock(payload, dst)
	if err != nil || n == 0 {
		return literalBlock(payload)
	}
	return dst[:n]
}

// literalBlock encodes payload as a single LZ4 sequence of literals with no
// match part.
func literalBlock(payload []byte) []byte {
	out := make([]byte, 0, len(payload)+len(payload)/255+16)
	n := len(payload)
	if n < 15 {
		out = append(out, byte(n)<<4)
	} else {
		out = append(out, 0xf0)
		for rest := n - 15; ; rest -= 255 {
			if rest < 255 {
				out = append(out, byte(rest))
				break
			}
			out = append(out, 255)
		}
	}
	return append(out, payload...)
}
