package lsdoc

import (
	"fmt"
	"strings"
)

// ============================================================
// Binary Value Codec
// ============================================================

// DecodeValue decodes one attribute payload of the given kind from its raw
// bytes, exactly the slice the attribute record's length covers. Fixed-size
// kinds reject a short payload with ErrTruncated; an id outside the table is
// ErrUnknownType.
func DecodeValue(t TypeID, raw []byte) (Value, error) {
	if t > maxTypeID {
		return Value{}, fmt.Errorf("%w: %d", ErrUnknownType, t)
	}
	r := newByteReader(raw)
	switch t {
	case TypeNone:
		return NoneValue(), nil
	case TypeBool:
		b, err := r.u8()
		if err != nil {
			return Value{}, err
		}
		return BoolValue(b != 0), nil
	case TypeUint8:
		n, err := r.u8()
		if err != nil {
			return Value{}, err
		}
		return UintValue(t, uint64(n)), nil
	case TypeUint16:
		n, err := r.u16()
		if err != nil {
			return Value{}, err
		}
		return UintValue(t, uint64(n)), nil
	case TypeUint32:
		n, err := r.u32()
		if err != nil {
			return Value{}, err
		}
		return UintValue(t, uint64(n)), nil
	case TypeUint64:
		n, err := r.u64()
		if err != nil {
			return Value{}, err
		}
		return UintValue(t, n), nil
	case TypeInt8:
		n, err := r.u8()
		if err != nil {
			return Value{}, err
		}
		return IntValue(t, int64(int8(n))), nil
	case TypeInt16:
		n, err := r.u16()
		if err != nil {
			return Value{}, err
		}
		return IntValue(t, int64(int16(n))), nil
	case TypeInt32:
		n, err := r.i32()
		if err != nil {
			return Value{}, err
		}
		return IntValue(t, int64(n)), nil
	case TypeInt64, TypeOldInt64:
		n, err := r.u64()
		if err != nil {
			return Value{}, err
		}
		return IntValue(t, int64(n)), nil
	case TypeFloat:
		f, err := r.f32()
		if err != nil {
			return Value{}, err
		}
		return FloatValue(t, float64(f)), nil
	case TypeDouble:
		f, err := r.f64()
		if err != nil {
			return Value{}, err
		}
		return FloatValue(t, f), nil
	case TypeIVec2, TypeIVec3, TypeIVec4:
		n, _ := vectorComponents(t)
		comps := make([]int32, n)
		for i := range comps {
			c, err := r.i32()
			if err != nil {
				return Value{}, err
			}
			comps[i] = c
		}
		return IVecValue(t, comps), nil
	case TypeFVec2, TypeFVec3, TypeFVec4,
		TypeMat2x2, TypeMat3x3, TypeMat3x4, TypeMat4x3, TypeMat4x4:
		n, _ := vectorComponents(t)
		comps := make([]float32, n)
		for i := range comps {
			c, err := r.f32()
			if err != nil {
				return Value{}, err
			}
			comps[i] = c
		}
		return FVecValue(t, comps), nil
	case TypeGUID:
		b, err := r.take(16)
		if err != nil {
			return Value{}, err
		}
		var raw16 [16]byte
		copy(raw16[:], b)
		return GUIDValue(raw16), nil
	case TypeScratchBuffer:
		buf := make([]byte, len(raw))
		copy(buf, raw)
		return BufferValue(buf), nil
	case TypeString, TypePath, TypeFixedString, TypeLSString, TypeWString, TypeLSWString:
		return StringValue(t, decodeRawString(raw)), nil
	case TypeTranslatedString:
		ts, err := decodeTranslatedString(r)
		if err != nil {
			return Value{}, err
		}
		return TranslatedValue(ts), nil
	case TypeTranslatedFSString:
		fs, err := decodeTranslatedFSString(r)
		if err != nil {
			return Value{}, err
		}
		return TranslatedFSValue(fs), nil
	}
	return Value{}, fmt.Errorf("%w: %d", ErrUnknownType, t)
}

// EncodeValue appends the binary payload of a value to the writer and
// returns the payload's byte length.
func EncodeValue(w *byteWriter, v Value) int {
	start := len(w.buf)
	switch v.typ {
	case TypeNone:
	case TypeBool:
		if v.boolVal {
			w.u8(1)
		} else {
			w.u8(0)
		}
	case TypeUint8:
		w.u8(uint8(v.uintVal))
	case TypeUint16:
		w.u16(uint16(v.uintVal))
	case TypeUint32:
		w.u32(uint32(v.uintVal))
	case TypeUint64:
		w.u64(v.uintVal)
	case TypeInt8:
		w.u8(uint8(int8(v.intVal)))
	case TypeInt16:
		w.u16(uint16(int16(v.intVal)))
	case TypeInt32:
		w.i32(int32(v.intVal))
	case TypeInt64, TypeOldInt64:
		w.u64(uint64(v.intVal))
	case TypeFloat:
		w.f32(float32(v.floatVal))
	case TypeDouble:
		w.f64(v.floatVal)
	case TypeIVec2, TypeIVec3, TypeIVec4:
		n, _ := vectorComponents(v.typ)
		for i := 0; i < n; i++ {
			var c int32
			if i < len(v.ivecVal) {
				c = v.ivecVal[i]
			}
			w.i32(c)
		}
	case TypeFVec2, TypeFVec3, TypeFVec4,
		TypeMat2x2, TypeMat3x3, TypeMat3x4, TypeMat4x3, TypeMat4x4:
		n, _ := vectorComponents(v.typ)
		for i := 0; i < n; i++ {
			var c float32
			if i < len(v.fvecVal) {
				c = v.fvecVal[i]
			}
			w.f32(c)
		}
	case TypeGUID:
		raw := v.bytesVal
		if len(raw) != 16 {
			raw = make([]byte, 16)
			copy(raw, v.bytesVal)
		}
		w.bytes(raw)
	case TypeScratchBuffer:
		w.bytes(v.bytesVal)
	case TypeString, TypePath, TypeFixedString, TypeLSString, TypeWString, TypeLSWString:
		w.bytes([]byte(v.strVal))
		w.u8(0)
	case TypeTranslatedString:
		encodeTranslatedString(w, v.tsVal)
	case TypeTranslatedFSString:
		encodeTranslatedFSString(w, v.fsVal)
	}
	return len(w.buf) - start
}

// decodeRawString interprets a byte run as UTF-8, cut at the first NUL.
// Invalid sequences are replaced rather than rejected; legacy content carries
// stray bytes.
func decodeRawString(raw []byte) string {
	for i, b := range raw {
		if b == 0 {
			raw = raw[:i]
			break
		}
	}
	return strings.ToValidUTF8(string(raw), "�")
}
