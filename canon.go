package lsdoc

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// ============================================================
// Canonical Text Forms
// ============================================================
//
// The textual value forms shared by the LSX and LSJ codecs. Formatting is
// locale-independent; parsing is tolerant of legacy mod content: malformed
// numerics default to zero and report recovery rather than failing.

// FormatText returns the canonical text form of a value. Vector and matrix
// kinds render as space-separated components; translated kinds render as
// their localization handle.
func FormatText(v Value) string {
	switch v.typ {
	case TypeNone:
		return ""
	case TypeBool:
		if v.boolVal {
			return "True"
		}
		return "False"
	case TypeUint8, TypeUint16, TypeUint32, TypeUint64:
		return strconv.FormatUint(v.uintVal, 10)
	case TypeInt8, TypeInt16, TypeInt32, TypeInt64, TypeOldInt64:
		return strconv.FormatInt(v.intVal, 10)
	case TypeFloat:
		return formatFloat32(v.floatVal)
	case TypeDouble:
		return strconv.FormatFloat(v.floatVal, 'f', -1, 64)
	case TypeString, TypePath, TypeFixedString, TypeLSString, TypeWString, TypeLSWString:
		return v.strVal
	case TypeIVec2, TypeIVec3, TypeIVec4:
		parts := make([]string, len(v.ivecVal))
		for i, c := range v.ivecVal {
			parts[i] = strconv.FormatInt(int64(c), 10)
		}
		return strings.Join(parts, " ")
	case TypeFVec2, TypeFVec3, TypeFVec4,
		TypeMat2x2, TypeMat3x3, TypeMat3x4, TypeMat4x3, TypeMat4x4:
		parts := make([]string, len(v.fvecVal))
		for i, c := range v.fvecVal {
			parts[i] = formatFloat32(float64(c))
		}
		return strings.Join(parts, " ")
	case TypeGUID:
		return formatGUID(v.bytesVal)
	case TypeScratchBuffer:
		return base64.StdEncoding.EncodeToString(v.bytesVal)
	case TypeTranslatedString:
		return v.tsVal.Handle
	case TypeTranslatedFSString:
		return v.fsVal.Handle
	}
	return ""
}

// ParseText parses the text form of a value of the given kind. The recovered
// result is true when a malformed numeric, guid, or base64 payload was
// defaulted to its zero value instead of failing; this is the deliberate
// legacy-content tolerance path, observable so tests can assert it.
func ParseText(t TypeID, s string) (v Value, recovered bool, err error) {
	if t > maxTypeID {
		return Value{}, false, fmt.Errorf("%w: %d", ErrUnknownType, t)
	}
	switch t {
	case TypeNone:
		return NoneValue(), false, nil
	case TypeBool:
		return BoolValue(s == "True" || s == "true" || s == "1"), false, nil
	case TypeUint8:
		return parseUintValue(t, s, 8)
	case TypeUint16:
		return parseUintValue(t, s, 16)
	case TypeUint32:
		return parseUintValue(t, s, 32)
	case TypeUint64:
		return parseUintValue(t, s, 64)
	case TypeInt8:
		return parseIntValue(t, s, 8)
	case TypeInt16:
		return parseIntValue(t, s, 16)
	case TypeInt32:
		return parseIntValue(t, s, 32)
	case TypeInt64, TypeOldInt64:
		return parseIntValue(t, s, 64)
	case TypeFloat:
		f, perr := strconv.ParseFloat(s, 32)
		if perr != nil {
			return FloatValue(t, 0), true, nil
		}
		return FloatValue(t, f), false, nil
	case TypeDouble:
		f, perr := strconv.ParseFloat(s, 64)
		if perr != nil {
			return FloatValue(t, 0), true, nil
		}
		return FloatValue(t, f), false, nil
	case TypeString, TypePath, TypeFixedString, TypeLSString, TypeWString, TypeLSWString:
		return StringValue(t, s), false, nil
	case TypeIVec2, TypeIVec3, TypeIVec4:
		n, _ := vectorComponents(t)
		comps := make([]int32, n)
		fields := strings.Fields(s)
		for i := 0; i < n; i++ {
			if i >= len(fields) {
				recovered = true
				continue
			}
			c, perr := strconv.ParseInt(fields[i], 10, 32)
			if perr != nil {
				recovered = true
				continue
			}
			comps[i] = int32(c)
		}
		return IVecValue(t, comps), recovered, nil
	case TypeFVec2, TypeFVec3, TypeFVec4,
		TypeMat2x2, TypeMat3x3, TypeMat3x4, TypeMat4x3, TypeMat4x4:
		n, _ := vectorComponents(t)
		comps := make([]float32, n)
		fields := strings.Fields(s)
		for i := 0; i < n; i++ {
			if i >= len(fields) {
				recovered = true
				continue
			}
			c, perr := strconv.ParseFloat(fields[i], 32)
			if perr != nil {
				recovered = true
				continue
			}
			comps[i] = float32(c)
		}
		return FVecValue(t, comps), recovered, nil
	case TypeGUID:
		raw, ok := parseGUID(s)
		return GUIDValue(raw), !ok, nil
	case TypeScratchBuffer:
		raw, perr := base64.StdEncoding.DecodeString(s)
		if perr != nil {
			return BufferValue(nil), true, nil
		}
		return BufferValue(raw), false, nil
	case TypeTranslatedString:
		return TranslatedValue(TranslatedString{Value: s}), false, nil
	case TypeTranslatedFSString:
		return TranslatedFSValue(TranslatedFSString{Value: s}), false, nil
	}
	return Value{}, false, fmt.Errorf("%w: %d", ErrUnknownType, t)
}

func parseUintValue(t TypeID, s string, bits int) (Value, bool, error) {
	n, err := strconv.ParseUint(s, 10, bits)
	if err != nil {
		return UintValue(t, 0), true, nil
	}
	return UintValue(t, n), false, nil
}

func parseIntValue(t TypeID, s string, bits int) (Value, bool, error) {
	n, err := strconv.ParseInt(s, 10, bits)
	if err != nil {
		return IntValue(t, 0), true, nil
	}
	return IntValue(t, n), false, nil
}

// formatFloat32 renders a float stored at 32-bit precision in its shortest
// round-trippable plain-decimal form, never scientific notation.
func formatFloat32(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 32)
}

// ============================================================
// GUID Text Form
// ============================================================
//
// The engine stores GUIDs byte-swapped relative to the textual form: the
// first three groups in mixed-endian order, the trailing eight bytes swapped
// in adjacent pairs.

var guidSwap = [16]int{3, 2, 1, 0, 5, 4, 7, 6, 9, 8, 11, 10, 13, 12, 15, 14}

// formatGUID renders 16 stored bytes as the dashed lowercase text form.
// Short payloads render as "" rather than erroring.
func formatGUID(raw []byte) string {
	if len(raw) < 16 {
		return ""
	}
	var text [16]byte
	for i, src := range guidSwap {
		text[i] = raw[src]
	}
	h := hex.EncodeToString(text[:])
	return h[0:8] + "-" + h[8:12] + "-" + h[12:16] + "-" + h[16:20] + "-" + h[20:32]
}

// parseGUID parses the dashed text form into stored byte order. A malformed
// guid yields the zero guid with ok=false.
func parseGUID(s string) (raw [16]byte, ok bool) {
	clean := strings.ReplaceAll(s, "-", "")
	if len(clean) != 32 {
		return raw, false
	}
	text, err := hex.DecodeString(clean)
	if err != nil {
		return [16]byte{}, false
	}
	for i, src := range guidSwap {
		raw[src] = text[i]
	}
	return raw, true
}
