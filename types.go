package lsdoc

import (
	"fmt"
)

// TypeID identifies an attribute value type. The numeric values are part of
// the LSF binary contract and must not be renumbered.
type TypeID uint32

const (
	TypeNone               TypeID = 0
	TypeUint8              TypeID = 1
	TypeInt16              TypeID = 2
	TypeUint16             TypeID = 3
	TypeInt32              TypeID = 4
	TypeUint32             TypeID = 5
	TypeFloat              TypeID = 6
	TypeDouble             TypeID = 7
	TypeIVec2              TypeID = 8
	TypeIVec3              TypeID = 9
	TypeIVec4              TypeID = 10
	TypeFVec2              TypeID = 11
	TypeFVec3              TypeID = 12
	TypeFVec4              TypeID = 13
	TypeMat2x2             TypeID = 14
	TypeMat3x3             TypeID = 15
	TypeMat3x4             TypeID = 16
	TypeMat4x3             TypeID = 17
	TypeMat4x4             TypeID = 18
	TypeBool               TypeID = 19
	TypeString             TypeID = 20
	TypePath               TypeID = 21
	TypeFixedString        TypeID = 22
	TypeLSString           TypeID = 23
	TypeUint64             TypeID = 24
	TypeScratchBuffer      TypeID = 25
	TypeOldInt64           TypeID = 26
	TypeInt8               TypeID = 27
	TypeTranslatedString   TypeID = 28
	TypeWString            TypeID = 29
	TypeLSWString          TypeID = 30
	TypeGUID               TypeID = 31
	TypeInt64              TypeID = 32
	TypeTranslatedFSString TypeID = 33
)

// maxTypeID is the highest assigned type id.
const maxTypeID = TypeTranslatedFSString

var typeNames = [maxTypeID + 1]string{
	"None", "uint8", "int16", "uint16", "int32", "uint32", "float", "double",
	"ivec2", "ivec3", "ivec4", "fvec2", "fvec3", "fvec4",
	"mat2x2", "mat3x3", "mat3x4", "mat4x3", "mat4x4",
	"bool", "string", "path", "FixedString", "LSString", "uint64",
	"ScratchBuffer", "old_int64", "int8", "TranslatedString",
	"WString", "LSWString", "guid", "int64", "TranslatedFSString",
}

// TypeName returns the canonical name of a type id, or "Unknown".
func TypeName(t TypeID) string {
	if t <= maxTypeID {
		return typeNames[t]
	}
	return "Unknown"
}

// typeAliases maps the legacy DOS-era names onto the canonical ids.
var typeAliases = map[string]TypeID{
	"Byte": TypeUint8, "Short": TypeInt16, "UShort": TypeUint16,
	"Int": TypeInt32, "UInt": TypeUint32, "Float": TypeFloat,
	"Double": TypeDouble, "IVec2": TypeIVec2, "IVec3": TypeIVec3,
	"IVec4": TypeIVec4, "Vec2": TypeFVec2, "Vec3": TypeFVec3,
	"Vec4": TypeFVec4, "Mat2": TypeMat2x2, "Mat3": TypeMat3x3,
	"Mat3x4": TypeMat3x4, "Mat4x3": TypeMat4x3, "Mat4": TypeMat4x4,
	"Bool": TypeBool, "String": TypeString, "Path": TypePath,
	"ULongLong": TypeUint64, "Long": TypeOldInt64, "Int8": TypeInt8,
	"UUID": TypeGUID, "Int64": TypeInt64,
}

// TypeFromName resolves a type name (canonical, legacy alias, or decimal id)
// to its type id. Unrecognized names resolve to TypeNone, matching the
// tolerant handling of legacy content.
func TypeFromName(name string) TypeID {
	for id := TypeID(0); id <= maxTypeID; id++ {
		if typeNames[id] == name {
			return id
		}
	}
	if id, ok := typeAliases[name]; ok {
		return id
	}
	// Some historic files carry the numeric id instead of the name.
	var n uint32
	if _, err := fmt.Sscanf(name, "%d", &n); err == nil && TypeID(n) <= maxTypeID {
		return TypeID(n)
	}
	return TypeNone
}

// IsNumeric reports whether t is an integer or floating-point kind.
func IsNumeric(t TypeID) bool {
	switch t {
	case TypeUint8, TypeInt16, TypeUint16, TypeInt32, TypeUint32,
		TypeFloat, TypeDouble, TypeUint64, TypeOldInt64, TypeInt8, TypeInt64:
		return true
	}
	return false
}

// vectorComponents returns the component count for vector and matrix kinds.
func vectorComponents(t TypeID) (int, bool) {
	cols, okC := typeColumns(t)
	rows, okR := typeRows(t)
	if !okC || !okR {
		return 0, false
	}
	return cols * rows, true
}

// typeColumns returns the column count for vector/matrix kinds.
func typeColumns(t TypeID) (int, bool) {
	switch t {
	case TypeIVec2, TypeFVec2, TypeMat2x2:
		return 2, true
	case TypeIVec3, TypeFVec3, TypeMat3x3, TypeMat4x3:
		return 3, true
	case TypeIVec4, TypeFVec4, TypeMat3x4, TypeMat4x4:
		return 4, true
	}
	return 0, false
}

// typeRows returns the row count for vector/matrix kinds.
func typeRows(t TypeID) (int, bool) {
	switch t {
	case TypeIVec2, TypeIVec3, TypeIVec4, TypeFVec2, TypeFVec3, TypeFVec4:
		return 1, true
	case TypeMat2x2:
		return 2, true
	case TypeMat3x3, TypeMat3x4:
		return 3, true
	case TypeMat4x3, TypeMat4x4:
		return 4, true
	}
	return 0, false
}

// ============================================================
// Value
// ============================================================

// Value is the typed attribute payload. Exactly one member is meaningful,
// selected by the type id.
type Value struct {
	typ TypeID

	boolVal  bool
	intVal   int64
	uintVal  uint64
	floatVal float64
	strVal   string
	bytesVal []byte
	ivecVal  []int32
	fvecVal  []float32

	tsVal *TranslatedString
	fsVal *TranslatedFSString
}

// TranslatedString is a localization handle plus either a version number or
// an inline fallback value (empty Value means absent).
type TranslatedString struct {
	Handle  string
	Version uint16
	Value   string
}

// TranslatedFSString is a localized format string with nested arguments.
type TranslatedFSString struct {
	Handle    string
	Version   uint16
	Value     string
	Arguments []TranslatedFSArgument
}

// TranslatedFSArgument is one ordered format argument of a TranslatedFSString.
type TranslatedFSArgument struct {
	Key    string
	String TranslatedFSString
	Value  string
}

// ============================================================
// Constructors
// ============================================================

// NoneValue creates an empty value of type None.
func NoneValue() Value {
	return Value{typ: TypeNone}
}

// BoolValue creates a bool value.
func BoolValue(b bool) Value {
	return Value{typ: TypeBool, boolVal: b}
}

// IntValue creates a signed integer value of the given kind.
func IntValue(t TypeID, n int64) Value {
	return Value{typ: t, intVal: n}
}

// UintValue creates an unsigned integer value of the given kind.
func UintValue(t TypeID, n uint64) Value {
	return Value{typ: t, uintVal: n}
}

// FloatValue creates a float or double value.
func FloatValue(t TypeID, f float64) Value {
	return Value{typ: t, floatVal: f}
}

// StringValue creates a string-kind value (string, path, FixedString,
// LSString, WString, LSWString).
func StringValue(t TypeID, s string) Value {
	return Value{typ: t, strVal: s}
}

// GUIDValue creates a guid value from 16 raw bytes.
func GUIDValue(b [16]byte) Value {
	raw := make([]byte, 16)
	copy(raw, b[:])
	return Value{typ: TypeGUID, bytesVal: raw}
}

// BufferValue creates a ScratchBuffer value.
func BufferValue(b []byte) Value {
	return Value{typ: TypeScratchBuffer, bytesVal: b}
}

// IVecValue creates an integer vector value.
func IVecValue(t TypeID, v []int32) Value {
	return Value{typ: t, ivecVal: v}
}

// FVecValue creates a float vector or matrix value.
func FVecValue(t TypeID, v []float32) Value {
	return Value{typ: t, fvecVal: v}
}

// TranslatedValue creates a TranslatedString value.
func TranslatedValue(ts TranslatedString) Value {
	return Value{typ: TypeTranslatedString, tsVal: &ts}
}

// TranslatedFSValue creates a TranslatedFSString value.
func TranslatedFSValue(fs TranslatedFSString) Value {
	return Value{typ: TypeTranslatedFSString, fsVal: &fs}
}

// ============================================================
// Accessors
// ============================================================

// Type returns the value's type id.
func (v Value) Type() TypeID {
	return v.typ
}

// Bool returns the bool member.
func (v Value) Bool() bool {
	return v.boolVal
}

// Int64 returns the signed integer member.
func (v Value) Int64() int64 {
	return v.intVal
}

// Uint64 returns the unsigned integer member.
func (v Value) Uint64() uint64 {
	return v.uintVal
}

// Float64 returns the floating-point member.
func (v Value) Float64() float64 {
	return v.floatVal
}

// Str returns the string member.
func (v Value) Str() string {
	return v.strVal
}

// Bytes returns the raw byte member (guid, ScratchBuffer).
func (v Value) Bytes() []byte {
	return v.bytesVal
}

// Translated returns the TranslatedString member, or nil.
func (v Value) Translated() *TranslatedString {
	return v.tsVal
}

// TranslatedFS returns the TranslatedFSString member, or nil.
func (v Value) TranslatedFS() *TranslatedFSString {
	return v.fsVal
}

// Number returns the value as float64 for any numeric kind.
func (v Value) Number() (float64, bool) {
	switch v.typ {
	case TypeUint8, TypeUint16, TypeUint32, TypeUint64:
		return float64(v.uintVal), true
	case TypeInt8, TypeInt16, TypeInt32, TypeInt64, TypeOldInt64:
		return float64(v.intVal), true
	case TypeFloat, TypeDouble:
		return v.floatVal, true
	}
	return 0, false
}

// Equal reports whether two values carry the same type and payload.
// The comparison goes through the canonical text form so that a value decoded
// from binary compares equal to the same value parsed from LSX or LSJ text.
func (v Value) Equal(other Value) bool {
	if v.typ != other.typ {
		return false
	}
	switch v.typ {
	case TypeTranslatedString:
		return *v.tsVal == *other.tsVal
	case TypeTranslatedFSString:
		return fsStringEqual(v.fsVal, other.fsVal)
	}
	return FormatText(v) == FormatText(other)
}

func fsStringEqual(a, b *TranslatedFSString) bool {
	if a.Handle != b.Handle || a.Version != b.Version || a.Value != b.Value {
		return false
	}
	if len(a.Arguments) != len(b.Arguments) {
		return false
	}
	for i := range a.Arguments {
		x, y := &a.Arguments[i], &b.Arguments[i]
		if x.Key != y.Key || x.Value != y.Value {
			return false
		}
		if !fsStringEqual(&x.String, &y.String) {
			return false
		}
	}
	return true
}
