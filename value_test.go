package lsdoc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBinaryValueRoundTrip(t *testing.T) {
	guid, ok := parseGUID("123e4567-e89b-12d3-a456-426614174000")
	require.True(t, ok)

	cases := []struct {
		name string
		v    Value
	}{
		{"bool", BoolValue(true)},
		{"uint8", UintValue(TypeUint8, 255)},
		{"int16", IntValue(TypeInt16, -1000)},
		{"uint16", UintValue(TypeUint16, 60000)},
		{"int32", IntValue(TypeInt32, -123456)},
		{"uint32", UintValue(TypeUint32, 4000000000)},
		{"int64", IntValue(TypeInt64, -1<<40)},
		{"old int64", IntValue(TypeOldInt64, 42)},
		{"uint64", UintValue(TypeUint64, 1<<63+5)},
		{"int8", IntValue(TypeInt8, -128)},
		{"float", FloatValue(TypeFloat, 1.25)},
		{"double", FloatValue(TypeDouble, -0.001)},
		{"string", StringValue(TypeLSString, "Hello")},
		{"fixed string", StringValue(TypeFixedString, "Greeting")},
		{"ivec2", IVecValue(TypeIVec2, []int32{-5, 9})},
		{"fvec4", FVecValue(TypeFVec4, []float32{1, 2.5, -3, 0})},
		{"mat3x3", FVecValue(TypeMat3x3, []float32{1, 0, 0, 0, 1, 0, 0, 0, 1})},
		{"guid", GUIDValue(guid)},
		{"buffer", BufferValue([]byte{0, 1, 2, 255})},
		{"translated", TranslatedValue(TranslatedString{Handle: "h123", Version: 5})},
		{"translated inline", TranslatedValue(TranslatedString{Handle: "h123", Version: 5, Value: "Hi"})},
		{"fs string", TranslatedFSValue(TranslatedFSString{
			Handle: "hfs", Version: 1, Value: "[1] hits [2]",
			Arguments: []TranslatedFSArgument{
				{Key: "[1]", String: TranslatedFSString{Handle: "harg"}, Value: "Orc"},
			},
		})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var w byteWriter
			n := EncodeValue(&w, tc.v)
			require.Equal(t, len(w.buf), n)
			got, err := DecodeValue(tc.v.Type(), w.buf)
			require.NoError(t, err)
			require.True(t, tc.v.Equal(got), "got %s", FormatText(got))
		})
	}
}

// Counted-string lengths include the NUL terminator; empty strings are
// written as length 0 with no bytes at all.
func TestTranslatedStringWireLayout(t *testing.T) {
	raw := []byte{5, 0, 5, 0, 0, 0, 'h', '1', '2', '3', 0}

	v, err := DecodeValue(TypeTranslatedString, raw)
	require.NoError(t, err)
	require.Equal(t, "h123", v.Translated().Handle)
	require.Equal(t, uint16(5), v.Translated().Version)
	require.Equal(t, "", v.Translated().Value)

	var w byteWriter
	n := EncodeValue(&w, v)
	require.Equal(t, len(raw), n)
	require.Equal(t, raw, w.buf)

	var empty byteWriter
	EncodeValue(&empty, TranslatedValue(TranslatedString{}))
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0}, empty.buf)
	back, err := DecodeValue(TypeTranslatedString, empty.buf)
	require.NoError(t, err)
	require.Equal(t, "", back.Translated().Handle)
}

func TestDecodeValueTruncated(t *testing.T) {
	cases := []struct {
		name string
		t    TypeID
		raw  []byte
	}{
		{"int32 short", TypeInt32, []byte{1, 2}},
		{"double short", TypeDouble, []byte{1, 2, 3, 4}},
		{"guid short", TypeGUID, make([]byte, 15)},
		{"ivec3 short", TypeIVec3, make([]byte, 8)},
		{"translated short", TypeTranslatedString, []byte{0, 0, 10, 0, 0, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeValue(tc.t, tc.raw)
			require.ErrorIs(t, err, ErrTruncated)
		})
	}
}

func TestDecodeValueUnknownType(t *testing.T) {
	_, err := DecodeValue(TypeID(40), []byte{0})
	require.ErrorIs(t, err, ErrUnknownType)
}

// Stray NUL and invalid UTF-8 in legacy content must not leak into the model.
func TestDecodeRawString(t *testing.T) {
	require.Equal(t, "abc", decodeRawString([]byte("abc\x00junk")))
	require.Equal(t, "a�b", decodeRawString([]byte{'a', 0xff, 'b'}))
	require.Equal(t, "", decodeRawString(nil))
}
