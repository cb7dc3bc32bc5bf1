package lsdoc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeFromName(t *testing.T) {
	cases := []struct {
		name string
		want TypeID
	}{
		{"int32", TypeInt32},
		{"LSString", TypeLSString},
		{"TranslatedString", TypeTranslatedString},
		{"guid", TypeGUID},
		// Legacy aliases.
		{"Byte", TypeUint8},
		{"UUID", TypeGUID},
		{"Vec3", TypeFVec3},
		{"Mat4", TypeMat4x4},
		{"ULongLong", TypeUint64},
		// Numeric form.
		{"4", TypeInt32},
		{"33", TypeTranslatedFSString},
		// Unrecognized names fall back to None.
		{"NoSuchType", TypeNone},
		{"99", TypeNone},
		{"", TypeNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, TypeFromName(tc.name))
		})
	}
}

func TestTypeNameRoundTrip(t *testing.T) {
	for id := TypeID(0); id <= maxTypeID; id++ {
		require.Equal(t, id, TypeFromName(TypeName(id)), TypeName(id))
	}
	require.Equal(t, "Unknown", TypeName(TypeID(50)))
}

func TestIsNumeric(t *testing.T) {
	require.True(t, IsNumeric(TypeInt32))
	require.True(t, IsNumeric(TypeUint64))
	require.True(t, IsNumeric(TypeFloat))
	require.True(t, IsNumeric(TypeDouble))
	require.False(t, IsNumeric(TypeBool))
	require.False(t, IsNumeric(TypeLSString))
	require.False(t, IsNumeric(TypeIVec2))
	require.False(t, IsNumeric(TypeTranslatedString))
}

func TestValueEqual(t *testing.T) {
	require.True(t, IntValue(TypeInt32, 5).Equal(IntValue(TypeInt32, 5)))
	require.False(t, IntValue(TypeInt32, 5).Equal(IntValue(TypeInt32, 6)))
	require.False(t, IntValue(TypeInt32, 5).Equal(UintValue(TypeUint32, 5)))

	a := TranslatedValue(TranslatedString{Handle: "h123", Version: 5})
	b := TranslatedValue(TranslatedString{Handle: "h123", Version: 5})
	c := TranslatedValue(TranslatedString{Handle: "h123", Version: 6})
	d := TranslatedValue(TranslatedString{Handle: "h123", Version: 5, Value: "inline"})
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
	require.False(t, a.Equal(d))

	fs1 := TranslatedFSValue(TranslatedFSString{
		Handle: "hfs",
		Arguments: []TranslatedFSArgument{
			{Key: "k", String: TranslatedFSString{Handle: "nested"}, Value: "x"},
		},
	})
	fs2 := TranslatedFSValue(TranslatedFSString{
		Handle: "hfs",
		Arguments: []TranslatedFSArgument{
			{Key: "k", String: TranslatedFSString{Handle: "nested"}, Value: "x"},
		},
	})
	fs3 := TranslatedFSValue(TranslatedFSString{Handle: "hfs"})
	require.True(t, fs1.Equal(fs2))
	require.False(t, fs1.Equal(fs3))
}

func TestValueNumber(t *testing.T) {
	n, ok := IntValue(TypeInt16, -3).Number()
	require.True(t, ok)
	require.Equal(t, -3.0, n)
	n, ok = UintValue(TypeUint32, 7).Number()
	require.True(t, ok)
	require.Equal(t, 7.0, n)
	n, ok = FloatValue(TypeDouble, 2.5).Number()
	require.True(t, ok)
	require.Equal(t, 2.5, n)
	_, ok = StringValue(TypeLSString, "5").Number()
	require.False(t, ok)
}

func TestVersionPack(t *testing.T) {
	v := Version{Major: 4, Minor: 0, Revision: 9, Build: 331}
	require.Equal(t, v, UnpackVersion(v.Pack()))
	require.Equal(t, uint64(4)<<55|uint64(9)<<31|331, v.Pack())
}
