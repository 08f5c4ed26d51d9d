package classfile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func rawPoolFor(t *testing.T, build func(b *cfBuilder), count int) []RawConst {
	b := &cfBuilder{}
	build(b)
	r := b.reader()
	pool, err := parseConstantPool(r, uint16(count))
	require.NoError(t, err)
	return pool
}

func TestExpandConstantPoolFieldref(t *testing.T) {
	raw := rawPoolFor(t, func(b *cfBuilder) {
		b.utf8("com/example/Foo") // 1
		b.classRef(1)             // 2
		b.utf8("bar")             // 3
		b.utf8("I")               // 4
		b.nameAndType(3, 4)       // 5
		b.fieldRef(2, 5)          // 6
	}, 7)

	pool, err := expandConstantPool(raw)
	require.NoError(t, err)

	field, ok := pool[6].(ConstField)
	require.True(t, ok)
	require.Equal(t, Path{Package: []string{"com", "example"}, Name: "Foo"}, field.Path)
	require.Equal(t, "bar", field.Name)
	require.Equal(t, PrimitiveSig{Kind: Int}, field.Sig)
}

func TestExpandConstantPoolMethodrefRequiresMethodDescriptor(t *testing.T) {
	raw := rawPoolFor(t, func(b *cfBuilder) {
		b.utf8("com/example/Foo") // 1
		b.classRef(1)             // 2
		b.utf8("bar")             // 3
		b.utf8("I")               // 4 not a method descriptor
		b.nameAndType(3, 4)       // 5
		b.methodRef(2, 5)         // 6
	}, 7)

	_, err := expandConstantPool(raw)
	require.Error(t, err)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	require.Equal(t, KindUnexpectedConstantKind, de.Kind)
}

func TestExpandConstantPoolMethodHandleSingleLevel(t *testing.T) {
	raw := rawPoolFor(t, func(b *cfBuilder) {
		b.utf8("com/example/Foo")                       // 1
		b.classRef(1)                                    // 2
		b.utf8("bar")                                     // 3
		b.utf8("()V")                                     // 4
		b.nameAndType(3, 4)                                // 5
		b.methodRef(2, 5)                                  // 6
		b.u8(tagMethodHandle).u8(uint8(InvokeStatic)).u16(6) // 7
	}, 8)

	pool, err := expandConstantPool(raw)
	require.NoError(t, err)

	mh, ok := pool[7].(ConstMethodHandle)
	require.True(t, ok)
	require.Equal(t, InvokeStatic, mh.Kind)
	method, ok := mh.Ref.(ConstMethod)
	require.True(t, ok)
	require.Equal(t, "bar", method.Name)
}

func TestExpandConstantPoolMethodHandleRejectsNestedHandle(t *testing.T) {
	raw := rawPoolFor(t, func(b *cfBuilder) {
		b.u8(tagMethodHandle).u8(uint8(InvokeStatic)).u16(3) // 1
		b.u8(tagMethodHandle).u8(uint8(InvokeStatic)).u16(1) // 2 (unused)
		b.u8(tagMethodHandle).u8(uint8(InvokeStatic)).u16(1) // 3, points back at 1
	}, 4)

	_, err := expandConstantPool(raw)
	require.Error(t, err)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	require.Equal(t, KindUnexpectedConstantKind, de.Kind)
}

func TestExpandConstantPoolInvalidIndex(t *testing.T) {
	raw := rawPoolFor(t, func(b *cfBuilder) {
		b.classRef(9) // points past the end of a 2-entry pool
	}, 2)

	_, err := expandConstantPool(raw)
	require.Error(t, err)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	require.Equal(t, KindInvalidConstantIndex, de.Kind)
}

func TestExpandConstantPoolLongDouble(t *testing.T) {
	raw := rawPoolFor(t, func(b *cfBuilder) {
		b.u8(tagLong).i64(7)
		b.u8(tagInteger).u32(9)
	}, 4)

	pool, err := expandConstantPool(raw)
	require.NoError(t, err)
	require.Equal(t, ConstLong{Value: 7}, pool[1])
	require.IsType(t, ConstUnusable{}, pool[2])
	require.Equal(t, ConstInt{Value: 9}, pool[3])
}
