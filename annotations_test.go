package classfile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseElementValueEnum(t *testing.T) {
	pool := []Const{
		ConstUnusable{},
		ConstUtf8{Bytes: []byte("Lcom/example/Color;")}, // 1
		ConstUtf8{Bytes: []byte("RED")},                  // 2
	}
	b := &cfBuilder{}
	b.u8('e').u16(1).u16(2)
	r := b.reader()

	v, err := parseElementValue(r, pool)
	require.NoError(t, err)
	ev, ok := v.(EnumElementValue)
	require.True(t, ok)
	require.Equal(t, "RED", ev.Name)
	require.Equal(t, ObjectSig{Path: Path{Package: []string{"com", "example"}, Name: "Color"}}, ev.Type)
}

func TestParseElementValueClass(t *testing.T) {
	pool := []Const{
		ConstUnusable{},
		ConstUtf8{Bytes: []byte("Ljava/lang/String;")}, // 1
	}
	b := &cfBuilder{}
	b.u8('c').u16(1)
	r := b.reader()

	v, err := parseElementValue(r, pool)
	require.NoError(t, err)
	cv, ok := v.(ClassElementValue)
	require.True(t, ok)
	require.Equal(t, ObjectSig{Path: Path{Package: []string{"java", "lang"}, Name: "String"}}, cv.Type)
}

func TestParseElementValueArray(t *testing.T) {
	pool := []Const{ConstUnusable{}, ConstInt{Value: 1}, ConstInt{Value: 2}}
	b := &cfBuilder{}
	b.u8('[').u16(2)
	b.u8('I').u16(1)
	b.u8('I').u16(2)
	r := b.reader()

	v, err := parseElementValue(r, pool)
	require.NoError(t, err)
	arr, ok := v.(ArrayElementValue)
	require.True(t, ok)
	require.Len(t, arr.Values, 2)
	require.Equal(t, ConstElementValue{Tag: 'I', Value: ConstInt{Value: 1}}, arr.Values[0])
	require.Equal(t, ConstElementValue{Tag: 'I', Value: ConstInt{Value: 2}}, arr.Values[1])
}

func TestParseElementValueNestedAnnotation(t *testing.T) {
	pool := []Const{
		ConstUnusable{},
		ConstUtf8{Bytes: []byte("Lcom/example/Outer;")}, // 1
	}
	b := &cfBuilder{}
	b.u8('@')
	b.u16(1) // annotation type_index
	b.u16(0) // no elements
	r := b.reader()

	v, err := parseElementValue(r, pool)
	require.NoError(t, err)
	av, ok := v.(AnnotationElementValue)
	require.True(t, ok)
	require.Equal(t, ObjectSig{Path: Path{Package: []string{"com", "example"}, Name: "Outer"}}, av.Annotation.Type)
	require.Empty(t, av.Annotation.Elements)
}

func TestParseElementValueUnknownTag(t *testing.T) {
	pool := []Const{ConstUnusable{}}
	b := &cfBuilder{}
	b.u8('?')
	r := b.reader()

	_, err := parseElementValue(r, pool)
	require.Error(t, err)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	require.Equal(t, KindMalformedAttribute, de.Kind)
}
