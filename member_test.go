package classfile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMemberFieldWithConstantValue(t *testing.T) {
	pool := []Const{
		ConstUnusable{},
		ConstUtf8{Bytes: []byte("COUNT")}, // 1 name
		ConstUtf8{Bytes: []byte("I")},     // 2 descriptor
		ConstUtf8{Bytes: []byte("ConstantValue")}, // 3
		ConstInt{Value: 7}, // 4
	}

	b := &cfBuilder{}
	b.u16(uint16(FlagPublic | FlagStatic | FlagFinal)) // access_flags
	b.u16(1)                                           // name_index
	b.u16(2)                                           // descriptor_index
	b.u16(1)                                           // attributes_count
	b.u16(3).u32(2).u16(4)                              // ConstantValue attribute
	r := b.reader()

	m, err := parseMember(r, pool, FieldMember)
	require.NoError(t, err)
	require.Equal(t, "COUNT", m.Name)
	require.True(t, m.Flags.Has(FlagStatic))
	require.Equal(t, PrimitiveSig{Kind: Int}, m.Signature)
	require.Equal(t, ConstInt{Value: 7}, m.Constant)
	require.Empty(t, m.Attributes)
}

func TestParseMemberFieldSyntheticAttribute(t *testing.T) {
	pool := []Const{
		ConstUnusable{},
		ConstUtf8{Bytes: []byte("x")},
		ConstUtf8{Bytes: []byte("I")},
		ConstUtf8{Bytes: []byte("Synthetic")},
	}

	b := &cfBuilder{}
	b.u16(uint16(FlagPrivate))
	b.u16(1)
	b.u16(2)
	b.u16(1)
	b.u16(3).u32(0)
	r := b.reader()

	m, err := parseMember(r, pool, FieldMember)
	require.NoError(t, err)
	require.True(t, m.Flags.Has(FlagSynthetic))
}

// spec.md §8 scenario 5: a method's Signature attribute overrides its
// plain descriptor with a generic signature carrying formal type
// parameters.
func TestParseMemberMethodSignatureOverridesDescriptor(t *testing.T) {
	pool := []Const{
		ConstUnusable{},
		ConstUtf8{Bytes: []byte("identity")}, // 1 name
		ConstUtf8{Bytes: []byte("(Ljava/lang/Object;)Ljava/lang/Object;")}, // 2 descriptor
		ConstUtf8{Bytes: []byte("Signature")},                             // 3
		ConstUtf8{Bytes: []byte("<T:Ljava/lang/Object;>(TT;)TT;")},        // 4 generic signature
	}

	b := &cfBuilder{}
	b.u16(uint16(FlagPublic))
	b.u16(1)
	b.u16(2)
	b.u16(1)
	b.u16(3).u32(2).u16(4)
	r := b.reader()

	m, err := parseMember(r, pool, MethodMember)
	require.NoError(t, err)
	require.Equal(t, "identity", m.Name)

	vmSig, ok := m.VMSignature.(MethodSig)
	require.True(t, ok)
	require.Len(t, vmSig.Args, 1)

	sig, ok := m.Signature.(MethodSig)
	require.True(t, ok)
	require.Equal(t, TypeVariableSig{Name: "T"}, sig.Args[0])
	require.Equal(t, TypeVariableSig{Name: "T"}, sig.Ret)
	require.Len(t, m.TypeParams, 1)
	require.Equal(t, "T", m.TypeParams[0].Name)
}

func TestParseMemberMethodCodeAttributePreserved(t *testing.T) {
	pool := []Const{
		ConstUnusable{},
		ConstUtf8{Bytes: []byte("run")},
		ConstUtf8{Bytes: []byte("()V")},
		ConstUtf8{Bytes: []byte("Code")},
	}

	b := &cfBuilder{}
	b.u16(uint16(FlagPublic))
	b.u16(1)
	b.u16(2)
	b.u16(1)
	b.u16(3).u32(3).bytes([]byte{0xB1, 0x00, 0x00}) // fake code body
	r := b.reader()

	m, err := parseMember(r, pool, MethodMember)
	require.NoError(t, err)
	require.NotNil(t, m.Code)
	unk, ok := (*m.Code).(UnknownAttribute)
	require.True(t, ok)
	require.Equal(t, "Code", unk.Name)
	require.Len(t, m.Attributes, 1)
}

func TestParseMemberMethodExceptions(t *testing.T) {
	pool := []Const{
		ConstUnusable{},
		ConstUtf8{Bytes: []byte("risky")},
		ConstUtf8{Bytes: []byte("()V")},
		ConstUtf8{Bytes: []byte("Exceptions")},
		ConstUtf8{Bytes: []byte("java/io/IOException")}, // 4
		ConstClass{Path: Path{Package: []string{"java", "io"}, Name: "IOException"}}, // 5
	}

	b := &cfBuilder{}
	b.u16(uint16(FlagPublic))
	b.u16(1)
	b.u16(2)
	b.u16(1)
	b.u16(3).u32(4).u16(1).u16(5) // number_of_exceptions=1, exception_index=5
	r := b.reader()

	m, err := parseMember(r, pool, MethodMember)
	require.NoError(t, err)
	require.Len(t, m.Throws, 1)
	require.Equal(t, ObjectSig{Path: Path{Package: []string{"java", "io"}, Name: "IOException"}}, m.Throws[0])
}
