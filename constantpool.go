package classfile

// Constant pool tag bytes (spec.md §4.3).
const (
	tagUtf8               = 1
	tagInteger            = 3
	tagFloat              = 4
	tagLong               = 5
	tagDouble             = 6
	tagClass              = 7
	tagString             = 8
	tagFieldref           = 9
	tagMethodref          = 10
	tagInterfaceMethodref = 11
	tagNameAndType        = 12
	tagMethodHandle       = 15
	tagMethodType         = 16
	tagInvokeDynamic      = 18
)

// parseConstantPool reads constant_count-1 entries from r. The
// returned slice has length constant_count; index 0 and the slot
// after every Long/Double are rawUnusable (spec.md §4.3, invariant in
// §3 and §8 scenario 1).
func parseConstantPool(r *reader, count uint16) ([]RawConst, error) {
	if count == 0 {
		return nil, newErr(KindTruncated, nil, "constant_pool_count must be at least 1")
	}
	pool := make([]RawConst, count)
	pool[0] = rawUnusable{}

	for i := uint16(1); i < count; i++ {
		tag, err := r.u8("constant pool tag")
		if err != nil {
			return nil, err
		}

		switch tag {
		case tagUtf8:
			n, err := r.u16("Utf8 length")
			if err != nil {
				return nil, err
			}
			b, err := r.bytes("Utf8 bytes", int(n))
			if err != nil {
				return nil, err
			}
			pool[i] = rawUtf8{Bytes: b}

		case tagInteger:
			v, err := r.i32("Integer value")
			if err != nil {
				return nil, err
			}
			pool[i] = rawInt{Value: v}

		case tagFloat:
			v, err := r.f32("Float value")
			if err != nil {
				return nil, err
			}
			pool[i] = rawFloat{Value: v}

		case tagLong:
			v, err := r.i64("Long value")
			if err != nil {
				return nil, err
			}
			pool[i] = rawLong{Value: v}
			i++
			if i < count {
				pool[i] = rawUnusable{}
			}

		case tagDouble:
			v, err := r.f64("Double value")
			if err != nil {
				return nil, err
			}
			pool[i] = rawDouble{Value: v}
			i++
			if i < count {
				pool[i] = rawUnusable{}
			}

		case tagClass:
			idx, err := r.u16("Class name_index")
			if err != nil {
				return nil, err
			}
			pool[i] = rawClassRef{NameIndex: idx}

		case tagString:
			idx, err := r.u16("String string_index")
			if err != nil {
				return nil, err
			}
			pool[i] = rawStringRef{StringIndex: idx}

		case tagFieldref:
			c, nt, err := readRefPair(r, "Fieldref")
			if err != nil {
				return nil, err
			}
			pool[i] = rawFieldRef{ClassIndex: c, NameAndTypeIndex: nt}

		case tagMethodref:
			c, nt, err := readRefPair(r, "Methodref")
			if err != nil {
				return nil, err
			}
			pool[i] = rawMethodRef{ClassIndex: c, NameAndTypeIndex: nt}

		case tagInterfaceMethodref:
			c, nt, err := readRefPair(r, "InterfaceMethodref")
			if err != nil {
				return nil, err
			}
			pool[i] = rawInterfaceMethodRef{ClassIndex: c, NameAndTypeIndex: nt}

		case tagNameAndType:
			n, d, err := readRefPair(r, "NameAndType")
			if err != nil {
				return nil, err
			}
			pool[i] = rawNameAndTypeRef{NameIndex: n, DescriptorIndex: d}

		case tagMethodHandle:
			kindByte, err := r.u8("MethodHandle reference_kind")
			if err != nil {
				return nil, err
			}
			kind := ReferenceKind(kindByte)
			if !kind.valid() {
				return nil, newErr(KindBadReferenceKind, nil, "%d", kindByte)
			}
			idx, err := r.u16("MethodHandle reference_index")
			if err != nil {
				return nil, err
			}
			pool[i] = rawMethodHandle{Kind: kind, RefIndex: idx}

		case tagMethodType:
			idx, err := r.u16("MethodType descriptor_index")
			if err != nil {
				return nil, err
			}
			pool[i] = rawMethodTypeRef{DescriptorIndex: idx}

		case tagInvokeDynamic:
			b, nt, err := readRefPair(r, "InvokeDynamic")
			if err != nil {
				return nil, err
			}
			pool[i] = rawInvokeDynamic{BootstrapIndex: b, NameAndTypeIndex: nt}

		default:
			return nil, newErr(KindBadConstantTag, nil, "%d at index %d", tag, i)
		}
	}

	return pool, nil
}

func readRefPair(r *reader, thing string) (uint16, uint16, error) {
	a, err := r.u16(thing + " first index")
	if err != nil {
		return 0, 0, err
	}
	b, err := r.u16(thing + " second index")
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// checkIndex validates that idx is in range for a pool of the given
// count (spec.md §4.3: "a reference to 0 or to >= count fails with
// InvalidConstantIndex"). It does not check whether the slot holds an
// Unusable entry; callers that need a particular kind check the type.
func checkIndex(idx uint16, count int) error {
	if idx == 0 || int(idx) >= count {
		return newErr(KindInvalidConstantIndex, nil, "%d", idx)
	}
	return nil
}
