package classfile

import "io"

const magicNumber = 0xCAFEBABE

// Decode reads one Java class file from r and returns its fully
// decoded structure (spec.md §4.7). Decoding is single-threaded,
// synchronous, and one-shot: there is no recovery path once an error
// occurs (spec.md §5, §4.7 "State and terminal conditions").
func Decode(r io.Reader) (*Class, error) {
	cr := newReader(r)

	magic, err := cr.u32("magic")
	if err != nil {
		return nil, err
	}
	if magic != magicNumber {
		return nil, newErr(KindBadMagic, nil, "0x%08X", magic)
	}

	minor, err := cr.u16("minor_version")
	if err != nil {
		return nil, err
	}
	major, err := cr.u16("major_version")
	if err != nil {
		return nil, err
	}

	poolCount, err := cr.u16("constant_pool_count")
	if err != nil {
		return nil, err
	}
	raw, err := parseConstantPool(cr, poolCount)
	if err != nil {
		return nil, err
	}
	pool, err := expandConstantPool(raw)
	if err != nil {
		return nil, err
	}

	flagBits, err := cr.u16("class access_flags")
	if err != nil {
		return nil, err
	}
	flags, err := parseFlags(flagBits, classFlagTable, "class")
	if err != nil {
		return nil, err
	}

	thisIndex, err := cr.u16("this_class")
	if err != nil {
		return nil, err
	}
	thisPath, err := classPathFromConstant(pool, thisIndex)
	if err != nil {
		return nil, err
	}

	superIndex, err := cr.u16("super_class")
	if err != nil {
		return nil, err
	}
	super, err := resolveSuper(pool, superIndex)
	if err != nil {
		return nil, err
	}

	interfaces, err := readInterfaces(cr, pool)
	if err != nil {
		return nil, err
	}

	fields, err := readMembers(cr, pool, FieldMember)
	if err != nil {
		return nil, err
	}
	methods, err := readMembers(cr, pool, MethodMember)
	if err != nil {
		return nil, err
	}

	cls := &Class{
		MajorVersion: major,
		MinorVersion: minor,
		Constants:    pool,
		Path:         thisPath,
		Super:        super,
		Flags:        flags,
		Interfaces:   interfaces,
		Fields:       fields,
		Methods:      methods,
	}

	attrs, err := readAttributes(cr, pool, classAttrHook(cls, pool))
	if err != nil {
		return nil, err
	}
	cls.Attributes = attrs

	return cls, nil
}

func classPathFromConstant(pool []Const, idx uint16) (Path, error) {
	c, err := constAt(pool, idx)
	if err != nil {
		return Path{}, err
	}
	cls, ok := c.(ConstClass)
	if !ok {
		return Path{}, newErr(KindUnexpectedConstantKind, nil, "%d", idx)
	}
	return cls.Path, nil
}

// resolveSuper implements spec.md §3's invariant that super is
// Object(java/lang/Object, []) when super_class is 0, regardless of
// whether such an entry actually exists in the pool.
func resolveSuper(pool []Const, superIndex uint16) (Signature, error) {
	if superIndex == 0 {
		return ObjectSig{Path: Path{Package: []string{"java", "lang"}, Name: "Object"}}, nil
	}
	path, err := classPathFromConstant(pool, superIndex)
	if err != nil {
		return nil, err
	}
	return ObjectSig{Path: path}, nil
}

func readInterfaces(r *reader, pool []Const) ([]Signature, error) {
	count, err := r.u16("interfaces_count")
	if err != nil {
		return nil, err
	}
	interfaces := make([]Signature, 0, count)
	for i := uint16(0); i < count; i++ {
		idx, err := r.u16("interface index")
		if err != nil {
			return nil, err
		}
		path, err := classPathFromConstant(pool, idx)
		if err != nil {
			return nil, err
		}
		interfaces = append(interfaces, ObjectSig{Path: path})
	}
	return interfaces, nil
}

func readMembers(r *reader, pool []Const, kind MemberKind) ([]Member, error) {
	count, err := r.u16("member count")
	if err != nil {
		return nil, err
	}
	members := make([]Member, 0, count)
	for i := uint16(0); i < count; i++ {
		m, err := parseMember(r, pool, kind)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, nil
}

func classAttrHook(cls *Class, pool []Const) attrHook {
	return func(name string, length uint32, r *reader, def func() (Attribute, error)) (attrHookResult, error) {
		switch name {
		case "InnerClasses":
			records, err := parseInnerClasses(r, pool)
			if err != nil {
				return attrHookResult{}, err
			}
			cls.InnerTypes = records
			return attrHookResult{}, nil

		case "Signature":
			idx, err := r.u16("Signature signature_index")
			if err != nil {
				return attrHookResult{}, err
			}
			s, err := constUtf8String(pool, idx)
			if err != nil {
				return attrHookResult{}, err
			}
			params, super, interfaces, err := ParseClassSignature(s)
			if err != nil {
				return attrHookResult{}, err
			}
			cls.TypeParams = params
			cls.Super = super
			cls.Interfaces = interfaces
			return attrHookResult{}, nil

		default:
			attr, err := def()
			return attrHookResult{attr: attr}, err
		}
	}
}

func parseInnerClasses(r *reader, pool []Const) ([]InnerClassRecord, error) {
	count, err := r.u16("InnerClasses number_of_classes")
	if err != nil {
		return nil, err
	}
	records := make([]InnerClassRecord, 0, count)
	for i := uint16(0); i < count; i++ {
		innerIndex, err := r.u16("inner_class_info_index")
		if err != nil {
			return nil, err
		}
		innerPath, err := classPathFromConstant(pool, innerIndex)
		if err != nil {
			return nil, err
		}

		outerIndex, err := r.u16("outer_class_info_index")
		if err != nil {
			return nil, err
		}
		var outer *Path
		if outerIndex != 0 {
			p, err := classPathFromConstant(pool, outerIndex)
			if err != nil {
				return nil, err
			}
			outer = &p
		}

		nameIndex, err := r.u16("inner_name_index")
		if err != nil {
			return nil, err
		}
		var innerName *string
		if nameIndex != 0 {
			s, err := constUtf8String(pool, nameIndex)
			if err != nil {
				return nil, err
			}
			innerName = &s
		}

		flagBits, err := r.u16("inner_class_access_flags")
		if err != nil {
			return nil, err
		}
		flags, err := parseFlags(flagBits, innerClassFlagTable, "inner class")
		if err != nil {
			return nil, err
		}

		records = append(records, InnerClassRecord{
			Inner:     innerPath,
			Outer:     outer,
			InnerName: innerName,
			Flags:     flags,
		})
	}
	return records, nil
}
