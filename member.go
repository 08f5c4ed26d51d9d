package classfile

// parseMember reads one field_info or method_info structure: access
// flags, name, descriptor, and a context-specific attribute list that
// may override the descriptor, add exceptions, or attach a constant
// (spec.md §4.6).
func parseMember(r *reader, pool []Const, kind MemberKind) (Member, error) {
	table := fieldFlagTable
	context := "field"
	if kind == MethodMember {
		table = methodFlagTable
		context = "method"
	}

	flagBits, err := r.u16(context + " access_flags")
	if err != nil {
		return Member{}, err
	}
	flags, err := parseFlags(flagBits, table, context)
	if err != nil {
		return Member{}, err
	}

	nameIndex, err := r.u16(context + " name_index")
	if err != nil {
		return Member{}, err
	}
	name, err := constUtf8String(pool, nameIndex)
	if err != nil {
		return Member{}, err
	}

	descIndex, err := r.u16(context + " descriptor_index")
	if err != nil {
		return Member{}, err
	}
	descStr, err := constUtf8String(pool, descIndex)
	if err != nil {
		return Member{}, err
	}
	vmSig, err := ParseSignature(descStr)
	if err != nil {
		return Member{}, err
	}

	m := &Member{
		Kind:        kind,
		Name:        name,
		VMSignature: vmSig,
		Signature:   vmSig,
		Flags:       flags,
	}

	hook := fieldAttrHook(m, pool)
	if kind == MethodMember {
		hook = methodAttrHook(m, pool)
	}

	attrs, err := readAttributes(r, pool, hook)
	if err != nil {
		return Member{}, err
	}
	m.Attributes = attrs
	return *m, nil
}

func fieldAttrHook(m *Member, pool []Const) attrHook {
	return func(name string, length uint32, r *reader, def func() (Attribute, error)) (attrHookResult, error) {
		switch name {
		case "ConstantValue":
			idx, err := r.u16("ConstantValue constantvalue_index")
			if err != nil {
				return attrHookResult{}, err
			}
			c, err := constAt(pool, idx)
			if err != nil {
				return attrHookResult{}, err
			}
			m.Constant = c
			return attrHookResult{}, nil

		case "Synthetic":
			if length != 0 {
				return attrHookResult{}, newErr(KindMalformedAttribute, nil, "Synthetic")
			}
			m.Flags = m.Flags.with(FlagSynthetic)
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
			sig, err := ParseSignature(s)
			if err != nil {
				return attrHookResult{}, err
			}
			m.Signature = sig
			return attrHookResult{}, nil

		default:
			attr, err := def()
			return attrHookResult{attr: attr}, err
		}
	}
}

func methodAttrHook(m *Member, pool []Const) attrHook {
	return func(name string, length uint32, r *reader, def func() (Attribute, error)) (attrHookResult, error) {
		switch name {
		case "Code":
			body, err := r.bytes("Code body", int(length))
			if err != nil {
				return attrHookResult{}, err
			}
			var attr Attribute = UnknownAttribute{Name: "Code", Bytes: body}
			m.Code = &attr
			return attrHookResult{attr: attr}, nil

		case "Exceptions":
			count, err := r.u16("Exceptions number_of_exceptions")
			if err != nil {
				return attrHookResult{}, err
			}
			throws := make([]Signature, 0, count)
			for i := uint16(0); i < count; i++ {
				idx, err := r.u16("exception_index_table entry")
				if err != nil {
					return attrHookResult{}, err
				}
				c, err := constAt(pool, idx)
				if err != nil {
					return attrHookResult{}, err
				}
				cls, ok := c.(ConstClass)
				if !ok {
					return attrHookResult{}, newErr(KindUnexpectedConstantKind, nil, "%d", idx)
				}
				throws = append(throws, ObjectSig{Path: cls.Path})
			}
			m.Throws = throws
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
			params, methodSig, throws, err := ParseMethodSignature(s)
			if err != nil {
				return attrHookResult{}, err
			}
			m.Signature = methodSig
			m.TypeParams = params
			if len(throws) > 0 {
				m.Throws = throws
			}
			return attrHookResult{}, nil

		default:
			attr, err := def()
			return attrHookResult{attr: attr}, err
		}
	}
}
