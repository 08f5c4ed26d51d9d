package classfile

// attrHookResult is what an override hook returns for one attribute
// record: either a replacement Attribute to keep, or a nil attr to
// drop the record entirely after consuming it (spec.md §4.5).
type attrHookResult struct {
	attr Attribute
}

// attrHook inspects a just-read attribute name/length and may consume
// the body itself, or call def to get the generic fallback behaviour.
// In both cases the hook is obligated to consume exactly length bytes
// from r (spec.md §4.5 "override hook", §9 "Attribute body length
// discipline").
type attrHook func(name string, length uint32, r *reader, def func() (Attribute, error)) (attrHookResult, error)

// readAttributes reads an attribute_count (u16) followed by that many
// (name_index, length, body) records, dispatching each through hook
// if non-nil (spec.md §4.5).
func readAttributes(r *reader, pool []Const, hook attrHook) ([]Attribute, error) {
	count, err := r.u16("attribute count")
	if err != nil {
		return nil, err
	}
	attrs := make([]Attribute, 0, count)
	for i := uint16(0); i < count; i++ {
		attr, kept, err := readOneAttribute(r, pool, hook)
		if err != nil {
			return nil, err
		}
		if kept {
			attrs = append(attrs, attr)
		}
	}
	return attrs, nil
}

func readOneAttribute(r *reader, pool []Const, hook attrHook) (Attribute, bool, error) {
	nameIndex, err := r.u16("attribute name_index")
	if err != nil {
		return nil, false, err
	}
	name, err := constUtf8String(pool, nameIndex)
	if err != nil {
		return nil, false, err
	}
	length, err := r.u32("attribute length")
	if err != nil {
		return nil, false, err
	}

	start := r.offset()
	def := func() (Attribute, error) {
		return genericAttribute(name, length, r, pool)
	}

	var result attrHookResult
	if hook != nil {
		result, err = hook(name, length, r, def)
	} else {
		attr, derr := def()
		result, err = attrHookResult{attr: attr}, derr
	}
	if err != nil {
		return nil, false, err
	}

	// The hook is obligated to consume exactly `length` bytes,
	// whether or not it kept an Attribute (spec.md §9 "Attribute body
	// length discipline"). A defensive bracket catches an
	// implementation bug in a hook rather than silently
	// desynchronising the stream.
	if consumed := r.offset() - start; consumed != int(length) {
		return nil, false, newErr(KindMalformedAttribute, nil, "%s: hook consumed %d bytes, expected %d", name, consumed, length)
	}

	if result.attr == nil {
		return nil, false, nil
	}
	return result.attr, true, nil
}

// genericAttribute implements the name-dispatch table common to every
// context (field, method, class, code): the attributes spec.md §4.5
// calls "class-level-agnostic". Callers reach it as the `def`
// fallback from a more specific override hook, with r already
// positioned at the start of the attribute's body.
func genericAttribute(name string, length uint32, r *reader, pool []Const) (Attribute, error) {
	switch name {
	case "Deprecated":
		if length != 0 {
			return nil, newErr(KindMalformedAttribute, nil, "Deprecated")
		}
		return DeprecatedAttribute{}, nil

	case "RuntimeVisibleAnnotations":
		anns, err := parseAnnotationList(r, pool)
		if err != nil {
			return nil, err
		}
		return VisibleAnnotationsAttribute{Annotations: anns}, nil

	case "RuntimeInvisibleAnnotations":
		anns, err := parseAnnotationList(r, pool)
		if err != nil {
			return nil, err
		}
		return InvisibleAnnotationsAttribute{Annotations: anns}, nil

	default:
		b, err := r.bytes("attribute body", int(length))
		if err != nil {
			return nil, err
		}
		return UnknownAttribute{Name: name, Bytes: b}, nil
	}
}

func constUtf8String(pool []Const, idx uint16) (string, error) {
	if err := checkIndex(idx, len(pool)); err != nil {
		return "", err
	}
	u, ok := pool[idx].(ConstUtf8)
	if !ok {
		return "", newErr(KindUnexpectedConstantKind, nil, "%d", idx)
	}
	return string(u.Bytes), nil
}

func constAt(pool []Const, idx uint16) (Const, error) {
	if err := checkIndex(idx, len(pool)); err != nil {
		return nil, err
	}
	return pool[idx], nil
}

func constSignatureUtf8(pool []Const, idx uint16) (Signature, error) {
	s, err := constUtf8String(pool, idx)
	if err != nil {
		return nil, err
	}
	return ParseSignature(s)
}
