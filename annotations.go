package classfile

// parseAnnotationList reads a u16 count followed by that many
// annotations, the shape shared by RuntimeVisibleAnnotations and
// RuntimeInvisibleAnnotations (spec.md §4.5).
func parseAnnotationList(r *reader, pool []Const) ([]Annotation, error) {
	count, err := r.u16("annotation count")
	if err != nil {
		return nil, err
	}
	anns := make([]Annotation, 0, count)
	for i := uint16(0); i < count; i++ {
		ann, err := parseAnnotation(r, pool)
		if err != nil {
			return nil, err
		}
		anns = append(anns, ann)
	}
	return anns, nil
}

func parseAnnotation(r *reader, pool []Const) (Annotation, error) {
	typeIndex, err := r.u16("annotation type_index")
	if err != nil {
		return Annotation{}, err
	}
	typeSig, err := constSignatureUtf8(pool, typeIndex)
	if err != nil {
		return Annotation{}, err
	}

	count, err := r.u16("annotation element count")
	if err != nil {
		return Annotation{}, err
	}
	elements := make([]AnnotationElement, 0, count)
	for i := uint16(0); i < count; i++ {
		nameIndex, err := r.u16("element_name_index")
		if err != nil {
			return Annotation{}, err
		}
		name, err := constUtf8String(pool, nameIndex)
		if err != nil {
			return Annotation{}, err
		}
		value, err := parseElementValue(r, pool)
		if err != nil {
			return Annotation{}, err
		}
		elements = append(elements, AnnotationElement{Name: name, Value: value})
	}

	return Annotation{Type: typeSig, Elements: elements}, nil
}

func parseElementValue(r *reader, pool []Const) (ElementValue, error) {
	tag, err := r.u8("element_value tag")
	if err != nil {
		return nil, err
	}

	switch tag {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z', 's':
		idx, err := r.u16("const_value_index")
		if err != nil {
			return nil, err
		}
		c, err := constAt(pool, idx)
		if err != nil {
			return nil, err
		}
		return ConstElementValue{Tag: tag, Value: c}, nil

	case 'e':
		typeIndex, err := r.u16("enum type_name_index")
		if err != nil {
			return nil, err
		}
		typeSig, err := constSignatureUtf8(pool, typeIndex)
		if err != nil {
			return nil, err
		}
		nameIndex, err := r.u16("enum const_name_index")
		if err != nil {
			return nil, err
		}
		name, err := constUtf8String(pool, nameIndex)
		if err != nil {
			return nil, err
		}
		return EnumElementValue{Type: typeSig, Name: name}, nil

	case 'c':
		classIndex, err := r.u16("class_info_index")
		if err != nil {
			return nil, err
		}
		classSig, err := constSignatureUtf8(pool, classIndex)
		if err != nil {
			return nil, err
		}
		return ClassElementValue{Type: classSig}, nil

	case '@':
		ann, err := parseAnnotation(r, pool)
		if err != nil {
			return nil, err
		}
		return AnnotationElementValue{Annotation: ann}, nil

	case '[':
		count, err := r.u16("array_value count")
		if err != nil {
			return nil, err
		}
		values := make([]ElementValue, 0, count)
		for i := uint16(0); i < count; i++ {
			v, err := parseElementValue(r, pool)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		return ArrayElementValue{Values: values}, nil

	default:
		return nil, newErr(KindMalformedAttribute, nil, "unknown element_value tag %q", tag)
	}
}
