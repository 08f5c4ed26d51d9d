package classfile

import "strings"

// expandConstantPool walks raw once, producing a resolved pool of the
// same length where every index indirection has been chased eagerly
// (spec.md §4.4). Each slot is expanded exactly once by the outer
// loop; expandEntry never calls back into itself for the same index,
// which is what keeps the MethodHandle case from needing memoisation
// (spec.md §9 "Recursive MethodHandle expansion").
func expandConstantPool(raw []RawConst) ([]Const, error) {
	resolved := make([]Const, len(raw))
	for i := range raw {
		c, err := expandEntry(raw, i)
		if err != nil {
			return nil, err
		}
		resolved[i] = c
	}
	return resolved, nil
}

func expandEntry(raw []RawConst, i int) (Const, error) {
	switch e := raw[i].(type) {
	case rawUnusable:
		return ConstUnusable{}, nil

	case rawUtf8:
		return ConstUtf8{Bytes: e.Bytes}, nil

	case rawInt:
		return ConstInt{Value: e.Value}, nil

	case rawFloat:
		return ConstFloat{Value: e.Value}, nil

	case rawLong:
		return ConstLong{Value: e.Value}, nil

	case rawDouble:
		return ConstDouble{Value: e.Value}, nil

	case rawClassRef:
		path, err := classPathAt(raw, e.NameIndex)
		if err != nil {
			return nil, err
		}
		return ConstClass{Path: path}, nil

	case rawStringRef:
		b, err := utf8At(raw, e.StringIndex)
		if err != nil {
			return nil, err
		}
		return ConstString{Value: string(b)}, nil

	case rawFieldRef:
		path, name, sig, err := refParts(raw, e.ClassIndex, e.NameAndTypeIndex)
		if err != nil {
			return nil, err
		}
		return ConstField{Path: path, Name: name, Sig: sig}, nil

	case rawMethodRef:
		path, name, sig, err := methodRefParts(raw, e.ClassIndex, e.NameAndTypeIndex)
		if err != nil {
			return nil, err
		}
		return ConstMethod{Path: path, Name: name, Sig: sig}, nil

	case rawInterfaceMethodRef:
		path, name, sig, err := methodRefParts(raw, e.ClassIndex, e.NameAndTypeIndex)
		if err != nil {
			return nil, err
		}
		return ConstInterfaceMethod{Path: path, Name: name, Sig: sig}, nil

	case rawNameAndTypeRef:
		name, sig, err := nameAndTypeAt(raw, i)
		if err != nil {
			return nil, err
		}
		return ConstNameAndType{Name: name, Sig: sig}, nil

	case rawMethodHandle:
		ref, err := expandMethodHandleRef(raw, e.RefIndex)
		if err != nil {
			return nil, err
		}
		return ConstMethodHandle{Kind: e.Kind, Ref: ref}, nil

	case rawMethodTypeRef:
		b, err := utf8At(raw, e.DescriptorIndex)
		if err != nil {
			return nil, err
		}
		sig, err := parseMethodDescriptor(string(b))
		if err != nil {
			return nil, err
		}
		return ConstMethodType{Sig: sig}, nil

	case rawInvokeDynamic:
		name, sig, err := nameAndTypeAt(raw, int(e.NameAndTypeIndex))
		if err != nil {
			return nil, err
		}
		return ConstInvokeDynamic{BootstrapIndex: e.BootstrapIndex, Name: name, Sig: sig}, nil

	default:
		return nil, newErr(KindUnexpectedConstantKind, nil, "%d", i)
	}
}

// expandMethodHandleRef expands the single referenced entry of a
// CONSTANT_MethodHandle. Per spec.md §4.4 the reference must itself be
// a field/method/interface-method ref, which rules out any further
// chain of MethodHandles and therefore any cycle.
func expandMethodHandleRef(raw []RawConst, idx uint16) (Const, error) {
	if err := checkIndex(idx, len(raw)); err != nil {
		return nil, err
	}
	switch raw[idx].(type) {
	case rawFieldRef, rawMethodRef, rawInterfaceMethodRef:
		return expandEntry(raw, int(idx))
	default:
		return nil, newErr(KindUnexpectedConstantKind, nil, "%d", idx)
	}
}

func utf8At(raw []RawConst, idx uint16) ([]byte, error) {
	if err := checkIndex(idx, len(raw)); err != nil {
		return nil, err
	}
	u, ok := raw[idx].(rawUtf8)
	if !ok {
		return nil, newErr(KindUnexpectedConstantKind, nil, "%d", idx)
	}
	return u.Bytes, nil
}

func classPathAt(raw []RawConst, nameIndex uint16) (Path, error) {
	b, err := utf8At(raw, nameIndex)
	if err != nil {
		return Path{}, err
	}
	return splitPath(string(b)), nil
}

func splitPath(s string) Path {
	segs := strings.Split(s, "/")
	return Path{Package: segs[:len(segs)-1], Name: segs[len(segs)-1]}
}

func resolveClassRefAt(raw []RawConst, classIndex uint16) (Path, error) {
	if err := checkIndex(classIndex, len(raw)); err != nil {
		return Path{}, err
	}
	c, ok := raw[classIndex].(rawClassRef)
	if !ok {
		return Path{}, newErr(KindUnexpectedConstantKind, nil, "%d", classIndex)
	}
	return classPathAt(raw, c.NameIndex)
}

func nameAndTypeAt(raw []RawConst, idx int) (string, Signature, error) {
	if err := checkIndex(uint16(idx), len(raw)); err != nil {
		return "", nil, err
	}
	nt, ok := raw[idx].(rawNameAndTypeRef)
	if !ok {
		return "", nil, newErr(KindUnexpectedConstantKind, nil, "%d", idx)
	}
	nameBytes, err := utf8At(raw, nt.NameIndex)
	if err != nil {
		return "", nil, err
	}
	descBytes, err := utf8At(raw, nt.DescriptorIndex)
	if err != nil {
		return "", nil, err
	}
	sig, err := ParseSignature(string(descBytes))
	if err != nil {
		return "", nil, err
	}
	return string(nameBytes), sig, nil
}

// refParts resolves a Fieldref's (class_index, name_and_type_index)
// pair into a path, member name, and field signature.
func refParts(raw []RawConst, classIndex, ntIndex uint16) (Path, string, Signature, error) {
	path, err := resolveClassRefAt(raw, classIndex)
	if err != nil {
		return Path{}, "", nil, err
	}
	name, sig, err := nameAndTypeAt(raw, int(ntIndex))
	if err != nil {
		return Path{}, "", nil, err
	}
	return path, name, sig, nil
}

// methodRefParts is refParts plus the spec.md §4.4 requirement that a
// Methodref/InterfaceMethodref's NameAndType descriptor parses as a
// method signature.
func methodRefParts(raw []RawConst, classIndex, ntIndex uint16) (Path, string, Signature, error) {
	path, name, sig, err := refParts(raw, classIndex, ntIndex)
	if err != nil {
		return Path{}, "", nil, err
	}
	if _, ok := sig.(MethodSig); !ok {
		return Path{}, "", nil, newErr(KindUnexpectedConstantKind, nil, "name_and_type for %s is not a method descriptor", name)
	}
	return path, name, sig, nil
}

// parseMethodDescriptor parses a bare method descriptor (no formal
// type parameters or throws clause, unlike the full generic Signature
// attribute grammar) and fails if it is not a method signature.
func parseMethodDescriptor(s string) (Signature, error) {
	sig, err := ParseSignature(s)
	if err != nil {
		return nil, err
	}
	if _, ok := sig.(MethodSig); !ok {
		return nil, newErr(KindInvalidSignature, nil, "%q: not a method descriptor", s)
	}
	return sig, nil
}
