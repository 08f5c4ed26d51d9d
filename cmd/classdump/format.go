package main

import (
	"fmt"
	"strings"

	"github.com/javaclassfile/classfile"
)

// formatPath renders a Path the way javap does: dotted package plus
// simple name.
func formatPath(p classfile.Path) string {
	if len(p.Package) == 0 {
		return p.Name
	}
	return strings.Join(p.Package, ".") + "." + p.Name
}

// formatSignature is a read-only pretty-printer over the decoded
// Signature tree, used only by this CLI's summary output. The core
// decoder never formats signatures back to text.
func formatSignature(s classfile.Signature) string {
	switch t := s.(type) {
	case classfile.PrimitiveSig:
		switch t.Kind {
		case classfile.Byte:
			return "byte"
		case classfile.Char:
			return "char"
		case classfile.Dbl:
			return "double"
		case classfile.Flt:
			return "float"
		case classfile.Int:
			return "int"
		case classfile.Long:
			return "long"
		case classfile.Shrt:
			return "short"
		case classfile.Bool:
			return "boolean"
		default:
			return "?"
		}
	case classfile.ObjectSig:
		return formatPath(t.Path) + formatTypeArgs(t.Args)
	case classfile.ObjectInnerSig:
		var b strings.Builder
		if len(t.Package) > 0 {
			b.WriteString(strings.Join(t.Package, "."))
			b.WriteString(".")
		}
		for i, seg := range t.Chain {
			if i > 0 {
				b.WriteString(".")
			}
			b.WriteString(seg.Name)
			b.WriteString(formatTypeArgs(seg.Args))
		}
		return b.String()
	case classfile.ArraySig:
		if t.Size != nil {
			return fmt.Sprintf("%s[%d]", formatSignature(t.Elem), *t.Size)
		}
		return formatSignature(t.Elem) + "[]"
	case classfile.MethodSig:
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = formatSignature(a)
		}
		ret := "void"
		if t.Ret != nil {
			ret = formatSignature(t.Ret)
		}
		return fmt.Sprintf("(%s) -> %s", strings.Join(args, ", "), ret)
	case classfile.TypeVariableSig:
		return t.Name
	default:
		return "?"
	}
}

func formatTypeArgs(args []classfile.TypeArg) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, len(args))
	for i, a := range args {
		switch {
		case a.Any:
			parts[i] = "?"
		case a.Wildcard == classfile.WildcardExtends:
			parts[i] = "? extends " + formatSignature(a.Type)
		case a.Wildcard == classfile.WildcardSuper:
			parts[i] = "? super " + formatSignature(a.Type)
		default:
			parts[i] = formatSignature(a.Type)
		}
	}
	return "<" + strings.Join(parts, ", ") + ">"
}
