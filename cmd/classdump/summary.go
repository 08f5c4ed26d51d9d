package main

import (
	"fmt"
	"os"

	"github.com/javaclassfile/classfile"
)

// classSummary is a read-only JSON projection of a decoded Class,
// modeled on how real classfile dump tools lay out their top-level
// output (version, this/super, flags, member counts) rather than a
// full re-serialization of every attribute.
type classSummary struct {
	Version    string          `json:"version"`
	Class      string          `json:"class"`
	Super      string          `json:"super"`
	Interfaces []string        `json:"interfaces"`
	Flags      []string        `json:"flags"`
	Fields     []memberSummary `json:"fields"`
	Methods    []memberSummary `json:"methods"`
	InnerTypes []innerSummary  `json:"inner_types,omitempty"`
}

type memberSummary struct {
	Name      string   `json:"name"`
	Signature string   `json:"signature"`
	Flags     []string `json:"flags"`
}

type innerSummary struct {
	Inner     string `json:"inner"`
	Outer     string `json:"outer,omitempty"`
	InnerName string `json:"inner_name,omitempty"`
}

var classFlagNames = []struct {
	flag classfile.AccessFlag
	name string
}{
	{classfile.FlagPublic, "public"},
	{classfile.FlagFinal, "final"},
	{classfile.FlagSuper, "super"},
	{classfile.FlagInterface, "interface"},
	{classfile.FlagAbstract, "abstract"},
	{classfile.FlagSynthetic, "synthetic"},
	{classfile.FlagAnnotation, "annotation"},
	{classfile.FlagEnum, "enum"},
}

var memberFlagNames = []struct {
	flag classfile.AccessFlag
	name string
}{
	{classfile.FlagPublic, "public"},
	{classfile.FlagPrivate, "private"},
	{classfile.FlagProtected, "protected"},
	{classfile.FlagStatic, "static"},
	{classfile.FlagFinal, "final"},
	{classfile.FlagSynchronized, "synchronized"},
	{classfile.FlagNative, "native"},
	{classfile.FlagAbstract, "abstract"},
	{classfile.FlagSynthetic, "synthetic"},
}

func flagNames(flags classfile.AccessFlags, table []struct {
	flag classfile.AccessFlag
	name string
}) []string {
	var names []string
	for _, f := range table {
		if flags.Has(f.flag) {
			names = append(names, f.name)
		}
	}
	return names
}

func summarizeMember(m classfile.Member) memberSummary {
	return memberSummary{
		Name:      m.Name,
		Signature: formatSignature(m.Signature),
		Flags:     flagNames(m.Flags, memberFlagNames),
	}
}

func summarize(cls *classfile.Class) classSummary {
	s := classSummary{
		Version: fmt.Sprintf("%d.%d", cls.MajorVersion, cls.MinorVersion),
		Class:   formatPath(cls.Path),
		Super:   formatSignature(cls.Super),
		Flags:   flagNames(cls.Flags, classFlagNames),
	}
	for _, iface := range cls.Interfaces {
		s.Interfaces = append(s.Interfaces, formatSignature(iface))
	}
	for _, f := range cls.Fields {
		s.Fields = append(s.Fields, summarizeMember(f))
	}
	for _, m := range cls.Methods {
		s.Methods = append(s.Methods, summarizeMember(m))
	}
	for _, it := range cls.InnerTypes {
		is := innerSummary{Inner: formatPath(it.Inner)}
		if it.Outer != nil {
			is.Outer = formatPath(*it.Outer)
		}
		if it.InnerName != nil {
			is.InnerName = *it.InnerName
		}
		s.InnerTypes = append(s.InnerTypes, is)
	}
	return s
}

func printSummary(cls *classfile.Class, showAttrs bool) {
	s := summarize(cls)
	fmt.Printf("class %s\n", s.Class)
	fmt.Printf("  version: %s\n", s.Version)
	fmt.Printf("  super: %s\n", s.Super)
	if len(s.Flags) > 0 {
		fmt.Printf("  flags: %v\n", s.Flags)
	}
	for _, iface := range s.Interfaces {
		fmt.Printf("  implements %s\n", iface)
	}
	for _, f := range s.Fields {
		fmt.Printf("  field %s %s %v\n", f.Signature, f.Name, f.Flags)
	}
	for _, m := range s.Methods {
		fmt.Printf("  method %s %s %v\n", m.Name, m.Signature, m.Flags)
	}
	for _, it := range s.InnerTypes {
		fmt.Printf("  inner class %s (outer %s, name %s)\n", it.Inner, it.Outer, it.InnerName)
	}

	if showAttrs {
		printOpaqueAttrs(cls)
	}
}

// printOpaqueAttrs lists each method's preserved Code blob as raw
// opcode mnemonics, the decoder's one concession to human inspection
// without performing any disassembly of control flow.
func printOpaqueAttrs(cls *classfile.Class) {
	for _, m := range cls.Methods {
		if m.Code == nil {
			continue
		}
		unk, ok := (*m.Code).(classfile.UnknownAttribute)
		if !ok {
			continue
		}
		fmt.Fprintf(os.Stdout, "  code for %s (%d bytes):", m.Name, len(unk.Bytes))
		for _, b := range unk.Bytes {
			fmt.Fprintf(os.Stdout, " %s", classfile.OpcodeName(b))
		}
		fmt.Fprintln(os.Stdout)
	}
}
