package classfile

// opcodeNames is a name-only mnemonic table, used solely by
// cmd/classdump's --attrs pretty-printer to label the bytes inside a
// preserved Code attribute for human inspection. The decoder itself
// never consults this table: per spec.md §1's non-goals, bytecode
// disassembly is out of scope, and Code stays an opaque blob
// (UnknownAttribute{Name: "Code", ...}).
var opcodeNames = map[byte]string{
	0x00: "nop",
	0x01: "aconst_null",
	0x02: "iconst_m1",
	0x03: "iconst_0",
	0x04: "iconst_1",
	0x05: "iconst_2",
	0x06: "iconst_3",
	0x07: "iconst_4",
	0x08: "iconst_5",
	0x09: "lconst_0",
	0x0a: "lconst_1",
	0x0b: "fconst_0",
	0x0c: "fconst_1",
	0x0d: "fconst_2",
	0x0e: "dconst_0",
	0x0f: "dconst_1",
	0x10: "bipush",
	0x11: "sipush",
	0x12: "ldc",
	0x13: "ldc_w",
	0x14: "ldc2_w",
	0x15: "iload",
	0x16: "lload",
	0x17: "fload",
	0x18: "dload",
	0x19: "aload",
	0x2a: "aload_0",
	0x2b: "aload_1",
	0x2c: "aload_2",
	0x2d: "aload_3",
	0x3b: "istore_0",
	0x3c: "istore_1",
	0x3d: "istore_2",
	0x3e: "istore_3",
	0x4b: "astore_0",
	0x4c: "astore_1",
	0x4d: "astore_2",
	0x4e: "astore_3",
	0x57: "pop",
	0x58: "pop2",
	0x59: "dup",
	0x5a: "dup_x1",
	0x5b: "dup_x2",
	0x5f: "swap",
	0x60: "iadd",
	0x64: "isub",
	0x68: "imul",
	0x6c: "idiv",
	0x84: "iinc",
	0x99: "ifeq",
	0x9a: "ifne",
	0xa7: "goto",
	0xac: "ireturn",
	0xad: "lreturn",
	0xae: "freturn",
	0xaf: "dreturn",
	0xb0: "areturn",
	0xb1: "return",
	0xb2: "getstatic",
	0xb3: "putstatic",
	0xb4: "getfield",
	0xb5: "putfield",
	0xb6: "invokevirtual",
	0xb7: "invokespecial",
	0xb8: "invokestatic",
	0xb9: "invokeinterface",
	0xba: "invokedynamic",
	0xbb: "new",
	0xbc: "newarray",
	0xbd: "anewarray",
	0xbe: "arraylength",
	0xbf: "athrow",
	0xc0: "checkcast",
	0xc1: "instanceof",
	0xc2: "monitorenter",
	0xc3: "monitorexit",
}

// OpcodeName returns the mnemonic for a single opcode byte, or
// "unknown" if it is not in the table. It performs no operand
// decoding or control-flow walking.
func OpcodeName(b byte) string {
	if name, ok := opcodeNames[b]; ok {
		return name
	}
	return "unknown"
}
