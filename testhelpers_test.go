package classfile

import (
	"bytes"
	"encoding/binary"
	"math"
)

// cfBuilder assembles raw big-endian class-file bytes for tests. It
// deliberately duplicates none of the production reader/writer logic
// so a bug in one side isn't masked by the same bug in the other.
type cfBuilder struct {
	buf bytes.Buffer
}

func (b *cfBuilder) u8(v uint8) *cfBuilder {
	b.buf.WriteByte(v)
	return b
}

func (b *cfBuilder) u16(v uint16) *cfBuilder {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	b.buf.Write(tmp[:])
	return b
}

func (b *cfBuilder) u32(v uint32) *cfBuilder {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	b.buf.Write(tmp[:])
	return b
}

func (b *cfBuilder) i64(v int64) *cfBuilder {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], uint64(v))
	b.buf.Write(tmp[:])
	return b
}

func (b *cfBuilder) f64bits(v float64) *cfBuilder {
	return b.i64(int64(math.Float64bits(v)))
}

func (b *cfBuilder) f32bits(v float32) *cfBuilder {
	return b.u32(math.Float32bits(v))
}

func (b *cfBuilder) bytes(bs []byte) *cfBuilder {
	b.buf.Write(bs)
	return b
}

// utf8 writes a CONSTANT_Utf8 entry's tag + length-prefixed bytes.
func (b *cfBuilder) utf8(s string) *cfBuilder {
	return b.u8(tagUtf8).u16(uint16(len(s))).bytes([]byte(s))
}

func (b *cfBuilder) classRef(nameIdx uint16) *cfBuilder {
	return b.u8(tagClass).u16(nameIdx)
}

func (b *cfBuilder) nameAndType(nameIdx, descIdx uint16) *cfBuilder {
	return b.u8(tagNameAndType).u16(nameIdx).u16(descIdx)
}

func (b *cfBuilder) fieldRef(classIdx, ntIdx uint16) *cfBuilder {
	return b.u8(tagFieldref).u16(classIdx).u16(ntIdx)
}

func (b *cfBuilder) methodRef(classIdx, ntIdx uint16) *cfBuilder {
	return b.u8(tagMethodref).u16(classIdx).u16(ntIdx)
}

func (b *cfBuilder) bytesVal() []byte { return b.buf.Bytes() }

func (b *cfBuilder) reader() *reader { return newReader(bytes.NewReader(b.buf.Bytes())) }
