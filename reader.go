package classfile

import (
	"encoding/binary"
	"io"
	"math"
)

// reader is a cursor over a big-endian byte stream, mirroring the
// offset-tracking style of the teacher's wasm parser but fixed-width:
// the class file format has no LEB128, every field is u1/u2/u4/u8.
type reader struct {
	r   io.Reader
	cur int
}

func newReader(r io.Reader) *reader {
	return &reader{r: r}
}

func (r *reader) readN(thing string, n int) ([]byte, error) {
	at := r.cur
	buf := make([]byte, n)
	nRead, err := io.ReadFull(r.r, buf)
	if err != nil {
		return nil, newErr(KindTruncated, err, "%s at offset %d", thing, at)
	}
	r.cur += nRead
	return buf, nil
}

func (r *reader) u8(thing string) (uint8, error) {
	b, err := r.readN(thing, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) u16(thing string) (uint16, error) {
	b, err := r.readN(thing, 2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *reader) u32(thing string) (uint32, error) {
	b, err := r.readN(thing, 4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *reader) i32(thing string) (int32, error) {
	v, err := r.u32(thing)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

func (r *reader) i64(thing string) (int64, error) {
	b, err := r.readN(thing, 8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

func (r *reader) f32(thing string) (float32, error) {
	v, err := r.u32(thing)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (r *reader) f64(thing string) (float64, error) {
	b, err := r.readN(thing, 8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
}

func (r *reader) bytes(thing string, n int) ([]byte, error) {
	return r.readN(thing, n)
}

func (r *reader) offset() int { return r.cur }
