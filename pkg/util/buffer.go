package util

import (
	"encoding/binary"
)

// Buffer 用于方便自动扩容的内存写入，以及大端整数读取
type Buffer []byte

func (b *Buffer) ReadN(n int) Buffer {
	l := b.Len()
	if n > l {
		n = l
	}
	r := (*b)[:n]
	*b = (*b)[n:l]
	return r
}

func (b *Buffer) ReadUint64() uint64 {
	return binary.BigEndian.Uint64(b.ReadN(8))
}
func (b *Buffer) ReadUint32() uint32 {
	return binary.BigEndian.Uint32(b.ReadN(4))
}
func (b *Buffer) ReadUint16() uint16 {
	return binary.BigEndian.Uint16(b.ReadN(2))
}
func (b *Buffer) WriteUint64(v uint64) {
	binary.BigEndian.PutUint64(b.Malloc(8), v)
}
func (b *Buffer) WriteUint32(v uint32) {
	binary.BigEndian.PutUint32(b.Malloc(4), v)
}
func (b *Buffer) WriteUint16(v uint16) {
	binary.BigEndian.PutUint16(b.Malloc(2), v)
}
func (b *Buffer) WriteByte(v byte) error {
	b.Malloc(1)[0] = v
	return nil
}
func (b *Buffer) WriteString(a string) (int, error) {
	*b = append(*b, a...)
	return len(a), nil
}
func (b *Buffer) Write(a []byte) (n int, err error) {
	l := b.Len()
	newL := l + len(a)
	if newL > b.Cap() {
		*b = append(*b, a...)
	} else {
		*b = b.SubBuf(0, newL)
		copy((*b)[l:], a)
	}
	return len(a), nil
}

func (b Buffer) Len() int {
	return len(b)
}

func (b Buffer) Cap() int {
	return cap(b)
}
func (b Buffer) SubBuf(start int, length int) Buffer {
	return b[start : start+length]
}

// Malloc 扩大原来的buffer的长度，返回新增的buffer
func (b *Buffer) Malloc(count int) Buffer {
	l := b.Len()
	newL := l + count
	if newL > b.Cap() {
		n := make(Buffer, newL, newL*2)
		copy(n, *b)
		*b = n
	} else {
		*b = b.SubBuf(0, newL)
	}
	return b.SubBuf(l, count)
}
