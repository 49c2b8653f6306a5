package isa

// Buffer is a borrowed byte slice with a mutable cursor. Reads past the end
// panic (an index-out-of-range slice access) rather than returning an
// error: an out-of-bounds decode is a programming error, not a runtime
// condition the decoder recovers from (§7).
type Buffer struct {
	bytes  []byte
	cursor int
}

// NewBuffer positions a Buffer at the given byte offset into program.
func NewBuffer(program []byte, at int) *Buffer {
	return &Buffer{bytes: program, cursor: at}
}

// Cursor returns the current read position.
func (b *Buffer) Cursor() int { return b.cursor }

// IsEmpty reports whether the cursor has reached the end of the buffer.
func (b *Buffer) IsEmpty() bool { return b.cursor >= len(b.bytes) }

// ReadU8 consumes one byte.
func (b *Buffer) ReadU8() byte {
	v := b.bytes[b.cursor]
	b.cursor++
	return v
}

// ReadU16 consumes a little-endian 16-bit value.
func (b *Buffer) ReadU16() uint16 {
	lo := uint16(b.ReadU8())
	hi := uint16(b.ReadU8())
	return lo | hi<<8
}
