package bytecode

import (
	"errors"
)

// MaxConstants is the size of the constant pool addressable by one byte.
const MaxConstants = 256

// ErrTooManyConstants is returned by AddConstant when the pool is full.
var ErrTooManyConstants = errors.New("too many constants in one chunk")

// Chunk is the compiled body of one Function.
type Chunk struct {
	Code      []byte
	Lines     []uint32 // parallel to Code
	Cols      []uint32 // parallel to Code
	Constants []Value
}

// Write appends one byte with its source position.
func (c *Chunk) Write(b byte, line, col uint32) {
	c.Code = append(c.Code, b)
	c.Lines = append(c.Lines, line)
	c.Cols = append(c.Cols, col)
}

// WriteOp appends an opcode.
func (c *Chunk) WriteOp(op Opcode, line, col uint32) {
	c.Write(byte(op), line, col)
}

// Len returns the number of bytes written.
func (c *Chunk) Len() int { return len(c.Code) }

// AddConstant appends v to the pool and returns its index. Strings and
// numbers already present are reused.
func (c *Chunk) AddConstant(v Value) (byte, error) {
	if v.Kind == VKString || v.Kind == VKNumber {
		for i, existing := range c.Constants {
			if existing.Kind == v.Kind && existing.Str == v.Str && sameNumberBits(existing.Num, v.Num) {
				return byte(i), nil
			}
		}
	}
	if len(c.Constants) >= MaxConstants {
		return 0, ErrTooManyConstants
	}
	c.Constants = append(c.Constants, v)
	return byte(len(c.Constants) - 1), nil
}

// Position returns the source position recorded for the byte at offset.
func (c *Chunk) Position(offset int) (line, col uint32) {
	if offset < 0 || offset >= len(c.Lines) {
		return 0, 0
	}
	return c.Lines[offset], c.Cols[offset]
}

// ReadUint16 decodes the big-endian operand starting at offset.
func (c *Chunk) ReadUint16(offset int) uint16 {
	return uint16(c.Code[offset])<<8 | uint16(c.Code[offset+1])
}
