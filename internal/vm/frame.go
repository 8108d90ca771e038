package vm

import "hop/internal/bytecode"

// Frame is one activation of a compiled function.
type Frame struct {
	Func *bytecode.Function
	PC   int // next byte to read
	IP   int // start of the instruction being executed
	Base int // stack index of slot 0
}

func (f *Frame) readByte() byte {
	b := f.Func.Chunk.Code[f.PC]
	f.PC++
	return b
}

func (f *Frame) readUint16() int {
	v := f.Func.Chunk.ReadUint16(f.PC)
	f.PC += 2
	return int(v)
}

func (f *Frame) readConstant() bytecode.Value {
	return f.Func.Chunk.Constants[f.readByte()]
}

// Position is the source position of the instruction being executed.
func (f *Frame) Position() (line, col uint32) {
	return f.Func.Chunk.Position(f.IP)
}
