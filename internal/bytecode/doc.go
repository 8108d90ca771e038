// Package bytecode defines the compiled form of Hộp programs and the values
// the VM manipulates.
//
// A Function owns one Chunk: the instruction bytes, a parallel line/column
// table (one entry per byte) and a constant pool addressed by a single byte.
// Instructions are one opcode byte followed by zero, one or two operand
// bytes; two-byte operands are big-endian jump offsets. Every opcode has a
// fixed net stack effect (see StackEffect), which the compiler relies on to
// keep statements balanced.
//
// Values are a tagged struct. Boxes are the only mutable values and are
// shared by pointer.
package bytecode
