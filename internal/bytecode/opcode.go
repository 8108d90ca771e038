package bytecode

import "fmt"

// Opcode is the first byte of every instruction.
type Opcode byte

const (
	OpCall Opcode = iota
	OpReturn
	OpPop
	OpNeg
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpNot
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpPrint
	OpNil
	OpTrue
	OpFalse
	OpConst
	OpDef
	OpGetGlobal
	OpSetGlobal
	OpGetLocal
	OpSetLocal
	OpBox
	OpGet
	OpSet
	OpGetIndex
	OpSetIndex
	OpOf
	OpJump
	OpJumpIfFalse
	OpLoop
	OpExit

	opCount
)

// OpInfo describes the encoding and stack behaviour of an opcode.
type OpInfo struct {
	Name     string
	Operands int // operand bytes after the opcode: 0, 1 or 2
	Pops     int
	Pushes   int
}

var opTable = [opCount]OpInfo{
	OpCall:        {"CALL", 1, 1, 1}, // +argc pops, see StackEffect
	OpReturn:      {"RET", 0, 1, 0},
	OpPop:         {"POP", 0, 1, 0},
	OpNeg:         {"NEG", 0, 1, 1},
	OpAdd:         {"ADD", 0, 2, 1},
	OpSub:         {"SUB", 0, 2, 1},
	OpMul:         {"MUL", 0, 2, 1},
	OpDiv:         {"DIV", 0, 2, 1},
	OpNot:         {"NOT", 0, 1, 1},
	OpLt:          {"LT", 0, 2, 1},
	OpLe:          {"LE", 0, 2, 1},
	OpGt:          {"GT", 0, 2, 1},
	OpGe:          {"GE", 0, 2, 1},
	OpEq:          {"EQ", 0, 2, 1},
	OpPrint:       {"PRINT", 0, 1, 0},
	OpNil:         {"NIL", 0, 0, 1},
	OpTrue:        {"TRUE", 0, 0, 1},
	OpFalse:       {"FALSE", 0, 0, 1},
	OpConst:       {"CONST", 1, 0, 1},
	OpDef:         {"DEF", 1, 1, 0},
	OpGetGlobal:   {"GLD", 1, 0, 1},
	OpSetGlobal:   {"GST", 1, 1, 1},
	OpGetLocal:    {"LD", 1, 0, 1},
	OpSetLocal:    {"ST", 1, 1, 1},
	OpBox:         {"BOX", 1, 0, 1}, // +count pops, see StackEffect
	OpGet:         {"GET", 1, 1, 1},
	OpSet:         {"SET", 1, 2, 1},
	OpGetIndex:    {"GETI", 0, 2, 1},
	OpSetIndex:    {"SETI", 0, 3, 1},
	OpOf:          {"OF", 0, 2, 1},
	OpJump:        {"JMP", 2, 0, 0},
	OpJumpIfFalse: {"JMPF", 2, 0, 0},
	OpLoop:        {"LOOP", 2, 0, 0},
	OpExit:        {"EXIT", 0, 0, 0},
}

// Info returns the table entry for op. ok is false for unknown bytes.
func (op Opcode) Info() (OpInfo, bool) {
	if op >= opCount {
		return OpInfo{}, false
	}
	return opTable[op], true
}

func (op Opcode) String() string {
	if op >= opCount {
		return fmt.Sprintf("OP_%d", byte(op))
	}
	return opTable[op].Name
}

// Width is the total encoded size of the instruction in bytes.
func (op Opcode) Width() int {
	if op >= opCount {
		return 1
	}
	return 1 + opTable[op].Operands
}

// StackEffect returns the net change in stack height caused by op, given its
// one-byte operand (ignored for opcodes whose effect does not depend on it).
func StackEffect(op Opcode, operand int) int {
	info, ok := op.Info()
	if !ok {
		return 0
	}
	switch op {
	case OpCall, OpBox:
		return info.Pushes - info.Pops - operand
	}
	return info.Pushes - info.Pops
}
