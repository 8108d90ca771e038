package vm

import (
	"fmt"

	"hop/internal/bytecode"
)

// execute runs the dispatch loop until the outermost frame returns, EXIT
// runs or an error occurs.
func (vm *VM) execute() *RuntimeError {
	frame := vm.topFrame()
	for {
		// no instruction grows the stack by more than one slot
		if vm.sp >= len(vm.stack) {
			return vm.eb.stackOverflow()
		}
		frame.IP = frame.PC
		if vm.Trace != nil {
			vm.Trace.TraceInstr(vm, frame)
		}

		op := bytecode.Opcode(frame.readByte())
		switch op {
		case bytecode.OpConst:
			vm.push(frame.readConstant())
		case bytecode.OpNil:
			vm.push(bytecode.Nil)
		case bytecode.OpTrue:
			vm.push(bytecode.True)
		case bytecode.OpFalse:
			vm.push(bytecode.False)
		case bytecode.OpPop:
			vm.pop()

		case bytecode.OpDef:
			name := frame.readConstant().Str
			vm.globals[name] = vm.pop()
		case bytecode.OpGetGlobal:
			// an unset global reads as nil
			vm.push(vm.globals[frame.readConstant().Str])
		case bytecode.OpSetGlobal:
			vm.globals[frame.readConstant().Str] = vm.peek(0)
		case bytecode.OpGetLocal:
			vm.push(vm.stack[frame.Base+int(frame.readByte())])
		case bytecode.OpSetLocal:
			vm.stack[frame.Base+int(frame.readByte())] = vm.peek(0)

		case bytecode.OpNeg:
			v := vm.peek(0)
			if v.Kind != bytecode.VKNumber {
				return vm.eb.unaryOp("lấy âm", v)
			}
			vm.stack[vm.sp-1] = bytecode.NumberValue(-v.Num)
		case bytecode.OpNot:
			vm.stack[vm.sp-1] = bytecode.BoolValue(!vm.peek(0).Truthy())
		case bytecode.OpAdd:
			if err := vm.add(); err != nil {
				return err
			}
		case bytecode.OpSub, bytecode.OpMul, bytecode.OpDiv,
			bytecode.OpLt, bytecode.OpLe, bytecode.OpGt, bytecode.OpGe:
			if err := vm.numeric(op); err != nil {
				return err
			}
		case bytecode.OpEq:
			b := vm.pop()
			a := vm.pop()
			vm.push(bytecode.BoolValue(bytecode.Equal(a, b)))

		case bytecode.OpPrint:
			fmt.Fprintln(vm.out, vm.pop().String())

		case bytecode.OpJump:
			offset := frame.readUint16()
			frame.PC += offset
		case bytecode.OpJumpIfFalse:
			offset := frame.readUint16()
			if !vm.peek(0).Truthy() {
				frame.PC += offset
			}
		case bytecode.OpLoop:
			offset := frame.readUint16()
			frame.PC -= offset

		case bytecode.OpCall:
			argc := int(frame.readByte())
			if err := vm.callValue(vm.peek(argc), argc); err != nil {
				return err
			}
			frame = vm.topFrame()
		case bytecode.OpReturn:
			result := vm.pop()
			vm.frames = vm.frames[:len(vm.frames)-1]
			if len(vm.frames) == 0 {
				// drop the script function sitting in slot 0
				vm.sp = 0
				return nil
			}
			clear(vm.stack[frame.Base:vm.sp])
			vm.sp = frame.Base
			vm.push(result)
			frame = vm.topFrame()

		case bytecode.OpBox:
			n := int(frame.readByte())
			items := make([]bytecode.Value, n)
			copy(items, vm.stack[vm.sp-n:vm.sp])
			vm.sp -= n
			vm.push(bytecode.BoxValue(bytecode.NewBox(items)))
		case bytecode.OpGet:
			if err := vm.getField(frame.readConstant().Str); err != nil {
				return err
			}
		case bytecode.OpSet:
			if err := vm.setField(frame.readConstant().Str); err != nil {
				return err
			}
		case bytecode.OpGetIndex:
			if err := vm.getIndex(1, 0); err != nil {
				return err
			}
		case bytecode.OpSetIndex:
			if err := vm.setIndex(); err != nil {
				return err
			}
		case bytecode.OpOf:
			if err := vm.getIndex(0, 1); err != nil {
				return err
			}

		case bytecode.OpExit:
			vm.resetStack()
			return nil

		default:
			return vm.eb.badOpcode(byte(op))
		}
	}
}

func (vm *VM) topFrame() *Frame {
	return &vm.frames[len(vm.frames)-1]
}

// add sums two numbers or concatenates when either side is a string.
func (vm *VM) add() *RuntimeError {
	a, b := vm.peek(1), vm.peek(0)
	var result bytecode.Value
	switch {
	case a.Kind == bytecode.VKNumber && b.Kind == bytecode.VKNumber:
		result = bytecode.NumberValue(a.Num + b.Num)
	case a.Kind == bytecode.VKString || b.Kind == bytecode.VKString:
		result = bytecode.StringValue(a.String() + b.String())
	default:
		return vm.eb.add(a, b)
	}
	vm.sp -= 2
	vm.push(result)
	return nil
}

var numericOpNames = map[bytecode.Opcode]string{
	bytecode.OpSub: "trừ",
	bytecode.OpMul: "nhân",
	bytecode.OpDiv: "chia",
	bytecode.OpLt:  "so sánh bé hơn",
	bytecode.OpLe:  "so sánh bé hơn/bằng",
	bytecode.OpGt:  "so sánh lớn hơn",
	bytecode.OpGe:  "so sánh lớn hơn/bằng",
}

func (vm *VM) numeric(op bytecode.Opcode) *RuntimeError {
	a, b := vm.peek(1), vm.peek(0)
	if a.Kind != bytecode.VKNumber || b.Kind != bytecode.VKNumber {
		return vm.eb.binaryOp(numericOpNames[op], a, b)
	}
	x, y := a.Num, b.Num
	var result bytecode.Value
	switch op {
	case bytecode.OpSub:
		result = bytecode.NumberValue(x - y)
	case bytecode.OpMul:
		result = bytecode.NumberValue(x * y)
	case bytecode.OpDiv:
		result = bytecode.NumberValue(x / y)
	case bytecode.OpLt:
		result = bytecode.BoolValue(x < y)
	case bytecode.OpLe:
		result = bytecode.BoolValue(x <= y)
	case bytecode.OpGt:
		result = bytecode.BoolValue(x > y)
	case bytecode.OpGe:
		result = bytecode.BoolValue(x >= y)
	}
	vm.sp -= 2
	vm.push(result)
	return nil
}
