package vm

import (
	"errors"

	"hop/internal/bytecode"
)

// callValue invokes callee, which sits below its argc arguments.
func (vm *VM) callValue(callee bytecode.Value, argc int) *RuntimeError {
	switch callee.Kind {
	case bytecode.VKFunc:
		return vm.call(callee.Fn, argc)
	case bytecode.VKNative:
		return vm.callNative(callee.Native, argc)
	default:
		return vm.eb.notCallable(callee)
	}
}

func (vm *VM) call(fn *bytecode.Function, argc int) *RuntimeError {
	if argc != fn.Arity {
		return vm.eb.arity(fn.Arity, argc)
	}
	if len(vm.frames) == cap(vm.frames) {
		return vm.eb.stackOverflow()
	}
	vm.frames = append(vm.frames, Frame{
		Func: fn,
		Base: vm.sp - argc - 1,
	})
	return nil
}

// callNative runs a host function in place; it does not get a frame.
func (vm *VM) callNative(n *bytecode.Native, argc int) *RuntimeError {
	if n.Arity >= 0 && argc != n.Arity {
		return vm.eb.arity(n.Arity, argc)
	}
	args := make([]bytecode.Value, argc)
	copy(args, vm.stack[vm.sp-argc:vm.sp])
	result, err := n.Fn(args)
	if err != nil {
		var rtErr *RuntimeError
		if errors.As(err, &rtErr) {
			return rtErr
		}
		return vm.eb.native(n.Name, err)
	}
	vm.sp -= argc + 1
	vm.push(result)
	return nil
}
