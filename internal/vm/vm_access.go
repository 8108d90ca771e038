package vm

import (
	"errors"

	"hop/internal/bytecode"
)

// getField replaces the box on top of the stack with its field.
func (vm *VM) getField(name string) *RuntimeError {
	target := vm.peek(0)
	if target.Kind != bytecode.VKBox {
		return vm.eb.notABox(target)
	}
	v, ok := target.Box.Get(name)
	if !ok {
		return vm.eb.undefinedProperty(name)
	}
	vm.stack[vm.sp-1] = v
	return nil
}

// setField stores the top value into the box below it and leaves the value.
func (vm *VM) setField(name string) *RuntimeError {
	target, value := vm.peek(1), vm.peek(0)
	if target.Kind != bytecode.VKBox {
		return vm.eb.notABox(target)
	}
	if err := target.Box.Set(name, value); err != nil {
		return vm.eb.readOnlyProperty(name)
	}
	vm.sp -= 2
	vm.push(value)
	return nil
}

// getIndex reads box[key] where box and key are at the given distances from
// the top. GETI has the box below the key; OF has it on top.
func (vm *VM) getIndex(boxAt, keyAt int) *RuntimeError {
	target, key := vm.peek(boxAt), vm.peek(keyAt)
	if target.Kind != bytecode.VKBox {
		return vm.eb.notSubscriptable(target)
	}
	var v bytecode.Value
	switch key.Kind {
	case bytecode.VKNumber:
		var err error
		v, err = target.Box.Index(key.Num)
		if err != nil {
			return vm.eb.indexOutOfRange(key.Num, target.Box.Len())
		}
	case bytecode.VKString:
		var ok bool
		v, ok = target.Box.Get(key.Str)
		if !ok {
			return vm.eb.undefinedProperty(key.Str)
		}
	default:
		return vm.eb.badIndex(key)
	}
	vm.sp -= 2
	vm.push(v)
	return nil
}

// setIndex handles [box, key, value] and leaves value.
func (vm *VM) setIndex() *RuntimeError {
	target, key, value := vm.peek(2), vm.peek(1), vm.peek(0)
	if target.Kind != bytecode.VKBox {
		return vm.eb.notSubscriptable(target)
	}
	switch key.Kind {
	case bytecode.VKNumber:
		if err := target.Box.SetIndex(key.Num, value); err != nil {
			return vm.eb.indexOutOfRange(key.Num, target.Box.Len())
		}
	case bytecode.VKString:
		if err := target.Box.Set(key.Str, value); err != nil {
			if errors.Is(err, bytecode.ErrReadOnlyKey) {
				return vm.eb.readOnlyProperty(key.Str)
			}
			return vm.eb.undefinedProperty(key.Str)
		}
	default:
		return vm.eb.badIndex(key)
	}
	vm.sp -= 3
	vm.push(value)
	return nil
}
