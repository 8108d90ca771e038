package vm

import (
	"strconv"
	"strings"

	"hop/internal/bytecode"
	"hop/internal/token"
)

func foldName(name string) string { return token.Fold(name) }

// DefineNative registers a host function as a global. arity < 0 accepts
// any number of arguments.
func (vm *VM) DefineNative(name string, arity int, fn bytecode.NativeFunc) {
	vm.globals[foldName(name)] = bytecode.NativeValue(&bytecode.Native{
		Name:  name,
		Arity: arity,
		Fn:    fn,
	})
}

func (vm *VM) defineBuiltins() {
	start := vm.RT.Now()
	vm.DefineNative("giờ", 0, func([]bytecode.Value) (bytecode.Value, error) {
		return bytecode.NumberValue(vm.RT.Now().Sub(start).Seconds()), nil
	})
	vm.DefineNative("chuỗi", 1, func(args []bytecode.Value) (bytecode.Value, error) {
		return bytecode.StringValue(args[0].String()), nil
	})
	vm.DefineNative("kiểu", 1, func(args []bytecode.Value) (bytecode.Value, error) {
		return bytecode.StringValue(args[0].Kind.String()), nil
	})
	vm.DefineNative("số", 1, toNumber)
}

// toNumber converts strings and booleans; anything unparsable is nil.
func toNumber(args []bytecode.Value) (bytecode.Value, error) {
	v := args[0]
	switch v.Kind {
	case bytecode.VKNumber:
		return v, nil
	case bytecode.VKBool:
		if v.Bool {
			return bytecode.NumberValue(1), nil
		}
		return bytecode.NumberValue(0), nil
	case bytecode.VKString:
		n, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return bytecode.Nil, nil
		}
		return bytecode.NumberValue(n), nil
	}
	return bytecode.Nil, nil
}
