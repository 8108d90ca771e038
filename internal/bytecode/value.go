package bytecode

import (
	"fmt"
	"math"
)

// ValueKind identifies the runtime type of a Value.
type ValueKind uint8

const (
	// VKNil is the single nil value, "rỗng".
	VKNil ValueKind = iota
	// VKBool is a boolean.
	VKBool
	// VKNumber is a 64-bit float.
	VKNumber
	// VKString is an immutable string.
	VKString
	// VKFunc is a compiled Function.
	VKFunc
	// VKNative is a host function.
	VKNative
	// VKBox is a reference to a shared Box.
	VKBox
)

// String returns the language's name for the kind, as used in error messages.
func (k ValueKind) String() string {
	switch k {
	case VKNil:
		return "rỗng"
	case VKBool:
		return "logic"
	case VKNumber:
		return "số"
	case VKString:
		return "chuỗi"
	case VKFunc, VKNative:
		return "hàm"
	case VKBox:
		return "hộp"
	default:
		return fmt.Sprintf("ValueKind(%d)", k)
	}
}

// Value is a runtime value. The zero Value is nil.
type Value struct {
	Kind   ValueKind
	Bool   bool      // VKBool
	Num    float64   // VKNumber
	Str    string    // VKString
	Fn     *Function // VKFunc
	Native *Native   // VKNative
	Box    *Box      // VKBox
}

var (
	Nil   = Value{Kind: VKNil}
	True  = Value{Kind: VKBool, Bool: true}
	False = Value{Kind: VKBool, Bool: false}
)

func NumberValue(n float64) Value { return Value{Kind: VKNumber, Num: n} }
func StringValue(s string) Value { return Value{Kind: VKString, Str: s} }
func FuncValue(fn *Function) Value { return Value{Kind: VKFunc, Fn: fn} }
func NativeValue(n *Native) Value { return Value{Kind: VKNative, Native: n} }
func BoxValue(b *Box) Value { return Value{Kind: VKBox, Box: b} }

func BoolValue(b bool) Value {
	if b {
		return True
	}
	return False
}

// IsNil reports whether v is the nil value.
func (v Value) IsNil() bool { return v.Kind == VKNil }

// IsCallable reports whether v can be the target of CALL.
func (v Value) IsCallable() bool { return v.Kind == VKFunc || v.Kind == VKNative }

// Truthy follows the language rule: rỗng, sai, 0, NaN and "" are false.
func (v Value) Truthy() bool {
	switch v.Kind {
	case VKNil:
		return false
	case VKBool:
		return v.Bool
	case VKNumber:
		return v.Num != 0 && !math.IsNaN(v.Num)
	case VKString:
		return v.Str != ""
	default:
		return true
	}
}

// Equal implements EQ: value equality for scalars, identity for functions and boxes.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case VKNil:
		return true
	case VKBool:
		return a.Bool == b.Bool
	case VKNumber:
		return a.Num == b.Num
	case VKString:
		return a.Str == b.Str
	case VKFunc:
		return a.Fn == b.Fn
	case VKNative:
		return a.Native == b.Native
	case VKBox:
		return a.Box == b.Box
	}
	return false
}

func sameNumberBits(a, b float64) bool {
	return math.Float64bits(a) == math.Float64bits(b)
}
