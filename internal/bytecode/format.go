package bytecode

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// String renders v the way PRINT and string concatenation do.
func (v Value) String() string {
	var sb strings.Builder
	writeValue(&sb, v, false, nil)
	return sb.String()
}

// writeValue renders v; quoted back-quotes strings, which happens for
// sequence elements of a box. open holds the boxes being rendered.
func writeValue(sb *strings.Builder, v Value, quoted bool, open []*Box) {
	switch v.Kind {
	case VKNil:
		sb.WriteString("rỗng")
	case VKBool:
		if v.Bool {
			sb.WriteString("đúng")
		} else {
			sb.WriteString("sai")
		}
	case VKNumber:
		sb.WriteString(FormatNumber(v.Num))
	case VKString:
		if quoted {
			sb.WriteByte('`')
			sb.WriteString(v.Str)
			sb.WriteByte('`')
		} else {
			sb.WriteString(v.Str)
		}
	case VKFunc:
		if v.Fn == nil || v.Fn.IsScript() {
			sb.WriteString("<script>")
		} else {
			sb.WriteString("hàm: ")
			sb.WriteString(v.Fn.Name)
		}
	case VKNative:
		sb.WriteString("hàm: ")
		sb.WriteString(v.Native.Name)
	case VKBox:
		writeBox(sb, v.Box, open)
	}
}

func writeBox(sb *strings.Builder, b *Box, open []*Box) {
	if slices.Contains(open, b) {
		sb.WriteString("hộp: [...]")
		return
	}
	open = append(open, b)
	sb.WriteString("hộp: [")
	for i, item := range b.items {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeValue(sb, item, true, open)
	}
	sb.WriteString("] {")
	for i, k := range b.keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		writeValue(sb, b.fields[k], false, open)
	}
	sb.WriteByte('}')
}

// FormatNumber renders a float the way JavaScript's Number#toString does:
// shortest round-trip digits, plain notation for 1e-6 <= |n| < 1e21 and
// exponent notation outside that range.
func FormatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case n == 0:
		return "0"
	}
	abs := math.Abs(n)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	s := strconv.FormatFloat(n, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	sign := exp[0]
	digits := strings.TrimLeft(exp[1:], "0")
	return mant + "e" + string(sign) + digits
}
