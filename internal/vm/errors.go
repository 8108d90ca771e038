package vm

import (
	"fmt"
	"strings"

	"hop/internal/bytecode"
)

// ErrorCode identifies the kind of runtime error.
type ErrorCode int

// Stable codes - do not change values.
const (
	ErrTypeMismatch      ErrorCode = 2001 // VM2001: operand kinds not accepted by an operator
	ErrNotCallable       ErrorCode = 2002 // VM2002: call of a non-function
	ErrArity             ErrorCode = 2003 // VM2003: wrong argument count
	ErrStackOverflow     ErrorCode = 2004 // VM2004: call-frame or value-stack capacity exceeded
	ErrUndefinedProperty ErrorCode = 2005 // VM2005: read of a missing box key
	ErrIndexOutOfRange   ErrorCode = 2006 // VM2006: numeric index outside the sequence
	ErrReadOnlyProperty  ErrorCode = 2007 // VM2007: write to the length key
	ErrNotABox           ErrorCode = 2008 // VM2008: field access on a non-box
	ErrNotSubscriptable  ErrorCode = 2009 // VM2009: subscript on a non-box
	ErrBadIndex          ErrorCode = 2010 // VM2010: subscript that is neither number nor string
	ErrNative            ErrorCode = 2011 // VM2011: a native function failed
	ErrBadOpcode         ErrorCode = 2999 // VM2999: corrupt bytecode
)

// String returns the code as "VM2001".
func (c ErrorCode) String() string {
	return fmt.Sprintf("VM%d", int(c))
}

// BacktraceFrame is one call frame at the moment of the error.
type BacktraceFrame struct {
	Function string // "script." or "hàm NAME()."
	Line     uint32
	Col      uint32
}

// RuntimeError aborts the current run.
type RuntimeError struct {
	Code      ErrorCode
	Message   string
	Backtrace []BacktraceFrame // innermost first
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error %s: %s", e.Code, e.Message)
}

// Text renders the error the way the interpreter prints it:
//
//	Lỗi: <message>
//	[dòng L:C] trong hàm f().
//	[dòng L:C] trong script.
func (e *RuntimeError) Text() string {
	var sb strings.Builder
	sb.WriteString("Lỗi: ")
	sb.WriteString(e.Message)
	sb.WriteByte('\n')
	for _, f := range e.Backtrace {
		fmt.Fprintf(&sb, "[dòng %d:%d] trong %s\n", f.Line, f.Col, f.Function)
	}
	return sb.String()
}

// errorBuilder helps construct RuntimeError values.
type errorBuilder struct {
	vm *VM
}

func (eb *errorBuilder) makeError(code ErrorCode, msg string) *RuntimeError {
	e := &RuntimeError{Code: code, Message: msg}
	frames := eb.vm.frames
	e.Backtrace = make([]BacktraceFrame, 0, len(frames))
	for i := len(frames) - 1; i >= 0; i-- {
		line, col := frames[i].Position()
		e.Backtrace = append(e.Backtrace, BacktraceFrame{
			Function: frames[i].Func.DisplayName(),
			Line:     line,
			Col:      col,
		})
	}
	return e
}

func typeName(v bytecode.Value) string {
	return v.Kind.String()
}

func (eb *errorBuilder) binaryOp(op string, a, b bytecode.Value) *RuntimeError {
	return eb.makeError(ErrTypeMismatch, fmt.Sprintf(
		"Chỉ có thể thực hiện phép %s giữa hai số, không chấp nhận kiểu '%s' với '%s'.",
		op, typeName(a), typeName(b)))
}

func (eb *errorBuilder) add(a, b bytecode.Value) *RuntimeError {
	return eb.makeError(ErrTypeMismatch, fmt.Sprintf(
		"Chỉ có thể thực hiện phép cộng giữa hai số hoặc chuỗi và bất kỳ kiểu nào, không chấp nhận kiểu '%s' với '%s'.",
		typeName(a), typeName(b)))
}

func (eb *errorBuilder) unaryOp(op string, a bytecode.Value) *RuntimeError {
	return eb.makeError(ErrTypeMismatch, fmt.Sprintf(
		"Chỉ có thể thực hiện phép %s của một số, không chấp nhận kiểu '%s'.", op, typeName(a)))
}

func (eb *errorBuilder) notCallable(v bytecode.Value) *RuntimeError {
	return eb.makeError(ErrNotCallable, fmt.Sprintf(
		"Chỉ có thể gọi được hàm, không chấp nhận kiểu '%s'.", typeName(v)))
}

func (eb *errorBuilder) stackOverflow() *RuntimeError {
	return eb.makeError(ErrStackOverflow, "Tràn ngăn xếp!")
}

func (eb *errorBuilder) arity(want, got int) *RuntimeError {
	return eb.makeError(ErrArity, fmt.Sprintf("Hàm có %d tham số, nhưng truyền vào là %d.", want, got))
}

func (eb *errorBuilder) undefinedProperty(name string) *RuntimeError {
	return eb.makeError(ErrUndefinedProperty, fmt.Sprintf("Thuộc tính '%s' chưa được định nghĩa.", name))
}

func (eb *errorBuilder) readOnlyProperty(name string) *RuntimeError {
	return eb.makeError(ErrReadOnlyProperty, fmt.Sprintf("Thuộc tính '%s' chỉ được đọc, không thể gán.", name))
}

func (eb *errorBuilder) notABox(v bytecode.Value) *RuntimeError {
	return eb.makeError(ErrNotABox, fmt.Sprintf(
		"Chỉ có thể truy cập thuộc tính trong hộp, không chấp nhận kiểu '%s'.", typeName(v)))
}

func (eb *errorBuilder) notSubscriptable(v bytecode.Value) *RuntimeError {
	return eb.makeError(ErrNotSubscriptable, fmt.Sprintf(
		"Chỉ có thể truy cập vị trí trong hộp, không chấp nhận kiểu '%s'.", typeName(v)))
}

func (eb *errorBuilder) badIndex(v bytecode.Value) *RuntimeError {
	return eb.makeError(ErrBadIndex, fmt.Sprintf(
		"Vị trí phải là một số, không chấp nhận kiểu '%s'.", typeName(v)))
}

func (eb *errorBuilder) indexOutOfRange(n float64, length int) *RuntimeError {
	return eb.makeError(ErrIndexOutOfRange, fmt.Sprintf(
		"Vị trí %s nằm ngoài hộp có độ dài %d.", bytecode.FormatNumber(n), length))
}

func (eb *errorBuilder) native(name string, err error) *RuntimeError {
	return eb.makeError(ErrNative, fmt.Sprintf("Hàm %s() gặp lỗi: %v", name, err))
}

func (eb *errorBuilder) badOpcode(op byte) *RuntimeError {
	return eb.makeError(ErrBadOpcode, fmt.Sprintf("Mã lệnh không hợp lệ: %d.", op))
}
