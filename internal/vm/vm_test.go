package vm_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"hop/internal/bytecode"
	"hop/internal/compiler"
	"hop/internal/source"
	"hop/internal/vm"
)

func TestArithmeticPrecedence(t *testing.T) {
	expectOutput(t, "in 3 + 4 * 2", "11\n")
	expectOutput(t, "in (3 + 4) * 2", "14\n")
	expectOutput(t, "in 10 / 4 - 1", "1.5\n")
	expectOutput(t, "in -2 * -3", "6\n")
}

func TestNumberRendering(t *testing.T) {
	expectOutput(t, "in 0.1 + 0.2", "0.30000000000000004\n")
	expectOutput(t, "in 0.000001\nin 0.0000005\nin 0.0000001", "0.000001\n5e-7\n1e-7\n")
	expectOutput(t, "in 1000000 * 1000000 * 1000000000", "1e+21\n")
}

func TestStringConcatenationKeepsSourceOrder(t *testing.T) {
	expectOutput(t, `in "x" + 1`, "x1\n")
	expectOutput(t, `in 1 + "x"`, "1x\n")
	expectOutput(t, `in "a" + đúng + rỗng`, "ađúngrỗng\n")
}

func TestComparisonsAndEquality(t *testing.T) {
	expectOutput(t, "in 1 < 2\nin 2 <= 1\nin 3 > 2\nin 3 >= 4", "đúng\nsai\nđúng\nsai\n")
	expectOutput(t, "in 1 == 1\nin 'a' != 'a'\nin rỗng == sai", "đúng\nsai\nsai\n")
	expectOutput(t, "in [] == []\nbiến b = []\nin b == b", "sai\nđúng\n")
	expectOutput(t, "in không 0\nin !''\nin không 'x'", "đúng\nđúng\nsai\n")
}

func TestLogicalOperatorsReturnOperands(t *testing.T) {
	expectOutput(t, `in rỗng hoặc "x"`, "x\n")
	expectOutput(t, "in 0 và 1", "0\n")
	expectOutput(t, "in 1 và 2", "2\n")
}

func TestBoxLengthAndAppend(t *testing.T) {
	src := `biến b = [1, 2, 3]
in b.độdài
b[3] = 4
in b.độdài
in b`
	expectOutput(t, src, "3\n4\nhộp: [1, 2, 3, 4] {}\n")
}

func TestBoxRendering(t *testing.T) {
	src := `biến b = [1, "a"]
b.k = "v"
in b`
	expectOutput(t, src, "hộp: [1, `a`] {k: v}\n")
}

func TestBoxAliasing(t *testing.T) {
	expectOutput(t, "biến a = []\nbiến b = a\nb[0] = 1\nin a", "hộp: [1] {}\n")
}

func TestBoxKeywordsAndOf(t *testing.T) {
	src := `biến h = hộp có 1, 2
h có "Tên" là "An"
in "tên" của h
in "TÊN" của h
in h["tên"]
in 0 của h
in h.độdài`
	expectOutput(t, src, "An\nAn\nAn\n1\n2\n")
}

func TestRecursiveSelfCall(t *testing.T) {
	src := `hàm gt(n)
  nếu n <= 1 thì trả 1
  trả n * hàm(n - 1)
xong
in gt(5)
in gt(0)`
	expectOutput(t, src, "120\n1\n")
}

func TestBreakUnwindsToLoopScope(t *testing.T) {
	src := `biến i = 0
khi đúng thì
  i = i + 1
  nếu i > 100 thì dừng
  {
    biến t = i
    nếu t là 5 thì dừng
  }
xong
in i`
	expectOutput(t, src, "5\n")
}

func TestLocalsInsideLoops(t *testing.T) {
	src := `hàm tổng(n) {
  biến s = 0
  biến i = 1
  khi i <= n thì
    biến bình = i * i
    s = s + bình
    i = i + 1
  xong
  trả s
}
in tổng(3)`
	expectOutput(t, src, "14\n")
}

func TestNestedLoops(t *testing.T) {
	src := `biến i = 0
biến đếm = 0
khi i < 3 thì
  biến j = 0
  khi đúng thì
    j = j + 1
    đếm = đếm + 1
    nếu j >= 2 thì dừng
  xong
  i = i + 1
xong
in đếm`
	expectOutput(t, src, "6\n")
}

func TestIfElseChains(t *testing.T) {
	src := `hàm loại(n)
  nếu n < 0 thì
    trả "âm"
  hay nếu n là 0 thì
    trả "không"
  hay
    trả "dương"
  xong
xong
in loại(-1)
in loại(0)
in loại(7)`
	expectOutput(t, src, "âm\nkhông\ndương\n")
}

func TestGlobalsAreCaseInsensitive(t *testing.T) {
	expectOutput(t, "biến X = 1\nin x\nbiến x = 2\nin X", "1\n2\n")
}

func TestUnsetGlobalIsNil(t *testing.T) {
	expectOutput(t, "in chưaCó", "rỗng\n")
}

func TestFunctionRendering(t *testing.T) {
	expectOutput(t, "hàm f() { }\nin f\nin hàm\nin f()", "hàm: f\n<script>\nrỗng\n")
}

func TestCallKeyword(t *testing.T) {
	expectOutput(t, "hàm chào(tên) { in 'chào ' + tên }\ngọi chào với 'An'", "chào An\n")
}

func TestExitStopsEverything(t *testing.T) {
	res := run(t, "hàm f() { thoát }\nin 1\nf()\nin 2")
	if res.status != vm.StatusOK || res.out != "1\n" {
		t.Fatalf("status %s output %q", res.status, res.out)
	}
}

func TestWrongArityTraceNamesFunction(t *testing.T) {
	src := `hàm f(a, b)
  trả a
xong
hàm g()
  trả f(1)
xong
g()`
	res := run(t, src)
	if res.status != vm.StatusRuntimeError {
		t.Fatalf("status = %s", res.status)
	}
	want := "Lỗi: Hàm có 2 tham số, nhưng truyền vào là 1.\n" +
		"[dòng 5:10] trong hàm g().\n" +
		"[dòng 7:3] trong script.\n"
	if res.out != want {
		t.Fatalf("got:\n%s\nwant:\n%s", res.out, want)
	}
}

func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code vm.ErrorCode
		msg  string
	}{
		{"subtract string", `in 1 - "a"`, vm.ErrTypeMismatch, "Chỉ có thể thực hiện phép trừ giữa hai số, không chấp nhận kiểu 'số' với 'chuỗi'."},
		{"compare bool", `in đúng < 1`, vm.ErrTypeMismatch, "Chỉ có thể thực hiện phép so sánh bé hơn giữa hai số, không chấp nhận kiểu 'logic' với 'số'."},
		{"add nil", `in rỗng + 1`, vm.ErrTypeMismatch, "Chỉ có thể thực hiện phép cộng giữa hai số hoặc chuỗi và bất kỳ kiểu nào, không chấp nhận kiểu 'rỗng' với 'số'."},
		{"negate string", `in -"a"`, vm.ErrTypeMismatch, "Chỉ có thể thực hiện phép lấy âm của một số, không chấp nhận kiểu 'chuỗi'."},
		{"call number", `biến x = 1` + "\n" + `x()`, vm.ErrNotCallable, "Chỉ có thể gọi được hàm, không chấp nhận kiểu 'số'."},
		{"missing property", "biến b = []\nin b.x", vm.ErrUndefinedProperty, "Thuộc tính 'x' chưa được định nghĩa."},
		{"missing key", "biến b = []\nin b['y']", vm.ErrUndefinedProperty, "Thuộc tính 'y' chưa được định nghĩa."},
		{"index past end", "biến b = [1]\nin b[5]", vm.ErrIndexOutOfRange, "Vị trí 5 nằm ngoài hộp có độ dài 1."},
		{"write past end", "biến b = [1]\nb[3] = 1", vm.ErrIndexOutOfRange, "Vị trí 3 nằm ngoài hộp có độ dài 1."},
		{"fractional index", "biến b = [1]\nin b[0.5]", vm.ErrIndexOutOfRange, "Vị trí 0.5 nằm ngoài hộp có độ dài 1."},
		{"length is read-only", "biến b = []\nb.độdài = 3", vm.ErrReadOnlyProperty, "Thuộc tính 'độdài' chỉ được đọc, không thể gán."},
		{"field on number", "biến n = 1\nin n.x", vm.ErrNotABox, "Chỉ có thể truy cập thuộc tính trong hộp, không chấp nhận kiểu 'số'."},
		{"subscript on number", "biến n = 1\nin n[0]", vm.ErrNotSubscriptable, "Chỉ có thể truy cập vị trí trong hộp, không chấp nhận kiểu 'số'."},
		{"of on string", `in "a" của "b"`, vm.ErrNotSubscriptable, "Chỉ có thể truy cập vị trí trong hộp, không chấp nhận kiểu 'chuỗi'."},
		{"bool index", "biến b = []\nin b[đúng]", vm.ErrBadIndex, "Vị trí phải là một số, không chấp nhận kiểu 'logic'."},
		{"stack overflow", "hàm f() { f() }\nf()", vm.ErrStackOverflow, "Tràn ngăn xếp!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			machine := newTestVM(&out, vm.Options{})
			res := runOn(t, machine, &out, tt.src)
			if res.status != vm.StatusRuntimeError {
				t.Fatalf("status = %s, diags = %v", res.status, res.diags)
			}
			rtErr := machine.LastError()
			if rtErr == nil {
				t.Fatal("LastError is nil")
			}
			if rtErr.Code != tt.code || rtErr.Message != tt.msg {
				t.Fatalf("got %s %q, want %s %q", rtErr.Code, rtErr.Message, tt.code, tt.msg)
			}
			if !strings.HasPrefix(res.out, "Lỗi: "+tt.msg+"\n") {
				t.Fatalf("printed %q", res.out)
			}
			if machine.Depth() != 0 {
				t.Fatalf("frames left after error: %d", machine.Depth())
			}
		})
	}
}

func TestStackOverflowBacktraceHasEveryFrame(t *testing.T) {
	var out bytes.Buffer
	machine := newTestVM(&out, vm.Options{MaxFrames: 8})
	runOn(t, machine, &out, "hàm f() { f() }\nf()")
	rtErr := machine.LastError()
	if rtErr == nil || rtErr.Code != vm.ErrStackOverflow {
		t.Fatalf("expected stack overflow, got %v", rtErr)
	}
	if len(rtErr.Backtrace) != 8 {
		t.Fatalf("backtrace has %d frames, want 8", len(rtErr.Backtrace))
	}
	if last := rtErr.Backtrace[len(rtErr.Backtrace)-1]; last.Function != "script." {
		t.Fatalf("outermost frame = %q", last.Function)
	}
}

func TestCompileErrorRunsNothing(t *testing.T) {
	res := run(t, "in 1\nbiến x = 2\nin (")
	if res.status != vm.StatusCompileError {
		t.Fatalf("status = %s", res.status)
	}
	if res.out != "" {
		t.Fatalf("output after compile error: %q", res.out)
	}
	if len(res.diags) != 1 {
		t.Fatalf("diagnostics = %d, want 1", len(res.diags))
	}
}

func TestVMIsReusableAfterRuntimeError(t *testing.T) {
	var out bytes.Buffer
	machine := newTestVM(&out, vm.Options{})
	if res := runOn(t, machine, &out, "biến a = 1\nin a + rỗng"); res.status != vm.StatusRuntimeError {
		t.Fatalf("first run: %s", res.status)
	}
	res := runOn(t, machine, &out, "in a + 1")
	if res.status != vm.StatusOK || res.out != "2\n" {
		t.Fatalf("second run: %s %q", res.status, res.out)
	}
}

func TestNatives(t *testing.T) {
	expectOutput(t, "in kiểu(1)\nin kiểu('a')\nin kiểu([])\nin kiểu(kiểu)", "số\nchuỗi\nhộp\nhàm\n")
	expectOutput(t, "in số('12.5') + 1\nin số('x')\nin số(đúng)", "13.5\nrỗng\n1\n")
	expectOutput(t, "in chuỗi(1) + 2", "12\n")
	expectOutput(t, "in kiểu", "hàm: kiểu\n")
}

func TestClockNative(t *testing.T) {
	rt := &vm.FixedRuntime{T: time.Unix(100, 0)}
	var out bytes.Buffer
	machine := newTestVM(&out, vm.Options{Runtime: rt})
	rt.Advance(2 * time.Second)
	res := runOn(t, machine, &out, "in giờ()")
	if res.out != "2\n" {
		t.Fatalf("giờ() printed %q", res.out)
	}
}

func TestDefineNative(t *testing.T) {
	var out bytes.Buffer
	machine := newTestVM(&out, vm.Options{})
	machine.DefineNative("Gấp_Đôi", 1, func(args []bytecode.Value) (bytecode.Value, error) {
		return bytecode.NumberValue(args[0].Num * 2), nil
	})
	machine.DefineNative("hỏng", 0, func([]bytecode.Value) (bytecode.Value, error) {
		return bytecode.Nil, errors.New("boom")
	})
	if res := runOn(t, machine, &out, "in gấp_đôi(21)"); res.out != "42\n" {
		t.Fatalf("got %q", res.out)
	}
	res := runOn(t, machine, &out, "hỏng()")
	if res.status != vm.StatusRuntimeError || machine.LastError().Code != vm.ErrNative {
		t.Fatalf("native failure not reported: %s %q", res.status, res.out)
	}
	res = runOn(t, machine, &out, "gấp_đôi()")
	if machine.LastError() == nil || machine.LastError().Code != vm.ErrArity {
		t.Fatalf("native arity not checked: %q", res.out)
	}
}

func TestGlobalsPersistAcrossRuns(t *testing.T) {
	var out bytes.Buffer
	machine := newTestVM(&out, vm.Options{})
	runOn(t, machine, &out, "biến đếm = 1")
	runOn(t, machine, &out, "đếm = đếm + 1")
	v, ok := machine.Global("ĐẾM")
	if !ok || v.Num != 2 {
		t.Fatalf("global = %v, %v", v, ok)
	}
}

func TestTracerWritesInstructions(t *testing.T) {
	var out, trace bytes.Buffer
	machine := newTestVM(&out, vm.Options{Trace: vm.NewTracer(&trace, true)})
	runOn(t, machine, &out, "in 1 + 2")
	text := trace.String()
	for _, want := range []string{"[depth=1] <script>", "CONST", "ADD", "PRINT", "| [<script>, 1, 2]"} {
		if !strings.Contains(text, want) {
			t.Fatalf("trace lacks %q:\n%s", want, text)
		}
	}
}

func TestRunReturnsRuntimeError(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.hop", []byte("in 1 - 'a'"))
	fn, err := compiler.Compile(fs.Get(id), compiler.Options{})
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	machine := newTestVM(&out, vm.Options{})
	err = machine.Run(fn)
	var rtErr *vm.RuntimeError
	if !errors.As(err, &rtErr) || rtErr.Code != vm.ErrTypeMismatch {
		t.Fatalf("err = %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("Run must not print, got %q", out.String())
	}
}
