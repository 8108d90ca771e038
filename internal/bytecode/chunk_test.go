package bytecode

import (
	"errors"
	"strings"
	"testing"
)

func TestAddConstantDedupAndLimit(t *testing.T) {
	var c Chunk
	a, _ := c.AddConstant(StringValue("x"))
	b, _ := c.AddConstant(StringValue("x"))
	n1, _ := c.AddConstant(NumberValue(1))
	n2, _ := c.AddConstant(NumberValue(1))
	if a != b || n1 != n2 || a == n1 {
		t.Fatalf("dedup failed: %d %d %d %d", a, b, n1, n2)
	}
	f1, _ := c.AddConstant(FuncValue(&Function{Name: "f"}))
	f2, _ := c.AddConstant(FuncValue(&Function{Name: "f"}))
	if f1 == f2 {
		t.Fatalf("functions must not be deduplicated")
	}

	for i := len(c.Constants); i < MaxConstants; i++ {
		if _, err := c.AddConstant(NumberValue(float64(1000 + i))); err != nil {
			t.Fatalf("constant %d: %v", i, err)
		}
	}
	if _, err := c.AddConstant(NumberValue(-1)); !errors.Is(err, ErrTooManyConstants) {
		t.Fatalf("expected ErrTooManyConstants, got %v", err)
	}
	// reuse still works on a full pool
	if idx, err := c.AddConstant(StringValue("x")); err != nil || idx != a {
		t.Fatalf("reuse on full pool = %d, %v", idx, err)
	}
}

func TestWriteKeepsPositionsParallel(t *testing.T) {
	var c Chunk
	c.WriteOp(OpNil, 1, 1)
	c.WriteOp(OpJump, 2, 5)
	c.Write(0x01, 2, 5)
	c.Write(0x02, 2, 5)
	if len(c.Code) != len(c.Lines) || len(c.Code) != len(c.Cols) {
		t.Fatalf("parallel arrays out of sync")
	}
	if line, col := c.Position(2); line != 2 || col != 5 {
		t.Fatalf("Position = %d:%d", line, col)
	}
	if c.ReadUint16(2) != 0x0102 {
		t.Fatalf("ReadUint16 = %#x", c.ReadUint16(2))
	}
}

func TestStackEffect(t *testing.T) {
	cases := []struct {
		op      Opcode
		operand int
		want    int
	}{
		{OpConst, 0, 1},
		{OpPop, 0, -1},
		{OpAdd, 0, -1},
		{OpNeg, 0, 0},
		{OpDef, 0, -1},
		{OpSetGlobal, 0, 0},
		{OpSetLocal, 0, 0},
		{OpCall, 0, 0},
		{OpCall, 3, -3},
		{OpBox, 3, -2},
		{OpBox, 0, 1},
		{OpGet, 0, 0},
		{OpSet, 0, -1},
		{OpGetIndex, 0, -1},
		{OpSetIndex, 0, -2},
		{OpOf, 0, -1},
		{OpJumpIfFalse, 0, 0},
		{OpReturn, 0, -1},
		{OpExit, 0, 0},
	}
	for _, c := range cases {
		if got := StackEffect(c.op, c.operand); got != c.want {
			t.Errorf("StackEffect(%s, %d) = %d, want %d", c.op, c.operand, got, c.want)
		}
	}
}

func TestDisassemble(t *testing.T) {
	inner := &Function{Name: "f", Arity: 1}
	inner.Chunk.WriteOp(OpGetLocal, 1, 10)
	inner.Chunk.Write(1, 1, 10)
	inner.Chunk.WriteOp(OpReturn, 1, 12)

	script := &Function{}
	k, _ := script.Chunk.AddConstant(FuncValue(inner))
	name, _ := script.Chunk.AddConstant(StringValue("f"))
	script.Chunk.WriteOp(OpConst, 1, 1)
	script.Chunk.Write(k, 1, 1)
	script.Chunk.WriteOp(OpDef, 1, 1)
	script.Chunk.Write(name, 1, 1)
	script.Chunk.WriteOp(OpJump, 2, 1)
	script.Chunk.Write(0, 2, 1)
	script.Chunk.Write(1, 2, 1)
	script.Chunk.WriteOp(OpNil, 2, 3)
	script.Chunk.WriteOp(OpReturn, 2, 3)

	var sb strings.Builder
	if err := Disassemble(&sb, script); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	for _, want := range []string{
		"== <script> (tham số: 0, hằng: 2) ==",
		"CONST     0 hàm: f",
		"DEF       1 'f'",
		"JMP       4 -> 8",
		"== f (tham số: 1, hằng: 0) ==",
		"LD        1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("listing lacks %q:\n%s", want, out)
		}
	}
}
