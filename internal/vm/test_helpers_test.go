package vm_test

import (
	"bytes"
	"testing"

	"hop/internal/diag"
	"hop/internal/source"
	"hop/internal/vm"
)

type runResult struct {
	status vm.Status
	out    string
	diags  []diag.Diagnostic
}

func newTestVM(out *bytes.Buffer, opts vm.Options) *vm.VM {
	opts.Out = out
	return vm.New(opts)
}

// runOn compiles and runs src on an existing VM, capturing what it prints.
func runOn(t *testing.T, machine *vm.VM, out *bytes.Buffer, src string) runResult {
	t.Helper()
	out.Reset()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.hop", []byte(src))
	bag := diag.NewBag(0)
	status := machine.InterpretFile(fs.Get(id), diag.BagReporter{Bag: bag})
	return runResult{status: status, out: out.String(), diags: bag.Items()}
}

func run(t *testing.T, src string) runResult {
	t.Helper()
	var out bytes.Buffer
	return runOn(t, newTestVM(&out, vm.Options{}), &out, src)
}

func expectOutput(t *testing.T, src, want string) {
	t.Helper()
	res := run(t, src)
	if res.status != vm.StatusOK {
		t.Fatalf("status = %s, output:\n%s", res.status, res.out)
	}
	if res.out != want {
		t.Fatalf("output mismatch\n got: %q\nwant: %q", res.out, want)
	}
}
