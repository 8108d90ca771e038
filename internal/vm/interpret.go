package vm

import (
	"hop/internal/compiler"
	"hop/internal/diag"
	"hop/internal/source"
)

// InterpretFile compiles file and runs it. Compile diagnostics go to
// reporter; nothing executes when compilation fails.
func (vm *VM) InterpretFile(file *source.File, reporter diag.Reporter) Status {
	fn, err := compiler.Compile(file, compiler.Options{Reporter: reporter})
	if err != nil {
		return StatusCompileError
	}
	return vm.Interpret(fn)
}
