package driver

import (
	"errors"

	"hop/internal/compiler"
)

var (
	// ErrCompile marks a script rejected by the lexer or compiler.
	// The diagnostics are in the accompanying result bag.
	ErrCompile = compiler.ErrCompile
	// ErrRuntime marks a script that stopped on a runtime error.
	ErrRuntime = errors.New("runtime error")
)

// Exit codes follow sysexits: EX_DATAERR for bad input, EX_SOFTWARE for a crash.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitCompile = 65
	ExitRuntime = 70
)

// ExitCode maps an error returned by this package to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrCompile):
		return ExitCompile
	case errors.Is(err, ErrRuntime):
		return ExitRuntime
	default:
		return ExitFailure
	}
}
