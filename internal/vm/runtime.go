package vm

import (
	"time"
)

// Runtime provides the interface between the VM and the outside world.
type Runtime interface {
	// Now returns the current time; giờ() measures from the first call.
	Now() time.Time
}

// DefaultRuntime implements Runtime using OS facilities.
type DefaultRuntime struct{}

// NewDefaultRuntime creates the OS-backed runtime.
func NewDefaultRuntime() *DefaultRuntime {
	return &DefaultRuntime{}
}

func (*DefaultRuntime) Now() time.Time { return time.Now() }

// FixedRuntime is a Runtime whose clock only moves when told to.
type FixedRuntime struct {
	T time.Time
}

func (r *FixedRuntime) Now() time.Time { return r.T }

// Advance moves the clock forward.
func (r *FixedRuntime) Advance(d time.Duration) { r.T = r.T.Add(d) }
